// Package views derives read-only projections from a guest list: filters,
// name ordering and the aggregate statistics surfaced in the planner
// header. It never mutates and never talks to the store.
package views

import (
	"sort"
	"strings"

	"github.com/plannly/guestsync/internal/guest"
)

// Filter narrows a list. Zero values mean "don't filter on this".
type Filter struct {
	Side   guest.Side
	Status guest.Status
	Group  string
	Query  string
}

// Apply returns the rows matching every set criterion, in input order.
func (f Filter) Apply(list []guest.Guest) []guest.Guest {
	out := make([]guest.Guest, 0, len(list))
	query := strings.ToLower(strings.TrimSpace(f.Query))

	for _, g := range list {
		if f.Side != "" && g.Side != f.Side {
			continue
		}
		if f.Status != "" && g.Status() != f.Status {
			continue
		}
		if f.Group != "" && g.Group != f.Group {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(g.Name), query) {
			continue
		}
		out = append(out, g)
	}
	return out
}

// SortByName orders a copy of list by guest name.
func SortByName(list []guest.Guest) []guest.Guest {
	out := make([]guest.Guest, len(list))
	copy(out, list)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// Stats are the aggregate counters shown above the list. TotalCount counts
// rows; TotalGuests sums party sizes.
type Stats struct {
	TotalCount      int `json:"totalCount"`
	ConfirmedCount  int `json:"confirmedCount"`
	DeclinedCount   int `json:"declinedCount"`
	PendingCount    int `json:"pendingCount"`
	TotalGuests     int `json:"totalGuests"`
	ConfirmedGuests int `json:"confirmedGuests"`
}

// Compute tallies list in one pass.
func Compute(list []guest.Guest) Stats {
	var s Stats
	for _, g := range list {
		s.TotalCount++
		s.TotalGuests += g.NumberOfGuests

		switch g.Status() {
		case guest.StatusConfirmed:
			s.ConfirmedCount++
			s.ConfirmedGuests += g.NumberOfGuests
		case guest.StatusDeclined:
			s.DeclinedCount++
		default:
			s.PendingCount++
		}
	}
	return s
}
