// Package guest holds the domain model shared by the sync engine and the
// store server: guest rows, planner accounts, and the effective identity
// under which guest data is fetched and cached.
package guest

import "time"

// Side tells which half of the couple invited the guest.
type Side string

const (
	SideGroom  Side = "groom"
	SideBride  Side = "bride"
	SideShared Side = "shared"
)

// ValidSide reports whether s is one of the three permitted values.
func ValidSide(s Side) bool {
	switch s {
	case SideGroom, SideBride, SideShared:
		return true
	}
	return false
}

// Guest is a single invitee entry. Confirmed is tri-state: true means
// confirmed, false declined, nil still pending.
type Guest struct {
	ID             string    `json:"id"`
	OwnerKey       string    `json:"ownerKey"`
	SharedEventID  string    `json:"sharedEventId,omitempty"`
	Name           string    `json:"name"`
	PhoneNumber    string    `json:"phoneNumber,omitempty"`
	NumberOfGuests int       `json:"numberOfGuests"`
	Side           Side      `json:"side"`
	Confirmed      *bool     `json:"confirmed"`
	Notes          string    `json:"notes,omitempty"`
	Group          string    `json:"group,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Status is the derived, human-facing confirmation state.
type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusDeclined  Status = "declined"
	StatusPending   Status = "pending"
)

// Status maps the tri-state Confirmed pointer onto its named value.
func (g *Guest) Status() Status {
	switch {
	case g.Confirmed == nil:
		return StatusPending
	case *g.Confirmed:
		return StatusConfirmed
	default:
		return StatusDeclined
	}
}

// GroupSuggestions is the fixed suggestion set offered for the free-form
// group tag. Not enforced anywhere.
var GroupSuggestions = []string{"משפחה", "עבודה", "צבא", "לימודים", "חברים"}
