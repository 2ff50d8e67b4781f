package importer

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/plannly/guestsync/internal/guest"
	"github.com/plannly/guestsync/internal/normalize"
)

const (
	countMin = 1
	countMax = 20
	// typical party size; candidate columns whose mean lands near it rank higher
	plausiblePartySize = 2.5
	// minimum share of integer values for the statistical scan to trust a column
	numericRatioFloor = 0.5
)

// columnMap is the result of the one-shot inference run against the
// filtered row set. A -1 index means "no column; use the per-row or
// default fallback".
type columnMap struct {
	name  int
	phone int
	count int
	side  int
	notes int
	group int
}

// inferColumns resolves which column feeds which guest field, once,
// reused for every row.
func inferColumns(t *table) columnMap {
	m := columnMap{
		name:  firstMatch(t.headers, nameKeywords),
		phone: firstMatch(t.headers, phoneKeywords),
		count: firstMatch(t.headers, countKeywords),
		side:  firstMatch(t.headers, sideKeywords),
		notes: firstMatch(t.headers, notesKeywords),
		group: firstMatch(t.headers, groupKeywords),
	}

	// no name header: the first column is the name, positionally
	if m.name < 0 {
		m.name = 0
	}

	claimed := map[int]bool{m.name: true}
	for _, idx := range []int{m.phone, m.count, m.side, m.notes, m.group} {
		if idx >= 0 {
			claimed[idx] = true
		}
	}

	if m.count < 0 {
		m.count = scanForCountColumn(t, claimed)
		if m.count >= 0 {
			claimed[m.count] = true
		}
	}
	if m.side < 0 {
		m.side = scanForSideColumn(t, claimed)
	}

	return m
}

// scanForCountColumn runs the statistical scan over unclaimed columns:
// rank by header-keyword relevance, then by the share of values parsing as
// integers in [1,20], then by how close the mean is to a plausible party
// size. The winner must clear the numeric-ratio floor.
func scanForCountColumn(t *table, claimed map[int]bool) int {
	type candidate struct {
		idx       int
		relevance int
		ratio     float64
		meanDist  float64
	}

	var candidates []candidate
	for col := range t.headers {
		if claimed[col] {
			continue
		}

		numeric, total, sum := 0, 0, 0
		for _, row := range t.rows {
			cell := row[col]
			if cell == "" {
				continue
			}
			total++
			if n, err := strconv.Atoi(cell); err == nil && n >= countMin && n <= countMax {
				numeric++
				sum += n
			}
		}
		if total == 0 {
			continue
		}

		ratio := float64(numeric) / float64(total)
		mean := 0.0
		if numeric > 0 {
			mean = float64(sum) / float64(numeric)
		}
		relevance := 0
		if matchesAny(t.headers[col], weakCountKeywords) {
			relevance = 1
		}

		candidates = append(candidates, candidate{
			idx:       col,
			relevance: relevance,
			ratio:     ratio,
			meanDist:  math.Abs(mean - plausiblePartySize),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.relevance != b.relevance {
			return a.relevance > b.relevance
		}
		if a.ratio != b.ratio {
			return a.ratio > b.ratio
		}
		return a.meanDist < b.meanDist
	})

	if len(candidates) > 0 && candidates[0].ratio > numericRatioFloor {
		return candidates[0].idx
	}
	return -1
}

// scanForSideColumn looks for an unclaimed column whose values are mostly
// groom/bride tokens.
func scanForSideColumn(t *table, claimed map[int]bool) int {
	for col := range t.headers {
		if claimed[col] {
			continue
		}
		matched, total := 0, 0
		for _, row := range t.rows {
			cell := row[col]
			if cell == "" {
				continue
			}
			total++
			if sideFromToken(cell) != "" {
				matched++
			}
		}
		if total > 0 && float64(matched)/float64(total) >= 0.5 {
			return col
		}
	}
	return -1
}

// sideFromToken maps a cell value onto a side, or "" when it is not a
// recognizable token.
func sideFromToken(s string) guest.Side {
	lower := strings.ToLower(s)
	switch {
	case strings.Contains(lower, "חתן") || strings.Contains(lower, "groom"):
		return guest.SideGroom
	case strings.Contains(lower, "כלה") || strings.Contains(lower, "bride"):
		return guest.SideBride
	case strings.Contains(lower, "משותף") || strings.Contains(lower, "shared") || strings.Contains(lower, "both"):
		return guest.SideShared
	}
	return ""
}

// sideForRow resolves the guest's side with the documented precedence: a
// side column wins, then name-text hints ("אבא של החתן"), then shared.
func sideForRow(m columnMap, row []string, name string) guest.Side {
	if m.side >= 0 {
		if s := sideFromToken(row[m.side]); s != "" {
			return s
		}
	}
	if s := sideFromToken(name); s != "" {
		return s
	}
	return guest.SideShared
}

// phoneForRow resolves the phone source: the inferred column when one
// exists, otherwise the first other column in this row whose digit-only
// form is long enough to be a number.
func phoneForRow(m columnMap, row []string) string {
	if m.phone >= 0 {
		return row[m.phone]
	}
	for col, cell := range row {
		if col == m.name || cell == "" {
			continue
		}
		if normalize.DigitCount(cell) >= 9 {
			return cell
		}
	}
	return ""
}

// countForRow resolves the party size. A literal 0 in the chosen column is
// honored as zero guests; anything unparsable defaults to 1.
func countForRow(m columnMap, row []string) int {
	if m.count < 0 {
		return 1
	}
	cell := row[m.count]
	n, err := strconv.Atoi(cell)
	if err != nil || n < 0 || n > countMax {
		return 1
	}
	return n
}
