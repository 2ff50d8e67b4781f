package importer

import "strings"

// Keyword sets for column inference. Matching is substring-based on the
// lowercased header text, so "שם מלא" matches the "שם" keyword.
var (
	nameKeywords  = []string{"שם", "name", "אורח", "guest", "מוזמן"}
	phoneKeywords = []string{"טלפון", "נייד", "פלאפון", "phone", "mobile", "cell", "tel"}
	countKeywords = []string{"כמות", "מספר אורחים", "מוזמנים", "אורחים", "guests", "amount", "quantity", "qty"}
	sideKeywords  = []string{"צד", "side"}
	notesKeywords = []string{"הערות", "הערה", "notes", "note", "comment"}
	groupKeywords = []string{"קבוצה", "קבוצת", "group", "שיוך"}

	// weak tokens contribute keyword relevance to the statistical
	// guest-count scan without being a definite match
	weakCountKeywords = []string{"מס", "כמה", "count", "num", "נפשות"}
)

// headerKeywords is everything that marks a row as a header row when found
// inside any of its cells.
var headerKeywords = func() []string {
	var all []string
	for _, set := range [][]string{nameKeywords, phoneKeywords, countKeywords, sideKeywords, notesKeywords, groupKeywords} {
		all = append(all, set...)
	}
	return all
}()

// Sample rows that ship with the downloadable layout and keep being
// uploaded verbatim. Names must match a cell exactly after trimming;
// markers match anywhere inside a cell. Anything looser eats real rows
// whose notes merely mention the word "example".
var (
	exampleNames = []string{
		"ישראל ישראלי", "ישראלה ישראלי", "דוגמה", "Example Guest",
	}
	exampleMarkers = []string{
		"שורה לדוגמה", "example row",
	}
)

func matchesAny(text string, keywords []string) bool {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return false
	}
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

// firstMatch returns the index of the first header matching the keyword
// set, or -1.
func firstMatch(headers []string, keywords []string) int {
	for i, h := range headers {
		if matchesAny(h, keywords) {
			return i
		}
	}
	return -1
}

// containsHeaderKeyword applies the loose rule used for the first row:
// any cell containing a known header keyword marks a header.
func containsHeaderKeyword(row []string) bool {
	for _, cell := range row {
		if matchesAny(cell, headerKeywords) {
			return true
		}
	}
	return false
}

// looksLikeHeader applies the strict rule used for later rows, where a
// loose substring match would eat real names: a cell must equal a header
// keyword outright.
func looksLikeHeader(row []string) bool {
	for _, cell := range row {
		lower := strings.ToLower(cell)
		for _, k := range headerKeywords {
			if lower == k {
				return true
			}
		}
	}
	return false
}

func isExampleContent(row []string) bool {
	for _, cell := range row {
		trimmed := strings.TrimSpace(cell)
		for _, name := range exampleNames {
			if trimmed == name {
				return true
			}
		}
		lower := strings.ToLower(trimmed)
		for _, m := range exampleMarkers {
			if strings.Contains(lower, m) {
				return true
			}
		}
	}
	return false
}
