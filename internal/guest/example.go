package guest

import "strings"

// Template and sample rows keep leaking into real lists when users fill in
// the downloadable example file and forget to delete its instructions.
// Rows matching this denylist are treated as data-entry debris and purged
// after every fetch.
var exampleNames = map[string]struct{}{
	"ישראל ישראלי":  {},
	"ישראלה ישראלי": {},
	"דוגמה":         {},
	"Example Guest": {},
}

var exampleNoteMarkers = []string{
	"שורה לדוגמה",
	"example row",
}

// IsExampleRow reports whether g matches the fixed denylist of
// template/sample content.
func IsExampleRow(g *Guest) bool {
	if _, ok := exampleNames[strings.TrimSpace(g.Name)]; ok {
		return true
	}
	notes := strings.ToLower(g.Notes)
	for _, marker := range exampleNoteMarkers {
		if strings.Contains(notes, marker) {
			return true
		}
	}
	return false
}

// PurgeExampleRows returns list without denylisted rows, preserving order.
func PurgeExampleRows(list []Guest) []Guest {
	out := make([]Guest, 0, len(list))
	for _, g := range list {
		if IsExampleRow(&g) {
			continue
		}
		out = append(out, g)
	}
	return out
}
