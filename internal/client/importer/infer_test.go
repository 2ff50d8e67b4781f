package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plannly/guestsync/internal/guest"
)

func parseCSV(t *testing.T, data string) *table {
	t.Helper()
	tbl, err := readTable(strings.NewReader(data), "guests.csv")
	require.NoError(t, err)
	return tbl
}

// A numeric column under an unrecognized header must be picked over a
// free-text column by the statistical scan.
func TestInferColumns_StatisticalCountScan(t *testing.T) {
	data := "שם,נוסעים,טקסט\n" +
		"אורח א,2,משהו ארוך\n" +
		"אורח ב,1,עוד טקסט\n" +
		"אורח ג,3,בלה בלה\n" +
		"אורח ד,2,טקסט חופשי\n" +
		"אורח ה,1,שוב טקסט\n"

	tbl := parseCSV(t, data)
	cols := inferColumns(tbl)

	assert.Equal(t, 1, cols.count, "the numeric נוסעים column is the guest-count source")
}

func TestInferColumns_CountKeywordBeatsStatistics(t *testing.T) {
	// an explicit keyword header wins even when another column is numeric
	data := "שם,כמות,מספר חדר\n" +
		"אורח א,2,101\n" +
		"אורח ב,3,102\n"

	tbl := parseCSV(t, data)
	cols := inferColumns(tbl)
	assert.Equal(t, 1, cols.count)
}

func TestInferColumns_LowNumericRatioDefaultsToOne(t *testing.T) {
	data := "שם,עמודה\n" +
		"אורח א,אולי\n" +
		"אורח ב,2\n" +
		"אורח ג,לא ידוע\n"

	tbl := parseCSV(t, data)
	cols := inferColumns(tbl)
	assert.Equal(t, -1, cols.count, "ratio below the floor leaves no count column")

	for _, row := range tbl.rows {
		assert.Equal(t, 1, countForRow(cols, row))
	}
}

func TestInferColumns_SideContentScanWithoutHeader(t *testing.T) {
	data := "שם,עמודה\n" +
		"אורח א,חתן\n" +
		"אורח ב,כלה\n" +
		"אורח ג,חתן\n"

	tbl := parseCSV(t, data)
	cols := inferColumns(tbl)
	require.Equal(t, 1, cols.side)

	assert.Equal(t, guest.SideGroom, sideForRow(cols, tbl.rows[0], tbl.rows[0][0]))
	assert.Equal(t, guest.SideBride, sideForRow(cols, tbl.rows[1], tbl.rows[1][0]))
}

func TestReadTable_FiltersHeaderEmptyAndExampleRows(t *testing.T) {
	data := "שם,טלפון\n" +
		"\n" +
		"ישראל ישראלי,0501234567\n" +
		"דנה לוי,0501234567\n" +
		"שם,טלפון\n" + // repeated header page break
		"יוסי כהן,0521234567\n"

	tbl := parseCSV(t, data)
	assert.True(t, tbl.hasHeader)
	require.Len(t, tbl.rows, 2)
	assert.Equal(t, "דנה לוי", tbl.rows[0][0])
	assert.Equal(t, "יוסי כהן", tbl.rows[1][0])
}

func TestReadTable_RaggedRowsPadded(t *testing.T) {
	data := "שם,טלפון,כמות\n" +
		"דנה לוי\n" +
		"יוסי כהן,0501234567,2\n"

	tbl := parseCSV(t, data)
	require.Len(t, tbl.rows, 2)
	assert.Len(t, tbl.rows[0], 3)
	assert.Equal(t, "", tbl.rows[0][1])
}

func TestTemplate_ParsesAsItsOwnDocumentation(t *testing.T) {
	tbl := parseCSV(t, string(Template()))
	assert.True(t, tbl.hasHeader)
	assert.Empty(t, tbl.rows, "every template row is example content")
}
