// Package importer turns uncontrolled spreadsheet uploads into guest rows.
// There is no column contract: headers are guessed from keyword sets and,
// failing that, from the shape of the data itself. Rows are submitted
// strictly one at a time so an interrupted import leaves a well-defined
// prefix of successes.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// table is the loosely-typed grid read from an upload: an optional header
// row plus data rows, all as raw strings.
type table struct {
	headers   []string
	rows      [][]string
	hasHeader bool
}

// readTable decodes the upload into a grid. CSV is the default; .xlsx goes
// through excelize and uses the first sheet.
func readTable(r io.Reader, filename string) (*table, error) {
	var grid [][]string
	var err error

	if strings.EqualFold(filepath.Ext(filename), ".xlsx") {
		grid, err = readXLSX(r)
	} else {
		grid, err = readCSV(r)
	}
	if err != nil {
		return nil, err
	}

	return splitHeader(grid), nil
}

func readCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	return records, nil
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading xlsx rows: %w", err)
	}
	return rows, nil
}

// splitHeader decides whether the first non-empty row is a header and
// normalizes every row to the same width.
func splitHeader(grid [][]string) *table {
	t := &table{}

	width := 0
	for _, row := range grid {
		if len(row) > width {
			width = len(row)
		}
	}

	first := true
	for _, row := range grid {
		padded := make([]string, width)
		copy(padded, row)
		for i := range padded {
			padded[i] = strings.TrimSpace(padded[i])
		}
		if emptyRow(padded) {
			continue
		}

		if first {
			first = false
			if containsHeaderKeyword(padded) {
				t.headers = padded
				t.hasHeader = true
				continue
			}
		}
		if looksLikeHeader(padded) || isExampleContent(padded) {
			continue
		}
		t.rows = append(t.rows, padded)
	}

	if t.headers == nil {
		t.headers = make([]string, width)
	}
	return t
}

func emptyRow(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}
