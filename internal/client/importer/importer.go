package importer

import (
	"context"
	"fmt"
	"io"

	"github.com/plannly/guestsync/internal/client/gateway"
	"github.com/plannly/guestsync/internal/common"
	"github.com/plannly/guestsync/internal/guest"
	"github.com/plannly/guestsync/internal/logging"
	"github.com/plannly/guestsync/internal/normalize"
)

// Breakdown buckets the rows that did not make it.
type Breakdown struct {
	MissingName  int `json:"missingName"`
	InvalidPhone int `json:"invalidPhone"`
	APIError     int `json:"apiError"`
	Other        int `json:"other"`
}

// Report is the aggregate outcome of one import run.
type Report struct {
	SuccessCount int       `json:"successCount"`
	ErrorCount   int       `json:"errorCount"`
	Breakdown    Breakdown `json:"errorBreakdown"`
}

// Invalidator is the slice of the cache the importer needs: dropping the
// affected identity once at the end of a successful run.
type Invalidator interface {
	Invalidate(identity string)
}

type Importer struct {
	gw    gateway.Client
	cache Invalidator
	log   logging.Logger
}

func New(gw gateway.Client, cache Invalidator, log logging.Logger) *Importer {
	return &Importer{gw: gw, cache: cache, log: log.With("component", "importer")}
}

// ImportFromFile parses the upload, infers columns once, and submits the
// resulting guests one at a time under identity. Row failures are tallied,
// never fatal; the batch always runs to the end of the file.
func (im *Importer) ImportFromFile(ctx context.Context, identity string, r io.Reader, filename string) (*Report, error) {
	t, err := readTable(r, filename)
	if err != nil {
		return nil, err
	}
	if len(t.rows) == 0 {
		return nil, common.ErrNoUsableRows
	}

	cols := inferColumns(t)
	report := &Report{}

	for _, row := range t.rows {
		im.importRow(ctx, identity, cols, row, report)
	}

	if report.SuccessCount > 0 {
		im.cache.Invalidate(identity)
	}

	im.log.Info(ctx, "import finished", "identity", identity,
		"success", report.SuccessCount, "errors", report.ErrorCount)
	return report, nil
}

func (im *Importer) importRow(ctx context.Context, identity string, cols columnMap, row []string, report *Report) {
	defer func() {
		if rec := recover(); rec != nil {
			report.ErrorCount++
			report.Breakdown.Other++
			im.log.Error(ctx, "row import panicked", "panic", fmt.Sprint(rec))
		}
	}()

	name := row[cols.name]
	if name == "" {
		report.ErrorCount++
		report.Breakdown.MissingName++
		return
	}

	phone := phoneForRow(cols, row)
	if err := normalize.PhoneNumber(phone); err != nil {
		report.ErrorCount++
		report.Breakdown.InvalidPhone++
		return
	}

	g := guest.Guest{
		OwnerKey:       identity,
		Name:           name,
		PhoneNumber:    normalize.Phone(phone),
		NumberOfGuests: countForRow(cols, row),
		Side:           sideForRow(cols, row, name),
		Confirmed:      nil, // every import starts pending
	}
	if cols.notes >= 0 {
		g.Notes = row[cols.notes]
	}
	if cols.group >= 0 {
		g.Group = row[cols.group]
	}

	if _, err := im.gw.CreateGuest(ctx, g); err != nil {
		report.ErrorCount++
		report.Breakdown.APIError++
		im.log.Warn(ctx, "row rejected by store", "name", name, "error", err)
		return
	}
	report.SuccessCount++
}
