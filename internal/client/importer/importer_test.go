package importer

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plannly/guestsync/internal/client/gateway"
	"github.com/plannly/guestsync/internal/common"
	"github.com/plannly/guestsync/internal/guest"
	"github.com/plannly/guestsync/internal/logging"
)

type fakeGateway struct {
	gateway.Client

	created   []guest.Guest
	failNames map[string]bool
}

func (f *fakeGateway) CreateGuest(ctx context.Context, g guest.Guest) (*guest.Guest, error) {
	if f.failNames[g.Name] {
		return nil, &gateway.Error{Status: 500, Body: "boom"}
	}
	g.ID = "assigned"
	f.created = append(f.created, g)
	return &g, nil
}

type fakeInvalidator struct {
	identities []string
}

func (f *fakeInvalidator) Invalidate(identity string) {
	f.identities = append(f.identities, identity)
}

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func runImport(t *testing.T, csvData string) (*Report, *fakeGateway, *fakeInvalidator, error) {
	t.Helper()
	fg := &fakeGateway{failNames: map[string]bool{}}
	inv := &fakeInvalidator{}
	im := New(fg, inv, discardLogger())
	report, err := im.ImportFromFile(context.Background(), "evt-1", strings.NewReader(csvData), "guests.csv")
	return report, fg, inv, err
}

func TestImport_ThreeRowsOneMissingName(t *testing.T) {
	data := "שם,טלפון,כמות\n" +
		"דנה לוי,0501234567,2\n" +
		",0521234567,1\n" +
		"יוסי כהן,0531234567,3\n"

	report, fg, inv, err := runImport(t, data)
	require.NoError(t, err)

	assert.Equal(t, 2, report.SuccessCount)
	assert.Equal(t, 1, report.ErrorCount)
	assert.Equal(t, 1, report.Breakdown.MissingName)
	assert.Len(t, fg.created, 2)
	assert.Equal(t, []string{"evt-1"}, inv.identities, "cache invalidated once at the end")
}

func TestImport_NoUsableRows(t *testing.T) {
	_, _, inv, err := runImport(t, "שם,טלפון\n\n\n")
	assert.ErrorIs(t, err, common.ErrNoUsableRows)
	assert.Empty(t, inv.identities)
}

func TestImport_TemplateImportsNothing(t *testing.T) {
	// re-uploading the downloadable template as-is must yield zero guests
	_, _, _, err := runImport(t, string(Template()))
	assert.ErrorIs(t, err, common.ErrNoUsableRows)
}

func TestImport_NotesMentioningExampleAreKept(t *testing.T) {
	// only the fixed sample-row denylist filters rows; a guest whose notes
	// happen to contain the word "example" is a real guest
	data := "שם,טלפון,כמות,הערות\n" +
		"דנה לוי,0501234567,2,seat near stage for example the front table\n" +
		"יוסי כהן,0531234567,1,ישראל ישראלי הזמין אותו\n"

	report, fg, _, err := runImport(t, data)
	require.NoError(t, err)

	assert.Equal(t, 2, report.SuccessCount)
	require.Len(t, fg.created, 2)
	assert.Equal(t, "דנה לוי", fg.created[0].Name)
	assert.Equal(t, "יוסי כהן", fg.created[1].Name)
}

func TestImport_InvalidPhoneBucketed(t *testing.T) {
	data := "שם,טלפון\n" +
		"דנה לוי,123\n" +
		"יוסי כהן,0501234567\n"

	report, fg, _, err := runImport(t, data)
	require.NoError(t, err)

	assert.Equal(t, 1, report.SuccessCount)
	assert.Equal(t, 1, report.Breakdown.InvalidPhone)
	require.Len(t, fg.created, 1)
	assert.Equal(t, "050-1234567", fg.created[0].PhoneNumber, "phone shipped canonical")
}

func TestImport_APIErrorDoesNotAbortRemainingRows(t *testing.T) {
	data := "שם\nאורח א\nאורח ב\nאורח ג\n"

	fg := &fakeGateway{failNames: map[string]bool{"אורח ב": true}}
	inv := &fakeInvalidator{}
	im := New(fg, inv, discardLogger())

	report, err := im.ImportFromFile(context.Background(), "evt-1", strings.NewReader(data), "guests.csv")
	require.NoError(t, err)

	assert.Equal(t, 2, report.SuccessCount)
	assert.Equal(t, 1, report.Breakdown.APIError)
	assert.Equal(t, []string{"אורח א", "אורח ג"}, []string{fg.created[0].Name, fg.created[1].Name})
}

func TestImport_DefaultsPendingAndShared(t *testing.T) {
	report, fg, _, err := runImport(t, "שם\nדנה לוי\n")
	require.NoError(t, err)

	assert.Equal(t, 1, report.SuccessCount)
	require.Len(t, fg.created, 1)
	assert.Nil(t, fg.created[0].Confirmed)
	assert.Equal(t, guest.SideShared, fg.created[0].Side)
	assert.Equal(t, 1, fg.created[0].NumberOfGuests)
	assert.Equal(t, "evt-1", fg.created[0].OwnerKey)
}

func TestImport_HeaderlessFileUsesFirstColumnAsName(t *testing.T) {
	data := "דנה לוי,0501234567\nיוסי כהן,0521234567\n"

	report, fg, _, err := runImport(t, data)
	require.NoError(t, err)

	assert.Equal(t, 2, report.SuccessCount)
	assert.Equal(t, "דנה לוי", fg.created[0].Name)
	// with no phone header, the per-row digit scan finds the number
	assert.Equal(t, "050-1234567", fg.created[0].PhoneNumber)
}

func TestImport_ZeroGuestCountHonored(t *testing.T) {
	data := "שם,כמות אורחים\nדנה לוי,0\nיוסי כהן,4\n"

	report, fg, _, err := runImport(t, data)
	require.NoError(t, err)

	assert.Equal(t, 2, report.SuccessCount)
	assert.Equal(t, 0, fg.created[0].NumberOfGuests)
	assert.Equal(t, 4, fg.created[1].NumberOfGuests)
}

func TestImport_SideColumnBeatsNameText(t *testing.T) {
	// the name says groom, the side column says bride: the column wins
	data := "שם,צד\nאבא של החתן,כלה\n"

	_, fg, _, err := runImport(t, data)
	require.NoError(t, err)

	require.Len(t, fg.created, 1)
	assert.Equal(t, guest.SideBride, fg.created[0].Side)
}

func TestImport_NameTextSideFallback(t *testing.T) {
	data := "שם\nאמא של הכלה\n"

	_, fg, _, err := runImport(t, data)
	require.NoError(t, err)
	assert.Equal(t, guest.SideBride, fg.created[0].Side)
}

func TestImport_XLSXExtensionWithBadContent(t *testing.T) {
	fg := &fakeGateway{}
	im := New(fg, &fakeInvalidator{}, discardLogger())

	_, err := im.ImportFromFile(context.Background(), "evt-1",
		strings.NewReader("not an xlsx"), "guests.xlsx")
	assert.Error(t, err)
}

func TestImport_FailedRunDoesNotInvalidate(t *testing.T) {
	data := "שם\nאורח א\n"
	fg := &fakeGateway{failNames: map[string]bool{"אורח א": true}}
	inv := &fakeInvalidator{}
	im := New(fg, inv, discardLogger())

	report, err := im.ImportFromFile(context.Background(), "evt-1", strings.NewReader(data), "guests.csv")
	require.NoError(t, err)
	assert.Zero(t, report.SuccessCount)
	assert.Empty(t, inv.identities)
}
