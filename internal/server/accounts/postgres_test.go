package accounts

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/plannly/guestsync/internal/common"
	"github.com/plannly/guestsync/internal/guest"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestGet_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	eventDate := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`(?s)SELECT .* FROM accounts WHERE id = \$1`).
		WithArgs("acc-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "connected_account_id", "shared_event_id", "is_main_event_owner",
			"event_date", "budget", "guest_count_estimate", "venue",
		}).AddRow("acc-1", "acc-2", "acc-1", true, eventDate, 50000.0, 200, "גן האירועים"))

	a, err := repo.Get(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.ConnectedAccountID != "acc-2" || a.SharedEventID != "acc-1" {
		t.Fatalf("unexpected account: %+v", a)
	}
	if !a.EventDate.Equal(eventDate) {
		t.Fatalf("want event date %v, got %v", eventDate, a.EventDate)
	}
}

func TestGet_NullEventDate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)SELECT .* FROM accounts WHERE id = \$1`).
		WithArgs("acc-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "connected_account_id", "shared_event_id", "is_main_event_owner",
			"event_date", "budget", "guest_count_estimate", "venue",
		}).AddRow("acc-1", "", "", false, nil, 0.0, 0, ""))

	a, err := repo.Get(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !a.EventDate.IsZero() {
		t.Fatalf("want zero event date, got %v", a.EventDate)
	}
}

func TestGet_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)SELECT .* FROM accounts WHERE id = \$1`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "missing")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestUpdate_MissingRowIsNotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)UPDATE accounts SET.*WHERE id = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &guest.Account{ID: "missing"})
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
