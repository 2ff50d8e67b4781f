package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/plannly/guestsync/internal/common"
	"github.com/plannly/guestsync/internal/dbx"
	"github.com/plannly/guestsync/internal/guest"
)

// PostgresRepository implements account storage over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*guest.Account, error) {
	query := `SELECT id, connected_account_id, shared_event_id, is_main_event_owner,
		event_date, budget, guest_count_estimate, venue
		FROM accounts WHERE id = $1`

	var a guest.Account
	var eventDate sql.NullTime
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&a.ID, &a.ConnectedAccountID, &a.SharedEventID, &a.IsMainEventOwner,
		&eventDate, &a.Budget, &a.GuestCountEstimate, &a.Venue)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select account: %w", err)
	}
	if eventDate.Valid {
		a.EventDate = eventDate.Time
	}
	return &a, nil
}

func (r *PostgresRepository) Create(ctx context.Context, a *guest.Account) error {
	query := `INSERT INTO accounts
		(id, connected_account_id, shared_event_id, is_main_event_owner,
		 event_date, budget, guest_count_estimate, venue)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.ConnectedAccountID, a.SharedEventID, a.IsMainEventOwner,
		nullTime(a.EventDate), a.Budget, a.GuestCountEstimate, a.Venue)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Update(ctx context.Context, a *guest.Account) error {
	query := `UPDATE accounts SET
		connected_account_id = $2, shared_event_id = $3, is_main_event_owner = $4,
		event_date = $5, budget = $6, guest_count_estimate = $7, venue = $8
		WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query,
		a.ID, a.ConnectedAccountID, a.SharedEventID, a.IsMainEventOwner,
		nullTime(a.EventDate), a.Budget, a.GuestCountEstimate, a.Venue)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

// nullTime maps the zero time to SQL NULL.
func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
