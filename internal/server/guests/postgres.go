package guests

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/plannly/guestsync/internal/common"
	"github.com/plannly/guestsync/internal/dbx"
	"github.com/plannly/guestsync/internal/guest"
	"github.com/plannly/guestsync/internal/normalize"
)

// PostgresRepository implements guest storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const guestColumns = `id, owner_key, shared_event_id, name, phone_number,
	number_of_guests, side, confirmed, notes, guest_group, created_at, updated_at`

func scanGuest(scan func(dest ...any) error) (*guest.Guest, error) {
	var g guest.Guest
	if err := scan(
		&g.ID, &g.OwnerKey, &g.SharedEventID, &g.Name, &g.PhoneNumber,
		&g.NumberOfGuests, &g.Side, &g.Confirmed, &g.Notes, &g.Group,
		&g.CreatedAt, &g.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &g, nil
}

// ListByOwner returns every row whose owner key or shared event id equals
// owner, oldest first.
func (r *PostgresRepository) ListByOwner(ctx context.Context, owner string) ([]guest.Guest, error) {
	query := `SELECT ` + guestColumns + ` FROM guests
		WHERE owner_key = $1 OR shared_event_id = $1
		ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to select guests: %w", err)
	}
	defer rows.Close()

	var result []guest.Guest
	for rows.Next() {
		g, err := scanGuest(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, *g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*guest.Guest, error) {
	query := `SELECT ` + guestColumns + ` FROM guests WHERE id = $1`
	g, err := scanGuest(r.db.QueryRowContext(ctx, query, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select guest: %w", err)
	}
	return g, nil
}

// Create inserts g, assigning a fresh id when none is set. Timestamps are
// stamped here so the echoed row matches what was stored.
func (r *PostgresRepository) Create(ctx context.Context, g *guest.Guest) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	g.CreatedAt = now
	g.UpdatedAt = now

	query := `INSERT INTO guests (` + guestColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.db.ExecContext(ctx, query,
		g.ID, g.OwnerKey, g.SharedEventID, g.Name, g.PhoneNumber,
		g.NumberOfGuests, g.Side, g.Confirmed, g.Notes, g.Group,
		g.CreatedAt, g.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Update(ctx context.Context, g *guest.Guest) error {
	g.UpdatedAt = time.Now().UTC()

	query := `UPDATE guests SET
		owner_key = $2, shared_event_id = $3, name = $4, phone_number = $5,
		number_of_guests = $6, side = $7, confirmed = $8, notes = $9,
		guest_group = $10, updated_at = $11
		WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query,
		g.ID, g.OwnerKey, g.SharedEventID, g.Name, g.PhoneNumber,
		g.NumberOfGuests, g.Side, g.Confirmed, g.Notes, g.Group,
		g.UpdatedAt)
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

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM guests WHERE id = $1`, id)
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

// DeleteAllByOwner removes every row resolving under owner and reports how
// many were dropped.
func (r *PostgresRepository) DeleteAllByOwner(ctx context.Context, owner string) (int, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM guests WHERE owner_key = $1 OR shared_event_id = $1`, owner)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return int(n), nil
}

// CleanupDuplicates removes rows sharing (normalized name, canonical phone)
// within owner's scope, keeping the oldest of each group. Normalization
// happens here, not in SQL, so it stays identical to what clients apply.
func (r *PostgresRepository) CleanupDuplicates(ctx context.Context, owner string) (int, error) {
	list, err := r.ListByOwner(ctx, owner)
	if err != nil {
		return 0, err
	}

	seen := make(map[string]bool)
	var doomed []string
	for _, g := range list {
		key := strings.TrimSpace(g.Name) + "|" + normalize.Phone(g.PhoneNumber)
		if seen[key] {
			doomed = append(doomed, g.ID)
			continue
		}
		seen[key] = true
	}
	if len(doomed) == 0 {
		return 0, nil
	}

	// database/sql can't pass a []string; ship the ids as one comma-joined
	// parameter and split server-side (uuids never contain commas)
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM guests WHERE id = ANY(string_to_array($1, ',')::uuid[])`,
		strings.Join(doomed, ","))
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return int(n), nil
}
