// Package db wires the repository layer behind a single manager so the
// HTTP layer never touches a concrete backend.
package db

import (
	"context"
	"database/sql"

	"github.com/plannly/guestsync/internal/server/accounts"
	"github.com/plannly/guestsync/internal/server/guests"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Guests() guests.Repository
	Accounts() accounts.Repository
}
