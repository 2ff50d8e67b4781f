package db

import (
	"context"
	"database/sql"

	"github.com/plannly/guestsync/internal/server/accounts"
	"github.com/plannly/guestsync/internal/server/guests"
)

type InMemoryRepositoryManager struct {
	guests   guests.Repository
	accounts accounts.Repository
}

func (m InMemoryRepositoryManager) Conn() *sql.DB {
	return nil
}

func (m InMemoryRepositoryManager) RunMigrations(ctx context.Context) error {
	return nil
}

func (m InMemoryRepositoryManager) Guests() guests.Repository {
	return m.guests
}

func (m InMemoryRepositoryManager) Accounts() accounts.Repository {
	return m.accounts
}

func NewInMemoryRepositoryManager() RepositoryManager {
	return InMemoryRepositoryManager{
		guests:   guests.NewInMemoryRepository(),
		accounts: accounts.NewInMemoryRepository(),
	}
}
