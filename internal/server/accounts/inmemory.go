package accounts

import (
	"context"
	"sync"

	"github.com/plannly/guestsync/internal/common"
	"github.com/plannly/guestsync/internal/guest"
)

// InMemoryRepository keeps accounts in a map. Used by handler tests and
// the -m development mode.
type InMemoryRepository struct {
	mu   sync.RWMutex
	rows map[string]guest.Account
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{rows: make(map[string]guest.Account)}
}

func (r *InMemoryRepository) Get(ctx context.Context, id string) (*guest.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.rows[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &a, nil
}

func (r *InMemoryRepository) Create(ctx context.Context, a *guest.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[a.ID] = *a
	return nil
}

func (r *InMemoryRepository) Update(ctx context.Context, a *guest.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[a.ID]; !ok {
		return common.ErrNotFound
	}
	r.rows[a.ID] = *a
	return nil
}
