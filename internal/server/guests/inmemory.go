package guests

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/plannly/guestsync/internal/common"
	"github.com/plannly/guestsync/internal/guest"
	"github.com/plannly/guestsync/internal/normalize"
)

// InMemoryRepository keeps guest rows in a map. Used by handler tests and
// the -m development mode.
type InMemoryRepository struct {
	mu   sync.RWMutex
	rows map[string]guest.Guest
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{rows: make(map[string]guest.Guest)}
}

func (r *InMemoryRepository) ListByOwner(ctx context.Context, owner string) ([]guest.Guest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []guest.Guest
	for _, g := range r.rows {
		if g.OwnerKey == owner || g.SharedEventID == owner {
			result = append(result, cloneRow(g))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (r *InMemoryRepository) Get(ctx context.Context, id string) (*guest.Guest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.rows[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := cloneRow(g)
	return &cp, nil
}

func (r *InMemoryRepository) Create(ctx context.Context, g *guest.Guest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	g.CreatedAt = now
	g.UpdatedAt = now
	r.rows[g.ID] = cloneRow(*g)
	return nil
}

func (r *InMemoryRepository) Update(ctx context.Context, g *guest.Guest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[g.ID]; !ok {
		return common.ErrNotFound
	}
	g.UpdatedAt = time.Now().UTC()
	r.rows[g.ID] = cloneRow(*g)
	return nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *InMemoryRepository) DeleteAllByOwner(ctx context.Context, owner string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for id, g := range r.rows {
		if g.OwnerKey == owner || g.SharedEventID == owner {
			delete(r.rows, id)
			count++
		}
	}
	return count, nil
}

func (r *InMemoryRepository) CleanupDuplicates(ctx context.Context, owner string) (int, error) {
	list, err := r.ListByOwner(ctx, owner)
	if err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	seen := make(map[string]bool)
	count := 0
	for _, g := range list {
		key := strings.TrimSpace(g.Name) + "|" + normalize.Phone(g.PhoneNumber)
		if seen[key] {
			delete(r.rows, g.ID)
			count++
			continue
		}
		seen[key] = true
	}
	return count, nil
}

func cloneRow(g guest.Guest) guest.Guest {
	if g.Confirmed != nil {
		v := *g.Confirmed
		g.Confirmed = &v
	}
	return g
}
