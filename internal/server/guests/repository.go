// Package guests provides server-side guest persistence: a PostgreSQL
// repository and an in-memory one for development and handler tests.
package guests

import (
	"context"

	"github.com/plannly/guestsync/internal/guest"
)

// Repository abstracts guest row storage. Owner-scoped reads match rows by
// owner key or by shared event id, so a linked account's identity resolves
// both physical collections.
type Repository interface {
	ListByOwner(ctx context.Context, owner string) ([]guest.Guest, error)
	Get(ctx context.Context, id string) (*guest.Guest, error)
	Create(ctx context.Context, g *guest.Guest) error
	Update(ctx context.Context, g *guest.Guest) error
	Delete(ctx context.Context, id string) error
	DeleteAllByOwner(ctx context.Context, owner string) (int, error)
	CleanupDuplicates(ctx context.Context, owner string) (int, error)
}
