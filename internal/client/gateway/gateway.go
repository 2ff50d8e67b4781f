// Package gateway is the thin request/response wrapper around the guest
// store HTTP API. It shapes payloads, attaches the service token, enforces
// per-call timeouts and maps non-2xx responses onto *Error. It never
// retries; retry policy belongs to the callers that own it.
package gateway

import (
	"context"
	"fmt"

	"github.com/plannly/guestsync/internal/guest"
)

// Client is the store-facing surface consumed by the cache, the linking
// routine and the import pipeline.
type Client interface {
	FetchGuests(ctx context.Context, owner string) ([]guest.Guest, error)
	CreateGuest(ctx context.Context, g guest.Guest) (*guest.Guest, error)
	UpdateGuest(ctx context.Context, g guest.Guest) (*guest.Guest, error)
	DeleteGuest(ctx context.Context, id string) error
	DeleteAll(ctx context.Context, owner string) (int, error)
	CleanupDuplicates(ctx context.Context, owner string) (int, error)

	GetAccount(ctx context.Context, id string) (*guest.Account, error)
	UpdateAccount(ctx context.Context, a guest.Account) (*guest.Account, error)
}

// Error carries the status code and raw body of a failed store call.
type Error struct {
	Status int
	Body   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("store returned %d: %s", e.Status, e.Body)
}
