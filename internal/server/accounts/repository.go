// Package accounts provides server-side account persistence.
package accounts

import (
	"context"

	"github.com/plannly/guestsync/internal/guest"
)

type Repository interface {
	Get(ctx context.Context, id string) (*guest.Account, error)
	Create(ctx context.Context, a *guest.Account) error
	Update(ctx context.Context, a *guest.Account) error
}
