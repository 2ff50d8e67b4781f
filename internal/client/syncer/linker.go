package syncer

import (
	"context"
	"fmt"

	"github.com/plannly/guestsync/internal/client/gateway"
	"github.com/plannly/guestsync/internal/common"
	"github.com/plannly/guestsync/internal/guest"
	"github.com/plannly/guestsync/internal/logging"
)

// Linker runs the one-shot reconciliation that follows a partner
// invitation being accepted. It talks to the gateway directly; the cache's
// steady state is not involved.
type Linker struct {
	gw  gateway.Client
	log logging.Logger
}

func NewLinker(gw gateway.Client, log logging.Logger) *Linker {
	return &Linker{gw: gw, log: log.With("component", "linker")}
}

// LinkResult reports what the reconciliation actually did. Warnings counts
// individual guest rows that could not be tagged or copied; those are
// logged and skipped, never rolled back.
type LinkResult struct {
	SharedEventID string
	Tagged        int
	Copied        int
	Warnings      int
}

// Link connects inviter and invitee and reconciles their guest
// collections. Not atomic: a failure partway leaves whatever tagging has
// already been applied.
func (l *Linker) Link(ctx context.Context, inviterID, inviteeID string) (*LinkResult, error) {
	if inviterID == inviteeID {
		return nil, common.ErrSelfLink
	}

	inviter, err := l.gw.GetAccount(ctx, inviterID)
	if err != nil {
		return nil, fmt.Errorf("loading inviter account: %w", err)
	}
	invitee, err := l.gw.GetAccount(ctx, inviteeID)
	if err != nil {
		return nil, fmt.Errorf("loading invitee account: %w", err)
	}
	if inviter.Linked() || invitee.Linked() {
		return nil, common.ErrAlreadyLinked
	}

	// the inviter's own id doubles as the shared event id
	sharedID := inviter.SharedEventID
	if sharedID == "" {
		sharedID = inviter.ID
		inviter.IsMainEventOwner = true
	}

	inviter.ConnectedAccountID = invitee.ID
	inviter.SharedEventID = sharedID

	invitee.ConnectedAccountID = inviter.ID
	invitee.SharedEventID = sharedID
	invitee.EventDate = inviter.EventDate
	invitee.Budget = inviter.Budget
	invitee.GuestCountEstimate = inviter.GuestCountEstimate
	invitee.Venue = inviter.Venue

	if _, err := l.gw.UpdateAccount(ctx, *inviter); err != nil {
		return nil, fmt.Errorf("updating inviter account: %w", err)
	}
	if _, err := l.gw.UpdateAccount(ctx, *invitee); err != nil {
		return nil, fmt.Errorf("updating invitee account: %w", err)
	}

	result := &LinkResult{SharedEventID: sharedID}
	if err := l.reconcileGuests(ctx, inviter.ID, invitee.ID, sharedID, result); err != nil {
		return nil, err
	}

	l.log.Info(ctx, "accounts linked",
		"inviter", inviter.ID, "invitee", invitee.ID, "sharedEventId", sharedID,
		"tagged", result.Tagged, "copied", result.Copied, "warnings", result.Warnings)
	return result, nil
}

// reconcileGuests aligns the two physical collections under the shared id.
// When the invitee already has rows, both sets are tagged in place — a
// union, not a merge; duplicate names survive. When the invitee is empty,
// every inviter row is copied into the invitee's collection so each
// account's own fetch returns full data independent of the other.
func (l *Linker) reconcileGuests(ctx context.Context, inviterID, inviteeID, sharedID string, result *LinkResult) error {
	inviterGuests, err := l.gw.FetchGuests(ctx, inviterID)
	if err != nil {
		return fmt.Errorf("fetching inviter guests: %w", err)
	}
	inviteeGuests, err := l.gw.FetchGuests(ctx, inviteeID)
	if err != nil {
		return fmt.Errorf("fetching invitee guests: %w", err)
	}

	l.tagAll(ctx, inviterGuests, sharedID, result)

	if len(inviteeGuests) > 0 {
		l.tagAll(ctx, inviteeGuests, sharedID, result)
		return nil
	}

	for _, g := range inviterGuests {
		cp := g
		cp.ID = "" // store assigns a fresh row id
		cp.OwnerKey = inviteeID
		cp.SharedEventID = sharedID
		if _, err := l.gw.CreateGuest(ctx, cp); err != nil {
			result.Warnings++
			l.log.Warn(ctx, "guest copy failed, skipping", "name", g.Name, "error", err)
			continue
		}
		result.Copied++
	}
	return nil
}

func (l *Linker) tagAll(ctx context.Context, guests []guest.Guest, sharedID string, result *LinkResult) {
	for _, g := range guests {
		if g.SharedEventID == sharedID {
			continue
		}
		g.SharedEventID = sharedID
		if _, err := l.gw.UpdateGuest(ctx, g); err != nil {
			result.Warnings++
			l.log.Warn(ctx, "guest tag failed, skipping", "id", g.ID, "error", err)
			continue
		}
		result.Tagged++
	}
}
