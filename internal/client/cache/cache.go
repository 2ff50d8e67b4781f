// Package cache is the optimistic store for guest lists, keyed by effective
// identity. Mutations apply locally first and roll back to an exact
// snapshot when the store call fails. The cancel-before-mutate discipline
// keeps a stale fetch response from overwriting a just-applied patch.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/plannly/guestsync/internal/client/gateway"
	"github.com/plannly/guestsync/internal/common"
	"github.com/plannly/guestsync/internal/guest"
	"github.com/plannly/guestsync/internal/logging"
	"github.com/plannly/guestsync/internal/normalize"
)

type Cache struct {
	gw  gateway.Client
	log logging.Logger

	mu       sync.Mutex
	lists    map[string][]guest.Guest
	inflight map[string]context.CancelFunc
	// gen bumps on every mutation/invalidation; a fetch only stores its
	// result if the generation it started under is still current.
	gen map[string]uint64
}

func New(gw gateway.Client, log logging.Logger) *Cache {
	return &Cache{
		gw:       gw,
		log:      log,
		lists:    make(map[string][]guest.Guest),
		inflight: make(map[string]context.CancelFunc),
		gen:      make(map[string]uint64),
	}
}

// Fetch returns the guest list for identity, hitting the store only when
// the identity is not cached. Example/template rows are purged on every
// path before anything is returned or stored.
func (c *Cache) Fetch(ctx context.Context, identity string) ([]guest.Guest, error) {
	c.mu.Lock()
	if list, ok := c.lists[identity]; ok {
		out := cloneList(list)
		c.mu.Unlock()
		return out, nil
	}

	fctx, cancel := context.WithCancel(ctx)
	c.cancelInflightLocked(identity)
	c.inflight[identity] = cancel
	startGen := c.gen[identity]
	c.mu.Unlock()

	list, err := c.gw.FetchGuests(fctx, identity)
	// staleness must be read before cancel, which marks fctx done itself
	stale := fctx.Err() != nil
	cancel()

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inflight, identity)

	if err != nil {
		return nil, fmt.Errorf("fetching guests for %s: %w", identity, err)
	}

	list = guest.PurgeExampleRows(list)
	if c.gen[identity] == startGen && !stale {
		c.lists[identity] = cloneList(list)
	}
	return list, nil
}

// Invalidate drops the cached list for identity and cancels any in-flight
// fetch so its late response cannot repopulate the entry.
func (c *Cache) Invalidate(identity string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelInflightLocked(identity)
	c.gen[identity]++
	delete(c.lists, identity)
}

// Cached returns the list for identity without touching the store.
func (c *Cache) Cached(identity string) ([]guest.Guest, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	list, ok := c.lists[identity]
	if !ok {
		return nil, false
	}
	return cloneList(list), true
}

// Add creates a guest. Unlike the other mutations it is apply-on-success:
// the row appears in the cache only after the store has assigned its id.
func (c *Cache) Add(ctx context.Context, identity string, g guest.Guest) (*guest.Guest, error) {
	if err := validateForCreate(&g); err != nil {
		return nil, err
	}

	g.OwnerKey = identity
	g.PhoneNumber = normalize.Phone(g.PhoneNumber)
	if g.Side == "" {
		g.Side = guest.SideShared
	}

	c.mu.Lock()
	c.cancelInflightLocked(identity)
	c.gen[identity]++
	c.mu.Unlock()

	created, err := c.gw.CreateGuest(ctx, g)
	if err != nil {
		return nil, fmt.Errorf("creating guest: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if list, ok := c.lists[identity]; ok {
		c.lists[identity] = append(list, *created)
	}
	return created, nil
}

// Update applies the patched row optimistically, then confirms it against
// the store. On failure the pre-mutation snapshot is restored byte for byte.
func (c *Cache) Update(ctx context.Context, identity string, g guest.Guest) (*guest.Guest, error) {
	if err := validateForEdit(&g); err != nil {
		return nil, err
	}
	g.PhoneNumber = normalize.Phone(g.PhoneNumber)
	g.UpdatedAt = time.Now()

	restore := c.applyOptimistic(identity, func(list []guest.Guest) []guest.Guest {
		return replaceRow(list, g)
	})

	echo, err := c.gw.UpdateGuest(ctx, g)
	if err != nil {
		c.rollback(ctx, identity, restore)
		return nil, fmt.Errorf("updating guest %s: %w", g.ID, err)
	}

	c.adoptEcho(identity, echo)
	return echo, nil
}

// Delete removes the row optimistically, then confirms against the store.
func (c *Cache) Delete(ctx context.Context, identity string, id string) error {
	restore := c.applyOptimistic(identity, func(list []guest.Guest) []guest.Guest {
		return removeRow(list, id)
	})

	if err := c.gw.DeleteGuest(ctx, id); err != nil {
		c.rollback(ctx, identity, restore)
		return fmt.Errorf("deleting guest %s: %w", id, err)
	}
	return nil
}

// Confirm writes the tri-state confirmation for the given guest. Whatever
// the caller passes is coerced into {true, false, nil} before anything is
// applied or sent.
func (c *Cache) Confirm(ctx context.Context, identity string, id string, status any) (*guest.Guest, error) {
	confirmed := normalize.TriState(status)

	var patched *guest.Guest
	restore := c.applyOptimistic(identity, func(list []guest.Guest) []guest.Guest {
		for i := range list {
			if list[i].ID == id {
				list[i].Confirmed = confirmed
				list[i].UpdatedAt = time.Now()
				row := list[i]
				patched = &row
			}
		}
		return list
	})

	if patched == nil {
		// not cached; the update carries the whole row, so pull it from
		// the store before patching
		list, err := c.gw.FetchGuests(ctx, identity)
		if err != nil {
			return nil, fmt.Errorf("confirming guest %s: %w", id, err)
		}
		for i := range list {
			if list[i].ID == id {
				row := list[i]
				row.Confirmed = confirmed
				patched = &row
				break
			}
		}
		if patched == nil {
			return nil, fmt.Errorf("confirming guest %s: %w", id, common.ErrNotFound)
		}
	}

	echo, err := c.gw.UpdateGuest(ctx, *patched)
	if err != nil {
		c.rollback(ctx, identity, restore)
		return nil, fmt.Errorf("confirming guest %s: %w", id, err)
	}

	c.adoptEcho(identity, echo)
	return echo, nil
}

// DeleteAll clears the whole list optimistically.
func (c *Cache) DeleteAll(ctx context.Context, identity string) (int, error) {
	restore := c.applyOptimistic(identity, func(list []guest.Guest) []guest.Guest {
		return []guest.Guest{}
	})

	n, err := c.gw.DeleteAll(ctx, identity)
	if err != nil {
		c.rollback(ctx, identity, restore)
		return 0, fmt.Errorf("deleting all guests for %s: %w", identity, err)
	}
	return n, nil
}

type restorePoint struct {
	identity string
	snapshot []guest.Guest
	had      bool
}

// applyOptimistic runs the cancel-snapshot-patch sequence common to every
// mutating call and hands back the restore point for rollback.
func (c *Cache) applyOptimistic(identity string, patch func([]guest.Guest) []guest.Guest) restorePoint {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelInflightLocked(identity)
	c.gen[identity]++

	list, had := c.lists[identity]
	rp := restorePoint{identity: identity, snapshot: cloneList(list), had: had}

	if had {
		c.lists[identity] = patch(cloneList(list))
	}
	return rp
}

// rollback restores the exact pre-mutation snapshot. Full restore, not a
// partial merge.
func (c *Cache) rollback(ctx context.Context, identity string, rp restorePoint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen[identity]++
	if rp.had {
		c.lists[identity] = rp.snapshot
	} else {
		delete(c.lists, identity)
	}
	c.log.Debug(ctx, "stale cache rollback", "identity", identity)
}

// adoptEcho replaces the optimistic row with the authoritative server echo.
// Without an echo the entry is invalidated so the next fetch refetches.
func (c *Cache) adoptEcho(identity string, echo *guest.Guest) {
	c.mu.Lock()
	defer c.mu.Unlock()
	list, ok := c.lists[identity]
	if !ok {
		return
	}
	if echo == nil {
		delete(c.lists, identity)
		return
	}
	c.lists[identity] = replaceRow(list, *echo)
}

func (c *Cache) cancelInflightLocked(identity string) {
	if cancel, ok := c.inflight[identity]; ok {
		cancel()
		delete(c.inflight, identity)
	}
}

func validateForCreate(g *guest.Guest) error {
	if err := normalize.Name(g.Name); err != nil {
		return err
	}
	if err := normalize.PhoneNumber(g.PhoneNumber); err != nil {
		return err
	}
	if err := normalize.Notes(g.Notes); err != nil {
		return err
	}
	if err := normalize.GuestCountAtCreate(g.NumberOfGuests); err != nil {
		return err
	}
	if g.Side != "" && !guest.ValidSide(g.Side) {
		return &normalize.ValidationError{Field: "side", Reason: "must be groom, bride or shared"}
	}
	return nil
}

func validateForEdit(g *guest.Guest) error {
	if err := normalize.Name(g.Name); err != nil {
		return err
	}
	if err := normalize.PhoneNumber(g.PhoneNumber); err != nil {
		return err
	}
	if err := normalize.Notes(g.Notes); err != nil {
		return err
	}
	if err := normalize.GuestCountAtEdit(g.NumberOfGuests); err != nil {
		return err
	}
	if !guest.ValidSide(g.Side) {
		return &normalize.ValidationError{Field: "side", Reason: "must be groom, bride or shared"}
	}
	return nil
}

func cloneList(list []guest.Guest) []guest.Guest {
	out := make([]guest.Guest, len(list))
	copy(out, list)
	for i := range out {
		if out[i].Confirmed != nil {
			v := *out[i].Confirmed
			out[i].Confirmed = &v
		}
	}
	return out
}

func replaceRow(list []guest.Guest, g guest.Guest) []guest.Guest {
	for i := range list {
		if list[i].ID == g.ID {
			list[i] = g
		}
	}
	return list
}

func removeRow(list []guest.Guest, id string) []guest.Guest {
	out := list[:0]
	for _, g := range list {
		if g.ID != id {
			out = append(out, g)
		}
	}
	return out
}
