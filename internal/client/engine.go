// Package client assembles the guest sync engine: gateway, optimistic
// cache, reconciliation scheduler, linking routine, import pipeline and
// view projections behind one facade consumed by the UI layer.
package client

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/plannly/guestsync/internal/client/cache"
	"github.com/plannly/guestsync/internal/client/config"
	"github.com/plannly/guestsync/internal/client/gateway"
	"github.com/plannly/guestsync/internal/client/importer"
	"github.com/plannly/guestsync/internal/client/syncer"
	"github.com/plannly/guestsync/internal/client/views"
	"github.com/plannly/guestsync/internal/guest"
	"github.com/plannly/guestsync/internal/logging"
)

type Engine struct {
	cfg *config.Config
	log logging.Logger
	gw  gateway.Client

	cache    *cache.Cache
	importer *importer.Importer
	linker   *syncer.Linker

	mu        sync.RWMutex
	account   guest.Account
	scheduler *syncer.Scheduler
}

// NewEngine builds an engine acting as account against the store named in
// cfg.
func NewEngine(cfg *config.Config, account guest.Account, log logging.Logger) *Engine {
	gw := gateway.NewHTTPClient(cfg.StoreBaseURL, account.ID, []byte(cfg.TokenSecret),
		cfg.TokenValidityDuration, cfg.RequestTimeout)
	return newEngine(cfg, account, gw, log)
}

// NewEngineWithGateway wires an explicit gateway; used by tests and by
// callers that bring their own transport.
func NewEngineWithGateway(cfg *config.Config, account guest.Account, gw gateway.Client, log logging.Logger) *Engine {
	return newEngine(cfg, account, gw, log)
}

func newEngine(cfg *config.Config, account guest.Account, gw gateway.Client, log logging.Logger) *Engine {
	c := cache.New(gw, log)
	e := &Engine{
		cfg:      cfg,
		log:      log,
		gw:       gw,
		cache:    c,
		importer: importer.New(gw, c, log),
		linker:   syncer.NewLinker(gw, log),
		account:  account,
	}
	return e
}

// Identity returns the key all guest data is resolved under: the shared
// event id once linked, the account's own id before that.
func (e *Engine) Identity() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.account.EffectiveIdentity()
}

// Account returns a copy of the current account state.
func (e *Engine) Account() guest.Account {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.account
}

// FetchList returns the guest list, from cache when warm.
func (e *Engine) FetchList(ctx context.Context) ([]guest.Guest, error) {
	return e.cache.Fetch(ctx, e.Identity())
}

func (e *Engine) AddGuest(ctx context.Context, g guest.Guest) (*guest.Guest, error) {
	e.mu.RLock()
	shared := e.account.SharedEventID
	e.mu.RUnlock()

	// once linked, every new row carries the shared identity
	g.SharedEventID = shared
	return e.cache.Add(ctx, e.Identity(), g)
}

func (e *Engine) UpdateGuest(ctx context.Context, g guest.Guest) (*guest.Guest, error) {
	return e.cache.Update(ctx, e.Identity(), g)
}

func (e *Engine) DeleteGuest(ctx context.Context, id string) error {
	return e.cache.Delete(ctx, e.Identity(), id)
}

// ConfirmGuest writes the tri-state confirmation; status is coerced into
// {true, false, nil}.
func (e *Engine) ConfirmGuest(ctx context.Context, id string, status any) (*guest.Guest, error) {
	return e.cache.Confirm(ctx, e.Identity(), id, status)
}

func (e *Engine) DeleteAll(ctx context.Context) (int, error) {
	return e.cache.DeleteAll(ctx, e.Identity())
}

// ForceRefresh discards the cached list and pulls a fresh one.
func (e *Engine) ForceRefresh(ctx context.Context) ([]guest.Guest, error) {
	identity := e.Identity()
	e.cache.Invalidate(identity)
	return e.cache.Fetch(ctx, identity)
}

// CleanupDuplicates asks the store to drop duplicate rows for the current
// identity, then invalidates so the next fetch sees the result.
func (e *Engine) CleanupDuplicates(ctx context.Context) (int, error) {
	identity := e.Identity()
	n, err := e.gw.CleanupDuplicates(ctx, identity)
	if err != nil {
		return 0, fmt.Errorf("cleaning up duplicates: %w", err)
	}
	if n > 0 {
		e.cache.Invalidate(identity)
	}
	return n, nil
}

// ImportFromFile feeds an uploaded spreadsheet through the import
// pipeline under the current identity.
func (e *Engine) ImportFromFile(ctx context.Context, r io.Reader, filename string) (*importer.Report, error) {
	return e.importer.ImportFromFile(ctx, e.Identity(), r, filename)
}

// Template returns the downloadable example layout.
func (e *Engine) Template() []byte {
	return importer.Template()
}

// Filtered returns the rows matching f.
func (e *Engine) Filtered(ctx context.Context, f views.Filter) ([]guest.Guest, error) {
	list, err := e.FetchList(ctx)
	if err != nil {
		return nil, err
	}
	return f.Apply(list), nil
}

// Stats tallies the aggregate counters for the current list.
func (e *Engine) Stats(ctx context.Context) (views.Stats, error) {
	list, err := e.FetchList(ctx)
	if err != nil {
		return views.Stats{}, err
	}
	return views.Compute(list), nil
}

// LinkAccounts runs the one-shot reconciliation against inviteeID, with
// the engine's own account as inviter, then reloads local account state
// and restarts the polling scheduler under the shared identity.
func (e *Engine) LinkAccounts(ctx context.Context, inviteeID string) (*syncer.LinkResult, error) {
	result, err := e.linker.Link(ctx, e.Account().ID, inviteeID)
	if err != nil {
		return nil, err
	}
	if err := e.RefreshAccount(ctx); err != nil {
		return nil, err
	}
	e.RestartSync(ctx)
	return result, nil
}

// RefreshAccount re-pulls the account row from the store, picking up
// linking state applied by the partner.
func (e *Engine) RefreshAccount(ctx context.Context) error {
	acc, err := e.gw.GetAccount(ctx, e.Account().ID)
	if err != nil {
		return fmt.Errorf("refreshing account: %w", err)
	}
	e.mu.Lock()
	e.account = *acc
	e.mu.Unlock()
	return nil
}

// StartSync activates the reconciliation scheduler. It only polls while
// the account is linked.
func (e *Engine) StartSync(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.scheduler != nil {
		return
	}
	linked := func() bool {
		e.mu.RLock()
		defer e.mu.RUnlock()
		return e.account.Linked()
	}
	e.scheduler = syncer.NewScheduler(e.cache, e.log, e.account.EffectiveIdentity(), linked,
		e.cfg.PollGraceDelay, e.cfg.PollInterval)
	e.scheduler.Start(ctx)
}

// StopSync tears the scheduler down; call when the owning view unmounts.
func (e *Engine) StopSync() {
	e.mu.Lock()
	s := e.scheduler
	e.scheduler = nil
	e.mu.Unlock()
	if s != nil {
		s.Stop()
	}
}

// RestartSync rebinds the scheduler to the current effective identity,
// needed right after linking changes it.
func (e *Engine) RestartSync(ctx context.Context) {
	e.StopSync()
	e.StartSync(ctx)
}
