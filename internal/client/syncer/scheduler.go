// Package syncer keeps linked accounts looking at the same guest list: a
// one-shot linking routine that tags or copies rows across the two physical
// collections, and a polling scheduler that approximates ongoing
// consistency by refetching on a fixed interval. Pull, don't diff — the
// store has no change feed.
package syncer

import (
	"context"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/plannly/guestsync/internal/client/cache"
	"github.com/plannly/guestsync/internal/logging"
)

const (
	retryBaseDelay   = time.Second
	retryMaxDelay    = 30 * time.Second
	retryMaxAttempts = 3
)

// Scheduler periodically invalidates and refetches the effective identity
// while the account stays linked. Background fetch failures are retried
// with capped exponential backoff and otherwise swallowed; the worst case
// is a stale list until the next tick.
type Scheduler struct {
	cache      *cache.Cache
	log        logging.Logger
	identity   string
	linked     func() bool
	graceDelay time.Duration
	interval   time.Duration

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	running bool
}

// NewScheduler builds a scheduler for identity. linked is consulted before
// every tick; the scheduler goes idle the moment it reports false.
func NewScheduler(c *cache.Cache, log logging.Logger, identity string, linked func() bool, graceDelay, interval time.Duration) *Scheduler {
	return &Scheduler{
		cache:      c,
		log:        log.With("component", "scheduler", "identity", identity),
		identity:   identity,
		linked:     linked,
		graceDelay: graceDelay,
		interval:   interval,
	}
}

// Start launches the polling loop. Calling Start on a running scheduler is
// a no-op.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	s.running = true

	go s.run(ctx)
}

// Stop tears the loop down and waits for it to exit. Safe to call twice.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	cancel, done := s.cancel, s.done
	s.mu.Unlock()

	cancel()
	<-done
}

func (s *Scheduler) run(ctx context.Context) {
	defer close(s.done)

	// initial grace delay lets the UI settle before the first poll
	select {
	case <-ctx.Done():
		return
	case <-time.After(s.graceDelay):
	}

	s.tick(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick discards the cached list unconditionally and pulls a fresh one.
func (s *Scheduler) tick(ctx context.Context) {
	if !s.linked() {
		return
	}

	s.cache.Invalidate(s.identity)

	backoff := retry.WithMaxRetries(retryMaxAttempts-1,
		retry.WithCappedDuration(retryMaxDelay, retry.NewExponential(retryBaseDelay)))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		_, err := s.cache.Fetch(ctx, s.identity)
		return retry.RetryableError(err)
	})
	if err != nil && ctx.Err() == nil {
		s.log.Warn(ctx, "background refresh failed", "error", err)
	}
}
