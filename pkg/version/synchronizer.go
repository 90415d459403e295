package version

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/dmitrymomot/docsite/pkg/logger"
)

// Synchronizer serves the cached version and refreshes it from the remote
// when the cached record is stale.
type Synchronizer struct {
	store  Store
	remote Remote
	policy Policy
	now    func() time.Time
	logger  *slog.Logger
	timeout time.Duration
	group   singleflight.Group
}

// Option configures a Synchronizer.
type Option func(*Synchronizer)

// WithPolicy replaces the refresh policy.
func WithPolicy(p Policy) Option {
	return func(s *Synchronizer) {
		s.policy = p
	}
}

// WithMaxAge sets how long a fetched value stays fresh.
// Default: 1 hour
func WithMaxAge(d time.Duration) Option {
	return func(s *Synchronizer) {
		if d > 0 {
			s.policy.MaxAge = d
		}
	}
}

// WithPlaceholders sets the values that always trigger a refresh.
func WithPlaceholders(values ...string) Option {
	return func(s *Synchronizer) {
		s.policy.Placeholders = values
	}
}

// WithFetchTimeout bounds one shared refresh, store writes included.
// Default: 15 seconds
func WithFetchTimeout(d time.Duration) Option {
	return func(s *Synchronizer) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithClock sets the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Synchronizer) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger used for refresh failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Synchronizer) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSynchronizer creates a Synchronizer.
func NewSynchronizer(store Store, remote Remote, opts ...Option) *Synchronizer {
	s := &Synchronizer{
		store:   store,
		remote:  remote,
		policy:  DefaultPolicy(),
		now:     time.Now,
		logger:  logger.NewNope(),
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Current returns the version label, refreshing it first when stale.
// Remote and store failures are logged; the last known value is returned.
func (s *Synchronizer) Current(ctx context.Context) string {
	rec := s.load(ctx)
	if !s.policy.IsStale(rec, s.now()) {
		return rec.Value
	}

	fresh, err := s.refreshShared(ctx)
	if err != nil && !errors.Is(err, ErrSaveFailed) {
		return rec.Value
	}
	return fresh.Value
}

// Refresh fetches the remote version unconditionally and persists it.
// On fetch failure the stored record is left untouched and returned with the error.
func (s *Synchronizer) Refresh(ctx context.Context) (Record, error) {
	return s.refreshShared(ctx)
}

// refreshShared joins concurrent refreshes into one fetch. The fetch is
// detached from the caller that started it and bounded by the fetch
// timeout, so a cancelled request does not fail the others waiting on it.
func (s *Synchronizer) refreshShared(ctx context.Context) (Record, error) {
	ch := s.group.DoChan("refresh", func() (any, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()
		return s.refresh(fctx)
	})

	select {
	case res := <-ch:
		rec, _ := res.Val.(Record)
		return rec, res.Err
	case <-ctx.Done():
		return Record{}, ctx.Err()
	}
}

func (s *Synchronizer) refresh(ctx context.Context) (Record, error) {
	cached := s.load(ctx)

	remote, err := s.remote.Fetch(ctx)
	if err == nil {
		remote, err = Normalize(remote)
	}
	if err != nil {
		s.logger.WarnContext(ctx, "failed to fetch remote version",
			slog.String("cached", cached.Value),
			slog.String("error", err.Error()),
		)
		return cached, err
	}

	next := Record{Value: cached.Value, CheckedAt: s.now()}
	if remote != cached.Value {
		next.Value = remote
		s.logger.InfoContext(ctx, "version updated",
			slog.String("from", cached.Value),
			slog.String("to", remote),
		)
	}

	if err := s.store.Save(ctx, next); err != nil {
		s.logger.WarnContext(ctx, "failed to save version",
			slog.String("version", next.Value),
			slog.String("error", err.Error()),
		)
		if !errors.Is(err, ErrSaveFailed) {
			err = errors.Join(ErrSaveFailed, err)
		}
		return next, err
	}

	return next, nil
}

// load returns the stored record, or {Unknown, zero} when none is available.
func (s *Synchronizer) load(ctx context.Context) Record {
	rec, err := s.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, ErrNoRecord) {
			s.logger.WarnContext(ctx, "failed to load version", slog.String("error", err.Error()))
		}
		return Record{Value: Unknown}
	}
	if rec.Value == "" {
		rec.Value = Unknown
	}
	return rec
}
