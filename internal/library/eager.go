package library

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

const (
	defaultRetryAttempts = 3
	defaultRetryBase     = time.Second
	defaultRetryMax      = 8 * time.Second
)

type loader struct {
	attempts  int
	baseDelay time.Duration
	maxDelay  time.Duration
	sleep     func(time.Duration)
	logger    *slog.Logger
}

// Option adjusts loader behavior.
type Option func(*loader)

// WithRetryAttempts sets how many times the catalog fetch is tried before
// giving up. Values below 1 are ignored.
func WithRetryAttempts(n int) Option {
	return func(l *loader) {
		if n >= 1 {
			l.attempts = n
		}
	}
}

// WithRetryBackoff sets the base and maximum delay between catalog fetch
// attempts. The delay doubles per retry and never exceeds max.
func WithRetryBackoff(base, max time.Duration) Option {
	return func(l *loader) {
		if base > 0 {
			l.baseDelay = base
		}
		if max > 0 {
			l.maxDelay = max
		}
	}
}

// WithSleeper replaces the delay function used between retries. Tests use
// this to observe backpressure without waiting.
func WithSleeper(sleep func(time.Duration)) Option {
	return func(l *loader) {
		if sleep != nil {
			l.sleep = sleep
		}
	}
}

// WithLogger sets the logger used for retry warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(l *loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

func newLoader(opts ...Option) *loader {
	l := &loader{
		attempts:  defaultRetryAttempts,
		baseDelay: defaultRetryBase,
		maxDelay:  defaultRetryMax,
		sleep:     time.Sleep,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadEager fetches the whole catalog up front and assembles the complete
// library. It probes the daemon first and fails fast when the probe does
// not answer; the catalog fetch itself is retried with exponential
// backoff. Tracks with an empty album-artist after canonicalization are
// dropped.
func LoadEager(ctx context.Context, src Source, opts ...Option) (*Library, error) {
	l := newLoader(opts...)

	if err := src.Ping(ctx); err != nil {
		return nil, fmt.Errorf("probe daemon: %w", err)
	}

	tracks, err := l.fetchCatalog(ctx, src)
	if err != nil {
		return nil, err
	}

	tracks = canonicalize(tracks)
	kept := tracks[:0]
	for _, t := range tracks {
		if t.AlbumArtist != "" {
			kept = append(kept, t)
		}
	}
	return buildLibrary(kept), nil
}

func (l *loader) fetchCatalog(ctx context.Context, src Source) ([]Track, error) {
	var lastErr error
	for attempt := 1; attempt <= l.attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tracks, err := src.AllTracks(ctx)
		if err == nil {
			return tracks, nil
		}
		lastErr = err
		if attempt < l.attempts {
			delay := l.backoffDelay(attempt)
			l.logger.Warn("catalog fetch failed, retrying",
				"attempt", attempt,
				"max_attempts", l.attempts,
				"delay", delay,
				"error", err)
			l.sleep(delay)
		}
	}
	return nil, fmt.Errorf("fetch catalog: failed after %d attempts: %w", l.attempts, lastErr)
}

func (l *loader) backoffDelay(attempt int) time.Duration {
	delay := l.baseDelay
	for i := 1; i < attempt; i++ {
		if delay > l.maxDelay/2 {
			return l.maxDelay
		}
		delay *= 2
	}
	if delay > l.maxDelay {
		return l.maxDelay
	}
	return delay
}
