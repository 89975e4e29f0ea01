package cover

import (
	"context"
	"log/slog"

	"github.com/sphene/coda/internal/library"
)

const defaultResultBuffer = 16

// Fetcher retrieves raw cover art for a track key. A nil slice with a nil
// error means the daemon has no art for the key.
type Fetcher interface {
	CoverArt(ctx context.Context, key string) ([]byte, error)
}

// Result is one delivered cover: the track key and the raw image bytes,
// nil when no art exists for the key.
type Result struct {
	Key  string
	Data []byte
}

// Loader serves covers out of a Cache, fetching misses on goroutines and
// delivering on-demand results over a buffered channel. Delivery is best
// effort: a full channel drops the result rather than blocking, and the
// cache still holds it for the next request.
type Loader struct {
	cache   *Cache
	fetcher Fetcher
	results chan Result
	logger  *slog.Logger
}

// LoaderOption adjusts Loader construction.
type LoaderOption func(*Loader)

// WithResultBuffer sets the result channel capacity.
func WithResultBuffer(n int) LoaderOption {
	return func(l *Loader) {
		if n > 0 {
			l.results = make(chan Result, n)
		}
	}
}

// WithLogger sets the logger used for fetch failures.
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoader returns a Loader backed by the given cache and fetcher.
func NewLoader(cache *Cache, fetcher Fetcher, opts ...LoaderOption) *Loader {
	l := &Loader{
		cache:   cache,
		fetcher: fetcher,
		results: make(chan Result, defaultResultBuffer),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Results is the channel on-demand loads deliver over.
func (l *Loader) Results() <-chan Result {
	return l.results
}

// Load requests the cover for key and delivers it over Results. A cached
// result, hit or recorded miss, is delivered immediately; an unknown key
// starts one fetch goroutine; a key already being fetched is left alone.
// If that in-flight fetch is a prefetch it only fills the cache, and the
// next Load for the key serves the now-cached result. The pending mark is
// set before Load returns, so concurrent requests for one key cost one
// daemon call.
func (l *Loader) Load(ctx context.Context, key string) {
	if key == "" {
		return
	}
	data, state := l.cache.Begin(key)
	switch state {
	case FetchCached:
		l.deliver(key, data)
	case FetchStarted:
		go l.fetch(ctx, key, true)
	}
}

// Prefetch warms the cache for key without delivering anything. Cached
// and in-flight keys are skipped.
func (l *Loader) Prefetch(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if _, state := l.cache.Begin(key); state == FetchStarted {
		go l.fetch(ctx, key, false)
	}
}

// PrefetchAround warms the covers adjacent to the current queue position.
func (l *Loader) PrefetchAround(ctx context.Context, queue []library.Track, current int) {
	for _, key := range PrefetchTargets(queue, current) {
		l.Prefetch(ctx, key)
	}
}

func (l *Loader) fetch(ctx context.Context, key string, deliver bool) {
	data, err := l.fetcher.CoverArt(ctx, key)
	if err != nil {
		l.logger.Debug("cover fetch failed", "key", key, "error", err)
		data = nil
	}
	l.cache.Insert(key, data)
	if deliver {
		l.deliver(key, data)
	}
}

func (l *Loader) deliver(key string, data []byte) {
	select {
	case l.results <- Result{Key: key, Data: data}:
	default:
	}
}
