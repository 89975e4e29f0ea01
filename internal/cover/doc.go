// Package cover caches, plans, and loads album art.
//
// # Caching
//
// Cache is a bounded LRU keyed by track key. Misses are cached too: once
// the daemon reports no art for a key, the nil result is stored so the
// key is not asked for again until eviction. A separate pending set
// records fetches in flight; Begin folds lookup, pending check, and
// pending mark into one locked step so that exactly one of any number of
// concurrent requests for a key performs the fetch.
//
// # Loading
//
// Loader runs fetches on goroutines. On-demand loads deliver over a
// buffered result channel the UI drains; delivery never blocks, a full
// channel drops the result and the cache keeps it for the next request.
// Prefetches warm the cache silently. PrefetchTargets plans the warm set
// as the queue neighbors directly before and after the current position,
// and plans nothing when nothing is playing.
package cover
