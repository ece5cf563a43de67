// Package expand resolves declarative AS-SET member lists into flat lists of
// AS numbers.
//
// # Pipeline
//
// A MemberSpec marked flat is handed to an external route-filter generator
// (bgpq4 by default) through the Expander interface; everything else passes
// through literally. Expansion calls are memoized and deduplicated per
// (name, depth, sources) key by Cache, so concurrent requests for the same
// logical expansion share one external-process invocation. The Resolver
// applies the fallback retry (targeted sources, then the default source set)
// and the configurable empty-result policy, then merges all per-member
// results into one deduplicated member set.
//
// # Caching model
//
// The cache is constructed once per run and memoizes successes for the
// process lifetime; a short-lived batch tool has no use for eviction.
// Failures are evicted before they propagate, so a failed expansion is
// retried on the next request instead of being replayed from cache.
package expand
