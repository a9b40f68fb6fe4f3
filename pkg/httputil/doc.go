// Package httputil fetches API description documents over HTTP.
//
// # Fetching
//
// [Fetcher] downloads a document with automatic retry for transient
// failures:
//
//   - network errors
//   - 5xx server errors
//   - 429 rate limit responses
//
// Other 4xx responses fail immediately. Bodies larger than [MaxBodySize]
// are rejected.
//
// # Caching
//
// When a [Store] (any cache.Cache) is configured, response bodies are stored under a
// key derived from the URL, so repeated runs against the same remote
// document skip the network until the entry expires:
//
//	f := httputil.NewFetcher(nil, c, time.Hour)
//	data, err := f.Fetch(ctx, "https://example.com/petstore.json")
//
// # Retry
//
// [Retry] runs a function with exponential backoff. Only errors wrapped in
// [RetryableError] are retried. The Redis and MongoDB cache tiers use it
// for their startup ping.
package httputil
