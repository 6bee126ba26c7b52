// Package github reads the upstream license collection through the GitHub
// REST API.
//
// # Architecture
//
// The package implements [driven.ContentSource] with three components:
//
//   - Source: maps directory listings to remote entries and fetches bytes
//   - Client: wraps go-github with rate limiting and error translation
//   - Config: the repository address (owner, repository and ref)
//
// Listings use the contents API, so every entry carries the blob SHA that
// the sync planner compares against the cache. File bytes are downloaded
// from the entry's download_url. Entries without one are read through the
// git blobs API instead.
//
// # Authentication
//
// A token from the configured [driven.TokenProvider] (GITHUB_TOKEN) raises
// the quota from 60 to 5,000 requests per hour. Without one the client is
// unauthenticated, which is enough for a full sync of choosealicense.com.
//
// # Rate Limiting
//
// The RateLimiter throttles requests with a token bucket (golang.org/x/time/rate)
// and tracks the X-RateLimit-* headers. Once the quota is nearly spent it
// waits for the reset, or fails fast with a RateLimitError when the reset is
// far away.
//
// # Errors
//
// Every failure wraps domain.ErrTransientFetch. Calls are never retried;
// the sync engine keeps the cached state for anything that could not be
// fetched.
package github
