// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - ContentSource: Lists and fetches files of the upstream collection
//   - CacheStore: Persists the license/data/preference cache
//   - ConfigStore: Application configuration
//   - TokenProvider: Access tokens for the GitHub API
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
