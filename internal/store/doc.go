// Package store defines interfaces for task persistence operations.
// These interfaces abstract the underlying storage mechanism from the
// application's core logic, so the service layer can be exercised against
// any implementation (the production in-memory store, or a test double).
package store
