// Package ports defines interfaces for external service communication.
package ports

import "context"

// CollectionManager creates and drops the per-language vector collection.
// It is kept apart from VectorIndex so read/write callers don't need
// lifecycle access.
type CollectionManager interface {
	// EnsureCollection creates the collection if it doesn't exist.
	EnsureCollection(ctx context.Context, vectorSize uint64) error

	// DeleteCollection removes the collection and all its points.
	DeleteCollection(ctx context.Context) error
}
