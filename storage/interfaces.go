package storage

import (
	"context"

	"github.com/poiesic/medenrich/core"
)

// Repository provides common storage operations shared across repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// The context passed to fn may contain transaction state.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// FragmentRepository provides operations for managing document fragments.
//
// Ingestion follows a store-first protocol: fragments are inserted
// immediately with empty enrichment fields and HasMetadata=false, and the
// enrichment metadata arrives later through ApplyEnrichment. Retrieval is
// therefore never blocked on enrichment.
type FragmentRepository interface {
	Repository

	// InsertFragments adds one or more fragments to storage with placeholder
	// enrichment fields and HasMetadata=false.
	// Sets InsertedAt timestamp if not already set.
	// Returns the fragments with timestamps populated.
	InsertFragments(ctx context.Context, fragments ...*core.Fragment) ([]*core.Fragment, error)

	// ApplyEnrichment applies a partial, idempotent update keyed by the
	// result's fragment ID: summary, keywords, method tags, quality scores,
	// processing timestamp and HasMetadata=true. Applying the same result
	// twice leaves the store unchanged.
	// Returns ErrNotFound if the fragment no longer exists; callers treat
	// that as a logged no-op, not a failure.
	ApplyEnrichment(ctx context.Context, result *core.EnrichmentResult) error

	// GetFragment retrieves a single fragment by ID.
	// Returns ErrNotFound if the fragment doesn't exist.
	GetFragment(ctx context.Context, id string) (*core.Fragment, error)

	// GetFragments retrieves multiple fragments by their IDs.
	// Returns only the fragments that exist (no error for missing fragments).
	GetFragments(ctx context.Context, ids ...string) ([]*core.Fragment, error)

	// ListUnenriched retrieves up to limit fragments with HasMetadata=false,
	// in insertion order. Used by the backfill pass.
	ListUnenriched(ctx context.Context, limit int) ([]*core.Fragment, error)

	// CountFragments returns the total number of fragments and how many of
	// them carry enrichment metadata.
	CountFragments(ctx context.Context) (total int, enriched int, err error)

	// DeleteFragments removes fragments by their IDs.
	// Also removes associated indices.
	// Returns ErrNotFound if any fragment doesn't exist.
	DeleteFragments(ctx context.Context, ids ...string) error
}
