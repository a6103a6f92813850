package badger

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/medenrich/core"
	"github.com/poiesic/medenrich/storage"
)

// FragmentRepository implements storage.FragmentRepository for BadgerDB.
type FragmentRepository struct {
	backend *Backend
}

var _ storage.FragmentRepository = (*FragmentRepository)(nil)

// NewFragmentRepository creates a new FragmentRepository.
func NewFragmentRepository(backend *Backend) (*FragmentRepository, error) {
	return &FragmentRepository{
		backend: backend,
	}, nil
}

// Close releases repository resources.
func (r *FragmentRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *FragmentRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// InsertFragments adds fragments to storage with placeholder enrichment
// fields and HasMetadata=false. This is the store-first half of the
// store-first, update-later protocol.
func (r *FragmentRepository) InsertFragments(ctx context.Context, fragments ...*core.Fragment) ([]*core.Fragment, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, fragment := range fragments {
			if err := core.ValidateFragment(fragment); err != nil {
				return err
			}

			now := time.Now().UTC().Truncate(time.Microsecond)
			if fragment.InsertedAt.IsZero() {
				fragment.InsertedAt = now
			}
			fragment.UpdatedAt = fragment.InsertedAt
			fragment.HasMetadata = false

			key := makeFragmentKey(fragment.Id)
			if err := tx.Set(key, storage.MarshalFragment(fragment)); err != nil {
				return err
			}

			// Track in the pending-metadata index until enrichment lands
			if err := tx.Set(makeUnenrichedKey(fragment.Id), nil); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return fragments, err
}

// ApplyEnrichment merges an enrichment result into the stored fragment.
// The update writes absolute field values keyed by fragment ID, so applying
// the same result twice leaves the store byte-identical.
func (r *FragmentRepository) ApplyEnrichment(ctx context.Context, result *core.EnrichmentResult) error {
	if err := core.ValidateResult(result); err != nil {
		return err
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		fragment, err := r.readFragment(tx, makeFragmentKey(result.FragmentID))
		if err != nil {
			return err
		}
		if fragment == nil {
			return storage.ErrNotFound
		}

		processedAt := result.ProcessedAt.UTC().Truncate(time.Microsecond)
		fragment.Summary = result.Summary
		fragment.SummaryMethod = result.SummaryMethod
		fragment.Keywords = result.Keywords
		fragment.KeywordScores = result.KeywordScores
		fragment.KeywordMethod = result.KeywordMethod
		fragment.SummaryQuality = result.SummaryQuality.Overall
		fragment.SummaryLevel = result.SummaryQuality.Level
		fragment.KeywordQuality = result.KeywordQuality.Overall
		fragment.KeywordLevel = result.KeywordQuality.Level
		fragment.HasMetadata = true
		fragment.ProcessedAt = processedAt
		// UpdatedAt tracks the result, not the wall clock, so a repeated
		// apply is a true no-op.
		fragment.UpdatedAt = processedAt

		if err := tx.Set(makeFragmentKey(fragment.Id), storage.MarshalFragment(fragment)); err != nil {
			return err
		}

		if err := tx.Delete(makeUnenrichedKey(fragment.Id)); err != nil {
			return err
		}

		return tx.Commit()
	}, true)
}

// GetFragment retrieves a single fragment by ID.
func (r *FragmentRepository) GetFragment(ctx context.Context, id string) (*core.Fragment, error) {
	var fragment *core.Fragment
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		fragment, err = r.readFragment(tx, makeFragmentKey(id))
		return err
	}, false)
	if err != nil {
		return nil, err
	}
	if fragment == nil {
		return nil, storage.ErrNotFound
	}
	return fragment, nil
}

// GetFragments retrieves multiple fragments by their IDs.
// Missing fragments are skipped without error.
func (r *FragmentRepository) GetFragments(ctx context.Context, ids ...string) ([]*core.Fragment, error) {
	fragments := make([]*core.Fragment, 0, len(ids))
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			fragment, err := r.readFragment(tx, makeFragmentKey(id))
			if err != nil {
				return err
			}
			if fragment != nil {
				fragments = append(fragments, fragment)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return fragments, nil
}

// ListUnenriched retrieves up to limit fragments with HasMetadata=false.
func (r *FragmentRepository) ListUnenriched(ctx context.Context, limit int) ([]*core.Fragment, error) {
	var fragments []*core.Fragment
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(unenrichedPrefix)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		prefixLen := len(unenrichedPrefix) + 1
		for iter.Rewind(); iter.Valid(); iter.Next() {
			if limit > 0 && len(fragments) >= limit {
				break
			}

			key := iter.Item().Key()
			if len(key) <= prefixLen {
				continue
			}
			id := string(key[prefixLen:])

			fragment, err := r.readFragment(tx, makeFragmentKey(id))
			if err != nil {
				return err
			}
			if fragment != nil {
				fragments = append(fragments, fragment)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return fragments, nil
}

// CountFragments returns the total fragment count and how many are enriched.
func (r *FragmentRepository) CountFragments(ctx context.Context) (total int, enriched int, err error) {
	pending := 0
	err = r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false

		opts.Prefix = []byte(fragmentPrefix)
		iter := tx.NewIterator(opts)
		for iter.Rewind(); iter.Valid(); iter.Next() {
			total++
		}
		iter.Close()

		opts.Prefix = []byte(unenrichedPrefix)
		iter = tx.NewIterator(opts)
		for iter.Rewind(); iter.Valid(); iter.Next() {
			pending++
		}
		iter.Close()

		return nil
	}, false)
	if err != nil {
		return 0, 0, err
	}
	return total, total - pending, nil
}

// DeleteFragments removes fragments by their IDs.
func (r *FragmentRepository) DeleteFragments(ctx context.Context, ids ...string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeFragmentKey(id)
			if _, err := tx.Get(key); err != nil {
				if errors.Is(err, badger.ErrKeyNotFound) {
					return storage.ErrNotFound
				}
				return err
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
			if err := tx.Delete(makeUnenrichedKey(id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// readFragment reads and unmarshals a fragment inside a transaction.
// Returns nil, nil when the key does not exist.
func (r *FragmentRepository) readFragment(tx *badger.Txn, key []byte) (*core.Fragment, error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var fragment *core.Fragment
	err = item.Value(func(val []byte) error {
		var err error
		fragment, err = storage.UnmarshalFragment(val)
		return err
	})
	if err != nil {
		return nil, err
	}
	return fragment, nil
}
