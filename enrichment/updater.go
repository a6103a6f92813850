package enrichment

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/poiesic/medenrich/core"
	"github.com/poiesic/medenrich/storage"
)

// updater applies completed enrichment results to the fragment store.
// Store failures are retried here, independently of pipeline retries, so
// a computed result is never discarded because of a transient store
// outage.
type updater struct {
	repo      storage.FragmentRepository
	attempts  int
	baseDelay time.Duration
	logger    *slog.Logger
}

func newUpdater(repo storage.FragmentRepository, attempts int, baseDelay time.Duration, logger *slog.Logger) *updater {
	return &updater{
		repo:      repo,
		attempts:  attempts,
		baseDelay: baseDelay,
		logger:    logger,
	}
}

// apply merges a result into the store. A fragment deleted since
// submission is a logged no-op, not an error.
func (u *updater) apply(ctx context.Context, result *core.EnrichmentResult) error {
	return RetryWithBackoff(ctx, func() error {
		err := u.repo.ApplyEnrichment(ctx, result)
		if err == nil {
			return nil
		}
		if errors.Is(err, storage.ErrNotFound) {
			u.logger.Warn("fragment no longer exists, skipping enrichment update",
				"fragment", result.FragmentID)
			return nil
		}
		return err
	}, u.attempts, u.baseDelay)
}
