// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package reprocess

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/poiesic/medenrich/core"
	"github.com/poiesic/medenrich/enrichment"
	"github.com/poiesic/medenrich/storage"
)

// Backfiller resubmits stored fragments that never received enrichment,
// typically after a crash or a period of queue saturation. It honors the
// processor's backpressure: a full queue makes the backfiller wait with
// backoff rather than drop fragments.
type Backfiller struct {
	repo           storage.FragmentRepository
	processor      *enrichment.Processor
	priority       core.Priority
	baseDelay      time.Duration
	maxDelay       time.Duration
	progressWriter io.Writer
	reportEvery    int
	logger         *slog.Logger
}

// Option configures a Backfiller.
type Option func(*Backfiller) error

// WithPriority sets the priority for resubmitted tasks. Backfill work
// defaults to PriorityLow so it never starves live ingestion.
func WithPriority(priority core.Priority) Option {
	return func(b *Backfiller) error {
		if err := core.ValidatePriority(priority); err != nil {
			return err
		}
		b.priority = priority
		return nil
	}
}

// WithRetryDelay sets the base delay used while waiting for queue
// capacity. The delay doubles up to a cap. Default is 100ms.
func WithRetryDelay(base time.Duration) Option {
	return func(b *Backfiller) error {
		if base <= 0 {
			base = time.Millisecond
		}
		b.baseDelay = base
		return nil
	}
}

// WithProgress enables progress reporting to the given writer every n
// fragments.
func WithProgress(w io.Writer, n int) Option {
	return func(b *Backfiller) error {
		b.progressWriter = w
		b.reportEvery = n
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(b *Backfiller) error {
		if logger == nil {
			logger = slog.Default()
		}
		b.logger = logger
		return nil
	}
}

// NewBackfiller creates a backfiller over the given store and processor.
func NewBackfiller(repo storage.FragmentRepository, processor *enrichment.Processor, opts ...Option) (*Backfiller, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}
	if processor == nil {
		return nil, ErrProcessorRequired
	}

	b := &Backfiller{
		repo:        repo,
		processor:   processor,
		priority:    core.PriorityLow,
		baseDelay:   100 * time.Millisecond,
		maxDelay:    5 * time.Second,
		reportEvery: 10,
		logger:      slog.Default().With("component", "reprocess"),
	}

	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Run submits every unenriched fragment for enrichment and returns how
// many were submitted. It returns once all submissions are queued, not
// once they complete.
func (b *Backfiller) Run(ctx context.Context) (int, error) {
	fragments, err := b.repo.ListUnenriched(ctx, 0)
	if err != nil {
		return 0, err
	}
	if len(fragments) == 0 {
		b.logger.Info("no unenriched fragments to backfill")
		return 0, nil
	}

	var progress *ProgressTracker
	if b.progressWriter != nil {
		progress = NewProgressTracker(b.progressWriter, len(fragments), b.reportEvery)
		progress.Start()
	}

	b.logger.Info("backfill started", "fragments", len(fragments), "priority", b.priority)

	submitted := 0
	for _, fragment := range fragments {
		if err := b.submit(ctx, fragment); err != nil {
			return submitted, err
		}
		submitted++
		if progress != nil {
			progress.Increment(1)
		}
	}

	if progress != nil {
		progress.Finish()
	}
	b.logger.Info("backfill complete", "submitted", submitted)
	return submitted, nil
}

// submit queues one fragment, waiting with exponential backoff while the
// queue is full.
func (b *Backfiller) submit(ctx context.Context, fragment *core.Fragment) error {
	delay := b.baseDelay
	for {
		_, err := b.processor.Submit(ctx, fragment.Id, fragment.Contents, b.priority, nil)
		if err == nil {
			return nil
		}
		if !errors.Is(err, enrichment.ErrQueueFull) {
			return err
		}

		b.logger.Debug("enrichment queue full, backing off",
			"fragment", fragment.Id, "delay", delay)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		if delay < b.maxDelay {
			delay *= 2
		}
	}
}
