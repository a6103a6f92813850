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


package ingestion

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/poiesic/medenrich/core"
	"github.com/poiesic/medenrich/enrichment"
	"github.com/poiesic/medenrich/storage"
)

// Ingester splits document text into fragments, persists them
// immediately with empty enrichment fields, and submits one enrichment
// task per fragment. Persisting first means retrieval never waits on
// enrichment; fragments whose task could not be queued stay stored and
// are picked up by a later backfill.
type Ingester struct {
	repo            storage.FragmentRepository
	processor       *enrichment.Processor
	maxFragmentSize int
	logger          *slog.Logger
}

// Option configures an Ingester.
type Option func(*Ingester) error

// WithFragmentSize sets the maximum fragment length in characters.
// Default is 1000.
func WithFragmentSize(n int) Option {
	return func(ing *Ingester) error {
		if n < 1 {
			n = 1
		}
		ing.maxFragmentSize = n
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(ing *Ingester) error {
		if logger == nil {
			logger = slog.Default()
		}
		ing.logger = logger
		return nil
	}
}

// NewIngester creates a new document ingester.
func NewIngester(repo storage.FragmentRepository, processor *enrichment.Processor, opts ...Option) (*Ingester, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}
	if processor == nil {
		return nil, ErrProcessorRequired
	}

	ing := &Ingester{
		repo:            repo,
		processor:       processor,
		maxFragmentSize: 1000,
		logger:          slog.Default().With("component", "ingestion"),
	}

	for _, opt := range opts {
		if err := opt(ing); err != nil {
			return nil, err
		}
	}
	return ing, nil
}

// Result describes the outcome of ingesting one document.
type Result struct {
	FragmentIDs []string
	TaskIDs     []uuid.UUID

	// Unsubmitted lists fragments that were stored but whose enrichment
	// task was rejected (queue full). They stay queryable and can be
	// backfilled later.
	Unsubmitted []string
}

// Ingest splits text into fragments, stores them, and queues enrichment
// at the given priority. Fragments whose content already exists in the
// store are skipped entirely.
func (ing *Ingester) Ingest(ctx context.Context, text string, priority core.Priority) (*Result, error) {
	if err := core.ValidatePriority(priority); err != nil {
		return nil, err
	}

	spans := splitFragments(text, ing.maxFragmentSize)
	if len(spans) == 0 {
		return nil, ErrEmptyDocument
	}

	result := &Result{}
	var fragments []*core.Fragment
	for _, span := range spans {
		id := core.FragmentIDFromContent(span)

		// Content-addressed IDs make re-ingestion of the same text a
		// no-op rather than a reset of existing enrichment.
		if _, err := ing.repo.GetFragment(ctx, id); err == nil {
			ing.logger.Debug("fragment already stored, skipping", "fragment", id)
			continue
		} else if !errors.Is(err, storage.ErrNotFound) {
			return nil, err
		}

		fragments = append(fragments, &core.Fragment{Id: id, Contents: span})
	}

	if len(fragments) > 0 {
		if _, err := ing.repo.InsertFragments(ctx, fragments...); err != nil {
			return nil, err
		}
	}

	for _, fragment := range fragments {
		result.FragmentIDs = append(result.FragmentIDs, fragment.Id)

		taskID, err := ing.processor.Submit(ctx, fragment.Id, fragment.Contents, priority, nil)
		if err != nil {
			if errors.Is(err, enrichment.ErrQueueFull) {
				ing.logger.Warn("enrichment queue full, fragment stored without task",
					"fragment", fragment.Id)
				result.Unsubmitted = append(result.Unsubmitted, fragment.Id)
				continue
			}
			return result, err
		}
		result.TaskIDs = append(result.TaskIDs, taskID)
	}

	ing.logger.Info("document ingested",
		"fragments", len(result.FragmentIDs),
		"queued", len(result.TaskIDs),
		"unsubmitted", len(result.Unsubmitted))
	return result, nil
}
