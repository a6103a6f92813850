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


package medenrich

import (
	"context"
	"log/slog"

	"github.com/poiesic/medenrich/ai"
	"github.com/poiesic/medenrich/ai/openai"
	"github.com/poiesic/medenrich/enrichment"
	"github.com/poiesic/medenrich/ingestion"
	"github.com/poiesic/medenrich/quality"
	"github.com/poiesic/medenrich/reprocess"
	"github.com/poiesic/medenrich/storage"
	"github.com/poiesic/medenrich/storage/badger"
)

// Database bundles the fragment store, the AI provider, and the quality
// evaluator behind one handle. It is the composition root for the
// enrichment subsystems.
type Database struct {
	backend      *badger.Backend
	fragmentRepo storage.FragmentRepository
	provider     ai.AIProvider
	evaluator    *quality.Evaluator
	logger       *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	aiConfig *ai.Config
	provider ai.AIProvider
	terms    []string
}

// WithAIConfig sets the AI service configuration.
func WithAIConfig(config *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		o.aiConfig = config
	}
}

// WithAIProvider injects a pre-built provider, bypassing the OpenAI
// client construction. Used by tests and embedders.
func WithAIProvider(provider ai.AIProvider) DatabaseOption {
	return func(o *databaseOptions) {
		o.provider = provider
	}
}

// WithDomainTerms overrides the evaluator's medical-term dictionary.
func WithDomainTerms(terms []string) DatabaseOption {
	return func(o *databaseOptions) {
		o.terms = terms
	}
}

// NewDatabase opens the fragment store at filePath and wires the AI
// provider and quality evaluator.
func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}

	fragmentRepo, err := badger.NewFragmentRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			fragmentRepo.Close()
			backend.Close()
			return nil, err
		}
	}

	var evalOpts []quality.Option
	if options.terms != nil {
		evalOpts = append(evalOpts, quality.WithTerms(options.terms))
	}
	evaluator := quality.NewEvaluator(&quality.Config{
		MinSummaryChars: 40,
		MaxSummaryChars: options.aiConfig.MaxSummaryLength,
		MinKeywords:     options.aiConfig.MinKeywords,
		MaxKeywords:     options.aiConfig.MaxKeywords,
		DomainThreshold: 0.15,
	}, evalOpts...)

	return &Database{
		backend:      backend,
		fragmentRepo: fragmentRepo,
		provider:     provider,
		evaluator:    evaluator,
		logger:       slog.Default(),
	}, nil
}

// Close releases the AI provider and storage resources.
func (db *Database) Close() error {
	if err := db.provider.Close(); err != nil {
		db.logger.Error("error closing AI provider", "err", err)
	}

	if err := db.fragmentRepo.Close(); err != nil {
		db.logger.Error("error closing fragment repository", "err", err)
		return err
	}

	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// FragmentRepository returns the fragment store.
func (db *Database) FragmentRepository() storage.FragmentRepository {
	return db.fragmentRepo
}

// Evaluator returns the quality evaluator.
func (db *Database) Evaluator() *quality.Evaluator {
	return db.evaluator
}

// Healthy probes the AI provider.
func (db *Database) Healthy(ctx context.Context) error {
	return db.provider.Healthy(ctx)
}

// NewProcessor creates an enrichment processor over this database.
// The caller owns its lifecycle.
func (db *Database) NewProcessor(opts ...enrichment.Option) (*enrichment.Processor, error) {
	return enrichment.NewProcessor(db.fragmentRepo, db.provider, db.evaluator, opts...)
}

// NewIngester creates a document ingester feeding the given processor.
func (db *Database) NewIngester(processor *enrichment.Processor, opts ...ingestion.Option) (*ingestion.Ingester, error) {
	return ingestion.NewIngester(db.fragmentRepo, processor, opts...)
}

// NewBackfiller creates a backfiller feeding the given processor.
func (db *Database) NewBackfiller(processor *enrichment.Processor, opts ...reprocess.Option) (*reprocess.Backfiller, error) {
	return reprocess.NewBackfiller(db.fragmentRepo, processor, opts...)
}
