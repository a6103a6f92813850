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


package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/medenrich"
	"github.com/poiesic/medenrich/ai"
	"github.com/poiesic/medenrich/config"
	"github.com/poiesic/medenrich/core"
	"github.com/poiesic/medenrich/enrichment"
	"github.com/poiesic/medenrich/ingestion"
	"github.com/poiesic/medenrich/reprocess"
	"github.com/poiesic/medenrich/storage/badger"

	"github.com/google/uuid"
)

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "medenrich",
		Usage: "Asynchronous enrichment pipeline for medical document fragments",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML configuration file",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "ingest",
				Usage:  "Split a document into fragments, store them, and enrich them",
				Action: ingestCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to BadgerDB database directory",
					},
					&cli.StringFlag{
						Name:    "file",
						Aliases: []string{"f"},
						Usage:   "Document file to ingest (- for stdin)",
						Value:   "-",
					},
					&cli.StringFlag{
						Name:    "priority",
						Aliases: []string{"p"},
						Usage:   "Task priority (low, medium, high, urgent)",
						Value:   "medium",
					},
					&cli.StringFlag{
						Name:  "summary-host",
						Usage: "Summarization service host URL",
					},
					&cli.StringFlag{
						Name:  "keyword-host",
						Usage: "Keyword extraction service host URL",
					},
					&cli.StringFlag{
						Name:  "summary-model",
						Usage: "Summarization model name",
					},
					&cli.StringFlag{
						Name:  "keyword-model",
						Usage: "Keyword extraction model name",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of concurrent enrichment workers",
					},
					&cli.IntFlag{
						Name:  "fragment-size",
						Usage: "Maximum fragment size in characters",
					},
				},
			},
			{
				Name:   "reprocess",
				Usage:  "Enqueue all stored fragments that still lack metadata",
				Action: reprocessCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to BadgerDB database directory",
					},
					&cli.StringFlag{
						Name:    "priority",
						Aliases: []string{"p"},
						Usage:   "Task priority (low, medium, high, urgent)",
						Value:   "low",
					},
					&cli.StringFlag{
						Name:  "summary-host",
						Usage: "Summarization service host URL",
					},
					&cli.StringFlag{
						Name:  "keyword-host",
						Usage: "Keyword extraction service host URL",
					},
					&cli.StringFlag{
						Name:  "summary-model",
						Usage: "Summarization model name",
					},
					&cli.StringFlag{
						Name:  "keyword-model",
						Usage: "Keyword extraction model name",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of concurrent enrichment workers",
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N fragments",
						Value: 10,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay when the queue is full",
						Value: 100 * time.Millisecond,
					},
				},
			},
			{
				Name:   "status",
				Usage:  "Show fragment counts for a database",
				Action: statusCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to BadgerDB database directory",
					},
				},
			},
		},
	}
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

// loadConfig reads the configuration file (when given) and applies
// command-line overrides on top of it.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}

	if c.IsSet("db") {
		cfg.Store.Path = c.String("db")
	}
	if c.IsSet("summary-host") {
		cfg.AI.SummaryHost = c.String("summary-host")
	}
	if c.IsSet("keyword-host") {
		cfg.AI.KeywordHost = c.String("keyword-host")
	}
	if c.IsSet("summary-model") {
		cfg.AI.SummaryModel = c.String("summary-model")
	}
	if c.IsSet("keyword-model") {
		cfg.AI.KeywordModel = c.String("keyword-model")
	}
	if c.IsSet("workers") {
		cfg.Enrichment.Workers = c.Int("workers")
	}
	if c.IsSet("fragment-size") {
		cfg.Ingestion.FragmentSize = c.Int("fragment-size")
	}

	return cfg, nil
}

func parsePriority(s string) (core.Priority, error) {
	switch strings.ToLower(s) {
	case "low":
		return core.PriorityLow, nil
	case "medium":
		return core.PriorityMedium, nil
	case "high":
		return core.PriorityHigh, nil
	case "urgent":
		return core.PriorityUrgent, nil
	default:
		return 0, fmt.Errorf("invalid priority %q: must be one of low, medium, high, urgent", s)
	}
}

func aiConfigFrom(cfg *config.Config) *ai.Config {
	return ai.NewConfig(
		ai.WithSummaryHost(cfg.AI.SummaryHost),
		ai.WithKeywordHost(cfg.AI.KeywordHost),
		ai.WithSummaryModel(cfg.AI.SummaryModel),
		ai.WithKeywordModel(cfg.AI.KeywordModel),
		ai.WithMaxSummaryLength(cfg.AI.MaxSummaryLength),
		ai.WithKeywordBounds(cfg.AI.MinKeywords, cfg.AI.MaxKeywords),
		ai.WithCallTimeout(cfg.AI.CallTimeout),
	)
}

func processorOptions(cfg *config.Config) []enrichment.Option {
	return []enrichment.Option{
		enrichment.WithWorkers(cfg.Enrichment.Workers),
		enrichment.WithQueueCapacity(cfg.Enrichment.QueueCapacity),
		enrichment.WithMaxRetries(cfg.Enrichment.MaxRetries),
		enrichment.WithHistorySize(cfg.Enrichment.HistorySize),
		enrichment.WithMonitorInterval(cfg.Enrichment.MonitorInterval),
		enrichment.WithStuckThreshold(cfg.Enrichment.StuckThreshold),
		enrichment.WithStoreRetry(cfg.Enrichment.StoreRetryAttempts, cfg.Enrichment.StoreRetryBaseDelay),
		enrichment.WithSummaryLength(cfg.AI.MaxSummaryLength),
		enrichment.WithMaxKeywords(cfg.AI.MaxKeywords),
	}
}

func readDocument(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read document: %w", err)
	}
	return string(data), nil
}

func ingestCommand(c *cli.Context) error {
	ctx := context.Background()

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	priority, err := parsePriority(c.String("priority"))
	if err != nil {
		return err
	}

	text, err := readDocument(c.String("file"))
	if err != nil {
		return err
	}

	db, err := medenrich.NewDatabase(cfg.Store.Path, medenrich.WithAIConfig(aiConfigFrom(cfg)))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	processor, err := db.NewProcessor(processorOptions(cfg)...)
	if err != nil {
		return fmt.Errorf("failed to create processor: %w", err)
	}
	if err := processor.Start(ctx); err != nil {
		return fmt.Errorf("failed to start processor: %w", err)
	}

	ingester, err := db.NewIngester(processor, ingestion.WithFragmentSize(cfg.Ingestion.FragmentSize))
	if err != nil {
		stopProcessor(processor)
		return fmt.Errorf("failed to create ingester: %w", err)
	}

	result, err := ingester.Ingest(ctx, text, priority)
	if err != nil {
		stopProcessor(processor)
		return fmt.Errorf("ingestion failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Database: %s\n", cfg.Store.Path)
	fmt.Fprintf(os.Stderr, "Fragments stored: %d\n", len(result.FragmentIDs))
	fmt.Fprintf(os.Stderr, "Tasks submitted: %d\n", len(result.TaskIDs))
	if len(result.Unsubmitted) > 0 {
		fmt.Fprintf(os.Stderr, "Queue full, stored without enrichment: %d (run reprocess later)\n", len(result.Unsubmitted))
	}

	waitForTasks(ctx, processor, result.TaskIDs)

	stats := processor.Stats()
	fmt.Fprintf(os.Stderr, "Completed: %d, failed: %d, degraded: %d\n",
		stats.Completed, stats.Failed, stats.Degraded)
	if stats.AverageLatency > 0 {
		fmt.Fprintf(os.Stderr, "Average latency: %s\n", stats.AverageLatency.Round(time.Millisecond))
	}

	return stopProcessor(processor)
}

func reprocessCommand(c *cli.Context) error {
	ctx := context.Background()

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	priority, err := parsePriority(c.String("priority"))
	if err != nil {
		return err
	}
	reportInterval := c.Int("report-interval")
	if reportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}

	db, err := medenrich.NewDatabase(cfg.Store.Path, medenrich.WithAIConfig(aiConfigFrom(cfg)))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	processor, err := db.NewProcessor(processorOptions(cfg)...)
	if err != nil {
		return fmt.Errorf("failed to create processor: %w", err)
	}
	if err := processor.Start(ctx); err != nil {
		return fmt.Errorf("failed to start processor: %w", err)
	}

	backfiller, err := db.NewBackfiller(processor,
		reprocess.WithPriority(priority),
		reprocess.WithRetryDelay(c.Duration("retry-delay")),
		reprocess.WithProgress(os.Stderr, reportInterval),
	)
	if err != nil {
		stopProcessor(processor)
		return fmt.Errorf("failed to create backfiller: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Database: %s\n", cfg.Store.Path)

	submitted, err := backfiller.Run(ctx)
	if err != nil {
		stopProcessor(processor)
		return fmt.Errorf("reprocessing failed: %w", err)
	}

	waitForDrain(ctx, processor)

	stats := processor.Stats()
	fmt.Fprintf(os.Stderr, "Submitted: %d, completed: %d, failed: %d, degraded: %d\n",
		submitted, stats.Completed, stats.Failed, stats.Degraded)

	return stopProcessor(processor)
}

func statusCommand(c *cli.Context) error {
	ctx := context.Background()

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	backend, err := badger.OpenBackend(cfg.Store.Path, false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	repo, err := badger.NewFragmentRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}
	defer repo.Close()

	total, enriched, err := repo.CountFragments(ctx)
	if err != nil {
		return fmt.Errorf("failed to count fragments: %w", err)
	}

	fmt.Printf("Database: %s\n", cfg.Store.Path)
	fmt.Printf("Fragments: %d\n", total)
	fmt.Printf("Enriched: %d\n", enriched)
	fmt.Printf("Pending: %d\n", total-enriched)

	return nil
}

// waitForTasks blocks until every submitted task reaches a terminal
// state. Tasks evicted from the history window are already terminal.
func waitForTasks(ctx context.Context, processor *enrichment.Processor, ids []uuid.UUID) {
	pending := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		pending[id] = struct{}{}
	}

	for len(pending) > 0 {
		for id := range pending {
			status, err := processor.Status(id)
			if errors.Is(err, enrichment.ErrTaskNotFound) {
				delete(pending, id)
				continue
			}
			if err != nil {
				return
			}
			switch status {
			case core.TaskCompleted, core.TaskFailed, core.TaskCancelled:
				delete(pending, id)
			}
		}
		if len(pending) == 0 {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(200 * time.Millisecond):
		}
	}
}

// waitForDrain blocks until the queue is empty and no worker holds a task.
func waitForDrain(ctx context.Context, processor *enrichment.Processor) {
	for {
		stats := processor.Stats()
		if stats.QueueDepth == 0 && stats.ActiveWorkers == 0 {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(200 * time.Millisecond):
		}
	}
}

func stopProcessor(processor *enrichment.Processor) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return processor.Stop(ctx)
}
