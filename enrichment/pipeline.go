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


package enrichment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/medenrich/ai"
	"github.com/poiesic/medenrich/core"
	"github.com/poiesic/medenrich/quality"
)

// pipeline runs the per-task enrichment stages: concurrent summary and
// keyword branches, each with a local fallback, followed by concurrent
// quality evaluation of both outputs.
//
// Branch errors split two ways. Transient service errors (timeouts, rate
// limits, malformed responses) propagate out of run so the caller can
// requeue the task. Any other service error is treated as the collaborator
// being unavailable: the branch substitutes its local heuristic, tags the
// result MethodFallback, and the task still completes.
type pipeline struct {
	summarizer       ai.Summarizer
	extractor        ai.KeywordExtractor
	evaluator        *quality.Evaluator
	maxSummaryLength int
	maxKeywords      int
	logger           *slog.Logger
}

type summaryOutcome struct {
	summary string
	method  core.MethodKind
	err     error
}

type keywordOutcome struct {
	keywords []string
	scores   []float64
	method   core.MethodKind
	err      error
}

func newPipeline(summarizer ai.Summarizer, extractor ai.KeywordExtractor,
	evaluator *quality.Evaluator, maxSummaryLength, maxKeywords int, logger *slog.Logger) *pipeline {
	return &pipeline{
		summarizer:       summarizer,
		extractor:        extractor,
		evaluator:        evaluator,
		maxSummaryLength: maxSummaryLength,
		maxKeywords:      maxKeywords,
		logger:           logger,
	}
}

// run executes the pipeline for one task and assembles the result.
// A returned error is always transient; the task itself carries no state
// changes from a failed run.
func (pl *pipeline) run(ctx context.Context, task *core.Task) (*core.EnrichmentResult, error) {
	start := time.Now()

	summaryCh := make(chan summaryOutcome, 1)
	keywordCh := make(chan keywordOutcome, 1)

	go func() {
		summaryCh <- pl.runSummary(ctx, task)
	}()
	go func() {
		keywordCh <- pl.runKeywords(ctx, task)
	}()

	summary := <-summaryCh
	keywords := <-keywordCh

	// Transient errors bubble up for the retry path. Both branches have
	// fully resolved by now, so nothing is left running.
	if summary.err != nil {
		return nil, fmt.Errorf("summary generation: %w", summary.err)
	}
	if keywords.err != nil {
		return nil, fmt.Errorf("keyword extraction: %w", keywords.err)
	}

	var summaryScore, keywordScore core.QualityScore
	scoreDone := make(chan struct{})
	go func() {
		summaryScore = pl.evaluator.EvaluateSummary(task.Text, summary.summary)
		close(scoreDone)
	}()
	keywordScore = pl.evaluator.EvaluateKeywords(task.Text, keywords.keywords, keywords.scores)
	<-scoreDone

	return &core.EnrichmentResult{
		FragmentID:     task.FragmentID,
		Summary:        summary.summary,
		SummaryMethod:  summary.method,
		Keywords:       keywords.keywords,
		KeywordScores:  keywords.scores,
		KeywordMethod:  keywords.method,
		SummaryQuality: summaryScore,
		KeywordQuality: keywordScore,
		ProcessingTime: time.Since(start),
		ProcessedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}, nil
}

func (pl *pipeline) runSummary(ctx context.Context, task *core.Task) summaryOutcome {
	summary, err := pl.summarizer.Summarize(ctx, task.Text, pl.maxSummaryLength)
	if err == nil {
		return summaryOutcome{summary: summary, method: core.MethodService}
	}
	if ai.IsTransient(err) {
		return summaryOutcome{err: err}
	}

	pl.logger.Warn("summarization service unavailable, using truncation fallback",
		"task", task.Id, "fragment", task.FragmentID, "err", err)
	return summaryOutcome{
		summary: fallbackSummary(task.Text, pl.maxSummaryLength),
		method:  core.MethodFallback,
	}
}

func (pl *pipeline) runKeywords(ctx context.Context, task *core.Task) keywordOutcome {
	extracted, err := pl.extractor.ExtractKeywords(ctx, task.Text)
	if err == nil {
		keywords := make([]string, len(extracted))
		scores := make([]float64, len(extracted))
		for i, kw := range extracted {
			keywords[i] = kw.Text
			scores[i] = kw.Score
		}
		return keywordOutcome{keywords: keywords, scores: scores, method: core.MethodService}
	}
	if ai.IsTransient(err) {
		return keywordOutcome{err: err}
	}

	pl.logger.Warn("keyword service unavailable, using frequency fallback",
		"task", task.Id, "fragment", task.FragmentID, "err", err)
	keywords, scores := fallbackKeywords(task.Text, pl.maxKeywords)
	return keywordOutcome{keywords: keywords, scores: scores, method: core.MethodFallback}
}
