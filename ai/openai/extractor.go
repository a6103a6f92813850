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


package openai

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"slices"
	"strings"

	"github.com/poiesic/medenrich/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// KeywordExtractor implements ai.KeywordExtractor using OpenAI-compatible chat APIs.
type KeywordExtractor struct {
	client      llms.Model
	maxKeywords int
	timeout     timeoutFor
	logger      *slog.Logger
}

// keyword is an internal type used for JSON unmarshaling.
// It matches the structure expected by the LLM.
type keyword struct {
	Keyword string  `json:"keyword"`
	Score   float64 `json:"score"`
}

// analysis is the wrapper structure for the LLM's JSON response.
type analysis struct {
	Keywords []keyword `json:"keywords"`
}

// newKeywordExtractor is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newKeywordExtractor(config *ai.Config) (*KeywordExtractor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Use "none" as token for local OpenAI-compatible services that don't require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.KeywordHost),
		openai.WithToken("none"),
		openai.WithModel(config.KeywordModel),
	)
	if err != nil {
		return nil, err
	}

	return &KeywordExtractor{
		client:      client,
		maxKeywords: config.MaxKeywords,
		timeout:     timeoutFor(config.CallTimeout),
		logger:      slog.Default().With("component", "openai-extractor"),
	}, nil
}

// NewKeywordExtractor creates a new keyword extractor using the provided configuration.
//
// Returns ai.KeywordExtractor interface to enforce abstraction.
func NewKeywordExtractor(config *ai.Config) (ai.KeywordExtractor, error) {
	return newKeywordExtractor(config)
}

// ExtractKeywords extracts weighted keywords from text using an LLM.
// Scores outside [0,1] are clamped; results are sorted by score descending
// and capped at the configured maximum count.
func (e *KeywordExtractor) ExtractKeywords(ctx context.Context, text string) ([]ai.Keyword, error) {
	ctx, cancel := e.timeout.bound(ctx)
	defer cancel()

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(buildKeywordPrompt(e.maxKeywords)),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(text),
			},
		},
	}

	// Try up to 3 times in case of malformed JSON
	var result analysis
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := e.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return nil, ai.ErrTimeout
			}
			e.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return nil, classifyServiceError(err)
		}

		if len(response.Choices) < 1 {
			e.logger.Debug("no choices returned from model")
			return nil, ai.ErrEmptyResponse
		}

		choice := response.Choices[0]

		// Strip markdown code fences if present
		responseText := strings.TrimSpace(choice.Content)
		responseText = strings.TrimPrefix(responseText, "```json")
		responseText = strings.TrimPrefix(responseText, "```")
		responseText = strings.TrimSuffix(responseText, "```")
		responseText = strings.TrimSpace(responseText)

		// Try to repair common JSON issues
		responseText = repairJSON(responseText)

		if err := json.Unmarshal([]byte(responseText), &result); err != nil {
			lastErr = err
			e.logger.Warn("error parsing extractor response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		// Success
		lastErr = nil
		break
	}

	if lastErr != nil {
		e.logger.Error("failed to parse extractor response after retries", "err", lastErr)
		return nil, ai.ErrMalformedResponse
	}

	keywords := make([]ai.Keyword, 0, len(result.Keywords))
	for _, k := range result.Keywords {
		phrase := strings.ToLower(strings.TrimSpace(k.Keyword))
		if phrase == "" {
			continue
		}
		score := k.Score
		if score < 0 {
			score = 0
		}
		if score > 1 {
			score = 1
		}
		keywords = append(keywords, ai.Keyword{Text: phrase, Score: score})
	}

	if len(keywords) == 0 {
		return nil, ai.ErrEmptyResponse
	}

	slices.SortFunc(keywords, func(a, b ai.Keyword) int {
		if a.Score == b.Score {
			return 0
		}
		if a.Score < b.Score {
			return 1
		}
		return -1
	})

	if len(keywords) > e.maxKeywords {
		keywords = keywords[:e.maxKeywords]
	}

	e.logger.Debug("extracted keywords", "total", len(result.Keywords), "kept", len(keywords))
	return keywords, nil
}
