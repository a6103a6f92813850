package openai

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/poiesic/medenrich/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Summarizer implements ai.Summarizer using OpenAI-compatible chat APIs.
type Summarizer struct {
	client  llms.Model
	timeout timeoutFor
	logger  *slog.Logger
}

// newSummarizer is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newSummarizer(config *ai.Config) (*Summarizer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Use "none" as token for local OpenAI-compatible services that don't require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.SummaryHost),
		openai.WithToken("none"),
		openai.WithModel(config.SummaryModel),
	)
	if err != nil {
		return nil, err
	}

	return &Summarizer{
		client:  client,
		timeout: timeoutFor(config.CallTimeout),
		logger:  slog.Default().With("component", "openai-summarizer"),
	}, nil
}

// NewSummarizer creates a new summarizer using the provided configuration.
//
// Returns ai.Summarizer interface to enforce abstraction.
func NewSummarizer(config *ai.Config) (ai.Summarizer, error) {
	return newSummarizer(config)
}

// Summarize generates a summary of at most maxLength characters.
// Output longer than maxLength is trimmed at a word boundary; an empty
// response is reported as ai.ErrEmptyResponse so callers can fall back.
func (s *Summarizer) Summarize(ctx context.Context, text string, maxLength int) (string, error) {
	ctx, cancel := s.timeout.bound(ctx)
	defer cancel()

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(buildSummaryPrompt(maxLength)),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(text),
			},
		},
	}

	response, err := s.client.GenerateContent(ctx, content, llms.WithTemperature(0.0))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", ai.ErrTimeout
		}
		s.logger.Error("failed to generate summary", "err", err)
		return "", classifyServiceError(err)
	}

	if len(response.Choices) < 1 {
		s.logger.Debug("no choices returned from model")
		return "", ai.ErrEmptyResponse
	}

	summary := strings.TrimSpace(response.Choices[0].Content)
	if summary == "" {
		return "", ai.ErrEmptyResponse
	}

	if len(summary) > maxLength {
		summary = trimToWordBoundary(summary, maxLength)
	}

	s.logger.Debug("generated summary", "input_length", len(text), "summary_length", len(summary))
	return summary, nil
}

// trimToWordBoundary cuts s to at most maxLength bytes, preferring to break
// at the last space inside the limit.
func trimToWordBoundary(s string, maxLength int) string {
	if len(s) <= maxLength {
		return s
	}
	cut := s[:maxLength]
	if idx := strings.LastIndexByte(cut, ' '); idx > maxLength/2 {
		cut = cut[:idx]
	}
	return strings.TrimSpace(cut)
}
