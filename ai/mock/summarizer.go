package mock

import (
	"context"
	"strings"
	"sync"
)

// MockSummarizer is a test double for ai.Summarizer.
// It allows custom behavior injection via function fields.
type MockSummarizer struct {
	// SummarizeFunc is called by Summarize if set.
	// If nil, uses default sentence truncation.
	SummarizeFunc func(ctx context.Context, text string, maxLength int) (string, error)

	mu        sync.Mutex
	callCount int
}

// NewMockSummarizer creates a mock summarizer with default behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockSummarizer() *MockSummarizer {
	return &MockSummarizer{}
}

// WithSummarizeFunc injects custom behavior and returns the mock for chaining.
func (m *MockSummarizer) WithSummarizeFunc(fn func(ctx context.Context, text string, maxLength int) (string, error)) *MockSummarizer {
	m.SummarizeFunc = fn
	return m
}

// Summarize returns a deterministic summary of the text.
// Default behavior: the first sentence, truncated to maxLength.
func (m *MockSummarizer) Summarize(ctx context.Context, text string, maxLength int) (string, error) {
	m.mu.Lock()
	m.callCount++
	m.mu.Unlock()

	if m.SummarizeFunc != nil {
		return m.SummarizeFunc(ctx, text, maxLength)
	}

	summary := strings.TrimSpace(text)
	if idx := strings.IndexAny(summary, ".!?"); idx > 0 {
		summary = summary[:idx+1]
	}
	if len(summary) > maxLength {
		summary = strings.TrimSpace(summary[:maxLength])
	}
	return summary, nil
}

// CallCount returns the number of times Summarize was called.
func (m *MockSummarizer) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockSummarizer) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.SummarizeFunc = nil
}
