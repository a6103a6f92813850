package mock

import (
	"context"
	"strings"
	"sync"

	"github.com/poiesic/medenrich/ai"
)

// MockKeywordExtractor is a test double for ai.KeywordExtractor.
// It allows custom behavior injection via function fields.
type MockKeywordExtractor struct {
	// ExtractKeywordsFunc is called by ExtractKeywords if set.
	// If nil, uses default simple word extraction.
	ExtractKeywordsFunc func(ctx context.Context, text string) ([]ai.Keyword, error)

	mu        sync.Mutex
	callCount int
}

// NewMockKeywordExtractor creates a mock keyword extractor with default behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockKeywordExtractor() *MockKeywordExtractor {
	return &MockKeywordExtractor{}
}

// WithExtractKeywordsFunc injects custom behavior and returns the mock for chaining.
func (m *MockKeywordExtractor) WithExtractKeywordsFunc(fn func(ctx context.Context, text string) ([]ai.Keyword, error)) *MockKeywordExtractor {
	m.ExtractKeywordsFunc = fn
	return m
}

// ExtractKeywords extracts simple mock keywords from text.
// Default behavior: the first distinct words longer than 3 characters,
// with decreasing scores.
func (m *MockKeywordExtractor) ExtractKeywords(ctx context.Context, text string) ([]ai.Keyword, error) {
	m.mu.Lock()
	m.callCount++
	m.mu.Unlock()

	if m.ExtractKeywordsFunc != nil {
		return m.ExtractKeywordsFunc(ctx, text)
	}

	words := strings.Fields(strings.ToLower(text))
	seen := make(map[string]bool, len(words))
	keywords := make([]ai.Keyword, 0, 5)
	score := 0.9

	for _, word := range words {
		if len(keywords) >= 5 {
			break
		}

		word = strings.Trim(word, ".,!?;:\"'()[]{}")
		if len(word) <= 3 || seen[word] {
			continue
		}
		seen[word] = true

		keywords = append(keywords, ai.Keyword{Text: word, Score: score})
		if score > 0.2 {
			score -= 0.1
		}
	}

	return keywords, nil
}

// CallCount returns the number of times ExtractKeywords was called.
func (m *MockKeywordExtractor) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockKeywordExtractor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.ExtractKeywordsFunc = nil
}
