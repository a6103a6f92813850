// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.Summarizer,
// ai.KeywordExtractor, and ai.AIProvider for use in unit tests. The mocks
// allow tests to run without external AI service dependencies and enable
// controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockProvider := mock.NewMockProvider()
//	summary, err := mockProvider.Summarizer().Summarize(ctx, "test", 200)
//
//	// Custom behavior injection
//	mockSummarizer := mock.NewMockSummarizer().
//	    WithSummarizeFunc(func(ctx context.Context, text string, maxLength int) (string, error) {
//	        return "", ai.ErrTimeout
//	    })
//
//	// Check call counts
//	count := mockSummarizer.CallCount()
//
// # Default Behavior
//
// The mock implementations provide sensible defaults:
//
//   - MockSummarizer: Returns the first sentence truncated to maxLength
//   - MockKeywordExtractor: Extracts distinct words with decreasing scores
//   - MockProvider: Aggregates mock summarizer and extractor, always healthy
package mock
