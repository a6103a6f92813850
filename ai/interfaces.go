package ai

import "context"

// Summarizer generates abstractive summaries of medical text.
// Implementations must be thread-safe for concurrent use.
type Summarizer interface {
	// Summarize generates a summary of at most maxLength characters.
	// Returns ErrEmptyResponse (wrapped) if the service produces no output,
	// and ErrTimeout, ErrRateLimited or ErrMalformedResponse on the
	// corresponding failure modes.
	Summarize(ctx context.Context, text string, maxLength int) (string, error)
}

// KeywordExtractor extracts weighted keywords from medical text.
// Implementations must be thread-safe for concurrent use.
type KeywordExtractor interface {
	// ExtractKeywords analyzes text and returns keywords with confidence
	// scores in [0,1]. The returned slice may be empty for degenerate input.
	ExtractKeywords(ctx context.Context, text string) ([]Keyword, error)
}

// Keyword is a single extracted keyword with its confidence score.
type Keyword struct {
	// Text is the keyword phrase, lowercase.
	Text string

	// Score is the extractor's confidence in [0,1].
	Score float64
}

// AIProvider aggregates AI services for convenient initialization and
// lifecycle management. A provider creates and manages Summarizer and
// KeywordExtractor instances, ensuring they share configuration and
// resources appropriately.
type AIProvider interface {
	// Summarizer returns the summary generation service.
	// The returned Summarizer is safe for concurrent use.
	Summarizer() Summarizer

	// KeywordExtractor returns the keyword extraction service.
	// The returned KeywordExtractor is safe for concurrent use.
	KeywordExtractor() KeywordExtractor

	// Healthy probes the underlying services and returns an error if any
	// of them is unreachable or misconfigured.
	Healthy(ctx context.Context) error

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
