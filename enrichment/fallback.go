package enrichment

import (
	"sort"
	"strings"

	"github.com/poiesic/medenrich/quality"
)

// fallbackSummary produces a deterministic truncation of the source text,
// cut back to a word boundary. Used when the summarization service is
// unavailable; the result is tagged as a degraded method.
func fallbackSummary(text string, maxLength int) string {
	text = strings.TrimSpace(text)
	if maxLength <= 0 || len(text) <= maxLength {
		return text
	}

	truncated := text[:maxLength]
	if idx := strings.LastIndex(truncated, " "); idx > 0 {
		truncated = truncated[:idx]
	}
	return strings.TrimSpace(truncated)
}

// fallbackKeywords extracts keywords by token frequency over the source
// text with stop words removed. Scores are frequencies normalized against
// the most frequent token. Ties break alphabetically so the output is
// deterministic.
func fallbackKeywords(text string, maxKeywords int) ([]string, []float64) {
	tokens := quality.ContentTokens(text)
	if len(tokens) == 0 || maxKeywords <= 0 {
		return nil, nil
	}

	counts := make(map[string]int, len(tokens))
	for _, token := range tokens {
		if len(token) < 3 {
			continue
		}
		counts[token]++
	}
	if len(counts) == 0 {
		return nil, nil
	}

	unique := make([]string, 0, len(counts))
	for token := range counts {
		unique = append(unique, token)
	}
	sort.Slice(unique, func(i, j int) bool {
		if counts[unique[i]] != counts[unique[j]] {
			return counts[unique[i]] > counts[unique[j]]
		}
		return unique[i] < unique[j]
	})

	if len(unique) > maxKeywords {
		unique = unique[:maxKeywords]
	}

	top := counts[unique[0]]
	scores := make([]float64, len(unique))
	for i, token := range unique {
		scores[i] = float64(counts[token]) / float64(top)
	}
	return unique, scores
}
