package quality

import "strings"

// Stop words to filter out when tokenizing text for overlap and density scoring
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "be": true, "is": true, "are": true,
	"was": true, "were": true, "to": true, "of": true, "and": true, "in": true,
	"that": true, "have": true, "has": true, "had": true, "it": true, "for": true,
	"not": true, "on": true, "with": true, "as": true, "you": true, "do": true,
	"at": true, "this": true, "but": true, "by": true, "from": true, "or": true,
	"which": true, "their": true, "his": true, "her": true, "its": true,
	"during": true, "after": true, "before": true, "also": true, "been": true,
	"no": true, "any": true, "per": true, "than": true, "then": true, "these": true,
	"those": true, "other": true, "into": true, "over": true, "under": true,
	"upon": true, "both": true, "such": true, "when": true, "while": true,
	"given": true, "noted": true, "without": true, "within": true, "may": true,
	"can": true, "will": true, "would": true, "should": true, "about": true,
}

// tokenize splits text into lowercase words with punctuation trimmed.
// Stop words are kept; use tokenizeAndFilter to drop them.
func tokenize(text string) []string {
	words := strings.Fields(text)
	tokens := make([]string, 0, len(words))

	for _, word := range words {
		cleaned := strings.ToLower(strings.Trim(word, ".,!?;:'\"-()[]{}/"))
		if cleaned != "" {
			tokens = append(tokens, cleaned)
		}
	}

	return tokens
}

// tokenizeAndFilter splits text into words, lowercases, trims punctuation,
// and removes stop words
func tokenizeAndFilter(text string) []string {
	tokens := tokenize(text)
	filtered := tokens[:0]

	for _, token := range tokens {
		if !stopWords[token] {
			filtered = append(filtered, token)
		}
	}

	return filtered
}

// ContentTokens splits text into lowercase word tokens with stop words
// removed. This is the same token stream the evaluator scores against,
// exposed for callers that derive keywords locally.
func ContentTokens(text string) []string {
	return tokenizeAndFilter(text)
}

// tokenSet builds a membership set from tokens.
func tokenSet(tokens []string) map[string]bool {
	set := make(map[string]bool, len(tokens))
	for _, token := range tokens {
		set[token] = true
	}
	return set
}

// jaccard computes the Jaccard similarity of two token sets.
// Two empty sets have similarity 0.
func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	intersection := 0
	for token := range a {
		if b[token] {
			intersection++
		}
	}

	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union)
}

// splitSentences splits text on sentence-terminating punctuation.
// Fragments without terminal punctuation count as one sentence.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	for _, r := range text {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if s := strings.TrimSpace(current.String()); s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
		}
	}

	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}

// rangeFit returns 1.0 when value lies inside [min,max] and a linearly
// decreasing penalty outside, floored at 0.
func rangeFit(value, min, max float64) float64 {
	switch {
	case value >= min && value <= max:
		return 1.0
	case value < min:
		if min == 0 {
			return 0
		}
		return clamp01(value / min)
	default:
		if value <= 0 {
			return 0
		}
		return clamp01(max / value)
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
