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


package quality

import (
	"math"
	"strings"

	"github.com/poiesic/medenrich/core"
)

// Summary score component weights. They sum to 1.0; a small additive bonus
// for high domain-term density is applied on top, capped at 1.0.
const (
	summaryLengthWeight      = 0.15
	summaryReadabilityWeight = 0.20
	summaryOverlapWeight     = 0.25
	summaryDomainWeight      = 0.15
	summaryInfoWeight        = 0.25
)

// Keyword score component weights, same structure as the summary weights.
const (
	keywordCountWeight      = 0.15
	keywordRelevanceWeight  = 0.20
	keywordDiversityWeight  = 0.15
	keywordCoverageWeight   = 0.20
	keywordDomainWeight     = 0.15
	keywordConfidenceWeight = 0.15
)

const domainBonus = 0.1

// Config holds evaluation bounds.
type Config struct {
	// MinSummaryChars and MaxSummaryChars bound the ideal summary length.
	MinSummaryChars int
	MaxSummaryChars int

	// MinKeywords and MaxKeywords bound the ideal keyword count.
	MinKeywords int
	MaxKeywords int

	// DomainThreshold is the domain-term density above which the bonus applies.
	DomainThreshold float64
}

// DefaultConfig returns evaluation bounds matching the default ai.Config.
func DefaultConfig() *Config {
	return &Config{
		MinSummaryChars: 40,
		MaxSummaryChars: 200,
		MinKeywords:     3,
		MaxKeywords:     10,
		DomainThreshold: 0.15,
	}
}

// Evaluator scores enrichment outputs against their source text.
// It is pure: no I/O, no mutable state beyond the read-only dictionaries
// loaded at construction. Safe for concurrent use.
type Evaluator struct {
	config *Config
	terms  map[string]bool
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithTerms replaces the built-in medical-term dictionary.
func WithTerms(terms []string) Option {
	return func(e *Evaluator) {
		e.terms = make(map[string]bool, len(terms))
		for _, term := range terms {
			e.terms[strings.ToLower(term)] = true
		}
	}
}

// NewEvaluator creates an evaluator with the built-in medical-term dictionary.
func NewEvaluator(config *Config, opts ...Option) *Evaluator {
	if config == nil {
		config = DefaultConfig()
	}

	e := &Evaluator{
		config: config,
		terms:  make(map[string]bool, len(defaultMedicalTerms)),
	}
	for _, term := range defaultMedicalTerms {
		e.terms[term] = true
	}

	for _, opt := range opts {
		opt(e)
	}
	return e
}

// EvaluateSummary scores a summary against its source text.
// Degenerate inputs (empty text or summary) yield overall 0.0, level Poor
// and an explanatory note; it never panics.
func (e *Evaluator) EvaluateSummary(text, summary string) core.QualityScore {
	if strings.TrimSpace(text) == "" {
		return zeroScore("source text is empty")
	}
	if strings.TrimSpace(summary) == "" {
		return zeroScore("summary is empty")
	}

	sourceTokens := tokenizeAndFilter(text)
	summaryTokens := tokenizeAndFilter(summary)
	if len(summaryTokens) == 0 {
		return zeroScore("summary contains no scoreable tokens")
	}

	lengthFit := rangeFit(float64(len(summary)),
		float64(e.config.MinSummaryChars), float64(e.config.MaxSummaryChars))
	readability := e.readability(summary)
	overlap := jaccard(tokenSet(summaryTokens), tokenSet(sourceTokens))
	domainDensity := e.domainDensity(summaryTokens)
	infoDensity := e.informationDensity(summaryTokens)

	overall := summaryLengthWeight*lengthFit +
		summaryReadabilityWeight*readability +
		summaryOverlapWeight*overlap +
		summaryDomainWeight*domainDensity +
		summaryInfoWeight*infoDensity

	if domainDensity > e.config.DomainThreshold {
		overall += domainBonus
	}
	overall = clamp01(overall)

	return core.QualityScore{
		Overall: overall,
		Level:   core.LevelForScore(overall),
		Components: map[string]float64{
			"length_fit":          lengthFit,
			"readability":         readability,
			"overlap":             overlap,
			"domain_density":      domainDensity,
			"information_density": infoDensity,
		},
	}
}

// EvaluateKeywords scores an extracted keyword set against its source text.
// scores carries the extractor's own confidence per keyword; it must have
// the same length as keywords (shorter input is treated as zero confidence).
func (e *Evaluator) EvaluateKeywords(text string, keywords []string, scores []float64) core.QualityScore {
	if strings.TrimSpace(text) == "" {
		return zeroScore("source text is empty")
	}
	if len(keywords) == 0 {
		return zeroScore("keyword set is empty")
	}

	sourceTokens := tokenizeAndFilter(text)
	sourceSet := tokenSet(sourceTokens)
	lowerText := strings.ToLower(text)

	countFit := rangeFit(float64(len(keywords)),
		float64(e.config.MinKeywords), float64(e.config.MaxKeywords))
	relevance := keywordRelevance(keywords, sourceSet, lowerText)
	diversity := keywordDiversity(keywords)
	coverage := jaccard(tokenSet(tokenizeAndFilter(strings.Join(keywords, " "))), sourceSet)
	domainSpec := e.keywordDomainSpecificity(keywords)
	confidence := meanConfidence(keywords, scores)

	overall := keywordCountWeight*countFit +
		keywordRelevanceWeight*relevance +
		keywordDiversityWeight*diversity +
		keywordCoverageWeight*coverage +
		keywordDomainWeight*domainSpec +
		keywordConfidenceWeight*confidence

	if domainSpec > e.config.DomainThreshold {
		overall += domainBonus
	}
	overall = clamp01(overall)

	return core.QualityScore{
		Overall: overall,
		Level:   core.LevelForScore(overall),
		Components: map[string]float64{
			"count_fit":          countFit,
			"relevance":          relevance,
			"diversity":          diversity,
			"coverage":           coverage,
			"domain_specificity": domainSpec,
			"confidence":         confidence,
		},
	}
}

// readability combines average sentence length and sentence count heuristics.
func (e *Evaluator) readability(summary string) float64 {
	sentences := splitSentences(summary)
	if len(sentences) == 0 {
		return 0
	}

	totalWords := 0
	for _, sentence := range sentences {
		totalWords += len(strings.Fields(sentence))
	}
	avgWords := float64(totalWords) / float64(len(sentences))

	lengthScore := rangeFit(avgWords, 5, 25)
	countScore := rangeFit(float64(len(sentences)), 1, 8)
	return 0.5*lengthScore + 0.5*countScore
}

// domainDensity is the fraction of tokens found in the domain-term set.
func (e *Evaluator) domainDensity(tokens []string) float64 {
	if len(tokens) == 0 {
		return 0
	}
	hits := 0
	for _, token := range tokens {
		if e.terms[token] {
			hits++
		}
	}
	return float64(hits) / float64(len(tokens))
}

// informationDensity weighs the type/token ratio with the domain-term ratio.
func (e *Evaluator) informationDensity(tokens []string) float64 {
	if len(tokens) == 0 {
		return 0
	}
	ttr := float64(len(tokenSet(tokens))) / float64(len(tokens))
	return clamp01(0.7*ttr + 0.3*e.domainDensity(tokens))
}

// keywordRelevance is the fraction of keywords literally present in the source.
// A keyword counts as present if the whole phrase occurs in the text or all
// of its tokens occur in the source token set.
func keywordRelevance(keywords []string, sourceSet map[string]bool, lowerText string) float64 {
	present := 0
	for _, kw := range keywords {
		phrase := strings.ToLower(strings.TrimSpace(kw))
		if phrase == "" {
			continue
		}
		if strings.Contains(lowerText, phrase) {
			present++
			continue
		}
		tokens := tokenize(phrase)
		allFound := len(tokens) > 0
		for _, token := range tokens {
			if !sourceSet[token] {
				allFound = false
				break
			}
		}
		if allFound {
			present++
		}
	}
	return float64(present) / float64(len(keywords))
}

// keywordDiversity combines the uniqueness ratio with a length-variance term.
func keywordDiversity(keywords []string) float64 {
	unique := make(map[string]bool, len(keywords))
	var lengths []float64
	for _, kw := range keywords {
		normalized := strings.ToLower(strings.TrimSpace(kw))
		unique[normalized] = true
		lengths = append(lengths, float64(len(normalized)))
	}
	uniqueness := float64(len(unique)) / float64(len(keywords))

	mean := 0.0
	for _, l := range lengths {
		mean += l
	}
	mean /= float64(len(lengths))

	variance := 0.0
	for _, l := range lengths {
		variance += (l - mean) * (l - mean)
	}
	variance /= float64(len(lengths))

	lengthVariation := 0.0
	if mean > 0 {
		lengthVariation = clamp01(math.Sqrt(variance) / mean)
	}

	return clamp01(0.7*uniqueness + 0.3*lengthVariation)
}

// keywordDomainSpecificity is the fraction of keywords carrying at least one
// domain term.
func (e *Evaluator) keywordDomainSpecificity(keywords []string) float64 {
	hits := 0
	for _, kw := range keywords {
		for _, token := range tokenize(kw) {
			if e.terms[token] {
				hits++
				break
			}
		}
	}
	return float64(hits) / float64(len(keywords))
}

// meanConfidence averages the extractor-supplied scores, clamped to [0,1].
// Missing scores count as zero.
func meanConfidence(keywords []string, scores []float64) float64 {
	if len(keywords) == 0 {
		return 0
	}
	sum := 0.0
	for i := range keywords {
		if i < len(scores) {
			sum += clamp01(scores[i])
		}
	}
	return sum / float64(len(keywords))
}

func zeroScore(note string) core.QualityScore {
	return core.QualityScore{
		Overall: 0.0,
		Level:   core.QualityPoor,
		Note:    note,
	}
}
