package enrichment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackSummaryShortText(t *testing.T) {
	text := "Patient is stable."
	assert.Equal(t, text, fallbackSummary(text, 200))
}

func TestFallbackSummaryTruncatesAtWordBoundary(t *testing.T) {
	text := "The patient presented with acute chest pain radiating to the left arm and shortness of breath"

	summary := fallbackSummary(text, 40)
	assert.LessOrEqual(t, len(summary), 40)
	assert.True(t, strings.HasPrefix(text, summary))
	// No mid-word cut
	assert.False(t, strings.HasSuffix(summary, "radiat"))
}

func TestFallbackSummaryDeterministic(t *testing.T) {
	text := strings.Repeat("chronic obstructive pulmonary disease ", 20)
	assert.Equal(t, fallbackSummary(text, 100), fallbackSummary(text, 100))
}

func TestFallbackSummaryEmptyText(t *testing.T) {
	assert.Equal(t, "", fallbackSummary("", 100))
	assert.Equal(t, "", fallbackSummary("   ", 100))
}

func TestFallbackKeywordsFrequencyOrder(t *testing.T) {
	text := "diabetes diabetes diabetes insulin insulin glucose"

	keywords, scores := fallbackKeywords(text, 10)
	require.Equal(t, []string{"diabetes", "insulin", "glucose"}, keywords)
	require.Len(t, scores, 3)
	assert.Equal(t, 1.0, scores[0])
	assert.InDelta(t, 2.0/3.0, scores[1], 1e-9)
	assert.InDelta(t, 1.0/3.0, scores[2], 1e-9)
}

func TestFallbackKeywordsExcludesStopWords(t *testing.T) {
	text := "the patient and the doctor reviewed the medication for the patient"

	keywords, _ := fallbackKeywords(text, 10)
	for _, kw := range keywords {
		assert.NotEqual(t, "the", kw)
		assert.NotEqual(t, "and", kw)
		assert.NotEqual(t, "for", kw)
	}
	assert.Contains(t, keywords, "patient")
	assert.Contains(t, keywords, "medication")
}

func TestFallbackKeywordsCapped(t *testing.T) {
	text := "alpha beta gamma delta epsilon zeta theta lambda sigma omega kappa"

	keywords, scores := fallbackKeywords(text, 5)
	assert.Len(t, keywords, 5)
	assert.Len(t, scores, 5)
}

func TestFallbackKeywordsTieBreakAlphabetical(t *testing.T) {
	keywords, _ := fallbackKeywords("zebra apple zebra apple", 10)
	assert.Equal(t, []string{"apple", "zebra"}, keywords)
}

func TestFallbackKeywordsEmptyText(t *testing.T) {
	keywords, scores := fallbackKeywords("", 10)
	assert.Nil(t, keywords)
	assert.Nil(t, scores)
}
