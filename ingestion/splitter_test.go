package ingestion

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitFragmentsShortText(t *testing.T) {
	text := "The patient is stable."
	assert.Equal(t, []string{text}, splitFragments(text, 1000))
}

func TestSplitFragmentsEmpty(t *testing.T) {
	assert.Nil(t, splitFragments("", 1000))
	assert.Nil(t, splitFragments("   \n\t  ", 1000))
}

func TestSplitFragmentsPrefersSentenceBoundaries(t *testing.T) {
	text := "First sentence about the patient. Second sentence about treatment. Third sentence about follow up."

	fragments := splitFragments(text, 70)
	require.Len(t, fragments, 2)
	assert.Equal(t, "First sentence about the patient. Second sentence about treatment.", fragments[0])
	assert.Equal(t, "Third sentence about follow up.", fragments[1])
}

func TestSplitFragmentsRespectsMaxSize(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 50; i++ {
		sb.WriteString("The patient was seen in clinic today for routine review. ")
	}

	fragments := splitFragments(sb.String(), 200)
	require.NotEmpty(t, fragments)
	for _, fragment := range fragments {
		assert.LessOrEqual(t, len(fragment), 200)
		assert.NotEmpty(t, strings.TrimSpace(fragment))
	}
}

func TestSplitFragmentsOverlongSentence(t *testing.T) {
	// One long run-on with no sentence punctuation
	text := strings.TrimSpace(strings.Repeat("hypertension diabetes asthma ", 20))

	fragments := splitFragments(text, 100)
	require.Greater(t, len(fragments), 1)
	for _, fragment := range fragments {
		assert.LessOrEqual(t, len(fragment), 100)
	}
	// Word boundaries preserved
	joined := strings.Join(fragments, " ")
	assert.Equal(t, text, joined)
}

func TestSplitFragmentsOverlongWord(t *testing.T) {
	word := strings.Repeat("x", 250)

	fragments := splitFragments(word, 100)
	require.Len(t, fragments, 3)
	assert.Equal(t, 100, len(fragments[0]))
	assert.Equal(t, 100, len(fragments[1]))
	assert.Equal(t, 50, len(fragments[2]))
}

func TestSplitFragmentsDecimalNotSplit(t *testing.T) {
	text := "Dose was 2.5 mg daily. Follow up in two weeks."

	fragments := splitFragments(text, 25)
	require.Len(t, fragments, 2)
	assert.Equal(t, "Dose was 2.5 mg daily.", fragments[0])
}
