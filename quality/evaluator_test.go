package quality

import (
	"testing"

	"github.com/poiesic/medenrich/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePassage = "The patient presents with acute chest pain radiating to the left arm. " +
	"ECG shows ST elevation consistent with myocardial infarction. " +
	"Aspirin and heparin were administered and cardiac catheterization was scheduled."

func TestEvaluateSummary(t *testing.T) {
	e := NewEvaluator(nil)

	t.Run("reasonable summary scores within range", func(t *testing.T) {
		summary := "Patient with acute chest pain and ST elevation treated for myocardial infarction."
		score := e.EvaluateSummary(samplePassage, summary)

		assert.GreaterOrEqual(t, score.Overall, 0.0)
		assert.LessOrEqual(t, score.Overall, 1.0)
		assert.NotEqual(t, core.QualityLevel(0), score.Level)
		require.NotNil(t, score.Components)
		assert.Contains(t, score.Components, "length_fit")
		assert.Contains(t, score.Components, "readability")
		assert.Contains(t, score.Components, "overlap")
		assert.Contains(t, score.Components, "domain_density")
		assert.Contains(t, score.Components, "information_density")
	})

	t.Run("faithful summary outscores unrelated text", func(t *testing.T) {
		faithful := "Patient with acute chest pain and ST elevation treated for myocardial infarction."
		unrelated := "The weather in the mountains was pleasant and the hiking trail was empty."

		good := e.EvaluateSummary(samplePassage, faithful)
		bad := e.EvaluateSummary(samplePassage, unrelated)

		assert.Greater(t, good.Overall, bad.Overall)
	})

	t.Run("empty source text", func(t *testing.T) {
		score := e.EvaluateSummary("", "some summary")

		assert.Equal(t, 0.0, score.Overall)
		assert.Equal(t, core.QualityPoor, score.Level)
		assert.NotEmpty(t, score.Note)
	})

	t.Run("empty summary", func(t *testing.T) {
		score := e.EvaluateSummary(samplePassage, "")

		assert.Equal(t, 0.0, score.Overall)
		assert.Equal(t, core.QualityPoor, score.Level)
		assert.NotEmpty(t, score.Note)
	})

	t.Run("whitespace only summary", func(t *testing.T) {
		score := e.EvaluateSummary(samplePassage, "   \n\t  ")

		assert.Equal(t, 0.0, score.Overall)
		assert.Equal(t, core.QualityPoor, score.Level)
	})

	t.Run("all components within unit range", func(t *testing.T) {
		score := e.EvaluateSummary(samplePassage, "Chest pain with ST elevation; myocardial infarction treated.")
		for name, component := range score.Components {
			assert.GreaterOrEqual(t, component, 0.0, "component %s", name)
			assert.LessOrEqual(t, component, 1.0, "component %s", name)
		}
	})
}

func TestEvaluateKeywords(t *testing.T) {
	e := NewEvaluator(nil)

	t.Run("relevant medical keywords score well", func(t *testing.T) {
		keywords := []string{"chest pain", "st elevation", "myocardial infarction", "aspirin", "heparin"}
		scores := []float64{0.95, 0.9, 0.9, 0.7, 0.7}

		score := e.EvaluateKeywords(samplePassage, keywords, scores)

		assert.Greater(t, score.Overall, 0.5)
		assert.LessOrEqual(t, score.Overall, 1.0)
	})

	t.Run("fabricated keywords score lower than literal ones", func(t *testing.T) {
		literal := []string{"chest pain", "st elevation", "aspirin"}
		fabricated := []string{"skiing", "harvest", "telescope"}
		confidences := []float64{0.9, 0.9, 0.9}

		good := e.EvaluateKeywords(samplePassage, literal, confidences)
		bad := e.EvaluateKeywords(samplePassage, fabricated, confidences)

		assert.Greater(t, good.Overall, bad.Overall)
	})

	t.Run("empty keyword set", func(t *testing.T) {
		score := e.EvaluateKeywords(samplePassage, nil, nil)

		assert.Equal(t, 0.0, score.Overall)
		assert.Equal(t, core.QualityPoor, score.Level)
		assert.NotEmpty(t, score.Note)
	})

	t.Run("empty source text", func(t *testing.T) {
		score := e.EvaluateKeywords("", []string{"keyword"}, []float64{0.5})

		assert.Equal(t, 0.0, score.Overall)
		assert.Equal(t, core.QualityPoor, score.Level)
	})

	t.Run("missing confidence scores treated as zero", func(t *testing.T) {
		withScores := e.EvaluateKeywords(samplePassage,
			[]string{"chest pain", "aspirin"}, []float64{0.9, 0.9})
		withoutScores := e.EvaluateKeywords(samplePassage,
			[]string{"chest pain", "aspirin"}, nil)

		assert.Greater(t, withScores.Overall, withoutScores.Overall)
	})

	t.Run("all components within unit range", func(t *testing.T) {
		score := e.EvaluateKeywords(samplePassage,
			[]string{"chest pain", "ecg", "heparin"}, []float64{0.9, 0.5, 0.4})
		for name, component := range score.Components {
			assert.GreaterOrEqual(t, component, 0.0, "component %s", name)
			assert.LessOrEqual(t, component, 1.0, "component %s", name)
		}
	})
}

func TestEvaluator_WithTerms(t *testing.T) {
	e := NewEvaluator(nil, WithTerms([]string{"widget", "gadget"}))

	text := "The widget connects to the gadget through a serial port."
	score := e.EvaluateKeywords(text, []string{"widget", "gadget"}, []float64{0.9, 0.8})

	assert.Equal(t, 1.0, score.Components["domain_specificity"])
}

func TestEvaluator_DeterministicScoring(t *testing.T) {
	e := NewEvaluator(nil)
	summary := "Patient with chest pain and ST elevation."

	first := e.EvaluateSummary(samplePassage, summary)
	second := e.EvaluateSummary(samplePassage, summary)

	assert.Equal(t, first.Overall, second.Overall)
	assert.Equal(t, first.Level, second.Level)
	assert.Equal(t, first.Components, second.Components)
}
