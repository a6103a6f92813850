package storage

import (
	"testing"
	"time"

	"github.com/poiesic/medenrich/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalFragment(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	tests := []struct {
		name     string
		fragment *core.Fragment
	}{
		{
			name: "unenriched fragment",
			fragment: &core.Fragment{
				Id:         "f1",
				Contents:   "patient presents with acute dyspnea",
				InsertedAt: now,
				UpdatedAt:  now,
			},
		},
		{
			name: "enriched fragment",
			fragment: &core.Fragment{
				Id:             "f2",
				Contents:       "ECG shows ST elevation consistent with myocardial infarction",
				Summary:        "ST elevation on ECG; myocardial infarction",
				SummaryMethod:  core.MethodService,
				Keywords:       []string{"st elevation", "myocardial infarction", "ecg"},
				KeywordScores:  []float64{0.9, 0.9, 0.7},
				KeywordMethod:  core.MethodService,
				SummaryQuality: 0.82,
				SummaryLevel:   core.QualityExcellent,
				KeywordQuality: 0.65,
				KeywordLevel:   core.QualityGood,
				HasMetadata:    true,
				ProcessedAt:    now,
				InsertedAt:     now.Add(-time.Minute),
				UpdatedAt:      now,
			},
		},
		{
			name: "fallback-enriched fragment",
			fragment: &core.Fragment{
				Id:            "f3",
				Contents:      "follow-up visit for chronic hypertension",
				Summary:       "follow-up visit for chronic",
				SummaryMethod: core.MethodFallback,
				Keywords:      []string{"hypertension", "chronic"},
				KeywordScores: []float64{0.5, 0.3},
				KeywordMethod: core.MethodFallback,
				HasMetadata:   true,
				ProcessedAt:   now,
				InsertedAt:    now,
				UpdatedAt:     now,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalFragment(tt.fragment)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalFragment(data)
			require.NoError(t, err)
			assert.Equal(t, tt.fragment, decoded)
		})
	}
}

func TestMarshalFragment_Deterministic(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	fragment := &core.Fragment{
		Id:          "f1",
		Contents:    "some contents",
		HasMetadata: false,
		InsertedAt:  now,
		UpdatedAt:   now,
	}

	first := MarshalFragment(fragment)
	second := MarshalFragment(fragment)
	assert.Equal(t, first, second)
}

func TestUnmarshalFragment_Invalid(t *testing.T) {
	_, err := UnmarshalFragment([]byte{})
	assert.Error(t, err)
}

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)},
		{"content-based ID", core.IDFromContent("test content")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalID(tt.id)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}
