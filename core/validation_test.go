package core

import (
	"errors"
	"testing"
)

func TestValidateTask(t *testing.T) {
	tests := []struct {
		name    string
		task    *Task
		wantErr error
	}{
		{
			name: "valid task",
			task: &Task{
				FragmentID: "f1",
				Text:       "patient presents with chest pain",
				Priority:   PriorityHigh,
			},
			wantErr: nil,
		},
		{
			name:    "nil task",
			task:    nil,
			wantErr: ErrInvalidTask,
		},
		{
			name: "empty fragment id",
			task: &Task{
				Text:     "some text",
				Priority: PriorityLow,
			},
			wantErr: ErrEmptyFragmentID,
		},
		{
			name: "empty text",
			task: &Task{
				FragmentID: "f1",
				Priority:   PriorityLow,
			},
			wantErr: ErrEmptyContent,
		},
		{
			name: "priority out of range",
			task: &Task{
				FragmentID: "f1",
				Text:       "some text",
				Priority:   Priority(9),
			},
			wantErr: ErrInvalidPriority,
		},
		{
			name: "zero priority",
			task: &Task{
				FragmentID: "f1",
				Text:       "some text",
			},
			wantErr: ErrInvalidPriority,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTask(tt.task)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateTask() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateTask() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateFragment(t *testing.T) {
	tests := []struct {
		name     string
		fragment *Fragment
		wantErr  error
	}{
		{
			name: "valid fragment",
			fragment: &Fragment{
				Id:       "f1",
				Contents: "patient presents with chest pain",
			},
			wantErr: nil,
		},
		{
			name: "valid fragment without metadata",
			fragment: &Fragment{
				Id:          "f2",
				Contents:    "follow-up visit",
				HasMetadata: false,
			},
			wantErr: nil,
		},
		{
			name:     "nil fragment",
			fragment: nil,
			wantErr:  ErrInvalidFragment,
		},
		{
			name: "empty id",
			fragment: &Fragment{
				Contents: "text",
			},
			wantErr: ErrEmptyFragmentID,
		},
		{
			name: "empty contents",
			fragment: &Fragment{
				Id: "f1",
			},
			wantErr: ErrEmptyContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFragment(tt.fragment)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateFragment() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateFragment() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateResult(t *testing.T) {
	tests := []struct {
		name    string
		result  *EnrichmentResult
		wantErr error
	}{
		{
			name: "valid result",
			result: &EnrichmentResult{
				FragmentID:    "f1",
				Summary:       "short summary",
				Keywords:      []string{"chest pain", "dyspnea"},
				KeywordScores: []float64{0.9, 0.7},
			},
			wantErr: nil,
		},
		{
			name: "empty keywords and scores",
			result: &EnrichmentResult{
				FragmentID: "f1",
			},
			wantErr: nil,
		},
		{
			name:    "nil result",
			result:  nil,
			wantErr: ErrInvalidResult,
		},
		{
			name: "missing fragment id",
			result: &EnrichmentResult{
				Summary: "summary",
			},
			wantErr: ErrEmptyFragmentID,
		},
		{
			name: "keyword score length mismatch",
			result: &EnrichmentResult{
				FragmentID:    "f1",
				Keywords:      []string{"a", "b"},
				KeywordScores: []float64{0.5},
			},
			wantErr: ErrKeywordScoreMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateResult(tt.result)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateResult() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateResult() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
