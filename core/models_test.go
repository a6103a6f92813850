package core

import (
	"testing"
)

func TestFragmentIDFromContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "basic content",
			content: "patient presents with acute dyspnea",
		},
		{
			name:    "empty string",
			content: "",
		},
		{
			name:    "long content",
			content: "This is a much longer medical passage that should still hash consistently",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := FragmentIDFromContent(tt.content)
			id2 := FragmentIDFromContent(tt.content)

			if id1 != id2 {
				t.Errorf("FragmentIDFromContent() produced different IDs for same content: %s vs %s", id1, id2)
			}
			if len(id1) != 16 {
				t.Errorf("FragmentIDFromContent() produced ID of unexpected length %d", len(id1))
			}
		})
	}
}

func TestFragmentIDFromContent_Different(t *testing.T) {
	id1 := FragmentIDFromContent("content1")
	id2 := FragmentIDFromContent("content2")

	if id1 == id2 {
		t.Errorf("FragmentIDFromContent() produced same ID for different content")
	}
}

func TestTaskStatus_Terminal(t *testing.T) {
	tests := []struct {
		status TaskStatus
		want   bool
	}{
		{TaskPending, false},
		{TaskProcessing, false},
		{TaskCompleted, true},
		{TaskFailed, true},
		{TaskCancelled, true},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			if got := tt.status.Terminal(); got != tt.want {
				t.Errorf("Terminal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLevelForScore(t *testing.T) {
	tests := []struct {
		name    string
		overall float64
		want    QualityLevel
	}{
		{"excellent at threshold", 0.8, QualityExcellent},
		{"excellent above threshold", 0.95, QualityExcellent},
		{"good at threshold", 0.6, QualityGood},
		{"good below excellent", 0.79, QualityGood},
		{"fair at threshold", 0.4, QualityFair},
		{"poor below fair", 0.39, QualityPoor},
		{"poor at zero", 0.0, QualityPoor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LevelForScore(tt.overall); got != tt.want {
				t.Errorf("LevelForScore(%v) = %v, want %v", tt.overall, got, tt.want)
			}
		})
	}
}

func TestPriority_String(t *testing.T) {
	tests := []struct {
		priority Priority
		want     string
	}{
		{PriorityLow, "low"},
		{PriorityMedium, "medium"},
		{PriorityHigh, "high"},
		{PriorityUrgent, "urgent"},
		{Priority(0), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.priority.String(); got != tt.want {
			t.Errorf("Priority(%d).String() = %q, want %q", tt.priority, got, tt.want)
		}
	}
}
