package core

import (
	"encoding/binary"
	"encoding/hex"
	"time"

	"github.com/go-crypt/x/blake2b"
	"github.com/google/uuid"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// FragmentIDFromContent generates a deterministic fragment identifier from text.
// Fragment IDs are strings because the document store is keyed by
// caller-supplied identifiers; ingestion-created fragments use this hex form.
func FragmentIDFromContent(text string) string {
	h, _ := blake2b.New(8, nil)
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}

// Priority orders tasks in the enrichment queue.
// Higher values drain first.
type Priority int

const (
	PriorityLow Priority = iota + 1
	PriorityMedium
	PriorityHigh
	PriorityUrgent
)

// String returns a human-readable priority name.
func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityMedium:
		return "medium"
	case PriorityHigh:
		return "high"
	case PriorityUrgent:
		return "urgent"
	default:
		return "unknown"
	}
}

// TaskStatus represents the lifecycle state of an enrichment task.
type TaskStatus int

const (
	TaskPending TaskStatus = iota + 1
	TaskProcessing
	TaskCompleted
	TaskFailed
	TaskCancelled
)

// String returns a human-readable status name.
func (s TaskStatus) String() string {
	switch s {
	case TaskPending:
		return "pending"
	case TaskProcessing:
		return "processing"
	case TaskCompleted:
		return "completed"
	case TaskFailed:
		return "failed"
	case TaskCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Terminal reports whether the status is a terminal state.
// Terminal tasks never transition again.
func (s TaskStatus) Terminal() bool {
	return s == TaskCompleted || s == TaskFailed || s == TaskCancelled
}

// MethodKind identifies how an enrichment field was produced.
// It is a closed enum; consumers switch exhaustively on it.
type MethodKind int

const (
	// MethodService marks output produced by the primary external service.
	MethodService MethodKind = iota + 1
	// MethodFallback marks degraded output produced by a local heuristic.
	MethodFallback
)

// String returns a human-readable method name.
func (m MethodKind) String() string {
	switch m {
	case MethodService:
		return "service"
	case MethodFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// Task describes one unit of enrichment work.
// The immutable description (FragmentID, Text, Priority, MaxRetries) is set
// at submission; lifecycle fields are owned by the scheduler while the task
// is pending and by exactly one worker while it is processing.
type Task struct {
	Id          uuid.UUID
	FragmentID  string
	Text        string
	Priority    Priority
	Status      TaskStatus
	CreatedAt   time.Time
	StartedAt   time.Time
	CompletedAt time.Time
	RetryCount  int
	MaxRetries  int
	Err         string
	Result      *EnrichmentResult
	Callback    func(*Task) // invoked once when the task reaches a terminal state
}

// EnrichmentResult is the output of a successful enrichment pipeline run.
// It is immutable after creation; invariant: len(Keywords) == len(KeywordScores).
type EnrichmentResult struct {
	FragmentID     string
	Summary        string
	SummaryMethod  MethodKind
	Keywords       []string
	KeywordScores  []float64
	KeywordMethod  MethodKind
	SummaryQuality QualityScore
	KeywordQuality QualityScore
	ProcessingTime time.Duration
	ProcessedAt    time.Time
}

// QualityLevel buckets an overall quality score.
type QualityLevel int

const (
	QualityPoor QualityLevel = iota + 1
	QualityFair
	QualityGood
	QualityExcellent
)

// String returns a human-readable level name.
func (l QualityLevel) String() string {
	switch l {
	case QualityExcellent:
		return "excellent"
	case QualityGood:
		return "good"
	case QualityFair:
		return "fair"
	case QualityPoor:
		return "poor"
	default:
		return "unknown"
	}
}

// LevelForScore derives the quality level from an overall score using
// fixed thresholds.
func LevelForScore(overall float64) QualityLevel {
	switch {
	case overall >= 0.8:
		return QualityExcellent
	case overall >= 0.6:
		return QualityGood
	case overall >= 0.4:
		return QualityFair
	default:
		return QualityPoor
	}
}

// QualityScore is a derived, stateless evaluation of an enrichment output.
// It is recomputed on each evaluation and never persisted independently of
// the result that produced it.
type QualityScore struct {
	Overall    float64
	Level      QualityLevel
	Components map[string]float64
	Note       string // explanation for degenerate inputs (empty text etc.)
}

// Fragment is the persisted unit of enrichment.
// Ingestion stores fragments immediately with empty enrichment fields and
// HasMetadata=false; the store updater later applies the computed metadata.
type Fragment struct {
	Id             string
	Contents       string
	Summary        string
	SummaryMethod  MethodKind
	Keywords       []string
	KeywordScores  []float64
	KeywordMethod  MethodKind
	SummaryQuality float64
	SummaryLevel   QualityLevel
	KeywordQuality float64
	KeywordLevel   QualityLevel
	HasMetadata    bool
	ProcessedAt    time.Time
	InsertedAt     time.Time
	UpdatedAt      time.Time
}
