package enrichment

import "errors"

var (
	// ErrQueueFull is returned by Submit when the task queue is at capacity.
	// Callers must apply their own backpressure; Submit never blocks.
	ErrQueueFull = errors.New("task queue is full")

	// ErrTaskNotFound is returned when no task with the given ID is known.
	ErrTaskNotFound = errors.New("task not found")

	// ErrResultNotReady is returned by Result for a task that has not
	// produced an enrichment result yet.
	ErrResultNotReady = errors.New("task result not ready")

	// ErrNotStarted is returned when the processor has not been started.
	ErrNotStarted = errors.New("processor not started")

	// ErrAlreadyStarted is returned when Start is called twice.
	ErrAlreadyStarted = errors.New("processor already started")

	// ErrStopped is returned by Submit after Stop has been called.
	ErrStopped = errors.New("processor stopped")

	// ErrRepositoryRequired is returned when no fragment repository is provided.
	ErrRepositoryRequired = errors.New("fragment repository is required")

	// ErrProviderRequired is returned when no AI provider is provided.
	ErrProviderRequired = errors.New("AI provider is required")

	// ErrEvaluatorRequired is returned when no quality evaluator is provided.
	ErrEvaluatorRequired = errors.New("quality evaluator is required")

	// ErrInvalidMaxAttempts is returned when maxAttempts is <= 0
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")
)
