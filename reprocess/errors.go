package reprocess

import "errors"

var (
	// ErrRepositoryRequired is returned when no fragment repository is provided.
	ErrRepositoryRequired = errors.New("fragment repository is required")

	// ErrProcessorRequired is returned when no enrichment processor is provided.
	ErrProcessorRequired = errors.New("enrichment processor is required")
)
