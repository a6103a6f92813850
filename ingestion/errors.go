package ingestion

import "errors"

var (
	// ErrRepositoryRequired is returned when no fragment repository is provided.
	ErrRepositoryRequired = errors.New("fragment repository is required")

	// ErrProcessorRequired is returned when no enrichment processor is provided.
	ErrProcessorRequired = errors.New("enrichment processor is required")

	// ErrEmptyDocument is returned when the document contains no text.
	ErrEmptyDocument = errors.New("document contains no text")
)
