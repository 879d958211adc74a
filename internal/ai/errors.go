// Package ai holds clients for the external enrichment services: vector
// embedding, summarization, concept extraction, and connection suggestion.
// Each failure mode carries a distinct error type so callers can decide
// which pipeline steps are fatal and which degrade gracefully.
package ai

import "errors"

// ErrCircuitOpen is returned when the embedding circuit breaker is open and
// requests are being rejected without calling the embedding service.
var ErrCircuitOpen = errors.New("embedding circuit breaker is open")

// EmbeddingError wraps a failure to generate a vector embedding.
type EmbeddingError struct {
	Err error
}

func (e *EmbeddingError) Error() string { return "generating embedding: " + e.Err.Error() }
func (e *EmbeddingError) Unwrap() error { return e.Err }

// SummarizationError wraps a failure to produce a content summary.
type SummarizationError struct {
	Err error
}

func (e *SummarizationError) Error() string { return "summarizing content: " + e.Err.Error() }
func (e *SummarizationError) Unwrap() error { return e.Err }

// ExtractionError wraps a failure to extract concept labels.
type ExtractionError struct {
	Err error
}

func (e *ExtractionError) Error() string { return "extracting concepts: " + e.Err.Error() }
func (e *ExtractionError) Unwrap() error { return e.Err }

// SuggestionError wraps a failure to suggest concept connections.
type SuggestionError struct {
	Err error
}

func (e *SuggestionError) Error() string { return "suggesting connections: " + e.Err.Error() }
func (e *SuggestionError) Unwrap() error { return e.Err }
