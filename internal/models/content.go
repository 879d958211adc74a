// Package models defines data types for captured content and the concept graph.
package models

import (
	"time"

	"github.com/google/uuid"
)

// ContentKind identifies how a content item was captured.
type ContentKind string

// Supported content kinds.
const (
	KindText  ContentKind = "text"
	KindURL   ContentKind = "url"
	KindFile  ContentKind = "file"
	KindVoice ContentKind = "voice"
)

// Valid reports whether k is one of the supported content kinds.
func (k ContentKind) Valid() bool {
	switch k {
	case KindText, KindURL, KindFile, KindVoice:
		return true
	}

	return false
}

// ContentItem is one captured unit of user knowledge.
// Embedding is nil until enrichment has stored a vector for the item.
type ContentItem struct {
	ID           string      `json:"id"`
	UserID       uuid.UUID   `json:"-"`
	Title        string      `json:"title"`
	Body         string      `json:"body"`
	Kind         ContentKind `json:"kind"`
	Tags         []string    `json:"tags"`
	Embedding    []float32   `json:"-"`
	HasEmbedding bool        `json:"has_embedding"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// CreateContentParams carries the fields persisted for a new content item.
// The ID is assigned by the caller so enrichment can reference the row
// before any read-back.
type CreateContentParams struct {
	ID    string
	Title string
	Body  string
	Kind  ContentKind
	Tags  []string
}

// ContentWithSummary joins a content item with its summary record, if one
// exists. A nil Summary means enrichment is still pending or has failed.
type ContentWithSummary struct {
	ContentItem
	Summary *SummaryRecord `json:"summary,omitempty"`
}

// ContentSummaryRef is a lightweight view of a content item used by the
// embedding backfill (id plus the text that gets embedded).
type ContentSummaryRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// EmbeddingText returns the text to embed for this content: "title body".
func (r *ContentSummaryRef) EmbeddingText() string {
	return r.Title + " " + r.Body
}

// RelatedContent pairs a content item with a similarity score.
type RelatedContent struct {
	ContentItem
	Score float64 `json:"score"`
}

// SubmitContentRequest is the payload for submitting typed text content.
type SubmitContentRequest struct {
	Title string   `json:"title"`
	Body  string   `json:"body"`
	Tags  []string `json:"tags,omitempty"`
}

// Validate checks that required fields are present and within limits.
func (r *SubmitContentRequest) Validate() error {
	if r.Title == "" {
		return ErrMissingTitle
	}

	if len(r.Title) > 500 {
		return ErrFieldTooLong("title", 500)
	}

	if r.Body == "" {
		return ErrMissingBody
	}

	if len(r.Body) > 100_000 {
		return ErrFieldTooLong("body", 100_000)
	}

	if len(r.Tags) > 50 {
		return ErrFieldTooLong("tags", 50)
	}

	for _, tag := range r.Tags {
		if len(tag) > 100 {
			return ErrFieldTooLong("tag", 100)
		}
	}

	return nil
}

// SubmitURLRequest is the payload for submitting URL-derived content.
type SubmitURLRequest struct {
	URL string `json:"url"`
}

// Validate checks that the URL is present and within limits.
func (r *SubmitURLRequest) Validate() error {
	if r.URL == "" {
		return ErrMissingURL
	}

	if len(r.URL) > 2048 {
		return ErrFieldTooLong("url", 2048)
	}

	return nil
}

// UpdateContentRequest is the payload for editing an existing content item.
type UpdateContentRequest struct {
	Title string   `json:"title"`
	Body  string   `json:"body"`
	Tags  []string `json:"tags,omitempty"`
}

// Validate checks UpdateContentRequest fields.
func (r *UpdateContentRequest) Validate() error {
	sr := SubmitContentRequest{Title: r.Title, Body: r.Body, Tags: r.Tags}

	return sr.Validate()
}
