package models

import (
	"time"

	"github.com/google/uuid"
)

// NodeKindConcept is the only node kind currently produced by ingestion.
const NodeKindConcept = "concept"

// ConceptNode is one deduplicated graph node per distinct concept label per
// user. The (user, label) pair is the natural key; label comparison is
// exact-string. Color and position are fixed at creation and never updated.
type ConceptNode struct {
	ID        string    `json:"id"`
	UserID    uuid.UUID `json:"-"`
	Label     string    `json:"label"`
	Kind      string    `json:"kind"`
	Color     string    `json:"color"`
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	CreatedAt time.Time `json:"created_at"`
}

// ConceptConnection is a suggested relation between two concept labels.
// Strength and reason are pass-through from the suggestion service; rows
// are append-only and duplicate (source, target) pairs are never merged.
type ConceptConnection struct {
	ID          string    `json:"id"`
	UserID      uuid.UUID `json:"-"`
	SourceLabel string    `json:"source_label"`
	TargetLabel string    `json:"target_label"`
	Strength    float64   `json:"strength"`
	Reason      string    `json:"reason"`
	CreatedAt   time.Time `json:"created_at"`
}
