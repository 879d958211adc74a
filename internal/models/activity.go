package models

import (
	"time"

	"github.com/google/uuid"
)

// ActivityEntry records one pipeline action (content submitted, summary
// stored, node created, ...) for the user's activity feed.
type ActivityEntry struct {
	ID         int64          `json:"id"`
	UserID     uuid.UUID      `json:"-"`
	Action     string         `json:"action"`
	EntityType string         `json:"entity_type"`
	EntityID   string         `json:"entity_id"`
	Detail     map[string]any `json:"detail,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// ActivityQueryOpts filters activity queries.
type ActivityQueryOpts struct {
	Action     string
	EntityType string
	Limit      int
	Offset     int
}
