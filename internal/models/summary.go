package models

import "time"

// SummaryRecord holds the AI-derived summary and concept list for one
// content item. At most one record exists per item; its absence signals
// that enrichment is pending or has failed.
type SummaryRecord struct {
	ID        string    `json:"id"`
	ContentID string    `json:"content_id"`
	Summary   string    `json:"summary"`
	Concepts  []string  `json:"concepts"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
