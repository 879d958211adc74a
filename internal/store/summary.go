package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jotarampini-cell/synapse/internal/models"
)

// SummaryStore handles summary record persistence.
type SummaryStore struct {
	Base
}

// NewSummaryStore creates a new SummaryStore.
func NewSummaryStore(base Base) *SummaryStore {
	return &SummaryStore{Base: base}
}

// UpsertSummary writes the summary and concept list for a content item,
// overwriting any previous record for the same item.
func (s *SummaryStore) UpsertSummary(
	ctx context.Context,
	userID, contentID string,
	summary string,
	concepts []string,
) (*models.SummaryRecord, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginTx(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("upserting summary: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	if concepts == nil {
		concepts = []string{}
	}

	query := `INSERT INTO summaries (content_id, summary, concepts)
		VALUES ($1, $2, $3)
		ON CONFLICT (content_id) DO UPDATE
			SET summary = EXCLUDED.summary, concepts = EXCLUDED.concepts, updated_at = now()
		RETURNING ` + summaryColumns

	row := tx.QueryRow(ctx, query, contentID, summary, concepts)

	rec, err := scanSummary(row.Scan)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, models.ErrContentNotFound
		}

		return nil, fmt.Errorf("scanning upserted summary: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing upsert summary: %w", err)
	}

	s.notify("summary.updated", userID, contentID)

	return rec, nil
}

// ConceptVocabulary returns the deduplicated set of concept labels across the
// user's summaries, excluding the summary of one content item. The result
// feeds connection suggestion, where the item's own concepts must not count
// as existing vocabulary.
func (s *SummaryStore) ConceptVocabulary(ctx context.Context, userID, excludeContentID string) ([]string, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginReadTx(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("getting concept vocabulary: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // read-only tx, rollback is cleanup.

	query := `SELECT DISTINCT unnest(s.concepts)
		FROM summaries s
		JOIN content_items c ON c.id = s.content_id
		WHERE c.user_id = current_setting('app.user_id')::uuid
		  AND s.content_id != $1
		ORDER BY 1`

	rows, err := tx.Query(ctx, query, excludeContentID)
	if err != nil {
		return nil, fmt.Errorf("querying concept vocabulary: %w", err)
	}

	defer rows.Close()

	var labels []string

	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, fmt.Errorf("scanning concept label: %w", err)
		}

		labels = append(labels, label)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating concept labels: %w", err)
	}

	return labels, nil
}
