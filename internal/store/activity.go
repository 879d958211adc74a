package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jotarampini-cell/synapse/internal/models"
)

// ActivityStore handles the per-user activity log.
type ActivityStore struct {
	Base
}

// NewActivityStore creates a new ActivityStore.
func NewActivityStore(base Base) *ActivityStore {
	return &ActivityStore{Base: base}
}

// RecordActivity appends an entry to the activity log.
func (s *ActivityStore) RecordActivity(ctx context.Context, userID string, entry models.ActivityEntry) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginTx(ctx, userID)
	if err != nil {
		return fmt.Errorf("recording activity: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	var detail []byte

	if entry.Detail != nil {
		detail, err = json.Marshal(entry.Detail)
		if err != nil {
			return fmt.Errorf("marshaling activity detail: %w", err)
		}
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO activity_log (user_id, action, entity_type, entity_id, detail)
		 VALUES ($1, $2, $3, $4, $5)`,
		userID, entry.Action, entry.EntityType, entry.EntityID, detail,
	)
	if err != nil {
		return fmt.Errorf("inserting activity entry: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing activity entry: %w", err)
	}

	return nil
}

// QueryActivity returns activity entries newest-first, optionally filtered
// by action and entity type.
func (s *ActivityStore) QueryActivity(ctx context.Context, userID string, opts models.ActivityQueryOpts) ([]models.ActivityEntry, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	limit := clampLimit(opts.Limit, 100)

	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}

	tx, err := s.beginReadTx(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("querying activity: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // read-only tx, rollback is cleanup.

	query := `SELECT id, user_id, action, entity_type, entity_id, detail, created_at
		FROM activity_log
		WHERE user_id = current_setting('app.user_id')::uuid`

	args := []any{}

	if opts.Action != "" {
		args = append(args, opts.Action)
		query += fmt.Sprintf(" AND action = $%d", len(args))
	}

	if opts.EntityType != "" {
		args = append(args, opts.EntityType)
		query += fmt.Sprintf(" AND entity_type = $%d", len(args))
	}

	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY id DESC LIMIT $%d", len(args))

	args = append(args, offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying activity log: %w", err)
	}

	defer rows.Close()

	entries := make([]models.ActivityEntry, 0, limit)

	for rows.Next() {
		var e models.ActivityEntry
		var detail []byte

		err := rows.Scan(&e.ID, &e.UserID, &e.Action, &e.EntityType, &e.EntityID, &detail, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning activity entry: %w", err)
		}

		if len(detail) > 0 {
			if err := json.Unmarshal(detail, &e.Detail); err != nil {
				return nil, fmt.Errorf("unmarshaling activity detail: %w", err)
			}
		}

		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating activity entries: %w", err)
	}

	return entries, nil
}
