package store

import (
	"context"
	"fmt"

	"github.com/jotarampini-cell/synapse/internal/models"
)

// ConnectionStore handles concept connection persistence.
type ConnectionStore struct {
	Base
}

// NewConnectionStore creates a new ConnectionStore.
func NewConnectionStore(base Base) *ConnectionStore {
	return &ConnectionStore{Base: base}
}

// CreateConnection appends a connection between two concept labels. The
// graph is append-only; duplicate label pairs are allowed and each call
// produces a new row.
func (s *ConnectionStore) CreateConnection(ctx context.Context, userID string, conn models.ConceptConnection) (*models.ConceptConnection, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginTx(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("creating connection: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	query := `INSERT INTO concept_connections (id, user_id, source_label, target_label, strength, reason)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + connectionColumns

	row := tx.QueryRow(ctx, query, conn.ID, userID, conn.SourceLabel, conn.TargetLabel, conn.Strength, conn.Reason)

	created, err := scanConnection(row.Scan)
	if err != nil {
		return nil, fmt.Errorf("scanning created connection: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing create connection: %w", err)
	}

	s.notify("connection.created", userID, created.ID)

	return created, nil
}

// ListConnections returns all of the user's connections, oldest first.
func (s *ConnectionStore) ListConnections(ctx context.Context, userID string) ([]models.ConceptConnection, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginReadTx(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing connections: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // read-only tx, rollback is cleanup.

	query := `SELECT ` + connectionColumns + ` FROM concept_connections
		WHERE user_id = current_setting('app.user_id')::uuid
		ORDER BY created_at, id`

	rows, err := tx.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying connections: %w", err)
	}

	defer rows.Close()

	conns, err := collectConnections(rows)
	if err != nil {
		return nil, fmt.Errorf("collecting connections: %w", err)
	}

	return conns, nil
}
