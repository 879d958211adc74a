package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jotarampini-cell/synapse/internal/models"
)

// ConceptStore handles concept node persistence.
type ConceptStore struct {
	Base
}

// NewConceptStore creates a new ConceptStore.
func NewConceptStore(base Base) *ConceptStore {
	return &ConceptStore{Base: base}
}

// EnsureNode inserts a concept node unless one with the same label already
// exists for the user. It returns the node and whether a new row was
// created. Label matching is exact; concurrent inserts of the same label
// resolve to a single row.
func (s *ConceptStore) EnsureNode(ctx context.Context, userID string, node models.ConceptNode) (*models.ConceptNode, bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginTx(ctx, userID)
	if err != nil {
		return nil, false, fmt.Errorf("ensuring concept node: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	insert := `INSERT INTO concept_nodes (id, user_id, label, kind, color, x, y)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, label) DO NOTHING
		RETURNING ` + nodeColumns

	row := tx.QueryRow(ctx, insert, node.ID, userID, node.Label, node.Kind, node.Color, node.X, node.Y)

	created, err := scanNode(row.Scan)
	if err == nil {
		if err := tx.Commit(ctx); err != nil {
			return nil, false, fmt.Errorf("committing ensure node: %w", err)
		}

		s.notify("node.created", userID, created.ID)

		return created, true, nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("scanning inserted node: %w", err)
	}

	// Conflict: the label already has a node. Read the existing row.
	query := `SELECT ` + nodeColumns + ` FROM concept_nodes
		WHERE user_id = current_setting('app.user_id')::uuid AND label = $1`

	existing, err := scanNode(tx.QueryRow(ctx, query, node.Label).Scan)
	if err != nil {
		return nil, false, fmt.Errorf("reading existing node: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, false, fmt.Errorf("committing ensure node: %w", err)
	}

	return existing, false, nil
}

// ListNodes returns all of the user's concept nodes, oldest first.
func (s *ConceptStore) ListNodes(ctx context.Context, userID string) ([]models.ConceptNode, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginReadTx(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing concept nodes: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // read-only tx, rollback is cleanup.

	query := `SELECT ` + nodeColumns + ` FROM concept_nodes
		WHERE user_id = current_setting('app.user_id')::uuid
		ORDER BY created_at, id`

	rows, err := tx.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying concept nodes: %w", err)
	}

	defer rows.Close()

	nodes, err := collectNodes(rows)
	if err != nil {
		return nil, fmt.Errorf("collecting concept nodes: %w", err)
	}

	return nodes, nil
}

// CountNodes returns how many concept nodes the user has.
func (s *ConceptStore) CountNodes(ctx context.Context, userID string) (int, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginReadTx(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("counting concept nodes: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // read-only tx, rollback is cleanup.

	var count int

	err = tx.QueryRow(ctx,
		"SELECT COUNT(*) FROM concept_nodes WHERE user_id = current_setting('app.user_id')::uuid",
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("scanning node count: %w", err)
	}

	return count, nil
}
