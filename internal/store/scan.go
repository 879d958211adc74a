package store

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jotarampini-cell/synapse/internal/models"
)

// contentColumns lists the columns selected for content queries. The raw
// embedding vector is never read back; only its presence is reported.
const contentColumns = `id, user_id, title, body, kind, tags, (embedding IS NOT NULL), created_at, updated_at`

// summaryColumns lists the columns selected for summary queries.
const summaryColumns = `id, content_id, summary, concepts, created_at, updated_at`

// nodeColumns lists the columns selected for concept node queries.
const nodeColumns = `id, user_id, label, kind, color, x, y, created_at`

// connectionColumns lists the columns selected for connection queries.
const connectionColumns = `id, user_id, source_label, target_label, strength, reason, created_at`

// scanContent scans a single row into a models.ContentItem.
func scanContent(scan func(dest ...any) error) (*models.ContentItem, error) {
	var c models.ContentItem
	var userID uuid.UUID
	var kind string

	err := scan(
		&c.ID,
		&userID,
		&c.Title,
		&c.Body,
		&kind,
		&c.Tags,
		&c.HasEmbedding,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.UserID = userID
	c.Kind = models.ContentKind(kind)

	if c.Tags == nil {
		c.Tags = []string{}
	}

	return &c, nil
}

// scanSummary scans a single row into a models.SummaryRecord.
func scanSummary(scan func(dest ...any) error) (*models.SummaryRecord, error) {
	var s models.SummaryRecord

	err := scan(
		&s.ID,
		&s.ContentID,
		&s.Summary,
		&s.Concepts,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if s.Concepts == nil {
		s.Concepts = []string{}
	}

	return &s, nil
}

// scanNode scans a single row into a models.ConceptNode.
func scanNode(scan func(dest ...any) error) (*models.ConceptNode, error) {
	var n models.ConceptNode
	var userID uuid.UUID

	err := scan(
		&n.ID,
		&userID,
		&n.Label,
		&n.Kind,
		&n.Color,
		&n.X,
		&n.Y,
		&n.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	n.UserID = userID

	return &n, nil
}

// scanConnection scans a single row into a models.ConceptConnection.
func scanConnection(scan func(dest ...any) error) (*models.ConceptConnection, error) {
	var c models.ConceptConnection
	var userID uuid.UUID

	err := scan(
		&c.ID,
		&userID,
		&c.SourceLabel,
		&c.TargetLabel,
		&c.Strength,
		&c.Reason,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.UserID = userID

	return &c, nil
}

// nullableSummary holds scan targets for a LEFT JOINed summary row where
// every column may be NULL.
type nullableSummary struct {
	ID        *string
	ContentID *string
	Summary   *string
	Concepts  []string
	CreatedAt *time.Time
	UpdatedAt *time.Time
}

// record converts the nullable scan targets into a SummaryRecord, or nil if
// the joined row was absent.
func (ns *nullableSummary) record() *models.SummaryRecord {
	if ns.ID == nil {
		return nil
	}

	s := &models.SummaryRecord{
		ID:        *ns.ID,
		ContentID: *ns.ContentID,
		Summary:   *ns.Summary,
		Concepts:  ns.Concepts,
		CreatedAt: *ns.CreatedAt,
		UpdatedAt: *ns.UpdatedAt,
	}

	if s.Concepts == nil {
		s.Concepts = []string{}
	}

	return s
}

// collectNodes scans all rows into a concept node slice.
func collectNodes(rows pgx.Rows) ([]models.ConceptNode, error) {
	nodes := make([]models.ConceptNode, 0, 16)

	for rows.Next() {
		n, err := scanNode(rows.Scan)
		if err != nil {
			return nil, err
		}

		nodes = append(nodes, *n)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return nodes, nil
}

// collectConnections scans all rows into a connection slice.
func collectConnections(rows pgx.Rows) ([]models.ConceptConnection, error) {
	conns := make([]models.ConceptConnection, 0, 16)

	for rows.Next() {
		c, err := scanConnection(rows.Scan)
		if err != nil {
			return nil, err
		}

		conns = append(conns, *c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return conns, nil
}
