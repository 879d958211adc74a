package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jotarampini-cell/synapse/internal/models"
)

// ContentStore handles content item persistence.
type ContentStore struct {
	Base
}

// NewContentStore creates a new ContentStore.
func NewContentStore(base Base) *ContentStore {
	return &ContentStore{Base: base}
}

// CreateContent inserts a new content item (no embedding) and returns the
// created record.
func (s *ContentStore) CreateContent(
	ctx context.Context,
	userID string,
	params models.CreateContentParams,
) (*models.ContentItem, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginTx(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("creating content: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	tags := params.Tags
	if tags == nil {
		tags = []string{}
	}

	query := `INSERT INTO content_items (id, user_id, title, body, kind, tags)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + contentColumns

	row := tx.QueryRow(ctx, query, params.ID, userID, params.Title, params.Body, string(params.Kind), tags)

	c, err := scanContent(row.Scan)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, models.ErrDuplicateKey
		}

		return nil, fmt.Errorf("scanning created content: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing create content: %w", err)
	}

	s.notify("content.created", userID, c.ID)

	return c, nil
}

// GetContent returns a single content item by ID.
func (s *ContentStore) GetContent(ctx context.Context, userID, contentID string) (*models.ContentItem, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginReadTx(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("getting content: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // read-only tx, rollback is cleanup.

	query := `SELECT ` + contentColumns + ` FROM content_items
		WHERE user_id = current_setting('app.user_id')::uuid AND id = $1`

	row := tx.QueryRow(ctx, query, contentID)

	c, err := scanContent(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrContentNotFound
		}

		return nil, fmt.Errorf("scanning content: %w", err)
	}

	return c, nil
}

// summaryJoinColumns selects the LEFT JOINed summary columns alongside content.
const summaryJoinColumns = `s.id, s.content_id, s.summary, s.concepts, s.created_at, s.updated_at`

// GetContentWithSummary returns a content item joined with its summary
// record. A missing summary is not an error; Summary is nil in that case.
func (s *ContentStore) GetContentWithSummary(ctx context.Context, userID, contentID string) (*models.ContentWithSummary, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginReadTx(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("getting content with summary: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // read-only tx, rollback is cleanup.

	query := `SELECT c.id, c.user_id, c.title, c.body, c.kind, c.tags,
			(c.embedding IS NOT NULL), c.created_at, c.updated_at, ` + summaryJoinColumns + `
		FROM content_items c
		LEFT JOIN summaries s ON s.content_id = c.id
		WHERE c.user_id = current_setting('app.user_id')::uuid AND c.id = $1`

	row := tx.QueryRow(ctx, query, contentID)

	cs, err := scanContentWithSummary(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrContentNotFound
		}

		return nil, fmt.Errorf("scanning content with summary: %w", err)
	}

	return cs, nil
}

// ListContent returns the user's content newest-first, each joined with its
// summary record when one exists. The second return value reports whether
// more rows exist past the requested page.
func (s *ContentStore) ListContent(ctx context.Context, userID string, limit, offset int) ([]models.ContentWithSummary, bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	limit = clampLimit(limit, 50)

	if offset < 0 {
		offset = 0
	}

	tx, err := s.beginReadTx(ctx, userID)
	if err != nil {
		return nil, false, fmt.Errorf("listing content: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // read-only tx, rollback is cleanup.

	query := `SELECT c.id, c.user_id, c.title, c.body, c.kind, c.tags,
			(c.embedding IS NOT NULL), c.created_at, c.updated_at, ` + summaryJoinColumns + `
		FROM content_items c
		LEFT JOIN summaries s ON s.content_id = c.id
		WHERE c.user_id = current_setting('app.user_id')::uuid
		ORDER BY c.created_at DESC
		LIMIT $1 OFFSET $2`

	// Fetch one extra row to detect whether more pages exist.
	rows, err := tx.Query(ctx, query, limit+1, offset)
	if err != nil {
		return nil, false, fmt.Errorf("querying content: %w", err)
	}

	defer rows.Close()

	items := make([]models.ContentWithSummary, 0, limit)

	for rows.Next() {
		cs, err := scanContentWithSummary(rows.Scan)
		if err != nil {
			return nil, false, fmt.Errorf("scanning content row: %w", err)
		}

		items = append(items, *cs)
	}

	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterating content rows: %w", err)
	}

	hasMore := len(items) > limit
	if hasMore {
		items = items[:limit]
	}

	return items, hasMore, nil
}

// UpdateContentFields overwrites title, body, and tags of an existing item.
func (s *ContentStore) UpdateContentFields(
	ctx context.Context,
	userID, contentID string,
	title, body string,
	tags []string,
) (*models.ContentItem, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginTx(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("updating content: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	if tags == nil {
		tags = []string{}
	}

	query := `UPDATE content_items SET title = $1, body = $2, tags = $3
		WHERE user_id = current_setting('app.user_id')::uuid AND id = $4
		RETURNING ` + contentColumns

	row := tx.QueryRow(ctx, query, title, body, tags, contentID)

	c, err := scanContent(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrContentNotFound
		}

		return nil, fmt.Errorf("scanning updated content: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing update content: %w", err)
	}

	s.notify("content.updated", userID, c.ID)

	return c, nil
}

// UpdateContentEmbedding sets the embedding vector for a single content item.
func (s *ContentStore) UpdateContentEmbedding(ctx context.Context, userID, contentID string, embedding []float32) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginTx(ctx, userID)
	if err != nil {
		return fmt.Errorf("updating content embedding: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	tag, err := tx.Exec(ctx,
		`UPDATE content_items SET embedding = $1::vector
		 WHERE user_id = current_setting('app.user_id')::uuid AND id = $2`,
		formatEmbedding(embedding), contentID,
	)
	if err != nil {
		return fmt.Errorf("executing embedding update: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return models.ErrContentNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing embedding update: %w", err)
	}

	return nil
}

// DeleteContent removes a content item; its summary record goes with it via
// the store's cascade rule. Concept nodes and connections are untouched.
func (s *ContentStore) DeleteContent(ctx context.Context, userID, contentID string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginTx(ctx, userID)
	if err != nil {
		return fmt.Errorf("deleting content: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	tag, err := tx.Exec(ctx,
		"DELETE FROM content_items WHERE user_id = current_setting('app.user_id')::uuid AND id = $1",
		contentID,
	)
	if err != nil {
		return fmt.Errorf("executing content delete: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return models.ErrContentNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing delete content: %w", err)
	}

	s.notify("content.deleted", userID, contentID)

	return nil
}

// ListContentWithoutEmbeddings returns id/title/body for content items that
// have a NULL embedding vector, oldest first, up to the given limit. Used by
// the embedding backfill worker.
func (s *ContentStore) ListContentWithoutEmbeddings(ctx context.Context, userID string, limit int) ([]models.ContentSummaryRef, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	limit = clampLimit(limit, 100)

	tx, err := s.beginReadTx(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing content without embeddings: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // read-only tx, rollback is cleanup.

	rows, err := tx.Query(ctx,
		`SELECT id, title, body FROM content_items
		 WHERE user_id = current_setting('app.user_id')::uuid
		   AND embedding IS NULL
		 ORDER BY created_at
		 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying content without embeddings: %w", err)
	}

	defer rows.Close()

	var refs []models.ContentSummaryRef

	for rows.Next() {
		var r models.ContentSummaryRef
		if err := rows.Scan(&r.ID, &r.Title, &r.Body); err != nil {
			return nil, fmt.Errorf("scanning content ref: %w", err)
		}

		refs = append(refs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating content refs: %w", err)
	}

	return refs, nil
}

// ListUsersWithPendingEmbeddings returns the IDs of users who own content
// rows with a NULL embedding. Runs on the pool as the table owner, outside
// the per-user RLS context; only the backfill sweep calls it.
func (s *ContentStore) ListUsersWithPendingEmbeddings(ctx context.Context) ([]string, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := s.Pool.Query(ctx,
		"SELECT DISTINCT user_id FROM content_items WHERE embedding IS NULL")
	if err != nil {
		return nil, fmt.Errorf("querying users with pending embeddings: %w", err)
	}

	defer rows.Close()

	var ids []string

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning user id: %w", err)
		}

		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating user ids: %w", err)
	}

	return ids, nil
}

// SimilarContent returns the user's content items nearest to the given item
// by embedding cosine distance. Items without an embedding (including the
// reference item, if un-embedded) are excluded.
func (s *ContentStore) SimilarContent(ctx context.Context, userID, contentID string, limit int) ([]models.RelatedContent, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	limit = clampLimit(limit, 10)

	tx, err := s.beginReadTx(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("finding similar content: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // read-only tx, rollback is cleanup.

	query := `SELECT c.id, c.user_id, c.title, c.body, c.kind, c.tags,
			(c.embedding IS NOT NULL), c.created_at, c.updated_at,
			1 - (c.embedding <=> t.embedding) AS score
		FROM content_items c
		JOIN content_items t ON t.id = $1
		WHERE c.user_id = current_setting('app.user_id')::uuid
		  AND c.id != t.id
		  AND c.embedding IS NOT NULL
		  AND t.embedding IS NOT NULL
		ORDER BY c.embedding <=> t.embedding
		LIMIT $2`

	rows, err := tx.Query(ctx, query, contentID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying similar content: %w", err)
	}

	defer rows.Close()

	results := make([]models.RelatedContent, 0, limit)

	for rows.Next() {
		var rc models.RelatedContent
		var kind string

		err := rows.Scan(
			&rc.ID, &rc.UserID, &rc.Title, &rc.Body, &kind, &rc.Tags,
			&rc.HasEmbedding, &rc.CreatedAt, &rc.UpdatedAt, &rc.Score,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning similar content row: %w", err)
		}

		rc.Kind = models.ContentKind(kind)
		if rc.Tags == nil {
			rc.Tags = []string{}
		}

		results = append(results, rc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating similar content rows: %w", err)
	}

	return results, nil
}

// scanContentWithSummary scans a content row LEFT JOINed with its summary.
func scanContentWithSummary(scan func(dest ...any) error) (*models.ContentWithSummary, error) {
	var cs models.ContentWithSummary
	var kind string
	var ns nullableSummary

	err := scan(
		&cs.ID, &cs.UserID, &cs.Title, &cs.Body, &kind, &cs.Tags,
		&cs.HasEmbedding, &cs.CreatedAt, &cs.UpdatedAt,
		&ns.ID, &ns.ContentID, &ns.Summary, &ns.Concepts, &ns.CreatedAt, &ns.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	cs.Kind = models.ContentKind(kind)
	if cs.Tags == nil {
		cs.Tags = []string{}
	}

	cs.Summary = ns.record()

	return &cs, nil
}
