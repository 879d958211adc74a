// Migration runner using goose (github.com/pressly/goose/v3).
//
// Migration files live in internal/db/migrations/ and are embedded via
// //go:embed. Up/down migrations live in the same file (-- +goose Up /
// -- +goose Down). On startup, RunMigrations applies all pending
// migrations automatically.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as database/sql driver
	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"

	"github.com/jotarampini-cell/synapse/internal/dbpool"
)

// RunMigrations applies all pending migrations from the provided filesystem.
// The fsys should contain goose-annotated SQL files (e.g. "00001_initial.sql").
func RunMigrations(ctx context.Context, pool *dbpool.Pool, log *logrus.Logger, fsys fs.FS) error {
	// goose requires a *sql.DB. Open a fresh connection via the pgx stdlib
	// driver using the pool's connection string.
	connStr := pool.ConnString()

	sqlDB, err := sql.Open("pgx", connStr)
	if err != nil {
		return fmt.Errorf("opening sql.DB for migrations: %w", err)
	}
	defer sqlDB.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, sqlDB, fsys)
	if err != nil {
		return fmt.Errorf("creating goose provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("applying migrations: %w", err)
	}

	for _, r := range results {
		if r.Error != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", r.Source.Version, r.Source.Path, r.Error)
		}

		log.WithFields(logrus.Fields{
			"version":  r.Source.Version,
			"file":     r.Source.Path,
			"duration": r.Duration,
		}).Info("migration applied")
	}

	if len(results) == 0 {
		log.Debug("all migrations already applied")
	}

	return nil
}

// EnsureVectorDimensions checks that the content_items.embedding column
// matches the configured dimensions and alters it (with index rebuild) if
// not. Existing embeddings with mismatched dimensions are set to NULL so the
// backfill worker can regenerate them.
func EnsureVectorDimensions(ctx context.Context, pool *dbpool.Pool, log *logrus.Logger, dimensions int) error {
	if dimensions < 1 || dimensions > 4096 {
		return fmt.Errorf("embedding dimensions must be between 1 and 4096, got %d", dimensions)
	}

	var currentType string
	err := pool.QueryRow(ctx,
		`SELECT format_type(a.atttypid, a.atttypmod)
		 FROM pg_attribute a
		 JOIN pg_class c ON c.oid = a.attrelid
		 WHERE c.relname = 'content_items' AND a.attname = 'embedding' AND NOT a.attisdropped`,
	).Scan(&currentType)
	if err != nil {
		return fmt.Errorf("querying embedding column type: %w", err)
	}

	expectedType := fmt.Sprintf("vector(%d)", dimensions)
	if currentType == expectedType {
		log.WithField("dimensions", dimensions).Debug("embedding column dimensions match config")
		return nil
	}

	log.WithFields(logrus.Fields{
		"current":  currentType,
		"expected": expectedType,
	}).Info("embedding column dimensions changed, altering schema")

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning dimension alter tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	if _, err := tx.Exec(ctx, `DROP INDEX IF EXISTS idx_content_embedding`); err != nil {
		return fmt.Errorf("dropping embedding index: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`UPDATE content_items SET embedding = NULL WHERE embedding IS NOT NULL AND vector_dims(embedding) != $1`,
		dimensions,
	); err != nil {
		return fmt.Errorf("nulling mismatched embeddings: %w", err)
	}

	alterSQL := fmt.Sprintf(`ALTER TABLE content_items ALTER COLUMN embedding TYPE vector(%d)`, dimensions)
	if _, err := tx.Exec(ctx, alterSQL); err != nil {
		return fmt.Errorf("altering embedding column: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`CREATE INDEX idx_content_embedding ON content_items USING hnsw (embedding vector_cosine_ops)
		 WITH (m = 32, ef_construction = 200) WHERE embedding IS NOT NULL`,
	); err != nil {
		return fmt.Errorf("recreating embedding index: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing dimension alter: %w", err)
	}

	log.WithField("dimensions", dimensions).Info("embedding column dimensions updated")
	return nil
}
