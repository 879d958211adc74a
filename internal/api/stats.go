package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"

	"github.com/jotarampini-cell/synapse/internal/dbpool"
)

// StatsHandler serves the capture and graph statistics endpoint.
type StatsHandler struct {
	pool *dbpool.Pool
	log  *logrus.Logger
}

// NewStatsHandler creates a StatsHandler with the given dependencies.
func NewStatsHandler(pool *dbpool.Pool, log *logrus.Logger) *StatsHandler {
	return &StatsHandler{pool: pool, log: log}
}

// statsResponse is the JSON payload returned by the stats endpoint.
type statsResponse struct {
	ContentItems       int `json:"content_items"`
	Summaries          int `json:"summaries"`
	ConceptNodes       int `json:"concept_nodes"`
	ConceptConnections int `json:"concept_connections"`
	EmbeddingsComplete int `json:"embeddings_complete"`
	EmbeddingsPending  int `json:"embeddings_pending"`
}

// GetStats handles GET /api/v1/stats — returns aggregate per-user counts.
func (h *StatsHandler) GetStats(c *gin.Context) {
	ctx := c.Request.Context()

	userID := getUserID(c)
	if userID == "" {
		return
	}

	// Read-only transaction with the user's RLS context.
	tx, err := h.pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		h.log.WithError(err).Error("stats: begin tx")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
		return
	}
	defer tx.Rollback(ctx) //nolint:errcheck // read-only tx, rollback is cleanup.

	if _, err := tx.Exec(ctx, "SELECT set_config('app.user_id', $1, true)", userID); err != nil {
		h.log.WithError(err).Error("stats: set user")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
		return
	}

	var resp statsResponse

	// Single consolidated query for all user-scoped stats.
	if err := tx.QueryRow(ctx,
		`SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE embedding IS NOT NULL),
			COUNT(*) FILTER (WHERE embedding IS NULL),
			(SELECT COUNT(*) FROM summaries s JOIN content_items ci ON ci.id = s.content_id
				WHERE ci.user_id = current_setting('app.user_id')::uuid),
			(SELECT COUNT(*) FROM concept_nodes WHERE user_id = current_setting('app.user_id')::uuid),
			(SELECT COUNT(*) FROM concept_connections WHERE user_id = current_setting('app.user_id')::uuid)
		 FROM content_items
		 WHERE user_id = current_setting('app.user_id')::uuid`,
	).Scan(
		&resp.ContentItems, &resp.EmbeddingsComplete, &resp.EmbeddingsPending,
		&resp.Summaries, &resp.ConceptNodes, &resp.ConceptConnections,
	); err != nil {
		h.log.WithError(err).Error("stats: consolidated query")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
		return
	}

	c.JSON(http.StatusOK, resp)
}
