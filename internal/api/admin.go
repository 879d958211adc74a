package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AdminHandler serves administrative endpoints.
type AdminHandler struct {
	backfill Backfiller
	log      *logrus.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(backfill Backfiller, log *logrus.Logger) *AdminHandler {
	return &AdminHandler{backfill: backfill, log: log}
}

// BackfillEmbeddings handles POST /api/v1/admin/backfill-embeddings — queues
// embedding generation for the caller's content rows with NULL embeddings.
func (h *AdminHandler) BackfillEmbeddings(c *gin.Context) {
	userID := getUserID(c)
	if userID == "" {
		return
	}

	if h.backfill == nil {
		respondError(c, http.StatusServiceUnavailable, ErrCodeInternalError, "embedding worker not available")

		return
	}

	queued, err := h.backfill.BackfillUser(c.Request.Context(), userID)
	if err != nil {
		h.log.WithError(err).Error("backfilling embeddings")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	h.log.WithFields(logrus.Fields{
		"action":  "admin.backfill_embeddings",
		"user_id": userID,
		"queued":  queued,
	}).Info("audit")

	c.JSON(http.StatusOK, gin.H{"queued": queued})
}
