package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jotarampini-cell/synapse/internal/models"
)

// ActivityHandler serves the pipeline activity feed.
type ActivityHandler struct {
	svc ActivityReader
	log *logrus.Logger
}

// NewActivityHandler creates an ActivityHandler with the given service and logger.
func NewActivityHandler(svc ActivityReader, log *logrus.Logger) *ActivityHandler {
	return &ActivityHandler{svc: svc, log: log}
}

// Query handles GET /api/v1/activity with optional action and entity_type filters.
func (h *ActivityHandler) Query(c *gin.Context) {
	userID := getUserID(c)
	if userID == "" {
		return
	}

	opts := models.ActivityQueryOpts{
		Action:     c.Query("action"),
		EntityType: c.Query("entity_type"),
		Limit:      parseInt(c.DefaultQuery("limit", "50"), 50),
		Offset:     parseOffset(c.DefaultQuery("offset", "0")),
	}

	entries, err := h.svc.QueryActivity(c.Request.Context(), userID, opts)
	if err != nil {
		h.log.WithError(err).Error("querying activity")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}
