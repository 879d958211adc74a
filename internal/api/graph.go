package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// GraphHandler serves concept graph read endpoints.
type GraphHandler struct {
	svc GraphReader
	log *logrus.Logger
}

// NewGraphHandler creates a GraphHandler with the given service and logger.
func NewGraphHandler(svc GraphReader, log *logrus.Logger) *GraphHandler {
	return &GraphHandler{svc: svc, log: log}
}

// Nodes handles GET /api/v1/graph/nodes.
func (h *GraphHandler) Nodes(c *gin.Context) {
	userID := getUserID(c)
	if userID == "" {
		return
	}

	nodes, err := h.svc.ListNodes(c.Request.Context(), userID)
	if err != nil {
		h.log.WithError(err).Error("listing concept nodes")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, gin.H{"nodes": nodes})
}

// Connections handles GET /api/v1/graph/connections.
func (h *GraphHandler) Connections(c *gin.Context) {
	userID := getUserID(c)
	if userID == "" {
		return
	}

	connections, err := h.svc.ListConnections(c.Request.Context(), userID)
	if err != nil {
		h.log.WithError(err).Error("listing concept connections")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, gin.H{"connections": connections})
}
