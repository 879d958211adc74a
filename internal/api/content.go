package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jotarampini-cell/synapse/internal/models"
)

// ContentHandler serves content capture and retrieval endpoints.
type ContentHandler struct {
	svc ContentService
	log *logrus.Logger
}

// NewContentHandler creates a ContentHandler with the given service and logger.
func NewContentHandler(svc ContentService, log *logrus.Logger) *ContentHandler {
	return &ContentHandler{svc: svc, log: log}
}

// SubmitText handles POST /api/v1/content. The response returns once the
// whole pipeline has been attempted; has_embedding and the summary tell the
// caller how far enrichment got.
func (h *ContentHandler) SubmitText(c *gin.Context) {
	var req models.SubmitContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

		return
	}

	userID := getUserID(c)
	if userID == "" {
		return
	}

	item, err := h.svc.SubmitText(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, models.ErrDuplicateKey) {
			respondError(c, http.StatusConflict, "conflict", "content with this ID already exists")

			return
		}

		var enrichErr *models.EnrichmentFailedError
		if errors.As(err, &enrichErr) {
			// The row is committed; only the derived data is missing.
			h.log.WithError(err).WithField("content_id", enrichErr.ContentID).Warn("enrichment failed")
			respondError(c, http.StatusBadGateway, ErrCodeUpstreamError,
				"content "+enrichErr.ContentID+" was saved but enrichment failed")

			return
		}

		h.log.WithError(err).Error("submitting content")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	h.log.WithFields(logrus.Fields{"action": "content.submit", "user_id": userID, "content_id": item.ID}).Info("audit")

	c.JSON(http.StatusCreated, item)
}

// SubmitURL handles POST /api/v1/content/url — clips a web page and ingests
// the extracted text as url-kind content.
func (h *ContentHandler) SubmitURL(c *gin.Context) {
	var req models.SubmitURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

		return
	}

	userID := getUserID(c)
	if userID == "" {
		return
	}

	item, err := h.svc.SubmitURL(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, models.ErrDuplicateKey) {
			respondError(c, http.StatusConflict, "conflict", "content with this ID already exists")

			return
		}

		var enrichErr *models.EnrichmentFailedError
		if errors.As(err, &enrichErr) {
			h.log.WithError(err).WithField("content_id", enrichErr.ContentID).Warn("enrichment failed")
			respondError(c, http.StatusBadGateway, ErrCodeUpstreamError,
				"content "+enrichErr.ContentID+" was saved but enrichment failed")

			return
		}

		// Anything else before the content row is written is a clip
		// failure: a blocked, unreachable, or unextractable page.
		h.log.WithError(err).WithField("url", req.URL).Warn("url clip failed")
		respondError(c, http.StatusUnprocessableEntity, ErrCodeUpstreamError, "could not extract content from url")

		return
	}

	h.log.WithFields(logrus.Fields{"action": "content.submit_url", "user_id": userID, "content_id": item.ID}).Info("audit")

	c.JSON(http.StatusCreated, item)
}

// Get handles GET /api/v1/content/:id — returns the item with its summary,
// if enrichment has produced one.
func (h *ContentHandler) Get(c *gin.Context) {
	contentID := c.Param("id")
	if err := validatePathID(contentID); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	userID := getUserID(c)
	if userID == "" {
		return
	}

	item, err := h.svc.GetContent(c.Request.Context(), userID, contentID)
	if err != nil {
		if errors.Is(err, models.ErrContentNotFound) {
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "content not found")

			return
		}

		h.log.WithError(err).Error("getting content")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, item)
}

// List handles GET /api/v1/content — newest first, summaries included.
func (h *ContentHandler) List(c *gin.Context) {
	userID := getUserID(c)
	if userID == "" {
		return
	}
	limit := parseInt(c.DefaultQuery("limit", "50"), 50)
	offset := parseOffset(c.DefaultQuery("offset", "0"))

	items, hasMore, err := h.svc.ListContent(c.Request.Context(), userID, limit, offset)
	if err != nil {
		h.log.WithError(err).Error("listing content")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "has_more": hasMore})
}

// Update handles PUT /api/v1/content/:id. The edit re-runs embedding and
// summarization for this item only; the concept graph is left untouched.
func (h *ContentHandler) Update(c *gin.Context) {
	contentID := c.Param("id")
	if err := validatePathID(contentID); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	var req models.UpdateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

		return
	}

	userID := getUserID(c)
	if userID == "" {
		return
	}

	item, err := h.svc.UpdateContent(c.Request.Context(), userID, contentID, req)
	if err != nil {
		if errors.Is(err, models.ErrContentNotFound) {
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "content not found")

			return
		}

		var enrichErr *models.EnrichmentFailedError
		if errors.As(err, &enrichErr) {
			h.log.WithError(err).WithField("content_id", contentID).Warn("enrichment failed")
			respondError(c, http.StatusBadGateway, ErrCodeUpstreamError,
				"content "+contentID+" was updated but enrichment failed")

			return
		}

		h.log.WithError(err).Error("updating content")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	h.log.WithFields(logrus.Fields{"action": "content.update", "user_id": userID, "content_id": contentID}).Info("audit")

	c.JSON(http.StatusOK, item)
}

// Delete handles DELETE /api/v1/content/:id. Concept nodes and connections
// grown from this item persist; only the item and its summary go away.
func (h *ContentHandler) Delete(c *gin.Context) {
	contentID := c.Param("id")
	if err := validatePathID(contentID); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	userID := getUserID(c)
	if userID == "" {
		return
	}

	if err := h.svc.DeleteContent(c.Request.Context(), userID, contentID); err != nil {
		if errors.Is(err, models.ErrContentNotFound) {
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "content not found")

			return
		}

		h.log.WithError(err).Error("deleting content")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	h.log.WithFields(logrus.Fields{"action": "content.delete", "user_id": userID, "content_id": contentID}).Info("audit")

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// Related handles GET /api/v1/content/:id/related — nearest items by
// embedding distance.
func (h *ContentHandler) Related(c *gin.Context) {
	contentID := c.Param("id")
	if err := validatePathID(contentID); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	userID := getUserID(c)
	if userID == "" {
		return
	}
	limit := parseInt(c.DefaultQuery("limit", "10"), 10)

	related, err := h.svc.RelatedContent(c.Request.Context(), userID, contentID, limit)
	if err != nil {
		if errors.Is(err, models.ErrContentNotFound) {
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "content not found")

			return
		}

		h.log.WithError(err).Error("listing related content")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, gin.H{"items": related})
}
