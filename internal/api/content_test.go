package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/jotarampini-cell/synapse/internal/api"
	"github.com/jotarampini-cell/synapse/internal/models"
)

func contentRouter(svc *mockContentService) *gin.Engine {
	r := newTestRouter()
	h := api.NewContentHandler(svc, testLogger())
	r.POST("/content", h.SubmitText)
	r.POST("/content/url", h.SubmitURL)
	r.GET("/content", h.List)
	r.GET("/content/:id", h.Get)
	r.PUT("/content/:id", h.Update)
	r.DELETE("/content/:id", h.Delete)
	r.GET("/content/:id/related", h.Related)

	return r
}

func TestSubmitText(t *testing.T) {
	svc := &mockContentService{}
	r := contentRouter(svc)

	w := doRequest(r, http.MethodPost, "/content", `{"title":"Note","body":"Some thought","tags":["ideas"]}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("got %d, want %d: %s", w.Code, http.StatusCreated, w.Body.String())
	}
	if svc.lastSubmitted == nil || svc.lastSubmitted.Title != "Note" {
		t.Fatalf("service did not receive the submitted request: %+v", svc.lastSubmitted)
	}

	var item models.ContentItem
	if err := json.Unmarshal(w.Body.Bytes(), &item); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if item.Kind != models.KindText {
		t.Errorf("kind = %q, want %q", item.Kind, models.KindText)
	}
}

func TestSubmitTextValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing title", `{"body":"text"}`},
		{"missing body", `{"title":"t"}`},
		{"malformed json", `{"title":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := contentRouter(&mockContentService{})
			w := doRequest(r, http.MethodPost, "/content", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("got %d, want %d", w.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestSubmitTextEnrichmentFailure(t *testing.T) {
	svc := &mockContentService{
		submitTextFn: func(_ context.Context, _ string, req models.SubmitContentRequest) (*models.ContentItem, error) {
			item := &models.ContentItem{ID: "c1", Title: req.Title, Body: req.Body, Kind: models.KindText}
			return item, &models.EnrichmentFailedError{ContentID: item.ID, Err: errors.New("model offline")}
		},
	}
	r := contentRouter(svc)

	w := doRequest(r, http.MethodPost, "/content", `{"title":"Note","body":"Some thought"}`)

	if w.Code != http.StatusBadGateway {
		t.Fatalf("got %d, want %d: %s", w.Code, http.StatusBadGateway, w.Body.String())
	}

	var resp struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Code != "upstream_error" {
		t.Errorf("code = %q, want upstream_error", resp.Code)
	}
}

func TestUpdateContentEnrichmentFailure(t *testing.T) {
	svc := &mockContentService{
		updateFn: func(_ context.Context, _, contentID string, req models.UpdateContentRequest) (*models.ContentItem, error) {
			item := &models.ContentItem{ID: contentID, Title: req.Title, Body: req.Body}
			return item, &models.EnrichmentFailedError{ContentID: contentID, Err: errors.New("model offline")}
		},
	}
	r := contentRouter(svc)

	w := doRequest(r, http.MethodPut, "/content/c1", `{"title":"New","body":"New body"}`)

	if w.Code != http.StatusBadGateway {
		t.Fatalf("got %d, want %d: %s", w.Code, http.StatusBadGateway, w.Body.String())
	}
}

func TestSubmitURL(t *testing.T) {
	svc := &mockContentService{}
	r := contentRouter(svc)

	w := doRequest(r, http.MethodPost, "/content/url", `{"url":"https://example.com/article"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("got %d, want %d: %s", w.Code, http.StatusCreated, w.Body.String())
	}
}

func TestSubmitURLClipFailure(t *testing.T) {
	svc := &mockContentService{
		submitURLFn: func(context.Context, string, models.SubmitURLRequest) (*models.ContentItem, error) {
			return nil, errors.New("page has no extractable text")
		},
	}
	r := contentRouter(svc)

	w := doRequest(r, http.MethodPost, "/content/url", `{"url":"https://example.com"}`)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("got %d, want %d", w.Code, http.StatusUnprocessableEntity)
	}
}

func TestGetContentNotFound(t *testing.T) {
	svc := &mockContentService{
		getFn: func(context.Context, string, string) (*models.ContentWithSummary, error) {
			return nil, models.ErrContentNotFound
		},
	}
	r := contentRouter(svc)

	w := doRequest(r, http.MethodGet, "/content/missing", "")

	if w.Code != http.StatusNotFound {
		t.Fatalf("got %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestListContent(t *testing.T) {
	var gotLimit, gotOffset int
	svc := &mockContentService{
		listFn: func(_ context.Context, _ string, limit, offset int) ([]models.ContentWithSummary, bool, error) {
			gotLimit, gotOffset = limit, offset
			return []models.ContentWithSummary{
				{ContentItem: models.ContentItem{ID: "a"}},
				{ContentItem: models.ContentItem{ID: "b"}},
			}, true, nil
		},
	}
	r := contentRouter(svc)

	w := doRequest(r, http.MethodGet, "/content?limit=2&offset=4", "")

	if w.Code != http.StatusOK {
		t.Fatalf("got %d, want %d", w.Code, http.StatusOK)
	}
	if gotLimit != 2 || gotOffset != 4 {
		t.Errorf("limit/offset = %d/%d, want 2/4", gotLimit, gotOffset)
	}

	var resp struct {
		Items   []models.ContentWithSummary `json:"items"`
		HasMore bool                        `json:"has_more"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(resp.Items) != 2 || !resp.HasMore {
		t.Errorf("items=%d has_more=%v, want 2/true", len(resp.Items), resp.HasMore)
	}
}

func TestUpdateContent(t *testing.T) {
	r := contentRouter(&mockContentService{})

	w := doRequest(r, http.MethodPut, "/content/c1", `{"title":"New","body":"Edited"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("got %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}
}

func TestUpdateContentNotFound(t *testing.T) {
	svc := &mockContentService{
		updateFn: func(context.Context, string, string, models.UpdateContentRequest) (*models.ContentItem, error) {
			return nil, models.ErrContentNotFound
		},
	}
	r := contentRouter(svc)

	w := doRequest(r, http.MethodPut, "/content/missing", `{"title":"t","body":"b"}`)

	if w.Code != http.StatusNotFound {
		t.Fatalf("got %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestDeleteContent(t *testing.T) {
	r := contentRouter(&mockContentService{})

	w := doRequest(r, http.MethodDelete, "/content/c1", "")

	if w.Code != http.StatusOK {
		t.Fatalf("got %d, want %d", w.Code, http.StatusOK)
	}
}

func TestRelatedContent(t *testing.T) {
	svc := &mockContentService{
		relatedFn: func(_ context.Context, _ string, contentID string, limit int) ([]models.RelatedContent, error) {
			if contentID != "c1" {
				t.Errorf("contentID = %q, want c1", contentID)
			}
			if limit != 10 {
				t.Errorf("limit = %d, want default 10", limit)
			}
			return []models.RelatedContent{
				{ContentItem: models.ContentItem{ID: "c2"}, Score: 0.91},
			}, nil
		},
	}
	r := contentRouter(svc)

	w := doRequest(r, http.MethodGet, "/content/c1/related", "")

	if w.Code != http.StatusOK {
		t.Fatalf("got %d, want %d", w.Code, http.StatusOK)
	}

	var resp struct {
		Items []models.RelatedContent `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(resp.Items) != 1 || resp.Items[0].Score != 0.91 {
		t.Errorf("unexpected related items: %+v", resp.Items)
	}
}
