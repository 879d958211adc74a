package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/jotarampini-cell/synapse/internal/api"
	"github.com/jotarampini-cell/synapse/internal/models"
)

func TestActivityQuery(t *testing.T) {
	svc := &mockActivityReader{
		queryFn: func(_ context.Context, _ string, opts models.ActivityQueryOpts) ([]models.ActivityEntry, error) {
			return []models.ActivityEntry{
				{ID: 2, Action: "content.submitted", EntityType: "content", EntityID: "c1"},
				{ID: 1, Action: "concepts.added", EntityType: "content", EntityID: "c1"},
			}, nil
		},
	}
	r := newTestRouter()
	r.GET("/activity", api.NewActivityHandler(svc, testLogger()).Query)

	w := doRequest(r, http.MethodGet, "/activity?action=content.submitted&limit=20", "")

	if w.Code != http.StatusOK {
		t.Fatalf("got %d, want %d", w.Code, http.StatusOK)
	}
	if svc.lastOpts.Action != "content.submitted" || svc.lastOpts.Limit != 20 {
		t.Errorf("opts = %+v, want action filter and limit 20", svc.lastOpts)
	}

	var resp struct {
		Entries []models.ActivityEntry `json:"entries"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(resp.Entries) != 2 {
		t.Errorf("entries = %d, want 2", len(resp.Entries))
	}
}

func TestActivityQueryDefaults(t *testing.T) {
	svc := &mockActivityReader{}
	r := newTestRouter()
	r.GET("/activity", api.NewActivityHandler(svc, testLogger()).Query)

	w := doRequest(r, http.MethodGet, "/activity", "")

	if w.Code != http.StatusOK {
		t.Fatalf("got %d, want %d", w.Code, http.StatusOK)
	}
	if svc.lastOpts.Limit != 50 || svc.lastOpts.Offset != 0 {
		t.Errorf("defaults = %+v, want limit 50 offset 0", svc.lastOpts)
	}
}

func TestAdminBackfill(t *testing.T) {
	bf := &mockBackfiller{queued: 7}
	r := newTestRouter()
	r.POST("/admin/backfill-embeddings", api.NewAdminHandler(bf, testLogger()).BackfillEmbeddings)

	w := doRequest(r, http.MethodPost, "/admin/backfill-embeddings", "")

	if w.Code != http.StatusOK {
		t.Fatalf("got %d, want %d", w.Code, http.StatusOK)
	}
	if bf.calls != 1 {
		t.Errorf("backfill calls = %d, want 1", bf.calls)
	}

	var resp struct {
		Queued int `json:"queued"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Queued != 7 {
		t.Errorf("queued = %d, want 7", resp.Queued)
	}
}

func TestAdminBackfillUnavailable(t *testing.T) {
	r := newTestRouter()
	r.POST("/admin/backfill-embeddings", api.NewAdminHandler(nil, testLogger()).BackfillEmbeddings)

	w := doRequest(r, http.MethodPost, "/admin/backfill-embeddings", "")

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("got %d, want %d", w.Code, http.StatusServiceUnavailable)
	}
}
