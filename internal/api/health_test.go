package api_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/jotarampini-cell/synapse/internal/api"
)

func TestLivenessWithoutPool(t *testing.T) {
	r := gin.New()
	h := api.NewHealthHandler(nil, nil, testLogger(), "test-version", "", "mxbai-embed-large")
	r.GET("/health", h.Liveness)

	w := doRequest(r, http.MethodGet, "/health", "")

	if w.Code != http.StatusOK {
		t.Fatalf("got %d, want %d", w.Code, http.StatusOK)
	}

	var resp struct {
		Status     string `json:"status"`
		Version    string `json:"version"`
		Database   string `json:"database"`
		Embeddings string `json:"embeddings"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("status = %q, want ok", resp.Status)
	}
	if resp.Version != "test-version" {
		t.Errorf("version = %q, want test-version", resp.Version)
	}
	if resp.Database != "not_configured" {
		t.Errorf("database = %q, want not_configured", resp.Database)
	}
	if resp.Embeddings != "mxbai-embed-large" {
		t.Errorf("embeddings = %q, want model name", resp.Embeddings)
	}
}
