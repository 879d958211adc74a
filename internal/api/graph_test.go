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

func graphRouter(svc *mockGraphReader) *gin.Engine {
	r := newTestRouter()
	h := api.NewGraphHandler(svc, testLogger())
	r.GET("/graph/nodes", h.Nodes)
	r.GET("/graph/connections", h.Connections)

	return r
}

func TestGraphNodes(t *testing.T) {
	svc := &mockGraphReader{
		nodesFn: func(context.Context, string) ([]models.ConceptNode, error) {
			return []models.ConceptNode{
				{ID: "n1", Label: "distributed systems", Color: "#6366f1"},
				{ID: "n2", Label: "raft", Color: "#10b981"},
			}, nil
		},
	}
	r := graphRouter(svc)

	w := doRequest(r, http.MethodGet, "/graph/nodes", "")

	if w.Code != http.StatusOK {
		t.Fatalf("got %d, want %d", w.Code, http.StatusOK)
	}

	var resp struct {
		Nodes []models.ConceptNode `json:"nodes"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(resp.Nodes) != 2 {
		t.Errorf("nodes = %d, want 2", len(resp.Nodes))
	}
}

func TestGraphNodesError(t *testing.T) {
	svc := &mockGraphReader{
		nodesFn: func(context.Context, string) ([]models.ConceptNode, error) {
			return nil, errors.New("db down")
		},
	}
	r := graphRouter(svc)

	w := doRequest(r, http.MethodGet, "/graph/nodes", "")

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("got %d, want %d", w.Code, http.StatusInternalServerError)
	}
}

func TestGraphConnections(t *testing.T) {
	svc := &mockGraphReader{
		connectionsFn: func(context.Context, string) ([]models.ConceptConnection, error) {
			return []models.ConceptConnection{
				{ID: "e1", SourceLabel: "raft", TargetLabel: "consensus", Strength: 0.8},
			}, nil
		},
	}
	r := graphRouter(svc)

	w := doRequest(r, http.MethodGet, "/graph/connections", "")

	if w.Code != http.StatusOK {
		t.Fatalf("got %d, want %d", w.Code, http.StatusOK)
	}

	var resp struct {
		Connections []models.ConceptConnection `json:"connections"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(resp.Connections) != 1 || resp.Connections[0].Strength != 0.8 {
		t.Errorf("unexpected connections: %+v", resp.Connections)
	}
}
