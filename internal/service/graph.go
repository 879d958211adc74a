package service

import (
	"context"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jotarampini-cell/synapse/internal/ai"
	"github.com/jotarampini-cell/synapse/internal/models"
)

// nodePalette is the fixed color cycle for new concept nodes, indexed by
// the concept's position within one extraction's output list. A label keeps
// the color of the ingestion that first created it.
var nodePalette = []string{
	"#6366f1", // indigo
	"#10b981", // emerald
	"#f59e0b", // amber
	"#ef4444", // red
	"#8b5cf6", // violet
}

// Canvas region for initial node placement.
const (
	nodeMinX = 200.0
	nodeMaxX = 600.0
	nodeMinY = 150.0
	nodeMaxY = 450.0
)

// GraphService owns the per-user concept graph: node creation with
// label-level dedup, connection persistence, and read access.
type GraphService struct {
	nodes       ConceptStore
	connections ConnectionStore
	log         *logrus.Logger
}

// NewGraphService creates a GraphService.
func NewGraphService(nodes ConceptStore, connections ConnectionStore, log *logrus.Logger) *GraphService {
	return &GraphService{nodes: nodes, connections: connections, log: log}
}

// EnsureConcepts folds extracted concept labels into the user's graph, in
// order. Labels that already have a node are left untouched; new labels get
// a node with a palette color chosen by list position and a uniform-random
// canvas position. Returns how many nodes were created.
func (s *GraphService) EnsureConcepts(ctx context.Context, userID string, labels []string) (int, error) {
	created := 0

	for i, label := range labels {
		node := models.ConceptNode{
			ID:    uuid.New().String(),
			Label: label,
			Kind:  models.NodeKindConcept,
			Color: nodePalette[i%len(nodePalette)],
			X:     nodeMinX + rand.Float64()*(nodeMaxX-nodeMinX),
			Y:     nodeMinY + rand.Float64()*(nodeMaxY-nodeMinY),
		}

		_, wasCreated, err := s.nodes.EnsureNode(ctx, userID, node)
		if err != nil {
			return created, err
		}

		if wasCreated {
			created++
		}
	}

	return created, nil
}

// PersistSuggestions appends suggested connections as rows, unmodified.
// Strength and reason are pass-through; no thresholding is applied.
func (s *GraphService) PersistSuggestions(ctx context.Context, userID string, suggestions []ai.SuggestedConnection) (int, error) {
	persisted := 0

	for _, sug := range suggestions {
		conn := models.ConceptConnection{
			ID:          uuid.New().String(),
			SourceLabel: sug.Source,
			TargetLabel: sug.Target,
			Strength:    sug.Strength,
			Reason:      sug.Reason,
		}

		if _, err := s.connections.CreateConnection(ctx, userID, conn); err != nil {
			return persisted, err
		}

		persisted++
	}

	return persisted, nil
}

// ListNodes returns the user's concept nodes (pass-through).
func (s *GraphService) ListNodes(ctx context.Context, userID string) ([]models.ConceptNode, error) {
	return s.nodes.ListNodes(ctx, userID)
}

// ListConnections returns the user's connections (pass-through).
func (s *GraphService) ListConnections(ctx context.Context, userID string) ([]models.ConceptConnection, error) {
	return s.connections.ListConnections(ctx, userID)
}
