// Package service provides business logic between API handlers and data
// stores: the ingestion pipeline, the concept graph, and the async workers.
package service

import (
	"context"

	"github.com/jotarampini-cell/synapse/internal/ai"
	"github.com/jotarampini-cell/synapse/internal/models"
	"github.com/jotarampini-cell/synapse/internal/webclip"
)

// ContentStore is the content data access Ingestor depends on.
type ContentStore interface {
	CreateContent(ctx context.Context, userID string, params models.CreateContentParams) (*models.ContentItem, error)
	GetContent(ctx context.Context, userID, contentID string) (*models.ContentItem, error)
	GetContentWithSummary(ctx context.Context, userID, contentID string) (*models.ContentWithSummary, error)
	ListContent(ctx context.Context, userID string, limit, offset int) ([]models.ContentWithSummary, bool, error)
	UpdateContentFields(ctx context.Context, userID, contentID, title, body string, tags []string) (*models.ContentItem, error)
	UpdateContentEmbedding(ctx context.Context, userID, contentID string, embedding []float32) error
	DeleteContent(ctx context.Context, userID, contentID string) error
	ListContentWithoutEmbeddings(ctx context.Context, userID string, limit int) ([]models.ContentSummaryRef, error)
	ListUsersWithPendingEmbeddings(ctx context.Context) ([]string, error)
	SimilarContent(ctx context.Context, userID, contentID string, limit int) ([]models.RelatedContent, error)
}

// SummaryStore is the summary data access Ingestor depends on.
type SummaryStore interface {
	UpsertSummary(ctx context.Context, userID, contentID, summary string, concepts []string) (*models.SummaryRecord, error)
	ConceptVocabulary(ctx context.Context, userID, excludeContentID string) ([]string, error)
}

// ConceptStore is the graph node data access GraphService depends on.
type ConceptStore interface {
	EnsureNode(ctx context.Context, userID string, node models.ConceptNode) (*models.ConceptNode, bool, error)
	ListNodes(ctx context.Context, userID string) ([]models.ConceptNode, error)
	CountNodes(ctx context.Context, userID string) (int, error)
}

// ConnectionStore is the connection data access GraphService depends on.
type ConnectionStore interface {
	CreateConnection(ctx context.Context, userID string, conn models.ConceptConnection) (*models.ConceptConnection, error)
	ListConnections(ctx context.Context, userID string) ([]models.ConceptConnection, error)
}

// ActivityStore is the activity log data access.
type ActivityStore interface {
	RecordActivity(ctx context.Context, userID string, entry models.ActivityEntry) error
	QueryActivity(ctx context.Context, userID string, opts models.ActivityQueryOpts) ([]models.ActivityEntry, error)
}

// Embedder generates a vector embedding for a text.
type Embedder interface {
	Generate(ctx context.Context, text string) ([]float32, error)
}

// EnrichmentService derives summaries, concepts, and connection suggestions.
type EnrichmentService interface {
	Summarize(ctx context.Context, text string) (string, error)
	ExtractConcepts(ctx context.Context, text string) ([]string, error)
	SuggestConnections(ctx context.Context, newConcepts, existing []string) ([]ai.SuggestedConnection, error)
}

// ClipExtractor fetches a URL and extracts capture-ready text.
type ClipExtractor interface {
	Extract(ctx context.Context, rawURL string) (*webclip.Clip, error)
}

// EmbedEnqueuer enqueues embedding generation jobs.
type EmbedEnqueuer interface {
	Enqueue(job EmbedJob)
}

// ActivityEnqueuer enqueues activity log entries.
type ActivityEnqueuer interface {
	Enqueue(job *ActivityJob)
}
