package api

import (
	"context"

	"github.com/jotarampini-cell/synapse/internal/models"
)

// ContentService defines the capture pipeline operations used by ContentHandler.
type ContentService interface {
	SubmitText(ctx context.Context, userID string, req models.SubmitContentRequest) (*models.ContentItem, error)
	SubmitURL(ctx context.Context, userID string, req models.SubmitURLRequest) (*models.ContentItem, error)
	GetContent(ctx context.Context, userID, contentID string) (*models.ContentWithSummary, error)
	ListContent(ctx context.Context, userID string, limit, offset int) ([]models.ContentWithSummary, bool, error)
	UpdateContent(ctx context.Context, userID, contentID string, req models.UpdateContentRequest) (*models.ContentItem, error)
	DeleteContent(ctx context.Context, userID, contentID string) error
	RelatedContent(ctx context.Context, userID, contentID string, limit int) ([]models.RelatedContent, error)
}

// GraphReader defines the concept graph reads used by GraphHandler.
type GraphReader interface {
	ListNodes(ctx context.Context, userID string) ([]models.ConceptNode, error)
	ListConnections(ctx context.Context, userID string) ([]models.ConceptConnection, error)
}

// ActivityReader defines the activity feed reads used by ActivityHandler.
type ActivityReader interface {
	QueryActivity(ctx context.Context, userID string, opts models.ActivityQueryOpts) ([]models.ActivityEntry, error)
}

// Backfiller re-queues embedding generation for content rows left without a
// vector. Implemented by service.EmbedWorker.
type Backfiller interface {
	BackfillUser(ctx context.Context, userID string) (int, error)
}
