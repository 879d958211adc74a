package api_test

import (
	"context"

	"github.com/jotarampini-cell/synapse/internal/models"
)

// mockContentService implements api.ContentService with overridable func fields.
type mockContentService struct {
	submitTextFn  func(ctx context.Context, userID string, req models.SubmitContentRequest) (*models.ContentItem, error)
	submitURLFn   func(ctx context.Context, userID string, req models.SubmitURLRequest) (*models.ContentItem, error)
	getFn         func(ctx context.Context, userID, contentID string) (*models.ContentWithSummary, error)
	listFn        func(ctx context.Context, userID string, limit, offset int) ([]models.ContentWithSummary, bool, error)
	updateFn      func(ctx context.Context, userID, contentID string, req models.UpdateContentRequest) (*models.ContentItem, error)
	deleteFn      func(ctx context.Context, userID, contentID string) error
	relatedFn     func(ctx context.Context, userID, contentID string, limit int) ([]models.RelatedContent, error)
	lastSubmitted *models.SubmitContentRequest
}

func (m *mockContentService) SubmitText(ctx context.Context, userID string, req models.SubmitContentRequest) (*models.ContentItem, error) {
	m.lastSubmitted = &req
	if m.submitTextFn != nil {
		return m.submitTextFn(ctx, userID, req)
	}
	return &models.ContentItem{ID: "c1", Title: req.Title, Body: req.Body, Kind: models.KindText, Tags: req.Tags}, nil
}

func (m *mockContentService) SubmitURL(ctx context.Context, userID string, req models.SubmitURLRequest) (*models.ContentItem, error) {
	if m.submitURLFn != nil {
		return m.submitURLFn(ctx, userID, req)
	}
	return &models.ContentItem{ID: "c1", Title: "clipped page", Kind: models.KindURL}, nil
}

func (m *mockContentService) GetContent(ctx context.Context, userID, contentID string) (*models.ContentWithSummary, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID, contentID)
	}
	return &models.ContentWithSummary{ContentItem: models.ContentItem{ID: contentID}}, nil
}

func (m *mockContentService) ListContent(ctx context.Context, userID string, limit, offset int) ([]models.ContentWithSummary, bool, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID, limit, offset)
	}
	return nil, false, nil
}

func (m *mockContentService) UpdateContent(ctx context.Context, userID, contentID string, req models.UpdateContentRequest) (*models.ContentItem, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, userID, contentID, req)
	}
	return &models.ContentItem{ID: contentID, Title: req.Title, Body: req.Body}, nil
}

func (m *mockContentService) DeleteContent(ctx context.Context, userID, contentID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, contentID)
	}
	return nil
}

func (m *mockContentService) RelatedContent(ctx context.Context, userID, contentID string, limit int) ([]models.RelatedContent, error) {
	if m.relatedFn != nil {
		return m.relatedFn(ctx, userID, contentID, limit)
	}
	return nil, nil
}

// mockGraphReader implements api.GraphReader.
type mockGraphReader struct {
	nodesFn       func(ctx context.Context, userID string) ([]models.ConceptNode, error)
	connectionsFn func(ctx context.Context, userID string) ([]models.ConceptConnection, error)
}

func (m *mockGraphReader) ListNodes(ctx context.Context, userID string) ([]models.ConceptNode, error) {
	if m.nodesFn != nil {
		return m.nodesFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockGraphReader) ListConnections(ctx context.Context, userID string) ([]models.ConceptConnection, error) {
	if m.connectionsFn != nil {
		return m.connectionsFn(ctx, userID)
	}
	return nil, nil
}

// mockActivityReader implements api.ActivityReader.
type mockActivityReader struct {
	queryFn  func(ctx context.Context, userID string, opts models.ActivityQueryOpts) ([]models.ActivityEntry, error)
	lastOpts models.ActivityQueryOpts
}

func (m *mockActivityReader) QueryActivity(ctx context.Context, userID string, opts models.ActivityQueryOpts) ([]models.ActivityEntry, error) {
	m.lastOpts = opts
	if m.queryFn != nil {
		return m.queryFn(ctx, userID, opts)
	}
	return nil, nil
}

// mockBackfiller implements api.Backfiller.
type mockBackfiller struct {
	queued int
	err    error
	calls  int
}

func (m *mockBackfiller) BackfillUser(_ context.Context, _ string) (int, error) {
	m.calls++
	return m.queued, m.err
}
