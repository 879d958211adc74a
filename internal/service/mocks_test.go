package service

import (
	"context"
	"sync"

	"github.com/jotarampini-cell/synapse/internal/ai"
	"github.com/jotarampini-cell/synapse/internal/models"
	"github.com/jotarampini-cell/synapse/internal/webclip"
)

// mockContentStore records calls and returns configured responses.
type mockContentStore struct {
	mu    sync.Mutex
	calls []string

	createContent                  func(ctx context.Context, userID string, params models.CreateContentParams) (*models.ContentItem, error)
	getContent                     func(ctx context.Context, userID, contentID string) (*models.ContentItem, error)
	getContentWithSummary          func(ctx context.Context, userID, contentID string) (*models.ContentWithSummary, error)
	listContent                    func(ctx context.Context, userID string, limit, offset int) ([]models.ContentWithSummary, bool, error)
	updateContentFields            func(ctx context.Context, userID, contentID, title, body string, tags []string) (*models.ContentItem, error)
	updateContentEmbedding         func(ctx context.Context, userID, contentID string, embedding []float32) error
	deleteContent                  func(ctx context.Context, userID, contentID string) error
	listContentWithoutEmbeddings   func(ctx context.Context, userID string, limit int) ([]models.ContentSummaryRef, error)
	listUsersWithPendingEmbeddings func(ctx context.Context) ([]string, error)
	similarContent                 func(ctx context.Context, userID, contentID string, limit int) ([]models.RelatedContent, error)
}

func (m *mockContentStore) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
}

func (m *mockContentStore) recorded() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, len(m.calls))
	copy(out, m.calls)

	return out
}

func (m *mockContentStore) CreateContent(ctx context.Context, userID string, params models.CreateContentParams) (*models.ContentItem, error) {
	m.record("CreateContent")
	return m.createContent(ctx, userID, params)
}

func (m *mockContentStore) GetContent(ctx context.Context, userID, contentID string) (*models.ContentItem, error) {
	m.record("GetContent")
	return m.getContent(ctx, userID, contentID)
}

func (m *mockContentStore) GetContentWithSummary(ctx context.Context, userID, contentID string) (*models.ContentWithSummary, error) {
	m.record("GetContentWithSummary")
	return m.getContentWithSummary(ctx, userID, contentID)
}

func (m *mockContentStore) ListContent(ctx context.Context, userID string, limit, offset int) ([]models.ContentWithSummary, bool, error) {
	m.record("ListContent")
	return m.listContent(ctx, userID, limit, offset)
}

func (m *mockContentStore) UpdateContentFields(ctx context.Context, userID, contentID, title, body string, tags []string) (*models.ContentItem, error) {
	m.record("UpdateContentFields")
	return m.updateContentFields(ctx, userID, contentID, title, body, tags)
}

func (m *mockContentStore) UpdateContentEmbedding(ctx context.Context, userID, contentID string, embedding []float32) error {
	m.record("UpdateContentEmbedding")
	return m.updateContentEmbedding(ctx, userID, contentID, embedding)
}

func (m *mockContentStore) DeleteContent(ctx context.Context, userID, contentID string) error {
	m.record("DeleteContent")
	return m.deleteContent(ctx, userID, contentID)
}

func (m *mockContentStore) ListContentWithoutEmbeddings(ctx context.Context, userID string, limit int) ([]models.ContentSummaryRef, error) {
	m.record("ListContentWithoutEmbeddings")
	return m.listContentWithoutEmbeddings(ctx, userID, limit)
}

func (m *mockContentStore) ListUsersWithPendingEmbeddings(ctx context.Context) ([]string, error) {
	m.record("ListUsersWithPendingEmbeddings")
	return m.listUsersWithPendingEmbeddings(ctx)
}

func (m *mockContentStore) SimilarContent(ctx context.Context, userID, contentID string, limit int) ([]models.RelatedContent, error) {
	m.record("SimilarContent")
	return m.similarContent(ctx, userID, contentID, limit)
}

// mockSummaryStore records calls and returns configured responses.
type mockSummaryStore struct {
	mu    sync.Mutex
	calls []string

	upsertSummary     func(ctx context.Context, userID, contentID, summary string, concepts []string) (*models.SummaryRecord, error)
	conceptVocabulary func(ctx context.Context, userID, excludeContentID string) ([]string, error)
}

func (m *mockSummaryStore) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
}

func (m *mockSummaryStore) UpsertSummary(ctx context.Context, userID, contentID, summary string, concepts []string) (*models.SummaryRecord, error) {
	m.record("UpsertSummary")
	return m.upsertSummary(ctx, userID, contentID, summary, concepts)
}

func (m *mockSummaryStore) ConceptVocabulary(ctx context.Context, userID, excludeContentID string) ([]string, error) {
	m.record("ConceptVocabulary")
	return m.conceptVocabulary(ctx, userID, excludeContentID)
}

// mockConceptStore records EnsureNode inputs for palette/position checks.
type mockConceptStore struct {
	mu    sync.Mutex
	nodes []models.ConceptNode

	ensureNode func(ctx context.Context, userID string, node models.ConceptNode) (*models.ConceptNode, bool, error)
	listNodes  func(ctx context.Context, userID string) ([]models.ConceptNode, error)
	countNodes func(ctx context.Context, userID string) (int, error)
}

func (m *mockConceptStore) EnsureNode(ctx context.Context, userID string, node models.ConceptNode) (*models.ConceptNode, bool, error) {
	m.mu.Lock()
	m.nodes = append(m.nodes, node)
	m.mu.Unlock()

	if m.ensureNode != nil {
		return m.ensureNode(ctx, userID, node)
	}

	return &node, true, nil
}

func (m *mockConceptStore) ListNodes(ctx context.Context, userID string) ([]models.ConceptNode, error) {
	return m.listNodes(ctx, userID)
}

func (m *mockConceptStore) CountNodes(ctx context.Context, userID string) (int, error) {
	return m.countNodes(ctx, userID)
}

// mockConnectionStore records created connections.
type mockConnectionStore struct {
	mu      sync.Mutex
	created []models.ConceptConnection

	createConnection func(ctx context.Context, userID string, conn models.ConceptConnection) (*models.ConceptConnection, error)
	listConnections  func(ctx context.Context, userID string) ([]models.ConceptConnection, error)
}

func (m *mockConnectionStore) CreateConnection(ctx context.Context, userID string, conn models.ConceptConnection) (*models.ConceptConnection, error) {
	m.mu.Lock()
	m.created = append(m.created, conn)
	m.mu.Unlock()

	if m.createConnection != nil {
		return m.createConnection(ctx, userID, conn)
	}

	return &conn, nil
}

func (m *mockConnectionStore) ListConnections(ctx context.Context, userID string) ([]models.ConceptConnection, error) {
	return m.listConnections(ctx, userID)
}

// mockActivityStore collects recorded entries.
type mockActivityStore struct {
	mu      sync.Mutex
	entries []models.ActivityEntry

	recordErr     error
	queryActivity func(ctx context.Context, userID string, opts models.ActivityQueryOpts) ([]models.ActivityEntry, error)
}

func (m *mockActivityStore) RecordActivity(_ context.Context, _ string, entry models.ActivityEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.recordErr != nil {
		return m.recordErr
	}

	m.entries = append(m.entries, entry)

	return nil
}

func (m *mockActivityStore) QueryActivity(ctx context.Context, userID string, opts models.ActivityQueryOpts) ([]models.ActivityEntry, error) {
	return m.queryActivity(ctx, userID, opts)
}

// mockEmbedder returns a configured vector or error.
type mockEmbedder struct {
	mu    sync.Mutex
	calls int

	generate func(ctx context.Context, text string) ([]float32, error)
}

func (m *mockEmbedder) Generate(ctx context.Context, text string) ([]float32, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	return m.generate(ctx, text)
}

// mockEnricher returns configured enrichment results.
type mockEnricher struct {
	summarize          func(ctx context.Context, text string) (string, error)
	extractConcepts    func(ctx context.Context, text string) ([]string, error)
	suggestConnections func(ctx context.Context, newConcepts, existing []string) ([]ai.SuggestedConnection, error)
}

func (m *mockEnricher) Summarize(ctx context.Context, text string) (string, error) {
	return m.summarize(ctx, text)
}

func (m *mockEnricher) ExtractConcepts(ctx context.Context, text string) ([]string, error) {
	return m.extractConcepts(ctx, text)
}

func (m *mockEnricher) SuggestConnections(ctx context.Context, newConcepts, existing []string) ([]ai.SuggestedConnection, error) {
	return m.suggestConnections(ctx, newConcepts, existing)
}

// mockClipper returns a configured clip.
type mockClipper struct {
	extract func(ctx context.Context, rawURL string) (*webclip.Clip, error)
}

func (m *mockClipper) Extract(ctx context.Context, rawURL string) (*webclip.Clip, error) {
	return m.extract(ctx, rawURL)
}

// mockEmbedEnqueuer collects enqueued jobs.
type mockEmbedEnqueuer struct {
	mu   sync.Mutex
	jobs []EmbedJob
}

func (m *mockEmbedEnqueuer) Enqueue(job EmbedJob) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs = append(m.jobs, job)
}

// mockActivityEnqueuer collects enqueued jobs.
type mockActivityEnqueuer struct {
	mu   sync.Mutex
	jobs []*ActivityJob
}

func (m *mockActivityEnqueuer) Enqueue(job *ActivityJob) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs = append(m.jobs, job)
}

func (m *mockActivityEnqueuer) actions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, 0, len(m.jobs))
	for _, j := range m.jobs {
		out = append(out, j.Action)
	}

	return out
}
