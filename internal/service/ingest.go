package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jotarampini-cell/synapse/internal/metrics"
	"github.com/jotarampini-cell/synapse/internal/models"
)

// Ingestor runs the ingestion pipeline: persist content first, then derive
// the embedding, summary, concepts, connection suggestions, and graph nodes
// in strict sequence. The content row always survives; a later step failing
// never retracts it, but the failure is reported to the caller.
type Ingestor struct {
	content     ContentStore
	summaries   SummaryStore
	graph       *GraphService
	embedder    Embedder
	enricher    EnrichmentService
	clipper     ClipExtractor
	embedWorker EmbedEnqueuer
	activity    ActivityEnqueuer
	log         *logrus.Logger
}

// NewIngestor creates an Ingestor.
func NewIngestor(
	content ContentStore,
	summaries SummaryStore,
	graph *GraphService,
	embedder Embedder,
	enricher EnrichmentService,
	clipper ClipExtractor,
	embedWorker EmbedEnqueuer,
	activity ActivityEnqueuer,
	log *logrus.Logger,
) *Ingestor {
	return &Ingestor{
		content:     content,
		summaries:   summaries,
		graph:       graph,
		embedder:    embedder,
		enricher:    enricher,
		clipper:     clipper,
		embedWorker: embedWorker,
		activity:    activity,
		log:         log,
	}
}

// SubmitText ingests typed text content. The caller blocks until every
// pipeline step has been attempted.
func (s *Ingestor) SubmitText(ctx context.Context, userID string, req models.SubmitContentRequest) (*models.ContentItem, error) {
	return s.ingest(ctx, userID, models.CreateContentParams{
		ID:    uuid.New().String(),
		Title: req.Title,
		Body:  req.Body,
		Kind:  models.KindText,
		Tags:  req.Tags,
	})
}

// SubmitURL fetches the URL, extracts its readable text, and ingests the
// result as URL-kind content.
func (s *Ingestor) SubmitURL(ctx context.Context, userID string, req models.SubmitURLRequest) (*models.ContentItem, error) {
	clip, err := s.clipper.Extract(ctx, req.URL)
	if err != nil {
		return nil, err
	}

	return s.ingest(ctx, userID, models.CreateContentParams{
		ID:    uuid.New().String(),
		Title: clip.Title,
		Body:  clip.Body,
		Kind:  models.KindURL,
		Tags:  []string{"clipped"},
	})
}

// ingest runs pipeline steps 1-6 in strict sequence for one new item.
func (s *Ingestor) ingest(ctx context.Context, userID string, params models.CreateContentParams) (*models.ContentItem, error) {
	// Step 1: persist the content row. This is the only fatal step; the
	// item must exist even if all enrichment fails.
	item, err := s.content.CreateContent(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	metrics.ContentIngested.WithLabelValues(string(item.Kind)).Inc()
	activityAsync(s.activity, userID, "content.submitted", "content", item.ID,
		map[string]any{"kind": string(item.Kind), "title": item.Title})

	// Step 2: embedding. Failure leaves the row without a vector; the
	// backfill worker picks it up later.
	s.embedContent(ctx, userID, item)

	// Step 3: summary + concepts. Without them there is nothing to connect
	// or fold into the graph, so a failure ends the pipeline here. The
	// item stays committed either way.
	concepts, err := s.enrichContent(ctx, userID, item.ID, item.Body)
	if err != nil {
		return item, &models.EnrichmentFailedError{ContentID: item.ID, Err: err}
	}

	// Steps 4-6 run against the just-written summary.
	if err := s.connectAndGrow(ctx, userID, item.ID, concepts); err != nil {
		return item, &models.EnrichmentFailedError{ContentID: item.ID, Err: err}
	}

	return item, nil
}

// embedContent generates and stores the item's embedding. Non-fatal: on
// failure the item is left for the backfill worker.
func (s *Ingestor) embedContent(ctx context.Context, userID string, item *models.ContentItem) {
	text := item.Title + " " + item.Body

	vec, err := s.embedder.Generate(ctx, text)
	if err != nil {
		metrics.EnrichmentFailures.WithLabelValues("embedding").Inc()
		s.log.WithError(err).WithField("content_id", item.ID).Warn("embedding failed, queuing backfill")

		if s.embedWorker != nil {
			s.embedWorker.Enqueue(EmbedJob{UserID: userID, ContentID: item.ID, Text: text})
		}

		return
	}

	if err := s.content.UpdateContentEmbedding(ctx, userID, item.ID, vec); err != nil {
		s.log.WithError(err).WithField("content_id", item.ID).Error("storing embedding")

		return
	}

	item.HasEmbedding = true
}

// enrichContent derives and persists the summary record, returning the
// extracted concepts.
func (s *Ingestor) enrichContent(ctx context.Context, userID, contentID, body string) ([]string, error) {
	summary, err := s.enricher.Summarize(ctx, body)
	if err != nil {
		metrics.EnrichmentFailures.WithLabelValues("summarization").Inc()
		s.log.WithError(err).WithField("content_id", contentID).Warn("summarization failed")

		return nil, fmt.Errorf("summarizing content: %w", err)
	}

	concepts, err := s.enricher.ExtractConcepts(ctx, body)
	if err != nil {
		metrics.EnrichmentFailures.WithLabelValues("extraction").Inc()
		s.log.WithError(err).WithField("content_id", contentID).Warn("concept extraction failed")

		return nil, fmt.Errorf("extracting concepts: %w", err)
	}

	if _, err := s.summaries.UpsertSummary(ctx, userID, contentID, summary, concepts); err != nil {
		s.log.WithError(err).WithField("content_id", contentID).Error("persisting summary")

		return nil, fmt.Errorf("persisting summary: %w", err)
	}

	return concepts, nil
}

// connectAndGrow runs steps 4-6: vocabulary query, connection suggestion,
// and graph node creation. A failure in steps 4 or 5 does not block node
// creation; the first failure is still reported to the caller.
func (s *Ingestor) connectAndGrow(ctx context.Context, userID, contentID string, concepts []string) error {
	var firstErr error

	// Step 4: the user's existing vocabulary, excluding the item's own
	// just-written summary by content id.
	vocab, err := s.summaries.ConceptVocabulary(ctx, userID, contentID)
	if err != nil {
		s.log.WithError(err).WithField("content_id", contentID).Error("querying concept vocabulary")

		firstErr = fmt.Errorf("querying concept vocabulary: %w", err)
		vocab = nil
	}

	// Step 5: connection suggestions, only when both sides are non-empty.
	if len(concepts) > 0 && len(vocab) > 0 {
		suggestions, err := s.enricher.SuggestConnections(ctx, concepts, vocab)
		if err != nil {
			metrics.EnrichmentFailures.WithLabelValues("suggestion").Inc()
			s.log.WithError(err).WithField("content_id", contentID).Warn("connection suggestion failed")

			if firstErr == nil {
				firstErr = fmt.Errorf("suggesting connections: %w", err)
			}
		} else if len(suggestions) > 0 {
			n, err := s.graph.PersistSuggestions(ctx, userID, suggestions)
			if err != nil {
				s.log.WithError(err).WithField("content_id", contentID).Error("persisting connections")

				if firstErr == nil {
					firstErr = fmt.Errorf("persisting connections: %w", err)
				}
			}

			if n > 0 {
				activityAsync(s.activity, userID, "connections.suggested", "content", contentID,
					map[string]any{"count": n})
			}
		}
	}

	// Step 6: fold new concepts into the graph. Runs even after an earlier
	// step failed so the nodes land regardless.
	created, err := s.graph.EnsureConcepts(ctx, userID, concepts)
	if err != nil {
		s.log.WithError(err).WithField("content_id", contentID).Error("creating concept nodes")

		if firstErr == nil {
			firstErr = fmt.Errorf("creating concept nodes: %w", err)
		}
	}

	if created > 0 {
		activityAsync(s.activity, userID, "concepts.added", "content", contentID,
			map[string]any{"count": created})
	}

	return firstErr
}

// UpdateContent overwrites the item's own fields and re-derives its
// embedding and summary. It never re-runs connection suggestion or graph
// node creation: editing refreshes the item's derived fields only.
func (s *Ingestor) UpdateContent(ctx context.Context, userID, contentID string, req models.UpdateContentRequest) (*models.ContentItem, error) {
	item, err := s.content.UpdateContentFields(ctx, userID, contentID, req.Title, req.Body, req.Tags)
	if err != nil {
		return nil, err
	}

	activityAsync(s.activity, userID, "content.updated", "content", item.ID, nil)

	// Re-embed unconditionally; failure defers to the backfill worker.
	s.embedContent(ctx, userID, item)

	// Re-summarize and overwrite the existing summary record in place.
	if _, err := s.enrichContent(ctx, userID, item.ID, item.Body); err != nil {
		return item, &models.EnrichmentFailedError{ContentID: item.ID, Err: err}
	}

	return item, nil
}

// DeleteContent removes the item and its summary. Graph nodes and
// connections derived from it persist as durable knowledge artifacts.
func (s *Ingestor) DeleteContent(ctx context.Context, userID, contentID string) error {
	if err := s.content.DeleteContent(ctx, userID, contentID); err != nil {
		return err
	}

	activityAsync(s.activity, userID, "content.deleted", "content", contentID, nil)

	return nil
}

// GetContent returns one item joined with its summary (pass-through).
func (s *Ingestor) GetContent(ctx context.Context, userID, contentID string) (*models.ContentWithSummary, error) {
	return s.content.GetContentWithSummary(ctx, userID, contentID)
}

// ListContent returns the user's content newest-first (pass-through).
func (s *Ingestor) ListContent(ctx context.Context, userID string, limit, offset int) ([]models.ContentWithSummary, bool, error) {
	return s.content.ListContent(ctx, userID, limit, offset)
}

// RelatedContent returns items nearest to the given one by embedding
// distance (pass-through).
func (s *Ingestor) RelatedContent(ctx context.Context, userID, contentID string, limit int) ([]models.RelatedContent, error) {
	return s.content.SimilarContent(ctx, userID, contentID, limit)
}
