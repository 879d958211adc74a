package service

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jotarampini-cell/synapse/internal/metrics"
)

// EmbedJob is a request to generate and store an embedding for one content
// item.
type EmbedJob struct {
	UserID    string
	ContentID string
	Text      string // "title body"
}

// backfillBatchSize bounds how many missing-embedding rows one sweep
// enqueues per user.
const backfillBatchSize = 200

// EmbedWorker processes embedding jobs asynchronously with retry. It backs
// the non-fatal embedding step of ingestion: items whose synchronous embed
// failed are queued here and picked up again by the periodic sweep.
type EmbedWorker struct {
	embed       Embedder
	content     ContentStore
	log         *logrus.Logger
	jobs        chan EmbedJob
	concurrency int
}

// NewEmbedWorker creates a worker with the given queue capacity and concurrency.
func NewEmbedWorker(embed Embedder, content ContentStore, log *logrus.Logger, queueSize, concurrency int) *EmbedWorker {
	if queueSize <= 0 {
		queueSize = 1000
	}
	if concurrency <= 0 {
		concurrency = 4
	}

	return &EmbedWorker{
		embed:       embed,
		content:     content,
		log:         log,
		jobs:        make(chan EmbedJob, queueSize),
		concurrency: concurrency,
	}
}

// Enqueue adds an embedding job. Non-blocking; drops the job if the queue
// is full — the backfill sweep will find the row again.
func (w *EmbedWorker) Enqueue(job EmbedJob) {
	select {
	case w.jobs <- job:
		metrics.EmbedQueueDepth.Set(float64(len(w.jobs)))
	default:
		w.log.WithField("content_id", job.ContentID).Warn("embedding queue full, dropping job")
	}
}

// Run spawns N worker goroutines and blocks until the context is cancelled
// and all workers have drained. Call in a goroutine.
func (w *EmbedWorker) Run(ctx context.Context) {
	var wg sync.WaitGroup

	w.log.WithField("concurrency", w.concurrency).Info("starting embed workers")

	for i := range w.concurrency {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			w.runWorker(ctx, id)
		}(i)
	}

	wg.Wait()
	w.log.Info("all embed workers stopped")
}

func (w *EmbedWorker) runWorker(ctx context.Context, id int) {
	w.log.WithField("worker_id", id).Debug("embed worker started")
	for {
		select {
		case <-ctx.Done():
			return
		case job := <-w.jobs:
			metrics.EmbedQueueDepth.Set(float64(len(w.jobs)))
			w.processWithRetry(ctx, job)
		}
	}
}

const (
	maxRetries     = 3
	baseRetryDelay = 2 * time.Second
)

func (w *EmbedWorker) processWithRetry(ctx context.Context, job EmbedJob) {
	for attempt := range maxRetries {
		if ctx.Err() != nil {
			return
		}

		embedding, err := w.embed.Generate(ctx, job.Text)
		if err != nil {
			w.log.WithError(err).WithFields(logrus.Fields{
				"content_id": job.ContentID,
				"attempt":    attempt + 1,
			}).Warn("embedding generation failed")

			if attempt < maxRetries-1 {
				delay := baseRetryDelay * (1 << attempt) // exponential backoff
				select {
				case <-ctx.Done():
					return
				case <-time.After(delay):
				}
			}

			continue
		}

		if err := w.content.UpdateContentEmbedding(ctx, job.UserID, job.ContentID, embedding); err != nil {
			w.log.WithError(err).WithField("content_id", job.ContentID).Error("storing embedding")
		} else {
			w.log.WithField("content_id", job.ContentID).Debug("embedding stored")
			metrics.EmbeddingsBackfilled.Inc()
		}

		return
	}

	w.log.WithField("content_id", job.ContentID).Error("embedding failed after all retries")
}

// BackfillUser enqueues embedding jobs for the user's content rows that
// have no vector. Returns how many jobs were enqueued.
func (w *EmbedWorker) BackfillUser(ctx context.Context, userID string) (int, error) {
	refs, err := w.content.ListContentWithoutEmbeddings(ctx, userID, backfillBatchSize)
	if err != nil {
		return 0, err
	}

	for _, ref := range refs {
		w.Enqueue(EmbedJob{UserID: userID, ContentID: ref.ID, Text: ref.EmbeddingText()})
	}

	return len(refs), nil
}

// Sweep enqueues backfill jobs for every user with pending embeddings.
// Called once at startup to recover rows left behind by crashes.
func (w *EmbedWorker) Sweep(ctx context.Context) error {
	users, err := w.content.ListUsersWithPendingEmbeddings(ctx)
	if err != nil {
		return err
	}

	total := 0

	for _, userID := range users {
		n, err := w.BackfillUser(ctx, userID)
		if err != nil {
			w.log.WithError(err).WithField("user_id", userID).Warn("backfill sweep failed for user")

			continue
		}

		total += n
	}

	if total > 0 {
		w.log.WithField("jobs", total).Info("embedding backfill sweep enqueued")
	}

	return nil
}
