package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/jotarampini-cell/synapse/internal/models"
)

// ActivityJob is a single activity entry to be recorded.
type ActivityJob struct {
	UserID     string
	Action     string
	EntityType string
	EntityID   string
	Detail     map[string]any
}

// ActivityWorker buffers activity entries and writes them via a single
// worker goroutine. Recording is fire-and-forget: the pipeline never waits
// on the activity log.
type ActivityWorker struct {
	store ActivityStore
	log   *logrus.Logger
	jobs  chan *ActivityJob
}

// NewActivityWorker creates an ActivityWorker with the given queue capacity.
func NewActivityWorker(store ActivityStore, log *logrus.Logger, queueSize int) *ActivityWorker {
	if queueSize <= 0 {
		queueSize = 1000
	}

	return &ActivityWorker{
		store: store,
		log:   log,
		jobs:  make(chan *ActivityJob, queueSize),
	}
}

// Enqueue adds an activity job. Non-blocking; drops the job if the queue is full.
func (w *ActivityWorker) Enqueue(job *ActivityJob) {
	select {
	case w.jobs <- job:
	default:
		w.log.WithField("action", job.Action).Warn("activity queue full, dropping entry")
	}
}

// Run processes activity jobs until the context is cancelled, then drains
// remaining jobs.
func (w *ActivityWorker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.drain()
			return
		case job := <-w.jobs:
			w.process(job)
		}
	}
}

func (w *ActivityWorker) drain() {
	for {
		select {
		case job := <-w.jobs:
			w.process(job)
		default:
			return
		}
	}
}

func (w *ActivityWorker) process(job *ActivityJob) {
	entry := models.ActivityEntry{
		Action:     job.Action,
		EntityType: job.EntityType,
		EntityID:   job.EntityID,
		Detail:     job.Detail,
	}

	if err := w.store.RecordActivity(context.Background(), job.UserID, entry); err != nil {
		w.log.WithError(err).Warn("activity record failed")
	}
}

// activityAsync enqueues an activity entry when a worker is wired.
func activityAsync(worker ActivityEnqueuer, userID, action, entityType, entityID string, detail map[string]any) {
	if worker == nil {
		return
	}

	worker.Enqueue(&ActivityJob{
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Detail:     detail,
	})
}
