package service

import (
	"context"

	"github.com/jotarampini-cell/synapse/internal/models"
)

// ActivityService exposes read access to the activity log.
type ActivityService struct {
	store ActivityStore
}

// NewActivityService creates an ActivityService.
func NewActivityService(store ActivityStore) *ActivityService {
	return &ActivityService{store: store}
}

// QueryActivity returns activity entries matching the given filters
// (pass-through).
func (s *ActivityService) QueryActivity(ctx context.Context, userID string, opts models.ActivityQueryOpts) ([]models.ActivityEntry, error) {
	return s.store.QueryActivity(ctx, userID, opts)
}
