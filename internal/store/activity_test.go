package store_test

import (
	"context"
	"testing"

	"github.com/jotarampini-cell/synapse/internal/models"
	"github.com/jotarampini-cell/synapse/internal/store"
)

func TestRecordAndQueryActivity(t *testing.T) {
	base, userID := setupTestBase(t)
	as := store.NewActivityStore(base)
	ctx := context.Background()

	entries := []models.ActivityEntry{
		{Action: "content.submitted", EntityType: "content", EntityID: "c1", Detail: map[string]any{"kind": "text"}},
		{Action: "content.submitted", EntityType: "content", EntityID: "c2"},
		{Action: "node.created", EntityType: "node", EntityID: "n1"},
	}

	for _, e := range entries {
		if err := as.RecordActivity(ctx, userID, e); err != nil {
			t.Fatalf("RecordActivity %q: %v", e.Action, err)
		}
	}

	got, err := as.QueryActivity(ctx, userID, models.ActivityQueryOpts{Limit: 10})
	if err != nil {
		t.Fatalf("QueryActivity: %v", err)
	}

	if len(got) != 3 {
		t.Fatalf("len(got) = %d, want 3", len(got))
	}

	// Newest first.
	if got[0].Action != "node.created" {
		t.Errorf("got[0].Action = %q, want node.created", got[0].Action)
	}
	if got[2].Detail["kind"] != "text" {
		t.Errorf("Detail = %v, want kind=text", got[2].Detail)
	}
}

func TestQueryActivityFilters(t *testing.T) {
	base, userID := setupTestBase(t)
	as := store.NewActivityStore(base)
	ctx := context.Background()

	seed := []models.ActivityEntry{
		{Action: "content.submitted", EntityType: "content", EntityID: "c1"},
		{Action: "content.deleted", EntityType: "content", EntityID: "c1"},
		{Action: "connection.created", EntityType: "connection", EntityID: "x1"},
	}

	for _, e := range seed {
		if err := as.RecordActivity(ctx, userID, e); err != nil {
			t.Fatalf("RecordActivity: %v", err)
		}
	}

	byAction, err := as.QueryActivity(ctx, userID, models.ActivityQueryOpts{Action: "content.deleted"})
	if err != nil {
		t.Fatalf("QueryActivity by action: %v", err)
	}
	if len(byAction) != 1 || byAction[0].Action != "content.deleted" {
		t.Errorf("byAction = %v, want single content.deleted entry", byAction)
	}

	byType, err := as.QueryActivity(ctx, userID, models.ActivityQueryOpts{EntityType: "content"})
	if err != nil {
		t.Fatalf("QueryActivity by entity type: %v", err)
	}
	if len(byType) != 2 {
		t.Errorf("len(byType) = %d, want 2", len(byType))
	}
}
