package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/jotarampini-cell/synapse/internal/models"
	"github.com/jotarampini-cell/synapse/internal/store"
)

func TestUpsertSummaryOverwrites(t *testing.T) {
	base, userID := setupTestBase(t)
	cs := store.NewContentStore(base)
	ss := store.NewSummaryStore(base)
	ctx := context.Background()

	item := makeContent(t, cs, userID, "Re-enriched")

	first, err := ss.UpsertSummary(ctx, userID, item.ID, "first pass", []string{"a", "b"})
	if err != nil {
		t.Fatalf("UpsertSummary: %v", err)
	}
	if first.ID == "" {
		t.Fatal("insert did not assign a row id")
	}

	second, err := ss.UpsertSummary(ctx, userID, item.ID, "second pass", []string{"c"})
	if err != nil {
		t.Fatalf("UpsertSummary (overwrite): %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("overwrite produced new row: %q vs %q", second.ID, first.ID)
	}
	if second.Summary != "second pass" {
		t.Errorf("Summary = %q, want %q", second.Summary, "second pass")
	}
	if len(second.Concepts) != 1 || second.Concepts[0] != "c" {
		t.Errorf("Concepts = %v, want [c]", second.Concepts)
	}
}

func TestUpsertSummaryMissingContent(t *testing.T) {
	base, userID := setupTestBase(t)
	ss := store.NewSummaryStore(base)

	_, err := ss.UpsertSummary(context.Background(), userID, uuid.New().String(), "s", nil)
	if !errors.Is(err, models.ErrContentNotFound) {
		t.Errorf("err = %v, want ErrContentNotFound", err)
	}
}

func TestConceptVocabularyExcludesOwnContent(t *testing.T) {
	base, userID := setupTestBase(t)
	cs := store.NewContentStore(base)
	ss := store.NewSummaryStore(base)
	ctx := context.Background()

	a := makeContent(t, cs, userID, "A")
	b := makeContent(t, cs, userID, "B")

	if _, err := ss.UpsertSummary(ctx, userID, a.ID, "s", []string{"shared", "only-a"}); err != nil {
		t.Fatalf("UpsertSummary a: %v", err)
	}
	if _, err := ss.UpsertSummary(ctx, userID, b.ID, "s", []string{"shared", "only-b"}); err != nil {
		t.Fatalf("UpsertSummary b: %v", err)
	}

	vocab, err := ss.ConceptVocabulary(ctx, userID, b.ID)
	if err != nil {
		t.Fatalf("ConceptVocabulary: %v", err)
	}

	want := map[string]bool{"shared": true, "only-a": true}
	if len(vocab) != len(want) {
		t.Fatalf("vocab = %v, want keys %v", vocab, want)
	}
	for _, label := range vocab {
		if !want[label] {
			t.Errorf("unexpected label %q in vocabulary", label)
		}
	}
}

func TestConceptVocabularyEmpty(t *testing.T) {
	base, userID := setupTestBase(t)
	ss := store.NewSummaryStore(base)

	vocab, err := ss.ConceptVocabulary(context.Background(), userID, uuid.New().String())
	if err != nil {
		t.Fatalf("ConceptVocabulary: %v", err)
	}

	if len(vocab) != 0 {
		t.Errorf("vocab = %v, want empty", vocab)
	}
}
