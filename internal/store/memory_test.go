package store_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/arya-5990/RoarFitnessAdmin/internal/store"
	"github.com/arya-5990/RoarFitnessAdmin/pkg/interfaces"
)

func newTestStore() *store.MemoryStore {
	tick := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)
	seq := 0
	return store.NewMemoryStore(
		store.WithClock(func() time.Time {
			tick = tick.Add(time.Second)
			return tick
		}),
		store.WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("doc-%03d", seq)
		}),
	)
}

func waitSnapshot(t *testing.T, feed <-chan interfaces.Snapshot) interfaces.Snapshot {
	t.Helper()
	select {
	case snap, ok := <-feed:
		if !ok {
			t.Fatalf("snapshot feed closed")
		}
		return snap
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for snapshot")
		return interfaces.Snapshot{}
	}
}

func TestCreateAndGet(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	doc, err := s.Create(ctx, "blogs", map[string]any{"title": "Post"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if doc.ID == "" {
		t.Fatalf("expected assigned id")
	}

	got, err := s.Get(ctx, "blogs", doc.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Fields["title"] != "Post" {
		t.Fatalf("unexpected title %v", got.Fields["title"])
	}
}

func TestGetMissingReturnsNotFound(t *testing.T) {
	s := newTestStore()
	_, err := s.Get(context.Background(), "blogs", "missing")
	var notFound *store.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError got %v", err)
	}
}

func TestListOrdersByCreationTime(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	first, _ := s.Create(ctx, "faqs", map[string]any{"question": "q1"})
	second, _ := s.Create(ctx, "faqs", map[string]any{"question": "q2"})
	third, _ := s.Create(ctx, "faqs", map[string]any{"question": "q3"})

	docs, err := s.List(ctx, "faqs")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{first.ID, second.ID, third.ID}
	if len(docs) != len(want) {
		t.Fatalf("expected %d documents got %d", len(want), len(docs))
	}
	for i, id := range want {
		if docs[i].ID != id {
			t.Fatalf("position %d: expected %s got %s", i, id, docs[i].ID)
		}
	}
}

func TestMergePreservesOmittedFields(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	doc, _ := s.Create(ctx, "blogs", map[string]any{
		"title":        "Post",
		"dateUploaded": "1/2/2025",
	})

	merged, err := s.Merge(ctx, "blogs", doc.ID, map[string]any{"title": "Updated"})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if merged.Fields["title"] != "Updated" {
		t.Fatalf("expected updated title got %v", merged.Fields["title"])
	}
	if merged.Fields["dateUploaded"] != "1/2/2025" {
		t.Fatalf("merge must preserve omitted fields, got %v", merged.Fields["dateUploaded"])
	}
	if !merged.CreatedAt.Equal(doc.CreatedAt) {
		t.Fatalf("merge must not change creation time")
	}
}

func TestUpsertCreatesThenMerges(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	created, err := s.Upsert(ctx, "basic_details", "gym_info", map[string]any{"phone": "1234567890"})
	if err != nil {
		t.Fatalf("upsert create: %v", err)
	}
	if created.ID != "gym_info" {
		t.Fatalf("expected fixed id got %s", created.ID)
	}

	updated, err := s.Upsert(ctx, "basic_details", "gym_info", map[string]any{"email": "a@b.com"})
	if err != nil {
		t.Fatalf("upsert merge: %v", err)
	}
	if updated.Fields["phone"] != "1234567890" || updated.Fields["email"] != "a@b.com" {
		t.Fatalf("expected merged fields got %v", updated.Fields)
	}
}

func TestDeleteRemovesDocument(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	doc, _ := s.Create(ctx, "programs", map[string]any{"programType": "Strength"})
	if err := s.Delete(ctx, "programs", doc.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Get(ctx, "programs", doc.ID); err == nil {
		t.Fatalf("expected deleted document to be gone")
	}
	if err := s.Delete(ctx, "programs", doc.ID); err == nil {
		t.Fatalf("expected second delete to report not found")
	}
}

func TestSubscribeDeliversInitialSnapshot(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	s.Create(ctx, "faqs", map[string]any{"question": "q1"})

	feed, err := s.Subscribe(ctx, "faqs")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	snap := waitSnapshot(t, feed)
	if len(snap.Documents) != 1 {
		t.Fatalf("expected initial snapshot with one document got %d", len(snap.Documents))
	}
}

func TestSubscribeObservesMutations(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	feed, err := s.Subscribe(ctx, "faqs")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	waitSnapshot(t, feed) // initial empty snapshot

	doc, _ := s.Create(ctx, "faqs", map[string]any{"question": "q1"})
	snap := waitSnapshot(t, feed)
	if len(snap.Documents) != 1 || snap.Documents[0].ID != doc.ID {
		t.Fatalf("expected created document in snapshot")
	}

	if err := s.Delete(ctx, "faqs", doc.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	snap = waitSnapshot(t, feed)
	if len(snap.Documents) != 0 {
		t.Fatalf("delete must be reflected in the next snapshot, got %d documents", len(snap.Documents))
	}
}

func TestSubscribeIsScopedToCollection(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	feed, _ := s.Subscribe(ctx, "faqs")
	waitSnapshot(t, feed)

	s.Create(ctx, "blogs", map[string]any{"title": "Post"})

	select {
	case snap := <-feed:
		t.Fatalf("unexpected snapshot for foreign collection: %+v", snap)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSubscribeClosesOnContextCancel(t *testing.T) {
	s := newTestStore()
	ctx, cancel := context.WithCancel(context.Background())

	feed, _ := s.Subscribe(ctx, "faqs")
	waitSnapshot(t, feed)
	cancel()

	select {
	case _, ok := <-feed:
		if ok {
			// A snapshot may still be in flight; the next read must observe
			// the close.
			if _, ok := <-feed; ok {
				t.Fatalf("expected feed to close after cancel")
			}
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for feed close")
	}
}

func TestSlowSubscriberCoalesces(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	feed, _ := s.Subscribe(ctx, "faqs")

	// Never read while writing; the buffered feed must coalesce instead of
	// blocking the writer.
	for i := 0; i < 10; i++ {
		if _, err := s.Create(ctx, "faqs", map[string]any{"question": fmt.Sprintf("q%d", i)}); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	// Drain whatever is pending; the final snapshot must reflect the latest
	// state.
	var last interfaces.Snapshot
	deadline := time.After(2 * time.Second)
	for {
		select {
		case snap := <-feed:
			last = snap
			if len(snap.Documents) == 10 {
				return
			}
		case <-deadline:
			t.Fatalf("never observed the final snapshot, last had %d documents", len(last.Documents))
		}
	}
}
