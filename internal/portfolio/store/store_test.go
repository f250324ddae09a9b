package store

import (
	"context"
	"testing"
)

func TestInMemoryItemStore_CreateAndList(t *testing.T) {
	s := NewInMemoryItemStore()
	ctx := context.Background()

	first, err := s.Create(ctx, Item{ArtistID: "artist-a", Title: "Second", Position: 2, ImageURL: "https://img/2"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := s.Create(ctx, Item{ArtistID: "artist-a", Title: "First", Position: 1, ImageURL: "https://img/1"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	_, _ = s.Create(ctx, Item{ArtistID: "artist-b", Title: "Other", Position: 0, ImageURL: "https://img/3"})

	items, err := s.ListByArtist(ctx, "artist-a")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ID != second.ID || items[1].ID != first.ID {
		t.Fatalf("expected position ordering, got %+v", items)
	}
}

func TestInMemoryItemStore_UpdateAndDelete(t *testing.T) {
	s := NewInMemoryItemStore()
	ctx := context.Background()

	it, _ := s.Create(ctx, Item{ArtistID: "artist-a", Title: "Old", ImageURL: "https://img/1"})

	updated, err := s.Update(ctx, it.ID, UpdateParams{Title: "New", ImageURL: "https://img/1", Position: 3})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "New" || updated.Position != 3 {
		t.Fatalf("unexpected item after update: %+v", updated)
	}

	if err := s.Delete(ctx, it.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.FindByID(ctx, it.ID); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := s.Delete(ctx, it.ID); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound on double delete, got %v", err)
	}
}

type cascadeRecorder struct {
	deleted []string
}

func (c *cascadeRecorder) ItemDeleted(_ context.Context, itemID string) {
	c.deleted = append(c.deleted, itemID)
}

func TestInMemoryItemStore_DeleteNotifiesCascades(t *testing.T) {
	rec := &cascadeRecorder{}
	s := NewInMemoryItemStore(rec)
	ctx := context.Background()

	it, _ := s.Create(ctx, Item{ArtistID: "artist-a", Title: "Piece", ImageURL: "https://img/1"})
	if err := s.Delete(ctx, it.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(rec.deleted) != 1 || rec.deleted[0] != it.ID {
		t.Fatalf("expected one cascade call for %s, got %v", it.ID, rec.deleted)
	}

	// a failed delete must not cascade
	if err := s.Delete(ctx, "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(rec.deleted) != 1 {
		t.Fatalf("expected no cascade for a missing item, got %v", rec.deleted)
	}
}
