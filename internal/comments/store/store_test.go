package store

import (
	"context"
	"testing"
)

type stubAuthors map[string]Author

func (s stubAuthors) AuthorByArtistID(_ context.Context, artistID string) (Author, bool) {
	a, ok := s[artistID]
	return a, ok
}

func newTestStore() *InMemoryCommentStore {
	return NewInMemoryCommentStore(stubAuthors{
		"artist-a": {ArtistID: "artist-a", DisplayName: "Ana", Slug: "ana"},
		"artist-b": {ArtistID: "artist-b", DisplayName: "Ben", Slug: "ben"},
	})
}

func mustCreate(t *testing.T, s *InMemoryCommentStore, itemID, artistID, content string, parentID *string) Comment {
	t.Helper()
	c, err := s.Create(context.Background(), Comment{
		PortfolioItemID: itemID, ArtistID: artistID, Content: content, ParentID: parentID,
	})
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}
	return c
}

func TestListForItem_Empty(t *testing.T) {
	s := newTestStore()

	nodes, total, err := s.ListForItem(context.Background(), "item-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(nodes) != 0 || total != 0 {
		t.Fatalf("expected empty thread, got %d nodes total=%d", len(nodes), total)
	}
}

func TestListForItem_GroupingAndOrder(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	first := mustCreate(t, s, "item-1", "artist-a", "first", nil)
	second := mustCreate(t, s, "item-1", "artist-b", "second", nil)
	r1 := mustCreate(t, s, "item-1", "artist-b", "reply one", &first.ID)
	r2 := mustCreate(t, s, "item-1", "artist-a", "reply two", &first.ID)
	mustCreate(t, s, "item-2", "artist-a", "other item", nil)

	nodes, total, err := s.ListForItem(ctx, "item-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 4 {
		t.Fatalf("expected total 4, got %d", total)
	}
	if len(nodes) != 2 {
		t.Fatalf("expected 2 top-level comments, got %d", len(nodes))
	}
	// newest-first at the top level
	if nodes[0].ID != second.ID || nodes[1].ID != first.ID {
		t.Fatalf("unexpected top-level order: %s, %s", nodes[0].ID, nodes[1].ID)
	}
	if len(nodes[0].Replies) != 0 {
		t.Fatalf("expected no replies on second, got %d", len(nodes[0].Replies))
	}
	// oldest-first within the reply group
	if len(nodes[1].Replies) != 2 || nodes[1].Replies[0].ID != r1.ID || nodes[1].Replies[1].ID != r2.ID {
		t.Fatalf("unexpected replies: %+v", nodes[1].Replies)
	}
	if nodes[1].Author.DisplayName != "Ana" || nodes[1].Replies[0].Author.DisplayName != "Ben" {
		t.Fatalf("missing author projection: %+v", nodes[1])
	}
}

func TestListForItem_CountIncludesReplies(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	root := mustCreate(t, s, "item-1", "artist-a", "root", nil)
	mustCreate(t, s, "item-1", "artist-b", "reply", &root.ID)

	_, total, err := s.ListForItem(ctx, "item-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected total 2, got %d", total)
	}

	// idempotent under repeated reads
	_, again, _ := s.ListForItem(ctx, "item-1")
	if again != total {
		t.Fatalf("count changed across reads: %d then %d", total, again)
	}
}

func TestUpdateContent_OnlyMutableFieldsChange(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	root := mustCreate(t, s, "item-1", "artist-a", "root", nil)
	reply := mustCreate(t, s, "item-1", "artist-b", "original", &root.ID)

	if err := s.UpdateContent(ctx, reply.ID, "revised"); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := s.FindByID(ctx, reply.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.Content != "revised" || !got.IsEdited {
		t.Fatalf("expected edited content, got %+v", got)
	}
	if got.ArtistID != reply.ArtistID || got.PortfolioItemID != reply.PortfolioItemID {
		t.Fatal("author or item changed on edit")
	}
	if got.ParentID == nil || *got.ParentID != root.ID {
		t.Fatal("parent changed on edit")
	}
	if !got.UpdatedAt.After(reply.UpdatedAt) && !got.UpdatedAt.Equal(reply.UpdatedAt) {
		t.Fatalf("updated_at went backwards: %v -> %v", reply.UpdatedAt, got.UpdatedAt)
	}
}

func TestUpdateContent_Unknown(t *testing.T) {
	s := newTestStore()
	if err := s.UpdateContent(context.Background(), "nope", "x"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete_CascadesToReplies(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	root := mustCreate(t, s, "item-1", "artist-a", "root", nil)
	mustCreate(t, s, "item-1", "artist-b", "reply one", &root.ID)
	mustCreate(t, s, "item-1", "artist-b", "reply two", &root.ID)
	other := mustCreate(t, s, "item-1", "artist-b", "unrelated", nil)

	if err := s.Delete(ctx, root.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	nodes, total, err := s.ListForItem(ctx, "item-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 || len(nodes) != 1 || nodes[0].ID != other.ID {
		t.Fatalf("expected only the unrelated comment to survive, got total=%d nodes=%+v", total, nodes)
	}
}

func TestDelete_Unknown(t *testing.T) {
	s := newTestStore()
	if err := s.Delete(context.Background(), "nope"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
