package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// AuthorSource resolves the author projection for comment reads. The
// Postgres store joins the artists table instead; this exists so the
// in-memory store can be composed with an in-memory artist store.
type AuthorSource interface {
	AuthorByArtistID(ctx context.Context, artistID string) (Author, bool)
}

type memComment struct {
	Comment
	seq int64 // insertion order, tie-breaker for identical timestamps
}

// InMemoryCommentStore is a development-only in-memory implementation.
type InMemoryCommentStore struct {
	mu       sync.RWMutex
	comments map[string]memComment
	nextSeq  int64
	authors  AuthorSource
}

func NewInMemoryCommentStore(authors AuthorSource) *InMemoryCommentStore {
	return &InMemoryCommentStore{comments: make(map[string]memComment), authors: authors}
}

func (s *InMemoryCommentStore) ListForItem(ctx context.Context, portfolioItemID string) ([]ThreadNode, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var roots []memComment
	total := 0
	for _, c := range s.comments {
		if c.PortfolioItemID != portfolioItemID {
			continue
		}
		total++
		if c.ParentID == nil {
			roots = append(roots, c)
		}
	}
	sort.Slice(roots, func(i, j int) bool {
		if !roots[i].CreatedAt.Equal(roots[j].CreatedAt) {
			return roots[i].CreatedAt.After(roots[j].CreatedAt)
		}
		return roots[i].seq > roots[j].seq
	})

	rootIDs := make(map[string]bool, len(roots))
	for _, r := range roots {
		rootIDs[r.ID] = true
	}

	var replies []memComment
	for _, c := range s.comments {
		if c.ParentID != nil && rootIDs[*c.ParentID] {
			replies = append(replies, c)
		}
	}
	sort.Slice(replies, func(i, j int) bool {
		if !replies[i].CreatedAt.Equal(replies[j].CreatedAt) {
			return replies[i].CreatedAt.Before(replies[j].CreatedAt)
		}
		return replies[i].seq < replies[j].seq
	})

	replyMap := make(map[string][]CommentWithAuthor)
	for _, r := range replies {
		replyMap[*r.ParentID] = append(replyMap[*r.ParentID], s.withAuthor(ctx, r.Comment))
	}

	nodes := make([]ThreadNode, len(roots))
	for i, r := range roots {
		nodes[i] = ThreadNode{CommentWithAuthor: s.withAuthor(ctx, r.Comment), Replies: replyMap[r.ID]}
		if nodes[i].Replies == nil {
			nodes[i].Replies = []CommentWithAuthor{}
		}
	}
	return nodes, total, nil
}

func (s *InMemoryCommentStore) Create(_ context.Context, c Comment) (Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	c.ID = uuid.NewString()
	c.IsEdited = false
	c.CreatedAt = now
	c.UpdatedAt = now
	s.nextSeq++
	s.comments[c.ID] = memComment{Comment: c, seq: s.nextSeq}
	return c, nil
}

func (s *InMemoryCommentStore) FindByID(_ context.Context, id string) (Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.comments[id]
	if !ok {
		return Comment{}, ErrNotFound
	}
	return c.Comment, nil
}

func (s *InMemoryCommentStore) UpdateContent(_ context.Context, id, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.comments[id]
	if !ok {
		return ErrNotFound
	}
	c.Content = content
	c.IsEdited = true
	c.UpdatedAt = time.Now().UTC()
	s.comments[id] = c
	return nil
}

func (s *InMemoryCommentStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.comments[id]; !ok {
		return ErrNotFound
	}
	for cid, c := range s.comments {
		if c.ParentID != nil && *c.ParentID == id {
			delete(s.comments, cid)
		}
	}
	delete(s.comments, id)
	return nil
}

// ItemDeleted removes every comment on the item. The Postgres store gets
// this from the portfolio_items FK cascade; the in-memory item store calls
// it on delete.
func (s *InMemoryCommentStore) ItemDeleted(_ context.Context, itemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, c := range s.comments {
		if c.PortfolioItemID == itemID {
			delete(s.comments, id)
		}
	}
}

func (s *InMemoryCommentStore) withAuthor(ctx context.Context, c Comment) CommentWithAuthor {
	out := CommentWithAuthor{Comment: c}
	if s.authors != nil {
		if a, ok := s.authors.AuthorByArtistID(ctx, c.ArtistID); ok {
			out.Author = a
		}
	}
	if out.Author.ArtistID == "" {
		out.Author.ArtistID = c.ArtistID
	}
	return out
}
