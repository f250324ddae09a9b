package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	artiststore "github.com/example/artist-platform/internal/artists/store"
	"github.com/example/artist-platform/internal/comments/moderation"
	"github.com/example/artist-platform/internal/comments/store"
	"github.com/example/artist-platform/internal/platform/api"
	"github.com/example/artist-platform/internal/platform/auth"
	"github.com/example/artist-platform/internal/platform/events"
	"github.com/example/artist-platform/internal/platform/httpserver"
	itemstore "github.com/example/artist-platform/internal/portfolio/store"
)

const maxContent = 1000

// commentEvent picks the event subject and kind for a new comment, keeping
// the two in lockstep.
func commentEvent(isReply bool) (subject, kind string) {
	if isReply {
		return events.SubjectCommentReplied, "comment.replied"
	}
	return events.SubjectCommentCreated, "comment.created"
}

// ListComments handles GET /v1/comments?portfolio_item_id= — the public
// two-level thread, newest-first roots with oldest-first replies.
func ListComments(cs store.CommentStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())

		itemID := r.URL.Query().Get("portfolio_item_id")
		if itemID == "" {
			api.BadRequest(w, "portfolio_item_id is required", rid, nil)
			return
		}
		nodes, total, err := cs.ListForItem(r.Context(), itemID)
		if err != nil {
			api.Internal(w, rid)
			return
		}
		api.List(w, nodes, total)
	}
}

// CreateComment handles POST /v1/comments. Preconditions run in a fixed
// order and the first failure short-circuits, so error precedence is
// deterministic.
func CreateComment(cs store.CommentStore, as artiststore.ArtistStore, is itemstore.ItemStore, pub *events.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())

		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok || userID == "" {
			api.Unauthorized(w, "authentication required", rid)
			return
		}

		var req struct {
			PortfolioItemID string  `json:"portfolio_item_id"`
			Content         string  `json:"content"`
			ParentID        *string `json:"parent_id,omitempty"`
		}
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
			api.BadRequest(w, "invalid JSON", rid, nil)
			return
		}
		if req.PortfolioItemID == "" || req.Content == "" {
			api.BadRequest(w, "portfolio_item_id and content are required", rid, nil)
			return
		}
		if utf8.RuneCountInString(req.Content) > maxContent {
			api.BadRequest(w, "comment too long", rid, nil)
			return
		}

		caller, err := as.FindByUserID(r.Context(), userID)
		if err != nil {
			if errors.Is(err, artiststore.ErrNotFound) {
				api.Forbidden(w, "must have an artist profile to comment", rid)
				return
			}
			api.Internal(w, rid)
			return
		}

		item, err := is.FindByID(r.Context(), req.PortfolioItemID)
		if err != nil {
			if errors.Is(err, itemstore.ErrNotFound) {
				api.NotFound(w, "item not found", rid)
				return
			}
			api.Internal(w, rid)
			return
		}

		owner, err := as.FindByID(r.Context(), item.ArtistID)
		if err != nil {
			api.Internal(w, rid)
			return
		}
		if owner.Status != artiststore.StatusApproved {
			api.BadRequest(w, "cannot comment on this item", rid, nil)
			return
		}

		// a reply notifies the parent comment's author, a top-level
		// comment notifies the item owner
		isReply := false
		recipientUserID := owner.UserID
		if req.ParentID != nil {
			parent, err := cs.FindByID(r.Context(), *req.ParentID)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					api.NotFound(w, "parent comment not found", rid)
					return
				}
				api.Internal(w, rid)
				return
			}
			if parent.PortfolioItemID != item.ID {
				api.NotFound(w, "parent comment not found", rid)
				return
			}
			if parent.ParentID != nil {
				api.BadRequest(w, "cannot reply to a reply", rid, nil)
				return
			}
			isReply = true
			if parentAuthor, err := as.FindByID(r.Context(), parent.ArtistID); err == nil {
				recipientUserID = parentAuthor.UserID
			}
		}

		c, err := cs.Create(r.Context(), store.Comment{
			PortfolioItemID: item.ID,
			ArtistID:        caller.ID,
			ParentID:        req.ParentID,
			Content:         req.Content,
		})
		if err != nil {
			api.Internal(w, rid)
			return
		}

		subject, kind := commentEvent(isReply)
		pub.Publish(subject, kind, userID, map[string]any{
			"recipient_user_id": recipientUserID,
			"comment_id":        c.ID,
			"portfolio_item_id": item.ID,
		})

		// the author projection comes from the caller's own profile, no
		// extra read
		api.Data(w, http.StatusCreated, store.CommentWithAuthor{
			Comment: c,
			Author: store.Author{
				ArtistID:     caller.ID,
				DisplayName:  caller.DisplayName,
				Slug:         caller.Slug,
				ProfilePhoto: caller.ProfilePhoto,
			},
		})
	}
}

// EditComment handles PUT /v1/comments/{comment_id} — author only.
func EditComment(cs store.CommentStore, as artiststore.ArtistStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())

		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok || userID == "" {
			api.Unauthorized(w, "authentication required", rid)
			return
		}

		var req struct {
			Content string `json:"content"`
		}
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
			api.BadRequest(w, "invalid JSON", rid, nil)
			return
		}
		if req.Content == "" {
			api.BadRequest(w, "content is required", rid, nil)
			return
		}
		if utf8.RuneCountInString(req.Content) > maxContent {
			api.BadRequest(w, "comment too long", rid, nil)
			return
		}

		caller, err := as.FindByUserID(r.Context(), userID)
		if err != nil {
			if errors.Is(err, artiststore.ErrNotFound) {
				api.Forbidden(w, "must have an artist profile", rid)
				return
			}
			api.Internal(w, rid)
			return
		}

		c, err := cs.FindByID(r.Context(), chi.URLParam(r, "comment_id"))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				api.NotFound(w, "comment not found", rid)
				return
			}
			api.Internal(w, rid)
			return
		}
		if !moderation.CanEdit(c, caller.ID) {
			api.Forbidden(w, "only edit your own comments", rid)
			return
		}

		if err := cs.UpdateContent(r.Context(), c.ID, req.Content); err != nil {
			api.Internal(w, rid)
			return
		}
		api.Success(w)
	}
}

// DeleteComment handles DELETE /v1/comments/{comment_id} — author or the
// owner of the portfolio item the comment is on.
func DeleteComment(cs store.CommentStore, as artiststore.ArtistStore, is itemstore.ItemStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())

		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok || userID == "" {
			api.Unauthorized(w, "authentication required", rid)
			return
		}

		caller, err := as.FindByUserID(r.Context(), userID)
		if err != nil {
			if errors.Is(err, artiststore.ErrNotFound) {
				api.Forbidden(w, "must have an artist profile", rid)
				return
			}
			api.Internal(w, rid)
			return
		}

		c, err := cs.FindByID(r.Context(), chi.URLParam(r, "comment_id"))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				api.NotFound(w, "comment not found", rid)
				return
			}
			api.Internal(w, rid)
			return
		}

		// a vanished item leaves the author-only half of the policy intact
		var itemOwnerArtistID string
		item, err := is.FindByID(r.Context(), c.PortfolioItemID)
		switch {
		case err == nil:
			itemOwnerArtistID = item.ArtistID
		case !errors.Is(err, itemstore.ErrNotFound):
			api.Internal(w, rid)
			return
		}
		if !moderation.CanDelete(c, caller.ID, itemOwnerArtistID) {
			api.Forbidden(w, "cannot delete this comment", rid)
			return
		}

		if err := cs.Delete(r.Context(), c.ID); err != nil {
			api.Internal(w, rid)
			return
		}
		api.Success(w)
	}
}

// AdminDeleteComment handles DELETE /v1/admin/comments/{comment_id} — removes
// any comment, with the same reply cascade.
func AdminDeleteComment(cs store.CommentStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())

		if err := cs.Delete(r.Context(), chi.URLParam(r, "comment_id")); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				api.NotFound(w, "comment not found", rid)
				return
			}
			api.Internal(w, rid)
			return
		}
		api.Success(w)
	}
}
