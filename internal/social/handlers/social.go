package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	artiststore "github.com/example/artist-platform/internal/artists/store"
	"github.com/example/artist-platform/internal/platform/api"
	"github.com/example/artist-platform/internal/platform/auth"
	"github.com/example/artist-platform/internal/platform/events"
	"github.com/example/artist-platform/internal/platform/httpserver"
	itemstore "github.com/example/artist-platform/internal/portfolio/store"
	"github.com/example/artist-platform/internal/social/store"
)

// FollowArtist handles PUT /v1/artists/{artist_id}/follow. The target must
// be an approved artist; following your own profile is rejected.
func FollowArtist(ss store.SocialStore, as artiststore.ArtistStore, pub *events.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())

		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok || userID == "" {
			api.Unauthorized(w, "authentication required", rid)
			return
		}

		target, err := as.FindByID(r.Context(), chi.URLParam(r, "artist_id"))
		if err != nil || target.Status != artiststore.StatusApproved {
			if err == nil || errors.Is(err, artiststore.ErrNotFound) {
				api.NotFound(w, "artist not found", rid)
				return
			}
			api.Internal(w, rid)
			return
		}
		if target.UserID == userID {
			api.BadRequest(w, "cannot follow yourself", rid, nil)
			return
		}

		followed, err := ss.Follow(r.Context(), userID, target.ID)
		if err != nil {
			api.Internal(w, rid)
			return
		}
		if followed {
			pub.Publish(events.SubjectArtistFollowed, "artist.followed", userID, map[string]any{
				"recipient_user_id": target.UserID,
				"artist_id":         target.ID,
			})
		}
		api.Success(w)
	}
}

// UnfollowArtist handles DELETE /v1/artists/{artist_id}/follow — idempotent.
func UnfollowArtist(ss store.SocialStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())

		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok || userID == "" {
			api.Unauthorized(w, "authentication required", rid)
			return
		}
		if err := ss.Unfollow(r.Context(), userID, chi.URLParam(r, "artist_id")); err != nil {
			api.Internal(w, rid)
			return
		}
		api.Success(w)
	}
}

// FollowerCount handles GET /v1/artists/{artist_id}/followers — public.
func FollowerCount(ss store.SocialStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())

		n, err := ss.FollowerCount(r.Context(), chi.URLParam(r, "artist_id"))
		if err != nil {
			api.Internal(w, rid)
			return
		}
		api.Data(w, http.StatusOK, map[string]int{"followers": n})
	}
}

// Following handles GET /v1/me/following.
func Following(ss store.SocialStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())

		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok || userID == "" {
			api.Unauthorized(w, "authentication required", rid)
			return
		}
		ids, err := ss.Following(r.Context(), userID)
		if err != nil {
			api.Internal(w, rid)
			return
		}
		api.List(w, ids, len(ids))
	}
}

// LikeItem handles PUT /v1/portfolio/{item_id}/like.
func LikeItem(ss store.SocialStore, is itemstore.ItemStore, as artiststore.ArtistStore, pub *events.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())

		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok || userID == "" {
			api.Unauthorized(w, "authentication required", rid)
			return
		}

		item, err := is.FindByID(r.Context(), chi.URLParam(r, "item_id"))
		if err != nil {
			if errors.Is(err, itemstore.ErrNotFound) {
				api.NotFound(w, "item not found", rid)
				return
			}
			api.Internal(w, rid)
			return
		}

		liked, err := ss.Like(r.Context(), userID, item.ID)
		if err != nil {
			api.Internal(w, rid)
			return
		}
		if liked {
			props := map[string]any{"item_id": item.ID}
			if owner, err := as.FindByID(r.Context(), item.ArtistID); err == nil {
				props["recipient_user_id"] = owner.UserID
			}
			pub.Publish(events.SubjectItemLiked, "item.liked", userID, props)
		}
		api.Success(w)
	}
}

// UnlikeItem handles DELETE /v1/portfolio/{item_id}/like — idempotent.
func UnlikeItem(ss store.SocialStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())

		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok || userID == "" {
			api.Unauthorized(w, "authentication required", rid)
			return
		}
		if err := ss.Unlike(r.Context(), userID, chi.URLParam(r, "item_id")); err != nil {
			api.Internal(w, rid)
			return
		}
		api.Success(w)
	}
}

// LikeCount handles GET /v1/portfolio/{item_id}/likes — public.
func LikeCount(ss store.SocialStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())

		n, err := ss.LikeCount(r.Context(), chi.URLParam(r, "item_id"))
		if err != nil {
			api.Internal(w, rid)
			return
		}
		api.Data(w, http.StatusOK, map[string]int{"likes": n})
	}
}
