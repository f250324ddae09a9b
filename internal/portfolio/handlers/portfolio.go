package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	artiststore "github.com/example/artist-platform/internal/artists/store"
	"github.com/example/artist-platform/internal/platform/api"
	"github.com/example/artist-platform/internal/platform/auth"
	"github.com/example/artist-platform/internal/platform/httpserver"
	"github.com/example/artist-platform/internal/platform/render"
	"github.com/example/artist-platform/internal/portfolio/store"
)

const (
	maxTitle       = 200
	maxDescription = 5000
)

type itemRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Position    int    `json:"position"`
}

type publicItem struct {
	store.Item
	DescriptionHTML string `json:"description_html"`
}

func toPublicItem(it store.Item) publicItem {
	return publicItem{Item: it, DescriptionHTML: render.Markdown(it.Description)}
}

// ListItems handles GET /v1/artists/{slug}/portfolio — public, only for
// approved artists.
func ListItems(is store.ItemStore, as artiststore.ArtistStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())

		artist, err := as.FindBySlug(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			if errors.Is(err, artiststore.ErrNotFound) {
				api.NotFound(w, "artist not found", rid)
				return
			}
			api.Internal(w, rid)
			return
		}
		if artist.Status != artiststore.StatusApproved {
			api.NotFound(w, "artist not found", rid)
			return
		}

		items, err := is.ListByArtist(r.Context(), artist.ID)
		if err != nil {
			api.Internal(w, rid)
			return
		}
		out := make([]publicItem, len(items))
		for i, it := range items {
			out[i] = toPublicItem(it)
		}
		api.List(w, out, len(out))
	}
}

// CreateItem handles POST /v1/portfolio. The caller must already have an
// artist profile.
func CreateItem(is store.ItemStore, as artiststore.ArtistStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())

		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok || userID == "" {
			api.Unauthorized(w, "authentication required", rid)
			return
		}

		req, ok := decodeItem(w, r, rid)
		if !ok {
			return
		}

		artist, err := as.FindByUserID(r.Context(), userID)
		if err != nil {
			if errors.Is(err, artiststore.ErrNotFound) {
				api.Forbidden(w, "must have an artist profile", rid)
				return
			}
			api.Internal(w, rid)
			return
		}

		it, err := is.Create(r.Context(), store.Item{
			ArtistID:    artist.ID,
			Title:       req.Title,
			Description: req.Description,
			ImageURL:    req.ImageURL,
			Position:    req.Position,
		})
		if err != nil {
			api.Internal(w, rid)
			return
		}
		api.Data(w, http.StatusCreated, it)
	}
}

// UpdateItem handles PUT /v1/portfolio/{item_id} — owner only.
func UpdateItem(is store.ItemStore, as artiststore.ArtistStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())

		req, ok := decodeItem(w, r, rid)
		if !ok {
			return
		}
		it, ok := ownedItem(w, r, is, as, rid)
		if !ok {
			return
		}

		updated, err := is.Update(r.Context(), it.ID, store.UpdateParams{
			Title:       req.Title,
			Description: req.Description,
			ImageURL:    req.ImageURL,
			Position:    req.Position,
		})
		if err != nil {
			api.Internal(w, rid)
			return
		}
		api.Data(w, http.StatusOK, updated)
	}
}

// DeleteItem handles DELETE /v1/portfolio/{item_id} — owner only. Comments on
// the item go with it.
func DeleteItem(is store.ItemStore, as artiststore.ArtistStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())

		it, ok := ownedItem(w, r, is, as, rid)
		if !ok {
			return
		}
		if err := is.Delete(r.Context(), it.ID); err != nil {
			api.Internal(w, rid)
			return
		}
		api.Success(w)
	}
}

// ownedItem loads the item from the path and checks that the caller's artist
// profile owns it, writing the error response itself when it does not.
func ownedItem(w http.ResponseWriter, r *http.Request, is store.ItemStore, as artiststore.ArtistStore, rid string) (store.Item, bool) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok || userID == "" {
		api.Unauthorized(w, "authentication required", rid)
		return store.Item{}, false
	}

	it, err := is.FindByID(r.Context(), chi.URLParam(r, "item_id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			api.NotFound(w, "item not found", rid)
			return store.Item{}, false
		}
		api.Internal(w, rid)
		return store.Item{}, false
	}

	artist, err := as.FindByUserID(r.Context(), userID)
	if err != nil || artist.ID != it.ArtistID {
		api.Forbidden(w, "not your item", rid)
		return store.Item{}, false
	}
	return it, true
}

func decodeItem(w http.ResponseWriter, r *http.Request, rid string) (itemRequest, bool) {
	var req itemRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		api.BadRequest(w, "invalid JSON", rid, nil)
		return req, false
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		api.BadRequest(w, "title is required", rid, nil)
		return req, false
	}
	if utf8.RuneCountInString(req.Title) > maxTitle {
		api.BadRequest(w, "title too long", rid, nil)
		return req, false
	}
	if utf8.RuneCountInString(req.Description) > maxDescription {
		api.BadRequest(w, "description too long", rid, nil)
		return req, false
	}
	if strings.TrimSpace(req.ImageURL) == "" {
		api.BadRequest(w, "image_url is required", rid, nil)
		return req, false
	}
	if req.Position < 0 {
		api.BadRequest(w, "position must not be negative", rid, nil)
		return req, false
	}
	return req, true
}
