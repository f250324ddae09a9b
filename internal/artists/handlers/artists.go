package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"github.com/example/artist-platform/internal/artists/store"
	"github.com/example/artist-platform/internal/platform/api"
	"github.com/example/artist-platform/internal/platform/auth"
	"github.com/example/artist-platform/internal/platform/httpserver"
	"github.com/example/artist-platform/internal/platform/render"
)

const (
	maxDisplayName = 100
	maxBio         = 5000
)

type profileRequest struct {
	DisplayName  string  `json:"display_name"`
	Bio          string  `json:"bio"`
	ProfilePhoto *string `json:"profile_photo,omitempty"`
}

// publicArtist is the directory-facing projection: no user id, no status,
// bio rendered to sanitized HTML.
type publicArtist struct {
	ID           string    `json:"id"`
	DisplayName  string    `json:"display_name"`
	Slug         string    `json:"slug"`
	Bio          string    `json:"bio"`
	BioHTML      string    `json:"bio_html"`
	ProfilePhoto *string   `json:"profile_photo,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func toPublic(a store.Artist) publicArtist {
	return publicArtist{
		ID:           a.ID,
		DisplayName:  a.DisplayName,
		Slug:         a.Slug,
		Bio:          a.Bio,
		BioHTML:      render.Markdown(a.Bio),
		ProfilePhoto: a.ProfilePhoto,
		CreatedAt:    a.CreatedAt,
	}
}

// ListArtists handles GET /v1/artists — the public directory, approved only.
func ListArtists(as store.ArtistStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())

		p := store.ListParams{
			Status: store.StatusApproved,
			Query:  strings.TrimSpace(r.URL.Query().Get("q")),
			Limit:  20,
		}
		if l := r.URL.Query().Get("limit"); l != "" {
			if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 100 {
				p.Limit = parsed
			}
		}
		if o := r.URL.Query().Get("offset"); o != "" {
			if parsed, err := strconv.Atoi(o); err == nil && parsed >= 0 {
				p.Offset = parsed
			}
		}

		artists, total, err := as.List(r.Context(), p)
		if err != nil {
			api.Internal(w, rid)
			return
		}
		out := make([]publicArtist, len(artists))
		for i, a := range artists {
			out[i] = toPublic(a)
		}
		api.List(w, out, total)
	}
}

// GetArtist handles GET /v1/artists/{slug} — public profile, approved only.
func GetArtist(as store.ArtistStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())

		slug := strings.TrimSpace(chi.URLParam(r, "slug"))
		if slug == "" {
			api.BadRequest(w, "slug is required", rid, nil)
			return
		}
		a, err := as.FindBySlug(r.Context(), slug)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				api.NotFound(w, "artist not found", rid)
				return
			}
			api.Internal(w, rid)
			return
		}
		if a.Status != store.StatusApproved {
			api.NotFound(w, "artist not found", rid)
			return
		}
		api.Data(w, http.StatusOK, toPublic(a))
	}
}

// CreateProfile handles POST /v1/artists — one profile per user.
func CreateProfile(as store.ArtistStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())

		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok || userID == "" {
			api.Unauthorized(w, "authentication required", rid)
			return
		}

		req, ok := decodeProfile(w, r, rid)
		if !ok {
			return
		}

		if _, err := as.FindByUserID(r.Context(), userID); err == nil {
			api.Conflict(w, "artist profile already exists", rid, nil)
			return
		} else if !errors.Is(err, store.ErrNotFound) {
			api.Internal(w, rid)
			return
		}

		slug, err := store.GenerateSlug(r.Context(), as, req.DisplayName)
		if err != nil {
			api.Internal(w, rid)
			return
		}

		a, err := as.Create(r.Context(), store.Artist{
			UserID:       userID,
			DisplayName:  req.DisplayName,
			Slug:         slug,
			Bio:          req.Bio,
			ProfilePhoto: req.ProfilePhoto,
			Status:       store.StatusDraft,
		})
		if err != nil {
			if errors.Is(err, store.ErrConflict) {
				api.Conflict(w, "artist profile already exists", rid, nil)
				return
			}
			api.Internal(w, rid)
			return
		}
		api.Data(w, http.StatusCreated, a)
	}
}

// GetMyProfile handles GET /v1/artists/me — own profile, any status.
func GetMyProfile(as store.ArtistStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())

		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok || userID == "" {
			api.Unauthorized(w, "authentication required", rid)
			return
		}
		a, err := as.FindByUserID(r.Context(), userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				api.NotFound(w, "no artist profile", rid)
				return
			}
			api.Internal(w, rid)
			return
		}
		api.Data(w, http.StatusOK, a)
	}
}

// UpdateMyProfile handles PUT /v1/artists/me. A rejected profile goes back to
// draft on edit; other statuses are unchanged. The slug never changes.
func UpdateMyProfile(as store.ArtistStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())

		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok || userID == "" {
			api.Unauthorized(w, "authentication required", rid)
			return
		}

		req, ok := decodeProfile(w, r, rid)
		if !ok {
			return
		}

		a, err := as.FindByUserID(r.Context(), userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				api.NotFound(w, "no artist profile", rid)
				return
			}
			api.Internal(w, rid)
			return
		}

		status := a.Status
		if status == store.StatusRejected {
			status = store.StatusDraft
		}

		updated, err := as.UpdateProfile(r.Context(), a.ID, store.UpdateProfileParams{
			DisplayName:  req.DisplayName,
			Bio:          req.Bio,
			ProfilePhoto: req.ProfilePhoto,
			Status:       status,
		})
		if err != nil {
			api.Internal(w, rid)
			return
		}
		api.Data(w, http.StatusOK, updated)
	}
}

// SubmitForReview handles POST /v1/artists/me/submit.
func SubmitForReview(as store.ArtistStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())

		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok || userID == "" {
			api.Unauthorized(w, "authentication required", rid)
			return
		}
		a, err := as.FindByUserID(r.Context(), userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				api.NotFound(w, "no artist profile", rid)
				return
			}
			api.Internal(w, rid)
			return
		}
		if a.Status != store.StatusDraft && a.Status != store.StatusRejected {
			api.BadRequest(w, "profile cannot be submitted from its current status", rid,
				map[string]any{"status": a.Status})
			return
		}
		if err := as.UpdateStatus(r.Context(), a.ID, store.StatusPending); err != nil {
			api.Internal(w, rid)
			return
		}
		api.Success(w)
	}
}

func decodeProfile(w http.ResponseWriter, r *http.Request, rid string) (profileRequest, bool) {
	var req profileRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		api.BadRequest(w, "invalid JSON", rid, nil)
		return req, false
	}
	req.DisplayName = strings.TrimSpace(req.DisplayName)
	if req.DisplayName == "" {
		api.BadRequest(w, "display_name is required", rid, nil)
		return req, false
	}
	if utf8.RuneCountInString(req.DisplayName) > maxDisplayName {
		api.BadRequest(w, "display_name too long", rid, nil)
		return req, false
	}
	if utf8.RuneCountInString(req.Bio) > maxBio {
		api.BadRequest(w, "bio too long", rid, nil)
		return req, false
	}
	return req, true
}
