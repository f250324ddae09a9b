package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	artiststore "github.com/example/artist-platform/internal/artists/store"
	"github.com/example/artist-platform/internal/platform/api"
	"github.com/example/artist-platform/internal/platform/auth"
	"github.com/example/artist-platform/internal/platform/httpserver"
	"github.com/example/artist-platform/internal/showcases/store"
)

const (
	maxTitle       = 200
	maxDescription = 5000
	maxVenue       = 200
)

type showcaseRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Venue       string  `json:"venue"`
	StartsAt    string  `json:"starts_at"`
	EndsAt      *string `json:"ends_at,omitempty"`
}

// ListUpcoming handles GET /v1/showcases — public, approved artists only,
// soonest first.
func ListUpcoming(ss store.ShowcaseStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())

		list, err := ss.ListUpcoming(r.Context(), time.Now().UTC())
		if err != nil {
			api.Internal(w, rid)
			return
		}
		api.List(w, list, len(list))
	}
}

// ListByArtist handles GET /v1/artists/{slug}/showcases — public, only for
// approved artists.
func ListByArtist(ss store.ShowcaseStore, as artiststore.ArtistStore) http.HandlerFunc {
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

		list, err := ss.ListByArtist(r.Context(), artist.ID)
		if err != nil {
			api.Internal(w, rid)
			return
		}
		api.List(w, list, len(list))
	}
}

// CreateShowcase handles POST /v1/showcases — artist profile required.
func CreateShowcase(ss store.ShowcaseStore, as artiststore.ArtistStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())

		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok || userID == "" {
			api.Unauthorized(w, "authentication required", rid)
			return
		}

		req, startsAt, endsAt, ok := decodeShowcase(w, r, rid)
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

		sc, err := ss.Create(r.Context(), store.Showcase{
			ArtistID:    artist.ID,
			Title:       req.Title,
			Description: req.Description,
			Venue:       req.Venue,
			StartsAt:    startsAt,
			EndsAt:      endsAt,
		})
		if err != nil {
			api.Internal(w, rid)
			return
		}
		api.Data(w, http.StatusCreated, sc)
	}
}

// UpdateShowcase handles PUT /v1/showcases/{showcase_id} — owner only.
func UpdateShowcase(ss store.ShowcaseStore, as artiststore.ArtistStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())

		req, startsAt, endsAt, ok := decodeShowcase(w, r, rid)
		if !ok {
			return
		}
		sc, ok := ownedShowcase(w, r, ss, as, rid)
		if !ok {
			return
		}

		updated, err := ss.Update(r.Context(), sc.ID, store.UpdateParams{
			Title:       req.Title,
			Description: req.Description,
			Venue:       req.Venue,
			StartsAt:    startsAt,
			EndsAt:      endsAt,
		})
		if err != nil {
			api.Internal(w, rid)
			return
		}
		api.Data(w, http.StatusOK, updated)
	}
}

// DeleteShowcase handles DELETE /v1/showcases/{showcase_id} — owner only.
func DeleteShowcase(ss store.ShowcaseStore, as artiststore.ArtistStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())

		sc, ok := ownedShowcase(w, r, ss, as, rid)
		if !ok {
			return
		}
		if err := ss.Delete(r.Context(), sc.ID); err != nil {
			api.Internal(w, rid)
			return
		}
		api.Success(w)
	}
}

func ownedShowcase(w http.ResponseWriter, r *http.Request, ss store.ShowcaseStore, as artiststore.ArtistStore, rid string) (store.Showcase, bool) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok || userID == "" {
		api.Unauthorized(w, "authentication required", rid)
		return store.Showcase{}, false
	}

	sc, err := ss.FindByID(r.Context(), chi.URLParam(r, "showcase_id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			api.NotFound(w, "showcase not found", rid)
			return store.Showcase{}, false
		}
		api.Internal(w, rid)
		return store.Showcase{}, false
	}

	artist, err := as.FindByUserID(r.Context(), userID)
	if err != nil || artist.ID != sc.ArtistID {
		api.Forbidden(w, "not your showcase", rid)
		return store.Showcase{}, false
	}
	return sc, true
}

func decodeShowcase(w http.ResponseWriter, r *http.Request, rid string) (showcaseRequest, time.Time, *time.Time, bool) {
	var req showcaseRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		api.BadRequest(w, "invalid JSON", rid, nil)
		return req, time.Time{}, nil, false
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		api.BadRequest(w, "title is required", rid, nil)
		return req, time.Time{}, nil, false
	}
	if utf8.RuneCountInString(req.Title) > maxTitle ||
		utf8.RuneCountInString(req.Description) > maxDescription ||
		utf8.RuneCountInString(req.Venue) > maxVenue {
		api.BadRequest(w, "field too long", rid, nil)
		return req, time.Time{}, nil, false
	}
	if req.StartsAt == "" {
		api.BadRequest(w, "starts_at is required", rid, nil)
		return req, time.Time{}, nil, false
	}
	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		api.BadRequest(w, "starts_at must be RFC3339", rid, nil)
		return req, time.Time{}, nil, false
	}
	var endsAt *time.Time
	if req.EndsAt != nil && *req.EndsAt != "" {
		parsed, err := time.Parse(time.RFC3339, *req.EndsAt)
		if err != nil {
			api.BadRequest(w, "ends_at must be RFC3339", rid, nil)
			return req, time.Time{}, nil, false
		}
		if parsed.Before(startsAt) {
			api.BadRequest(w, "ends_at must not be before starts_at", rid, nil)
			return req, time.Time{}, nil, false
		}
		endsAt = &parsed
	}
	return req, startsAt, endsAt, true
}
