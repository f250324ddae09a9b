package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/example/artist-platform/internal/artists/store"
	"github.com/example/artist-platform/internal/platform/api"
	"github.com/example/artist-platform/internal/platform/httpserver"
)

// allowedTransitions maps a current status to the statuses an admin may move
// it to. Draft profiles are not reviewable until submitted.
var allowedTransitions = map[store.Status][]store.Status{
	store.StatusPending:   {store.StatusApproved, store.StatusRejected},
	store.StatusApproved:  {store.StatusSuspended},
	store.StatusSuspended: {store.StatusApproved},
}

func transitionAllowed(from, to store.Status) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// AdminListArtists handles GET /v1/admin/artists?status= — defaults to the
// review queue (pending).
func AdminListArtists(as store.ArtistStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())

		status := store.Status(r.URL.Query().Get("status"))
		if status == "" {
			status = store.StatusPending
		}
		if !status.Valid() {
			api.BadRequest(w, "invalid status filter", rid, nil)
			return
		}

		p := store.ListParams{Status: status, Limit: 50}
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
		api.List(w, artists, total)
	}
}

// AdminSetStatus handles PUT /v1/admin/artists/{artist_id}/status.
func AdminSetStatus(as store.ArtistStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())

		artistID := chi.URLParam(r, "artist_id")

		var req struct {
			Status store.Status `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.BadRequest(w, "invalid JSON", rid, nil)
			return
		}
		if !req.Status.Valid() {
			api.BadRequest(w, "invalid status", rid, nil)
			return
		}

		a, err := as.FindByID(r.Context(), artistID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				api.NotFound(w, "artist not found", rid)
				return
			}
			api.Internal(w, rid)
			return
		}

		if !transitionAllowed(a.Status, req.Status) {
			api.BadRequest(w, "status transition not allowed", rid,
				map[string]any{"from": a.Status, "to": req.Status})
			return
		}

		if err := as.UpdateStatus(r.Context(), a.ID, req.Status); err != nil {
			api.Internal(w, rid)
			return
		}
		api.Success(w)
	}
}
