package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/example/artist-platform/internal/notifications/store"
	"github.com/example/artist-platform/internal/platform/api"
	"github.com/example/artist-platform/internal/platform/auth"
	"github.com/example/artist-platform/internal/platform/httpserver"
)

// ListNotifications handles GET /v1/me/notifications?unread=1.
func ListNotifications(ns store.NotificationStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())

		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok || userID == "" {
			api.Unauthorized(w, "authentication required", rid)
			return
		}
		unreadOnly := r.URL.Query().Get("unread") == "1" || r.URL.Query().Get("unread") == "true"

		list, err := ns.ListByUser(r.Context(), userID, unreadOnly)
		if err != nil {
			api.Internal(w, rid)
			return
		}
		api.List(w, list, len(list))
	}
}

// MarkNotificationsRead handles POST /v1/me/notifications/read. An empty or
// absent ids list marks everything read.
func MarkNotificationsRead(ns store.NotificationStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())

		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok || userID == "" {
			api.Unauthorized(w, "authentication required", rid)
			return
		}

		var req struct {
			IDs []string `json:"ids"`
		}
		if r.ContentLength > 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				api.BadRequest(w, "invalid JSON", rid, nil)
				return
			}
		}

		if err := ns.MarkRead(r.Context(), userID, req.IDs); err != nil {
			api.Internal(w, rid)
			return
		}
		api.Success(w)
	}
}
