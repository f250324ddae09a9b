package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/example/artist-platform/internal/accounts/store"
	"github.com/example/artist-platform/internal/accounts/tokens"
	"github.com/example/artist-platform/internal/platform/api"
	"github.com/example/artist-platform/internal/platform/httpserver"
)

type registerRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
	User      store.User `json:"user"`
}

// Register handles POST /v1/auth/register
func Register(us store.UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())

		var req registerRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
			api.BadRequest(w, "invalid JSON", rid, nil)
			return
		}
		req.Email = strings.TrimSpace(req.Email)
		req.Username = strings.TrimSpace(req.Username)

		if req.Email == "" || req.Username == "" || req.Password == "" {
			api.BadRequest(w, "email, username and password are required", rid, nil)
			return
		}
		if !strings.Contains(req.Email, "@") {
			api.BadRequest(w, "invalid email", rid, nil)
			return
		}
		if len(req.Password) < 8 {
			api.BadRequest(w, "password must be at least 8 characters", rid, nil)
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			api.Internal(w, rid)
			return
		}

		u, err := us.CreateUser(r.Context(), store.CreateUserParams{
			Email:        req.Email,
			Username:     req.Username,
			PasswordHash: string(hash),
		})
		if err != nil {
			if errors.Is(err, store.ErrConflict) {
				api.Conflict(w, "email or username already in use", rid, nil)
				return
			}
			api.Internal(w, rid)
			return
		}
		api.Data(w, http.StatusCreated, u)
	}
}

// Login handles POST /v1/auth/login
func Login(us store.UserStore, ts tokens.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())

		var req loginRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
			api.BadRequest(w, "invalid JSON", rid, nil)
			return
		}
		if strings.TrimSpace(req.Login) == "" || req.Password == "" {
			api.BadRequest(w, "login and password are required", rid, nil)
			return
		}

		row, err := us.FindByLogin(r.Context(), req.Login)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				// Same response as a bad password: no user enumeration.
				api.Unauthorized(w, "invalid credentials", rid)
				return
			}
			api.Internal(w, rid)
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(row.PasswordHash), []byte(req.Password)) != nil {
			api.Unauthorized(w, "invalid credentials", rid)
			return
		}

		signed, exp, err := ts.NewAccessToken(row.User.ID, row.User.Role, time.Now().UTC())
		if err != nil {
			api.Internal(w, rid)
			return
		}
		api.Data(w, http.StatusOK, loginResponse{Token: signed, ExpiresAt: exp, User: row.User})
	}
}
