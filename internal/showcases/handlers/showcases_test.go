package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	artiststore "github.com/example/artist-platform/internal/artists/store"
	"github.com/example/artist-platform/internal/platform/auth"
	"github.com/example/artist-platform/internal/showcases/store"
)

// artistStatuses adapts the artist store for the in-memory showcase store.
type artistStatuses struct {
	artists *artiststore.InMemoryArtistStore
}

func (a artistStatuses) IsApproved(ctx context.Context, artistID string) bool {
	art, err := a.artists.FindByID(ctx, artistID)
	return err == nil && art.Status == artiststore.StatusApproved
}

type env struct {
	artists   *artiststore.InMemoryArtistStore
	showcases *store.InMemoryShowcaseStore
	router    http.Handler
}

func newEnv() *env {
	e := &env{artists: artiststore.NewInMemoryArtistStore()}
	e.showcases = store.NewInMemoryShowcaseStore(artistStatuses{e.artists})

	r := chi.NewRouter()
	r.Get("/v1/showcases", ListUpcoming(e.showcases))
	r.Get("/v1/artists/{slug}/showcases", ListByArtist(e.showcases, e.artists))
	r.Post("/v1/showcases", CreateShowcase(e.showcases, e.artists))
	r.Put("/v1/showcases/{showcase_id}", UpdateShowcase(e.showcases, e.artists))
	r.Delete("/v1/showcases/{showcase_id}", DeleteShowcase(e.showcases, e.artists))
	e.router = r
	return e
}

func (e *env) seedArtist(t *testing.T, userID, slug string, status artiststore.Status) artiststore.Artist {
	t.Helper()
	a, err := e.artists.Create(context.Background(), artiststore.Artist{
		UserID: userID, DisplayName: slug, Slug: slug, Status: status,
	})
	if err != nil {
		t.Fatalf("seed artist: %v", err)
	}
	return a
}

func (e *env) do(t *testing.T, userID, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if userID != "" {
		req = req.WithContext(auth.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func TestCreateShowcase(t *testing.T) {
	e := newEnv()
	e.seedArtist(t, "user-a", "ana", artiststore.StatusApproved)

	starts := time.Now().UTC().Add(48 * time.Hour).Format(time.RFC3339)
	rec := e.do(t, "user-a", http.MethodPost, "/v1/showcases",
		map[string]any{"title": "Open Studio", "venue": "Gallery 9", "starts_at": starts})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	// no profile
	rec = e.do(t, "user-nobody", http.MethodPost, "/v1/showcases",
		map[string]any{"title": "Open Studio", "starts_at": starts})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 without a profile, got %d", rec.Code)
	}
}

func TestCreateShowcase_Validation(t *testing.T) {
	e := newEnv()
	e.seedArtist(t, "user-a", "ana", artiststore.StatusApproved)
	starts := time.Now().UTC().Add(time.Hour).Format(time.RFC3339)

	cases := []map[string]any{
		{"starts_at": starts},                           // no title
		{"title": "Open Studio"},                        // no starts_at
		{"title": "Open Studio", "starts_at": "soon"},   // not RFC3339
		{"title": "Open Studio", "starts_at": starts, "ends_at": time.Now().UTC().Format(time.RFC3339)},
	}
	for _, body := range cases {
		rec := e.do(t, "user-a", http.MethodPost, "/v1/showcases", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %v, got %d", body, rec.Code)
		}
	}
}

func TestListUpcoming_ApprovedOnlyAndOrdered(t *testing.T) {
	e := newEnv()
	ana := e.seedArtist(t, "user-a", "ana", artiststore.StatusApproved)
	pending := e.seedArtist(t, "user-b", "ben", artiststore.StatusPending)
	ctx := context.Background()
	now := time.Now().UTC()

	later, _ := e.showcases.Create(ctx, store.Showcase{
		ArtistID: ana.ID, Title: "Later", StartsAt: now.Add(72 * time.Hour),
	})
	sooner, _ := e.showcases.Create(ctx, store.Showcase{
		ArtistID: ana.ID, Title: "Sooner", StartsAt: now.Add(24 * time.Hour),
	})
	_, _ = e.showcases.Create(ctx, store.Showcase{
		ArtistID: ana.ID, Title: "Past", StartsAt: now.Add(-24 * time.Hour),
	})
	_, _ = e.showcases.Create(ctx, store.Showcase{
		ArtistID: pending.ID, Title: "Hidden", StartsAt: now.Add(24 * time.Hour),
	})

	rec := e.do(t, "", http.MethodGet, "/v1/showcases", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Data []store.Showcase `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("expected 2 upcoming showcases, got %+v", resp.Data)
	}
	if resp.Data[0].ID != sooner.ID || resp.Data[1].ID != later.ID {
		t.Fatalf("expected soonest first, got %+v", resp.Data)
	}
}

func TestListByArtist_HiddenForPending(t *testing.T) {
	e := newEnv()
	e.seedArtist(t, "user-b", "ben", artiststore.StatusPending)

	rec := e.do(t, "", http.MethodGet, "/v1/artists/ben/showcases", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for a non-approved artist, got %d", rec.Code)
	}
}

func TestUpdateShowcase_OwnerOnly(t *testing.T) {
	e := newEnv()
	ana := e.seedArtist(t, "user-a", "ana", artiststore.StatusApproved)
	e.seedArtist(t, "user-b", "ben", artiststore.StatusApproved)
	sc, _ := e.showcases.Create(context.Background(), store.Showcase{
		ArtistID: ana.ID, Title: "Open Studio", StartsAt: time.Now().UTC().Add(time.Hour),
	})
	starts := time.Now().UTC().Add(2 * time.Hour).Format(time.RFC3339)

	rec := e.do(t, "user-b", http.MethodPut, "/v1/showcases/"+sc.ID,
		map[string]any{"title": "Taken Over", "starts_at": starts})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-owner, got %d", rec.Code)
	}

	rec = e.do(t, "user-a", http.MethodPut, "/v1/showcases/"+sc.ID,
		map[string]any{"title": "Open Studio II", "starts_at": starts})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	got, _ := e.showcases.FindByID(context.Background(), sc.ID)
	if got.Title != "Open Studio II" {
		t.Fatalf("expected updated title, got %q", got.Title)
	}
}

func TestDeleteShowcase(t *testing.T) {
	e := newEnv()
	ana := e.seedArtist(t, "user-a", "ana", artiststore.StatusApproved)
	sc, _ := e.showcases.Create(context.Background(), store.Showcase{
		ArtistID: ana.ID, Title: "Open Studio", StartsAt: time.Now().UTC().Add(time.Hour),
	})

	rec := e.do(t, "user-a", http.MethodDelete, "/v1/showcases/"+sc.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	rec = e.do(t, "user-a", http.MethodDelete, "/v1/showcases/"+sc.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", rec.Code)
	}
}
