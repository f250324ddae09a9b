package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	artiststore "github.com/example/artist-platform/internal/artists/store"
	"github.com/example/artist-platform/internal/platform/auth"
	"github.com/example/artist-platform/internal/portfolio/store"
)

type env struct {
	items   *store.InMemoryItemStore
	artists *artiststore.InMemoryArtistStore
	router  http.Handler
}

func newEnv() *env {
	e := &env{
		items:   store.NewInMemoryItemStore(),
		artists: artiststore.NewInMemoryArtistStore(),
	}
	r := chi.NewRouter()
	r.Get("/v1/artists/{slug}/portfolio", ListItems(e.items, e.artists))
	r.Post("/v1/portfolio", CreateItem(e.items, e.artists))
	r.Put("/v1/portfolio/{item_id}", UpdateItem(e.items, e.artists))
	r.Delete("/v1/portfolio/{item_id}", DeleteItem(e.items, e.artists))
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
			t.Fatalf("encode body: %v", err)
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

func TestCreateItem_RequiresProfile(t *testing.T) {
	e := newEnv()

	rec := e.do(t, "user-a", http.MethodPost, "/v1/portfolio",
		map[string]any{"title": "Sunset", "image_url": "https://img/1"})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 without a profile, got %d: %s", rec.Code, rec.Body.String())
	}

	e.seedArtist(t, "user-a", "ana", artiststore.StatusDraft)
	rec = e.do(t, "user-a", http.MethodPost, "/v1/portfolio",
		map[string]any{"title": "Sunset", "image_url": "https://img/1"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCreateItem_Validation(t *testing.T) {
	e := newEnv()
	e.seedArtist(t, "user-a", "ana", artiststore.StatusApproved)

	cases := []map[string]any{
		{"image_url": "https://img/1"},               // missing title
		{"title": "Sunset"},                          // missing image_url
		{"title": "Sunset", "image_url": "https://img/1", "position": -1},
	}
	for _, body := range cases {
		rec := e.do(t, "user-a", http.MethodPost, "/v1/portfolio", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %v, got %d", body, rec.Code)
		}
	}
}

func TestListItems_PublicAndRendered(t *testing.T) {
	e := newEnv()
	a := e.seedArtist(t, "user-a", "ana", artiststore.StatusApproved)
	_, _ = e.items.Create(context.Background(), store.Item{
		ArtistID: a.ID, Title: "Sunset", Description: "in *pastel*", ImageURL: "https://img/1",
	})

	rec := e.do(t, "", http.MethodGet, "/v1/artists/ana/portfolio", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Data  []publicItem `json:"data"`
		Total int          `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Total != 1 || len(resp.Data) != 1 {
		t.Fatalf("expected one item, got %+v", resp)
	}
	if resp.Data[0].DescriptionHTML == "" {
		t.Fatal("expected rendered description_html")
	}
}

func TestListItems_HiddenForPendingArtist(t *testing.T) {
	e := newEnv()
	e.seedArtist(t, "user-a", "ana", artiststore.StatusPending)

	rec := e.do(t, "", http.MethodGet, "/v1/artists/ana/portfolio", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for a non-approved artist, got %d", rec.Code)
	}
}

func TestUpdateItem_OwnerOnly(t *testing.T) {
	e := newEnv()
	a := e.seedArtist(t, "user-a", "ana", artiststore.StatusApproved)
	e.seedArtist(t, "user-b", "ben", artiststore.StatusApproved)
	it, _ := e.items.Create(context.Background(), store.Item{
		ArtistID: a.ID, Title: "Sunset", ImageURL: "https://img/1",
	})

	rec := e.do(t, "user-b", http.MethodPut, "/v1/portfolio/"+it.ID,
		map[string]any{"title": "Stolen", "image_url": "https://img/1"})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-owner, got %d", rec.Code)
	}

	rec = e.do(t, "user-a", http.MethodPut, "/v1/portfolio/"+it.ID,
		map[string]any{"title": "Sunset II", "image_url": "https://img/1"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	got, _ := e.items.FindByID(context.Background(), it.ID)
	if got.Title != "Sunset II" {
		t.Fatalf("expected updated title, got %q", got.Title)
	}
}

func TestDeleteItem(t *testing.T) {
	e := newEnv()
	a := e.seedArtist(t, "user-a", "ana", artiststore.StatusApproved)
	it, _ := e.items.Create(context.Background(), store.Item{
		ArtistID: a.ID, Title: "Sunset", ImageURL: "https://img/1",
	})

	rec := e.do(t, "user-a", http.MethodDelete, "/v1/portfolio/"+it.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if _, err := e.items.FindByID(context.Background(), it.ID); err != store.ErrNotFound {
		t.Fatalf("expected item gone, got %v", err)
	}

	rec = e.do(t, "user-a", http.MethodDelete, "/v1/portfolio/"+it.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", rec.Code)
	}
}
