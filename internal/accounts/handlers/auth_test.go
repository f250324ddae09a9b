package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/example/artist-platform/internal/accounts/store"
	"github.com/example/artist-platform/internal/accounts/tokens"
)

var testTokens = tokens.Service{Secret: []byte("test-secret"), AccessTokenTTL: time.Hour}

func doJSON(handler http.HandlerFunc, method, url, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, bytes.NewBufferString(body))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestRegisterAndLogin(t *testing.T) {
	us := store.NewInMemoryUserStore()

	rr := doJSON(Register(us), http.MethodPost, "/v1/auth/register",
		`{"email":"ana@example.com","username":"ana","password":"supersecret"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", rr.Code, rr.Body.String())
	}

	rr = doJSON(Login(us, testTokens), http.MethodPost, "/v1/auth/login",
		`{"login":"ana","password":"supersecret"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Data loginResponse `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.Token == "" {
		t.Fatal("expected a token")
	}
	if resp.Data.User.Username != "ana" {
		t.Fatalf("expected username 'ana', got %q", resp.Data.User.Username)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	us := store.NewInMemoryUserStore()

	body := `{"email":"ana@example.com","username":"ana","password":"supersecret"}`
	if rr := doJSON(Register(us), http.MethodPost, "/v1/auth/register", body); rr.Code != http.StatusCreated {
		t.Fatalf("first register: expected 201, got %d", rr.Code)
	}
	rr := doJSON(Register(us), http.MethodPost, "/v1/auth/register",
		`{"email":"ana@example.com","username":"other","password":"supersecret"}`)
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rr.Code)
	}
}

func TestRegister_ShortPassword(t *testing.T) {
	us := store.NewInMemoryUserStore()
	rr := doJSON(Register(us), http.MethodPost, "/v1/auth/register",
		`{"email":"ana@example.com","username":"ana","password":"short"}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	us := store.NewInMemoryUserStore()
	doJSON(Register(us), http.MethodPost, "/v1/auth/register",
		`{"email":"ana@example.com","username":"ana","password":"supersecret"}`)

	rr := doJSON(Login(us, testTokens), http.MethodPost, "/v1/auth/login",
		`{"login":"ana","password":"wrongwrong"}`)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	us := store.NewInMemoryUserStore()
	rr := doJSON(Login(us, testTokens), http.MethodPost, "/v1/auth/login",
		`{"login":"ghost","password":"whatever1"}`)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}
