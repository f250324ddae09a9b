package tokens

import (
	"testing"
	"time"

	"github.com/example/artist-platform/internal/platform/auth"
)

func TestNewAccessToken_RoundTrip(t *testing.T) {
	svc := Service{Secret: []byte("test-secret"), AccessTokenTTL: time.Hour}
	signed, exp, err := svc.NewAccessToken("user-1", "admin", time.Now().UTC())
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if !exp.After(time.Now()) {
		t.Fatal("expected expiry in the future")
	}

	claims, err := auth.JWTVerifier{Secret: []byte("test-secret")}.Parse(signed)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Subject != "user-1" {
		t.Fatalf("expected subject 'user-1', got %q", claims.Subject)
	}
	if claims.Role != "admin" {
		t.Fatalf("expected role 'admin', got %q", claims.Role)
	}
}

func TestNewAccessToken_MissingSecret(t *testing.T) {
	if _, _, err := (Service{}).NewAccessToken("user-1", "user", time.Time{}); err == nil {
		t.Fatal("expected error for missing secret")
	}
}
