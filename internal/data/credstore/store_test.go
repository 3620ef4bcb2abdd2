package credstore

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestFileStore_RoundTrip(t *testing.T) {
	store := NewFileStore(t.TempDir(), zap.NewNop())

	if _, ok := store.Get(); ok {
		t.Fatal("fresh store should hold no token")
	}

	if err := store.Set("Bearer tok-123"); err != nil {
		t.Fatalf("set: %v", err)
	}
	token, ok := store.Get()
	if !ok || token != "Bearer tok-123" {
		t.Fatalf("expected stored token, got %q ok=%v", token, ok)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok := store.Get(); ok {
		t.Fatal("token should be gone after clear")
	}
}

func TestFileStore_EmptyTokenIgnored(t *testing.T) {
	store := NewFileStore(t.TempDir(), zap.NewNop())

	if err := store.Set("Bearer tok-123"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.Set(""); err != nil {
		t.Fatalf("empty set should be a no-op, not an error: %v", err)
	}

	token, ok := store.Get()
	if !ok || token != "Bearer tok-123" {
		t.Fatalf("existing token must survive an empty set, got %q", token)
	}
}

func TestFileStore_ClearTwiceIsFine(t *testing.T) {
	store := NewFileStore(t.TempDir(), zap.NewNop())
	if err := store.Clear(); err != nil {
		t.Fatalf("clear on empty store: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}

func TestFileStore_ExpiredTokenStillReturned(t *testing.T) {
	store := NewFileStore(t.TempDir(), zap.NewNop())
	expired := "Bearer " + signedToken(t, time.Now().Add(-time.Hour))

	if err := store.Set(expired); err != nil {
		t.Fatalf("set: %v", err)
	}
	token, ok := store.Get()
	if !ok || token != expired {
		t.Fatal("expiry is advisory; the token must still come back")
	}
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)

	got, ok := TokenExpiry(signedToken(t, exp))
	if !ok {
		t.Fatal("expected exp claim")
	}
	if !got.Equal(exp) {
		t.Fatalf("expected %v, got %v", exp, got)
	}

	// The Bearer prefix is stripped before parsing.
	if _, ok := TokenExpiry("Bearer " + signedToken(t, exp)); !ok {
		t.Fatal("prefixed token should parse")
	}

	if _, ok := TokenExpiry("not-a-jwt"); ok {
		t.Fatal("garbage must not yield an expiry")
	}
}
