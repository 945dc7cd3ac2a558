package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	authErrors "github.com/sablecraft/studio-admin/internal/auth/errors"
)

func newTestSigner(t *testing.T, ttl time.Duration) Signer {
	t.Helper()
	s, err := NewSigner("test-secret", ttl)
	if err != nil {
		t.Fatalf("new signer: %v", err)
	}
	return s
}

func TestSigner_SignVerify(t *testing.T) {
	s := newTestSigner(t, time.Minute)
	uid := uuid.New()

	raw, exp, err := s.Sign(uid, "a@b.com", "admin")
	if err != nil || raw == "" || exp.IsZero() {
		t.Fatalf("bad sign: %v", err)
	}

	claims, err := s.Verify(raw)
	if err != nil {
		t.Fatal(err)
	}
	if claims.Subject != uid.String() || claims.Email != "a@b.com" || claims.Role != "admin" {
		t.Fatalf("claims mismatch: %+v", claims)
	}
	got, err := claims.UserID()
	if err != nil || got != uid {
		t.Fatalf("user id: %v", err)
	}
}

func TestSigner_RequiresSecret(t *testing.T) {
	if _, err := NewSigner("", time.Minute); err == nil {
		t.Fatal("expected error for empty secret")
	}
}

func TestSigner_Expired(t *testing.T) {
	s := newTestSigner(t, time.Minute)

	// issued-at = now - TTL - 1s
	past := time.Now().Add(-time.Minute - time.Second)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(past),
			ExpiresAt: jwt.NewNumericDate(past.Add(time.Minute)),
		},
		Email: "a@b.com",
		Role:  "user",
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := s.Verify(raw); !authErrors.IsInvalidToken(err) {
		t.Fatalf("expected invalid token, got %v", err)
	}
}

func TestSigner_TamperEvidence(t *testing.T) {
	s := newTestSigner(t, time.Minute)
	raw, _, err := s.Sign(uuid.New(), "a@b.com", "user")
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < len(raw); i++ {
		mutated := []byte(raw)
		mutated[i] ^= 0x01
		if string(mutated) == raw {
			continue
		}
		if _, err := s.Verify(string(mutated)); err == nil {
			t.Fatalf("flipped byte %d still verified", i)
		}
	}
}

func TestSigner_WrongSecret(t *testing.T) {
	s := newTestSigner(t, time.Minute)
	other, _ := NewSigner("other-secret", time.Minute)
	raw, _, _ := other.Sign(uuid.New(), "a@b.com", "user")
	if _, err := s.Verify(raw); !authErrors.IsInvalidToken(err) {
		t.Fatalf("expected invalid token, got %v", err)
	}
}

func TestSigner_WrongAlg(t *testing.T) {
	s := newTestSigner(t, time.Minute)
	raw, _ := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	if _, err := s.Verify(raw); !authErrors.IsInvalidToken(err) {
		t.Fatalf("expected invalid token, got %v", err)
	}
}

func TestParseTTL(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
	}{
		{"1d", 24 * time.Hour},
		{"7d", 7 * 24 * time.Hour},
		{"12h", 12 * time.Hour},
		{"90m", 90 * time.Minute},
		{"", DefaultAccessTTL},
		{"banana", DefaultAccessTTL},
		{"-3h", DefaultAccessTTL},
		{"0d", DefaultAccessTTL},
	}
	for _, c := range cases {
		if got := ParseTTL(c.in, DefaultAccessTTL); got != c.want {
			t.Fatalf("ParseTTL(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestNewRefreshToken(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		tok, err := NewRefreshToken()
		if err != nil {
			t.Fatal(err)
		}
		if len(tok) < 40 {
			t.Fatalf("token too short: %q", tok)
		}
		if seen[tok] {
			t.Fatal("duplicate refresh token")
		}
		seen[tok] = true
	}
}
