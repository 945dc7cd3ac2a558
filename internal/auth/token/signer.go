package token

import (
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	authErrors "github.com/sablecraft/studio-admin/internal/auth/errors"
)

const (
	DefaultAccessTTL  = 24 * time.Hour
	DefaultRefreshTTL = 7 * 24 * time.Hour
)

// Claims is the session token payload: identity plus the registered
// issued-at/expires-at pair.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (c Claims) UserID() (uuid.UUID, error) {
	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return uuid.Nil, authErrors.ErrInvalidToken
	}
	return id, nil
}

type hmacSigner struct {
	secret    []byte
	accessTTL time.Duration
}

// NewSigner builds an HS256 signer. The secret is mandatory: refusing to
// start without one is deliberate, a compiled-in fallback would silently
// undermine every token the service ever issues.
func NewSigner(secret string, accessTTL time.Duration) (Signer, error) {
	if secret == "" {
		return nil, authErrors.NewInvalidArgument("token: signing secret is required")
	}
	if accessTTL <= 0 {
		accessTTL = DefaultAccessTTL
	}
	return &hmacSigner{secret: []byte(secret), accessTTL: accessTTL}, nil
}

func (s *hmacSigner) Sign(userID uuid.UUID, email, role string) (string, time.Time, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
		Email: email,
		Role:  role,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, authErrors.WrapIssuance(err, "sign session token")
	}
	return signed, claims.ExpiresAt.Time, nil
}

func (s *hmacSigner) Verify(raw string) (Claims, error) {
	parsed, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, authErrors.ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return Claims{}, authErrors.ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return Claims{}, authErrors.ErrInvalidToken
	}
	return *claims, nil
}

// ParseTTL turns a duration string into a time.Duration. On top of the
// stdlib forms ("12h", "30m") it accepts a day suffix ("1d", "7d").
// Unrecognized input falls back to def without error.
func ParseTTL(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	if strings.HasSuffix(s, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil || days <= 0 {
			return def
		}
		return time.Duration(days) * 24 * time.Hour
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
