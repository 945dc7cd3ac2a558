package token

import (
	"time"

	"github.com/google/uuid"
)

// Signer issues and verifies signed session tokens. Verification is
// fail-closed: any malformed, tampered or expired token yields
// ErrInvalidToken, never a partial claims value.
type Signer interface {
	Sign(userID uuid.UUID, email, role string) (token string, expiresAt time.Time, err error)
	Verify(raw string) (Claims, error)
}
