package token

import (
	"crypto/rand"
	"encoding/base64"

	authErrors "github.com/sablecraft/studio-admin/internal/auth/errors"
)

const refreshTokenBytes = 32

// NewRefreshToken returns a high-entropy opaque string. It carries no
// structure; the only thing the server ever does with it is an exact match
// against the stored value.
func NewRefreshToken() (string, error) {
	buf := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", authErrors.WrapIssuance(err, "generate refresh token")
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
