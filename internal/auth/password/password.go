package password

import (
	"github.com/alexedwards/argon2id"

	authErrors "github.com/sablecraft/studio-admin/internal/auth/errors"
)

// Hasher wraps argon2id with an optional process-wide pepper appended to
// every plaintext before hashing.
type Hasher struct {
	pepper string
}

func NewHasher(pepper string) *Hasher {
	return &Hasher{pepper: pepper}
}

func (h *Hasher) Hash(plaintext string) (string, error) {
	digest, err := argon2id.CreateHash(plaintext+h.pepper, argon2id.DefaultParams)
	if err != nil {
		return "", authErrors.WrapInternal(err, "hash password")
	}
	return digest, nil
}

// Verify reports whether plaintext matches digest. Any error from the
// underlying primitive means "not verified" for the caller.
func (h *Hasher) Verify(plaintext, digest string) (bool, error) {
	ok, err := argon2id.ComparePasswordAndHash(plaintext+h.pepper, digest)
	if err != nil {
		return false, authErrors.WrapInternal(err, "verify password")
	}
	return ok, nil
}
