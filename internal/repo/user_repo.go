package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/sablecraft/studio-admin/internal/auth/model"
)

// UserRepo is the credential store adapter: unique-key lookups and the
// refresh-token rotation writes against the user entity.
type UserRepo interface {
	CreateUser(ctx context.Context, u model.User) (uuid.UUID, error)

	GetUserByEmail(ctx context.Context, email string) (model.User, error)

	GetUserByID(ctx context.Context, id uuid.UUID) (model.User, error)

	GetUserByRefreshToken(ctx context.Context, token string) (model.User, error)

	// SetRefreshToken overwrites the stored refresh token unconditionally.
	// A nil token clears it (logout).
	SetRefreshToken(ctx context.Context, id uuid.UUID, token *string) error

	// RotateRefreshToken replaces current with next only if current is
	// still the stored value. Returns ErrInvalidToken when the value was
	// already rotated, which closes the concurrent double-refresh race.
	RotateRefreshToken(ctx context.Context, current, next string) error
}
