package service

import (
	"context"

	validate "github.com/go-playground/validator/v10"

	"github.com/sablecraft/studio-admin/internal/auth/dto"
	"github.com/sablecraft/studio-admin/internal/auth/model"
	"github.com/sablecraft/studio-admin/internal/auth/password"
	"github.com/sablecraft/studio-admin/internal/auth/token"
	"github.com/sablecraft/studio-admin/internal/repo"
)

// AuthService is the session lifecycle: credential verification, token
// issuance, rotation and the best-effort logout clear.
type AuthService interface {
	Login(ctx context.Context, dto dto.LoginDTO) (model.User, model.TokenPair, error)
	Me(ctx context.Context, accessToken string) (model.User, error)
	Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error)
	Logout(ctx context.Context, accessToken string)
	CreateUser(ctx context.Context, dto dto.CreateUserDTO) (model.User, error)
	EnsureAdmin(ctx context.Context, email, pass string) error
}

func New(users repo.UserRepo, signer token.Signer, hasher *password.Hasher, ttl TTLConfig, v *validate.Validate) AuthService {
	return &authService{
		users:  users,
		signer: signer,
		hasher: hasher,
		ttl:    ttl,
		v:      v,
	}
}
