package service

import (
	"context"
	"errors"
	"time"

	validate "github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/sablecraft/studio-admin/internal/auth/dto"
	authErrors "github.com/sablecraft/studio-admin/internal/auth/errors"
	"github.com/sablecraft/studio-admin/internal/auth/model"
	"github.com/sablecraft/studio-admin/internal/auth/password"
	"github.com/sablecraft/studio-admin/internal/auth/token"
	"github.com/sablecraft/studio-admin/internal/repo"
)

// TTLConfig carries the cookie lifetimes handed back with each token pair.
type TTLConfig struct {
	Access  time.Duration
	Refresh time.Duration
}

type authService struct {
	users  repo.UserRepo
	signer token.Signer
	hasher *password.Hasher
	ttl    TTLConfig
	v      *validate.Validate
}

// Login verifies credentials and commits a fresh token pair. "No such
// user" and "wrong password" are indistinguishable to the caller.
func (a *authService) Login(ctx context.Context, body dto.LoginDTO) (model.User, model.TokenPair, error) {
	if err := a.v.Struct(body); err != nil {
		return model.User{}, model.TokenPair{}, authErrors.NewInvalidArgument("email and password are required")
	}

	user, err := a.users.GetUserByEmail(ctx, body.Email)
	if errors.Is(err, authErrors.ErrNotFound) {
		return model.User{}, model.TokenPair{}, authErrors.ErrInvalidCredentials
	}
	if err != nil {
		return model.User{}, model.TokenPair{}, authErrors.WrapInternal(err, "Login")
	}

	ok, err := a.hasher.Verify(body.Password, user.PasswordHash)
	if err != nil || !ok {
		return model.User{}, model.TokenPair{}, authErrors.ErrInvalidCredentials
	}

	// Sign before persisting: a stored refresh token must never exist
	// without a matching issued session token.
	pair, err := a.issuePair(user)
	if err != nil {
		return model.User{}, model.TokenPair{}, err
	}

	if err := a.users.SetRefreshToken(ctx, user.ID, &pair.RefreshToken); err != nil {
		return model.User{}, model.TokenPair{}, authErrors.WrapInternal(err, "Login")
	}

	return user, pair, nil
}

// Me resolves the access token to the current public user.
func (a *authService) Me(ctx context.Context, accessToken string) (model.User, error) {
	if accessToken == "" {
		return model.User{}, authErrors.ErrInvalidToken
	}

	claims, err := a.signer.Verify(accessToken)
	if err != nil {
		return model.User{}, authErrors.ErrInvalidToken
	}
	uid, err := claims.UserID()
	if err != nil {
		return model.User{}, authErrors.ErrInvalidToken
	}

	user, err := a.users.GetUserByID(ctx, uid)
	if errors.Is(err, authErrors.ErrNotFound) {
		return model.User{}, authErrors.ErrNotFound
	}
	if err != nil {
		return model.User{}, authErrors.WrapInternal(err, "Me")
	}
	return user, nil
}

// Refresh exchanges a stored refresh token for a new pair, rotating the
// stored value. The rotation write is a compare-and-swap keyed on the
// presented value, so a concurrently rotated token loses with 401.
func (a *authService) Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error) {
	if refreshToken == "" {
		return model.TokenPair{}, authErrors.NewInvalidArgument("refresh token is required")
	}

	user, err := a.users.GetUserByRefreshToken(ctx, refreshToken)
	if errors.Is(err, authErrors.ErrNotFound) {
		return model.TokenPair{}, authErrors.ErrInvalidToken
	}
	if err != nil {
		return model.TokenPair{}, authErrors.WrapInternal(err, "Refresh")
	}

	pair, err := a.issuePair(user)
	if err != nil {
		return model.TokenPair{}, err
	}

	if err := a.users.RotateRefreshToken(ctx, refreshToken, pair.RefreshToken); err != nil {
		if authErrors.IsInvalidToken(err) {
			return model.TokenPair{}, authErrors.ErrInvalidToken
		}
		return model.TokenPair{}, authErrors.WrapInternal(err, "Refresh")
	}

	return pair, nil
}

// Logout clears the stored refresh token for whoever the access token
// identifies. Every failure is swallowed: the user-visible contract is
// "you are now logged out" regardless of token validity.
func (a *authService) Logout(ctx context.Context, accessToken string) {
	if accessToken == "" {
		return
	}
	claims, err := a.signer.Verify(accessToken)
	if err != nil {
		return
	}
	uid, err := claims.UserID()
	if err != nil {
		return
	}
	// ignored: best-effort cleanup, cookies are cleared either way
	_ = a.users.SetRefreshToken(ctx, uid, nil)
}

func (a *authService) CreateUser(ctx context.Context, body dto.CreateUserDTO) (model.User, error) {
	if err := a.v.Struct(body); err != nil {
		return model.User{}, authErrors.NewInvalidArgument(err.Error())
	}

	hash, err := a.hasher.Hash(body.Password)
	if err != nil {
		return model.User{}, authErrors.WrapInternal(err, "CreateUser")
	}

	user := model.User{
		ID:           uuid.New(),
		Email:        body.Email,
		Name:         body.Name,
		PasswordHash: hash,
		Role:         body.Role,
	}
	if _, err := a.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, authErrors.ErrAlreadyExists) {
			return model.User{}, authErrors.ErrAlreadyExists
		}
		return model.User{}, authErrors.WrapInternal(err, "CreateUser")
	}
	return user, nil
}

// EnsureAdmin seeds an admin account on first start. Safe to call on every
// boot: an existing account with the email wins.
func (a *authService) EnsureAdmin(ctx context.Context, email, pass string) error {
	if email == "" || pass == "" {
		return nil
	}
	if _, err := a.users.GetUserByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, authErrors.ErrNotFound) {
		return authErrors.WrapInternal(err, "EnsureAdmin")
	}

	_, err := a.CreateUser(ctx, dto.CreateUserDTO{
		Email:    email,
		Name:     "Administrator",
		Password: pass,
		Role:     model.RoleAdmin,
	})
	if errors.Is(err, authErrors.ErrAlreadyExists) {
		return nil
	}
	return err
}

func (a *authService) issuePair(user model.User) (model.TokenPair, error) {
	accessToken, _, err := a.signer.Sign(user.ID, user.Email, user.Role)
	if err != nil {
		return model.TokenPair{}, err
	}
	refreshToken, err := token.NewRefreshToken()
	if err != nil {
		return model.TokenPair{}, err
	}
	return model.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		AccessTTL:    a.ttl.Access,
		RefreshTTL:   a.ttl.Refresh,
	}, nil
}
