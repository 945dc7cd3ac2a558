package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"gorm.io/gorm"

	authErrors "github.com/sablecraft/studio-admin/internal/auth/errors"
	"github.com/sablecraft/studio-admin/internal/auth/model"
)

type PostgresUserRepo struct {
	db *gorm.DB
}

func NewPostgresUserRepo(db *gorm.DB) *PostgresUserRepo {
	return &PostgresUserRepo{db: db}
}

func (p *PostgresUserRepo) CreateUser(ctx context.Context, user model.User) (uuid.UUID, error) {
	res := p.db.WithContext(ctx).Create(&user)
	if err := res.Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return uuid.Nil, authErrors.ErrAlreadyExists
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return uuid.Nil, authErrors.ErrAlreadyExists
		}
		return uuid.Nil, authErrors.WrapInternal(err, "CreateUser")
	}
	return user.ID, nil
}

func (p *PostgresUserRepo) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	var u model.User
	res := p.db.WithContext(ctx).Where("email = ?", email).First(&u)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return model.User{}, authErrors.ErrNotFound
	}
	if err := res.Error; err != nil {
		return model.User{}, authErrors.WrapInternal(err, "GetUserByEmail")
	}

	return u, nil
}

func (p *PostgresUserRepo) GetUserByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	var u model.User
	res := p.db.WithContext(ctx).Where("id = ?", id).First(&u)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return model.User{}, authErrors.ErrNotFound
	}
	if err := res.Error; err != nil {
		return model.User{}, authErrors.WrapInternal(err, "GetUserByID")
	}

	return u, nil
}

func (p *PostgresUserRepo) GetUserByRefreshToken(ctx context.Context, token string) (model.User, error) {
	var u model.User
	res := p.db.WithContext(ctx).Where("refresh_token = ?", token).First(&u)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return model.User{}, authErrors.ErrNotFound
	}
	if err := res.Error; err != nil {
		return model.User{}, authErrors.WrapInternal(err, "GetUserByRefreshToken")
	}

	return u, nil
}

func (p *PostgresUserRepo) SetRefreshToken(ctx context.Context, id uuid.UUID, token *string) error {
	res := p.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update("refresh_token", token)
	if err := res.Error; err != nil {
		return authErrors.WrapInternal(err, "SetRefreshToken")
	}
	if res.RowsAffected == 0 {
		return authErrors.ErrNotFound
	}

	return nil
}

// RotateRefreshToken is a compare-and-swap: the write only lands if the
// presented value is still the stored one, so of two concurrent refresh
// calls with the same stale token exactly one wins.
func (p *PostgresUserRepo) RotateRefreshToken(ctx context.Context, current, next string) error {
	res := p.db.WithContext(ctx).
		Model(&model.User{}).
		Where("refresh_token = ?", current).
		Update("refresh_token", next)
	if err := res.Error; err != nil {
		return authErrors.WrapInternal(err, "RotateRefreshToken")
	}
	if res.RowsAffected == 0 {
		return authErrors.ErrInvalidToken
	}

	return nil
}
