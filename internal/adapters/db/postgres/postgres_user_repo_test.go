package postgres

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	authErrors "github.com/sablecraft/studio-admin/internal/auth/errors"
	"github.com/sablecraft/studio-admin/internal/auth/model"
)

func setupDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, r *PostgresUserRepo, email string) model.User {
	t.Helper()
	u := model.User{ID: uuid.New(), Email: email, PasswordHash: "h", Role: model.RoleUser}
	if _, err := r.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return u
}

func TestPostgresUserRepo_Lookups(t *testing.T) {
	r := NewPostgresUserRepo(setupDB(t))
	ctx := context.Background()
	u := seedUser(t, r, "e@e.com")

	got, err := r.GetUserByEmail(ctx, u.Email)
	if err != nil || got.ID != u.ID {
		t.Fatalf("by email: %v", err)
	}
	got, err = r.GetUserByID(ctx, u.ID)
	if err != nil || got.Email != u.Email {
		t.Fatalf("by id: %v", err)
	}
	if _, err := r.GetUserByEmail(ctx, "nope@e.com"); !authErrors.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := r.GetUserByID(ctx, uuid.New()); !authErrors.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestPostgresUserRepo_DuplicateEmail(t *testing.T) {
	r := NewPostgresUserRepo(setupDB(t))
	seedUser(t, r, "dup@e.com")
	_, err := r.CreateUser(context.Background(), model.User{ID: uuid.New(), Email: "dup@e.com", PasswordHash: "h"})
	if !authErrors.IsAlreadyExists(err) {
		t.Fatalf("expected already exists, got %v", err)
	}
}

func TestPostgresUserRepo_RefreshTokenLifecycle(t *testing.T) {
	r := NewPostgresUserRepo(setupDB(t))
	ctx := context.Background()
	u := seedUser(t, r, "e@e.com")

	tok := "refresh-1"
	if err := r.SetRefreshToken(ctx, u.ID, &tok); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := r.GetUserByRefreshToken(ctx, tok)
	if err != nil || got.ID != u.ID {
		t.Fatalf("by refresh token: %v", err)
	}

	if err := r.RotateRefreshToken(ctx, "refresh-1", "refresh-2"); err != nil {
		t.Fatalf("rotate: %v", err)
	}
	// old value no longer resolves, new one does
	if _, err := r.GetUserByRefreshToken(ctx, "refresh-1"); !authErrors.IsNotFound(err) {
		t.Fatalf("stale token still resolves: %v", err)
	}
	if _, err := r.GetUserByRefreshToken(ctx, "refresh-2"); err != nil {
		t.Fatalf("rotated token missing: %v", err)
	}

	// second rotation from the stale value loses the CAS
	if err := r.RotateRefreshToken(ctx, "refresh-1", "refresh-3"); !authErrors.IsInvalidToken(err) {
		t.Fatalf("expected invalid token, got %v", err)
	}

	// logout clears
	if err := r.SetRefreshToken(ctx, u.ID, nil); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := r.GetUserByRefreshToken(ctx, "refresh-2"); !authErrors.IsNotFound(err) {
		t.Fatalf("cleared token still resolves: %v", err)
	}
}

func TestPostgresUserRepo_SetRefreshTokenUnknownUser(t *testing.T) {
	r := NewPostgresUserRepo(setupDB(t))
	tok := "x"
	if err := r.SetRefreshToken(context.Background(), uuid.New(), &tok); !authErrors.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
