package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	validate "github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	myPostgresRepo "github.com/sablecraft/studio-admin/internal/adapters/db/postgres"
	"github.com/sablecraft/studio-admin/internal/auth/password"
	appsvc "github.com/sablecraft/studio-admin/internal/auth/service"
	"github.com/sablecraft/studio-admin/internal/auth/token"
	"github.com/sablecraft/studio-admin/internal/config"
	lg "github.com/sablecraft/studio-admin/internal/infra/log"
	"github.com/sablecraft/studio-admin/internal/infra/server"
	"github.com/sablecraft/studio-admin/internal/migrate"
	myHttp "github.com/sablecraft/studio-admin/internal/transport/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		lg.Must("", false).Fatal("failed to load config", zap.Error(err))
	}

	zapLog := lg.Must(os.Getenv("LOG_LEVEL"), cfg.IsProduction())
	defer zapLog.Sync()

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		zapLog.Fatal("failed to connect to database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		zapLog.Fatal("db handle", zap.Error(err))
	}
	defer sqlDB.Close()
	if err := migrate.Up(sqlDB); err != nil {
		zapLog.Fatal("run migrations", zap.Error(err))
	}

	signer, err := token.NewSigner(cfg.JWTSecret, cfg.AccessTokenTTL)
	if err != nil {
		zapLog.Fatal("failed to init token signer", zap.Error(err))
	}

	userRepo := myPostgresRepo.NewPostgresUserRepo(db)
	hasher := password.NewHasher(cfg.PasswordPepper)
	svc := appsvc.New(userRepo, signer, hasher, appsvc.TTLConfig{
		Access:  cfg.AccessTokenTTL,
		Refresh: cfg.RefreshTokenTTL,
	}, validate.New())

	rootCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := svc.EnsureAdmin(rootCtx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		zapLog.Fatal("seed admin account", zap.Error(err))
	}

	handler := myHttp.NewHandler(svc, cfg, zapLog)
	router := myHttp.NewRouter(handler, signer, cfg, zapLog)

	if !cfg.IsGateEnabled() {
		zapLog.Warn("access gate disabled, development only")
	}

	g, ctx := errgroup.WithContext(rootCtx)
	g.Go(func() error {
		return server.Run(ctx, cfg.HTTPAddress, router, zapLog)
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
		zapLog.Info("shutdown signal received")
	case <-ctx.Done():
	}
	cancel()

	if err := g.Wait(); err != nil {
		zapLog.Error("server terminated", zap.Error(err))
	}
}
