package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/sablecraft/studio-admin/internal/auth/token"
	"github.com/sablecraft/studio-admin/internal/config"
	"github.com/sablecraft/studio-admin/internal/transport/http/middleware"
)

// NewRouter assembles the gin engine: recovery, logging, metrics, CORS,
// the access gate, and the auth endpoint group.
func NewRouter(h *Handler, verifier token.Signer, cfg *config.Config, log *zap.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.Metrics())

	if len(cfg.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Requested-With"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: cfg.AllowCredentials,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.Use(middleware.AccessGate(middleware.GateConfig{
		Enabled:           cfg.IsGateEnabled(),
		ProtectedPrefixes: cfg.ProtectedPrefixes,
		AdminPrefixes:     cfg.AdminPrefixes,
	}, verifier))

	auth := router.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.GET("/logout", h.Logout)
		auth.GET("/me", h.Me)
		auth.GET("/refresh", h.Refresh)
	}

	router.GET("/health", h.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
