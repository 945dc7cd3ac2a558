package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sablecraft/studio-admin/internal/auth/dto"
	authErrors "github.com/sablecraft/studio-admin/internal/auth/errors"
	"github.com/sablecraft/studio-admin/internal/auth/model"
	"github.com/sablecraft/studio-admin/internal/auth/service"
	"github.com/sablecraft/studio-admin/internal/config"
)

const (
	AccessCookie  = "access_token"
	RefreshCookie = "refresh_token"

	// refresh token only travels to the auth endpoint group
	refreshCookiePath = "/auth"
)

type Handler struct {
	svc service.AuthService
	cfg *config.Config
	log *zap.Logger
}

func NewHandler(svc service.AuthService, cfg *config.Config, log *zap.Logger) *Handler {
	return &Handler{svc: svc, cfg: cfg, log: log}
}

func (h *Handler) Login(c *gin.Context) {
	var body dto.LoginDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "email and password are required"})
		return
	}

	user, pair, err := h.svc.Login(c.Request.Context(), body)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.issueTokens(c, pair)
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user.Public()})
}

// Logout always reports success. Whatever state the tokens are in, the
// client walks away with both cookies expired.
func (h *Handler) Logout(c *gin.Context) {
	if accessToken, err := c.Cookie(AccessCookie); err == nil {
		h.svc.Logout(c.Request.Context(), accessToken)
	}

	h.clearTokens(c)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "logged out"})
}

func (h *Handler) Me(c *gin.Context) {
	accessToken, err := c.Cookie(AccessCookie)
	if err != nil || accessToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "unauthenticated"})
		return
	}

	user, err := h.svc.Me(c.Request.Context(), accessToken)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user.Public()})
}

func (h *Handler) Refresh(c *gin.Context) {
	refreshToken, err := c.Cookie(RefreshCookie)
	if err != nil || refreshToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "missing refresh token"})
		return
	}

	pair, err := h.svc.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.issueTokens(c, pair)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "token refreshed"})
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().Unix()})
}

func (h *Handler) issueTokens(c *gin.Context, pair model.TokenPair) {
	secure := h.cfg.IsProduction()

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(
		AccessCookie,
		pair.AccessToken,
		int(pair.AccessTTL.Seconds()),
		"/",
		h.cfg.CookieDomain,
		secure,
		true, // httpOnly
	)
	c.SetCookie(
		RefreshCookie,
		pair.RefreshToken,
		int(pair.RefreshTTL.Seconds()),
		refreshCookiePath,
		h.cfg.CookieDomain,
		secure,
		true,
	)
}

func (h *Handler) clearTokens(c *gin.Context) {
	secure := h.cfg.IsProduction()

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(AccessCookie, "", -1, "/", h.cfg.CookieDomain, secure, true)
	c.SetCookie(RefreshCookie, "", -1, refreshCookiePath, h.cfg.CookieDomain, secure, true)
}

// handleError maps the error taxonomy onto HTTP statuses. Internal detail
// never reaches the response body.
func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case authErrors.IsInvalidArgument(err):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
	case authErrors.IsInvalidCredentials(err):
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid credentials"})
	case authErrors.IsInvalidToken(err):
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid token"})
	case authErrors.IsForbidden(err):
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "forbidden"})
	case authErrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "not found"})
	case authErrors.IsTokenIssuance(err):
		h.log.Error("token issuance failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "token issuance failed"})
	default:
		h.log.Error("unexpected error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal server error"})
	}
}
