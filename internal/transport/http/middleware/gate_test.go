package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/sablecraft/studio-admin/internal/auth/model"
	"github.com/sablecraft/studio-admin/internal/auth/token"
)

func newGateRouter(t *testing.T, cfg GateConfig) (*gin.Engine, token.Signer, *int) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	signer, err := token.NewSigner("gate-test-secret", time.Minute)
	require.NoError(t, err)

	hits := 0
	r := gin.New()
	r.Use(AccessGate(cfg, signer))
	handler := func(c *gin.Context) {
		hits++
		c.Status(http.StatusOK)
	}
	r.GET("/public", handler)
	r.GET("/api/posts", handler)
	r.GET("/api/admin/users", handler)

	return r, signer, &hits
}

func get(r *gin.Engine, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, signer token.Signer, role string) *http.Cookie {
	t.Helper()
	raw, _, err := signer.Sign(uuid.New(), "u@e.com", role)
	require.NoError(t, err)
	return &http.Cookie{Name: accessCookie, Value: raw}
}

func defaultCfg() GateConfig {
	return GateConfig{
		Enabled:           true,
		ProtectedPrefixes: []string{"/api"},
		AdminPrefixes:     []string{"/api/admin"},
	}
}

func TestGate_PassThroughUnprotected(t *testing.T) {
	r, _, hits := newGateRouter(t, defaultCfg())
	w := get(r, "/public")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, *hits)
}

func TestGate_RejectsMissingCookie(t *testing.T) {
	r, _, hits := newGateRouter(t, defaultCfg())
	w := get(r, "/api/posts")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, 0, *hits, "downstream handler must not run")
}

func TestGate_RejectsInvalidToken(t *testing.T) {
	r, _, hits := newGateRouter(t, defaultCfg())
	w := get(r, "/api/posts", &http.Cookie{Name: accessCookie, Value: "tampered"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, 0, *hits)
}

func TestGate_ForwardsValidToken(t *testing.T) {
	r, signer, hits := newGateRouter(t, defaultCfg())
	w := get(r, "/api/posts", sessionCookie(t, signer, model.RoleUser))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, *hits)
}

func TestGate_RoleEnforcement(t *testing.T) {
	r, signer, hits := newGateRouter(t, defaultCfg())

	w := get(r, "/api/admin/users", sessionCookie(t, signer, model.RoleUser))
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Equal(t, 0, *hits)

	w = get(r, "/api/admin/users", sessionCookie(t, signer, model.RoleAdmin))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, *hits)
}

func TestGate_DisabledBypassesEverything(t *testing.T) {
	cfg := defaultCfg()
	cfg.Enabled = false
	r, _, hits := newGateRouter(t, cfg)

	w := get(r, "/api/admin/users")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, *hits)
}
