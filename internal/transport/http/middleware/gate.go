package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sablecraft/studio-admin/internal/auth/model"
	"github.com/sablecraft/studio-admin/internal/auth/token"
)

const accessCookie = "access_token"

// GateConfig is the allow-list of path prefixes requiring a valid session,
// plus the subset that additionally requires the admin role.
type GateConfig struct {
	Enabled           bool
	ProtectedPrefixes []string
	AdminPrefixes     []string
}

// AccessGate rejects requests to protected prefixes that do not carry a
// verifiable session cookie. It never enriches the request with the
// decoded identity: downstream handlers re-verify through the same
// verifier when they need the payload.
func AccessGate(cfg GateConfig, verifier token.Signer) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if !cfg.Enabled || !matchesPrefix(path, cfg.ProtectedPrefixes) {
			c.Next()
			return
		}

		raw, err := c.Cookie(accessCookie)
		if err != nil || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "unauthorized"})
			return
		}

		claims, err := verifier.Verify(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "unauthorized"})
			return
		}

		if matchesPrefix(path, cfg.AdminPrefixes) && claims.Role != model.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "error": "forbidden"})
			return
		}

		c.Next()
	}
}

func matchesPrefix(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if p == "" {
			continue
		}
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
