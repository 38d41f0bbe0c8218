package middleware

import (
	"net/http"
	"strings"

	"amabackend/internal/services"

	"github.com/gin-gonic/gin"
)

const claimKey = "user_claim"

// Session requires a valid session token on every path except the public
// ones. Unmatched paths fall through to the 404 handler. The decoded claim is
// stored on the context.
func Session(tokens services.Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.FullPath() == "" || isPublicPath(c.Request.URL.Path) || c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}
		raw := strings.TrimSpace(c.GetHeader("Authorization"))
		if len(raw) > 7 && strings.EqualFold(raw[:7], "Bearer ") {
			raw = strings.TrimSpace(raw[7:])
		}
		claim, err := tokens.ParseSession(raw)
		if raw == "" || err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session expired"})
			return
		}
		c.Set(claimKey, claim)
		c.Next()
	}
}

// GetClaim returns the session claim set by Session.
func GetClaim(c *gin.Context) (services.UserClaim, bool) {
	v, ok := c.Get(claimKey)
	if !ok {
		return services.UserClaim{}, false
	}
	claim, ok := v.(services.UserClaim)
	return claim, ok
}

func isPublicPath(path string) bool {
	switch path {
	case "/", "/api/health", "/metrics":
		return true
	}
	return strings.HasPrefix(path, "/api/authorization/")
}
