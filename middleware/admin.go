package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront-api/auth"
)

// RequireAdmin guards the admin console. Signed-out callers are sent to the
// admin login page; signed-in callers outside the allow-list go back home.
func RequireAdmin(tokens *auth.Tokens, admins auth.AdminList) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing", "redirect": "/admin-login"})
			return
		}

		id, err := tokens.Parse(raw)
		if err != nil || id.Guest() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token", "redirect": "/admin-login"})
			return
		}

		if !admins.Contains(id.Email) {
			slog.Warn("admin route refused", "user_id", id.UserID, "path", c.FullPath())
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": auth.Message(auth.ErrNotAdmin), "redirect": "/"})
			return
		}

		setIdentity(c, id)
		c.Next()
	}
}
