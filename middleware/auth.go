package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront-api/auth"
)

const identityKey = "identity"

// bearerToken reads the Authorization header, falling back to ?token= for websocket clients.
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header != "" {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return c.Query("token")
}

func setIdentity(c *gin.Context, id auth.Identity) {
	c.Set(identityKey, id)
	c.Set("user_id", id.UserID)
	c.Set("email", id.Email)
	c.Set("role", id.Role)
}

// CurrentIdentity returns the identity attached by ValidateToken or OptionalToken.
func CurrentIdentity(c *gin.Context) (auth.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return auth.Identity{}, false
	}
	id, ok := v.(auth.Identity)
	return id, ok
}

// ValidateToken requires a valid session token (user or guest).
func ValidateToken(tokens *auth.Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
			return
		}

		id, err := tokens.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		setIdentity(c, id)
		c.Next()
	}
}

// OptionalToken attaches the identity when a valid token is present and never aborts.
func OptionalToken(tokens *auth.Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := bearerToken(c); raw != "" {
			if id, err := tokens.Parse(raw); err == nil {
				setIdentity(c, id)
			}
		}
		c.Next()
	}
}

// RequireAccount rejects guest tokens. Use after ValidateToken.
func RequireAccount() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := CurrentIdentity(c)
		if !ok || id.Guest() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Please sign in first", "redirect": "/login"})
			return
		}
		c.Next()
	}
}
