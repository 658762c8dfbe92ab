package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront-api/auth"
)

// SetupAuthRoutes registers all "/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, d Deps) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", auth.Register(d.DB, d.Tokens, d.Admins))
		authGroup.POST("/login", auth.Login(d.DB, d.Tokens, d.Admins))
		authGroup.POST("/google", auth.GoogleLogin(d.DB, d.Tokens, d.Verifier, d.Admins))
		authGroup.POST("/guest", auth.CreateGuestUser(d.DB, d.Tokens))
		authGroup.POST("/logout", auth.Logout())

		// outside the admin gate so the login page can reach it
		authGroup.POST("/admin/login", auth.AdminLogin(d.DB, d.Tokens, d.Admins))
	}
}
