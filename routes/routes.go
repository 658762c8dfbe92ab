package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront-api/auth"
	"github.com/junaidrashid-git/storefront-api/notifier"
	"github.com/junaidrashid-git/storefront-api/realtime"
	"gorm.io/gorm"
)

const sessionName = "storefront_session"

// Deps is everything the route groups need.
type Deps struct {
	DB            *gorm.DB
	Hub           *realtime.Hub
	Tokens        *auth.Tokens
	Verifier      auth.Verifier
	Notifier      *notifier.Notifier
	Admins        auth.AdminList
	SessionSecret string
	CORSOrigins   []string
	Secure        bool
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		// any origin may call the API, but never with the session cookie
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

// SetupRoutes is the single entry-point that wires up every route group.
func SetupRoutes(r *gin.Engine, d Deps) {
	r.Use(cors.New(corsConfig(d.CORSOrigins)))

	store := cookie.NewStore([]byte(d.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int((30 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		Secure:   d.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, store))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public auth routes (no middleware)
	SetupAuthRoutes(r, d)

	// Catalog, reviews, testimonials and preferences
	SetupPublicRoutes(r, d)

	// Cart and checkout (user or guest token)
	SetupCartRoutes(r, d)

	// Signed-in user routes
	SetupUserRoutes(r, d)

	// Admin console (allow-listed email)
	SetupAdminRoutes(r, d)

	// Live subscriptions
	SetupRealtimeRoutes(r, d)
}
