package routes

import (
	"github.com/gin-gonic/gin"
	notificationControllers "github.com/junaidrashid-git/storefront-api/controllers/notification"
	orderControllers "github.com/junaidrashid-git/storefront-api/controllers/order"
	reviewControllers "github.com/junaidrashid-git/storefront-api/controllers/review"
	userControllers "github.com/junaidrashid-git/storefront-api/controllers/user"
	wishlistControllers "github.com/junaidrashid-git/storefront-api/controllers/wishlist"
	"github.com/junaidrashid-git/storefront-api/middleware"
)

// SetupUserRoutes registers all "/user/*" endpoints. Requires a signed-in (non-guest) token.
func SetupUserRoutes(r *gin.Engine, d Deps) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken(d.Tokens), middleware.RequireAccount())
	{
		// ──────────────── Profile ────────────────
		userGroup.GET("/profile", userControllers.GetProfile(d.DB))
		userGroup.PUT("/profile", userControllers.UpdateProfile(d.DB))
		userGroup.PUT("/password", userControllers.UpdatePassword(d.DB))

		// ──────────────── Orders ────────────────
		userGroup.GET("/orders", orderControllers.GetMyOrdersHandler(d.DB))

		// ──────────────── Notifications ────────────────
		notifications := userGroup.Group("/notifications")
		{
			notifications.GET("", notificationControllers.GetMyNotifications(d.DB))
			notifications.PATCH("/:id/read", notificationControllers.MarkMyNotificationRead(d.DB))
			notifications.POST("/read-all", notificationControllers.MarkAllMyNotificationsRead(d.DB))
		}

		// ──────────────── Wishlist ────────────────
		wishlist := userGroup.Group("/wishlist")
		{
			wishlist.GET("", wishlistControllers.GetWishlist(d.DB))
			wishlist.POST("/check", wishlistControllers.CheckWishlist(d.DB))
			wishlist.GET("/:product_id", wishlistControllers.IsInWishlist(d.DB))
			wishlist.PUT("/:product_id", wishlistControllers.AddToWishlist(d.DB, d.Hub))
			wishlist.DELETE("/:product_id", wishlistControllers.RemoveFromWishlist(d.DB, d.Hub))
		}

		// ──────────────── Reviews ────────────────
		userGroup.POST("/products/:id/reviews", reviewControllers.CreateReview(d.DB, d.Hub))
	}
}
