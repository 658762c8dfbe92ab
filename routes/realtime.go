package routes

import (
	"strconv"

	"github.com/gin-gonic/gin"
	notificationControllers "github.com/junaidrashid-git/storefront-api/controllers/notification"
	reviewControllers "github.com/junaidrashid-git/storefront-api/controllers/review"
	wishlistControllers "github.com/junaidrashid-git/storefront-api/controllers/wishlist"
	"github.com/junaidrashid-git/storefront-api/middleware"
	"github.com/junaidrashid-git/storefront-api/models"
	"github.com/junaidrashid-git/storefront-api/realtime"
)

const recentOrders = 50

func callerTopic(topic func(string) string) realtime.TopicFunc {
	return func(c *gin.Context) (string, bool) {
		id, ok := middleware.CurrentIdentity(c)
		if !ok || id.UserID == "" {
			return "", false
		}
		return topic(id.UserID), true
	}
}

// SetupRealtimeRoutes registers the websocket endpoints. Browsers cannot set
// headers on a websocket handshake, so tokens travel as ?token=.
func SetupRealtimeRoutes(r *gin.Engine, d Deps) {
	ws := r.Group("/ws")

	// admin dashboard feed
	ws.GET("/orders", middleware.RequireAdmin(d.Tokens, d.Admins), realtime.Handler(d.Hub,
		func(*gin.Context) (string, bool) { return realtime.OrdersTopic, true },
		func(*gin.Context) (interface{}, error) {
			orders := []models.Order{}
			err := d.DB.Preload("Items").Order("created_at DESC").Limit(recentOrders).Find(&orders).Error
			return orders, err
		},
	))

	ws.GET("/notifications", middleware.ValidateToken(d.Tokens), middleware.RequireAccount(), realtime.Handler(d.Hub,
		callerTopic(realtime.NotificationsTopic),
		func(c *gin.Context) (interface{}, error) {
			id, _ := middleware.CurrentIdentity(c)
			notes, unread, err := notificationControllers.ListForUser(d.DB, id.UserID)
			return gin.H{"notifications": notes, "unread_count": unread}, err
		},
	))

	ws.GET("/wishlist", middleware.ValidateToken(d.Tokens), middleware.RequireAccount(), realtime.Handler(d.Hub,
		callerTopic(realtime.WishlistTopic),
		func(c *gin.Context) (interface{}, error) {
			id, _ := middleware.CurrentIdentity(c)
			return wishlistControllers.List(d.DB, id.UserID)
		},
	))

	ws.GET("/products/:id/reviews", realtime.Handler(d.Hub,
		func(c *gin.Context) (string, bool) {
			id, err := strconv.ParseUint(c.Param("id"), 10, 64)
			if err != nil || id == 0 {
				return "", false
			}
			return realtime.ReviewsTopic(uint(id)), true
		},
		func(c *gin.Context) (interface{}, error) {
			id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
			return reviewControllers.Summarize(d.DB, uint(id))
		},
	))
}
