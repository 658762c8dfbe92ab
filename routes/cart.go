package routes

import (
	"github.com/gin-gonic/gin"
	cartControllers "github.com/junaidrashid-git/storefront-api/controllers/cart"
	orderControllers "github.com/junaidrashid-git/storefront-api/controllers/order"
	"github.com/junaidrashid-git/storefront-api/middleware"
)

// SetupCartRoutes registers the cart and checkout. Guests and users both qualify.
func SetupCartRoutes(r *gin.Engine, d Deps) {
	cartGroup := r.Group("/cart")
	cartGroup.Use(middleware.ValidateToken(d.Tokens))
	{
		cartGroup.GET("", cartControllers.GetCart(d.DB))                                        // GET /cart
		cartGroup.DELETE("", cartControllers.ClearCart(d.DB))                                   // DELETE /cart
		cartGroup.POST("/items", cartControllers.AddCartItem(d.DB))                             // POST /cart/items
		cartGroup.PUT("/items/:product_id", cartControllers.SetCartItemQuantity(d.DB))          // PUT /cart/items/:product_id
		cartGroup.PUT("/items/:product_id/set", cartControllers.PutCartItem(d.DB))              // PUT /cart/items/:product_id/set
		cartGroup.POST("/items/:product_id/decrement", cartControllers.DecrementCartItem(d.DB)) // POST /cart/items/:product_id/decrement
		cartGroup.DELETE("/items/:product_id", cartControllers.DeleteCartItem(d.DB))            // DELETE /cart/items/:product_id
	}

	r.POST("/checkout", middleware.ValidateToken(d.Tokens), orderControllers.PlaceOrderHandler(d.DB, d.Hub, d.Notifier))
}
