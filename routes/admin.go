package routes

import (
	"github.com/gin-gonic/gin"
	adminController "github.com/junaidrashid-git/storefront-api/controllers/admin"
	cartControllers "github.com/junaidrashid-git/storefront-api/controllers/cart"
	notificationControllers "github.com/junaidrashid-git/storefront-api/controllers/notification"
	orderControllers "github.com/junaidrashid-git/storefront-api/controllers/order"
	productcontroller "github.com/junaidrashid-git/storefront-api/controllers/product"
	testimonialControllers "github.com/junaidrashid-git/storefront-api/controllers/testimonial"
	userControllers "github.com/junaidrashid-git/storefront-api/controllers/user"
	"github.com/junaidrashid-git/storefront-api/middleware"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Requires an allow-listed admin token.
func SetupAdminRoutes(r *gin.Engine, d Deps) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.RequireAdmin(d.Tokens, d.Admins))
	{
		// ─────────── Dashboard & Orders ───────────
		adminGroup.GET("/dashboard", orderControllers.DashboardHandler(d.DB))
		orders := adminGroup.Group("/orders")
		{
			orders.GET("", orderControllers.GetAllOrdersHandler(d.DB))
			orders.GET("/:orderID", orderControllers.GetOrderByIDHandler(d.DB))
			orders.PUT("/:orderID", orderControllers.UpdateOrderHandler(d.DB, d.Hub, d.Notifier))
			orders.PUT("/:orderID/status", orderControllers.UpdateOrderStatusHandler(d.DB, d.Hub, d.Notifier))
			orders.DELETE("/:orderID", orderControllers.DeleteOrderHandler(d.DB, d.Hub))
		}

		// ─────────── Users & Settings ───────────
		adminGroup.GET("/admins", adminController.GetAllAdmins(d.DB, d.Admins))
		adminGroup.GET("/users", userControllers.GetAllUsers(d.DB))
		adminGroup.GET("/settings", userControllers.GetProfile(d.DB))
		adminGroup.PUT("/settings", userControllers.UpdateProfile(d.DB))
		adminGroup.PUT("/settings/password", userControllers.UpdatePassword(d.DB))
		adminGroup.GET("/user-cart/:user_id", cartControllers.GetAdminUserCart(d.DB))

		// ─────────── Notifications ───────────
		adminGroup.GET("/notifications", notificationControllers.GetAllNotifications(d.DB))
		adminGroup.PATCH("/notifications/:id/read", notificationControllers.MarkNotificationRead(d.DB))

		// ─────────── Product Management ───────────
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productcontroller.CreateProduct(d.DB))
			productAdmin.PUT("/:id", productcontroller.UpdateProduct(d.DB))
			productAdmin.GET("", productcontroller.GetProducts(d.DB))
			productAdmin.DELETE("/:id", productcontroller.DeleteProduct(d.DB))
			productAdmin.POST("/import-excel", productcontroller.ImportProductsFromExcel(d.DB))
			productAdmin.GET("/export-excel", productcontroller.ExportProductsToExcel(d.DB))
		}

		// ─────────── Category Management ───────────
		categoryAdmin := adminGroup.Group("/categories")
		{
			categoryAdmin.POST("", productcontroller.CreateCategory(d.DB))
			categoryAdmin.PUT("/:id", productcontroller.UpdateCategory(d.DB))
			categoryAdmin.GET("", productcontroller.GetAllCategories(d.DB))
			categoryAdmin.DELETE("/:id", productcontroller.DeleteCategory(d.DB))
		}

		// ─────────── Testimonials ───────────
		adminGroup.POST("/testimonials", testimonialControllers.CreateTestimonial(d.DB))
		adminGroup.DELETE("/testimonials/:id", testimonialControllers.DeleteTestimonial(d.DB))
	}
}
