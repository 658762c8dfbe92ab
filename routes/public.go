package routes

import (
	"github.com/gin-gonic/gin"
	productcontroller "github.com/junaidrashid-git/storefront-api/controllers/product"
	reviewControllers "github.com/junaidrashid-git/storefront-api/controllers/review"
	testimonialControllers "github.com/junaidrashid-git/storefront-api/controllers/testimonial"
	userControllers "github.com/junaidrashid-git/storefront-api/controllers/user"
)

// SetupPublicRoutes registers the storefront pages anyone can browse.
func SetupPublicRoutes(r *gin.Engine, d Deps) {
	products := r.Group("/products")
	{
		products.GET("", productcontroller.GetProducts(d.DB))                     // GET /products?category=&search=&sort=
		products.GET("/categories", productcontroller.GetProductCategories(d.DB)) // GET /products/categories
		products.GET("/:id", productcontroller.GetProductByID(d.DB))              // GET /products/:id
		products.GET("/:id/related", productcontroller.GetRelatedProducts(d.DB))  // GET /products/:id/related
		products.GET("/:id/reviews", reviewControllers.GetProductReviews(d.DB))   // GET /products/:id/reviews
	}

	r.GET("/categories", productcontroller.GetAllCategories(d.DB))
	r.GET("/testimonials", testimonialControllers.GetTestimonials(d.DB))

	prefs := r.Group("/preferences")
	{
		prefs.GET("/theme", userControllers.GetTheme())
		prefs.PUT("/theme", userControllers.SetTheme())
	}
}
