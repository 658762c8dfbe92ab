package productcontroller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront-api/models"
	"gorm.io/gorm"
)

var productSorts = map[string]string{
	"price_asc":  "price ASC",
	"price_desc": "price DESC",
	"name":       "name ASC",
	"name_desc":  "name DESC",
	"newest":     "created_at DESC",
	"rating":     "rating DESC",
}

// GET /products
// ?category=<name|all>&search=&min_price=&max_price=&sort=price_asc|price_desc|name|name_desc|newest|rating&limit=
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Product{})

		if category := strings.TrimSpace(c.Query("category")); category != "" && !strings.EqualFold(category, "all") {
			query = query.Where("LOWER(category) = ?", strings.ToLower(category))
		}

		if search := strings.TrimSpace(c.Query("search")); search != "" {
			query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
		}

		if minPriceStr := c.Query("min_price"); minPriceStr != "" {
			mp, err := strconv.ParseFloat(minPriceStr, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid min_price"})
				return
			}
			query = query.Where("price >= ?", mp)
		}
		if maxPriceStr := c.Query("max_price"); maxPriceStr != "" {
			mp, err := strconv.ParseFloat(maxPriceStr, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid max_price"})
				return
			}
			query = query.Where("price <= ?", mp)
		}

		order, ok := productSorts[c.DefaultQuery("sort", "price_asc")]
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sort"})
			return
		}
		query = query.Order(order).Order("id ASC")

		if limitStr := c.Query("limit"); limitStr != "" {
			limit, err := strconv.Atoi(limitStr)
			if err != nil || limit < 1 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
				return
			}
			query = query.Limit(limit)
		}

		products := []models.Product{}
		if err := query.Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

// GET /products/categories
// Distinct category names that currently have products, for the catalog filter.
func GetProductCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		names := []string{}
		if err := db.Model(&models.Product{}).
			Where("category <> ''").
			Distinct("category").
			Order("category ASC").
			Pluck("category", &names).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
			return
		}
		c.JSON(http.StatusOK, names)
	}
}
