package productcontroller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront-api/models"
	"gorm.io/gorm"
)

const relatedLimit = 4

func productIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return 0, false
	}
	return uint(id), true
}

// FindProduct loads a product or writes the 404/500 response itself.
func FindProduct(c *gin.Context, db *gorm.DB, id uint) (models.Product, bool) {
	var product models.Product
	if err := db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
		}
		return models.Product{}, false
	}
	return product, true
}

// GET /products/:id
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := productIDParam(c)
		if !ok {
			return
		}
		product, ok := FindProduct(c, db, id)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// GET /products/:id/related
// Same category, never the product itself.
func GetRelatedProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := productIDParam(c)
		if !ok {
			return
		}
		product, ok := FindProduct(c, db, id)
		if !ok {
			return
		}

		related := []models.Product{}
		if product.Category != "" {
			if err := db.Where("category = ? AND id <> ?", product.Category, product.ID).
				Order("created_at DESC").
				Limit(relatedLimit).
				Find(&related).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch related products"})
				return
			}
		}
		c.JSON(http.StatusOK, related)
	}
}
