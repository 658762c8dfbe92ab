package productcontroller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProductUpdateInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	Image       *string  `json:"image"`
	Category    *string  `json:"category"`
	Rating      *int     `json:"rating" binding:"omitempty,min=1,max=5"`
	Stock       *int     `json:"stock" binding:"omitempty,gte=0"`
}

// PUT /admin/products/:id
// Only the fields present in the body change. Orders already placed keep their own copy of the price.
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := productIDParam(c)
		if !ok {
			return
		}
		product, ok := FindProduct(c, db, id)
		if !ok {
			return
		}

		var input ProductUpdateInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		updates := make(map[string]interface{})
		if input.Name != nil {
			name := strings.TrimSpace(*input.Name)
			if name == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "name must not be empty"})
				return
			}
			updates["name"] = name
		}
		if input.Description != nil {
			updates["description"] = *input.Description
		}
		if input.Price != nil {
			updates["price"] = *input.Price
		}
		if input.Image != nil {
			updates["image"] = *input.Image
		}
		if input.Category != nil {
			category, err := resolveCategory(db, *input.Category)
			if err != nil {
				categoryError(c, err)
				return
			}
			updates["category"] = category
		}
		if input.Rating != nil {
			updates["rating"] = *input.Rating
		}
		if input.Stock != nil {
			updates["stock"] = *input.Stock
		}

		if len(updates) > 0 {
			if err := db.Model(&product).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
				return
			}
		}

		if err := db.First(&product, product.ID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reload product"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
