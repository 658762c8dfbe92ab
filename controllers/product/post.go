package productcontroller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront-api/models"
	"gorm.io/gorm"
)

type ProductInput struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Price       *float64 `json:"price" binding:"required,gte=0"`
	Image       string   `json:"image"`
	Category    string   `json:"category"`
	Rating      int      `json:"rating" binding:"omitempty,min=1,max=5"`
	Stock       int      `json:"stock" binding:"gte=0"`
}

var errUnknownCategory = errors.New("unknown category")

// resolveCategory returns the stored spelling of name, or "" for no category.
func resolveCategory(db *gorm.DB, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", nil
	}
	var category models.Category
	if err := db.Where("LOWER(name) = ?", strings.ToLower(name)).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", errUnknownCategory
		}
		return "", err
	}
	return category.Name, nil
}

func categoryError(c *gin.Context, err error) {
	if errors.Is(err, errUnknownCategory) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
}

// POST /admin/products
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name and price are required: " + err.Error()})
			return
		}

		category, err := resolveCategory(db, input.Category)
		if err != nil {
			categoryError(c, err)
			return
		}

		rating := input.Rating
		if rating == 0 {
			rating = models.DefaultProductRating
		}

		product := models.Product{
			Name:        strings.TrimSpace(input.Name),
			Description: input.Description,
			Price:       *input.Price,
			Image:       input.Image,
			Category:    category,
			Rating:      rating,
			Stock:       input.Stock,
		}
		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		c.JSON(http.StatusCreated, product)
	}
}
