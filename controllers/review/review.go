package reviewControllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront-api/middleware"
	"github.com/junaidrashid-git/storefront-api/models"
	"github.com/junaidrashid-git/storefront-api/realtime"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ReviewInput struct {
	Rating     int    `json:"rating" binding:"required,min=1,max=5"`
	ReviewText string `json:"review_text" binding:"required,max=2000"`
}

// Summary is what product pages render: every review plus the aggregate.
type Summary struct {
	Reviews       []models.Review `json:"reviews"`
	AverageRating float64         `json:"average_rating"`
	Count         int             `json:"count"`
}

func productIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return 0, false
	}
	return uint(id), true
}

// Summarize loads productID's reviews, newest first, and averages their ratings to one decimal.
func Summarize(db *gorm.DB, productID uint) (Summary, error) {
	reviews := []models.Review{}
	if err := db.Where("product_id = ?", productID).Order("created_at DESC").Order("id DESC").Find(&reviews).Error; err != nil {
		return Summary{}, err
	}

	s := Summary{Reviews: reviews, Count: len(reviews)}
	if s.Count > 0 {
		sum := 0
		for _, r := range reviews {
			sum += r.Rating
		}
		s.AverageRating = decimal.NewFromInt(int64(sum)).
			Div(decimal.NewFromInt(int64(s.Count))).
			Round(1).InexactFloat64()
	}
	return s, nil
}

// GET /products/:id/reviews
func GetProductReviews(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, ok := productIDParam(c)
		if !ok {
			return
		}
		s, err := Summarize(db, productID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
			return
		}
		c.JSON(http.StatusOK, s)
	}
}

// POST /user/products/:id/reviews
func CreateReview(db *gorm.DB, hub *realtime.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, ok := productIDParam(c)
		if !ok {
			return
		}

		var input ReviewInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be 1-5 and a review is required"})
			return
		}
		text := strings.TrimSpace(input.ReviewText)
		if text == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Review text must not be blank"})
			return
		}

		var product models.Product
		if err := db.Select("id").First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		id, _ := middleware.CurrentIdentity(c)
		name := id.Name
		var user models.User
		if err := db.First(&user, "id = ?", id.UserID).Error; err == nil {
			name = user.Label()
		}
		if name == "" {
			name = id.Email
		}

		review := models.Review{
			ProductID:  productID,
			UserID:     id.UserID,
			UserName:   name,
			Rating:     input.Rating,
			ReviewText: text,
		}
		if err := db.Create(&review).Error; err != nil {
			slog.Error("failed to save review", "product_id", productID, "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save review"})
			return
		}

		hub.Publish(realtime.ReviewsTopic(productID), review)
		c.JSON(http.StatusCreated, review)
	}
}
