package wishlistControllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront-api/middleware"
	"github.com/junaidrashid-git/storefront-api/models"
	"github.com/junaidrashid-git/storefront-api/realtime"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const maxCheckIDs = 200

type CheckInput struct {
	ProductIDs []uint `json:"product_ids" binding:"required"`
}

func productIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return 0, false
	}
	return uint(id), true
}

func userID(c *gin.Context) string {
	id, _ := middleware.CurrentIdentity(c)
	return id.UserID
}

// List returns userID's wishlist, most recently saved first.
func List(db *gorm.DB, userID string) ([]models.WishlistItem, error) {
	items := []models.WishlistItem{}
	err := db.Where("user_id = ?", userID).Order("added_at DESC").Order("product_id ASC").Find(&items).Error
	return items, err
}

// Save stores a fresh snapshot of product, replacing any earlier one.
func Save(db *gorm.DB, userID string, product models.Product) (models.WishlistItem, error) {
	item := models.WishlistItem{
		UserID:    userID,
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Image:     product.Image,
		Category:  product.Category,
		Rating:    product.Rating,
		AddedAt:   time.Now(),
	}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		UpdateAll: true,
	}).Create(&item).Error
	return item, err
}

// Contains reports which of ids are on userID's wishlist, in a single query.
func Contains(db *gorm.DB, userID string, ids []uint) (map[uint]bool, error) {
	out := make(map[uint]bool, len(ids))
	for _, id := range ids {
		out[id] = false
	}
	if len(ids) == 0 {
		return out, nil
	}

	var found []uint
	if err := db.Model(&models.WishlistItem{}).
		Where("user_id = ? AND product_id IN ?", userID, ids).
		Pluck("product_id", &found).Error; err != nil {
		return nil, err
	}
	for _, id := range found {
		out[id] = true
	}
	return out, nil
}

// publish pushes the whole list so listeners can replace their copy.
func publish(db *gorm.DB, hub *realtime.Hub, userID string) {
	if hub.Subscribers(realtime.WishlistTopic(userID)) == 0 {
		return
	}
	items, err := List(db, userID)
	if err != nil {
		return
	}
	hub.Publish(realtime.WishlistTopic(userID), items)
}

// GET /user/wishlist
func GetWishlist(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := List(db, userID(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wishlist"})
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// PUT /user/wishlist/:product_id
func AddToWishlist(db *gorm.DB, hub *realtime.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, ok := productIDParam(c)
		if !ok {
			return
		}

		var product models.Product
		if err := db.First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		uid := userID(c)
		item, err := Save(db, uid, product)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save wishlist item"})
			return
		}
		publish(db, hub, uid)
		c.JSON(http.StatusOK, item)
	}
}

// DELETE /user/wishlist/:product_id
// Removing something that is not there is not an error.
func RemoveFromWishlist(db *gorm.DB, hub *realtime.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, ok := productIDParam(c)
		if !ok {
			return
		}
		uid := userID(c)
		res := db.Where("user_id = ? AND product_id = ?", uid, productID).Delete(&models.WishlistItem{})
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove wishlist item"})
			return
		}
		if res.RowsAffected > 0 {
			publish(db, hub, uid)
		}
		c.JSON(http.StatusOK, gin.H{"message": "Removed from wishlist", "removed": res.RowsAffected > 0})
	}
}

// GET /user/wishlist/:product_id
func IsInWishlist(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, ok := productIDParam(c)
		if !ok {
			return
		}
		found, err := Contains(db, userID(c), []uint{productID})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"in_wishlist": found[productID]})
	}
}

// POST /user/wishlist/check
func CheckWishlist(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CheckInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "product_ids is required"})
			return
		}
		if len(input.ProductIDs) > maxCheckIDs {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Too many product ids"})
			return
		}

		found, err := Contains(db, userID(c), input.ProductIDs)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, found)
	}
}
