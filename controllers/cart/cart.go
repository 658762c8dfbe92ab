package cartControllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront-api/cart"
	"github.com/junaidrashid-git/storefront-api/middleware"
	"github.com/junaidrashid-git/storefront-api/models"
	"gorm.io/gorm"
)

type CartItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"omitempty,min=1"`
}

type QuantityInput struct {
	Quantity *int `json:"quantity" binding:"required"`
}

func cartResponse(c *cart.Cart) gin.H {
	lines := c.Lines()
	items := make([]gin.H, 0, len(lines))
	for _, l := range lines {
		items = append(items, gin.H{
			"product_id": l.ProductID,
			"name":       l.Name,
			"price":      l.Price,
			"image":      l.Image,
			"category":   l.Category,
			"quantity":   l.Quantity,
			"subtotal":   l.Subtotal().Round(2).InexactFloat64(),
			"added_at":   l.AddedAt,
		})
	}
	return gin.H{
		"items":      items,
		"total":      c.Total().InexactFloat64(),
		"item_count": c.ItemCount(),
	}
}

func ownerID(c *gin.Context) (string, bool) {
	id, ok := middleware.CurrentIdentity(c)
	if !ok || id.UserID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return id.UserID, true
}

func productIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return 0, false
	}
	return uint(id), true
}

func lineFor(product models.Product) cart.Line {
	return cart.Line{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Image:     product.Image,
		Category:  product.Category,
		AddedAt:   time.Now(),
	}
}

func findProduct(c *gin.Context, db *gorm.DB, id uint) (models.Product, bool) {
	var product models.Product
	if err := db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product does not exist"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate product"})
		}
		return models.Product{}, false
	}
	return product, true
}

func writeCartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, cart.ErrLineNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
	case errors.Is(err, cart.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must not be negative"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
	}
}

// atLine runs fn against the line holding productID.
func atLine(productID uint, fn func(c *cart.Cart, index int) error) func(*cart.Cart) error {
	return func(c *cart.Cart) error {
		i := c.IndexOf(productID)
		if i < 0 {
			return cart.ErrLineNotFound
		}
		return fn(c, i)
	}
}

// GET /cart
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, ok := ownerID(c)
		if !ok {
			return
		}
		current, err := cart.Load(db, owner)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, cartResponse(current))
	}
}

// POST /cart/items
// Adding a product already in the cart increases its quantity.
func AddCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, ok := ownerID(c)
		if !ok {
			return
		}

		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		product, ok := findProduct(c, db, input.ProductID)
		if !ok {
			return
		}

		updated, err := cart.Update(db, owner, func(current *cart.Cart) error {
			current.Add(lineFor(product), input.Quantity)
			return nil
		})
		if err != nil {
			writeCartError(c, err)
			return
		}
		c.JSON(http.StatusOK, cartResponse(updated))
	}
}

// PUT /cart/items/:product_id/set
// Overwrites the line with a fresh snapshot of the product at quantity one.
func PutCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, ok := ownerID(c)
		if !ok {
			return
		}
		productID, ok := productIDParam(c)
		if !ok {
			return
		}
		product, ok := findProduct(c, db, productID)
		if !ok {
			return
		}

		updated, err := cart.Update(db, owner, func(current *cart.Cart) error {
			line := lineFor(product)
			line.Quantity = 1
			current.Put(line)
			return nil
		})
		if err != nil {
			writeCartError(c, err)
			return
		}
		c.JSON(http.StatusOK, cartResponse(updated))
	}
}

// PUT /cart/items/:product_id
// Quantity zero removes the line; negative quantities are rejected.
func SetCartItemQuantity(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, ok := ownerID(c)
		if !ok {
			return
		}
		productID, ok := productIDParam(c)
		if !ok {
			return
		}

		var input QuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity is required"})
			return
		}

		updated, err := cart.Update(db, owner, atLine(productID, func(current *cart.Cart, i int) error {
			return current.SetQuantity(i, *input.Quantity)
		}))
		if err != nil {
			writeCartError(c, err)
			return
		}
		c.JSON(http.StatusOK, cartResponse(updated))
	}
}

// POST /cart/items/:product_id/decrement
func DecrementCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, ok := ownerID(c)
		if !ok {
			return
		}
		productID, ok := productIDParam(c)
		if !ok {
			return
		}

		updated, err := cart.Update(db, owner, atLine(productID, func(current *cart.Cart, i int) error {
			return current.Decrement(i)
		}))
		if err != nil {
			writeCartError(c, err)
			return
		}
		c.JSON(http.StatusOK, cartResponse(updated))
	}
}

// DELETE /cart/items/:product_id
func DeleteCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, ok := ownerID(c)
		if !ok {
			return
		}
		productID, ok := productIDParam(c)
		if !ok {
			return
		}

		updated, err := cart.Update(db, owner, atLine(productID, func(current *cart.Cart, i int) error {
			return current.Remove(i)
		}))
		if err != nil {
			writeCartError(c, err)
			return
		}
		c.JSON(http.StatusOK, cartResponse(updated))
	}
}

// DELETE /cart
func ClearCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, ok := ownerID(c)
		if !ok {
			return
		}
		updated, err := cart.Update(db, owner, func(current *cart.Cart) error {
			current.Clear()
			return nil
		})
		if err != nil {
			writeCartError(c, err)
			return
		}
		c.JSON(http.StatusOK, cartResponse(updated))
	}
}

// GET /admin/user-cart/:user_id
func GetAdminUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("user_id")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
			return
		}
		current, err := cart.Load(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, cartResponse(current))
	}
}
