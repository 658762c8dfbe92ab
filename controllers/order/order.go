package orderControllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/junaidrashid-git/storefront-api/auth"
	"github.com/junaidrashid-git/storefront-api/cart"
	"github.com/junaidrashid-git/storefront-api/middleware"
	"github.com/junaidrashid-git/storefront-api/models"
	"github.com/junaidrashid-git/storefront-api/notifier"
	"github.com/junaidrashid-git/storefront-api/realtime"
	"gorm.io/gorm"
)

const redirectAfter = 3 * time.Second

var ErrEmptyCart = errors.New("cart is empty")

// -------- Request Structs --------
type CheckoutRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Address string `json:"address" binding:"required"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type UpdateOrderRequest struct {
	Name   *string `json:"name"`
	Email  *string `json:"email" binding:"omitempty,email"`
	Status *string `json:"status"`
}

// OrderEvent is what admin dashboards receive on the orders topic.
type OrderEvent struct {
	Type  string       `json:"type"`
	Order models.Order `json:"order"`
}

// -------- Helpers --------

// Generate unique order reference
func generateOrderRef() string {
	// Example: 20250908130500-<uuid4>
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

func findOrder(c *gin.Context, db *gorm.DB) (models.Order, bool) {
	orderID := c.Param("orderID")
	if orderID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
		return models.Order{}, false
	}

	query := db.Preload("Items")
	if id, err := strconv.ParseUint(orderID, 10, 64); err == nil {
		query = query.Where("id = ?", id)
	} else {
		query = query.Where("reference = ?", orderID)
	}

	var order models.Order
	if err := query.First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return models.Order{}, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return models.Order{}, false
	}
	return order, true
}

// -------- Core Logic --------

// PlaceOrder turns the buyer's stored cart into a pending order and empties the cart.
// The total is frozen here; later price edits never touch it.
func PlaceOrder(db *gorm.DB, buyer auth.Identity, req CheckoutRequest) (models.Order, error) {
	var order models.Order

	err := db.Transaction(func(tx *gorm.DB) error {
		current, err := cart.Load(tx, buyer.UserID)
		if err != nil {
			return err
		}
		if current.Empty() {
			return ErrEmptyCart
		}

		items := make([]models.OrderItem, 0, current.Len())
		for _, l := range current.Lines() {
			items = append(items, models.OrderItem{
				ProductID: l.ProductID,
				Name:      l.Name,
				Price:     l.Price,
				Image:     l.Image,
				Category:  l.Category,
				Quantity:  l.Quantity,
			})
		}

		order = models.Order{
			Reference: generateOrderRef(),
			Name:      strings.TrimSpace(req.Name),
			Email:     strings.ToLower(strings.TrimSpace(req.Email)),
			Address:   strings.TrimSpace(req.Address),
			Items:     items,
			Total:     current.Total().InexactFloat64(),
			Status:    models.OrderStatusPending,
		}
		if !buyer.Guest() {
			userID := buyer.UserID
			order.UserID = &userID
		}

		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		current.Clear()
		return cart.Save(tx, buyer.UserID, current)
	})
	return order, err
}

// -------- Handlers --------

// POST /checkout
func PlaceOrderHandler(db *gorm.DB, hub *realtime.Hub, n *notifier.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		buyer, ok := middleware.CurrentIdentity(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Please fill in your name, a valid email and your address"})
			return
		}
		if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Address) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Please fill in your name, a valid email and your address"})
			return
		}

		order, err := PlaceOrder(db, buyer, req)
		if err != nil {
			if errors.Is(err, ErrEmptyCart) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			slog.Error("checkout failed", "user_id", buyer.UserID, "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order. Please try again."})
			return
		}

		slog.Info("order placed", "order_id", order.ID, "reference", order.Reference, "total", order.Total)
		hub.Publish(realtime.OrdersTopic, OrderEvent{Type: "order_created", Order: order})
		n.OrderPlaced(order)

		c.JSON(http.StatusCreated, gin.H{
			"message":           "Order placed successfully",
			"order":             order,
			"redirect":          "/",
			"redirect_after_ms": redirectAfter.Milliseconds(),
		})
	}
}

// GET /user/orders
// Newest first. Guest checkouts made with the same email show up too.
func GetMyOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := middleware.CurrentIdentity(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		query := db.Preload("Items").Where("user_id = ?", id.UserID)
		if id.Email != "" {
			query = query.Or("email = ?", strings.ToLower(id.Email))
		}

		orders := []models.Order{}
		if err := query.Order("created_at DESC").Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /admin/orders/:orderID (numeric id or reference)
func GetOrderByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, ok := findOrder(c, db)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// PUT /admin/orders/:orderID/status
// Every successful write notifies the order's user, even when the status is unchanged.
func UpdateOrderStatusHandler(db *gorm.DB, hub *realtime.Hub, n *notifier.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, ok := findOrder(c, db)
		if !ok {
			return
		}

		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		newStatus, err := models.ParseOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if !order.Status.CanTransitionTo(newStatus) {
			c.JSON(http.StatusConflict, gin.H{"error": "order cannot move from " + string(order.Status) + " to " + string(newStatus)})
			return
		}

		if err := db.Model(&order).Update("status", newStatus).Error; err != nil {
			slog.Error("failed to update order status", "order_id", order.ID, "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order status"})
			return
		}
		order.Status = newStatus

		note := n.OrderStatusChanged(order)
		hub.Publish(realtime.OrdersTopic, OrderEvent{Type: "order_updated", Order: order})

		c.JSON(http.StatusOK, gin.H{
			"message":  "Order status updated successfully",
			"order":    order,
			"notified": note != nil,
		})
	}
}

// PUT /admin/orders/:orderID
// Edits customer details and status together; the user is notified only if the status changed.
func UpdateOrderHandler(db *gorm.DB, hub *realtime.Hub, n *notifier.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, ok := findOrder(c, db)
		if !ok {
			return
		}

		var req UpdateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		updates := make(map[string]interface{})
		if req.Name != nil {
			updates["name"] = strings.TrimSpace(*req.Name)
		}
		if req.Email != nil {
			updates["email"] = strings.ToLower(strings.TrimSpace(*req.Email))
		}
		previous := order.Status
		if req.Status != nil {
			newStatus, err := models.ParseOrderStatus(*req.Status)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if !order.Status.CanTransitionTo(newStatus) {
				c.JSON(http.StatusConflict, gin.H{"error": "order cannot move from " + string(order.Status) + " to " + string(newStatus)})
				return
			}
			updates["status"] = newStatus
		}
		if len(updates) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
			return
		}

		if err := db.Model(&order).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order"})
			return
		}
		if err := db.Preload("Items").First(&order, order.ID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reload order"})
			return
		}

		notified := false
		if order.Status != previous {
			notified = n.OrderStatusChanged(order) != nil
		}
		hub.Publish(realtime.OrdersTopic, OrderEvent{Type: "order_updated", Order: order})

		c.JSON(http.StatusOK, gin.H{
			"message":  "Order updated successfully",
			"order":    order,
			"notified": notified,
		})
	}
}

// DELETE /admin/orders/:orderID
func DeleteOrderHandler(db *gorm.DB, hub *realtime.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, ok := findOrder(c, db)
		if !ok {
			return
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("order_id = ?", order.ID).
				Delete(&models.OrderItem{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&models.Order{}, order.ID).Error; err != nil {
				return err
			}
			return nil
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete order"})
			return
		}
		hub.Publish(realtime.OrdersTopic, OrderEvent{Type: "order_deleted", Order: order})
		c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
	}
}
