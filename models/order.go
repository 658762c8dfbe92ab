package models

import (
	"errors"
	"strings"
	"time"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"    // Order placed, nobody has touched it yet
	OrderStatusProcessing OrderStatus = "processing" // Being prepared
	OrderStatusShipped    OrderStatus = "shipped"    // Handed to the carrier
	OrderStatusCompleted  OrderStatus = "completed"  // Customer received the items
	OrderStatusCancelled  OrderStatus = "cancelled"
)

var ErrInvalidOrderStatus = errors.New("invalid order status")

// OrderStatuses lists every status in dashboard order.
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

// orderTransitions is deliberately permissive: an admin may move an order
// from any status to any other, backwards or to the same status.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    OrderStatuses,
	OrderStatusProcessing: OrderStatuses,
	OrderStatusShipped:    OrderStatuses,
	OrderStatusCompleted:  OrderStatuses,
	OrderStatusCancelled:  OrderStatuses,
}

// ParseOrderStatus accepts any casing ("Pending", "SHIPPED") and returns the stored form.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	s := OrderStatus(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := orderTransitions[s]; !ok {
		return "", ErrInvalidOrderStatus
	}
	return s, nil
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Order struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	Reference string      `gorm:"uniqueIndex;size:64" json:"reference"`
	UserID    *string     `gorm:"index" json:"user_id"` // nil for guest checkouts
	Name      string      `gorm:"not null" json:"name"`
	Email     string      `gorm:"index;not null" json:"email"`
	Address   string      `gorm:"not null" json:"address"`
	Items     []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Total     float64     `json:"total"`
	Status    OrderStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	CreatedAt time.Time   `gorm:"index" json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// OrderItem is a copy of the cart line at checkout time.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"-"`
	OrderID   uint    `gorm:"index" json:"-"`
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Category  string  `json:"category"`
	Quantity  int     `json:"quantity"`
}
