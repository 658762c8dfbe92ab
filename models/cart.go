package models

import "time"

// Cart belongs to either a signed-in user or a guest; OwnerID holds whichever id applies.
type Cart struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	OwnerID   string     `gorm:"uniqueIndex;not null" json:"owner_id"`                      // ONE cart per owner
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"` // ordered by Position
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	CartID    uint      `gorm:"uniqueIndex:idx_cart_product" json:"-"`
	ProductID uint      `gorm:"uniqueIndex:idx_cart_product" json:"product_id"`
	Position  int       `json:"position"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Image     string    `json:"image"`
	Category  string    `json:"category"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
}
