package models

import "time"

type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"index;not null" json:"user_id"`
	OrderID   uint      `gorm:"index" json:"order_id"`
	Message   string    `json:"message"`
	Read      bool      `gorm:"default:false" json:"read"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// WishlistItem snapshots the product at the time it was saved.
type WishlistItem struct {
	UserID    string    `gorm:"primaryKey" json:"user_id"`
	ProductID uint      `gorm:"primaryKey;autoIncrement:false" json:"product_id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Image     string    `json:"image"`
	Category  string    `json:"category"`
	Rating    int       `json:"rating"`
	AddedAt   time.Time `json:"added_at"`
}

type Review struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ProductID  uint      `gorm:"index;not null" json:"product_id"`
	UserID     string    `gorm:"not null" json:"user_id"`
	UserName   string    `json:"user_name"`
	Rating     int       `gorm:"not null" json:"rating"`
	ReviewText string    `gorm:"not null" json:"review_text"`
	CreatedAt  time.Time `json:"created_at"`
}

type Testimonial struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Message   string    `gorm:"not null" json:"message"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}

// All returns every model for AutoMigrate.
func All() []any {
	return []any{
		&User{},
		&GuestUser{},
		&Product{},
		&Category{},
		&Cart{},
		&CartItem{},
		&Order{},
		&OrderItem{},
		&Notification{},
		&WishlistItem{},
		&Review{},
		&Testimonial{},
	}
}
