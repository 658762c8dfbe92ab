package models

import "time"

// GuestUser is an anonymous shopper; its cart is keyed by the guest id.
type GuestUser struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	ExpiresAt time.Time `gorm:"index" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

func (g GuestUser) Expired(now time.Time) bool {
	return !now.Before(g.ExpiresAt)
}
