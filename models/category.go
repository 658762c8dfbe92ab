package models

import "time"

type Category struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"unique;not null" json:"name"`
	Slug      string    `gorm:"uniqueIndex" json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}
