package cart

import (
	"errors"
	"fmt"
	"time"

	"github.com/junaidrashid-git/storefront-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Load reads the owner's stored cart. A missing cart is an empty one.
func Load(db *gorm.DB, ownerID string) (*Cart, error) {
	var record models.Cart
	err := db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Where("owner_id = ?", ownerID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &Cart{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	c := &Cart{}
	for _, item := range record.Items {
		c.lines = append(c.lines, Line{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Image:     item.Image,
			Category:  item.Category,
			Quantity:  item.Quantity,
			AddedAt:   item.AddedAt,
		})
	}
	return c, nil
}

// Save replaces the owner's stored lines with c's. Call it inside a transaction.
func Save(tx *gorm.DB, ownerID string, c *Cart) error {
	record, err := ensureCart(tx, ownerID)
	if err != nil {
		return err
	}

	if err := tx.Where("cart_id = ?", record.ID).Delete(&models.CartItem{}).Error; err != nil {
		return fmt.Errorf("clear cart items: %w", err)
	}

	if c.Empty() {
		return tx.Model(&record).Update("updated_at", time.Now()).Error
	}

	items := make([]models.CartItem, 0, c.Len())
	for i, l := range c.lines {
		items = append(items, models.CartItem{
			CartID:    record.ID,
			ProductID: l.ProductID,
			Position:  i,
			Name:      l.Name,
			Price:     l.Price,
			Image:     l.Image,
			Category:  l.Category,
			Quantity:  l.Quantity,
			AddedAt:   l.AddedAt,
		})
	}
	if err := tx.Create(&items).Error; err != nil {
		return fmt.Errorf("save cart items: %w", err)
	}
	return nil
}

func ensureCart(tx *gorm.DB, ownerID string) (models.Cart, error) {
	var record models.Cart
	err := tx.Where("owner_id = ?", ownerID).First(&record).Error
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Cart{}, fmt.Errorf("find cart: %w", err)
	}
	return createCart(tx, ownerID)
}

// createCart inserts the owner's cart row, or reads back the one a
// concurrent first add already inserted.
func createCart(tx *gorm.DB, ownerID string) (models.Cart, error) {
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "owner_id"}},
		DoNothing: true,
	}).Create(&models.Cart{OwnerID: ownerID}).Error
	if err != nil {
		return models.Cart{}, fmt.Errorf("create cart: %w", err)
	}

	var record models.Cart
	if err := tx.Where("owner_id = ?", ownerID).First(&record).Error; err != nil {
		return models.Cart{}, fmt.Errorf("find cart: %w", err)
	}
	return record, nil
}

// Update loads the owner's cart, applies fn and saves the result in one transaction.
func Update(db *gorm.DB, ownerID string, fn func(*Cart) error) (*Cart, error) {
	var out *Cart
	err := db.Transaction(func(tx *gorm.DB) error {
		c, err := Load(tx, ownerID)
		if err != nil {
			return err
		}
		if err := fn(c); err != nil {
			return err
		}
		out = c
		return Save(tx, ownerID, c)
	})
	return out, err
}

// MergeOwners moves every line of from's cart into to's cart and deletes from's cart.
// It reports false when from had nothing to merge.
func MergeOwners(db *gorm.DB, from, to string) (bool, error) {
	if from == "" || from == to {
		return false, nil
	}

	merged := false
	err := db.Transaction(func(tx *gorm.DB) error {
		guest, err := Load(tx, from)
		if err != nil {
			return err
		}
		if guest.Empty() {
			return nil
		}

		user, err := Load(tx, to)
		if err != nil {
			return err
		}
		user.Merge(guest)
		if err := Save(tx, to, user); err != nil {
			return err
		}

		if err := Drop(tx, from); err != nil {
			return err
		}
		merged = true
		return nil
	})
	return merged, err
}

// Drop deletes the owner's cart and all of its lines.
func Drop(tx *gorm.DB, ownerID string) error {
	var record models.Cart
	err := tx.Where("owner_id = ?", ownerID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := tx.Where("cart_id = ?", record.ID).Delete(&models.CartItem{}).Error; err != nil {
		return err
	}
	return tx.Delete(&record).Error
}
