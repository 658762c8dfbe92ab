package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/junaidrashid-git/storefront-api/cart"
	"github.com/junaidrashid-git/storefront-api/models"
	"gorm.io/gorm"
)

const (
	sessionUserKey  = "user_id"
	sessionGuestKey = "guest_id"

	guestPrefix = "guest_"
)

// POST /auth/guest
func CreateGuestUser(db *gorm.DB, tokens *Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		guest := models.GuestUser{
			ID:        guestPrefix + uuid.NewString(),
			ExpiresAt: time.Now().Add(tokens.TTL()),
		}

		if err := db.Create(&guest).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create guest"})
			return
		}

		token, err := tokens.Issue(Identity{UserID: guest.ID, Role: RoleGuest})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}

		session := sessions.Default(c)
		session.Set(sessionGuestKey, guest.ID)
		if err := session.Save(); err != nil {
			slog.Warn("failed to save session", "err", err)
		}

		c.JSON(http.StatusOK, gin.H{
			"guest_id":   guest.ID,
			"token":      token,
			"expires_at": guest.ExpiresAt,
		})
	}
}

// ActiveGuest reports whether id names a guest session that has not expired.
func ActiveGuest(db *gorm.DB, id string, now time.Time) (bool, error) {
	if !strings.HasPrefix(id, guestPrefix) {
		return false, nil
	}
	var guest models.GuestUser
	err := db.Where("id = ?", id).First(&guest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return !guest.Expired(now), nil
}

// PurgeExpiredGuests deletes guests whose tokens have lapsed, along with their carts.
func PurgeExpiredGuests(db *gorm.DB, now time.Time) (int, error) {
	var expired []models.GuestUser
	if err := db.Where("expires_at <= ?", now).Find(&expired).Error; err != nil {
		return 0, err
	}

	purged := 0
	for _, g := range expired {
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := cart.Drop(tx, g.ID); err != nil {
				return err
			}
			return tx.Delete(&g).Error
		})
		if err != nil {
			slog.Error("failed to purge guest", "guest_id", g.ID, "err", err)
			continue
		}
		purged++
	}
	return purged, nil
}

// POST /auth/logout
// Tokens are stateless; this only forgets the cookie session's sign-in.
func Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		session.Delete(sessionUserKey)
		session.Delete(sessionGuestKey)
		if err := session.Save(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear session"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Logged out", "redirect": "/"})
	}
}
