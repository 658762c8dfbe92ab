package notificationControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront-api/middleware"
	"github.com/junaidrashid-git/storefront-api/models"
	"gorm.io/gorm"
)

func notificationIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification ID"})
		return 0, false
	}
	return uint(id), true
}

// ListForUser returns userID's notifications, newest first, and how many are unread.
func ListForUser(db *gorm.DB, userID string) ([]models.Notification, int64, error) {
	notes := []models.Notification{}
	if err := db.Where("user_id = ?", userID).Order("created_at DESC").Order("id DESC").Find(&notes).Error; err != nil {
		return nil, 0, err
	}
	var unread int64
	for _, n := range notes {
		if !n.Read {
			unread++
		}
	}
	return notes, unread, nil
}

// MarkAllRead flips every unread notification of userID in one statement.
func MarkAllRead(db *gorm.DB, userID string) (int64, error) {
	var marked int64
	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Notification{}).
			Where(map[string]interface{}{"user_id": userID, "read": false}).
			Update("read", true)
		marked = res.RowsAffected
		return res.Error
	})
	return marked, err
}

// markRead marks one notification; an empty userID skips the ownership check.
func markRead(c *gin.Context, db *gorm.DB, userID string) {
	id, ok := notificationIDParam(c)
	if !ok {
		return
	}

	query := db.Where("id = ?", id)
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}

	var note models.Notification
	if err := query.First(&note).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if !note.Read {
		if err := db.Model(&note).Update("read", true).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
			return
		}
		note.Read = true
	}
	c.JSON(http.StatusOK, note)
}

// GET /user/notifications
func GetMyNotifications(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := middleware.CurrentIdentity(c)
		notes, unread, err := ListForUser(db, id.UserID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"notifications": notes, "unread_count": unread})
	}
}

// PATCH /user/notifications/:id/read
func MarkMyNotificationRead(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := middleware.CurrentIdentity(c)
		if !ok || id.UserID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		markRead(c, db, id.UserID)
	}
}

// POST /user/notifications/read-all
func MarkAllMyNotificationsRead(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := middleware.CurrentIdentity(c)
		marked, err := MarkAllRead(db, id.UserID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notifications as read"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"marked": marked})
	}
}

// GET /admin/notifications
func GetAllNotifications(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		notes := []models.Notification{}
		if err := db.Order("created_at DESC").Order("id DESC").Find(&notes).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
			return
		}
		c.JSON(http.StatusOK, notes)
	}
}

// PATCH /admin/notifications/:id/read
func MarkNotificationRead(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		markRead(c, db, "")
	}
}
