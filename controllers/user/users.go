package userControllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront-api/auth"
	"github.com/junaidrashid-git/storefront-api/middleware"
	"github.com/junaidrashid-git/storefront-api/models"
	"gorm.io/gorm"
)

var (
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrNoPassword       = errors.New("account has no password")
)

type UpdateProfileInput struct {
	DisplayName *string `json:"display_name" binding:"omitempty,max=100"`
	PhotoURL    *string `json:"photo_url" binding:"omitempty,max=2048"`
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

func currentUser(c *gin.Context, db *gorm.DB) (models.User, bool) {
	id, _ := middleware.CurrentIdentity(c)
	var user models.User
	if err := db.First(&user, "id = ?", id.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return models.User{}, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return models.User{}, false
	}
	return user, true
}

// ChangePassword re-checks current before storing next.
func ChangePassword(db *gorm.DB, user models.User, current, next, confirm string) error {
	if next != confirm {
		return ErrPasswordMismatch
	}
	if len(user.PasswordHash) == 0 {
		return ErrNoPassword
	}
	ok, err := auth.CheckPassword(user.PasswordHash, current)
	if err != nil {
		return err
	}
	if !ok {
		return auth.ErrWrongPassword
	}
	hash, err := auth.HashPassword(next)
	if err != nil {
		return err
	}
	return db.Model(&user).Update("password_hash", hash).Error
}

// GET /user/profile
func GetProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, db)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// PUT /user/profile
func UpdateProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, db)
		if !ok {
			return
		}

		var input UpdateProfileInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		updates := make(map[string]interface{})
		if input.DisplayName != nil {
			updates["display_name"] = strings.TrimSpace(*input.DisplayName)
		}
		if input.PhotoURL != nil {
			updates["photo_url"] = strings.TrimSpace(*input.PhotoURL)
		}

		if len(updates) > 0 {
			if err := db.Model(&user).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
				return
			}
			if err := db.First(&user, "id = ?", user.ID).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reload profile"})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully", "user": user})
	}
}

// PUT /user/password
func UpdatePassword(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, db)
		if !ok {
			return
		}

		var input ChangePasswordInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Please fill in all password fields"})
			return
		}

		err := ChangePassword(db, user, input.CurrentPassword, input.NewPassword, input.ConfirmPassword)
		switch {
		case err == nil:
			c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
		case errors.Is(err, ErrPasswordMismatch):
			c.JSON(http.StatusBadRequest, gin.H{"error": "New passwords do not match"})
		case errors.Is(err, ErrNoPassword):
			c.JSON(http.StatusBadRequest, gin.H{"error": "This account signs in with Google and has no password"})
		case errors.Is(err, auth.ErrWrongPassword):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Current password is incorrect"})
		case errors.Is(err, auth.ErrWeakPassword):
			c.JSON(http.StatusBadRequest, gin.H{"error": auth.Message(err)})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
		}
	}
}

// GET /admin/users
func GetAllUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		users := []models.User{}
		if err := db.
			Select("id", "email", "display_name", "photo_url", "provider", "disabled", "created_at"). // Select only public fields
			Order("created_at desc").
			Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
			return
		}

		c.JSON(http.StatusOK, users)
	}
}
