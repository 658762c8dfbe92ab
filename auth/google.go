package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront-api/cart"
	"github.com/junaidrashid-git/storefront-api/models"
	"gorm.io/gorm"
)

type googleLoginRequest struct {
	IDToken string `json:"id_token" binding:"required"`
	GuestID string `json:"guest_id"`
}

// UpsertGoogleUser creates the account on first sign-in and refreshes its profile afterwards.
func UpsertGoogleUser(db *gorm.DB, profile GoogleProfile) (models.User, error) {
	email := strings.ToLower(profile.Email)

	var user models.User
	err := db.Where("id = ?", profile.UID).Or("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			ID:          profile.UID,
			Email:       email,
			DisplayName: profile.Name,
			PhotoURL:    profile.Picture,
			Provider:    models.ProviderGoogle,
		}
		if err := db.Create(&user).Error; err != nil {
			return models.User{}, err
		}
		return user, nil
	}
	if err != nil {
		return models.User{}, err
	}

	if user.Disabled {
		return models.User{}, ErrUserDisabled
	}
	// keep whatever the user set on their profile page
	updates := map[string]interface{}{}
	if user.DisplayName == "" && profile.Name != "" {
		updates["display_name"] = profile.Name
	}
	if user.PhotoURL == "" && profile.Picture != "" {
		updates["photo_url"] = profile.Picture
	}
	if len(updates) > 0 {
		if err := db.Model(&user).Updates(updates).Error; err != nil {
			return models.User{}, err
		}
	}
	return user, nil
}

// POST /auth/google
func GoogleLogin(db *gorm.DB, tokens *Tokens, verifier Verifier, admins AdminList) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req googleLoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}

		profile, err := verifier.Verify(c.Request.Context(), req.IDToken)
		if err != nil {
			if errors.Is(err, ErrFirebaseNotConfigured) {
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Google sign-in is not available"})
				return
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Firebase ID token"})
			return
		}

		user, err := UpsertGoogleUser(db, profile)
		if err != nil {
			if errors.Is(err, ErrUserDisabled) {
				c.JSON(http.StatusForbidden, gin.H{"error": Message(err)})
				return
			}
			slog.Error("google user upsert failed", "uid", profile.UID, "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		session := sessions.Default(c)
		guestID, _ := session.Get(sessionGuestKey).(string)
		if guestID == "" {
			guestID = req.GuestID
		}

		mergeStatus := "no-guest-cart"
		if guestID != "" {
			merged, err := mergeGuestCart(db, guestID, user.ID)
			switch {
			case errors.Is(err, errNotGuest):
				slog.Warn("refused cart merge from non-guest owner", "guest_id", guestID, "user_id", user.ID)
				mergeStatus = "guest-not-found"
			case err != nil:
				slog.Error("guest cart merge failed", "guest_id", guestID, "user_id", user.ID, "err", err)
				mergeStatus = "merge-failed"
			case merged:
				mergeStatus = "merged-success"
			default:
				mergeStatus = "guest-cart-empty"
			}
			session.Delete(sessionGuestKey)
		}

		respondWithToken(c, tokens, user, admins.RoleFor(user.Email), gin.H{"merge_status": mergeStatus})
	}
}

var errNotGuest = errors.New("not an active guest")

// mergeGuestCart folds a live guest's cart into the user's. Carts of
// registered users and expired guests are never merged.
func mergeGuestCart(db *gorm.DB, guestID, userID string) (bool, error) {
	active, err := ActiveGuest(db, guestID, time.Now())
	if err != nil {
		return false, err
	}
	if !active {
		return false, errNotGuest
	}
	return cart.MergeOwners(db, guestID, userID)
}
