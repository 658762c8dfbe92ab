package adminController

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront-api/auth"
	"github.com/junaidrashid-git/storefront-api/models"
	"gorm.io/gorm"
)

// AdminAccount is one allow-listed email and the account behind it, if it has signed up.
type AdminAccount struct {
	Email      string       `json:"email"`
	Registered bool         `json:"registered"`
	User       *models.User `json:"user,omitempty"`
}

// ListAdmins pairs every allow-listed email with its user record.
func ListAdmins(db *gorm.DB, admins auth.AdminList) ([]AdminAccount, error) {
	emails := admins.Emails()
	out := make([]AdminAccount, 0, len(emails))
	if len(emails) == 0 {
		return out, nil
	}

	var users []models.User
	if err := db.Where("email IN ?", emails).Find(&users).Error; err != nil {
		return nil, err
	}
	byEmail := make(map[string]models.User, len(users))
	for _, u := range users {
		byEmail[u.Email] = u
	}

	for _, e := range emails {
		account := AdminAccount{Email: e}
		if u, ok := byEmail[e]; ok {
			account.Registered = true
			account.User = &u
		}
		out = append(out, account)
	}
	return out, nil
}

// GET /admin/admins
func GetAllAdmins(db *gorm.DB, admins auth.AdminList) gin.HandlerFunc {
	return func(c *gin.Context) {
		accounts, err := ListAdmins(db, admins)
		if err != nil {
			slog.Error("failed to fetch admins", "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch admins"})
			return
		}

		c.JSON(http.StatusOK, accounts)
	}
}
