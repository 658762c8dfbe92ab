package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/junaidrashid-git/storefront-api/models"
	"gorm.io/gorm"
)

var validate = validator.New()

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func normaliseEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validate.Var(email, "required,email"); err != nil {
		return "", ErrInvalidEmail
	}
	return email, nil
}

// -------- Core Logic --------

// Authenticate checks an email/password pair against the users table.
func Authenticate(db *gorm.DB, email, password string) (models.User, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return models.User{}, ErrMissingCredentials
	}
	email, err := normaliseEmail(email)
	if err != nil {
		return models.User{}, err
	}

	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	if user.Disabled {
		return models.User{}, ErrUserDisabled
	}
	if len(user.PasswordHash) == 0 {
		// federated-only account
		return models.User{}, ErrWrongPassword
	}

	ok, err := CheckPassword(user.PasswordHash, password)
	if err != nil {
		return models.User{}, err
	}
	if !ok {
		return models.User{}, ErrWrongPassword
	}
	return user, nil
}

// RegisterUser creates a password account.
func RegisterUser(db *gorm.DB, name, email, password string) (models.User, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return models.User{}, ErrMissingCredentials
	}
	email, err := normaliseEmail(email)
	if err != nil {
		return models.User{}, err
	}
	hash, err := HashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return models.User{}, err
	}
	if count > 0 {
		return models.User{}, ErrEmailInUse
	}

	user := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		DisplayName:  strings.TrimSpace(name),
		PasswordHash: hash,
		Provider:     models.ProviderPassword,
	}
	if err := db.Create(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func authStatus(err error) int {
	switch {
	case errors.Is(err, ErrMissingCredentials), errors.Is(err, ErrInvalidEmail),
		errors.Is(err, ErrWeakPassword):
		return http.StatusBadRequest
	case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrWrongPassword):
		return http.StatusUnauthorized
	case errors.Is(err, ErrUserDisabled), errors.Is(err, ErrNotAdmin), errors.Is(err, ErrReservedEmail):
		return http.StatusForbidden
	case errors.Is(err, ErrEmailInUse):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func respondWithToken(c *gin.Context, tokens *Tokens, user models.User, role string, extra gin.H) {
	token, err := tokens.Issue(Identity{
		UserID:  user.ID,
		Email:   user.Email,
		Role:    role,
		Name:    user.DisplayName,
		Picture: user.PhotoURL,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
		return
	}

	session := sessions.Default(c)
	session.Set(sessionUserKey, user.ID)
	if err := session.Save(); err != nil {
		slog.Warn("failed to save session", "err", err)
	}

	resp := gin.H{
		"message": "Login successful",
		"token":   token,
		"role":    role,
		"user":    user,
	}
	for k, v := range extra {
		resp[k] = v
	}
	c.JSON(http.StatusOK, resp)
}

// -------- Handlers --------

// POST /auth/register
func Register(db *gorm.DB, tokens *Tokens, admins AdminList) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}

		// admin accounts come from the create-admin command or Google sign-in
		if admins.Contains(req.Email) {
			slog.Warn("self-registration refused for admin email", "email", req.Email)
			c.JSON(http.StatusForbidden, gin.H{"error": Message(ErrReservedEmail)})
			return
		}

		user, err := RegisterUser(db, req.Name, req.Email, req.Password)
		if err != nil {
			if authStatus(err) == http.StatusInternalServerError {
				slog.Error("register failed", "err", err)
			}
			c.JSON(authStatus(err), gin.H{"error": Message(err)})
			return
		}

		slog.Info("user registered", "user_id", user.ID)
		respondWithToken(c, tokens, user, RoleUser, nil)
	}
}

// POST /auth/login
func Login(db *gorm.DB, tokens *Tokens, admins AdminList) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req credentials
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}

		user, err := Authenticate(db, req.Email, req.Password)
		if err != nil {
			c.JSON(authStatus(err), gin.H{"error": Message(err)})
			return
		}
		respondWithToken(c, tokens, user, admins.RoleFor(user.Email), nil)
	}
}

// POST /auth/admin/login
func AdminLogin(db *gorm.DB, tokens *Tokens, admins AdminList) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req credentials
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": Message(ErrMissingCredentials)})
			return
		}

		user, err := Authenticate(db, req.Email, req.Password)
		if err != nil {
			c.JSON(authStatus(err), gin.H{"error": Message(err)})
			return
		}
		if !admins.Contains(user.Email) {
			slog.Warn("admin login refused", "email", user.Email)
			c.JSON(http.StatusForbidden, gin.H{"error": Message(ErrNotAdmin)})
			return
		}
		respondWithToken(c, tokens, user, RoleAdmin, gin.H{"redirect": "/admin"})
	}
}
