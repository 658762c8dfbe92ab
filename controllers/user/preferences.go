package userControllers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	themeKey     = "theme"
	ThemeLight   = "light"
	ThemeDark    = "dark"
	defaultTheme = ThemeLight
)

type ThemeInput struct {
	Theme string `json:"theme" binding:"required,oneof=light dark"`
}

func themeFrom(session sessions.Session) string {
	if theme, ok := session.Get(themeKey).(string); ok && (theme == ThemeLight || theme == ThemeDark) {
		return theme
	}
	return defaultTheme
}

// GET /preferences/theme
func GetTheme() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"theme": themeFrom(sessions.Default(c))})
	}
}

// PUT /preferences/theme
func SetTheme() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ThemeInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "theme must be light or dark"})
			return
		}

		session := sessions.Default(c)
		session.Set(themeKey, input.Theme)
		if err := session.Save(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save preference"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"theme": input.Theme})
	}
}
