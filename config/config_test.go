package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("ADMIN_EMAILS", "")
		t.Setenv("DATABASE_URL", "")
		t.Setenv("DB_HOST", "")

		cfg := Load()
		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, "postgres", cfg.DBDriver)
		assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
		assert.Empty(t, cfg.DatabaseURL)
		assert.False(t, cfg.Email.Enabled())
		assert.Empty(t, cfg.AdminEmails)
	})

	t.Run("admin emails are normalised", func(t *testing.T) {
		t.Setenv("ADMIN_EMAILS", " Admin@Example.com, ,ops@example.com ")

		cfg := Load()
		assert.Equal(t, []string{"admin@example.com", "ops@example.com"}, cfg.AdminEmails)
	})

	t.Run("discrete db variables build a dsn", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")
		t.Setenv("DB_HOST", "localhost")
		t.Setenv("DB_USER", "shop")
		t.Setenv("DB_PASSWORD", "secret")
		t.Setenv("DB_NAME", "store")
		t.Setenv("DB_PORT", "")

		cfg := Load()
		assert.Equal(t, "host=localhost user=shop password=secret dbname=store port=5432 sslmode=disable", cfg.DatabaseURL)
	})

	t.Run("sender email enables ses", func(t *testing.T) {
		t.Setenv("SES_SENDER_EMAIL", "orders@example.com")
		t.Setenv("DB_DRIVER", "SQLite")

		cfg := Load()
		assert.True(t, cfg.Email.Enabled())
		assert.Equal(t, "sqlite", cfg.DBDriver)
	})
}

func TestValidate(t *testing.T) {
	t.Run("dev accepts default secrets", func(t *testing.T) {
		t.Setenv("APP_ENV", "dev")
		t.Setenv("JWT_SECRET", "")
		t.Setenv("SESSION_SECRET", "")

		assert.NoError(t, Load().Validate())
	})

	t.Run("prod refuses default jwt secret", func(t *testing.T) {
		t.Setenv("APP_ENV", "prod")
		t.Setenv("JWT_SECRET", "")
		t.Setenv("SESSION_SECRET", "a-long-session-secret")

		err := Load().Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "JWT_SECRET")
	})

	t.Run("staging refuses default session secret", func(t *testing.T) {
		t.Setenv("APP_ENV", "staging")
		t.Setenv("JWT_SECRET", "a-long-jwt-secret")
		t.Setenv("SESSION_SECRET", "change-me-too")

		err := Load().Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SESSION_SECRET")
	})

	t.Run("prod with real secrets", func(t *testing.T) {
		t.Setenv("APP_ENV", "prod")
		t.Setenv("JWT_SECRET", "a-long-jwt-secret")
		t.Setenv("SESSION_SECRET", "a-long-session-secret")

		assert.NoError(t, Load().Validate())
	})
}
