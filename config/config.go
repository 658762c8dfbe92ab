package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultJWTSecret     = "change-me"
	defaultSessionSecret = "change-me-too"
)

type Config struct {
	AppEnv   string
	LogLevel string
	Port     string

	DBDriver    string
	DatabaseURL string

	JWTSecret     string
	TokenTTL      time.Duration
	SessionSecret string
	AdminEmails   []string
	CORSOrigins   []string

	FirebaseCredentialsJSON string
	FirebaseProjectID       string

	Email EmailConfig

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// EmailConfig holds the SES settings used for order status emails.
// An empty SenderEmail disables email entirely.
type EmailConfig struct {
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	SenderEmail        string
}

func (e EmailConfig) Enabled() bool {
	return e.SenderEmail != ""
}

// Load reads .env (if present) and the process environment.
func Load() Config {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("TOKEN_TTL", "24h")
	v.SetDefault("SESSION_SECRET", defaultSessionSecret)
	v.SetDefault("ADMIN_EMAILS", "")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("HTTP_READ_TIMEOUT", "15s")
	v.SetDefault("HTTP_WRITE_TIMEOUT", "15s")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")

	return Config{
		AppEnv:      v.GetString("APP_ENV"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		Port:        v.GetString("PORT"),
		DBDriver:    strings.ToLower(v.GetString("DB_DRIVER")),
		DatabaseURL: databaseURL(v),

		JWTSecret:     v.GetString("JWT_SECRET"),
		TokenTTL:      v.GetDuration("TOKEN_TTL"),
		SessionSecret: v.GetString("SESSION_SECRET"),
		AdminEmails:   splitList(v.GetString("ADMIN_EMAILS"), true),
		CORSOrigins:   splitList(v.GetString("CORS_ORIGINS"), false),

		FirebaseCredentialsJSON: v.GetString("FIREBASE_CREDENTIALS_JSON"),
		FirebaseProjectID:       v.GetString("FIREBASE_PROJECT_ID"),

		Email: EmailConfig{
			AWSRegion:          v.GetString("AWS_REGION"),
			AWSAccessKeyID:     v.GetString("AWS_ACCESS_KEY_ID"),
			AWSSecretAccessKey: v.GetString("AWS_SECRET_ACCESS_KEY"),
			SenderEmail:        v.GetString("SES_SENDER_EMAIL"),
		},

		ReadTimeout:     v.GetDuration("HTTP_READ_TIMEOUT"),
		WriteTimeout:    v.GetDuration("HTTP_WRITE_TIMEOUT"),
		ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
	}
}

// Validate rejects settings that are only acceptable on a developer machine.
func (c Config) Validate() error {
	if c.AppEnv == "dev" {
		return nil
	}
	if c.JWTSecret == "" || c.JWTSecret == defaultJWTSecret {
		return fmt.Errorf("JWT_SECRET must be set when APP_ENV=%s", c.AppEnv)
	}
	if c.SessionSecret == "" || c.SessionSecret == defaultSessionSecret {
		return fmt.Errorf("SESSION_SECRET must be set when APP_ENV=%s", c.AppEnv)
	}
	return nil
}

// databaseURL falls back to the discrete DB_* variables when DATABASE_URL is unset.
func databaseURL(v *viper.Viper) string {
	if url := v.GetString("DATABASE_URL"); url != "" {
		return url
	}
	if v.GetString("DB_HOST") == "" {
		return ""
	}
	port := v.GetString("DB_PORT")
	if port == "" {
		port = "5432"
	}
	return "host=" + v.GetString("DB_HOST") +
		" user=" + v.GetString("DB_USER") +
		" password=" + v.GetString("DB_PASSWORD") +
		" dbname=" + v.GetString("DB_NAME") +
		" port=" + port +
		" sslmode=disable"
}

func splitList(raw string, lower bool) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if lower {
			part = strings.ToLower(part)
		}
		out = append(out, part)
	}
	return out
}
