package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds the application configuration
type AppConfig struct {
	DataDir      string        // where the CSV tables live
	LogLevel     string        // zerolog level name
	SessionKey   string        // 32 byte key for session tickets, empty disables resume
	SessionTTL   time.Duration // how long a session ticket stays valid
	SMTPHost     string        // optional mail relay for inventory alerts
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	AlertEmail   string  // recipient of inventory alerts
	LoginRate    float64 // allowed login attempts per second
	LoginBurst   int
}

// MailEnabled reports whether the inventory alert mailer is configured.
func (c *AppConfig) MailEnabled() bool {
	return c.SMTPHost != "" && c.AlertEmail != ""
}

// SessionEnabled reports whether session resume is configured.
func (c *AppConfig) SessionEnabled() bool {
	return c.SessionKey != ""
}

// Load reads the configuration from the environment, consulting a .env file
// when present.
func Load() (*AppConfig, error) {
	_ = godotenv.Load()

	cfg := &AppConfig{
		DataDir:      getEnv("DATA_DIR", "./data"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		SessionKey:   os.Getenv("SESSION_KEY"),
		SessionTTL:   getDuration("SESSION_TTL", 12*time.Hour),
		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getInt("SMTP_PORT", 587),
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPassword: os.Getenv("SMTP_PASS"),
		AlertEmail:   os.Getenv("ALERT_EMAIL"),
		LoginRate:    getFloat("LOGIN_RATE", 1),
		LoginBurst:   getInt("LOGIN_BURST", 5),
	}

	if cfg.SessionKey != "" && len(cfg.SessionKey) != 32 {
		return nil, fmt.Errorf("SESSION_KEY must be exactly 32 bytes, got %d", len(cfg.SessionKey))
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		fmt.Fprintf(os.Stderr, "invalid integer for %s=%q, using default %d\n", key, v, def)
	}
	return def
}

func getFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		fmt.Fprintf(os.Stderr, "invalid number for %s=%q, using default %g\n", key, v, def)
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return time.Duration(n) * time.Second
		}
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		fmt.Fprintf(os.Stderr, "invalid duration for %s=%q, using default %s\n", key, v, def)
	}
	return def
}
