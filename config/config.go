package config

import (
	"os"
	"strings"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Port      string
	Env       string
	ClientURL string

	GoogleClientID     string
	GoogleClientSecret string
	RedirectURL        string

	// TokenPath is where the session provider persists its OAuth token.
	TokenPath string
}

// Load reads configuration from environment variables, applying the same
// defaults the client expects (API on 5001, web app on 3000).
func Load() *Config {
	cfg := &Config{
		Port:               getenv("PORT", "5001"),
		Env:                getenv("APP_ENV", "development"),
		ClientURL:          getenv("CLIENT_URL", "http://localhost:3000"),
		GoogleClientID:     getenv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getenv("GOOGLE_CLIENT_SECRET", ""),
		RedirectURL:        getenv("REDIRECT_URI", "http://localhost:5001/auth/google/callback"),
		TokenPath:          getenv("TOKEN_PATH", ".wordapp/token.json"),
	}
	return cfg
}

// IsProduction reports whether error details should be hidden from clients.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getenv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}
