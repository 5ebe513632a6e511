// Package config loads service configuration from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/tzofim/peula/internal/llm"
)

// Config holds everything the service needs at startup.
type Config struct {
	Port    int
	GinMode string
	LogMode string

	StoreBackend string
	DatabasePath string
	DatabaseURL  string

	LLM llm.LLMConfig

	TemplateDir string

	Google GoogleConfig

	RedisURL         string
	InsightsCacheTTL time.Duration

	CORSOrigins []string
}

// GoogleConfig configures document export and import.
type GoogleConfig struct {
	// CredentialsJSON is an inline service-account key.
	CredentialsJSON string
	// CredentialsFile is a path to a service-account key file.
	CredentialsFile string
	DocsTemplateID  string
	DriveFolderID   string
}

// Configured reports whether any service-account credentials were supplied.
func (g GoogleConfig) Configured() bool {
	return g.CredentialsJSON != "" || g.CredentialsFile != ""
}

// Default returns a Config with sensible defaults: in-memory store, ollama
// on localhost, memory insights cache.
func Default() Config {
	return Config{
		Port:             5000,
		GinMode:          "release",
		StoreBackend:     "memory",
		DatabasePath:     "peula.db",
		LLM:              llm.DefaultConfig(),
		InsightsCacheTTL: 6 * time.Hour,
		CORSOrigins:      []string{"*"},
	}
}

// Load reads a .env file if one exists, then environment variables,
// falling back to defaults for any unset values.
func Load() Config {
	_ = godotenv.Load()

	cfg := Default()
	cfg.LLM = llm.LoadConfig()

	if v := os.Getenv("PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Port = n
		}
	}
	if v := os.Getenv("GIN_MODE"); v != "" {
		cfg.GinMode = v
	}
	cfg.LogMode = os.Getenv("LOG_MODE")

	if v := os.Getenv("STORE_BACKEND"); v != "" {
		cfg.StoreBackend = strings.ToLower(v)
	}
	if v := os.Getenv("DATABASE_PATH"); v != "" {
		cfg.DatabasePath = v
	}
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL != "" && os.Getenv("STORE_BACKEND") == "" {
		cfg.StoreBackend = "postgres"
	}

	cfg.TemplateDir = os.Getenv("TEMPLATE_DIR")

	cfg.Google = GoogleConfig{
		CredentialsJSON: os.Getenv("GOOGLE_CREDENTIALS_JSON"),
		CredentialsFile: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		DocsTemplateID:  os.Getenv("GOOGLE_DOCS_TEMPLATE_ID"),
		DriveFolderID:   os.Getenv("GOOGLE_DRIVE_FOLDER_ID"),
	}

	cfg.RedisURL = os.Getenv("REDIS_URL")
	if v := os.Getenv("INSIGHTS_CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.InsightsCacheTTL = d
		}
	}

	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = splitList(v)
	}

	return cfg
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
