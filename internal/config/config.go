package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gdict/internal/logger"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the backend proxy
type Config struct {
	Port           int           `json:"port" env:"PORT" env-default:"3001"`
	Environment    string        `json:"environment" env:"ENVIRONMENT" env-default:"development"`
	EnableGenerate bool          `json:"enable_generate" env:"ENABLE_GENERATE" env-default:"false"`
	RateLimit      int           `json:"rate_limit" env:"RATE_LIMIT_PER_MINUTE" env-default:"60"`
	Logging        logger.Config `json:"logging"`
	GenAI          GenAIConfig   `json:"genai"`
	CORS           CORSConfig    `json:"cors"`
}

// GenAIConfig selects and configures the generation service
type GenAIConfig struct {
	Provider string        `json:"provider" env:"GENAI_PROVIDER" env-default:"gemini"`
	APIKey   string        `json:"-" env:"GEMINI_API_KEY"`
	Model    string        `json:"model" env:"GENAI_MODEL" env-default:"gemini-2.5-flash"`
	BaseURL  string        `json:"base_url" env:"GENAI_BASE_URL"`
	Timeout  time.Duration `json:"timeout" env:"GENAI_TIMEOUT" env-default:"30s"`
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins string `json:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-default:"*"`
	AllowedMethods string `json:"allowed_methods" env:"CORS_ALLOWED_METHODS" env-default:"GET,POST,OPTIONS"`
	AllowedHeaders string `json:"allowed_headers" env:"CORS_ALLOWED_HEADERS" env-default:"Content-Type,X-Request-Id"`
	MaxAge         int    `json:"max_age" env:"CORS_MAX_AGE" env-default:"86400"`
}

// ClientConfig holds configuration for the terminal client
type ClientConfig struct {
	APIURL      string        `json:"api_url" env:"GDICT_API_URL" env-default:"http://localhost:3001/api"`
	StatePath   string        `json:"state_path" env:"GDICT_STATE_PATH"`
	APITimeout  time.Duration `json:"api_timeout" env:"GDICT_API_TIMEOUT" env-default:"60s"`
	ColorScheme string        `json:"color_scheme" env:"GDICT_COLOR_SCHEME"`
	Logging     logger.Config `json:"logging"`
}

var providers = []string{"gemini", "openai", "anthropic"}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if file doesn't exist)
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	// API_KEY is the legacy name of the Gemini key
	if cfg.GenAI.APIKey == "" {
		cfg.GenAI.APIKey = os.Getenv("API_KEY")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.GenAI.APIKey == "" {
		switch cfg.GenAI.Provider {
		case "openai":
			cfg.GenAI.APIKey = os.Getenv("OPENAI_API_KEY")
		case "anthropic":
			cfg.GenAI.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		}
	}

	return &cfg, nil
}

// Validate checks values cleanenv cannot express as tags
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}

	c.GenAI.Provider = strings.ToLower(strings.TrimSpace(c.GenAI.Provider))
	known := false
	for _, p := range providers {
		if p == c.GenAI.Provider {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unknown GENAI_PROVIDER %q (want one of %s)", c.GenAI.Provider, strings.Join(providers, ", "))
	}

	if c.GenAI.Timeout <= 0 {
		return fmt.Errorf("GENAI_TIMEOUT must be positive")
	}

	if c.RateLimit < 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must not be negative")
	}

	return nil
}

// LoadClient loads the terminal client configuration
func LoadClient() (*ClientConfig, error) {
	_ = godotenv.Load()

	var cfg ClientConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if cfg.StatePath == "" {
		cfg.StatePath = defaultStatePath()
	}
	cfg.APIURL = strings.TrimSuffix(cfg.APIURL, "/")

	return &cfg, nil
}

// defaultStatePath places the state database under the user's config dir
func defaultStatePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "gdict.db"
	}
	return filepath.Join(dir, "gdict", "state.db")
}
