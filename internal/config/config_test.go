package config

import (
	"os"
	"testing"
	"time"
)

var serverKeys = []string{
	"PORT", "ENVIRONMENT", "ENABLE_GENERATE", "RATE_LIMIT_PER_MINUTE",
	"LOG_LEVEL", "LOG_FORMAT",
	"GENAI_PROVIDER", "GEMINI_API_KEY", "API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "GENAI_MODEL", "GENAI_BASE_URL", "GENAI_TIMEOUT",
	"CORS_ALLOWED_ORIGINS", "CORS_ALLOWED_METHODS", "CORS_ALLOWED_HEADERS", "CORS_MAX_AGE",
}

var clientKeys = []string{
	"GDICT_API_URL", "GDICT_STATE_PATH", "GDICT_API_TIMEOUT", "GDICT_COLOR_SCHEME",
}

// clearEnv unsets keys for the duration of the test
func clearEnv(t *testing.T, keys []string) {
	t.Helper()
	for _, key := range keys {
		if value, ok := os.LookupEnv(key); ok {
			os.Unsetenv(key)
			t.Cleanup(func() { os.Setenv(key, value) })
		}
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name:    "default values",
			envVars: map[string]string{},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Port != 3001 {
					t.Errorf("Port = %d, want 3001", cfg.Port)
				}
				if cfg.Environment != "development" {
					t.Errorf("Environment = %q", cfg.Environment)
				}
				if cfg.GenAI.Provider != "gemini" || cfg.GenAI.Model != "gemini-2.5-flash" {
					t.Errorf("GenAI = %+v", cfg.GenAI)
				}
				if cfg.GenAI.Timeout != 30*time.Second {
					t.Errorf("GenAI.Timeout = %v", cfg.GenAI.Timeout)
				}
				if cfg.EnableGenerate {
					t.Error("EnableGenerate should default to false")
				}
				if cfg.RateLimit != 60 {
					t.Errorf("RateLimit = %d", cfg.RateLimit)
				}
				if cfg.CORS.AllowedOrigins != "*" {
					t.Errorf("CORS.AllowedOrigins = %q", cfg.CORS.AllowedOrigins)
				}
				if cfg.Logging.Level != "info" {
					t.Errorf("Logging.Level = %q", cfg.Logging.Level)
				}
			},
		},
		{
			name: "custom values from environment",
			envVars: map[string]string{
				"PORT":            "9090",
				"ENVIRONMENT":     "production",
				"GENAI_PROVIDER":  "OpenAI",
				"GENAI_MODEL":     "gpt-4o-mini",
				"GEMINI_API_KEY":  "secret",
				"GENAI_TIMEOUT":   "5s",
				"ENABLE_GENERATE": "true",
				"LOG_FORMAT":      "json",
			},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Port != 9090 || cfg.Environment != "production" {
					t.Errorf("cfg = %+v", cfg)
				}
				if cfg.GenAI.Provider != "openai" {
					t.Errorf("Provider = %q, want normalized openai", cfg.GenAI.Provider)
				}
				if cfg.GenAI.APIKey != "secret" || cfg.GenAI.Model != "gpt-4o-mini" {
					t.Errorf("GenAI = %+v", cfg.GenAI)
				}
				if cfg.GenAI.Timeout != 5*time.Second {
					t.Errorf("Timeout = %v", cfg.GenAI.Timeout)
				}
				if !cfg.EnableGenerate {
					t.Error("EnableGenerate should be true")
				}
				if cfg.Logging.Format != "json" {
					t.Errorf("Logging.Format = %q", cfg.Logging.Format)
				}
			},
		},
		{
			name: "legacy API_KEY is honoured",
			envVars: map[string]string{
				"API_KEY": "legacy-key",
			},
			check: func(t *testing.T, cfg *Config) {
				if cfg.GenAI.APIKey != "legacy-key" {
					t.Errorf("APIKey = %q, want legacy-key", cfg.GenAI.APIKey)
				}
			},
		},
		{
			name: "GEMINI_API_KEY wins over API_KEY",
			envVars: map[string]string{
				"API_KEY":        "legacy-key",
				"GEMINI_API_KEY": "gemini-key",
			},
			check: func(t *testing.T, cfg *Config) {
				if cfg.GenAI.APIKey != "gemini-key" {
					t.Errorf("APIKey = %q, want gemini-key", cfg.GenAI.APIKey)
				}
			},
		},
		{
			name: "provider specific key",
			envVars: map[string]string{
				"GENAI_PROVIDER": "OpenAI",
				"OPENAI_API_KEY": "sk-test",
			},
			check: func(t *testing.T, cfg *Config) {
				if cfg.GenAI.Provider != "openai" {
					t.Errorf("Provider = %q, want openai", cfg.GenAI.Provider)
				}
				if cfg.GenAI.APIKey != "sk-test" {
					t.Errorf("APIKey = %q, want sk-test", cfg.GenAI.APIKey)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t, serverKeys)
			for key, value := range tt.envVars {
				t.Setenv(key, value)
			}

			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
	}{
		{name: "non numeric port", envVars: map[string]string{"PORT": "invalid"}},
		{name: "port out of range", envVars: map[string]string{"PORT": "70000"}},
		{name: "unknown provider", envVars: map[string]string{"GENAI_PROVIDER": "llama"}},
		{name: "zero timeout", envVars: map[string]string{"GENAI_TIMEOUT": "0s"}},
		{name: "negative rate limit", envVars: map[string]string{"RATE_LIMIT_PER_MINUTE": "-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t, serverKeys)
			for key, value := range tt.envVars {
				t.Setenv(key, value)
			}

			if _, err := Load(); err == nil {
				t.Error("Load() expected error, got nil")
			}
		})
	}
}

func TestLoadClient(t *testing.T) {
	clearEnv(t, clientKeys)

	cfg, err := LoadClient()
	if err != nil {
		t.Fatalf("LoadClient() error = %v", err)
	}
	if cfg.APIURL != "http://localhost:3001/api" {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}
	if cfg.APITimeout != 60*time.Second {
		t.Errorf("APITimeout = %v", cfg.APITimeout)
	}
	if cfg.StatePath == "" {
		t.Error("StatePath should have a default")
	}

	t.Setenv("GDICT_API_URL", "https://dict.example.com/api/")
	t.Setenv("GDICT_STATE_PATH", "/tmp/state.db")
	t.Setenv("GDICT_COLOR_SCHEME", "dark")

	cfg, err = LoadClient()
	if err != nil {
		t.Fatalf("LoadClient() error = %v", err)
	}
	if cfg.APIURL != "https://dict.example.com/api" {
		t.Errorf("APIURL = %q, want trailing slash trimmed", cfg.APIURL)
	}
	if cfg.StatePath != "/tmp/state.db" || cfg.ColorScheme != "dark" {
		t.Errorf("cfg = %+v", cfg)
	}
}
