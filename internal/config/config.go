// Package config loads server configuration from environment variables.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the assistant server.
type Config struct {
	// Server configuration
	Host string
	Port int

	// Hugging Face inference configuration
	HFAPIKey  string
	HFModelID string
	HFBaseURL string

	// LLMTimeout bounds a single model invocation, connection included.
	LLMTimeout time.Duration

	// Audit store configuration.  Auditing is disabled when DatabaseURL
	// is empty.
	DatabaseURL   string
	NotifyChannel string

	// StaticDir is the directory served under /static; its index.html is
	// served at /.
	StaticDir string
}

// Addr returns the listen address in host:port form.
func (c *Config) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		Host: getEnv("HOST", "0.0.0.0"),
		Port: getEnvInt("PORT", 8080),

		HFAPIKey:  os.Getenv("HF_API_KEY"),
		HFModelID: getEnv("HF_MODEL_ID", "meta-llama/Meta-Llama-3-8B-Instruct"),
		HFBaseURL: getEnv("HF_BASE_URL", "https://router.huggingface.co/v1"),

		LLMTimeout: getEnvDuration("LLM_TIMEOUT_SECONDS", 60*time.Second),

		DatabaseURL:   os.Getenv("DATABASE_URL"),
		NotifyChannel: getEnv("POSTGRES_NOTIFY_CHANNEL", "emergency_alerts"),

		StaticDir: getEnv("STATIC_DIR", "static"),
	}
}

// getEnv gets an environment variable with a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration gets a duration environment variable expressed in
// seconds (float accepted).
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return time.Duration(floatVal * float64(time.Second))
		}
	}
	return defaultValue
}
