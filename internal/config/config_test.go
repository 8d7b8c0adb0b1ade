package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"HOST", "PORT", "HF_API_KEY", "HF_MODEL_ID", "HF_BASE_URL",
		"LLM_TIMEOUT_SECONDS", "DATABASE_URL", "POSTGRES_NOTIFY_CHANNEL", "STATIC_DIR",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.Equal(t, "meta-llama/Meta-Llama-3-8B-Instruct", cfg.HFModelID)
	assert.Equal(t, "https://router.huggingface.co/v1", cfg.HFBaseURL)
	assert.Equal(t, 60*time.Second, cfg.LLMTimeout)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, "emergency_alerts", cfg.NotifyChannel)
	assert.Equal(t, "static", cfg.StaticDir)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("PORT", "9000")
	t.Setenv("HF_API_KEY", "hf_test")
	t.Setenv("HF_MODEL_ID", "some/other-model")
	t.Setenv("LLM_TIMEOUT_SECONDS", "2.5")

	cfg := Load()
	assert.Equal(t, "127.0.0.1:9000", cfg.Addr())
	assert.Equal(t, "hf_test", cfg.HFAPIKey)
	assert.Equal(t, "some/other-model", cfg.HFModelID)
	assert.Equal(t, 2500*time.Millisecond, cfg.LLMTimeout)
}

func TestLoad_InvalidPortFallsBack(t *testing.T) {
	t.Setenv("PORT", "not-a-number")
	cfg := Load()
	assert.Equal(t, 8080, cfg.Port)
}
