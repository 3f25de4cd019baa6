package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.WorkerCount != 2 {
		t.Errorf("expected default worker count 2, got %d", cfg.WorkerCount)
	}
	if !cfg.UseMemoryQueue {
		t.Error("expected memory queue by default")
	}
	if cfg.LLMProvider != "openai" {
		t.Errorf("expected default provider openai, got %s", cfg.LLMProvider)
	}
	if cfg.DefaultLanguage != "en" {
		t.Errorf("expected default language en, got %s", cfg.DefaultLanguage)
	}
	if cfg.AgentTimeout != 45*time.Second {
		t.Errorf("expected 45s agent timeout, got %s", cfg.AgentTimeout)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("WORKER_COUNT", "5")
	t.Setenv("LLM_PROVIDER", "Gemini")
	t.Setenv("AGENT_TIMEOUT", "10s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("LLM_TEMPERATURE", "0.2")

	cfg := Load()

	if cfg.Port != "9000" {
		t.Errorf("expected port 9000, got %s", cfg.Port)
	}
	if cfg.WorkerCount != 5 {
		t.Errorf("expected worker count 5, got %d", cfg.WorkerCount)
	}
	if cfg.LLMProvider != "gemini" {
		t.Errorf("expected normalized provider gemini, got %s", cfg.LLMProvider)
	}
	if cfg.AgentTimeout != 10*time.Second {
		t.Errorf("expected 10s timeout, got %s", cfg.AgentTimeout)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example" {
		t.Errorf("unexpected CORS origins: %#v", cfg.CORSAllowedOrigins)
	}
	if cfg.LLMTemperature != 0.2 {
		t.Errorf("expected temperature 0.2, got %f", cfg.LLMTemperature)
	}
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("WORKER_COUNT", "not-a-number")
	t.Setenv("USE_MEMORY_QUEUE", "maybe")
	t.Setenv("TELEGRAM_RETRY_BACKOFF", "soon")

	cfg := Load()

	if cfg.WorkerCount != 2 {
		t.Errorf("expected fallback worker count 2, got %d", cfg.WorkerCount)
	}
	if !cfg.UseMemoryQueue {
		t.Error("expected fallback memory queue true")
	}
	if cfg.TelegramRetryBackoff != 250*time.Millisecond {
		t.Errorf("expected fallback backoff, got %s", cfg.TelegramRetryBackoff)
	}
}
