package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "ALLOWED_ORIGIN", "CATALOG_PATH", "DATABASE_URL",
		"REDIS_ADDR", "REDIS_DB", "SESSION_TTL_MINUTES",
		"AUTH_SECRET", "ACCESS_TOKEN_TTL_MINUTES", "API_USER", "API_PASSWORD",
		"OPENAI_API_KEY", "OPENAI_BASE_URL", "LLM_MODEL", "LLM_TEMPERATURE", "LLM_MAX_TOKENS",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.Address() != ":8080" {
		t.Fatalf("unexpected address %q", cfg.Address())
	}
	if cfg.SessionTTLMinutes != 60 {
		t.Fatalf("expected session ttl 60, got %d", cfg.SessionTTLMinutes)
	}
	if cfg.AccessTokenTTLMinutes != 480 {
		t.Fatalf("expected token ttl 480, got %d", cfg.AccessTokenTTLMinutes)
	}
	if cfg.APIUser != "demo" {
		t.Fatalf("expected default api user, got %q", cfg.APIUser)
	}
	if cfg.LLM.Model != "gpt-4o-mini" {
		t.Fatalf("expected default model, got %q", cfg.LLM.Model)
	}
	if cfg.LLM.Temperature != 0.7 || cfg.LLM.MaxTokens != 1000 {
		t.Fatalf("unexpected llm defaults: %+v", cfg.LLM)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LLM_MODEL", "gpt-4o")
	t.Setenv("LLM_TEMPERATURE", "0.2")
	t.Setenv("SESSION_TTL_MINUTES", "15")
	t.Setenv("OPENAI_API_KEY", "  sk-test  ")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Fatalf("expected port 9090, got %q", cfg.Port)
	}
	if cfg.LLM.Model != "gpt-4o" || cfg.LLM.Temperature != 0.2 {
		t.Fatalf("unexpected llm config: %+v", cfg.LLM)
	}
	if cfg.SessionTTLMinutes != 15 {
		t.Fatalf("expected session ttl 15, got %d", cfg.SessionTTLMinutes)
	}
	if cfg.LLM.APIKey != "sk-test" {
		t.Fatalf("api key should be trimmed, got %q", cfg.LLM.APIKey)
	}
}

func TestLoadRejectsBadNumbers(t *testing.T) {
	t.Setenv("SESSION_TTL_MINUTES", "not-a-number")
	t.Setenv("LLM_TEMPERATURE", "5.0")
	t.Setenv("LLM_MAX_TOKENS", "-3")

	cfg := Load()

	if cfg.SessionTTLMinutes != 60 {
		t.Fatalf("bad ttl should fall back to 60, got %d", cfg.SessionTTLMinutes)
	}
	if cfg.LLM.Temperature != 0.7 {
		t.Fatalf("out-of-range temperature should fall back, got %v", cfg.LLM.Temperature)
	}
	if cfg.LLM.MaxTokens != 1000 {
		t.Fatalf("bad max tokens should fall back, got %d", cfg.LLM.MaxTokens)
	}
}
