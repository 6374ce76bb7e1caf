package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewFromEnv(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		t.Setenv("MEAL_PLAN_CONFIG", "")
		t.Setenv("KNOWLEDGE_API_URL", "http://knowledge.test")
		t.Setenv("KNOWLEDGE_API_KEY", "knowledge_key")
		t.Setenv("GEMINI_API_KEY", "gemini_key")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.Knowledge.BaseURL != "http://knowledge.test" {
			t.Errorf("Expected BaseURL to be 'http://knowledge.test', got '%s'", cfg.Knowledge.BaseURL)
		}
		if cfg.GeminiAPIKey != "gemini_key" {
			t.Errorf("Expected GeminiAPIKey to be 'gemini_key', got '%s'", cfg.GeminiAPIKey)
		}
		if cfg.Cache.TTLHours != 24 {
			t.Errorf("Expected default TTL of 24 hours, got %d", cfg.Cache.TTLHours)
		}
		if cfg.Ranking.RelevanceThreshold != 0.7 {
			t.Errorf("Expected default relevance threshold 0.7, got %f", cfg.Ranking.RelevanceThreshold)
		}
	})

	t.Run("MissingKnowledgeURL", func(t *testing.T) {
		t.Setenv("MEAL_PLAN_CONFIG", "")
		t.Setenv("GEMINI_API_KEY", "gemini_key")
		os.Unsetenv("KNOWLEDGE_API_URL")

		_, err := NewFromEnv()
		if err == nil {
			t.Fatal("Expected an error for missing KNOWLEDGE_API_URL, got nil")
		}
	})

	t.Run("MissingGeminiKey", func(t *testing.T) {
		t.Setenv("MEAL_PLAN_CONFIG", "")
		t.Setenv("KNOWLEDGE_API_URL", "http://knowledge.test")
		os.Unsetenv("GEMINI_API_KEY")

		_, err := NewFromEnv()
		if err == nil {
			t.Fatal("Expected an error for missing GEMINI_API_KEY, got nil")
		}
	})

	t.Run("EnvOverridesDefaults", func(t *testing.T) {
		t.Setenv("MEAL_PLAN_CONFIG", "")
		t.Setenv("KNOWLEDGE_API_URL", "http://knowledge.test")
		t.Setenv("GEMINI_API_KEY", "gemini_key")
		t.Setenv("CACHE_TTL_HOURS", "48")
		t.Setenv("CACHE_RATE_LIMIT_PER_MINUTE", "3")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.Cache.TTLHours != 48 {
			t.Errorf("Expected TTL of 48 hours, got %d", cfg.Cache.TTLHours)
		}
		if cfg.Cache.RateLimitPerMinute != 3 {
			t.Errorf("Expected rate limit 3, got %d", cfg.Cache.RateLimitPerMinute)
		}
	})
}

func TestLoadTOMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "engine.toml")
	content := `
database_path = "custom/engine.db"
gemini_model = "gemini-1.5-pro"

[cache]
ttl_hours = 12
rate_limit_per_minute = 5

[ranking]
relevance_threshold = 0.8
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("KNOWLEDGE_API_URL", "http://knowledge.test")
	t.Setenv("GEMINI_API_KEY", "gemini_key")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.DatabasePath != "custom/engine.db" {
		t.Errorf("Expected custom database path, got '%s'", cfg.DatabasePath)
	}
	if cfg.GeminiModel != "gemini-1.5-pro" {
		t.Errorf("Expected gemini-1.5-pro, got '%s'", cfg.GeminiModel)
	}
	if cfg.Cache.TTLHours != 12 {
		t.Errorf("Expected TTL 12 hours, got %d", cfg.Cache.TTLHours)
	}
	if cfg.Ranking.RelevanceThreshold != 0.8 {
		t.Errorf("Expected relevance threshold 0.8, got %f", cfg.Ranking.RelevanceThreshold)
	}
	// Untouched sections keep their defaults.
	if cfg.Retry.MaxAttempts != 3 {
		t.Errorf("Expected default retry attempts 3, got %d", cfg.Retry.MaxAttempts)
	}
}

func TestLoadEnvBeatsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "engine.toml")
	if err := os.WriteFile(path, []byte("[cache]\nttl_hours = 12\n"), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("KNOWLEDGE_API_URL", "http://knowledge.test")
	t.Setenv("GEMINI_API_KEY", "gemini_key")
	t.Setenv("CACHE_TTL_HOURS", "72")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.Cache.TTLHours != 72 {
		t.Errorf("Expected env to override file TTL, got %d", cfg.Cache.TTLHours)
	}
}
