// Package config loads engine configuration from an optional TOML file and
// environment variables, with environment taking precedence.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the configuration for the application.
type Config struct {
	DatabasePath string `toml:"database_path"`

	GeminiAPIKey string `toml:"-"`
	GeminiModel  string `toml:"gemini_model"`

	Knowledge KnowledgeConfig `toml:"knowledge"`
	Cache     CacheConfig     `toml:"cache"`
	Retry     RetryConfig     `toml:"retry"`
	Ranking   RankingConfig   `toml:"ranking"`

	MetricsRetentionDays int `toml:"metrics_retention_days"`
}

// KnowledgeConfig points at the external cultural knowledge service.
type KnowledgeConfig struct {
	BaseURL        string `toml:"base_url"`
	APIKey         string `toml:"-"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// CacheConfig tunes the cultural cache store.
type CacheConfig struct {
	TTLHours           int `toml:"ttl_hours"`
	RateLimitPerMinute int `toml:"rate_limit_per_minute"`
	BatchSize          int `toml:"batch_size"`
	BatchDelaySeconds  int `toml:"batch_delay_seconds"`
	SweepIntervalHours int `toml:"sweep_interval_hours"`
}

// RetryConfig tunes retries against the knowledge service.
type RetryConfig struct {
	MaxAttempts int `toml:"max_attempts"`
	BaseDelayMS int `toml:"base_delay_ms"`
}

// RankingConfig tunes candidate ranking.
type RankingConfig struct {
	RelevanceThreshold float64 `toml:"relevance_threshold"`
	VarietyThreshold   float64 `toml:"variety_threshold"`
}

// Default returns the built-in defaults, used when neither the config file
// nor the environment overrides a value.
func Default() *Config {
	return &Config{
		DatabasePath: "data/meal-plan-engine.db",
		GeminiModel:  "gemini-1.5-flash",
		Knowledge: KnowledgeConfig{
			TimeoutSeconds: 15,
		},
		Cache: CacheConfig{
			TTLHours:           24,
			RateLimitPerMinute: 10,
			BatchSize:          5,
			BatchDelaySeconds:  2,
			SweepIntervalHours: 6,
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			BaseDelayMS: 500,
		},
		Ranking: RankingConfig{
			RelevanceThreshold: 0.7,
			VarietyThreshold:   0.3,
		},
		MetricsRetentionDays: 30,
	}
}

// Load builds the effective configuration: defaults, then the TOML file at
// path (if path is non-empty), then environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// NewFromEnv creates the effective Config, honoring MEAL_PLAN_CONFIG as an
// optional path to a TOML file.
func NewFromEnv() (*Config, error) {
	return Load(os.Getenv("MEAL_PLAN_CONFIG"))
}

func (c *Config) applyEnv() {
	if v := os.Getenv("MEAL_PLAN_DB_PATH"); v != "" {
		c.DatabasePath = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.GeminiAPIKey = v
	}
	if v := os.Getenv("GEMINI_MODEL"); v != "" {
		c.GeminiModel = v
	}
	if v := os.Getenv("KNOWLEDGE_API_URL"); v != "" {
		c.Knowledge.BaseURL = v
	}
	if v := os.Getenv("KNOWLEDGE_API_KEY"); v != "" {
		c.Knowledge.APIKey = v
	}
	if v, ok := envInt("KNOWLEDGE_TIMEOUT_SECONDS"); ok {
		c.Knowledge.TimeoutSeconds = v
	}
	if v, ok := envInt("CACHE_TTL_HOURS"); ok {
		c.Cache.TTLHours = v
	}
	if v, ok := envInt("CACHE_RATE_LIMIT_PER_MINUTE"); ok {
		c.Cache.RateLimitPerMinute = v
	}
}

func envInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// validate rejects configurations the engine cannot run with and clamps
// tunables back to their defaults when set to nonsense.
func (c *Config) validate() error {
	if c.Knowledge.BaseURL == "" {
		return fmt.Errorf("KNOWLEDGE_API_URL environment variable not set")
	}
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}
	if c.Cache.TTLHours <= 0 {
		c.Cache.TTLHours = 24
	}
	if c.Cache.RateLimitPerMinute <= 0 {
		c.Cache.RateLimitPerMinute = 10
	}
	if c.Cache.BatchSize <= 0 {
		c.Cache.BatchSize = 5
	}
	if c.Retry.MaxAttempts <= 0 {
		c.Retry.MaxAttempts = 3
	}
	if c.Ranking.RelevanceThreshold <= 0 || c.Ranking.RelevanceThreshold > 1 {
		c.Ranking.RelevanceThreshold = 0.7
	}
	if c.Ranking.VarietyThreshold <= 0 || c.Ranking.VarietyThreshold > 1 {
		c.Ranking.VarietyThreshold = 0.3
	}
	return nil
}
