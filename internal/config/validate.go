package config

import (
	"fmt"
	"time"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Storage.validate(); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.AI.validate(); err != nil {
		return fmt.Errorf("ai: %w", err)
	}
	if err := positive("weather.timeout", c.Weather.Timeout); err != nil {
		return err
	}
	if c.Shop.CheckoutDelay < 0 {
		return fmt.Errorf("shop.checkout_delay must be >= 0 (got %s)", c.Shop.CheckoutDelay)
	}
	if c.RateLimit.AIRequestsPerMinute <= 0 {
		return fmt.Errorf("ratelimit.ai_requests_per_minute must be > 0 (got %d)", c.RateLimit.AIRequestsPerMinute)
	}
	if err := positive("server.shutdown_timeout", c.Server.ShutdownTimeout); err != nil {
		return err
	}
	return nil
}

func (s *StorageConfig) validate() error {
	if s.CacheSize <= 0 {
		return fmt.Errorf("cache_size must be > 0 (got %d)", s.CacheSize)
	}
	switch s.Driver {
	case DriverPostgres:
		if s.Postgres.DSN == "" {
			return fmt.Errorf("postgres.dsn is required for driver %q", s.Driver)
		}
	case DriverSQLite:
		if s.SQLite.Path == "" {
			return fmt.Errorf("sqlite.path is required for driver %q", s.Driver)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown driver %q (want postgres, sqlite or memory)", s.Driver)
	}
	return nil
}

func (a *AIConfig) validate() error {
	switch a.Provider {
	case ProviderGemini, ProviderAnthropic:
	default:
		return fmt.Errorf("unknown provider %q (want gemini or anthropic)", a.Provider)
	}
	if err := positive("request_timeout", a.RequestTimeout); err != nil {
		return err
	}
	if a.MaxImageBytes <= 0 {
		return fmt.Errorf("max_image_bytes must be > 0 (got %d)", a.MaxImageBytes)
	}
	if a.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be > 0 (got %d)", a.MaxTokens)
	}
	return nil
}

// APIKey returns the key for the selected provider.
func (a AIConfig) APIKey() string {
	if a.Provider == ProviderAnthropic {
		return a.AnthropicAPIKey
	}
	return a.GeminiAPIKey
}

func positive(name string, d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("%s must be > 0 (got %s)", name, d)
	}
	return nil
}
