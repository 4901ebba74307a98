package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// defaultPath is read when CONFIG_PATH is unset. It may be absent.
const defaultPath = "./config.yaml"

// Load builds the configuration from env-default tags, then the YAML file,
// then the environment, each layer overriding the one before. An explicit
// CONFIG_PATH must exist; the default path is optional.
func Load() (*Config, error) {
	var cfg Config

	path, explicit := os.LookupEnv("CONFIG_PATH")
	if path == "" {
		path, explicit = defaultPath, false
	}

	_, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	case explicit || !errors.Is(statErr, fs.ErrNotExist):
		return nil, fmt.Errorf("config: file %s: %w", path, statErr)
	default:
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	cfg.applyFallbacks()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// applyFallbacks fills settings that have more than one accepted source and
// strips stray whitespace from pasted keys.
func (c *Config) applyFallbacks() {
	if c.AI.GeminiAPIKey == "" {
		c.AI.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}
	c.AI.GeminiAPIKey = strings.TrimSpace(c.AI.GeminiAPIKey)
	c.AI.AnthropicAPIKey = strings.TrimSpace(c.AI.AnthropicAPIKey)
}
