package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Material.BatchSize <= 0 {
		return fmt.Errorf("material.batch_size must be > 0 (got %d)", c.Material.BatchSize)
	}
	if c.Classifier.Command == "" {
		return fmt.Errorf("classifier.command is required")
	}
	if c.Spotify.Timeout <= 0 || c.Genius.Timeout <= 0 || c.Gemini.Timeout <= 0 {
		return fmt.Errorf("provider timeouts must be > 0")
	}
	return nil
}
