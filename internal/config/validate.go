package config

import (
	"errors"
	"fmt"
)

// MaxChunkSize is the largest symbol batch a single download may carry.
const MaxChunkSize = 100

var validFormats = map[string]bool{"json": true, "csv": true, "xlsx": true}

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	if c.Provider.BaseURL == "" {
		return errors.New("provider.base_url is required")
	}
	if c.Provider.Timeout <= 0 {
		return errors.New("provider.timeout must be positive")
	}
	if c.Provider.RequestsPerSecond <= 0 {
		return errors.New("provider.requests_per_second must be positive")
	}
	if c.Calendar.ReferenceSymbol == "" {
		return errors.New("calendar.reference_symbol is required")
	}

	if c.Sampling.TargetPoints < 2 {
		return fmt.Errorf("sampling.target_points must be >= 2, got %d", c.Sampling.TargetPoints)
	}
	seen := make(map[string]bool, len(c.Sampling.Timeframes))
	for i, tf := range c.Sampling.Timeframes {
		if tf.Label == "" {
			return fmt.Errorf("sampling.timeframes[%d].label is required", i)
		}
		if seen[tf.Label] {
			return fmt.Errorf("sampling.timeframes: duplicate label %q", tf.Label)
		}
		seen[tf.Label] = true
		if tf.Days <= 0 {
			return fmt.Errorf("sampling.timeframes[%s].days must be positive", tf.Label)
		}
		if tf.TargetPoints < 2 {
			return fmt.Errorf("sampling.timeframes[%s].target_points must be >= 2", tf.Label)
		}
	}

	if c.Retrieval.ChunkSize < 1 || c.Retrieval.ChunkSize > MaxChunkSize {
		return fmt.Errorf("retrieval.chunk_size must be between 1 and %d, got %d", MaxChunkSize, c.Retrieval.ChunkSize)
	}
	if c.Retrieval.Concurrency < 1 {
		return errors.New("retrieval.concurrency must be >= 1")
	}

	if c.Universe.File == "" {
		return errors.New("universe.file is required")
	}
	if c.Normalization.ReferenceAsset == "" {
		return errors.New("normalization.reference_asset is required")
	}

	if c.Output.Dir == "" {
		return errors.New("output.dir is required")
	}
	for _, f := range c.Output.Formats {
		if !validFormats[f] {
			return fmt.Errorf("output.formats: unknown format %q (want json, csv or xlsx)", f)
		}
	}

	if c.Telegram.Enabled {
		if c.Telegram.BotToken == "" {
			return errors.New("telegram.bot_token is required when telegram is enabled")
		}
		if c.Telegram.ChatID == "" {
			return errors.New("telegram.chat_id is required when telegram is enabled")
		}
	}
	return nil
}

// HasFormat reports whether f is one of the configured output formats.
func (c *Config) HasFormat(f string) bool {
	for _, x := range c.Output.Formats {
		if x == f {
			return true
		}
	}
	return false
}
