package config

import (
	"errors"
	"fmt"

	"mkvreorder/internal/services"
)

// Validate ensures the configuration is usable. Errors carry the
// services.ErrConfiguration marker.
func (c *Config) Validate() error {
	for _, check := range []func() error{
		c.validatePaths,
		c.validateBatch,
		c.validatePolicy,
		c.validateMKVMerge,
		c.validateLogging,
	} {
		if err := check(); err != nil {
			return fmt.Errorf("%w: %w", services.ErrConfiguration, err)
		}
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.SourceDir == "" {
		return errors.New("paths.source_dir must be set")
	}
	if c.Paths.DestDir == "" {
		return errors.New("paths.dest_dir must be set")
	}
	if c.Paths.SourceDir == c.Paths.DestDir {
		return errors.New("paths.dest_dir must differ from paths.source_dir")
	}
	return nil
}

func (c *Config) validateBatch() error {
	if c.Batch.Workers < 1 {
		return errors.New("batch.workers must be at least 1")
	}
	if c.Batch.Extension == "" || c.Batch.Extension == "." {
		return errors.New("batch.extension must be set")
	}
	return nil
}

func (c *Config) validatePolicy() error {
	if c.Policy.AudioLanguage == "" {
		return errors.New("policy.audio_language must be set")
	}
	if c.Policy.SubtitleLanguage == "" {
		return errors.New("policy.subtitle_language must be set")
	}
	return nil
}

func (c *Config) validateMKVMerge() error {
	if c.MKVMerge.DiagnosticLimit < 0 {
		return errors.New("mkvmerge.diagnostic_limit must be >= 0")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format %q is not supported (use console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level %q is not supported", c.Logging.Level)
	}
	return nil
}
