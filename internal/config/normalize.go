package config

import (
	"fmt"
	"slices"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeBatch()
	c.normalizePolicy()
	if err := c.normalizeMKVMerge(); err != nil {
		return err
	}
	c.normalizeLogging()
	return c.normalizeMetrics()
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.SourceDir) == "" {
		c.Paths.SourceDir = defaultSourceDir
	}
	if c.Paths.SourceDir, err = expandPath(strings.TrimSpace(c.Paths.SourceDir)); err != nil {
		return fmt.Errorf("paths.source_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.DestDir) == "" {
		c.Paths.DestDir = defaultDestDir
	}
	if c.Paths.DestDir, err = expandPath(strings.TrimSpace(c.Paths.DestDir)); err != nil {
		return fmt.Errorf("paths.dest_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeBatch() {
	ext := strings.ToLower(strings.TrimSpace(c.Batch.Extension))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	c.Batch.Extension = ext
}

func (c *Config) normalizePolicy() {
	c.Policy.AudioLanguage = strings.ToLower(strings.TrimSpace(c.Policy.AudioLanguage))
	c.Policy.SubtitleLanguage = strings.ToLower(strings.TrimSpace(c.Policy.SubtitleLanguage))
	c.Policy.PreferredSubtitleKeywords = normalizeKeywords(c.Policy.PreferredSubtitleKeywords)
	c.Policy.ExcludedSubtitleKeywords = normalizeKeywords(c.Policy.ExcludedSubtitleKeywords)
}

func normalizeKeywords(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		normalized := strings.ToLower(strings.TrimSpace(value))
		if normalized == "" || slices.Contains(out, normalized) {
			continue
		}
		out = append(out, normalized)
	}
	return out
}

func (c *Config) normalizeMKVMerge() error {
	binary := strings.TrimSpace(c.MKVMerge.Binary)
	if binary == "" {
		binary = defaultMKVMergeBinary
	}
	// Bare names are resolved on PATH; anything with a separator is a path.
	if strings.ContainsRune(binary, '/') || strings.HasPrefix(binary, "~") {
		expanded, err := expandPath(binary)
		if err != nil {
			return fmt.Errorf("mkvmerge.binary: %w", err)
		}
		binary = expanded
	}
	c.MKVMerge.Binary = binary
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func (c *Config) normalizeMetrics() error {
	var err error
	if c.Metrics.Textfile, err = expandPath(strings.TrimSpace(c.Metrics.Textfile)); err != nil {
		return fmt.Errorf("metrics.textfile: %w", err)
	}
	return nil
}
