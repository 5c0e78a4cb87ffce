package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains the source, destination and log directories.
type Paths struct {
	SourceDir string `toml:"source_dir"`
	DestDir   string `toml:"dest_dir"`
	LogDir    string `toml:"log_dir"`
}

// Batch contains worker pool and file selection settings.
type Batch struct {
	Workers         int    `toml:"workers"`
	SkipExisting    bool   `toml:"skip_existing"`
	Extension       string `toml:"extension"`
	VerifySignature bool   `toml:"verify_signature"`
	RemovePartial   bool   `toml:"remove_partial"`
}

// Policy contains the track selection languages and subtitle keywords.
type Policy struct {
	AudioLanguage             string   `toml:"audio_language"`
	SubtitleLanguage          string   `toml:"subtitle_language"`
	PreferredSubtitleKeywords []string `toml:"preferred_subtitle_keywords"`
	ExcludedSubtitleKeywords  []string `toml:"excluded_subtitle_keywords"`
}

// MKVMerge contains settings for the mkvmerge binary.
type MKVMerge struct {
	Binary          string `toml:"binary"`
	DiagnosticLimit int    `toml:"diagnostic_limit"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Metrics contains the optional Prometheus textfile export path.
type Metrics struct {
	Textfile string `toml:"textfile"`
}

// Config encapsulates all configuration values for mkvreorder.
//
// Configuration sections by subsystem:
//   - Paths: source tree, destination tree and log directory
//   - Batch: worker count, skip-existing policy and file selection
//   - Policy: audio/subtitle languages and subtitle name keywords
//   - MKVMerge: binary location and diagnostic truncation
//   - Logging: log format and level
//   - Metrics: Prometheus textfile output
type Config struct {
	Paths    Paths    `toml:"paths"`
	Batch    Batch    `toml:"batch"`
	Policy   Policy   `toml:"policy"`
	MKVMerge MKVMerge `toml:"mkvmerge"`
	Logging  Logging  `toml:"logging"`
	Metrics  Metrics  `toml:"metrics"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. A missing file is
// not an error: defaults and environment fallbacks apply. The returned config
// has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()
	if err := cfg.applyEnv(); err != nil {
		return nil, "", false, err
	}

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolvedPath, err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the destination and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DestDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// MKVMergeBinary returns the mkvmerge executable name or path.
func (c *Config) MKVMergeBinary() string {
	if binary := strings.TrimSpace(c.MKVMerge.Binary); binary != "" {
		return binary
	}
	return defaultMKVMergeBinary
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
