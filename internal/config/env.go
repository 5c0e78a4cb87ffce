package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables consulted before the config file is decoded. Values
// from the file take precedence.
const (
	EnvSourceDir = "MKVREORDER_SOURCE_DIR"
	EnvDestDir   = "MKVREORDER_DEST_DIR"
	EnvWorkers   = "MKVREORDER_WORKERS"
	EnvMKVMerge  = "MKVREORDER_MKVMERGE"
)

// LoadEnvFile reads KEY=VALUE pairs into the process environment. Variables
// that are already set are left untouched. With an empty path ".env" is read
// if present; an explicit path must exist.
func LoadEnvFile(path string) error {
	if strings.TrimSpace(path) == "" {
		if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load .env: %w", err)
		}
		return nil
	}
	expanded, err := expandPath(path)
	if err != nil {
		return err
	}
	if err := godotenv.Load(expanded); err != nil {
		return fmt.Errorf("load env file %s: %w", expanded, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if value, ok := lookupEnv(EnvSourceDir); ok {
		c.Paths.SourceDir = value
	}
	if value, ok := lookupEnv(EnvDestDir); ok {
		c.Paths.DestDir = value
	}
	if value, ok := lookupEnv(EnvMKVMerge); ok {
		c.MKVMerge.Binary = value
	}
	if value, ok := lookupEnv(EnvWorkers); ok {
		workers, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s: invalid worker count %q", EnvWorkers, value)
		}
		c.Batch.Workers = workers
	}
	return nil
}

func lookupEnv(key string) (string, bool) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	return value, value != ""
}
