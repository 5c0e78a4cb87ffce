// Package config loads, normalizes, and validates mkvreorder configuration.
//
// It supplies defaults that reproduce the tool's built-in behaviour (source
// "Original", destination "Modified", four workers, Japanese audio with
// English subtitles), reads an optional TOML file, expands user paths
// (including tilde shortcuts), and honours environment fallbacks such as
// MKVREORDER_SOURCE_DIR. A .env file can seed those variables.
//
// Always obtain settings through this package so downstream code receives
// absolute paths, canonical enums, and clear validation errors.
package config
