// Package services defines shared helpers consumed by the batch pipeline and
// the external tool wrappers.
//
// Key responsibilities:
//   - Context helpers that stamp the file being processed and a correlation
//     identifier for logging.
//   - Structured error markers plus the Wrap helper that let the pipeline map
//     failures to per-file outcomes (skipped vs failed).
//
// Use these helpers when wiring new pipeline steps so skip and failure
// reporting stays uniform across the batch.
package services
