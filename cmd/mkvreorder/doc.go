// Package main hosts the mkvreorder CLI entrypoint and command graph.
//
// The Cobra-based command tree loads configuration, runs preflight checks and
// hands the discovered files to the batch pool. It also exposes single-file
// inspection, an environment status report and configuration scaffolding.
//
// Keep this package lean: behaviour belongs in the internal packages and is
// surfaced here through commands and flags.
package main
