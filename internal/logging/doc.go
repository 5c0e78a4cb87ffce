// Package logging assembles structured slog loggers and formatting helpers used
// across mkvreorder.
//
// It owns the console and JSON handlers, the fan-out that sends console output
// to the terminal and JSON lines to the log directory, and context-aware
// helpers so batch workers automatically tag log lines with the file being
// processed and its correlation ID. The package also provides a no-op logger
// for tests and wiring code that cannot fail.
package logging
