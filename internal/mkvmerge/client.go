package mkvmerge

import (
	"errors"
	"strings"
)

// DefaultDiagnosticLimit bounds the diagnostic text kept from a failed run.
const DefaultDiagnosticLimit = 200

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// WithDiagnosticLimit sets how many runes of diagnostic output are kept.
// Zero keeps everything.
func WithDiagnosticLimit(limit int) Option {
	return func(c *Client) {
		if limit >= 0 {
			c.diagnosticLimit = limit
		}
	}
}

// WithKeepPartial leaves the temporary output in place when a mux fails.
func WithKeepPartial(keep bool) Option {
	return func(c *Client) {
		c.keepPartial = keep
	}
}

// Client wraps mkvmerge CLI interactions.
type Client struct {
	binary          string
	exec            Executor
	diagnosticLimit int
	keepPartial     bool
}

// New constructs an mkvmerge client.
func New(binary string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("mkvmerge binary required")
	}
	client := &Client{
		binary:          binary,
		exec:            commandExecutor{},
		diagnosticLimit: DefaultDiagnosticLimit,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Binary returns the configured executable.
func (c *Client) Binary() string {
	return c.binary
}
