package mkvmerge

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"mkvreorder/internal/services"
	"mkvreorder/internal/textutil"
)

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string) (stdout, stderr []byte, err error)
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// ExitError describes a failed mkvmerge invocation. Code is -1 when the
// process could not be started.
type ExitError struct {
	Code       int
	Diagnostic string
	Err        error
}

func (e *ExitError) Error() string {
	if e.Code < 0 {
		return fmt.Sprintf("mkvmerge did not run: %v", e.Err)
	}
	if e.Diagnostic == "" {
		return fmt.Sprintf("mkvmerge exited with status %d", e.Code)
	}
	return fmt.Sprintf("mkvmerge exited with status %d: %s", e.Code, e.Diagnostic)
}

func (e *ExitError) Unwrap() error { return e.Err }

// Is marks every ExitError as an external tool failure.
func (e *ExitError) Is(target error) bool {
	return target == services.ErrExternalTool
}

// exitError converts a run error into an ExitError. mkvmerge reports most
// problems on stdout, so stdout is the fallback when stderr is empty.
func (c *Client) exitError(err error, stdout, stderr []byte) *ExitError {
	diag := strings.TrimSpace(string(stderr))
	if diag == "" {
		diag = strings.TrimSpace(string(stdout))
	}
	code := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.ExitCode()
	}
	return &ExitError{
		Code:       code,
		Diagnostic: textutil.Truncate(diag, c.diagnosticLimit),
		Err:        err,
	}
}
