package mkvmerge

import (
	"bufio"
	"bytes"
	"context"
	"strings"

	"mkvreorder/internal/services"
)

// Version returns the first line of `mkvmerge --version`, for example
// "mkvmerge v80.0 ('Roundabout') 64-bit".
func (c *Client) Version(ctx context.Context) (string, error) {
	stdout, stderr, err := c.exec.Run(ctx, c.binary, []string{"--version"})
	if err != nil {
		return "", services.Wrap(services.ErrExternalTool, "mkvmerge", "version", "", c.exitError(err, stdout, stderr))
	}
	scanner := bufio.NewScanner(bytes.NewReader(stdout))
	if scanner.Scan() {
		return strings.TrimSpace(scanner.Text()), nil
	}
	return "", nil
}
