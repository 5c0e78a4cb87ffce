package mkvmerge

import (
	"context"
	"fmt"
	"os"
	"strings"

	"mkvreorder/internal/fileutil"
	"mkvreorder/internal/services"
)

// TrackFlag sets the default-track and forced-display flags of one track.
type TrackFlag struct {
	TrackID int
	Enabled bool
}

// MuxRequest describes one remux of Input into Output.
type MuxRequest struct {
	Input  string
	Output string
	Flags  []TrackFlag
	Order  []int
}

// BuildArgs renders the mkvmerge argument list for req:
//
//	-o <output> [--default-track-flag id:yes|no --forced-display-flag id:yes|no]... --track-order 0:a,0:b <input>
func BuildArgs(req MuxRequest) []string {
	args := make([]string, 0, 4+len(req.Flags)*4+2)
	args = append(args, "-o", req.Output)
	for _, f := range req.Flags {
		value := fmt.Sprintf("%d:%s", f.TrackID, yesNo(f.Enabled))
		args = append(args, "--default-track-flag", value, "--forced-display-flag", value)
	}
	if len(req.Order) > 0 {
		order := make([]string, len(req.Order))
		for i, id := range req.Order {
			order[i] = fmt.Sprintf("0:%d", id)
		}
		args = append(args, "--track-order", strings.Join(order, ","))
	}
	return append(args, req.Input)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

// CommandLine returns the full invocation for req as an argument vector,
// binary first.
func (c *Client) CommandLine(req MuxRequest) []string {
	return append([]string{c.binary}, BuildArgs(req)...)
}

// Mux remuxes req.Input into req.Output. mkvmerge writes to a hidden sibling
// of the output, which is renamed over req.Output on success and removed on
// failure unless the client keeps partial output.
func (c *Client) Mux(ctx context.Context, req MuxRequest) error {
	if strings.TrimSpace(req.Input) == "" || strings.TrimSpace(req.Output) == "" {
		return services.Wrap(services.ErrValidation, "mkvmerge", "mux", "input and output paths are required", nil)
	}

	tmpPath := fileutil.TempSibling(req.Output)
	staged := req
	staged.Output = tmpPath

	stdout, stderr, err := c.exec.Run(ctx, c.binary, BuildArgs(staged))
	if err != nil {
		c.discard(tmpPath)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return services.Wrap(services.ErrMux, "mkvmerge", "mux", "", c.exitError(err, stdout, stderr))
	}

	if _, err := os.Stat(tmpPath); err != nil {
		return services.Wrap(services.ErrMux, "mkvmerge", "mux", "no output produced", err)
	}
	if err := os.Rename(tmpPath, req.Output); err != nil {
		c.discard(tmpPath)
		return services.Wrap(services.ErrMux, "mkvmerge", "mux", "move output into place", err)
	}
	return nil
}

func (c *Client) discard(path string) {
	if c.keepPartial {
		return
	}
	_ = os.Remove(path)
}
