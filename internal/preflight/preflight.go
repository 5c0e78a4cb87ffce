package preflight

import (
	"errors"
	"fmt"
	"strings"

	"mkvreorder/internal/config"
	"mkvreorder/internal/services"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes the source, destination and mkvmerge checks for cfg.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}
	results := []Result{
		CheckReadableDir("Source directory", cfg.Paths.SourceDir),
		CheckWritableDir("Destination directory", cfg.Paths.DestDir),
	}
	for _, status := range CheckSystemDeps(cfg) {
		detail := status.Detail
		if status.Available {
			detail = status.Path
		}
		results = append(results, Result{
			Name:   status.Name,
			Passed: status.Available || status.Optional,
			Detail: detail,
		})
	}
	return results
}

// Err folds failed results into a single configuration error, or nil when
// every check passed.
func Err(results []Result) error {
	var failed []string
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, fmt.Sprintf("%s: %s", r.Name, r.Detail))
		}
	}
	if len(failed) == 0 {
		return nil
	}
	return fmt.Errorf("%w: preflight failed: %w", services.ErrConfiguration, errors.New(strings.Join(failed, "; ")))
}
