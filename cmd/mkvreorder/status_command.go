package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"mkvreorder/internal/mkvmerge"
	"mkvreorder/internal/preflight"
)

const versionTimeout = 5 * time.Second

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check mkvmerge and the source and destination directories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			lines := renderSectionHeader("Configuration", colorize)
			if ctx.configPath != "" {
				lines = append(lines, renderStatusLine("Config file", statusInfo, ctx.configPath, colorize))
			}
			lines = append(lines,
				renderStatusLine("Workers", statusInfo, fmt.Sprintf("%d", cfg.Batch.Workers), colorize),
				renderStatusLine("Skip existing", statusInfo, yesNo(cfg.Batch.SkipExisting), colorize),
				renderStatusLine("Audio language", statusInfo, cfg.Policy.AudioLanguage, colorize),
				renderStatusLine("Subtitle language", statusInfo, cfg.Policy.SubtitleLanguage, colorize),
			)

			lines = append(lines, "")
			lines = append(lines, renderSectionHeader("Checks", colorize)...)
			results := preflight.RunAll(cfg)
			for _, r := range results {
				kind := statusOK
				if !r.Passed {
					kind = statusError
				}
				lines = append(lines, renderStatusLine(r.Name, kind, r.Detail, colorize))
			}
			if version := mkvmergeVersion(cmd.Context(), cfg.MKVMergeBinary()); version != "" {
				lines = append(lines, renderStatusLine("mkvmerge version", statusInfo, version, colorize))
			}

			fmt.Fprintln(out, strings.Join(lines, "\n"))
			return preflight.Err(results)
		},
	}
}

func mkvmergeVersion(ctx context.Context, binary string) string {
	client, err := mkvmerge.New(binary)
	if err != nil {
		return ""
	}
	ctx, cancel := context.WithTimeout(ctx, versionTimeout)
	defer cancel()
	version, err := client.Version(ctx)
	if err != nil {
		return ""
	}
	return version
}
