package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"mkvreorder/internal/config"
	"mkvreorder/internal/language"
	"mkvreorder/internal/mkvmerge"
	"mkvreorder/internal/tracks"
)

type inspectOutput struct {
	File        string          `json:"file"`
	Destination string          `json:"destination"`
	Tracks      []tracks.Track  `json:"tracks"`
	Decision    tracks.Decision `json:"decision"`
	Eligible    bool            `json:"eligible"`
	Plan        *tracks.Plan    `json:"plan,omitempty"`
	Command     []string        `json:"command,omitempty"`
}

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "inspect FILE",
		Short: "Show the track decision and mkvmerge command for one file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve file: %w", err)
			}

			client, err := mkvmerge.New(cfg.MKVMergeBinary(), mkvmerge.WithDiagnosticLimit(cfg.MKVMerge.DiagnosticLimit))
			if err != nil {
				return err
			}
			id, err := client.Identify(cmd.Context(), path)
			if err != nil {
				return err
			}
			probed, err := tracks.FromIdentification(id)
			if err != nil {
				return err
			}

			policy := tracks.NewPolicy(
				cfg.Policy.AudioLanguage,
				cfg.Policy.SubtitleLanguage,
				cfg.Policy.PreferredSubtitleKeywords,
				cfg.Policy.ExcludedSubtitleKeywords,
			)
			result := inspectOutput{
				File:        path,
				Destination: inspectDestination(cfg, path),
				Tracks:      probed,
				Decision:    policy.Classify(probed),
			}
			if plan, err := tracks.BuildPlan(result.Decision); err == nil {
				result.Eligible = true
				result.Plan = &plan
				result.Command = client.CommandLine(plan.MuxRequest(path, result.Destination))
			}

			if asJSON {
				return writeJSON(cmd, result)
			}
			printInspect(cmd, result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the decision and plan as JSON")
	return cmd
}

// inspectDestination mirrors path under the destination directory when it
// lives inside the source tree; otherwise only the base name is kept.
func inspectDestination(cfg *config.Config, path string) string {
	rel, err := filepath.Rel(cfg.Paths.SourceDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		rel = filepath.Base(path)
	}
	return filepath.Join(cfg.Paths.DestDir, rel)
}

func printInspect(cmd *cobra.Command, result inspectOutput) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "File: %s\n", result.File)

	rows := make([][]string, 0, len(result.Tracks))
	for _, t := range result.Tracks {
		name := language.DisplayName(t.Language)
		if name == "" {
			name = "-"
		}
		rows = append(rows, []string{
			strconv.Itoa(t.ID),
			string(t.Kind),
			valueOr(t.Language, "-"),
			name,
			valueOr(t.Name, "-"),
			trackRole(result.Decision, t),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"ID", "Kind", "Lang", "Language", "Name", "Role"},
		rows,
		[]columnAlignment{alignRight},
	))

	if !result.Eligible {
		fmt.Fprintln(out, "Not eligible: no audio track in the configured language; run would skip this file")
		return
	}
	fmt.Fprintf(out, "Track order: %s\n", result.Plan.TrackOrder())
	fmt.Fprintf(out, "Command: %s\n", shellJoin(result.Command))
}

func trackRole(d tracks.Decision, t tracks.Track) string {
	switch t.Kind {
	case tracks.KindVideo:
		return "video"
	case tracks.KindAudio:
		if t.ID == d.PrimaryAudio {
			return "primary"
		}
		return "demoted"
	case tracks.KindSubtitles:
		if t.ID == d.PrimarySubtitle {
			return "primary"
		}
		return "demoted"
	default:
		return "-"
	}
}

func valueOr(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func shellJoin(args []string) string {
	quoted := make([]string, len(args))
	for i, arg := range args {
		if arg == "" || strings.ContainsAny(arg, " \t\"'\\$&;()|<>*?") {
			quoted[i] = "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
		} else {
			quoted[i] = arg
		}
	}
	return strings.Join(quoted, " ")
}
