package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"mkvreorder/internal/batch"
	"mkvreorder/internal/config"
	"mkvreorder/internal/logging"
	"mkvreorder/internal/metrics"
	"mkvreorder/internal/mkvmerge"
	"mkvreorder/internal/preflight"
	"mkvreorder/internal/services"
	"mkvreorder/internal/textutil"
	"mkvreorder/internal/tracks"
)

// pathWidth bounds relative paths in the run summary.
const pathWidth = 72

type runFlags struct {
	source    string
	dest      string
	workers   int
	overwrite bool
	dryRun    bool
	strict    bool
}

func newRunCommand(ctx *commandContext) *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Remux every MKV under the source tree into the destination tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.configCopy()
			if err != nil {
				return err
			}
			if err := flags.apply(cmd, &cfg); err != nil {
				return err
			}
			return runBatch(cmd, &cfg, flags)
		},
	}

	cmd.Flags().StringVar(&flags.source, "source", "", "Source directory (overrides paths.source_dir)")
	cmd.Flags().StringVar(&flags.dest, "dest", "", "Destination directory (overrides paths.dest_dir)")
	cmd.Flags().IntVarP(&flags.workers, "workers", "j", 0, "Number of files processed concurrently (overrides batch.workers)")
	cmd.Flags().BoolVar(&flags.overwrite, "overwrite", false, "Remux files whose output already exists")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Probe and plan without writing any output")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "Exit non-zero when any file failed")
	return cmd
}

func (f runFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	if cmd.Flags().Changed("source") {
		expanded, err := config.ExpandPath(strings.TrimSpace(f.source))
		if err != nil {
			return fmt.Errorf("resolve --source: %w", err)
		}
		cfg.Paths.SourceDir = expanded
	}
	if cmd.Flags().Changed("dest") {
		expanded, err := config.ExpandPath(strings.TrimSpace(f.dest))
		if err != nil {
			return fmt.Errorf("resolve --dest: %w", err)
		}
		cfg.Paths.DestDir = expanded
	}
	if cmd.Flags().Changed("workers") {
		cfg.Batch.Workers = f.workers
	}
	if f.overwrite {
		cfg.Batch.SkipExisting = false
	}
	return cfg.Validate()
}

func runBatch(cmd *cobra.Command, cfg *config.Config, flags runFlags) error {
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	runID := uuid.NewString()
	logger = logging.NewComponentLogger(logger, "cli").With(logging.String("run_id", runID))

	if err := preflight.Err(preflight.RunAll(cfg)); err != nil {
		return err
	}

	jobs, err := batch.Discover(cfg.Paths.SourceDir, cfg.Paths.DestDir, cfg.Batch.Extension)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "cli", "discover", "", err)
	}

	if !flags.dryRun {
		if err := cfg.EnsureDirectories(); err != nil {
			return err
		}
		release, err := batch.LockDestination(cfg.Paths.DestDir)
		if err != nil {
			return err
		}
		defer func() {
			if err := release(); err != nil {
				logging.WarnWithContext(logger, "release destination lock", "lock_release_failed",
					logging.Error(err),
					logging.String(logging.FieldErrorHint, "remove "+filepath.Join(cfg.Paths.DestDir, batch.LockFileName)+" if no run is active"),
					logging.String(logging.FieldImpact, "next run may report the destination as locked"),
				)
			}
		}()
	}

	client, err := mkvmerge.New(cfg.MKVMergeBinary(),
		mkvmerge.WithDiagnosticLimit(cfg.MKVMerge.DiagnosticLimit),
		mkvmerge.WithKeepPartial(!cfg.Batch.RemovePartial),
	)
	if err != nil {
		return err
	}
	policy := tracks.NewPolicy(
		cfg.Policy.AudioLanguage,
		cfg.Policy.SubtitleLanguage,
		cfg.Policy.PreferredSubtitleKeywords,
		cfg.Policy.ExcludedSubtitleKeywords,
	)
	recorder := metrics.New()
	pool := batch.NewPool(batch.Options{
		Workers:         cfg.Batch.Workers,
		SkipExisting:    cfg.Batch.SkipExisting,
		DryRun:          flags.dryRun,
		VerifySignature: cfg.Batch.VerifySignature,
	}, client, client, logger,
		batch.WithPolicy(policy),
		batch.WithRecorder(recorder),
	)

	runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("run starting",
		logging.String(logging.FieldEventType, "run_start"),
		logging.String("source_dir", cfg.Paths.SourceDir),
		logging.String("dest_dir", cfg.Paths.DestDir),
		logging.String("mkvmerge", client.Binary()),
	)
	report := pool.Run(runCtx, jobs)

	if err := recorder.WriteTextfile(cfg.Metrics.Textfile, report.Finished); err != nil {
		logging.WarnWithContext(logger, "metrics export failed", "metrics_write_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check metrics.textfile is writable"),
			logging.String(logging.FieldImpact, "metrics not updated for this run"),
		)
	}

	printRunSummary(cmd.OutOrStdout(), report, flags.dryRun)

	if err := runCtx.Err(); err != nil {
		return context.Canceled
	}
	if failed := len(report.Failed()); flags.strict && failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(report.Results))
	}
	return nil
}

func printRunSummary(out io.Writer, report batch.Report, dryRun bool) {
	if len(report.Results) == 0 {
		fmt.Fprintln(out, "No matching files found")
		return
	}

	rows := make([][]string, 0, len(report.Summary()))
	for _, row := range report.Summary() {
		rows = append(rows, []string{string(row.Status), reasonLabel(row.Reason), strconv.Itoa(row.Count)})
	}
	fmt.Fprintln(out, renderTable([]string{"Status", "Reason", "Files"}, rows, []columnAlignment{alignLeft, alignLeft, alignRight}))

	if dryRun {
		for _, res := range report.Results {
			if res.Status == batch.StatusPlanned {
				fmt.Fprintf(out, "%s: %s\n", textutil.ShortenMiddle(res.Job.Relative, pathWidth), res.Plan.TrackOrder())
			}
		}
	}
	for _, res := range report.Failed() {
		fmt.Fprintf(out, "FAILED %s: %v\n", textutil.ShortenMiddle(res.Job.Relative, pathWidth), res.Err)
	}
	elapsed := report.Finished.Sub(report.Started).Round(time.Millisecond)
	fmt.Fprintf(out, "Processed %d files in %s\n", len(report.Results), elapsed)
}

func reasonLabel(reason batch.Reason) string {
	if reason == batch.ReasonNone {
		return "-"
	}
	return strings.ReplaceAll(string(reason), "_", " ")
}
