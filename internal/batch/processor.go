package batch

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"mkvreorder/internal/fileutil"
	"mkvreorder/internal/logging"
	"mkvreorder/internal/mkvmerge"
	"mkvreorder/internal/services"
	"mkvreorder/internal/tracks"
)

// Process runs the pipeline for a single job: skip check, optional
// signature check, probe, classification, plan, directory creation and mux.
func (p *Pool) Process(ctx context.Context, job Job) Result {
	start := time.Now()
	res := Result{Job: job, CorrelationID: p.newID()}

	ctx = services.WithFile(ctx, job.Source)
	ctx = services.WithRequestID(ctx, res.CorrelationID)
	logger := logging.WithContext(ctx, p.logger)

	p.process(ctx, logger, &res)

	res.Duration = time.Since(start)
	p.report(logger, res)
	if p.recorder != nil {
		p.recorder.ObserveFile(string(res.Status), string(res.Reason), res.MuxDuration)
	}
	return res
}

func (p *Pool) process(ctx context.Context, logger *slog.Logger, res *Result) {
	job := res.Job
	if err := ctx.Err(); err != nil {
		res.skip(ReasonCanceled, err)
		return
	}

	if p.opts.SkipExisting {
		exists, err := fileutil.Exists(job.Destination)
		if err != nil {
			res.fail(ReasonOutputDir, services.Wrap(services.ErrExternalTool, "batch", "check destination", job.Destination, err))
			return
		}
		if exists {
			res.skip(ReasonAlreadyProcessed, services.Wrap(services.ErrAlreadyProcessed, "batch", "check destination", job.Destination, nil))
			return
		}
	}

	if p.opts.VerifySignature {
		ok, err := fileutil.IsMatroska(job.Source)
		if err != nil {
			res.skip(ReasonProbeFailed, services.Wrap(services.ErrProbe, "batch", "read signature", "", err))
			return
		}
		if !ok {
			res.skip(ReasonNotMatroska, services.Wrap(services.ErrValidation, "batch", "read signature", "missing Matroska EBML header", nil))
			return
		}
	}

	id, err := p.prober.Identify(ctx, job.Source)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			res.skip(ReasonCanceled, ctxErr)
			return
		}
		res.skip(ReasonProbeFailed, err)
		return
	}
	probed, err := tracks.FromIdentification(id)
	if err != nil {
		res.skip(ReasonProbeFailed, services.Wrap(services.ErrProbe, "batch", "decode tracks", "", err))
		return
	}

	decision := p.policy.Classify(probed)
	res.Decision = &decision
	logger.Debug("tracks classified",
		logging.Int("primary_audio", decision.PrimaryAudio),
		logging.Int("primary_subtitle", decision.PrimarySubtitle),
		logging.Any("audio", decision.Audio),
		logging.Any("subtitles", decision.Subtitles),
	)

	plan, err := tracks.BuildPlan(decision)
	if err != nil {
		res.skip(ReasonNoPrimaryAudio, err)
		return
	}
	res.Plan = &plan
	req := plan.MuxRequest(job.Source, job.Destination)
	res.Args = mkvmerge.BuildArgs(req)

	if p.opts.DryRun {
		res.Status = StatusPlanned
		return
	}

	if err := fileutil.EnsureParentDir(job.Destination); err != nil {
		res.fail(ReasonOutputDir, services.Wrap(services.ErrExternalTool, "batch", "create output directory", "", err))
		return
	}

	muxStart := time.Now()
	if err := p.muxer.Mux(ctx, req); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			res.fail(ReasonCanceled, err)
			return
		}
		res.fail(ReasonMuxFailed, err)
		return
	}
	res.MuxDuration = time.Since(muxStart)
	res.Status = StatusSucceeded
}

func (r *Result) skip(reason Reason, err error) {
	r.Status = StatusSkipped
	r.Reason = reason
	r.Err = err
}

func (r *Result) fail(reason Reason, err error) {
	r.Status = StatusFailed
	r.Reason = reason
	r.Err = err
}

var skipHints = map[Reason]string{
	ReasonNotMatroska:    "file extension does not match its contents",
	ReasonProbeFailed:    "run mkvmerge -J on the file to inspect it",
	ReasonNoPrimaryAudio: "file has no audio track in the configured language",
	ReasonCanceled:       "rerun to process remaining files",
}

func (p *Pool) report(logger *slog.Logger, res Result) {
	attrs := []logging.Attr{
		logging.String(logging.FieldStatus, string(res.Status)),
		logging.Duration("elapsed", res.Duration.Round(time.Millisecond)),
	}
	if res.Reason != ReasonNone {
		attrs = append(attrs, logging.String(logging.FieldReason, string(res.Reason)))
	}

	switch res.Status {
	case StatusSucceeded:
		attrs = append(attrs,
			logging.String(logging.FieldEventType, "file_remuxed"),
			logging.String("destination", res.Job.Destination),
			logging.Any("track_order", res.Plan.Order),
		)
		logger.Info("file remuxed", logging.Args(attrs...)...)
	case StatusPlanned:
		attrs = append(attrs,
			logging.String(logging.FieldEventType, "file_planned"),
			logging.Any("mkvmerge_args", res.Args),
		)
		logger.Info("dry run: mux planned", logging.Args(attrs...)...)
	case StatusSkipped:
		if res.Reason == ReasonAlreadyProcessed {
			logger.Info("output exists, skipping", logging.Args(append(attrs, logging.String(logging.FieldEventType, "file_skipped"))...)...)
			return
		}
		attrs = append(attrs, logging.Error(res.Err), logging.String(logging.FieldErrorHint, skipHints[res.Reason]))
		logging.WarnWithContext(logger, "file skipped", "file_skipped", attrs...)
	case StatusFailed:
		attrs = append(attrs, logging.Error(res.Err), logging.String(logging.FieldImpact, "no output written for this file"))
		var exitErr *mkvmerge.ExitError
		if errors.As(res.Err, &exitErr) {
			attrs = append(attrs, logging.Int("exit_code", exitErr.Code), logging.String("diagnostic", exitErr.Diagnostic))
		}
		logging.ErrorWithContext(logger, "file failed", "file_failed", attrs...)
	}
}
