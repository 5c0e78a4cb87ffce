package batch

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"mkvreorder/internal/logging"
	"mkvreorder/internal/mkvmerge"
	"mkvreorder/internal/tracks"
)

// DefaultWorkers is the worker count used when Options.Workers is unset.
const DefaultWorkers = 4

// Options controls a batch run.
type Options struct {
	Workers         int
	SkipExisting    bool
	DryRun          bool
	VerifySignature bool
}

// Prober reads track metadata from a file.
type Prober interface {
	Identify(ctx context.Context, path string) (mkvmerge.Identification, error)
}

// Muxer writes the reordered file.
type Muxer interface {
	Mux(ctx context.Context, req mkvmerge.MuxRequest) error
}

// Recorder receives per-file outcomes, typically for metrics.
type Recorder interface {
	SetDiscovered(n int)
	ObserveFile(status, reason string, mux time.Duration)
}

// PoolOption configures optional Pool collaborators.
type PoolOption func(*Pool)

// WithPolicy overrides the default track selection policy.
func WithPolicy(policy tracks.Policy) PoolOption {
	return func(p *Pool) {
		p.policy = policy
	}
}

// WithRecorder attaches an outcome recorder.
func WithRecorder(r Recorder) PoolOption {
	return func(p *Pool) {
		if r != nil {
			p.recorder = r
		}
	}
}

// WithIDGenerator replaces the correlation ID source (primarily for tests).
func WithIDGenerator(fn func() string) PoolOption {
	return func(p *Pool) {
		if fn != nil {
			p.newID = fn
		}
	}
}

// Pool processes jobs with a fixed number of workers.
type Pool struct {
	opts     Options
	prober   Prober
	muxer    Muxer
	policy   tracks.Policy
	recorder Recorder
	logger   *slog.Logger
	newID    func() string
}

// NewPool constructs a pool. A non-positive worker count uses DefaultWorkers.
func NewPool(opts Options, prober Prober, muxer Muxer, logger *slog.Logger, poolOpts ...PoolOption) *Pool {
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	p := &Pool{
		opts:   opts,
		prober: prober,
		muxer:  muxer,
		policy: tracks.DefaultPolicy(),
		logger: logging.NewComponentLogger(logger, "batch"),
		newID:  uuid.NewString,
	}
	for _, opt := range poolOpts {
		opt(p)
	}
	return p
}

// Run processes every job and returns once all of them have a result. The
// context only interrupts the run: jobs that have not started are recorded as
// skipped/canceled and running mkvmerge processes are killed.
func (p *Pool) Run(ctx context.Context, jobs []Job) Report {
	report := Report{Results: make([]Result, len(jobs)), Started: time.Now()}
	if p.recorder != nil {
		p.recorder.SetDiscovered(len(jobs))
	}

	workers := min(p.opts.Workers, len(jobs))
	p.logger.Info("batch started",
		logging.String(logging.FieldEventType, "batch_start"),
		logging.Int("files", len(jobs)),
		logging.Int("workers", workers),
		logging.Bool("dry_run", p.opts.DryRun),
	)

	indexes := make(chan int)
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range indexes {
				report.Results[idx] = p.Process(ctx, jobs[idx])
			}
		}()
	}
	for idx := range jobs {
		indexes <- idx
	}
	close(indexes)
	wg.Wait()

	report.Finished = time.Now()
	p.logger.Info("batch finished",
		logging.String(logging.FieldEventType, "batch_complete"),
		logging.Int("succeeded", report.Count(StatusSucceeded)),
		logging.Int("planned", report.Count(StatusPlanned)),
		logging.Int("skipped", report.Count(StatusSkipped)),
		logging.Int("failed", report.Count(StatusFailed)),
		logging.Duration("elapsed", report.Finished.Sub(report.Started).Round(time.Millisecond)),
	)
	return report
}
