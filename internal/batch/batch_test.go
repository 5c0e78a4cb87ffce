package batch

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"
	"time"

	"mkvreorder/internal/logging"
	"mkvreorder/internal/mkvmerge"
	"mkvreorder/internal/services"
	"mkvreorder/internal/testsupport"
)

type fakeProber struct {
	mu    sync.Mutex
	ids   map[string]mkvmerge.Identification
	err   error
	calls []string
}

func (f *fakeProber) Identify(_ context.Context, path string) (mkvmerge.Identification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, path)
	if f.err != nil {
		return mkvmerge.Identification{}, f.err
	}
	return f.ids[path], nil
}

type fakeMuxer struct {
	mu       sync.Mutex
	requests []mkvmerge.MuxRequest
	err      error
	block    chan struct{}
}

func (f *fakeMuxer) Mux(ctx context.Context, req mkvmerge.MuxRequest) error {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(req.Output, []byte("muxed"), 0o644)
}

type fakeRecorder struct {
	mu         sync.Mutex
	discovered int
	outcomes   []string
}

func (f *fakeRecorder) SetDiscovered(n int) { f.discovered = n }

func (f *fakeRecorder) ObserveFile(status, reason string, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.outcomes = append(f.outcomes, status+"/"+reason)
}

func standardIdentification(t *testing.T) mkvmerge.Identification {
	t.Helper()
	var id mkvmerge.Identification
	if err := json.Unmarshal([]byte(testsupport.StandardIdentification), &id); err != nil {
		t.Fatalf("decode identification: %v", err)
	}
	return id
}

func noJapaneseIdentification() mkvmerge.Identification {
	return mkvmerge.Identification{
		Container: mkvmerge.Container{Type: "Matroska", Recognized: true, Supported: true},
		Tracks: []mkvmerge.TrackInfo{
			{ID: 0, Type: "video"},
			{ID: 1, Type: "audio", Properties: map[string]any{"language": "eng"}},
			{ID: 2, Type: "subtitles", Properties: map[string]any{"language": "eng", "track_name": "Full"}},
		},
	}
}

func newJob(t *testing.T, root, rel string) Job {
	t.Helper()
	job := Job{
		Source:      filepath.Join(root, "Original", rel),
		Destination: filepath.Join(root, "Modified", rel),
		Relative:    rel,
	}
	testsupport.WriteMatroskaHeader(t, job.Source)
	return job
}

func fixedID() string { return "0123456789abcdef" }

func TestProcessSucceeds(t *testing.T) {
	root := t.TempDir()
	job := newJob(t, root, filepath.Join("Show", "ep01.mkv"))
	prober := &fakeProber{ids: map[string]mkvmerge.Identification{job.Source: standardIdentification(t)}}
	muxer := &fakeMuxer{}
	rec := &fakeRecorder{}
	pool := NewPool(Options{SkipExisting: true}, prober, muxer, logging.NewNop(), WithRecorder(rec), WithIDGenerator(fixedID))

	res := pool.Process(context.Background(), job)
	if res.Status != StatusSucceeded || res.Err != nil {
		t.Fatalf("result = %s/%s err=%v", res.Status, res.Reason, res.Err)
	}
	if res.CorrelationID != fixedID() {
		t.Fatalf("correlation id = %q", res.CorrelationID)
	}
	if len(muxer.requests) != 1 {
		t.Fatalf("mux calls = %d, want 1", len(muxer.requests))
	}
	req := muxer.requests[0]
	if want := []int{0, 2, 1, 4, 3}; !reflect.DeepEqual(req.Order, want) {
		t.Fatalf("order = %v, want %v", req.Order, want)
	}
	wantFlags := []mkvmerge.TrackFlag{{TrackID: 2, Enabled: true}, {TrackID: 4, Enabled: true}, {TrackID: 1}, {TrackID: 3}}
	if !reflect.DeepEqual(req.Flags, wantFlags) {
		t.Fatalf("flags = %+v, want %+v", req.Flags, wantFlags)
	}
	if req.Input != job.Source || req.Output != job.Destination {
		t.Fatalf("paths = %s -> %s", req.Input, req.Output)
	}
	if _, err := os.Stat(job.Destination); err != nil {
		t.Fatalf("destination missing: %v", err)
	}
	if !reflect.DeepEqual(rec.outcomes, []string{"succeeded/"}) {
		t.Fatalf("recorded = %v", rec.outcomes)
	}
}

func TestProcessSkipsExistingWithoutProbing(t *testing.T) {
	root := t.TempDir()
	job := newJob(t, root, "ep01.mkv")
	testsupport.WriteFile(t, job.Destination, []byte("done"))
	prober := &fakeProber{}
	muxer := &fakeMuxer{}
	pool := NewPool(Options{SkipExisting: true}, prober, muxer, logging.NewNop())

	res := pool.Process(context.Background(), job)
	if res.Status != StatusSkipped || res.Reason != ReasonAlreadyProcessed {
		t.Fatalf("result = %s/%s", res.Status, res.Reason)
	}
	if !errors.Is(res.Err, services.ErrAlreadyProcessed) {
		t.Fatalf("err = %v", res.Err)
	}
	if len(prober.calls) != 0 || len(muxer.requests) != 0 {
		t.Fatalf("unexpected work: probes=%d muxes=%d", len(prober.calls), len(muxer.requests))
	}
}

func TestProcessOverwritesWhenSkipDisabled(t *testing.T) {
	root := t.TempDir()
	job := newJob(t, root, "ep01.mkv")
	testsupport.WriteFile(t, job.Destination, []byte("old"))
	prober := &fakeProber{ids: map[string]mkvmerge.Identification{job.Source: standardIdentification(t)}}
	muxer := &fakeMuxer{}
	pool := NewPool(Options{}, prober, muxer, logging.NewNop())

	res := pool.Process(context.Background(), job)
	if res.Status != StatusSucceeded {
		t.Fatalf("result = %s/%s err=%v", res.Status, res.Reason, res.Err)
	}
	data, err := os.ReadFile(job.Destination)
	if err != nil || string(data) != "muxed" {
		t.Fatalf("destination = %q, %v", data, err)
	}
}

func TestProcessNoPrimaryAudioDoesNotMux(t *testing.T) {
	root := t.TempDir()
	job := newJob(t, root, "ep01.mkv")
	prober := &fakeProber{ids: map[string]mkvmerge.Identification{job.Source: noJapaneseIdentification()}}
	muxer := &fakeMuxer{}
	pool := NewPool(Options{SkipExisting: true}, prober, muxer, logging.NewNop())

	res := pool.Process(context.Background(), job)
	if res.Status != StatusSkipped || res.Reason != ReasonNoPrimaryAudio {
		t.Fatalf("result = %s/%s", res.Status, res.Reason)
	}
	if !services.IsSkip(res.Err) {
		t.Fatalf("expected skip marker, got %v", res.Err)
	}
	if len(muxer.requests) != 0 {
		t.Fatal("mux should not run")
	}
	if _, err := os.Stat(filepath.Dir(job.Destination)); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("destination directory should not be created, stat err = %v", err)
	}
}

func TestProcessProbeFailure(t *testing.T) {
	root := t.TempDir()
	job := newJob(t, root, "ep01.mkv")
	probeErr := services.Wrap(services.ErrProbe, "mkvmerge", "identify", "", errors.New("boom"))
	pool := NewPool(Options{}, &fakeProber{err: probeErr}, &fakeMuxer{}, logging.NewNop())

	res := pool.Process(context.Background(), job)
	if res.Status != StatusSkipped || res.Reason != ReasonProbeFailed {
		t.Fatalf("result = %s/%s", res.Status, res.Reason)
	}
	if !errors.Is(res.Err, services.ErrProbe) {
		t.Fatalf("err = %v", res.Err)
	}
}

func TestProcessRejectsNonMatroska(t *testing.T) {
	root := t.TempDir()
	job := Job{Source: filepath.Join(root, "fake.mkv"), Destination: filepath.Join(root, "out", "fake.mkv")}
	testsupport.WriteFile(t, job.Source, []byte("definitely not a matroska file"))
	prober := &fakeProber{}
	pool := NewPool(Options{VerifySignature: true}, prober, &fakeMuxer{}, logging.NewNop())

	res := pool.Process(context.Background(), job)
	if res.Status != StatusSkipped || res.Reason != ReasonNotMatroska {
		t.Fatalf("result = %s/%s", res.Status, res.Reason)
	}
	if len(prober.calls) != 0 {
		t.Fatal("probe should not run")
	}
}

func TestProcessDryRunPlansOnly(t *testing.T) {
	root := t.TempDir()
	job := newJob(t, root, filepath.Join("Show", "ep01.mkv"))
	prober := &fakeProber{ids: map[string]mkvmerge.Identification{job.Source: standardIdentification(t)}}
	muxer := &fakeMuxer{}
	pool := NewPool(Options{DryRun: true}, prober, muxer, logging.NewNop())

	res := pool.Process(context.Background(), job)
	if res.Status != StatusPlanned {
		t.Fatalf("status = %s", res.Status)
	}
	if len(muxer.requests) != 0 {
		t.Fatal("dry run must not mux")
	}
	if res.Plan == nil || res.Plan.TrackOrder() != "0:0,0:2,0:1,0:4,0:3" {
		t.Fatalf("plan = %+v", res.Plan)
	}
	if res.Args[len(res.Args)-1] != job.Source {
		t.Fatalf("args = %v", res.Args)
	}
	if _, err := os.Stat(filepath.Dir(job.Destination)); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("dry run created output directory: %v", err)
	}
}

func TestProcessMuxFailure(t *testing.T) {
	root := t.TempDir()
	job := newJob(t, root, "ep01.mkv")
	prober := &fakeProber{ids: map[string]mkvmerge.Identification{job.Source: standardIdentification(t)}}
	muxErr := services.Wrap(services.ErrMux, "mkvmerge", "mux", "", &mkvmerge.ExitError{Code: 2, Diagnostic: "Error: disk full"})
	pool := NewPool(Options{}, prober, &fakeMuxer{err: muxErr}, logging.NewNop())

	res := pool.Process(context.Background(), job)
	if res.Status != StatusFailed || res.Reason != ReasonMuxFailed {
		t.Fatalf("result = %s/%s", res.Status, res.Reason)
	}
	var exitErr *mkvmerge.ExitError
	if !errors.As(res.Err, &exitErr) || exitErr.Code != 2 {
		t.Fatalf("err = %v", res.Err)
	}
}

func TestProcessCanceledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	prober := &fakeProber{}
	pool := NewPool(Options{}, prober, &fakeMuxer{}, logging.NewNop())

	res := pool.Process(ctx, Job{Source: "/in/a.mkv", Destination: "/out/a.mkv"})
	if res.Status != StatusSkipped || res.Reason != ReasonCanceled {
		t.Fatalf("result = %s/%s", res.Status, res.Reason)
	}
	if len(prober.calls) != 0 {
		t.Fatal("probe should not run after cancellation")
	}
}

func TestRunProcessesEveryJobInOrder(t *testing.T) {
	root := t.TempDir()
	ids := map[string]mkvmerge.Identification{}
	var jobs []Job
	for _, name := range []string{"a.mkv", "b.mkv", "c.mkv", "d.mkv", "e.mkv"} {
		job := newJob(t, root, name)
		jobs = append(jobs, job)
		ids[job.Source] = standardIdentification(t)
	}
	ids[jobs[1].Source] = noJapaneseIdentification()
	testsupport.WriteFile(t, jobs[3].Destination, []byte("done"))

	rec := &fakeRecorder{}
	muxer := &fakeMuxer{}
	pool := NewPool(Options{Workers: 3, SkipExisting: true}, &fakeProber{ids: ids}, muxer, logging.NewNop(), WithRecorder(rec))
	report := pool.Run(context.Background(), jobs)

	if len(report.Results) != len(jobs) {
		t.Fatalf("results = %d, want %d", len(report.Results), len(jobs))
	}
	for i, res := range report.Results {
		if res.Job != jobs[i] {
			t.Fatalf("result %d belongs to %s", i, res.Job.Source)
		}
	}
	if got := report.Count(StatusSucceeded); got != 3 {
		t.Fatalf("succeeded = %d, want 3", got)
	}
	if got := report.Count(StatusSkipped); got != 2 {
		t.Fatalf("skipped = %d, want 2", got)
	}
	if len(muxer.requests) != 3 {
		t.Fatalf("mux calls = %d", len(muxer.requests))
	}
	if rec.discovered != 5 || len(rec.outcomes) != 5 {
		t.Fatalf("recorder = %d discovered, %d outcomes", rec.discovered, len(rec.outcomes))
	}
	if report.Finished.Before(report.Started) {
		t.Fatal("finished before started")
	}
}

func TestRunEmpty(t *testing.T) {
	pool := NewPool(Options{}, &fakeProber{}, &fakeMuxer{}, logging.NewNop())
	report := pool.Run(context.Background(), nil)
	if len(report.Results) != 0 || len(report.Summary()) != 0 {
		t.Fatalf("report = %+v", report)
	}
}

func TestRunCancellationKillsInFlightMux(t *testing.T) {
	root := t.TempDir()
	ids := map[string]mkvmerge.Identification{}
	var jobs []Job
	for _, name := range []string{"a.mkv", "b.mkv", "c.mkv"} {
		job := newJob(t, root, name)
		jobs = append(jobs, job)
		ids[job.Source] = standardIdentification(t)
	}
	muxer := &fakeMuxer{block: make(chan struct{})}
	pool := NewPool(Options{Workers: 1}, &fakeProber{ids: ids}, muxer, logging.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		for {
			muxer.mu.Lock()
			started := len(muxer.requests)
			muxer.mu.Unlock()
			if started > 0 {
				cancel()
				return
			}
			time.Sleep(time.Millisecond)
		}
	}()
	report := pool.Run(ctx, jobs)

	first := report.Results[0]
	if first.Status != StatusFailed || first.Reason != ReasonCanceled {
		t.Fatalf("first = %s/%s", first.Status, first.Reason)
	}
	for _, res := range report.Results[1:] {
		if res.Status != StatusSkipped || res.Reason != ReasonCanceled {
			t.Fatalf("remaining = %s/%s", res.Status, res.Reason)
		}
	}
}

func TestReportSummary(t *testing.T) {
	report := Report{Results: []Result{
		{Status: StatusFailed, Reason: ReasonMuxFailed},
		{Status: StatusSucceeded},
		{Status: StatusSkipped, Reason: ReasonNoPrimaryAudio},
		{Status: StatusSucceeded},
		{Status: StatusSkipped, Reason: ReasonAlreadyProcessed},
		{Status: StatusSkipped, Reason: ReasonNoPrimaryAudio},
	}}
	want := []SummaryRow{
		{Status: StatusSucceeded, Count: 2},
		{Status: StatusSkipped, Reason: ReasonAlreadyProcessed, Count: 1},
		{Status: StatusSkipped, Reason: ReasonNoPrimaryAudio, Count: 2},
		{Status: StatusFailed, Reason: ReasonMuxFailed, Count: 1},
	}
	if got := report.Summary(); !reflect.DeepEqual(got, want) {
		t.Fatalf("summary = %+v, want %+v", got, want)
	}
	if len(report.Failed()) != 1 {
		t.Fatalf("failed = %d", len(report.Failed()))
	}
}
