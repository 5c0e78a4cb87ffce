package batch

import (
	"cmp"
	"slices"
	"time"

	"mkvreorder/internal/tracks"
)

// Status is the terminal state of one file.
type Status string

const (
	StatusSkipped   Status = "skipped"
	StatusPlanned   Status = "planned"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Reason explains a skipped or failed file.
type Reason string

const (
	ReasonNone             Reason = ""
	ReasonAlreadyProcessed Reason = "already_processed"
	ReasonNotMatroska      Reason = "not_matroska"
	ReasonProbeFailed      Reason = "probe_failed"
	ReasonNoPrimaryAudio   Reason = "no_primary_audio"
	ReasonOutputDir        Reason = "output_dir"
	ReasonMuxFailed        Reason = "mux_failed"
	ReasonCanceled         Reason = "canceled"
)

// Result is the outcome of processing one Job.
type Result struct {
	Job           Job
	Status        Status
	Reason        Reason
	Err           error
	CorrelationID string
	Decision      *tracks.Decision
	Plan          *tracks.Plan
	Args          []string
	Duration      time.Duration
	MuxDuration   time.Duration
}

// Report collects every Result of a run in job order.
type Report struct {
	Results  []Result
	Started  time.Time
	Finished time.Time
}

// Count returns how many results have the given status.
func (r Report) Count(status Status) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == status {
			n++
		}
	}
	return n
}

// Failed returns the failed results.
func (r Report) Failed() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Status == StatusFailed {
			out = append(out, res)
		}
	}
	return out
}

// SummaryRow is one status/reason bucket.
type SummaryRow struct {
	Status Status
	Reason Reason
	Count  int
}

var statusRank = map[Status]int{
	StatusSucceeded: 0,
	StatusPlanned:   1,
	StatusSkipped:   2,
	StatusFailed:    3,
}

// Summary groups results by status and reason, ordered by status then reason.
func (r Report) Summary() []SummaryRow {
	counts := make(map[SummaryRow]int)
	for _, res := range r.Results {
		counts[SummaryRow{Status: res.Status, Reason: res.Reason}]++
	}
	rows := make([]SummaryRow, 0, len(counts))
	for key, n := range counts {
		key.Count = n
		rows = append(rows, key)
	}
	slices.SortFunc(rows, func(a, b SummaryRow) int {
		if c := cmp.Compare(statusRank[a.Status], statusRank[b.Status]); c != 0 {
			return c
		}
		return cmp.Compare(a.Reason, b.Reason)
	})
	return rows
}
