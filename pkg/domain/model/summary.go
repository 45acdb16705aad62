package model

import (
	"time"

	"github.com/shiftward/sweep/pkg/domain/types"
)

// RunSummary aggregates the outcome of one batch run: per-outcome counts
// plus every ActionResult in batch order. It is created empty at run start,
// updated once per processed identity, and finalized read-only after the
// loop. Identities never processed (batch aborted early) are absent rather
// than recorded as skipped; Aborted marks that case.
type RunSummary struct {
	RunID      types.RunID      `json:"run_id"`
	Action     types.ActionName `json:"action"`
	Applied    int              `json:"applied"`
	Skipped    int              `json:"skipped"`
	Failed     int              `json:"failed"`
	Aborted    bool             `json:"aborted"`
	Results    []*ActionResult  `json:"results"`
	StartedAt  time.Time        `json:"started_at"`
	FinishedAt time.Time        `json:"finished_at"`

	finalized bool
}

// NewRunSummary creates an empty summary for a run
func NewRunSummary(runID types.RunID, action types.ActionName) *RunSummary {
	return &RunSummary{
		RunID:     runID,
		Action:    action,
		StartedAt: time.Now(),
	}
}

// Record adds one result and bumps the matching counter. Records after
// Finalize are dropped.
func (s *RunSummary) Record(result *ActionResult) {
	if s.finalized || result == nil {
		return
	}

	s.Results = append(s.Results, result)
	switch result.Outcome {
	case types.OutcomeApplied:
		s.Applied++
	case types.OutcomeSkipped:
		s.Skipped++
	case types.OutcomeFailed:
		s.Failed++
	}
}

// Finalize freezes the summary and stamps the finish time. Calling it more
// than once keeps the first finish time.
func (s *RunSummary) Finalize() {
	if s.finalized {
		return
	}
	s.finalized = true
	s.FinishedAt = time.Now()
}

// Processed returns how many identities produced a result
func (s *RunSummary) Processed() int {
	return len(s.Results)
}

// Failures returns the failed results in the order they occurred
func (s *RunSummary) Failures() []*ActionResult {
	var failures []*ActionResult
	for _, r := range s.Results {
		if r.Failed() {
			failures = append(failures, r)
		}
	}
	return failures
}

// HasFailures reports whether any identity failed
func (s *RunSummary) HasFailures() bool {
	return s.Failed > 0
}

// Elapsed returns the total run duration once finalized
func (s *RunSummary) Elapsed() time.Duration {
	if !s.finalized {
		return time.Since(s.StartedAt)
	}
	return s.FinishedAt.Sub(s.StartedAt)
}
