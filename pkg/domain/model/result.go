package model

import (
	"time"

	"github.com/shiftward/sweep/pkg/domain/types"
)

// Skip reasons recorded by the runner itself. Actions contribute their own
// reasons ("service already running") through ApplyReport.Detail.
const (
	SkipReasonBlank    = "empty identity"
	SkipReasonDryRun   = "dry-run"
	SkipReasonDeclined = "declined"
	SkipReasonNoChange = "already in desired state"
)

// ApplyReport is what a RemoteAction returns for an identity it handled
// without error. NoChange marks targets that were already in the desired
// state; the runner records those as skipped rather than applied.
type ApplyReport struct {
	NoChange bool
	Detail   string
}

// ActionResult is the outcome of processing one identity. It is created
// once by the runner and never mutated afterwards.
type ActionResult struct {
	Identity types.Identity `json:"identity"`
	Outcome  types.Outcome  `json:"outcome"`
	Reason   string         `json:"reason,omitempty"` // set for skips
	Error    string         `json:"error,omitempty"`  // set for failures
	Detail   string         `json:"detail,omitempty"` // action-provided note
	At       time.Time      `json:"at"`
	Elapsed  time.Duration  `json:"elapsed"`
}

// NewAppliedResult records a successful state change
func NewAppliedResult(id types.Identity, detail string, elapsed time.Duration) *ActionResult {
	return &ActionResult{
		Identity: id,
		Outcome:  types.OutcomeApplied,
		Detail:   detail,
		At:       time.Now(),
		Elapsed:  elapsed,
	}
}

// NewSkippedResult records an identity that was not applied, with the reason
func NewSkippedResult(id types.Identity, reason string) *ActionResult {
	return &ActionResult{
		Identity: id,
		Outcome:  types.OutcomeSkipped,
		Reason:   reason,
		At:       time.Now(),
	}
}

// NewFailedResult records a failed apply attempt
func NewFailedResult(id types.Identity, err error, elapsed time.Duration) *ActionResult {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return &ActionResult{
		Identity: id,
		Outcome:  types.OutcomeFailed,
		Error:    msg,
		At:       time.Now(),
		Elapsed:  elapsed,
	}
}

// Failed reports whether this result is a failure
func (r *ActionResult) Failed() bool {
	return r.Outcome == types.OutcomeFailed
}
