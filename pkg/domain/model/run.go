package model

import (
	"encoding/json"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/shiftward/sweep/pkg/domain/types"
)

// FailureRecord is one failed identity persisted with a run
type FailureRecord struct {
	Identity types.Identity `json:"identity"`
	Error    string         `json:"error"`
}

// RunRecord is the persisted form of a finished run. Params holds the
// action's configuration as raw JSON so `sweep retry` can rebuild the same
// action later without the history store knowing action internals.
type RunRecord struct {
	ID         types.RunID      `json:"id"`
	Action     types.ActionName `json:"action"`
	Params     json.RawMessage  `json:"params,omitempty"`
	Source     string           `json:"source"`
	DryRun     bool             `json:"dry_run"`
	Aborted    bool             `json:"aborted"`
	Applied    int              `json:"applied"`
	Skipped    int              `json:"skipped"`
	Failed     int              `json:"failed"`
	Failures   []FailureRecord  `json:"failures,omitempty"`
	StartedAt  time.Time        `json:"started_at"`
	FinishedAt time.Time        `json:"finished_at"`
}

// NewRunRecord builds the persisted record for a finalized summary.
// actionParams may be nil for actions with no reusable configuration.
func NewRunRecord(summary *RunSummary, actionParams any, source string, dryRun bool) (*RunRecord, error) {
	if summary == nil {
		return nil, goerr.New("summary is nil")
	}

	var params json.RawMessage
	if actionParams != nil {
		raw, err := json.Marshal(actionParams)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to marshal action params",
				goerr.V("action", summary.Action))
		}
		params = raw
	}

	rec := &RunRecord{
		ID:         summary.RunID,
		Action:     summary.Action,
		Params:     params,
		Source:     source,
		DryRun:     dryRun,
		Aborted:    summary.Aborted,
		Applied:    summary.Applied,
		Skipped:    summary.Skipped,
		Failed:     summary.Failed,
		StartedAt:  summary.StartedAt,
		FinishedAt: summary.FinishedAt,
	}

	for _, f := range summary.Failures() {
		rec.Failures = append(rec.Failures, FailureRecord{
			Identity: f.Identity,
			Error:    f.Error,
		})
	}

	return rec, nil
}

// FailedIdentities returns the failed identities in recorded order
func (r *RunRecord) FailedIdentities() []types.Identity {
	ids := make([]types.Identity, 0, len(r.Failures))
	for _, f := range r.Failures {
		ids = append(ids, f.Identity)
	}
	return ids
}

// Validate checks the record is storable
func (r *RunRecord) Validate() error {
	if r.ID == "" {
		return goerr.New("run ID is empty")
	}
	if r.Action == "" {
		return goerr.New("action name is empty")
	}
	return nil
}
