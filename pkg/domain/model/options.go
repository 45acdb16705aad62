package model

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/shiftward/sweep/pkg/domain/types"
)

// RunOptions configures one batch run.
//
// ContinueOnError keeps the batch going past a failed identity; when false
// the run aborts right after recording the first failure. Isolate converts
// errors and panics from an action into Failed results owned by that one
// identity; when false the first error propagates out of the loop without
// being recorded.
type RunOptions struct {
	ContinueOnError bool
	Isolate         bool
	Confirm         types.ConfirmMode
}

// DefaultRunOptions returns the unattended defaults: keep going on per-item
// failures, isolate them, never prompt.
func DefaultRunOptions() RunOptions {
	return RunOptions{
		ContinueOnError: true,
		Isolate:         true,
		Confirm:         types.ConfirmNever,
	}
}

// Validate checks the options are coherent
func (o RunOptions) Validate() error {
	if !o.Confirm.IsValid() {
		return goerr.New("invalid confirm mode", goerr.V("mode", o.Confirm))
	}
	return nil
}

// DryRun reports whether this run must never invoke an action
func (o RunOptions) DryRun() bool {
	return o.Confirm == types.ConfirmDryRun
}

// LogValue returns structured log value
func (o RunOptions) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("continue_on_error", o.ContinueOnError),
		slog.Bool("isolate", o.Isolate),
		slog.String("confirm", o.Confirm.String()),
	)
}
