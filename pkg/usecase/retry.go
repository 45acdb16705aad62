package usecase

import (
	"context"
	"fmt"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/shiftward/sweep/pkg/action"
	"github.com/shiftward/sweep/pkg/domain/interfaces"
	"github.com/shiftward/sweep/pkg/domain/model"
	"github.com/shiftward/sweep/pkg/domain/types"
	"github.com/shiftward/sweep/pkg/source"
)

// Retry re-executes a recorded run against just its failed identities.
// The action is rebuilt from the run's persisted name and parameters, so a
// retry applies the same configuration the original run did.
type Retry struct {
	history  interfaces.HistoryStore
	registry *action.Registry
	deps     action.Deps
}

// NewRetry creates a Retry bound to a history store and live service deps
func NewRetry(history interfaces.HistoryStore, registry *action.Registry, deps action.Deps) *Retry {
	return &Retry{
		history:  history,
		registry: registry,
		deps:     deps,
	}
}

// Run loads the recorded run, rebuilds its action, and drives a fresh batch
// of the recorded failures in their original order. Runner options (sink,
// confirm mode) are passed through; the retry itself is recorded to history
// as a new run.
func (u *Retry) Run(ctx context.Context, runID types.RunID, opts ...Option) (*model.RunSummary, error) {
	rec, err := u.history.GetRun(ctx, runID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load run", goerr.V("runID", runID))
	}

	failed := rec.FailedIdentities()
	if len(failed) == 0 {
		return nil, goerr.Wrap(model.ErrNothingToRetry, "run recorded no failures",
			goerr.V("runID", runID),
			goerr.V("action", rec.Action))
	}

	act, session, err := u.registry.Build(rec.Action, u.deps, rec.Params)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to rebuild action",
			goerr.V("runID", runID),
			goerr.V("action", rec.Action))
	}

	ctxlog.From(ctx).Info("retrying failed identities",
		"runID", runID,
		"action", rec.Action,
		"targets", len(failed))

	src := source.NewStaticIdentities(fmt.Sprintf("retry:%s", runID), failed)
	runner := New(src, act, session, append([]Option{WithHistory(u.history)}, opts...)...)

	return runner.Run(ctx)
}
