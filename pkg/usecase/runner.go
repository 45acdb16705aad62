// Package usecase drives batch runs: load an ordered identity batch from a
// source, apply one idempotent remote action per identity with per-item
// failure isolation, and emit a run summary exactly once.
package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/shiftward/sweep/pkg/domain/interfaces"
	"github.com/shiftward/sweep/pkg/domain/model"
	"github.com/shiftward/sweep/pkg/domain/types"
)

// Runner executes one batch run
type Runner struct {
	source    interfaces.IdentitySource
	action    interfaces.RemoteAction
	session   interfaces.SessionManager
	sink      interfaces.ReportSink
	confirmer interfaces.Confirmer
	history   interfaces.HistoryStore
	options   model.RunOptions
}

// Option is a functional option for configuring Runner
type Option func(*Runner)

// WithSink sets the sink receiving streamed results and the final summary
func WithSink(sink interfaces.ReportSink) Option {
	return func(r *Runner) {
		r.sink = sink
	}
}

// WithConfirmer sets the callback consulted before each mutating call when
// confirm mode is "always"
func WithConfirmer(confirmer interfaces.Confirmer) Option {
	return func(r *Runner) {
		r.confirmer = confirmer
	}
}

// WithHistory sets the store that records finished runs
func WithHistory(history interfaces.HistoryStore) Option {
	return func(r *Runner) {
		r.history = history
	}
}

// WithOptions sets the run options
func WithOptions(options model.RunOptions) Option {
	return func(r *Runner) {
		r.options = options
	}
}

// New creates a Runner for one source/action/session combination
func New(source interfaces.IdentitySource, action interfaces.RemoteAction, session interfaces.SessionManager, opts ...Option) *Runner {
	r := &Runner{
		source:  source,
		action:  action,
		session: session,
		sink:    nopSink{},
		options: model.DefaultRunOptions(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Run loads the batch, opens the session, applies the action to every
// identity in order, and returns the finalized summary. The summary is
// delivered to the sink and recorded to history on every exit path after
// the session opened, and the session is closed exactly once. On abort
// the returned summary covers the identities processed so far alongside
// the abort error.
func (r *Runner) Run(ctx context.Context) (*model.RunSummary, error) {
	logger := ctxlog.From(ctx)

	if err := r.options.Validate(); err != nil {
		return nil, err
	}
	if r.options.Confirm == types.ConfirmAlways && r.confirmer == nil {
		return nil, goerr.New("confirm mode is always but no confirmer is configured")
	}

	// Resolve the batch before any session work so an empty or broken
	// source never touches a backend
	identities, err := r.source.Load(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load identities",
			goerr.V("source", r.source.Describe()))
	}
	batch := model.NewBatch(identities, r.source.Describe())
	if batch.IsEmpty() {
		return nil, goerr.Wrap(model.ErrNoTargets, "identity source yielded no identities",
			goerr.V("source", r.source.Describe()))
	}

	summary := model.NewRunSummary(types.NewRunID(), r.action.Name())

	logger.Info("starting run",
		"runID", summary.RunID,
		"action", r.action.Name(),
		"source", batch.Source(),
		"targets", batch.Len(),
		"options", r.options,
	)

	if err := r.session.Open(ctx); err != nil {
		return nil, goerr.Wrap(err, "failed to open session")
	}

	// Teardown runs on every exit path, the loop's panics included, and
	// must survive a canceled context: close the session last, emit and
	// record the summary first (LIFO).
	teardownCtx := context.WithoutCancel(ctx)
	defer func() {
		if err := r.session.Close(); err != nil {
			ctxlog.From(teardownCtx).Warn("failed to close session", "error", err)
		}
	}()
	defer r.finish(teardownCtx, summary, batch.Source())

	if err := r.processBatch(ctx, batch, summary); err != nil {
		return summary, err
	}

	return summary, nil
}

// processBatch walks the batch in order, recording exactly one result per
// identity unless an abort cuts the run short
func (r *Runner) processBatch(ctx context.Context, batch *model.Batch, summary *model.RunSummary) error {
	logger := ctxlog.From(ctx)

	for _, id := range batch.Identities() {
		if err := ctx.Err(); err != nil {
			summary.Aborted = true
			return goerr.Wrap(err, "run canceled",
				goerr.V("processed", summary.Processed()),
				goerr.V("targets", batch.Len()))
		}

		if id.IsBlank() {
			logger.Warn("skipping empty identity", "position", summary.Processed())
			r.report(ctx, summary, model.NewSkippedResult(id, model.SkipReasonBlank))
			continue
		}

		if r.options.DryRun() {
			r.report(ctx, summary, model.NewSkippedResult(id, model.SkipReasonDryRun))
			continue
		}

		if r.options.Confirm == types.ConfirmAlways {
			ok, err := r.confirmer.Confirm(ctx, id, r.action.Name())
			if err != nil {
				r.report(ctx, summary, model.NewFailedResult(id, goerr.Wrap(err, "confirmation failed"), 0))
				if !r.options.ContinueOnError {
					summary.Aborted = true
					return goerr.Wrap(err, "aborting run after confirmation failure",
						goerr.V("identity", id))
				}
				continue
			}
			if !ok {
				r.report(ctx, summary, model.NewSkippedResult(id, model.SkipReasonDeclined))
				continue
			}
		}

		report, elapsed, err := r.apply(ctx, id)
		if err != nil {
			if !r.options.Isolate {
				// Propagates without a Failed record; the abort error
				// names the identity instead
				summary.Aborted = true
				return goerr.Wrap(err, "apply failed",
					goerr.V("identity", id),
					goerr.V("action", r.action.Name()))
			}
			r.report(ctx, summary, model.NewFailedResult(id, err, elapsed))
			if !r.options.ContinueOnError {
				summary.Aborted = true
				return goerr.Wrap(err, "aborting run after failure",
					goerr.V("identity", id),
					goerr.V("action", r.action.Name()))
			}
			continue
		}

		if report.NoChange {
			reason := model.SkipReasonNoChange
			if report.Detail != "" {
				reason = report.Detail
			}
			r.report(ctx, summary, model.NewSkippedResult(id, reason))
			continue
		}

		r.report(ctx, summary, model.NewAppliedResult(id, report.Detail, elapsed))
	}

	return nil
}

// apply invokes the action once. With isolation on, a panic inside Apply
// becomes this identity's error instead of taking down the batch.
func (r *Runner) apply(ctx context.Context, id types.Identity) (report model.ApplyReport, elapsed time.Duration, err error) {
	started := time.Now()
	defer func() {
		elapsed = time.Since(started)
	}()

	if r.options.Isolate {
		defer func() {
			if rec := recover(); rec != nil {
				err = goerr.New("action panicked",
					goerr.V("identity", id),
					goerr.V("panic", rec))
			}
		}()
	}

	report, err = r.action.Apply(ctx, id)
	return report, elapsed, err
}

func (r *Runner) report(ctx context.Context, summary *model.RunSummary, result *model.ActionResult) {
	summary.Record(result)
	r.sink.Result(ctx, result)
}

// finish finalizes the summary, hands it to the sink exactly once, and
// records the run. Sink and history failures are logged but never mask
// the summary.
func (r *Runner) finish(ctx context.Context, summary *model.RunSummary, source string) {
	logger := ctxlog.From(ctx)

	summary.Finalize()
	if err := r.sink.Summary(ctx, summary); err != nil {
		logger.Warn("failed to deliver run summary", "error", err, "runID", summary.RunID)
	}

	if r.history == nil {
		return
	}
	rec, err := model.NewRunRecord(summary, r.action.Params(), source, r.options.DryRun())
	if err != nil {
		logger.Warn("failed to build run record", "error", err, "runID", summary.RunID)
		return
	}
	if err := r.history.PutRun(ctx, rec); err != nil {
		logger.Warn("failed to record run history", "error", err, "runID", summary.RunID)
	}
}

// nopSink drops all output; used when no sink is configured
type nopSink struct{}

func (nopSink) Result(ctx context.Context, result *model.ActionResult) {}

func (nopSink) Summary(ctx context.Context, summary *model.RunSummary) error {
	return nil
}
