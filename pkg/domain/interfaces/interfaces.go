package interfaces

//go:generate moq -out mocks/mocks.go -pkg mocks . IdentitySource RemoteAction SessionManager Confirmer ReportSink HistoryStore

import (
	"context"

	"github.com/shiftward/sweep/pkg/domain/model"
	"github.com/shiftward/sweep/pkg/domain/types"
)

// IdentitySource yields the ordered sequence of identities for one run.
// Order is preserved as-is downstream: no dedup, no filtering.
type IdentitySource interface {
	// Load resolves the source into identities. Malformed sources fail with
	// model.ErrSourceFormat, unresolvable ones with model.ErrSourceLookup.
	Load(ctx context.Context) ([]types.Identity, error)

	// Describe returns a short label for logs and run history,
	// e.g. "csv:users.csv#upn" or "group:Workstations"
	Describe() string
}

// RemoteAction applies one idempotent configuration change to one identity.
// Applying twice with the same configuration must converge to the same
// remote state; the runner offers no transactions and no retries.
type RemoteAction interface {
	// Name identifies the action kind for reports and run history
	Name() types.ActionName

	// Params returns the action's configuration for run history, or nil
	// when there is nothing worth persisting. Must be JSON-marshalable.
	Params() any

	// Apply performs the change for a single identity. A nil error with
	// ApplyReport.NoChange set means the target was already in the desired
	// state and is recorded as skipped.
	Apply(ctx context.Context, id types.Identity) (model.ApplyReport, error)
}

// SessionManager owns the authenticated connection a run's action needs.
// The runner opens it once before the batch loop and closes it exactly once
// afterwards, on every exit path.
type SessionManager interface {
	// Open establishes the session. Calling Open on an already-open
	// manager reuses the session instead of erroring.
	Open(ctx context.Context) error

	// Close tears the session down. The runner calls it exactly once per
	// run; failures are logged and never mask a computed summary.
	Close() error
}

// Confirmer gates each mutating call when the run uses ConfirmAlways
type Confirmer interface {
	// Confirm asks whether the action may be applied to the identity.
	// false means the identity is recorded as declined; an error counts
	// as that identity's failure.
	Confirm(ctx context.Context, id types.Identity, action types.ActionName) (bool, error)
}

// ReportSink receives results as they happen and the summary exactly once
// at the end of a run
type ReportSink interface {
	// Result streams one per-identity outcome as it occurs. Sinks must not
	// fail the run; errors are the sink's own problem to log.
	Result(ctx context.Context, result *model.ActionResult)

	// Summary delivers the finalized summary. Errors are reported by the
	// runner but never replace the summary.
	Summary(ctx context.Context, summary *model.RunSummary) error
}

// HistoryStore persists run records so failed identities can be retried
// and past runs inspected
type HistoryStore interface {
	// PutRun stores one finished run
	PutRun(ctx context.Context, record *model.RunRecord) error

	// GetRun retrieves a run by ID; unknown IDs fail with model.ErrRunNotFound
	GetRun(ctx context.Context, id types.RunID) (*model.RunRecord, error)

	// ListRuns returns the most recent runs, newest first, up to limit
	// (0 means no limit)
	ListRuns(ctx context.Context, limit int) ([]*model.RunRecord, error)

	// Close closes the store
	Close() error
}
