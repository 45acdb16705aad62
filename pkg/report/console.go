// Package report delivers per-identity results and the run summary to
// wherever operators watch: the console, Slack, or several at once.
package report

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/shiftward/sweep/pkg/domain/model"
	"github.com/shiftward/sweep/pkg/domain/types"
)

const timeRounding = 10 * time.Millisecond

// Console streams results through the context logger and renders the
// final summary to out, normally stdout. Logs go to stderr so the
// summary stays pipeable.
type Console struct {
	out io.Writer
}

// NewConsole creates a console sink writing the summary to out
func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

// Result logs one outcome as it happens. Blank identities warn, failures
// log as errors, everything else is informational.
func (c *Console) Result(ctx context.Context, result *model.ActionResult) {
	logger := ctxlog.From(ctx)

	switch result.Outcome {
	case types.OutcomeFailed:
		logger.Error("apply failed",
			"identity", result.Identity,
			"error", result.Error,
			"elapsed", result.Elapsed,
		)
	case types.OutcomeSkipped:
		if result.Reason == model.SkipReasonBlank {
			logger.Warn("skipped", "reason", result.Reason)
			return
		}
		logger.Info("skipped", "identity", result.Identity, "reason", result.Reason)
	default:
		logger.Info("applied",
			"identity", result.Identity,
			"detail", result.Detail,
			"elapsed", result.Elapsed,
		)
	}
}

// Summary renders the final counts and failure list
func (c *Console) Summary(ctx context.Context, summary *model.RunSummary) error {
	status := "done"
	if summary.Aborted {
		status = "aborted"
	}

	_, err := fmt.Fprintf(c.out, "\n%s %s: %d applied, %d skipped, %d failed (%d identities in %s)\n",
		summary.Action, status,
		summary.Applied, summary.Skipped, summary.Failed,
		summary.Processed(), summary.Elapsed().Round(timeRounding),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to write summary")
	}

	for _, failure := range summary.Failures() {
		if _, err := fmt.Fprintf(c.out, "  FAIL %s: %s\n", failure.Identity, failure.Error); err != nil {
			return goerr.Wrap(err, "failed to write summary")
		}
	}

	if _, err := fmt.Fprintf(c.out, "run id: %s\n", summary.RunID); err != nil {
		return goerr.Wrap(err, "failed to write summary")
	}
	return nil
}
