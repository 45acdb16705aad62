package report

import (
	"context"
	"errors"

	"github.com/shiftward/sweep/pkg/domain/interfaces"
	"github.com/shiftward/sweep/pkg/domain/model"
)

// Multi fans results and the summary out to several sinks
type Multi struct {
	sinks []interfaces.ReportSink
}

// NewMulti combines sinks into one. A single sink is returned as-is.
func NewMulti(sinks ...interfaces.ReportSink) interfaces.ReportSink {
	if len(sinks) == 1 {
		return sinks[0]
	}
	return &Multi{sinks: sinks}
}

func (m *Multi) Result(ctx context.Context, result *model.ActionResult) {
	for _, sink := range m.sinks {
		sink.Result(ctx, result)
	}
}

// Summary delivers to every sink even when one fails, then reports the
// failures together
func (m *Multi) Summary(ctx context.Context, summary *model.RunSummary) error {
	var errs []error
	for _, sink := range m.sinks {
		if err := sink.Summary(ctx, summary); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
