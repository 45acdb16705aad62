package report_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/gt"
	"github.com/slack-go/slack"

	"github.com/shiftward/sweep/pkg/domain/interfaces"
	"github.com/shiftward/sweep/pkg/domain/interfaces/mocks"
	"github.com/shiftward/sweep/pkg/domain/model"
	"github.com/shiftward/sweep/pkg/domain/types"
	"github.com/shiftward/sweep/pkg/report"
	"github.com/shiftward/sweep/pkg/utils/logging"
)

func sampleSummary(t *testing.T) *model.RunSummary {
	t.Helper()
	summary := model.NewRunSummary(types.NewRunID(), "install")
	summary.Record(model.NewAppliedResult("ws01.corp.local", "installed exit=0", 1200*time.Millisecond))
	summary.Record(model.NewSkippedResult("", model.SkipReasonBlank))
	summary.Record(model.NewFailedResult("ws07.corp.local", errors.New("remote script failed"), 800*time.Millisecond))
	summary.Finalize()
	return summary
}

func TestConsoleSummary(t *testing.T) {
	t.Run("renders counts and failures", func(t *testing.T) {
		var buf bytes.Buffer
		sink := report.NewConsole(&buf)

		summary := sampleSummary(t)
		gt.NoError(t, sink.Summary(context.Background(), summary))

		out := buf.String()
		gt.S(t, out).Contains("install done: 1 applied, 1 skipped, 1 failed")
		gt.S(t, out).Contains("FAIL ws07.corp.local: remote script failed")
		gt.S(t, out).Contains("run id: " + summary.RunID.String())
	})

	t.Run("marks aborted runs", func(t *testing.T) {
		var buf bytes.Buffer
		sink := report.NewConsole(&buf)

		summary := model.NewRunSummary(types.NewRunID(), "service")
		summary.Record(model.NewFailedResult("ws01", errors.New("boom"), time.Millisecond))
		summary.Aborted = true
		summary.Finalize()

		gt.NoError(t, sink.Summary(context.Background(), summary))
		gt.S(t, buf.String()).Contains("service aborted:")
	})
}

func TestConsoleResult(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, slog.LevelDebug, logging.FormatJSON)
	ctx := ctxlog.With(context.Background(), logger)

	sink := report.NewConsole(&bytes.Buffer{})

	sink.Result(ctx, model.NewAppliedResult("ws01.corp.local", "started", time.Second))
	sink.Result(ctx, model.NewSkippedResult("", model.SkipReasonBlank))
	sink.Result(ctx, model.NewFailedResult("ws07.corp.local", errors.New("no route to host"), time.Second))

	out := buf.String()
	gt.S(t, out).Contains("ws01.corp.local")
	gt.S(t, out).Contains(model.SkipReasonBlank)
	gt.S(t, out).Contains("no route to host")
	gt.S(t, out).Contains("ERROR")
}

type fakePoster struct {
	channel string
	calls   int
	err     error
}

func (f *fakePoster) PostMessage(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error) {
	f.channel = channelID
	f.calls++
	return channelID, "123.456", f.err
}

func TestSlackSink(t *testing.T) {
	t.Run("posts one message per run", func(t *testing.T) {
		poster := &fakePoster{}
		sink := report.NewSlack(poster, "C0SWEEPOPS")

		summary := sampleSummary(t)
		sink.Result(context.Background(), summary.Results[0])
		gt.NoError(t, sink.Summary(context.Background(), summary))

		gt.Equal(t, poster.calls, 1)
		gt.Equal(t, poster.channel, "C0SWEEPOPS")
	})

	t.Run("post failure surfaces", func(t *testing.T) {
		poster := &fakePoster{err: errors.New("channel_not_found")}
		sink := report.NewSlack(poster, "C0MISSING")

		err := sink.Summary(context.Background(), sampleSummary(t))
		gt.Error(t, err)
	})
}

func TestBuildSummaryBlocks(t *testing.T) {
	t.Run("clean run is a single section with context", func(t *testing.T) {
		summary := model.NewRunSummary(types.NewRunID(), "task")
		summary.Record(model.NewAppliedResult("ws01", "task registered", time.Second))
		summary.Finalize()

		blocks := report.BuildSummaryBlocks(summary)
		gt.A(t, blocks).Length(2)

		section := gt.Cast[*slack.SectionBlock](t, blocks[0])
		gt.S(t, section.Text.Text).Contains("✅")
		gt.S(t, section.Text.Text).Contains("1 applied, 0 skipped, 0 failed")
	})

	t.Run("failures get their own section and cap", func(t *testing.T) {
		summary := model.NewRunSummary(types.NewRunID(), "install")
		for i := 0; i < 15; i++ {
			summary.Record(model.NewFailedResult("ws01", errors.New("unreachable"), time.Second))
		}
		summary.Finalize()

		blocks := report.BuildSummaryBlocks(summary)
		gt.A(t, blocks).Length(3)

		failures := gt.Cast[*slack.SectionBlock](t, blocks[1])
		gt.S(t, failures.Text.Text).Contains("and 5 more")
	})

	t.Run("aborted run is flagged", func(t *testing.T) {
		summary := model.NewRunSummary(types.NewRunID(), "service")
		summary.Aborted = true
		summary.Finalize()

		blocks := report.BuildSummaryBlocks(summary)
		section := gt.Cast[*slack.SectionBlock](t, blocks[0])
		gt.S(t, section.Text.Text).Contains("🛑")
		gt.S(t, section.Text.Text).Contains("(aborted)")
	})
}

func TestMulti(t *testing.T) {
	t.Run("fans out results and summaries", func(t *testing.T) {
		first := &mocks.ReportSinkMock{
			ResultFunc:  func(ctx context.Context, result *model.ActionResult) {},
			SummaryFunc: func(ctx context.Context, summary *model.RunSummary) error { return nil },
		}
		second := &mocks.ReportSinkMock{
			ResultFunc:  func(ctx context.Context, result *model.ActionResult) {},
			SummaryFunc: func(ctx context.Context, summary *model.RunSummary) error { return nil },
		}

		sink := report.NewMulti(first, second)
		summary := sampleSummary(t)
		sink.Result(context.Background(), summary.Results[0])
		gt.NoError(t, sink.Summary(context.Background(), summary))

		gt.Equal(t, len(first.ResultCalls()), 1)
		gt.Equal(t, len(second.ResultCalls()), 1)
		gt.Equal(t, len(first.SummaryCalls()), 1)
		gt.Equal(t, len(second.SummaryCalls()), 1)
	})

	t.Run("one failing sink does not stop the others", func(t *testing.T) {
		failing := &mocks.ReportSinkMock{
			SummaryFunc: func(ctx context.Context, summary *model.RunSummary) error {
				return errors.New("slack is down")
			},
		}
		healthy := &mocks.ReportSinkMock{
			SummaryFunc: func(ctx context.Context, summary *model.RunSummary) error { return nil },
		}

		sink := report.NewMulti(failing, healthy)
		err := sink.Summary(context.Background(), sampleSummary(t))
		gt.Error(t, err)
		gt.Equal(t, len(healthy.SummaryCalls()), 1)
	})

	t.Run("single sink passes through", func(t *testing.T) {
		var only interfaces.ReportSink = &mocks.ReportSinkMock{}
		gt.True(t, report.NewMulti(only) == only)
	})
}
