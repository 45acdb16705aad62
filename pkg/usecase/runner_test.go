package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/shiftward/sweep/pkg/domain/interfaces/mocks"
	"github.com/shiftward/sweep/pkg/domain/model"
	"github.com/shiftward/sweep/pkg/domain/types"
	"github.com/shiftward/sweep/pkg/usecase"
)

func staticSource(ids ...string) *mocks.IdentitySourceMock {
	identities := make([]types.Identity, 0, len(ids))
	for _, id := range ids {
		identities = append(identities, types.Identity(id))
	}
	return &mocks.IdentitySourceMock{
		LoadFunc: func(ctx context.Context) ([]types.Identity, error) {
			return identities, nil
		},
		DescribeFunc: func() string { return "test" },
	}
}

func okAction(name types.ActionName) *mocks.RemoteActionMock {
	return &mocks.RemoteActionMock{
		NameFunc:   func() types.ActionName { return name },
		ParamsFunc: func() any { return nil },
		ApplyFunc: func(ctx context.Context, id types.Identity) (model.ApplyReport, error) {
			return model.ApplyReport{Detail: "done"}, nil
		},
	}
}

func failOn(name types.ActionName, failing ...types.Identity) *mocks.RemoteActionMock {
	bad := make(map[types.Identity]bool, len(failing))
	for _, id := range failing {
		bad[id] = true
	}
	return &mocks.RemoteActionMock{
		NameFunc:   func() types.ActionName { return name },
		ParamsFunc: func() any { return nil },
		ApplyFunc: func(ctx context.Context, id types.Identity) (model.ApplyReport, error) {
			if bad[id] {
				return model.ApplyReport{}, errors.New("remote failure")
			}
			return model.ApplyReport{}, nil
		},
	}
}

func openSession() *mocks.SessionManagerMock {
	return &mocks.SessionManagerMock{
		OpenFunc:  func(ctx context.Context) error { return nil },
		CloseFunc: func() error { return nil },
	}
}

func recordingSink() *mocks.ReportSinkMock {
	return &mocks.ReportSinkMock{
		ResultFunc:  func(ctx context.Context, result *model.ActionResult) {},
		SummaryFunc: func(ctx context.Context, summary *model.RunSummary) error { return nil },
	}
}

func resultIdentities(summary *model.RunSummary) []types.Identity {
	ids := make([]types.Identity, 0, len(summary.Results))
	for _, r := range summary.Results {
		ids = append(ids, r.Identity)
	}
	return ids
}

func TestRunAppliesInOrder(t *testing.T) {
	src := staticSource("a@corp.local", "b@corp.local", "c@corp.local")
	act := okAction("autoreply")
	session := openSession()
	sink := recordingSink()

	summary, err := usecase.New(src, act, session, usecase.WithSink(sink)).Run(context.Background())
	gt.NoError(t, err)

	gt.Equal(t, summary.Applied, 3)
	gt.Equal(t, summary.Skipped, 0)
	gt.Equal(t, summary.Failed, 0)
	gt.False(t, summary.Aborted)
	gt.Equal(t, resultIdentities(summary),
		[]types.Identity{"a@corp.local", "b@corp.local", "c@corp.local"})

	// One apply per identity, in batch order
	calls := act.ApplyCalls()
	gt.A(t, calls).Length(3)
	gt.Equal(t, calls[0].Id, types.Identity("a@corp.local"))
	gt.Equal(t, calls[2].Id, types.Identity("c@corp.local"))

	// Session opened and closed once, every result streamed, one summary
	gt.Equal(t, len(session.OpenCalls()), 1)
	gt.Equal(t, len(session.CloseCalls()), 1)
	gt.Equal(t, len(sink.ResultCalls()), 3)
	gt.Equal(t, len(sink.SummaryCalls()), 1)
}

func TestRunEmptyBatch(t *testing.T) {
	session := openSession()
	sink := recordingSink()

	_, err := usecase.New(staticSource(), okAction("install"), session,
		usecase.WithSink(sink)).Run(context.Background())
	gt.Error(t, err)
	gt.True(t, errors.Is(err, model.ErrNoTargets))

	// No session I/O and no summary before the batch exists
	gt.Equal(t, len(session.OpenCalls()), 0)
	gt.Equal(t, len(session.CloseCalls()), 0)
	gt.Equal(t, len(sink.SummaryCalls()), 0)
}

func TestRunBlankIdentities(t *testing.T) {
	src := staticSource("a@corp.local", "", "  ", "b@corp.local")
	act := okAction("autoreply")

	summary, err := usecase.New(src, act, openSession()).Run(context.Background())
	gt.NoError(t, err)

	gt.Equal(t, summary.Applied, 2)
	gt.Equal(t, summary.Skipped, 2)
	gt.Equal(t, summary.Processed(), 4)
	gt.Equal(t, summary.Results[1].Reason, model.SkipReasonBlank)
	gt.Equal(t, summary.Results[2].Reason, model.SkipReasonBlank)
	gt.A(t, act.ApplyCalls()).Length(2)
}

func TestRunDryRun(t *testing.T) {
	src := staticSource("ws01", "ws02")
	act := okAction("service")
	session := openSession()

	opts := model.DefaultRunOptions()
	opts.Confirm = types.ConfirmDryRun

	summary, err := usecase.New(src, act, session, usecase.WithOptions(opts)).Run(context.Background())
	gt.NoError(t, err)

	// Apply is never invoked; the session still opens so credentials get
	// validated before anyone trusts a dry-run
	gt.A(t, act.ApplyCalls()).Length(0)
	gt.Equal(t, len(session.OpenCalls()), 1)
	gt.Equal(t, len(session.CloseCalls()), 1)
	gt.Equal(t, summary.Skipped, 2)
	for _, r := range summary.Results {
		gt.Equal(t, r.Outcome, types.OutcomeSkipped)
		gt.Equal(t, r.Reason, model.SkipReasonDryRun)
	}
}

func TestRunConfirm(t *testing.T) {
	t.Run("declined identities are skipped", func(t *testing.T) {
		src := staticSource("ws01", "ws02", "ws03")
		act := okAction("install")
		confirmer := &mocks.ConfirmerMock{
			ConfirmFunc: func(ctx context.Context, id types.Identity, action types.ActionName) (bool, error) {
				return id != "ws02", nil
			},
		}

		opts := model.DefaultRunOptions()
		opts.Confirm = types.ConfirmAlways

		summary, err := usecase.New(src, act, openSession(),
			usecase.WithOptions(opts),
			usecase.WithConfirmer(confirmer),
		).Run(context.Background())
		gt.NoError(t, err)

		gt.Equal(t, summary.Applied, 2)
		gt.Equal(t, summary.Skipped, 1)
		gt.Equal(t, summary.Results[1].Reason, model.SkipReasonDeclined)
		gt.A(t, act.ApplyCalls()).Length(2)
		gt.A(t, confirmer.ConfirmCalls()).Length(3)
	})

	t.Run("confirmer error fails the identity", func(t *testing.T) {
		src := staticSource("ws01", "ws02")
		act := okAction("install")
		confirmer := &mocks.ConfirmerMock{
			ConfirmFunc: func(ctx context.Context, id types.Identity, action types.ActionName) (bool, error) {
				if id == "ws01" {
					return false, errors.New("prompt unavailable")
				}
				return true, nil
			},
		}

		opts := model.DefaultRunOptions()
		opts.Confirm = types.ConfirmAlways

		summary, err := usecase.New(src, act, openSession(),
			usecase.WithOptions(opts),
			usecase.WithConfirmer(confirmer),
		).Run(context.Background())
		gt.NoError(t, err)

		gt.Equal(t, summary.Failed, 1)
		gt.Equal(t, summary.Applied, 1)
		gt.A(t, act.ApplyCalls()).Length(1)
	})

	t.Run("confirm mode without a confirmer is rejected", func(t *testing.T) {
		src := staticSource("ws01")
		opts := model.DefaultRunOptions()
		opts.Confirm = types.ConfirmAlways

		_, err := usecase.New(src, okAction("install"), openSession(),
			usecase.WithOptions(opts)).Run(context.Background())
		gt.Error(t, err)
		gt.A(t, src.LoadCalls()).Length(0)
	})
}

func TestRunPartialFailureIsolation(t *testing.T) {
	src := staticSource("w1", "w2", "w3", "w4", "w5")
	act := failOn("install", "w2", "w4")
	session := openSession()

	summary, err := usecase.New(src, act, session).Run(context.Background())
	gt.NoError(t, err)

	gt.Equal(t, summary.Applied, 3)
	gt.Equal(t, summary.Failed, 2)
	gt.False(t, summary.Aborted)

	// Every identity was attempted and the failures kept their order
	gt.A(t, act.ApplyCalls()).Length(5)
	failures := summary.Failures()
	gt.A(t, failures).Length(2)
	gt.Equal(t, failures[0].Identity, types.Identity("w2"))
	gt.Equal(t, failures[1].Identity, types.Identity("w4"))
	gt.Equal(t, len(session.CloseCalls()), 1)
}

func TestRunFailFast(t *testing.T) {
	src := staticSource("w1", "w2", "w3", "w4", "w5")
	act := failOn("install", "w2")
	session := openSession()
	sink := recordingSink()

	opts := model.DefaultRunOptions()
	opts.ContinueOnError = false

	summary, err := usecase.New(src, act, session,
		usecase.WithSink(sink),
		usecase.WithOptions(opts),
	).Run(context.Background())
	gt.Error(t, err)

	// w1 applied, w2 failed, the remaining three absent from the summary
	gt.Equal(t, summary.Applied, 1)
	gt.Equal(t, summary.Failed, 1)
	gt.Equal(t, summary.Processed(), 2)
	gt.True(t, summary.Aborted)
	gt.A(t, act.ApplyCalls()).Length(2)

	// Session still closed and summary still delivered exactly once
	gt.Equal(t, len(session.CloseCalls()), 1)
	gt.Equal(t, len(sink.SummaryCalls()), 1)
}

func TestRunWithoutIsolation(t *testing.T) {
	t.Run("error propagates without a failure record", func(t *testing.T) {
		src := staticSource("w1", "w2", "w3")
		boom := errors.New("backend exploded")
		act := &mocks.RemoteActionMock{
			NameFunc:   func() types.ActionName { return "install" },
			ParamsFunc: func() any { return nil },
			ApplyFunc: func(ctx context.Context, id types.Identity) (model.ApplyReport, error) {
				if id == "w2" {
					return model.ApplyReport{}, boom
				}
				return model.ApplyReport{}, nil
			},
		}
		session := openSession()

		opts := model.DefaultRunOptions()
		opts.Isolate = false

		summary, err := usecase.New(src, act, session, usecase.WithOptions(opts)).Run(context.Background())
		gt.Error(t, err)
		gt.True(t, errors.Is(err, boom))

		// The failing identity is named by the error, not recorded
		gt.Equal(t, summary.Applied, 1)
		gt.Equal(t, summary.Failed, 0)
		gt.Equal(t, summary.Processed(), 1)
		gt.True(t, summary.Aborted)
		gt.Equal(t, len(session.CloseCalls()), 1)
	})

	t.Run("panic propagates and the session still closes", func(t *testing.T) {
		src := staticSource("w1")
		act := &mocks.RemoteActionMock{
			NameFunc:   func() types.ActionName { return "install" },
			ParamsFunc: func() any { return nil },
			ApplyFunc: func(ctx context.Context, id types.Identity) (model.ApplyReport, error) {
				panic("unexpected state")
			},
		}
		session := openSession()
		sink := recordingSink()

		opts := model.DefaultRunOptions()
		opts.Isolate = false

		defer func() {
			gt.V(t, recover()).NotNil()
			gt.Equal(t, len(session.CloseCalls()), 1)
			gt.Equal(t, len(sink.SummaryCalls()), 1)
		}()
		_, _ = usecase.New(src, act, session,
			usecase.WithSink(sink),
			usecase.WithOptions(opts),
		).Run(context.Background())
	})
}

func TestRunPanicIsolation(t *testing.T) {
	src := staticSource("w1", "w2", "w3")
	act := &mocks.RemoteActionMock{
		NameFunc:   func() types.ActionName { return "install" },
		ParamsFunc: func() any { return nil },
		ApplyFunc: func(ctx context.Context, id types.Identity) (model.ApplyReport, error) {
			if id == "w2" {
				panic("nil dereference in adapter")
			}
			return model.ApplyReport{}, nil
		},
	}

	summary, err := usecase.New(src, act, openSession()).Run(context.Background())
	gt.NoError(t, err)

	gt.Equal(t, summary.Applied, 2)
	gt.Equal(t, summary.Failed, 1)
	failures := summary.Failures()
	gt.A(t, failures).Length(1)
	gt.Equal(t, failures[0].Identity, types.Identity("w2"))
	gt.S(t, failures[0].Error).Contains("panicked")
}

func TestRunNoChange(t *testing.T) {
	src := staticSource("svc01", "svc02")
	act := &mocks.RemoteActionMock{
		NameFunc:   func() types.ActionName { return "service" },
		ParamsFunc: func() any { return nil },
		ApplyFunc: func(ctx context.Context, id types.Identity) (model.ApplyReport, error) {
			if id == "svc01" {
				return model.ApplyReport{NoChange: true, Detail: "service already running"}, nil
			}
			return model.ApplyReport{Detail: "started"}, nil
		},
	}

	summary, err := usecase.New(src, act, openSession()).Run(context.Background())
	gt.NoError(t, err)

	gt.Equal(t, summary.Skipped, 1)
	gt.Equal(t, summary.Applied, 1)
	gt.Equal(t, summary.Results[0].Outcome, types.OutcomeSkipped)
	gt.Equal(t, summary.Results[0].Reason, "service already running")
	gt.Equal(t, summary.Results[1].Detail, "started")
}

func TestRunSessionErrors(t *testing.T) {
	t.Run("open failure is fatal", func(t *testing.T) {
		act := okAction("install")
		session := &mocks.SessionManagerMock{
			OpenFunc: func(ctx context.Context) error { return errors.New("bad credentials") },
		}
		sink := recordingSink()

		_, err := usecase.New(staticSource("w1"), act, session,
			usecase.WithSink(sink)).Run(context.Background())
		gt.Error(t, err)

		// Never opened, so nothing to close and nothing to report
		gt.A(t, act.ApplyCalls()).Length(0)
		gt.Equal(t, len(session.CloseCalls()), 0)
		gt.Equal(t, len(sink.SummaryCalls()), 0)
	})

	t.Run("close failure never masks the summary", func(t *testing.T) {
		session := &mocks.SessionManagerMock{
			OpenFunc:  func(ctx context.Context) error { return nil },
			CloseFunc: func() error { return errors.New("connection reset") },
		}

		summary, err := usecase.New(staticSource("w1"), okAction("install"), session).Run(context.Background())
		gt.NoError(t, err)
		gt.Equal(t, summary.Applied, 1)
	})
}

func TestRunHistory(t *testing.T) {
	t.Run("records the finished run", func(t *testing.T) {
		src := staticSource("w1", "w2")
		act := &mocks.RemoteActionMock{
			NameFunc:   func() types.ActionName { return "install" },
			ParamsFunc: func() any { return map[string]string{"package": "7zip"} },
			ApplyFunc: func(ctx context.Context, id types.Identity) (model.ApplyReport, error) {
				if id == "w2" {
					return model.ApplyReport{}, errors.New("download failed")
				}
				return model.ApplyReport{}, nil
			},
		}
		history := &mocks.HistoryStoreMock{
			PutRunFunc: func(ctx context.Context, record *model.RunRecord) error { return nil },
		}

		summary, err := usecase.New(src, act, openSession(),
			usecase.WithHistory(history)).Run(context.Background())
		gt.NoError(t, err)

		puts := history.PutRunCalls()
		gt.A(t, puts).Length(1)
		rec := puts[0].Record
		gt.Equal(t, rec.ID, summary.RunID)
		gt.Equal(t, rec.Action, types.ActionName("install"))
		gt.Equal(t, rec.Source, "test")
		gt.Equal(t, rec.Applied, 1)
		gt.Equal(t, rec.Failed, 1)
		gt.A(t, rec.Failures).Length(1)
		gt.Equal(t, rec.Failures[0].Identity, types.Identity("w2"))
		gt.S(t, string(rec.Params)).Contains("7zip")
	})

	t.Run("history failure does not fail the run", func(t *testing.T) {
		history := &mocks.HistoryStoreMock{
			PutRunFunc: func(ctx context.Context, record *model.RunRecord) error {
				return errors.New("disk full")
			},
		}

		summary, err := usecase.New(staticSource("w1"), okAction("install"), openSession(),
			usecase.WithHistory(history)).Run(context.Background())
		gt.NoError(t, err)
		gt.Equal(t, summary.Applied, 1)
	})
}

func TestRunCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src := staticSource("w1", "w2", "w3")
	act := &mocks.RemoteActionMock{
		NameFunc:   func() types.ActionName { return "install" },
		ParamsFunc: func() any { return nil },
		ApplyFunc: func(ctx context.Context, id types.Identity) (model.ApplyReport, error) {
			cancel() // canceled while the first identity is in flight
			return model.ApplyReport{}, nil
		},
	}
	session := openSession()
	sink := recordingSink()

	summary, err := usecase.New(src, act, session, usecase.WithSink(sink)).Run(ctx)
	gt.Error(t, err)
	gt.True(t, errors.Is(err, context.Canceled))

	gt.Equal(t, summary.Applied, 1)
	gt.Equal(t, summary.Processed(), 1)
	gt.True(t, summary.Aborted)
	gt.A(t, act.ApplyCalls()).Length(1)

	// Teardown still runs on the canceled context
	gt.Equal(t, len(session.CloseCalls()), 1)
	gt.Equal(t, len(sink.SummaryCalls()), 1)
}

func TestRunSourceError(t *testing.T) {
	src := &mocks.IdentitySourceMock{
		LoadFunc: func(ctx context.Context) ([]types.Identity, error) {
			return nil, goerr.Wrap(model.ErrSourceFormat, "missing column")
		},
		DescribeFunc: func() string { return "csv:broken.csv#upn" },
	}
	session := openSession()

	_, err := usecase.New(src, okAction("install"), session).Run(context.Background())
	gt.Error(t, err)
	gt.True(t, errors.Is(err, model.ErrSourceFormat))
	gt.Equal(t, len(session.OpenCalls()), 0)
}
