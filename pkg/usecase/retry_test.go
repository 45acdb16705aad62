package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/shiftward/sweep/pkg/action"
	"github.com/shiftward/sweep/pkg/domain/interfaces/mocks"
	"github.com/shiftward/sweep/pkg/domain/model"
	"github.com/shiftward/sweep/pkg/domain/types"
	"github.com/shiftward/sweep/pkg/repository"
	"github.com/shiftward/sweep/pkg/service/winrm"
	"github.com/shiftward/sweep/pkg/usecase"
)

type scriptRunnerStub struct {
	hosts []string
}

func (s *scriptRunnerStub) Run(ctx context.Context, host, script string) (*winrm.Output, error) {
	s.hosts = append(s.hosts, host)
	return &winrm.Output{Stdout: `{"changed":true,"detail":"installed exit=0"}`}, nil
}

func TestRetry(t *testing.T) {
	ctx := context.Background()

	t.Run("reruns only the failed identities", func(t *testing.T) {
		history := repository.NewMemory()
		now := time.Now()
		rec := &model.RunRecord{
			ID:      types.NewRunID(),
			Action:  action.NameInstall,
			Params:  json.RawMessage(`{"package":"7zip"}`),
			Source:  "csv:hosts.csv#hostname",
			Applied: 3,
			Failed:  2,
			Failures: []model.FailureRecord{
				{Identity: "ws04", Error: "timeout"},
				{Identity: "ws09", Error: "timeout"},
			},
			StartedAt:  now.Add(-time.Minute),
			FinishedAt: now,
		}
		gt.NoError(t, history.PutRun(ctx, rec))

		runner := &scriptRunnerStub{}
		session := &mocks.SessionManagerMock{
			OpenFunc:  func(ctx context.Context) error { return nil },
			CloseFunc: func() error { return nil },
		}
		deps := action.Deps{WinRM: runner, WinRMSession: session}

		summary, err := usecase.NewRetry(history, action.NewRegistry(), deps).Run(ctx, rec.ID)
		gt.NoError(t, err)

		gt.Equal(t, summary.Applied, 2)
		gt.Equal(t, summary.Failed, 0)
		gt.Equal(t, runner.hosts, []string{"ws04", "ws09"})
		gt.Equal(t, len(session.OpenCalls()), 1)
		gt.Equal(t, len(session.CloseCalls()), 1)

		// The retry is recorded as a new run carrying the same action,
		// the same params, and a source naming the run it retried
		runs, err := history.ListRuns(ctx, 0)
		gt.NoError(t, err)
		gt.A(t, runs).Length(2)
		gt.Equal(t, runs[0].Action, action.NameInstall)
		gt.Equal(t, runs[0].Source, fmt.Sprintf("retry:%s", rec.ID))
		gt.S(t, string(runs[0].Params)).Contains("7zip")
	})

	t.Run("nothing to retry", func(t *testing.T) {
		history := repository.NewMemory()
		rec := &model.RunRecord{
			ID:         types.NewRunID(),
			Action:     action.NameInstall,
			Applied:    5,
			StartedAt:  time.Now(),
			FinishedAt: time.Now(),
		}
		gt.NoError(t, history.PutRun(ctx, rec))

		_, err := usecase.NewRetry(history, action.NewRegistry(), action.Deps{}).Run(ctx, rec.ID)
		gt.Error(t, err)
		gt.True(t, errors.Is(err, model.ErrNothingToRetry))
	})

	t.Run("unknown run", func(t *testing.T) {
		history := repository.NewMemory()
		_, err := usecase.NewRetry(history, action.NewRegistry(), action.Deps{}).Run(ctx, types.NewRunID())
		gt.Error(t, err)
		gt.True(t, errors.Is(err, model.ErrRunNotFound))
	})

	t.Run("unknown recorded action", func(t *testing.T) {
		history := repository.NewMemory()
		rec := &model.RunRecord{
			ID:     types.NewRunID(),
			Action: "defrag",
			Failures: []model.FailureRecord{
				{Identity: "ws04", Error: "timeout"},
			},
			StartedAt:  time.Now(),
			FinishedAt: time.Now(),
		}
		gt.NoError(t, history.PutRun(ctx, rec))

		_, err := usecase.NewRetry(history, action.NewRegistry(), action.Deps{}).Run(ctx, rec.ID)
		gt.Error(t, err)
		gt.True(t, errors.Is(err, model.ErrUnknownAction))
	})
}
