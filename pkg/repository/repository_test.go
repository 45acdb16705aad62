package repository_test

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/shiftward/sweep/pkg/domain/interfaces"
	"github.com/shiftward/sweep/pkg/domain/model"
	"github.com/shiftward/sweep/pkg/domain/types"
	"github.com/shiftward/sweep/pkg/repository"
)

func newRunRecord(action types.ActionName) *model.RunRecord {
	now := time.Now()
	return &model.RunRecord{
		ID:      types.NewRunID(),
		Action:  action,
		Params:  json.RawMessage(`{"package":"7zip"}`),
		Source:  "csv:hosts.csv#hostname",
		Applied: 3,
		Skipped: 1,
		Failed:  2,
		Failures: []model.FailureRecord{
			{Identity: "ws04.corp.local", Error: "remote script failed"},
			{Identity: "ws09.corp.local", Error: "host unreachable"},
		},
		StartedAt:  now.Add(-time.Minute),
		FinishedAt: now,
	}
}

func testHistoryStore(t *testing.T, newStore func(t *testing.T) interfaces.HistoryStore) {
	t.Run("PutRun", func(t *testing.T) {
		store := newStore(t)
		defer store.Close()

		ctx := context.Background()
		rec := newRunRecord("install")
		gt.NoError(t, store.PutRun(ctx, rec))

		// Verify the record was saved correctly
		retrieved, err := store.GetRun(ctx, rec.ID)
		gt.NoError(t, err)
		gt.Equal(t, retrieved.ID, rec.ID)
		gt.Equal(t, retrieved.Action, rec.Action)
		gt.Equal(t, retrieved.Source, rec.Source)
		gt.Equal(t, retrieved.Applied, rec.Applied)
		gt.Equal(t, retrieved.Skipped, rec.Skipped)
		gt.Equal(t, retrieved.Failed, rec.Failed)
		gt.Equal(t, string(retrieved.Params), string(rec.Params))
		gt.A(t, retrieved.Failures).Length(2)
		gt.Equal(t, retrieved.Failures[0].Identity, types.Identity("ws04.corp.local"))
		gt.Equal(t, retrieved.Failures[1].Error, "host unreachable")
		// Timestamp comparison with tolerance for storage precision
		gt.True(t, rec.StartedAt.Sub(retrieved.StartedAt).Abs() < time.Second)
		gt.True(t, rec.FinishedAt.Sub(retrieved.FinishedAt).Abs() < time.Second)
	})

	t.Run("PutRun_Invalid", func(t *testing.T) {
		store := newStore(t)
		defer store.Close()

		ctx := context.Background()
		gt.Error(t, store.PutRun(ctx, nil))

		rec := newRunRecord("install")
		rec.ID = ""
		gt.Error(t, store.PutRun(ctx, rec))
	})

	t.Run("PutRun_Overwrite", func(t *testing.T) {
		store := newStore(t)
		defer store.Close()

		ctx := context.Background()
		rec := newRunRecord("service")
		gt.NoError(t, store.PutRun(ctx, rec))

		rec.Applied = 10
		rec.Failed = 0
		rec.Failures = nil
		gt.NoError(t, store.PutRun(ctx, rec))

		retrieved, err := store.GetRun(ctx, rec.ID)
		gt.NoError(t, err)
		gt.Equal(t, retrieved.Applied, 10)
		gt.Equal(t, retrieved.Failed, 0)
		gt.A(t, retrieved.Failures).Length(0)
	})

	t.Run("PutRun_DryRunAndAborted", func(t *testing.T) {
		store := newStore(t)
		defer store.Close()

		ctx := context.Background()
		rec := newRunRecord("uninstall")
		rec.DryRun = true
		rec.Aborted = true
		gt.NoError(t, store.PutRun(ctx, rec))

		retrieved, err := store.GetRun(ctx, rec.ID)
		gt.NoError(t, err)
		gt.True(t, retrieved.DryRun)
		gt.True(t, retrieved.Aborted)
	})

	t.Run("GetRun_NotFound", func(t *testing.T) {
		store := newStore(t)
		defer store.Close()

		ctx := context.Background()
		_, err := store.GetRun(ctx, types.NewRunID())
		gt.Error(t, err)
		gt.True(t, errors.Is(err, model.ErrRunNotFound))
	})

	t.Run("GetRun_EmptyID", func(t *testing.T) {
		store := newStore(t)
		defer store.Close()

		_, err := store.GetRun(context.Background(), "")
		gt.Error(t, err)
	})

	t.Run("ListRuns", func(t *testing.T) {
		store := newStore(t)
		defer store.Close()

		ctx := context.Background()
		base := time.Now()

		var ids []types.RunID
		for i := 0; i < 3; i++ {
			rec := newRunRecord("install")
			rec.StartedAt = base.Add(time.Duration(i) * time.Minute)
			rec.FinishedAt = rec.StartedAt.Add(30 * time.Second)
			gt.NoError(t, store.PutRun(ctx, rec))
			ids = append(ids, rec.ID)
		}

		// Newest first
		runs, err := store.ListRuns(ctx, 0)
		gt.NoError(t, err)
		gt.A(t, runs).Length(3)
		gt.Equal(t, runs[0].ID, ids[2])
		gt.Equal(t, runs[1].ID, ids[1])
		gt.Equal(t, runs[2].ID, ids[0])

		// Limit applies after ordering
		limited, err := store.ListRuns(ctx, 2)
		gt.NoError(t, err)
		gt.A(t, limited).Length(2)
		gt.Equal(t, limited[0].ID, ids[2])
	})

	t.Run("ListRuns_Empty", func(t *testing.T) {
		store := newStore(t)
		defer store.Close()

		runs, err := store.ListRuns(context.Background(), 10)
		gt.NoError(t, err)
		gt.A(t, runs).Length(0)
	})
}

func TestMemoryHistory(t *testing.T) {
	testHistoryStore(t, func(t *testing.T) interfaces.HistoryStore {
		return repository.NewMemory()
	})
}

func TestSQLiteHistory(t *testing.T) {
	testHistoryStore(t, func(t *testing.T) interfaces.HistoryStore {
		store, err := repository.NewSQLite(context.Background(), filepath.Join(t.TempDir(), "history.db"))
		gt.NoError(t, err)
		return store
	})
}

func TestSQLiteReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := repository.NewSQLite(ctx, path)
	gt.NoError(t, err)
	rec := newRunRecord("install")
	gt.NoError(t, store.PutRun(ctx, rec))
	gt.NoError(t, store.Close())

	// Records survive process restarts
	reopened, err := repository.NewSQLite(ctx, path)
	gt.NoError(t, err)
	defer reopened.Close()

	retrieved, err := reopened.GetRun(ctx, rec.ID)
	gt.NoError(t, err)
	gt.Equal(t, retrieved.Action, rec.Action)
	gt.A(t, retrieved.Failures).Length(2)
}

func TestMemoryIsolation(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemory()
	defer store.Close()

	rec := newRunRecord("install")
	gt.NoError(t, store.PutRun(ctx, rec))

	// Mutating the caller's record must not touch the stored copy
	rec.Failures[0].Error = "mutated"
	retrieved, err := store.GetRun(ctx, rec.ID)
	gt.NoError(t, err)
	gt.Equal(t, retrieved.Failures[0].Error, "remote script failed")
}
