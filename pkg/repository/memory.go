package repository

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/shiftward/sweep/pkg/domain/interfaces"
	"github.com/shiftward/sweep/pkg/domain/model"
	"github.com/shiftward/sweep/pkg/domain/types"
)

// Memory implements HistoryStore with in-memory storage
type Memory struct {
	mu   sync.RWMutex
	runs map[types.RunID]*model.RunRecord
}

// NewMemory creates a new memory history store
func NewMemory() interfaces.HistoryStore {
	return &Memory{
		runs: make(map[types.RunID]*model.RunRecord),
	}
}

// PutRun saves a finished run
func (m *Memory) PutRun(ctx context.Context, record *model.RunRecord) error {
	if record == nil {
		return goerr.New("run record is nil")
	}
	if err := record.Validate(); err != nil {
		return goerr.Wrap(err, "invalid run record")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.runs[record.ID] = cloneRun(record)
	return nil
}

// GetRun retrieves a run by ID
func (m *Memory) GetRun(ctx context.Context, id types.RunID) (*model.RunRecord, error) {
	if id == "" {
		return nil, goerr.New("run ID is empty")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, exists := m.runs[id]
	if !exists {
		return nil, goerr.Wrap(model.ErrRunNotFound, "failed to get run", goerr.V("runID", id))
	}

	return cloneRun(rec), nil
}

// ListRuns retrieves runs sorted by start time (newest first). A limit of
// zero or less returns all runs.
func (m *Memory) ListRuns(ctx context.Context, limit int) ([]*model.RunRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	runs := make([]*model.RunRecord, 0, len(m.runs))
	for _, rec := range m.runs {
		runs = append(runs, cloneRun(rec))
	}

	// Sort by start time (newest first)
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].StartedAt.After(runs[j].StartedAt)
	})

	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}

	return runs, nil
}

// Close does nothing for memory store
func (m *Memory) Close() error {
	return nil
}

// cloneRun copies a record including its slices so stored records stay
// isolated from caller mutations
func cloneRun(rec *model.RunRecord) *model.RunRecord {
	recCopy := *rec
	if rec.Params != nil {
		recCopy.Params = append(json.RawMessage(nil), rec.Params...)
	}
	if rec.Failures != nil {
		recCopy.Failures = append([]model.FailureRecord(nil), rec.Failures...)
	}
	return &recCopy
}

var _ interfaces.HistoryStore = (*Memory)(nil) // Compile-time interface check
