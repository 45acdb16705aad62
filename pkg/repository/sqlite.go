package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/shiftward/sweep/pkg/domain/interfaces"
	"github.com/shiftward/sweep/pkg/domain/model"
	"github.com/shiftward/sweep/pkg/domain/types"
	_ "modernc.org/sqlite"
)

// Timestamps are stored as unix nanoseconds so ORDER BY works without
// string parsing.
const runsSchema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	action TEXT NOT NULL,
	params BLOB,
	source TEXT NOT NULL,
	dry_run INTEGER NOT NULL,
	aborted INTEGER NOT NULL,
	applied INTEGER NOT NULL,
	skipped INTEGER NOT NULL,
	failed INTEGER NOT NULL,
	failures BLOB,
	started_at INTEGER NOT NULL,
	finished_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
`

const runColumns = "id, action, params, source, dry_run, aborted, applied, skipped, failed, failures, started_at, finished_at"

// SQLite implements HistoryStore backed by a local SQLite file
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens the history database at path, creating the file and
// schema when missing
func NewSQLite(ctx context.Context, path string) (interfaces.HistoryStore, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open history database", goerr.V("path", path))
	}

	if _, err := db.ExecContext(ctx, runsSchema); err != nil {
		_ = db.Close()
		return nil, goerr.Wrap(err, "failed to create runs table", goerr.V("path", path))
	}

	ctxlog.From(ctx).Debug("history database opened", "path", path)

	return &SQLite{db: db}, nil
}

// PutRun saves a finished run
func (s *SQLite) PutRun(ctx context.Context, record *model.RunRecord) error {
	if record == nil {
		return goerr.New("run record is nil")
	}
	if err := record.Validate(); err != nil {
		return goerr.Wrap(err, "invalid run record")
	}

	var failures []byte
	if len(record.Failures) > 0 {
		raw, err := json.Marshal(record.Failures)
		if err != nil {
			return goerr.Wrap(err, "failed to marshal run failures", goerr.V("runID", record.ID))
		}
		failures = raw
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO runs (`+runColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID.String(),
		record.Action.String(),
		[]byte(record.Params),
		record.Source,
		record.DryRun,
		record.Aborted,
		record.Applied,
		record.Skipped,
		record.Failed,
		failures,
		record.StartedAt.UnixNano(),
		record.FinishedAt.UnixNano(),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to save run", goerr.V("runID", record.ID))
	}

	return nil
}

// GetRun retrieves a run by ID
func (s *SQLite) GetRun(ctx context.Context, id types.RunID) (*model.RunRecord, error) {
	if id == "" {
		return nil, goerr.New("run ID is empty")
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs WHERE id = ?`, id.String())
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query run", goerr.V("runID", id))
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, goerr.Wrap(err, "failed to read run row", goerr.V("runID", id))
		}
		return nil, goerr.Wrap(model.ErrRunNotFound, "failed to get run", goerr.V("runID", id))
	}

	return scanRun(rows)
}

// ListRuns retrieves runs sorted by start time (newest first). A limit of
// zero or less returns all runs.
func (s *SQLite) ListRuns(ctx context.Context, limit int) ([]*model.RunRecord, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY started_at DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list runs")
	}
	defer rows.Close()

	runs := make([]*model.RunRecord, 0)
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate runs")
	}

	return runs, nil
}

// Close closes the database
func (s *SQLite) Close() error {
	if err := s.db.Close(); err != nil {
		return goerr.Wrap(err, "failed to close history database")
	}
	return nil
}

func scanRun(rows *sql.Rows) (*model.RunRecord, error) {
	var (
		rec        model.RunRecord
		id         string
		action     string
		params     []byte
		failures   []byte
		startNano  int64
		finishNano int64
	)

	if err := rows.Scan(&id, &action, &params, &rec.Source, &rec.DryRun, &rec.Aborted,
		&rec.Applied, &rec.Skipped, &rec.Failed, &failures, &startNano, &finishNano); err != nil {
		return nil, goerr.Wrap(err, "failed to scan run row")
	}

	rec.ID = types.RunID(id)
	rec.Action = types.ActionName(action)
	if len(params) > 0 {
		rec.Params = json.RawMessage(params)
	}
	if len(failures) > 0 {
		if err := json.Unmarshal(failures, &rec.Failures); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal run failures", goerr.V("runID", id))
		}
	}
	rec.StartedAt = time.Unix(0, startNano)
	rec.FinishedAt = time.Unix(0, finishNano)

	return &rec, nil
}

var _ interfaces.HistoryStore = (*SQLite)(nil) // Compile-time interface check
