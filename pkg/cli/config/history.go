package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/shiftward/sweep/pkg/domain/interfaces"
	"github.com/shiftward/sweep/pkg/repository"
	"github.com/urfave/cli/v3"
)

// History holds the run history storage configuration
type History struct {
	Path     string
	Disabled bool
}

// Flags returns CLI flags for History configuration
func (h *History) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "history-db",
			Usage:       "Run history database path (default ~/.sweep/history.db)",
			Category:    "History",
			Sources:     cli.EnvVars("SWEEP_HISTORY_DB"),
			Destination: &h.Path,
		},
		&cli.BoolFlag{
			Name:        "no-history",
			Usage:       "Do not record this run",
			Category:    "History",
			Sources:     cli.EnvVars("SWEEP_NO_HISTORY"),
			Destination: &h.Disabled,
		},
	}
}

// Configure opens the history store, or returns nil when recording is
// disabled. The caller owns Close.
func (h *History) Configure(ctx context.Context) (interfaces.HistoryStore, error) {
	if h.Disabled {
		return nil, nil
	}

	path := h.Path
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, goerr.Wrap(err, "failed to resolve home directory for history database")
		}
		path = filepath.Join(home, ".sweep", "history.db")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, goerr.Wrap(err, "failed to create history directory", goerr.V("path", path))
	}

	return repository.NewSQLite(ctx, path)
}

// Require opens the history store and rejects --no-history. For commands
// that are meaningless without recorded runs.
func (h *History) Require(ctx context.Context) (interfaces.HistoryStore, error) {
	if h.Disabled {
		return nil, goerr.New("this command needs run history; drop --no-history")
	}
	return h.Configure(ctx)
}

// LogValue returns structured log value
func (h History) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("path", h.Path),
		slog.Bool("disabled", h.Disabled),
	)
}
