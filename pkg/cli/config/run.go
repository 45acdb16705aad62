package config

import (
	"log/slog"

	"github.com/shiftward/sweep/pkg/domain/model"
	"github.com/shiftward/sweep/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// Run holds run behavior configuration shared by all action commands
type Run struct {
	DryRun    bool
	Confirm   bool
	FailFast  bool
	NoIsolate bool
	Strict    bool
}

// Flags returns CLI flags for Run configuration
func (r *Run) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "dry-run",
			Usage:       "Report what would change without applying anything",
			Category:    "Run",
			Sources:     cli.EnvVars("SWEEP_DRY_RUN"),
			Destination: &r.DryRun,
		},
		&cli.BoolFlag{
			Name:        "confirm",
			Usage:       "Prompt before each identity",
			Category:    "Run",
			Destination: &r.Confirm,
		},
		&cli.BoolFlag{
			Name:        "fail-fast",
			Usage:       "Abort the run on the first failed identity",
			Category:    "Run",
			Destination: &r.FailFast,
		},
		&cli.BoolFlag{
			Name:        "no-isolate",
			Usage:       "Stop the whole run on an action error instead of recording it per identity",
			Category:    "Run",
			Destination: &r.NoIsolate,
		},
		&cli.BoolFlag{
			Name:        "strict",
			Usage:       "Exit non-zero when any identity failed",
			Category:    "Run",
			Sources:     cli.EnvVars("SWEEP_STRICT"),
			Destination: &r.Strict,
		},
	}
}

// Options maps the flags onto runner options. Dry-run wins over confirm
// since a dry run never applies anything worth prompting for.
func (r *Run) Options() model.RunOptions {
	opts := model.DefaultRunOptions()
	opts.ContinueOnError = !r.FailFast
	opts.Isolate = !r.NoIsolate

	switch {
	case r.DryRun:
		opts.Confirm = types.ConfirmDryRun
	case r.Confirm:
		opts.Confirm = types.ConfirmAlways
	}

	return opts
}

// LogValue returns structured log value
func (r Run) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("dry_run", r.DryRun),
		slog.Bool("confirm", r.Confirm),
		slog.Bool("fail_fast", r.FailFast),
		slog.Bool("no_isolate", r.NoIsolate),
		slog.Bool("strict", r.Strict),
	)
}
