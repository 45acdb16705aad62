package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/shiftward/sweep/pkg/domain/interfaces"
	"github.com/shiftward/sweep/pkg/source"
	"github.com/urfave/cli/v3"
)

// GroupSourceFunc builds an identity source backed by a directory group.
// Commands that cannot resolve groups pass nil.
type GroupSourceFunc func(name string) (interfaces.IdentitySource, error)

// Batch holds identity source configuration shared by all action commands
type Batch struct {
	CSV    string
	Column string
	Group  string
}

// Flags returns CLI flags for Batch configuration
func (b *Batch) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "csv",
			Usage:       "Read identities from a CSV file",
			Category:    "Targets",
			Sources:     cli.EnvVars("SWEEP_CSV"),
			Destination: &b.CSV,
		},
		&cli.StringFlag{
			Name:        "column",
			Usage:       "CSV column holding the identities",
			Category:    "Targets",
			Value:       "identity",
			Sources:     cli.EnvVars("SWEEP_CSV_COLUMN"),
			Destination: &b.Column,
		},
		&cli.StringFlag{
			Name:        "group",
			Usage:       "Resolve identities from a directory group",
			Category:    "Targets",
			Destination: &b.Group,
		},
	}
}

// Source picks the identity source for a run. CSV and group are mutually
// exclusive; positional arguments are the fallback.
func (b *Batch) Source(args []string, groupSource GroupSourceFunc) (interfaces.IdentitySource, error) {
	if b.CSV != "" && b.Group != "" {
		return nil, goerr.New("--csv and --group are mutually exclusive")
	}

	switch {
	case b.CSV != "":
		return source.NewCSV(b.CSV, b.Column), nil

	case b.Group != "":
		if groupSource == nil {
			return nil, goerr.New("this command does not take --group")
		}
		return groupSource(b.Group)

	case len(args) > 0:
		return source.NewStatic("args", args), nil
	}

	return nil, goerr.New("no identities: pass --csv, --group, or identities as arguments")
}

// LogValue returns structured log value
func (b Batch) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("csv", b.CSV),
		slog.String("column", b.Column),
		slog.String("group", b.Group),
	)
}
