package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/shiftward/sweep/pkg/cli/config"
	"github.com/urfave/cli/v3"
)

func cmdHistory() *cli.Command {
	var (
		historyCfg config.History
		limit      int
	)

	flags := joinFlags(
		[]cli.Flag{
			&cli.IntFlag{
				Name:        "limit",
				Usage:       "Number of runs to show",
				Value:       20,
				Destination: &limit,
			},
		},
		historyCfg.Flags(),
	)

	return &cli.Command{
		Name:  "history",
		Usage: "List recent runs and their failed identities",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			store, err := historyCfg.Require(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.ListRuns(ctx, limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(os.Stdout, "no runs recorded")
				return nil
			}

			for _, rec := range runs {
				marker := ""
				if rec.DryRun {
					marker = " (dry-run)"
				}
				if rec.Aborted {
					marker += " (aborted)"
				}

				fmt.Fprintf(os.Stdout, "%s  %-10s %d applied, %d skipped, %d failed%s  %s  run=%s\n",
					rec.StartedAt.Local().Format("2006-01-02 15:04"),
					rec.Action, rec.Applied, rec.Skipped, rec.Failed, marker, rec.Source, rec.ID)

				for _, f := range rec.Failures {
					fmt.Fprintf(os.Stdout, "    FAIL %s: %s\n", f.Identity, f.Error)
				}
			}

			return nil
		},
	}
}
