package cli

import (
	"context"

	"github.com/shiftward/sweep/pkg/action"
	"github.com/shiftward/sweep/pkg/cli/config"
	"github.com/urfave/cli/v3"
)

func cmdProfiles() *cli.Command {
	var (
		batchCfg   config.Batch
		runCfg     config.Run
		winrmCfg   config.WinRM
		historyCfg config.History
		slackCfg   config.Slack
		params     action.ProfilesParams
	)

	flags := joinFlags(
		[]cli.Flag{
			&cli.IntFlag{
				Name:        "max-age-days",
				Usage:       "Delete profiles unused for this many days",
				Category:    "Action",
				Required:    true,
				Destination: &params.MaxAgeDays,
			},
			&cli.StringSliceFlag{
				Name:     "exclude",
				Usage:    "Profile name to keep (repeatable)",
				Category: "Action",
			},
		},
		batchCfg.Flags(),
		runCfg.Flags(),
		winrmCfg.Flags(),
		historyCfg.Flags(),
		slackCfg.Flags(),
	)

	return &cli.Command{
		Name:      "profiles",
		Usage:     "Remove stale local user profiles from each host",
		ArgsUsage: "[host ...]",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := requireWinRM(&winrmCfg); err != nil {
				return err
			}
			params.Exclude = c.StringSlice("exclude")

			mgr := winrmCfg.Configure()
			defer mgr.Close()
			act, err := action.NewProfiles(mgr, params)
			if err != nil {
				return err
			}

			src, err := hostSource(ctx, &batchCfg, &winrmCfg, mgr, c.Args().Slice())
			if err != nil {
				return err
			}

			return executeRun(ctx, batchRun{
				run:     &runCfg,
				history: &historyCfg,
				slack:   &slackCfg,
				source:  src,
				action:  act,
				session: mgr,
			})
		},
	}
}
