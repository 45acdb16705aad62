package cli

import (
	"context"

	"github.com/shiftward/sweep/pkg/action"
	"github.com/shiftward/sweep/pkg/cli/config"
	"github.com/shiftward/sweep/pkg/service/session"
	"github.com/urfave/cli/v3"
)

func cmdProbe() *cli.Command {
	var (
		batchCfg   config.Batch
		runCfg     config.Run
		historyCfg config.History
		slackCfg   config.Slack
		params     action.ProbeParams
	)

	flags := joinFlags(
		[]cli.Flag{
			&cli.IntFlag{
				Name:        "port",
				Usage:       "TCP port to probe",
				Category:    "Action",
				Required:    true,
				Destination: &params.Port,
			},
			&cli.StringFlag{
				Name:        "timeout",
				Usage:       "Dial timeout per host (default 5s)",
				Category:    "Action",
				Destination: &params.Timeout,
			},
		},
		batchCfg.Flags(),
		runCfg.Flags(),
		historyCfg.Flags(),
		slackCfg.Flags(),
	)

	return &cli.Command{
		Name:      "probe",
		Usage:     "Check TCP reachability of each host",
		ArgsUsage: "[host ...]",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			act, err := action.NewProbe(params)
			if err != nil {
				return err
			}

			// Probing dials directly, so no directory is available for --group
			src, err := batchCfg.Source(c.Args().Slice(), nil)
			if err != nil {
				return err
			}

			return executeRun(ctx, batchRun{
				run:     &runCfg,
				history: &historyCfg,
				slack:   &slackCfg,
				source:  src,
				action:  act,
				session: session.NewNoop(),
			})
		},
	}
}
