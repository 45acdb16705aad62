package cli

import (
	"context"

	"github.com/shiftward/sweep/pkg/action"
	"github.com/shiftward/sweep/pkg/cli/config"
	"github.com/urfave/cli/v3"
)

func cmdService() *cli.Command {
	var (
		batchCfg   config.Batch
		runCfg     config.Run
		winrmCfg   config.WinRM
		historyCfg config.History
		slackCfg   config.Slack
		params     action.ServiceParams
	)

	flags := joinFlags(
		[]cli.Flag{
			&cli.StringFlag{
				Name:        "service",
				Usage:       "Windows service name",
				Category:    "Action",
				Required:    true,
				Destination: &params.Service,
			},
		},
		batchCfg.Flags(),
		runCfg.Flags(),
		winrmCfg.Flags(),
		historyCfg.Flags(),
		slackCfg.Flags(),
	)

	return &cli.Command{
		Name:      "service",
		Usage:     "Ensure a Windows service is running on each host",
		ArgsUsage: "[host ...]",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := requireWinRM(&winrmCfg); err != nil {
				return err
			}

			mgr := winrmCfg.Configure()
			defer mgr.Close()
			act, err := action.NewService(mgr, params)
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
