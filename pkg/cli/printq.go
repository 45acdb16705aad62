package cli

import (
	"context"

	"github.com/shiftward/sweep/pkg/action"
	"github.com/shiftward/sweep/pkg/cli/config"
	"github.com/urfave/cli/v3"
)

func cmdPrintQueue() *cli.Command {
	var (
		batchCfg   config.Batch
		runCfg     config.Run
		winrmCfg   config.WinRM
		historyCfg config.History
		slackCfg   config.Slack
		params     action.PrintQueueParams
	)

	flags := joinFlags(
		[]cli.Flag{
			&cli.StringFlag{
				Name:        "printer",
				Usage:       "Only clear jobs for this printer",
				Category:    "Action",
				Destination: &params.Printer,
			},
			&cli.BoolFlag{
				Name:        "restart-spooler",
				Usage:       "Restart the spooler service after clearing",
				Category:    "Action",
				Destination: &params.RestartSpooler,
			},
		},
		batchCfg.Flags(),
		runCfg.Flags(),
		winrmCfg.Flags(),
		historyCfg.Flags(),
		slackCfg.Flags(),
	)

	return &cli.Command{
		Name:      "printq",
		Usage:     "Clear stuck print queues on each host",
		ArgsUsage: "[host ...]",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := requireWinRM(&winrmCfg); err != nil {
				return err
			}

			mgr := winrmCfg.Configure()
			defer mgr.Close()
			act, err := action.NewPrintQueue(mgr, params)
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
