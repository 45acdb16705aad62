package cli

import (
	"context"

	"github.com/shiftward/sweep/pkg/action"
	"github.com/shiftward/sweep/pkg/cli/config"
	"github.com/urfave/cli/v3"
)

func cmdTask() *cli.Command {
	var (
		batchCfg   config.Batch
		runCfg     config.Run
		winrmCfg   config.WinRM
		historyCfg config.History
		slackCfg   config.Slack
		params     action.TaskParams
	)

	flags := joinFlags(
		[]cli.Flag{
			&cli.StringFlag{
				Name:        "task-name",
				Usage:       "Scheduled task name",
				Category:    "Action",
				Required:    true,
				Destination: &params.TaskName,
			},
			&cli.StringFlag{
				Name:        "execute",
				Usage:       "Program the task runs",
				Category:    "Action",
				Required:    true,
				Destination: &params.Execute,
			},
			&cli.StringFlag{
				Name:        "argument",
				Usage:       "Arguments passed to the program",
				Category:    "Action",
				Destination: &params.Argument,
			},
			&cli.StringFlag{
				Name:        "at",
				Usage:       "Daily trigger time (default 03:00)",
				Category:    "Action",
				Destination: &params.At,
			},
		},
		batchCfg.Flags(),
		runCfg.Flags(),
		winrmCfg.Flags(),
		historyCfg.Flags(),
		slackCfg.Flags(),
	)

	return &cli.Command{
		Name:      "task",
		Usage:     "Register a daily scheduled task on each host",
		ArgsUsage: "[host ...]",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := requireWinRM(&winrmCfg); err != nil {
				return err
			}

			mgr := winrmCfg.Configure()
			defer mgr.Close()
			act, err := action.NewTask(mgr, params)
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
