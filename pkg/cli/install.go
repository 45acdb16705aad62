package cli

import (
	"context"

	"github.com/shiftward/sweep/pkg/action"
	"github.com/shiftward/sweep/pkg/cli/config"
	"github.com/urfave/cli/v3"
)

func cmdInstall() *cli.Command {
	var (
		batchCfg   config.Batch
		runCfg     config.Run
		winrmCfg   config.WinRM
		historyCfg config.History
		slackCfg   config.Slack
		params     action.InstallParams
	)

	flags := joinFlags(
		[]cli.Flag{
			&cli.StringFlag{
				Name:        "package",
				Usage:       "Package ID",
				Category:    "Action",
				Required:    true,
				Destination: &params.Package,
			},
			&cli.StringFlag{
				Name:        "pkg-version",
				Usage:       "Pin a package version",
				Category:    "Action",
				Destination: &params.Version,
			},
			&cli.StringFlag{
				Name:        "tool",
				Usage:       "Package tool (winget or choco)",
				Category:    "Action",
				Value:       action.ToolWinget,
				Destination: &params.Tool,
			},
		},
		batchCfg.Flags(),
		runCfg.Flags(),
		winrmCfg.Flags(),
		historyCfg.Flags(),
		slackCfg.Flags(),
	)

	return &cli.Command{
		Name:      "install",
		Usage:     "Install a package on each host",
		ArgsUsage: "[host ...]",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := requireWinRM(&winrmCfg); err != nil {
				return err
			}

			mgr := winrmCfg.Configure()
			defer mgr.Close()
			act, err := action.NewInstall(mgr, params)
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

func cmdUninstall() *cli.Command {
	var (
		batchCfg   config.Batch
		runCfg     config.Run
		winrmCfg   config.WinRM
		historyCfg config.History
		slackCfg   config.Slack
		params     action.UninstallParams
	)

	flags := joinFlags(
		[]cli.Flag{
			&cli.StringFlag{
				Name:        "package",
				Usage:       "Package ID",
				Category:    "Action",
				Required:    true,
				Destination: &params.Package,
			},
			&cli.StringFlag{
				Name:        "tool",
				Usage:       "Package tool (winget or choco)",
				Category:    "Action",
				Value:       action.ToolWinget,
				Destination: &params.Tool,
			},
		},
		batchCfg.Flags(),
		runCfg.Flags(),
		winrmCfg.Flags(),
		historyCfg.Flags(),
		slackCfg.Flags(),
	)

	return &cli.Command{
		Name:      "uninstall",
		Usage:     "Remove a package from each host",
		ArgsUsage: "[host ...]",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := requireWinRM(&winrmCfg); err != nil {
				return err
			}

			mgr := winrmCfg.Configure()
			defer mgr.Close()
			act, err := action.NewUninstall(mgr, params)
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
