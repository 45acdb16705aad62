package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/shiftward/sweep/pkg/action"
	"github.com/shiftward/sweep/pkg/cli/config"
	"github.com/urfave/cli/v3"
)

func cmdGPOFilter() *cli.Command {
	var (
		batchCfg   config.Batch
		runCfg     config.Run
		winrmCfg   config.WinRM
		historyCfg config.History
		slackCfg   config.Slack
		params     action.GPOFilterParams
	)

	flags := joinFlags(
		[]cli.Flag{
			&cli.StringFlag{
				Name:        "security-group",
				Usage:       "AD group to grant on each GPO",
				Category:    "Action",
				Required:    true,
				Destination: &params.Group,
			},
			&cli.StringFlag{
				Name:        "permission",
				Usage:       "Permission level (GpoRead, GpoApply, GpoEdit)",
				Category:    "Action",
				Destination: &params.Permission,
			},
			&cli.BoolFlag{
				Name:        "remove-auth-users",
				Usage:       "Reduce Authenticated Users to read-only on each GPO",
				Category:    "Action",
				Destination: &params.RemoveAuthUsers,
			},
		},
		batchCfg.Flags(),
		runCfg.Flags(),
		winrmCfg.Flags(),
		historyCfg.Flags(),
		slackCfg.Flags(),
	)

	return &cli.Command{
		Name:      "gpo",
		Usage:     "Grant a security group permission on each GPO",
		ArgsUsage: "[gpo-name ...]",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := requireWinRM(&winrmCfg); err != nil {
				return err
			}
			if winrmCfg.DC == "" {
				return goerr.New("GPO permissions are changed on a domain controller; pass --dc")
			}
			params.DC = winrmCfg.DC

			mgr := winrmCfg.Configure()
			defer mgr.Close()
			act, err := action.NewGPOFilter(mgr, params)
			if err != nil {
				return err
			}

			// Identities are GPO names, not hosts, so --group has no meaning here
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
				session: mgr,
			})
		},
	}
}
