package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/m-mizutani/goerr/v2"
	"github.com/shiftward/sweep/pkg/action"
	"github.com/shiftward/sweep/pkg/cli/config"
	"github.com/shiftward/sweep/pkg/domain/types"
	"github.com/shiftward/sweep/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdRetry() *cli.Command {
	var (
		runCfg     config.Run
		winrmCfg   config.WinRM
		graphCfg   config.Graph
		historyCfg config.History
		slackCfg   config.Slack
	)

	flags := joinFlags(
		runCfg.Flags(),
		winrmCfg.Flags(),
		graphCfg.Flags(),
		historyCfg.Flags(),
		slackCfg.Flags(),
	)

	return &cli.Command{
		Name:      "retry",
		Usage:     "Re-run a recorded run against only its failed identities",
		ArgsUsage: "<run-id>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			runID := c.Args().First()
			if runID == "" {
				return goerr.New("pass the run ID to retry; see `sweep history`")
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			store, err := historyCfg.Require(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			// Both backends are handed over; the recorded action picks its own
			mgr := winrmCfg.Configure()
			defer mgr.Close()
			client := graphCfg.Configure()
			defer client.Close()
			deps := action.Deps{
				WinRM:        mgr,
				Graph:        client,
				WinRMSession: mgr,
				GraphSession: client,
			}

			opts, err := runnerOptions(&runCfg, &slackCfg)
			if err != nil {
				return err
			}

			retry := usecase.NewRetry(store, action.NewRegistry(), deps)
			summary, err := retry.Run(ctx, types.RunID(runID), opts...)
			if err != nil {
				return err
			}

			return checkStrict(&runCfg, summary)
		},
	}
}
