package cli

import (
	"context"

	"github.com/shiftward/sweep/pkg/action"
	"github.com/shiftward/sweep/pkg/cli/config"
	"github.com/shiftward/sweep/pkg/domain/interfaces"
	"github.com/shiftward/sweep/pkg/source"
	"github.com/urfave/cli/v3"
)

func cmdAutoReply() *cli.Command {
	var (
		batchCfg     config.Batch
		runCfg       config.Run
		graphCfg     config.Graph
		historyCfg   config.History
		slackCfg     config.Slack
		autoReplyCfg config.AutoReply
	)

	flags := joinFlags(
		autoReplyCfg.Flags(),
		batchCfg.Flags(),
		runCfg.Flags(),
		graphCfg.Flags(),
		historyCfg.Flags(),
		slackCfg.Flags(),
	)

	return &cli.Command{
		Name:      "autoreply",
		Usage:     "Set mailbox auto-replies for each user",
		ArgsUsage: "[upn ...]",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := requireGraph(&graphCfg); err != nil {
				return err
			}

			client := graphCfg.Configure()
			defer client.Close()

			params, err := autoReplyCfg.Params()
			if err != nil {
				return err
			}
			act, err := action.NewAutoReply(client, params)
			if err != nil {
				return err
			}

			// Group membership comes from the same Graph session the action
			// uses; opening here lets the runner's Open reuse the token
			src, err := batchCfg.Source(c.Args().Slice(), func(name string) (interfaces.IdentitySource, error) {
				if err := client.Open(ctx); err != nil {
					return nil, err
				}
				return source.NewEntraGroup(client, name), nil
			})
			if err != nil {
				return err
			}

			return executeRun(ctx, batchRun{
				run:     &runCfg,
				history: &historyCfg,
				slack:   &slackCfg,
				source:  src,
				action:  act,
				session: client,
			})
		},
	}
}
