package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/shiftward/sweep/pkg/cli/config"
	"github.com/shiftward/sweep/pkg/utils/apperr"
	"github.com/urfave/cli/v3"
)

// Run runs the CLI application
func Run(ctx context.Context, args []string) error {
	var loggerCfg config.Logger

	app := &cli.Command{
		Name:    "sweep",
		Usage:   "Apply one change across a fleet of Windows hosts, AD objects, or M365 mailboxes",
		Version: "0.1.0",
		Flags:   loggerCfg.Flags(),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			// Configure logger
			logger, err := loggerCfg.Configure()
			if err != nil {
				return nil, err
			}

			slog.SetDefault(logger)
			ctx = ctxlog.With(ctx, logger)
			return ctx, nil
		},
		Commands: []*cli.Command{
			cmdInstall(),
			cmdUninstall(),
			cmdService(),
			cmdTask(),
			cmdPrintQueue(),
			cmdProfiles(),
			cmdGPOFilter(),
			cmdAutoReply(),
			cmdProbe(),
			cmdHistory(),
			cmdRetry(),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		apperr.Handle(ctx, err)
		return goerr.Wrap(err, "CLI execution failed")
	}

	return nil
}
