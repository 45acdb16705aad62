package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/m-mizutani/goerr/v2"
	"github.com/shiftward/sweep/pkg/cli/config"
	"github.com/shiftward/sweep/pkg/domain/interfaces"
	"github.com/shiftward/sweep/pkg/domain/model"
	"github.com/shiftward/sweep/pkg/report"
	"github.com/shiftward/sweep/pkg/service/winrm"
	"github.com/shiftward/sweep/pkg/source"
	"github.com/shiftward/sweep/pkg/usecase"
)

// batchRun carries everything executeRun needs to drive one run
type batchRun struct {
	run     *config.Run
	history *config.History
	slack   *config.Slack
	source  interfaces.IdentitySource
	action  interfaces.RemoteAction
	session interfaces.SessionManager
}

// executeRun drives one batch run and maps the outcome to exit status.
// Ctrl-C cancels between identities; the summary still prints.
func executeRun(ctx context.Context, r batchRun) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	history, err := r.history.Configure(ctx)
	if err != nil {
		return err
	}
	if history != nil {
		defer history.Close()
	}

	opts, err := runnerOptions(r.run, r.slack)
	if err != nil {
		return err
	}
	if history != nil {
		opts = append(opts, usecase.WithHistory(history))
	}

	summary, err := usecase.New(r.source, r.action, r.session, opts...).Run(ctx)
	if err != nil {
		return err
	}

	return checkStrict(r.run, summary)
}

// runnerOptions builds the option set shared by fresh runs and retries:
// console report, optional Slack summary, run options, and the terminal
// confirmer when prompting is on
func runnerOptions(runCfg *config.Run, slackCfg *config.Slack) ([]usecase.Option, error) {
	sink := interfaces.ReportSink(report.NewConsole(os.Stdout))
	if slackSink := slackCfg.Configure(); slackSink != nil {
		sink = report.NewMulti(sink, slackSink)
	}

	opts := []usecase.Option{
		usecase.WithSink(sink),
		usecase.WithOptions(runCfg.Options()),
	}

	if runCfg.Confirm && !runCfg.DryRun {
		confirmer, err := newTerminalConfirmer()
		if err != nil {
			return nil, err
		}
		opts = append(opts, usecase.WithConfirmer(confirmer))
	}

	return opts, nil
}

// checkStrict turns recorded failures into a non-zero exit under --strict
func checkStrict(runCfg *config.Run, summary *model.RunSummary) error {
	if runCfg.Strict && summary.HasFailures() {
		return goerr.New("run finished with failures",
			goerr.V("failed", summary.Failed),
			goerr.V("runID", summary.RunID))
	}
	return nil
}

// requireWinRM fails host commands before any source work when
// credentials are missing
func requireWinRM(cfg *config.WinRM) error {
	if !cfg.IsConfigured() {
		return goerr.New("WinRM credentials are required. Please provide SWEEP_WINRM_USER and SWEEP_WINRM_PASSWORD")
	}
	return nil
}

// requireGraph fails mailbox commands before any source work when app
// credentials are missing
func requireGraph(cfg *config.Graph) error {
	if !cfg.IsConfigured() {
		return goerr.New("Graph credentials are required. Please provide SWEEP_GRAPH_TENANT, SWEEP_GRAPH_CLIENT_ID and SWEEP_GRAPH_CLIENT_SECRET")
	}
	return nil
}

// hostSource resolves the identity batch for host commands. Resolving an
// AD group runs Get-ADGroupMember on the DC, so the WinRM session opens
// here; the runner's own Open reuses it and Close tears it down.
func hostSource(ctx context.Context, batchCfg *config.Batch, winrmCfg *config.WinRM, mgr *winrm.Manager, args []string) (interfaces.IdentitySource, error) {
	return batchCfg.Source(args, func(name string) (interfaces.IdentitySource, error) {
		if winrmCfg.DC == "" {
			return nil, goerr.New("resolving an AD group needs --dc")
		}
		if err := mgr.Open(ctx); err != nil {
			return nil, err
		}
		return source.NewADGroup(mgr, winrmCfg.DC, name), nil
	})
}
