package action

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/shiftward/sweep/pkg/domain/model"
)

// verdict is the one-line JSON summary a remote script prints last
type verdict struct {
	Changed bool   `json:"changed"`
	Detail  string `json:"detail"`
}

// parseVerdict extracts the verdict from the last non-empty output line.
// Scripts may print diagnostics before it; only the final line counts.
func parseVerdict(stdout string) (*verdict, error) {
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	last := strings.TrimSpace(lines[len(lines)-1])
	if last == "" {
		return nil, goerr.New("remote script produced no output")
	}

	var v verdict
	if err := json.Unmarshal([]byte(last), &v); err != nil {
		return nil, goerr.New("remote script did not report a verdict", goerr.V("lastLine", last))
	}
	return &v, nil
}

// runScript executes script on host and maps its verdict to an
// ApplyReport. A non-zero exit code is the item's failure.
func runScript(ctx context.Context, runner ScriptRunner, host, script string) (model.ApplyReport, error) {
	out, err := runner.Run(ctx, host, script)
	if err != nil {
		return model.ApplyReport{}, err
	}
	if out.ExitCode != 0 {
		return model.ApplyReport{}, goerr.New("remote script failed",
			goerr.V("host", host),
			goerr.V("exitCode", out.ExitCode),
			goerr.V("stderr", clip(out.Stderr)),
			goerr.V("stdout", clip(out.Stdout)),
		)
	}

	v, err := parseVerdict(out.Stdout)
	if err != nil {
		return model.ApplyReport{}, goerr.Wrap(err, "script finished but verdict is missing", goerr.V("host", host))
	}
	return model.ApplyReport{NoChange: !v.Changed, Detail: v.Detail}, nil
}

// clip keeps error values readable when a script dumps a full transcript
func clip(s string) string {
	const max = 512
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
