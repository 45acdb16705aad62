package action

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"

	"github.com/shiftward/sweep/pkg/domain/model"
	"github.com/shiftward/sweep/pkg/domain/types"
	"github.com/shiftward/sweep/pkg/service/winrm"
)

// Package tools install and uninstall can drive
const (
	ToolWinget = "winget"
	ToolChoco  = "choco"
)

// installScriptChoco drives choco and reports a verdict. Exit codes 1641
// and 3010 mean the install worked and a reboot is pending or underway,
// so they count as success.
const installScriptChoco = `$out = & choco install %s -y --no-progress 2>&1 | Out-String
$code = $LASTEXITCODE
if ($code -eq 0 -and $out -match 'already installed') {
  Write-Output '{"changed":false,"detail":"already installed"}'
  exit 0
}
if ($code -eq 0 -or $code -eq 1641 -or $code -eq 3010) {
  @{changed = $true; detail = "installed exit=$code"} | ConvertTo-Json -Compress
  exit 0
}
Write-Output $out
exit $code`

// installScriptWinget drives winget. An installed-and-current package
// surfaces as a failed upgrade probe with a nonzero exit, so the
// no-change patterns are checked before the exit code.
const installScriptWinget = `$out = & winget install --id %s --exact --silent --accept-package-agreements --accept-source-agreements 2>&1 | Out-String
$code = $LASTEXITCODE
if ($out -match 'No available upgrade found' -or $out -match 'already installed') {
  Write-Output '{"changed":false,"detail":"already installed"}'
  exit 0
}
if ($code -eq 0) {
  @{changed = $true; detail = "installed exit=$code"} | ConvertTo-Json -Compress
  exit 0
}
Write-Output $out
exit $code`

// InstallParams names the package to converge every host to
type InstallParams struct {
	Package string `json:"package"`
	Version string `json:"version,omitempty"`
	Tool    string `json:"tool,omitempty"`
}

// Install puts a package on each host in the batch. Identities are
// hostnames.
type Install struct {
	runner ScriptRunner
	params InstallParams
}

// NewInstall validates params and builds the action
func NewInstall(runner ScriptRunner, params InstallParams) (*Install, error) {
	if params.Package == "" {
		return nil, goerr.New("package name is required")
	}
	if err := validTool(params.Tool); err != nil {
		return nil, err
	}
	return &Install{runner: runner, params: params}, nil
}

func (a *Install) Name() types.ActionName { return NameInstall }

func (a *Install) Params() any { return a.params }

func (a *Install) Apply(ctx context.Context, id types.Identity) (model.ApplyReport, error) {
	spec := winrm.Quote(a.params.Package)
	if a.params.Version != "" {
		spec += " --version " + winrm.Quote(a.params.Version)
	}

	script := fmt.Sprintf(installScriptWinget, spec)
	if a.params.Tool == ToolChoco {
		script = fmt.Sprintf(installScriptChoco, spec)
	}
	return runScript(ctx, a.runner, id.String(), script)
}

// validTool accepts the known package tools; empty means winget
func validTool(tool string) error {
	switch tool {
	case "", ToolWinget, ToolChoco:
		return nil
	}
	return goerr.New("unknown package tool", goerr.V("tool", tool))
}
