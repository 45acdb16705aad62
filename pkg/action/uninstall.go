package action

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"

	"github.com/shiftward/sweep/pkg/domain/model"
	"github.com/shiftward/sweep/pkg/domain/types"
	"github.com/shiftward/sweep/pkg/service/winrm"
)

// A package that was never installed is the desired end state already,
// not a failure, for either tool.
const uninstallScriptChoco = `$out = & choco uninstall %s -y --no-progress 2>&1 | Out-String
$code = $LASTEXITCODE
if ($out -match 'not installed' -or $out -match 'non-existent package') {
  Write-Output '{"changed":false,"detail":"not installed"}'
  exit 0
}
if ($code -eq 0 -or $code -eq 1641 -or $code -eq 3010) {
  @{changed = $true; detail = "uninstalled exit=$code"} | ConvertTo-Json -Compress
  exit 0
}
Write-Output $out
exit $code`

const uninstallScriptWinget = `$out = & winget uninstall --id %s --exact --silent --disable-interactivity 2>&1 | Out-String
$code = $LASTEXITCODE
if ($out -match 'No installed package found') {
  Write-Output '{"changed":false,"detail":"not installed"}'
  exit 0
}
if ($code -eq 0) {
  @{changed = $true; detail = "uninstalled exit=$code"} | ConvertTo-Json -Compress
  exit 0
}
Write-Output $out
exit $code`

// UninstallParams names the package to remove from every host
type UninstallParams struct {
	Package string `json:"package"`
	Tool    string `json:"tool,omitempty"`
}

// Uninstall removes a package from each host in the batch. Identities
// are hostnames.
type Uninstall struct {
	runner ScriptRunner
	params UninstallParams
}

// NewUninstall validates params and builds the action
func NewUninstall(runner ScriptRunner, params UninstallParams) (*Uninstall, error) {
	if params.Package == "" {
		return nil, goerr.New("package name is required")
	}
	if err := validTool(params.Tool); err != nil {
		return nil, err
	}
	return &Uninstall{runner: runner, params: params}, nil
}

func (a *Uninstall) Name() types.ActionName { return NameUninstall }

func (a *Uninstall) Params() any { return a.params }

func (a *Uninstall) Apply(ctx context.Context, id types.Identity) (model.ApplyReport, error) {
	pkg := winrm.Quote(a.params.Package)

	script := fmt.Sprintf(uninstallScriptWinget, pkg)
	if a.params.Tool == ToolChoco {
		script = fmt.Sprintf(uninstallScriptChoco, pkg)
	}
	return runScript(ctx, a.runner, id.String(), script)
}
