package action

import (
	"context"
	"fmt"

	"github.com/shiftward/sweep/pkg/domain/model"
	"github.com/shiftward/sweep/pkg/domain/types"
	"github.com/shiftward/sweep/pkg/service/winrm"
)

// printQueueScript drains stuck jobs, optionally bouncing the spooler.
// An empty queue with no restart requested counts as already converged.
const printQueueScript = `$printers = %[1]s
$count = 0
foreach ($p in $printers) {
  $jobs = @(Get-PrintJob -PrinterName $p -ErrorAction SilentlyContinue)
  $count += $jobs.Count
  $jobs | Remove-PrintJob -ErrorAction SilentlyContinue
}
$restart = %[2]s
if ($count -eq 0 -and -not $restart) {
  Write-Output '{"changed":false,"detail":"queues already empty"}'
  exit 0
}
$detail = "removed $count jobs"
if ($restart) {
  Restart-Service -Name Spooler -Force -ErrorAction Stop
  $detail = "$detail; spooler restarted"
}
@{changed = $true; detail = $detail} | ConvertTo-Json -Compress`

// PrintQueueParams scopes the purge to one printer or all of them
type PrintQueueParams struct {
	Printer        string `json:"printer,omitempty"`
	RestartSpooler bool   `json:"restartSpooler,omitempty"`
}

// PrintQueue clears queued print jobs on each host in the batch.
// Identities are hostnames.
type PrintQueue struct {
	runner ScriptRunner
	params PrintQueueParams
}

// NewPrintQueue builds the action
func NewPrintQueue(runner ScriptRunner, params PrintQueueParams) (*PrintQueue, error) {
	return &PrintQueue{runner: runner, params: params}, nil
}

func (a *PrintQueue) Name() types.ActionName { return NamePrintQueue }

func (a *PrintQueue) Params() any { return a.params }

func (a *PrintQueue) Apply(ctx context.Context, id types.Identity) (model.ApplyReport, error) {
	printers := "@(Get-Printer | Select-Object -ExpandProperty Name)"
	if a.params.Printer != "" {
		printers = "@(" + winrm.Quote(a.params.Printer) + ")"
	}
	restart := "$false"
	if a.params.RestartSpooler {
		restart = "$true"
	}
	return runScript(ctx, a.runner, id.String(), fmt.Sprintf(printQueueScript, printers, restart))
}
