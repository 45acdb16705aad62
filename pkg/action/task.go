package action

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"

	"github.com/shiftward/sweep/pkg/domain/model"
	"github.com/shiftward/sweep/pkg/domain/types"
	"github.com/shiftward/sweep/pkg/service/winrm"
)

// taskScript registers a daily scheduled task unless one with the same
// name exists. Existing tasks are left untouched whatever they run.
const taskScript = `$t = Get-ScheduledTask -TaskName %[1]s -ErrorAction SilentlyContinue
if ($t) {
  Write-Output '{"changed":false,"detail":"task already registered"}'
  exit 0
}
$action = New-ScheduledTaskAction -Execute %[2]s%[3]s
$trigger = New-ScheduledTaskTrigger -Daily -At %[4]s
Register-ScheduledTask -TaskName %[1]s -Action $action -Trigger $trigger -User 'SYSTEM' -RunLevel Highest -ErrorAction Stop | Out-Null
Write-Output '{"changed":true,"detail":"task registered"}'`

// TaskParams describes the scheduled task to ensure on every host
type TaskParams struct {
	TaskName string `json:"taskName"`
	Execute  string `json:"execute"`
	Argument string `json:"argument,omitempty"`
	At       string `json:"at,omitempty"`
}

// Task registers a daily scheduled task on each host in the batch if it
// is not there yet. Identities are hostnames.
type Task struct {
	runner ScriptRunner
	params TaskParams
}

// NewTask validates params and builds the action
func NewTask(runner ScriptRunner, params TaskParams) (*Task, error) {
	if params.TaskName == "" {
		return nil, goerr.New("task name is required")
	}
	if params.Execute == "" {
		return nil, goerr.New("task executable is required")
	}
	if params.At == "" {
		params.At = "03:00"
	}
	return &Task{runner: runner, params: params}, nil
}

func (a *Task) Name() types.ActionName { return NameTask }

func (a *Task) Params() any { return a.params }

func (a *Task) Apply(ctx context.Context, id types.Identity) (model.ApplyReport, error) {
	argument := ""
	if a.params.Argument != "" {
		argument = " -Argument " + winrm.Quote(a.params.Argument)
	}
	script := fmt.Sprintf(taskScript,
		winrm.Quote(a.params.TaskName),
		winrm.Quote(a.params.Execute),
		argument,
		winrm.Quote(a.params.At),
	)
	return runScript(ctx, a.runner, id.String(), script)
}
