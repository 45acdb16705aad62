package action

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"

	"github.com/shiftward/sweep/pkg/domain/model"
	"github.com/shiftward/sweep/pkg/domain/types"
	"github.com/shiftward/sweep/pkg/service/winrm"
)

// serviceScript starts a service unless it already runs. A missing
// service throws and surfaces as the item's failure.
const serviceScript = `$s = Get-Service -Name %s -ErrorAction Stop
if ($s.Status -eq 'Running') {
  Write-Output '{"changed":false,"detail":"already running"}'
  exit 0
}
Start-Service -Name %s -ErrorAction Stop
Write-Output '{"changed":true,"detail":"started"}'`

// ServiceParams names the Windows service to bring up
type ServiceParams struct {
	Service string `json:"service"`
}

// Service ensures a Windows service is running on each host in the
// batch. Identities are hostnames.
type Service struct {
	runner ScriptRunner
	params ServiceParams
}

// NewService validates params and builds the action
func NewService(runner ScriptRunner, params ServiceParams) (*Service, error) {
	if params.Service == "" {
		return nil, goerr.New("service name is required")
	}
	return &Service{runner: runner, params: params}, nil
}

func (a *Service) Name() types.ActionName { return NameService }

func (a *Service) Params() any { return a.params }

func (a *Service) Apply(ctx context.Context, id types.Identity) (model.ApplyReport, error) {
	name := winrm.Quote(a.params.Service)
	return runScript(ctx, a.runner, id.String(), fmt.Sprintf(serviceScript, name, name))
}
