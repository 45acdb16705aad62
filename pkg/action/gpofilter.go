package action

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"

	"github.com/shiftward/sweep/pkg/domain/model"
	"github.com/shiftward/sweep/pkg/domain/types"
	"github.com/shiftward/sweep/pkg/service/winrm"
)

// gpoFilterScript grants a group a permission level on one GPO. It runs
// on a domain controller; the GPO name is the batch identity. A missing
// GPO makes Set-GPPermission throw, which is that item's failure.
const gpoFilterScript = `Import-Module GroupPolicy -ErrorAction Stop
$changed = $false
$perm = Get-GPPermission -Name %[1]s -TargetName %[2]s -TargetType Group -ErrorAction SilentlyContinue
if (-not ($perm -and $perm.Permission -eq %[3]s)) {
  Set-GPPermission -Name %[1]s -TargetName %[2]s -TargetType Group -PermissionLevel %[3]s -ErrorAction Stop | Out-Null
  $changed = $true
}
%[4]s
if ($changed) {
  Write-Output '%[5]s'
} else {
  Write-Output '{"changed":false,"detail":"permission already granted"}'
}`

// gpoAuthUsersBlock drops Authenticated Users to read-only so the granted
// group's Apply filter decides who gets the policy. Machines still need
// Read after MS16-072, so the entry is reduced, not removed.
const gpoAuthUsersBlock = `$auth = Get-GPPermission -Name %[1]s -TargetName 'Authenticated Users' -TargetType Group -ErrorAction SilentlyContinue
if ($auth -and $auth.Permission -ne 'GpoRead') {
  Set-GPPermission -Name %[1]s -TargetName 'Authenticated Users' -TargetType Group -PermissionLevel GpoRead -Replace -ErrorAction Stop | Out-Null
  $changed = $true
}`

// Permission levels Set-GPPermission accepts
var gpoPermissions = map[string]bool{
	"GpoApply":                    true,
	"GpoRead":                     true,
	"GpoEdit":                     true,
	"GpoEditDeleteModifySecurity": true,
}

// GPOFilterParams says which group gets which permission, and on which
// domain controller to apply it
type GPOFilterParams struct {
	DC              string `json:"dc"`
	Group           string `json:"group"`
	Permission      string `json:"permission,omitempty"`
	RemoveAuthUsers bool   `json:"removeAuthUsers,omitempty"`
}

// GPOFilter applies security filtering to each GPO in the batch.
// Identities are GPO display names; every script runs on the configured
// domain controller.
type GPOFilter struct {
	runner ScriptRunner
	params GPOFilterParams
}

// NewGPOFilter validates params and builds the action
func NewGPOFilter(runner ScriptRunner, params GPOFilterParams) (*GPOFilter, error) {
	if params.DC == "" {
		return nil, goerr.New("domain controller is required")
	}
	if params.Group == "" {
		return nil, goerr.New("target group is required")
	}
	if params.Permission == "" {
		params.Permission = "GpoApply"
	}
	if !gpoPermissions[params.Permission] {
		return nil, goerr.New("invalid permission level", goerr.V("permission", params.Permission))
	}
	return &GPOFilter{runner: runner, params: params}, nil
}

func (a *GPOFilter) Name() types.ActionName { return NameGPOFilter }

func (a *GPOFilter) Params() any { return a.params }

func (a *GPOFilter) Apply(ctx context.Context, id types.Identity) (model.ApplyReport, error) {
	authBlock := ""
	detail := "granted " + a.params.Permission
	if a.params.RemoveAuthUsers {
		authBlock = fmt.Sprintf(gpoAuthUsersBlock, winrm.Quote(id.String()))
		detail += ", authenticated users read-only"
	}

	script := fmt.Sprintf(gpoFilterScript,
		winrm.Quote(id.String()),
		winrm.Quote(a.params.Group),
		winrm.Quote(a.params.Permission),
		authBlock,
		fmt.Sprintf(`{"changed":true,"detail":"%s"}`, detail),
	)
	return runScript(ctx, a.runner, a.params.DC, script)
}
