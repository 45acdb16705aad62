package action

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/shiftward/sweep/pkg/domain/model"
	"github.com/shiftward/sweep/pkg/domain/types"
	"github.com/shiftward/sweep/pkg/service/winrm"
)

// profilesScript deletes local user profiles unused past the cutoff.
// Special profiles (system accounts) and the exclusion list are never
// touched.
const profilesScript = `$cutoff = (Get-Date).AddDays(-%[1]d)
$keep = %[2]s
$stale = @(Get-CimInstance Win32_UserProfile | Where-Object {
  (-not $_.Special) -and $_.LocalPath -and $_.LastUseTime -and
  ($_.LastUseTime -lt $cutoff) -and
  ($keep -notcontains (Split-Path $_.LocalPath -Leaf))
})
if ($stale.Count -eq 0) {
  Write-Output '{"changed":false,"detail":"no stale profiles"}'
  exit 0
}
foreach ($p in $stale) { Remove-CimInstance -InputObject $p -ErrorAction Stop }
@{changed = $true; detail = "removed $($stale.Count) profiles"} | ConvertTo-Json -Compress`

// ProfilesParams sets the staleness cutoff and accounts to keep
type ProfilesParams struct {
	MaxAgeDays int      `json:"maxAgeDays"`
	Exclude    []string `json:"exclude,omitempty"`
}

// Profiles removes stale local user profiles from each host in the
// batch. Identities are hostnames.
type Profiles struct {
	runner ScriptRunner
	params ProfilesParams
}

// NewProfiles validates params and builds the action
func NewProfiles(runner ScriptRunner, params ProfilesParams) (*Profiles, error) {
	if params.MaxAgeDays <= 0 {
		return nil, goerr.New("max age must be positive", goerr.V("maxAgeDays", params.MaxAgeDays))
	}
	return &Profiles{runner: runner, params: params}, nil
}

func (a *Profiles) Name() types.ActionName { return NameProfiles }

func (a *Profiles) Params() any { return a.params }

func (a *Profiles) Apply(ctx context.Context, id types.Identity) (model.ApplyReport, error) {
	keep := make([]string, 0, len(a.params.Exclude))
	for _, name := range a.params.Exclude {
		keep = append(keep, winrm.Quote(name))
	}
	script := fmt.Sprintf(profilesScript, a.params.MaxAgeDays, "@("+strings.Join(keep, ", ")+")")
	return runScript(ctx, a.runner, id.String(), script)
}
