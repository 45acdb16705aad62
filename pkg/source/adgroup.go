package source

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/shiftward/sweep/pkg/domain/model"
	"github.com/shiftward/sweep/pkg/domain/types"
	"github.com/shiftward/sweep/pkg/service/winrm"
)

// ScriptRunner runs a PowerShell script on a host and returns its output
type ScriptRunner interface {
	Run(ctx context.Context, host, script string) (*winrm.Output, error)
}

// ADGroup expands an Active Directory group into member account names by
// running Get-ADGroupMember on a domain controller.
type ADGroup struct {
	runner ScriptRunner
	dc     string
	group  string
}

// NewADGroup builds a source that expands group on the given domain controller
func NewADGroup(runner ScriptRunner, dc, group string) *ADGroup {
	return &ADGroup{runner: runner, dc: dc, group: group}
}

func (s *ADGroup) Load(ctx context.Context) ([]types.Identity, error) {
	script := "Import-Module ActiveDirectory -ErrorAction Stop; " +
		"$m = @(Get-ADGroupMember -Identity " + winrm.Quote(s.group) + " -Recursive | " +
		"Select-Object -ExpandProperty SamAccountName); " +
		"ConvertTo-Json -InputObject $m -Compress"

	out, err := s.runner.Run(ctx, s.dc, script)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query group members", goerr.V("group", s.group))
	}
	if out.ExitCode != 0 {
		return nil, goerr.Wrap(model.ErrSourceLookup, "group lookup failed",
			goerr.V("group", s.group), goerr.V("exitCode", out.ExitCode), goerr.V("stderr", out.Stderr))
	}

	names, err := parseMemberNames(out.Stdout)
	if err != nil {
		return nil, goerr.Wrap(model.ErrSourceFormat, "unexpected group member output",
			goerr.V("group", s.group), goerr.V("stdout", out.Stdout))
	}

	identities := make([]types.Identity, 0, len(names))
	for _, name := range names {
		identities = append(identities, types.Identity(name))
	}
	return identities, nil
}

func (s *ADGroup) Describe() string {
	return fmt.Sprintf("adgroup:%s@%s", s.group, s.dc)
}

// parseMemberNames decodes ConvertTo-Json output. PowerShell collapses a
// single-element result to a bare string, so try the array shape first
// and fall back to one string.
func parseMemberNames(stdout string) ([]string, error) {
	stdout = strings.TrimSpace(stdout)
	if stdout == "" {
		return nil, nil
	}

	var names []string
	if err := json.Unmarshal([]byte(stdout), &names); err == nil {
		return names, nil
	}

	var single string
	if err := json.Unmarshal([]byte(stdout), &single); err == nil {
		return []string{single}, nil
	}

	return nil, goerr.New("member list is neither array nor string")
}
