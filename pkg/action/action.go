// Package action implements the remote actions sweep can apply to a
// batch: mailbox auto-replies over Microsoft Graph, and package, service,
// scheduled-task, print-queue, profile, and GPO changes over WinRM.
//
// Every action is idempotent. Scripts that run remotely report whether
// they changed anything by printing a one-line JSON verdict as their last
// output line, so "already in the desired state" can be told apart from
// "changed it just now".
package action

import (
	"context"

	"github.com/shiftward/sweep/pkg/domain/types"
	"github.com/shiftward/sweep/pkg/service/winrm"
)

// Action names as they appear in reports and run history
const (
	NameAutoReply  types.ActionName = "autoreply"
	NameInstall    types.ActionName = "install"
	NameUninstall  types.ActionName = "uninstall"
	NameService    types.ActionName = "service"
	NameTask       types.ActionName = "task"
	NamePrintQueue types.ActionName = "printq"
	NameProfiles   types.ActionName = "profiles"
	NameGPOFilter  types.ActionName = "gpo"
	NameProbe      types.ActionName = "probe"
)

// ScriptRunner runs a PowerShell script on a host and returns its output
type ScriptRunner interface {
	Run(ctx context.Context, host, script string) (*winrm.Output, error)
}
