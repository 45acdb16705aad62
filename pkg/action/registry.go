package action

import (
	"encoding/json"
	"sort"

	"github.com/m-mizutani/goerr/v2"

	"github.com/shiftward/sweep/pkg/domain/interfaces"
	"github.com/shiftward/sweep/pkg/domain/model"
	"github.com/shiftward/sweep/pkg/domain/types"
	"github.com/shiftward/sweep/pkg/service/session"
)

// Deps are the live service handles builders construct actions around.
// A dep left nil only matters if a builder actually needs it.
type Deps struct {
	WinRM ScriptRunner
	Graph MailboxClient

	// WinRMSession and GraphSession are the session managers handed to
	// the runner alongside the rebuilt action
	WinRMSession interfaces.SessionManager
	GraphSession interfaces.SessionManager
}

// Builder reconstructs an action and its session manager from recorded
// parameters
type Builder func(deps Deps, params json.RawMessage) (interfaces.RemoteAction, interfaces.SessionManager, error)

// Registry maps action names to builders. Retry uses it to rebuild the
// action a past run recorded from its persisted name and parameters.
type Registry struct {
	builders map[types.ActionName]Builder
}

// NewRegistry returns a registry of every action sweep knows
func NewRegistry() *Registry {
	return &Registry{builders: map[types.ActionName]Builder{
		NameAutoReply:  buildAutoReply,
		NameInstall:    buildInstall,
		NameUninstall:  buildUninstall,
		NameService:    buildService,
		NameTask:       buildTask,
		NamePrintQueue: buildPrintQueue,
		NameProfiles:   buildProfiles,
		NameGPOFilter:  buildGPOFilter,
		NameProbe:      buildProbe,
	}}
}

// Build reconstructs the named action from its recorded parameters
func (r *Registry) Build(name types.ActionName, deps Deps, params json.RawMessage) (interfaces.RemoteAction, interfaces.SessionManager, error) {
	builder, ok := r.builders[name]
	if !ok {
		return nil, nil, goerr.Wrap(model.ErrUnknownAction, "no builder for action",
			goerr.V("action", name), goerr.V("known", r.Names()))
	}
	return builder(deps, params)
}

// Names lists registered actions in stable order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, string(name))
	}
	sort.Strings(names)
	return names
}

func unmarshalParams(raw json.RawMessage, out any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return goerr.Wrap(err, "invalid action parameters")
	}
	return nil
}

func buildAutoReply(deps Deps, raw json.RawMessage) (interfaces.RemoteAction, interfaces.SessionManager, error) {
	var params AutoReplyParams
	if err := unmarshalParams(raw, &params); err != nil {
		return nil, nil, err
	}
	act, err := NewAutoReply(deps.Graph, params)
	if err != nil {
		return nil, nil, err
	}
	return act, deps.GraphSession, nil
}

func buildInstall(deps Deps, raw json.RawMessage) (interfaces.RemoteAction, interfaces.SessionManager, error) {
	var params InstallParams
	if err := unmarshalParams(raw, &params); err != nil {
		return nil, nil, err
	}
	act, err := NewInstall(deps.WinRM, params)
	if err != nil {
		return nil, nil, err
	}
	return act, deps.WinRMSession, nil
}

func buildUninstall(deps Deps, raw json.RawMessage) (interfaces.RemoteAction, interfaces.SessionManager, error) {
	var params UninstallParams
	if err := unmarshalParams(raw, &params); err != nil {
		return nil, nil, err
	}
	act, err := NewUninstall(deps.WinRM, params)
	if err != nil {
		return nil, nil, err
	}
	return act, deps.WinRMSession, nil
}

func buildService(deps Deps, raw json.RawMessage) (interfaces.RemoteAction, interfaces.SessionManager, error) {
	var params ServiceParams
	if err := unmarshalParams(raw, &params); err != nil {
		return nil, nil, err
	}
	act, err := NewService(deps.WinRM, params)
	if err != nil {
		return nil, nil, err
	}
	return act, deps.WinRMSession, nil
}

func buildTask(deps Deps, raw json.RawMessage) (interfaces.RemoteAction, interfaces.SessionManager, error) {
	var params TaskParams
	if err := unmarshalParams(raw, &params); err != nil {
		return nil, nil, err
	}
	act, err := NewTask(deps.WinRM, params)
	if err != nil {
		return nil, nil, err
	}
	return act, deps.WinRMSession, nil
}

func buildPrintQueue(deps Deps, raw json.RawMessage) (interfaces.RemoteAction, interfaces.SessionManager, error) {
	var params PrintQueueParams
	if err := unmarshalParams(raw, &params); err != nil {
		return nil, nil, err
	}
	act, err := NewPrintQueue(deps.WinRM, params)
	if err != nil {
		return nil, nil, err
	}
	return act, deps.WinRMSession, nil
}

func buildProfiles(deps Deps, raw json.RawMessage) (interfaces.RemoteAction, interfaces.SessionManager, error) {
	var params ProfilesParams
	if err := unmarshalParams(raw, &params); err != nil {
		return nil, nil, err
	}
	act, err := NewProfiles(deps.WinRM, params)
	if err != nil {
		return nil, nil, err
	}
	return act, deps.WinRMSession, nil
}

func buildGPOFilter(deps Deps, raw json.RawMessage) (interfaces.RemoteAction, interfaces.SessionManager, error) {
	var params GPOFilterParams
	if err := unmarshalParams(raw, &params); err != nil {
		return nil, nil, err
	}
	act, err := NewGPOFilter(deps.WinRM, params)
	if err != nil {
		return nil, nil, err
	}
	return act, deps.WinRMSession, nil
}

func buildProbe(deps Deps, raw json.RawMessage) (interfaces.RemoteAction, interfaces.SessionManager, error) {
	var params ProbeParams
	if err := unmarshalParams(raw, &params); err != nil {
		return nil, nil, err
	}
	act, err := NewProbe(params)
	if err != nil {
		return nil, nil, err
	}
	return act, session.NewNoop(), nil
}
