package types

import (
	"strings"

	"github.com/google/uuid"
)

// Identity is an opaque token naming one target of a bulk operation:
// a mailbox UPN, a host name, a GPO name, a SID.
type Identity string

// String returns the string representation
func (id Identity) String() string {
	return string(id)
}

// IsBlank reports whether the identity is empty or whitespace-only.
// Blank identities are skipped by the runner, not treated as errors.
func (id Identity) IsBlank() bool {
	return strings.TrimSpace(string(id)) == ""
}

// RunID identifies one batch run
type RunID string

// String returns the string representation
func (id RunID) String() string {
	return string(id)
}

// NewRunID creates a new RunID
func NewRunID() RunID {
	return RunID(uuid.New().String())
}

// ActionName identifies a remote action kind ("autoreply", "install", ...)
type ActionName string

// String returns the string representation
func (n ActionName) String() string {
	return string(n)
}

// Outcome is the per-identity result classification
type Outcome string

const (
	// OutcomeApplied means the action changed the target's state
	OutcomeApplied Outcome = "applied"
	// OutcomeSkipped means the action was not attempted or found nothing to do
	OutcomeSkipped Outcome = "skipped"
	// OutcomeFailed means the action was attempted and failed
	OutcomeFailed Outcome = "failed"
)

// String returns the string representation
func (o Outcome) String() string {
	return string(o)
}

// ConfirmMode controls how mutating calls are gated
type ConfirmMode string

const (
	// ConfirmNever proceeds unattended
	ConfirmNever ConfirmMode = "never"
	// ConfirmAlways requires a confirmation callback before each mutating call
	ConfirmAlways ConfirmMode = "always"
	// ConfirmDryRun reports what would be done without applying anything
	ConfirmDryRun ConfirmMode = "dry-run"
)

// String returns the string representation
func (m ConfirmMode) String() string {
	return string(m)
}

// IsValid checks if the confirm mode is one of the known values
func (m ConfirmMode) IsValid() bool {
	switch m {
	case ConfirmNever, ConfirmAlways, ConfirmDryRun:
		return true
	default:
		return false
	}
}
