// Package source provides the identity sources a run can draw its batch
// from: an explicit list, a CSV column, an AD group, or an Entra group.
// Sources preserve order and never filter; blank entries flow through so
// the runner can record them as skipped.
package source

import (
	"context"

	"github.com/shiftward/sweep/pkg/domain/types"
)

// Static serves a fixed identity list. Command-line targets and retry
// runs both use it.
type Static struct {
	label      string
	identities []types.Identity
}

// NewStatic builds a source over the given values, kept in order
func NewStatic(label string, values []string) *Static {
	identities := make([]types.Identity, 0, len(values))
	for _, v := range values {
		identities = append(identities, types.Identity(v))
	}
	return &Static{label: label, identities: identities}
}

// NewStaticIdentities is NewStatic for values that are already typed
func NewStaticIdentities(label string, identities []types.Identity) *Static {
	copied := make([]types.Identity, len(identities))
	copy(copied, identities)
	return &Static{label: label, identities: copied}
}

func (s *Static) Load(ctx context.Context) ([]types.Identity, error) {
	out := make([]types.Identity, len(s.identities))
	copy(out, s.identities)
	return out, nil
}

func (s *Static) Describe() string {
	return s.label
}
