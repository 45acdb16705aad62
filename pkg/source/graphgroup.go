package source

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"

	"github.com/shiftward/sweep/pkg/domain/model"
	"github.com/shiftward/sweep/pkg/domain/types"
)

// GroupLister resolves a group display name into member UPNs
type GroupLister interface {
	GroupMemberUPNs(ctx context.Context, groupName string) ([]string, error)
}

// EntraGroup expands a Microsoft Entra group into member UPNs via Graph
type EntraGroup struct {
	lister GroupLister
	group  string
}

// NewEntraGroup builds a source over the given group display name
func NewEntraGroup(lister GroupLister, group string) *EntraGroup {
	return &EntraGroup{lister: lister, group: group}
}

func (s *EntraGroup) Load(ctx context.Context) ([]types.Identity, error) {
	upns, err := s.lister.GroupMemberUPNs(ctx, s.group)
	if err != nil {
		return nil, goerr.Wrap(model.ErrSourceLookup, "failed to expand group",
			goerr.V("group", s.group), goerr.V("cause", err.Error()))
	}

	identities := make([]types.Identity, 0, len(upns))
	for _, upn := range upns {
		identities = append(identities, types.Identity(upn))
	}
	return identities, nil
}

func (s *EntraGroup) Describe() string {
	return fmt.Sprintf("group:%s", s.group)
}
