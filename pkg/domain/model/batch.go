package model

import "github.com/shiftward/sweep/pkg/domain/types"

// Batch is an ordered sequence of identities for one run. Insertion order
// is preserved from the identity source and duplicates are kept as given;
// blank entries stay in the batch and are skipped by the runner.
type Batch struct {
	identities []types.Identity
	source     string
}

// NewBatch creates a Batch from a slice of identities. The slice is copied
// so the batch stays immutable after construction.
func NewBatch(identities []types.Identity, source string) *Batch {
	items := make([]types.Identity, len(identities))
	copy(items, identities)
	return &Batch{
		identities: items,
		source:     source,
	}
}

// Len returns the number of entries, blank ones included
func (b *Batch) Len() int {
	return len(b.identities)
}

// IsEmpty reports whether the batch has no entries at all
func (b *Batch) IsEmpty() bool {
	return len(b.identities) == 0
}

// Identities returns a copy of the entries in batch order
func (b *Batch) Identities() []types.Identity {
	items := make([]types.Identity, len(b.identities))
	copy(items, b.identities)
	return items
}

// Source describes where the batch came from ("csv:users.csv#upn",
// "group:Workstations", "args", "retry:<run-id>")
func (b *Batch) Source() string {
	return b.source
}
