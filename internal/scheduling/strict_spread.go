package scheduling

import (
	"context"

	"github.com/guimove/placer/internal/cluster"
	"github.com/guimove/placer/internal/placement"
)

// strictSpread requires every demand to land on a distinct node. It scores
// purely off the snapshot view and never touches the manager: distinctness
// is enforced structurally by removing each chosen node from the
// candidate pool, not by consuming capacity, so there is nothing to
// tentatively acquire or roll back.
func strictSpread(ctx context.Context, view cluster.View, candidates []cluster.NodeID, bundle placement.Bundle, coord *coordinator) ([]cluster.NodeID, placement.Status) {
	if len(bundle) > len(candidates) {
		return nil, placement.Infeasible
	}

	remaining := append([]cluster.NodeID(nil), candidates...)
	assignments := make([]cluster.NodeID, len(bundle))

	for i, demand := range bundle {
		id, ok := best(view, demand, remaining)
		if !ok {
			return nil, placement.Failed
		}
		assignments[i] = id
		remaining = removeNode(remaining, id)
	}

	return assignments, placement.Success
}
