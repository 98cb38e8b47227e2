package scheduling

import (
	"context"

	"github.com/guimove/placer/internal/cluster"
	"github.com/guimove/placer/internal/placement"
)

// strictPack places the bundle's aggregate demand onto a single node. Its
// feasibility gate deliberately scans the entire cluster view rather than
// just the filtered candidate set: a node could be excluded by the caller's
// filter yet still prove the request is not structurally impossible. This
// mirrors the one place the core's policy rules look past the candidate
// filter, and is intentional rather than an oversight.
func strictPack(ctx context.Context, view cluster.View, candidates []cluster.NodeID, bundle placement.Bundle, coord *coordinator) ([]cluster.NodeID, placement.Status) {
	agg := bundle.Aggregate()

	feasible := false
	for _, n := range view {
		if agg.LessOrEqual(n.Total) {
			feasible = true
			break
		}
	}
	if !feasible {
		return nil, placement.Infeasible
	}

	id, ok := best(view, agg, candidates)
	if !ok {
		return nil, placement.Failed
	}

	assignments := make([]cluster.NodeID, len(bundle))
	for i := range assignments {
		assignments[i] = id
	}
	return assignments, placement.Success
}
