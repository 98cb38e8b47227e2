package scheduling

import (
	"context"

	"github.com/guimove/placer/internal/cluster"
	"github.com/guimove/placer/internal/placement"
	"github.com/guimove/placer/internal/resource"
)

// spread places demands across distinct nodes when possible. unused holds
// every candidate never chosen yet; selected holds nodes already chosen at
// least once. A demand first tries unused, moving its node to selected on
// success; only if no unused node fits does it fall back to reusing a
// selected node that still has room. Every successful placement tentatively
// acquires through coord so later demands in the same call see reduced
// availability; everything is released before returning regardless of the
// outcome, since the manager must never observe this call's partial state.
func spread(ctx context.Context, view cluster.View, candidates []cluster.NodeID, bundle placement.Bundle, coord *coordinator) ([]cluster.NodeID, placement.Status) {
	unused := append([]cluster.NodeID(nil), candidates...)
	var selected []cluster.NodeID
	assignments := make([]cluster.NodeID, len(bundle))
	ok := true

	for i, demand := range bundle {
		id, placed := placeOn(ctx, view, unused, demand, coord)
		if placed {
			assignments[i] = id
			unused = removeNode(unused, id)
			selected = append(selected, id)
			continue
		}

		id, placed = placeOn(ctx, view, selected, demand, coord)
		if placed {
			assignments[i] = id
			continue
		}

		ok = false
		break
	}

	coord.releaseAll(ctx)

	if !ok {
		return nil, placement.Failed
	}
	return assignments, placement.Success
}

// placeOn picks the best-scoring node among from and tentatively acquires
// demand on it, mutating view's local copy to reflect the hold so
// subsequent scoring calls in this Schedule invocation see it.
func placeOn(ctx context.Context, view cluster.View, from []cluster.NodeID, demand resource.Vector, coord *coordinator) (cluster.NodeID, bool) {
	id, ok := best(view, demand, from)
	if !ok {
		return cluster.NilNodeID, false
	}

	acquired, err := coord.tryAcquire(ctx, id, demand)
	if err != nil || !acquired {
		return cluster.NilNodeID, false
	}

	applyHold(view, id, demand)
	return id, true
}

// applyHold mutates view's local copy of a node's available resources to
// reflect a tentative acquisition already recorded with the manager.
func applyHold(view cluster.View, id cluster.NodeID, demand resource.Vector) {
	n := view[id]
	n.Available = n.Available.Sub(demand)
	view[id] = n
}
