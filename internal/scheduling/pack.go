package scheduling

import (
	"context"

	"github.com/guimove/placer/internal/cluster"
	"github.com/guimove/placer/internal/placement"
	"github.com/guimove/placer/internal/resource"
)

type packItem struct {
	index  int
	demand resource.Vector
}

// pack greedily fills as few nodes as possible: it repeatedly picks the
// best node for the first unplaced demand, then tries to stack every other
// still-unplaced demand onto that same node before moving on. Every
// successful placement is a tentative acquire, all released before
// returning; a node is removed from the candidate pool once chosen, since
// every demand still in the work list was just tried on it and did not fit.
func pack(ctx context.Context, view cluster.View, candidates []cluster.NodeID, bundle placement.Bundle, coord *coordinator) ([]cluster.NodeID, placement.Status) {
	work := make([]packItem, len(bundle))
	for i, d := range bundle {
		work[i] = packItem{index: i, demand: d}
	}

	remaining := append([]cluster.NodeID(nil), candidates...)
	assignments := make([]cluster.NodeID, len(bundle))
	ok := true

	for len(work) > 0 {
		head := work[0]
		id, placed := placeOn(ctx, view, remaining, head.demand, coord)
		if !placed {
			ok = false
			break
		}
		assignments[head.index] = id
		work = work[1:]

		leftover := work[:0:0]
		for _, w := range work {
			if _, stacked := placeOn(ctx, view, []cluster.NodeID{id}, w.demand, coord); stacked {
				assignments[w.index] = id
				continue
			}
			leftover = append(leftover, w)
		}
		work = leftover

		remaining = removeNode(remaining, id)
	}

	coord.releaseAll(ctx)

	if !ok || len(work) > 0 {
		return nil, placement.Failed
	}
	return assignments, placement.Success
}
