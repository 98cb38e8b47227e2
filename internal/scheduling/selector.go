package scheduling

import (
	"github.com/guimove/placer/internal/cluster"
	"github.com/guimove/placer/internal/resource"
)

// best returns the candidate node scoring highest for demand, or
// (cluster.NilNodeID, false) if no candidate scores >= 0. Ties are broken
// by whichever candidate is encountered first in the input slice; the core
// does not guarantee determinism beyond that, since candidates is already
// an arbitrary snapshot of node IDs.
func best(view cluster.View, demand resource.Vector, candidates []cluster.NodeID) (cluster.NodeID, bool) {
	bestID := cluster.NilNodeID
	bestScore := infeasibleScore
	found := false

	for _, id := range candidates {
		n, ok := view[id]
		if !ok {
			continue
		}
		s := score(demand, n.Available)
		if s < 0 {
			continue
		}
		if !found || s > bestScore {
			bestID = id
			bestScore = s
			found = true
		}
	}

	return bestID, found
}
