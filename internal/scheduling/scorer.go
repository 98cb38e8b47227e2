package scheduling

import (
	"k8s.io/klog/v2"

	"github.com/guimove/placer/internal/fixedpoint"
	"github.com/guimove/placer/internal/resource"
)

// infeasibleScore is returned by score when demand cannot fit node_avail at
// all; it is strictly less than every score a feasible placement can
// produce (all per-dimension contributions are non-negative).
const infeasibleScore = -1.0

// score computes how loosely demand fits into avail: for every predefined
// dimension and every custom key demand uses, it adds (a-r)/a where r is
// the demanded amount and a is the available amount, or 0 if a is exactly
// zero and r is also zero. A demand exceeding availability on any
// dimension, or requiring a custom resource the node doesn't carry at all,
// makes the whole placement infeasible on this node.
//
// Higher scores mean more unused headroom remains after placement, so the
// node is a looser (more preferred) fit for SPREAD-style policies.
func score(demand, avail resource.Vector) float64 {
	total := 0.0

	for i := 0; i < int(resource.PredefinedMax); i++ {
		c, feasible := dimensionScore(demand.Predefined[i], avail.Predefined[i])
		if !feasible {
			return infeasibleScore
		}
		total += c
	}

	for _, key := range demand.SortedCustomKeys() {
		r := demand.CustomValue(key)
		a, ok := avail.Custom[key]
		if !ok {
			return infeasibleScore
		}
		c, feasible := dimensionScore(r, a)
		if !feasible {
			return infeasibleScore
		}
		total += c
	}

	return total
}

func dimensionScore(demanded, available fixedpoint.Value) (float64, bool) {
	if available.Milli() < 0 {
		klog.Fatalf("scheduling: negative availability %d", available.Milli())
		return 0, false
	}
	if demanded.Milli() > available.Milli() {
		return 0, false
	}
	if available.IsZero() {
		return 0, true
	}
	a := available.Float64()
	r := demanded.Float64()
	return (a - r) / a, true
}
