// Package scheduling implements the bundle placement core: scoring
// candidate nodes, ordering a bundle's demands by scarcity, and dispatching
// to one of four placement policies against a manager.ResourceManager.
// Everything in this package runs synchronously within one Schedule call;
// it never suspends and never retries.
package scheduling

import (
	"context"

	"k8s.io/klog/v2"

	"github.com/guimove/placer/internal/cluster"
	"github.com/guimove/placer/internal/manager"
	"github.com/guimove/placer/internal/placement"
)

// NodeFilter narrows the candidate pool before placement. A nil filter
// admits every node in the manager's current view.
type NodeFilter func(cluster.NodeID) bool

// Scheduler places bundles against a single manager.ResourceManager.
type Scheduler struct {
	mgr manager.ResourceManager
}

// NewScheduler creates a Scheduler backed by mgr.
func NewScheduler(mgr manager.ResourceManager) *Scheduler {
	return &Scheduler{mgr: mgr}
}

// Schedule places bundle according to policy, restricted to nodes filter
// admits. It returns INFEASIBLE when the request is structurally
// impossible regardless of current load, FAILED when placement could not
// be found given current availability but might succeed on retry, and
// SUCCESS with one assignment per bundle entry, positionally aligned with
// bundle's original order.
func (s *Scheduler) Schedule(ctx context.Context, bundle placement.Bundle, policy Policy, filter NodeFilter) (placement.Result, error) {
	view, err := s.mgr.ClusterResources(ctx)
	if err != nil {
		return placement.Result{}, err
	}

	var pred func(cluster.NodeID) bool
	if filter != nil {
		pred = func(id cluster.NodeID) bool { return filter(id) }
	}
	candidates := view.Filter(pred)
	if len(candidates) == 0 {
		return placement.Result{Status: placement.Infeasible}, nil
	}

	perm := identityPerm(len(bundle))
	ordered := bundle
	if policy != StrictPack {
		perm = orderDemands(bundle)
		ordered = make(placement.Bundle, len(bundle))
		for i, p := range perm {
			ordered[i] = bundle[p]
		}
	}

	coord := newCoordinator(s.mgr)

	var assignments []cluster.NodeID
	var status placement.Status

	switch policy {
	case Pack:
		assignments, status = pack(ctx, view, candidates, ordered, coord)
	case StrictPack:
		assignments, status = strictPack(ctx, view, candidates, ordered, coord)
	case Spread:
		assignments, status = spread(ctx, view, candidates, ordered, coord)
	case StrictSpread:
		assignments, status = strictSpread(ctx, view, candidates, ordered, coord)
	default:
		klog.Fatalf("scheduling: unknown policy tag %v", policy)
		return placement.Result{}, nil
	}

	if status != placement.Success {
		return placement.Result{Status: status}, nil
	}

	inv := invertPermutation(perm)
	final := make([]cluster.NodeID, len(bundle))
	for orderedIdx, id := range assignments {
		final[inv[orderedIdx]] = id
	}

	return placement.Result{Status: placement.Success, Assignments: final}, nil
}
