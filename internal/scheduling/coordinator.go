package scheduling

import (
	"context"

	"k8s.io/klog/v2"

	"github.com/guimove/placer/internal/cluster"
	"github.com/guimove/placer/internal/manager"
	"github.com/guimove/placer/internal/resource"
)

// acquisition records a tentative hold against the manager so it can be
// rolled back regardless of which policy is mid-flight when it aborts.
type acquisition struct {
	node   cluster.NodeID
	demand resource.Vector
}

// coordinator tracks every tentative acquire made during one Schedule call
// and guarantees each is matched by a release before the call returns. A
// release the manager refuses for a hold it previously granted is a fatal
// invariant violation: the manager's contract guarantees symmetry, so a
// refusal here means the manager or the core disagree about reality and
// continuing would silently corrupt cluster state.
type coordinator struct {
	mgr   manager.ResourceManager
	holds []acquisition
}

func newCoordinator(mgr manager.ResourceManager) *coordinator {
	return &coordinator{mgr: mgr}
}

// tryAcquire attempts to acquire demand on node and records the hold on
// success so releaseAll can undo it later.
func (c *coordinator) tryAcquire(ctx context.Context, node cluster.NodeID, demand resource.Vector) (bool, error) {
	ok, err := c.mgr.TryAcquire(ctx, node, demand)
	if err != nil {
		return false, err
	}
	if ok {
		c.holds = append(c.holds, acquisition{node: node, demand: demand})
	}
	return ok, nil
}

// releaseAll undoes every hold recorded so far, in reverse acquisition
// order, and clears the hold list. Order is not semantically required by
// the manager contract but unwinding in a stack-like order keeps partial
// failures easier to reason about.
func (c *coordinator) releaseAll(ctx context.Context) {
	for i := len(c.holds) - 1; i >= 0; i-- {
		h := c.holds[i]
		ok, err := c.mgr.Release(ctx, h.node, h.demand)
		if err != nil {
			klog.Fatalf("scheduling: release errored for a hold the manager previously granted (node=%v): %v", h.node, err)
		}
		if !ok {
			klog.Fatalf("scheduling: manager refused to release a hold it previously granted (node=%v); manager state is now inconsistent", h.node)
		}
	}
	c.holds = nil
}
