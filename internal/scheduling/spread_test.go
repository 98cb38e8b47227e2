package scheduling

import (
	"context"
	"testing"

	"github.com/guimove/placer/internal/cluster"
	"github.com/guimove/placer/internal/manager/memory"
	"github.com/guimove/placer/internal/placement"
)

func TestSpread_AbortsReleasesEverything(t *testing.T) {
	mgr := memory.New(cluster.View{
		"N1": {Total: vecOf(4, 0, nil), Available: vecOf(4, 0, nil)},
		"N2": {Total: vecOf(4, 0, nil), Available: vecOf(4, 0, nil)},
	})
	ctx := context.Background()
	view, _ := mgr.ClusterResources(ctx)
	coord := newCoordinator(mgr)

	bundle := placement.Bundle{vecOf(1, 0, nil), vecOf(1, 0, nil), vecOf(100, 0, nil)}
	_, status := spread(ctx, view, []cluster.NodeID{"N1", "N2"}, bundle, coord)
	if status != placement.Failed {
		t.Fatalf("status = %v, want FAILED", status)
	}

	after, _ := mgr.ClusterResources(ctx)
	for id, n := range after {
		if n.Available.Predefined[0] != vecOf(4, 0, nil).Predefined[0] {
			t.Errorf("node %s was not fully released after an aborted spread", id)
		}
	}
}
