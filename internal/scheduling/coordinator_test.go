package scheduling

import (
	"context"
	"testing"

	"github.com/guimove/placer/internal/cluster"
	"github.com/guimove/placer/internal/manager/memory"
)

func TestCoordinator_TryAcquireRecordsHold(t *testing.T) {
	mgr := memory.New(cluster.View{"n1": {Total: vecOf(4, 4, nil), Available: vecOf(4, 4, nil)}})
	c := newCoordinator(mgr)
	ctx := context.Background()

	ok, err := c.tryAcquire(ctx, "n1", vecOf(1, 1, nil))
	if err != nil || !ok {
		t.Fatalf("tryAcquire failed: ok=%v err=%v", ok, err)
	}
	if len(c.holds) != 1 {
		t.Fatalf("expected 1 recorded hold, got %d", len(c.holds))
	}
}

func TestCoordinator_ReleaseAllRestoresState(t *testing.T) {
	mgr := memory.New(cluster.View{"n1": {Total: vecOf(4, 4, nil), Available: vecOf(4, 4, nil)}})
	c := newCoordinator(mgr)
	ctx := context.Background()

	c.tryAcquire(ctx, "n1", vecOf(2, 2, nil))
	c.tryAcquire(ctx, "n1", vecOf(1, 1, nil))
	c.releaseAll(ctx)

	if len(c.holds) != 0 {
		t.Fatalf("expected holds cleared, got %d", len(c.holds))
	}

	view, _ := mgr.ClusterResources(ctx)
	if view["n1"].Available.Predefined[0] != vecOf(4, 4, nil).Predefined[0] {
		t.Errorf("expected full capacity restored after releaseAll")
	}
}

func TestCoordinator_FailedAcquireNotRecorded(t *testing.T) {
	mgr := memory.New(cluster.View{"n1": {Total: vecOf(1, 1, nil), Available: vecOf(1, 1, nil)}})
	c := newCoordinator(mgr)
	ctx := context.Background()

	ok, err := c.tryAcquire(ctx, "n1", vecOf(5, 5, nil))
	if err != nil || ok {
		t.Fatalf("expected failed acquire, got ok=%v err=%v", ok, err)
	}
	if len(c.holds) != 0 {
		t.Fatalf("failed acquire must not be recorded, got %d holds", len(c.holds))
	}
}
