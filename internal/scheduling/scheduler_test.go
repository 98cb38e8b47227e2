package scheduling

import (
	"context"
	"testing"

	"github.com/guimove/placer/internal/cluster"
	"github.com/guimove/placer/internal/fixedpoint"
	"github.com/guimove/placer/internal/manager/memory"
	"github.com/guimove/placer/internal/placement"
	"github.com/guimove/placer/internal/resource"
)

func cpuGpuVec(cpu, gpu int64) resource.Vector {
	v := resource.NewVector()
	v.Predefined[resource.CPU] = fixedpoint.FromInt64(cpu)
	v.Predefined[resource.GPU] = fixedpoint.FromInt64(gpu)
	return v
}

func cpuOnlyNode(cpu int64) resource.Node {
	v := resource.NewVector()
	v.Predefined[resource.CPU] = fixedpoint.FromInt64(cpu)
	return resource.Node{Total: v, Available: v}
}

func cpuGpuNode(cpu, gpu int64) resource.Node {
	v := cpuGpuVec(cpu, gpu)
	return resource.Node{Total: v, Available: v}
}

func TestStrictSpread_TwoDistinctNodesForTwoDemands(t *testing.T) {
	mgr := memory.New(cluster.View{
		"N1": cpuGpuNode(4, 1),
		"N2": cpuGpuNode(4, 1),
	})
	sched := NewScheduler(mgr)
	bundle := placement.Bundle{cpuGpuVec(1, 1), cpuGpuVec(1, 1)}

	result, err := sched.Schedule(context.Background(), bundle, StrictSpread, nil)
	if err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}
	if result.Status != placement.Success {
		t.Fatalf("status = %v, want SUCCESS", result.Status)
	}
	if len(result.Assignments) != 2 || result.Assignments[0] == result.Assignments[1] {
		t.Errorf("expected a permutation of distinct nodes, got %v", result.Assignments)
	}
}

func TestStrictSpread_FewerNodesThanDemandsIsInfeasible(t *testing.T) {
	mgr := memory.New(cluster.View{"N1": cpuOnlyNode(4)})
	sched := NewScheduler(mgr)
	bundle := placement.Bundle{vecOf(1, 0, nil), vecOf(1, 0, nil)}

	result, err := sched.Schedule(context.Background(), bundle, StrictSpread, nil)
	if err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}
	if result.Status != placement.Infeasible {
		t.Fatalf("status = %v, want INFEASIBLE", result.Status)
	}
	if len(result.Assignments) != 0 {
		t.Errorf("expected empty assignments, got %v", result.Assignments)
	}
}

func TestStrictPack_AggregateFitsOnlyOneCandidate(t *testing.T) {
	mgr := memory.New(cluster.View{
		"N1": cpuOnlyNode(8),
		"N2": cpuOnlyNode(2),
	})
	sched := NewScheduler(mgr)
	bundle := placement.Bundle{vecOf(3, 0, nil), vecOf(3, 0, nil)}

	result, err := sched.Schedule(context.Background(), bundle, StrictPack, nil)
	if err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}
	if result.Status != placement.Success {
		t.Fatalf("status = %v, want SUCCESS", result.Status)
	}
	want := []cluster.NodeID{"N1", "N1"}
	if result.Assignments[0] != want[0] || result.Assignments[1] != want[1] {
		t.Errorf("assignments = %v, want %v", result.Assignments, want)
	}
}

func TestStrictPack_AggregateExceedsEveryNode(t *testing.T) {
	mgr := memory.New(cluster.View{
		"N1": cpuOnlyNode(4),
		"N2": cpuOnlyNode(4),
	})
	sched := NewScheduler(mgr)
	bundle := placement.Bundle{vecOf(3, 0, nil), vecOf(3, 0, nil)}

	result, err := sched.Schedule(context.Background(), bundle, StrictPack, nil)
	if err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}
	if result.Status != placement.Infeasible {
		t.Fatalf("status = %v, want INFEASIBLE", result.Status)
	}
}

func TestPack_FillsOneNodeThenAnother(t *testing.T) {
	mgr := memory.New(cluster.View{
		"N1": cpuOnlyNode(4),
		"N2": cpuOnlyNode(4),
	})
	sched := NewScheduler(mgr)
	bundle := placement.Bundle{vecOf(3, 0, nil), vecOf(3, 0, nil), vecOf(1, 0, nil)}

	result, err := sched.Schedule(context.Background(), bundle, Pack, nil)
	if err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}
	if result.Status != placement.Success {
		t.Fatalf("status = %v, want SUCCESS", result.Status)
	}
	if len(result.Assignments) != 3 {
		t.Fatalf("expected 3 assignments, got %d", len(result.Assignments))
	}
	counts := map[cluster.NodeID]int{}
	for _, id := range result.Assignments {
		counts[id]++
	}
	sharedFound := false
	for _, c := range counts {
		if c == 2 {
			sharedFound = true
		}
	}
	if !sharedFound || len(counts) != 2 {
		t.Errorf("expected two demands sharing a node and one elsewhere, got %v", result.Assignments)
	}
}

func TestSpread_ThirdDemandReusesAnEarlierNode(t *testing.T) {
	mgr := memory.New(cluster.View{
		"N1": cpuOnlyNode(4),
		"N2": cpuOnlyNode(4),
	})
	sched := NewScheduler(mgr)
	bundle := placement.Bundle{vecOf(1, 0, nil), vecOf(1, 0, nil), vecOf(1, 0, nil)}

	result, err := sched.Schedule(context.Background(), bundle, Spread, nil)
	if err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}
	if result.Status != placement.Success {
		t.Fatalf("status = %v, want SUCCESS", result.Status)
	}
	if result.Assignments[0] == result.Assignments[1] {
		t.Errorf("expected first two assignments on distinct nodes, got %v", result.Assignments)
	}
	if result.Assignments[2] != result.Assignments[0] && result.Assignments[2] != result.Assignments[1] {
		t.Errorf("expected third assignment to reuse one of the first two nodes, got %v", result.Assignments)
	}
}

func TestSchedule_ResultAlignsWithOriginalBundleOrder(t *testing.T) {
	mgr := memory.New(cluster.View{"N": cpuGpuNode(4, 1)})
	sched := NewScheduler(mgr)
	bundle := placement.Bundle{vecOf(1, 0, nil), cpuGpuVec(1, 1)}

	result, err := sched.Schedule(context.Background(), bundle, StrictPack, nil)
	if err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}
	if result.Status != placement.Success {
		t.Fatalf("status = %v, want SUCCESS", result.Status)
	}
	want := []cluster.NodeID{"N", "N"}
	if result.Assignments[0] != want[0] || result.Assignments[1] != want[1] {
		t.Errorf("assignments = %v, want %v", result.Assignments, want)
	}
}

func TestInvariant_LengthOnFailureIsZero(t *testing.T) {
	mgr := memory.New(cluster.View{"N1": cpuOnlyNode(1)})
	sched := NewScheduler(mgr)
	bundle := placement.Bundle{vecOf(5, 0, nil)}

	result, _ := sched.Schedule(context.Background(), bundle, Pack, nil)
	if result.Status == placement.Success {
		t.Fatalf("expected non-success for an impossible demand")
	}
	if len(result.Assignments) != 0 {
		t.Errorf("expected empty assignments on non-success, got %v", result.Assignments)
	}
}

func TestInvariant_ManagerNeutralityOnFailure(t *testing.T) {
	mgr := memory.New(cluster.View{
		"N1": cpuOnlyNode(4),
		"N2": cpuOnlyNode(4),
	})
	ctx := context.Background()
	before, _ := mgr.ClusterResources(ctx)

	sched := NewScheduler(mgr)
	bundle := placement.Bundle{vecOf(3, 0, nil), vecOf(3, 0, nil), vecOf(3, 0, nil)}
	result, _ := sched.Schedule(ctx, bundle, Pack, nil)
	if result.Status == placement.Success {
		t.Fatalf("expected this bundle to fail given capacity")
	}

	after, _ := mgr.ClusterResources(ctx)
	for id, n := range before {
		if after[id].Available.Predefined[resource.CPU] != n.Available.Predefined[resource.CPU] {
			t.Errorf("node %s availability changed after a non-success Schedule call", id)
		}
	}
}

func TestInvariant_ManagerNeutralityOnSuccess(t *testing.T) {
	mgr := memory.New(cluster.View{
		"N1": cpuOnlyNode(4),
		"N2": cpuOnlyNode(4),
	})
	ctx := context.Background()
	before, _ := mgr.ClusterResources(ctx)

	sched := NewScheduler(mgr)
	bundle := placement.Bundle{vecOf(1, 0, nil)}
	result, _ := sched.Schedule(ctx, bundle, Pack, nil)
	if result.Status != placement.Success {
		t.Fatalf("expected success, got %v", result.Status)
	}

	after, _ := mgr.ClusterResources(ctx)
	for id, n := range before {
		if after[id].Available.Predefined[resource.CPU] != n.Available.Predefined[resource.CPU] {
			t.Errorf("node %s availability changed after Schedule returned despite SUCCESS not mutating the manager", id)
		}
	}
}

func TestInvariant_EmptyCandidatesIsInfeasible(t *testing.T) {
	mgr := memory.New(cluster.View{"N1": cpuOnlyNode(4)})
	sched := NewScheduler(mgr)
	bundle := placement.Bundle{vecOf(1, 0, nil)}

	result, err := sched.Schedule(context.Background(), bundle, Pack, func(cluster.NodeID) bool { return false })
	if err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}
	if result.Status != placement.Infeasible {
		t.Errorf("status = %v, want INFEASIBLE when no candidate passes the filter", result.Status)
	}
}

func TestInvariant_FilterHonored(t *testing.T) {
	mgr := memory.New(cluster.View{
		"N1": cpuOnlyNode(4),
		"N2": cpuOnlyNode(4),
	})
	sched := NewScheduler(mgr)
	bundle := placement.Bundle{vecOf(1, 0, nil)}

	result, err := sched.Schedule(context.Background(), bundle, Pack, func(id cluster.NodeID) bool { return id == "N2" })
	if err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}
	if result.Status != placement.Success || result.Assignments[0] != "N2" {
		t.Errorf("expected filtered result pinned to N2, got status=%v assignments=%v", result.Status, result.Assignments)
	}
}

func TestInvariant_IdempotentOrdering(t *testing.T) {
	bundle := placement.Bundle{vecOf(1, 0, nil), cpuGpuVec(1, 1), vecOf(0, 5, nil)}

	first := orderDemands(bundle)
	second := orderDemands(bundle)

	if !equalInts(first, second) {
		t.Errorf("orderDemands is not idempotent: %v != %v", first, second)
	}
}
