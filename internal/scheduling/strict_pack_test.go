package scheduling

import (
	"context"
	"testing"

	"github.com/guimove/placer/internal/cluster"
	"github.com/guimove/placer/internal/placement"
)

func TestStrictPack_FeasibleOnClusterButFilteredOut(t *testing.T) {
	// N1 could take the aggregate by total capacity but is excluded from
	// the filtered candidate set; N2's total can't hold it either. The
	// feasibility gate must still see N1 and declare the request
	// structurally possible, only failing the candidate-restricted pick.
	view := cluster.View{
		"N1": {Total: vecOf(10, 0, nil), Available: vecOf(10, 0, nil)},
		"N2": {Total: vecOf(1, 0, nil), Available: vecOf(1, 0, nil)},
	}
	bundle := placement.Bundle{vecOf(5, 0, nil), vecOf(5, 0, nil)}

	_, status := strictPack(context.Background(), view, []cluster.NodeID{"N2"}, bundle, nil)
	if status != placement.Failed {
		t.Errorf("status = %v, want FAILED (feasible cluster-wide, not among candidates)", status)
	}
}

func TestStrictPack_InfeasibleAcrossEntireCluster(t *testing.T) {
	view := cluster.View{
		"N1": {Total: vecOf(2, 0, nil), Available: vecOf(2, 0, nil)},
		"N2": {Total: vecOf(2, 0, nil), Available: vecOf(2, 0, nil)},
	}
	bundle := placement.Bundle{vecOf(5, 0, nil), vecOf(5, 0, nil)}

	_, status := strictPack(context.Background(), view, []cluster.NodeID{"N1", "N2"}, bundle, nil)
	if status != placement.Infeasible {
		t.Errorf("status = %v, want INFEASIBLE", status)
	}
}
