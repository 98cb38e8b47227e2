package scheduling

import (
	"context"
	"testing"

	"github.com/guimove/placer/internal/cluster"
	"github.com/guimove/placer/internal/placement"
)

func TestStrictSpread_MoreDemandsThanCandidates(t *testing.T) {
	view := cluster.View{"N1": {Total: vecOf(4, 0, nil), Available: vecOf(4, 0, nil)}}
	bundle := placement.Bundle{vecOf(1, 0, nil), vecOf(1, 0, nil)}

	_, status := strictSpread(context.Background(), view, []cluster.NodeID{"N1"}, bundle, nil)
	if status != placement.Infeasible {
		t.Errorf("status = %v, want INFEASIBLE", status)
	}
}

func TestStrictSpread_FailsWhenNoCandidateFits(t *testing.T) {
	view := cluster.View{
		"N1": {Total: vecOf(1, 0, nil), Available: vecOf(1, 0, nil)},
		"N2": {Total: vecOf(1, 0, nil), Available: vecOf(1, 0, nil)},
	}
	bundle := placement.Bundle{vecOf(1, 0, nil), vecOf(5, 0, nil)}

	_, status := strictSpread(context.Background(), view, []cluster.NodeID{"N1", "N2"}, bundle, nil)
	if status != placement.Failed {
		t.Errorf("status = %v, want FAILED", status)
	}
}
