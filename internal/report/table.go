package report

import (
	"context"
	"io"
	"strings"

	"github.com/guimove/placer/internal/cluster"
	"github.com/guimove/placer/internal/placement"
)

// TableReporter outputs a scheduling result as a formatted terminal table.
type TableReporter struct {
	w io.Writer
}

func (r *TableReporter) Report(_ context.Context, result placement.Result, meta ReportMeta) error {
	ew := &errWriter{w: r.w}

	ew.printf("\n")
	ew.printf("Placement Result\n")
	ew.printf("%s\n", strings.Repeat("=", 60))
	ew.printf("Policy:      %s\n", meta.Policy)
	ew.printf("Backend:     %s\n", meta.Backend)
	ew.printf("Scheduled:   %s\n", meta.ScheduledAt.Format("2006-01-02T15:04:05Z07:00"))
	ew.printf("Bundle size: %d\n", meta.BundleSize)
	ew.printf("Status:      %s\n", result.Status)
	ew.printf("%s\n\n", strings.Repeat("=", 60))

	if result.Status != placement.Success {
		ew.printf("No assignments: bundle could not be placed.\n")
		return ew.err
	}

	ew.printf("%-4s %-40s\n", "Idx", "Node")
	ew.printf("%s\n", strings.Repeat("-", 50))
	for i, id := range result.Assignments {
		ew.printf("#%-3d %-40s\n", i, nodeLabel(id))
	}
	ew.printf("%s\n\n", strings.Repeat("-", 50))

	counts := make(map[cluster.NodeID]int, len(result.Assignments))
	for _, id := range result.Assignments {
		counts[id]++
	}
	ew.printf("Nodes used: %d\n", len(counts))
	ew.printf("\n")
	return ew.err
}

func nodeLabel(id cluster.NodeID) string {
	if id == cluster.NilNodeID {
		return "<none>"
	}
	return string(id)
}
