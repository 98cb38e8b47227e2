package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/guimove/placer/internal/cluster"
	"github.com/guimove/placer/internal/resource"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Dump the current cluster view a manager would hand to Schedule",
	Long: `Connects to the configured manager backend and prints the resulting
cluster.View: every node's total and available resources. Useful for
debugging a manager implementation or for capturing a --backend memory
snapshot file via --output json.`,
	RunE: runInspect,
}

func init() {
	f := inspectCmd.Flags()
	f.String("output", "table", "output format: table, json")
	f.String("sort-by", "name", "sort nodes by: name, cpu, memory")

	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	mgr, err := buildManager(ctx)
	if err != nil {
		return err
	}

	view, err := mgr.ClusterResources(ctx)
	if err != nil {
		return err
	}

	outputFmt, _ := cmd.Flags().GetString("output")
	if outputFmt == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	}

	sortBy, _ := cmd.Flags().GetString("sort-by")
	ids := sortedNodeIDs(view, sortBy)

	fmt.Printf("Backend: %s\n", cfg.Manager.Backend)
	fmt.Printf("Nodes:   %d\n\n", len(view))
	fmt.Printf("%-30s %10s %10s %10s %10s\n", "NODE", "CPU", "AVAIL_CPU", "MEM", "AVAIL_MEM")
	fmt.Println(strings.Repeat("-", 75))
	for _, id := range ids {
		n := view[id]
		fmt.Printf("%-30s %10.1f %10.1f %10.1f %10.1f\n",
			truncate(string(id), 30),
			n.Total.Predefined[resource.CPU].Float64(), n.Available.Predefined[resource.CPU].Float64(),
			n.Total.Predefined[resource.Memory].Float64(), n.Available.Predefined[resource.Memory].Float64(),
		)
	}

	return nil
}

func sortedNodeIDs(view cluster.View, by string) []cluster.NodeID {
	ids := view.Filter(nil)
	switch by {
	case "cpu":
		sort.Slice(ids, func(i, j int) bool {
			return view[ids[i]].Available.Predefined[resource.CPU] > view[ids[j]].Available.Predefined[resource.CPU]
		})
	case "memory":
		sort.Slice(ids, func(i, j int) bool {
			return view[ids[i]].Available.Predefined[resource.Memory] > view[ids[j]].Available.Predefined[resource.Memory]
		})
	default:
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	}
	return ids
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
