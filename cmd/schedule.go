package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/guimove/placer/internal/fixedpoint"
	placerkube "github.com/guimove/placer/internal/kube"
	"github.com/guimove/placer/internal/manager"
	"github.com/guimove/placer/internal/manager/kube"
	"github.com/guimove/placer/internal/manager/kube/awscapacity"
	"github.com/guimove/placer/internal/manager/memory"
	"github.com/guimove/placer/internal/placement"
	"github.com/guimove/placer/internal/report"
	"github.com/guimove/placer/internal/resource"
	"github.com/guimove/placer/internal/scheduling"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Place a bundle of resource demands against a cluster",
	Long: `Loads a bundle of resource demands from a JSON file and runs one of the
four placement policies (PACK, STRICT_PACK, SPREAD, STRICT_SPREAD) against
either a static snapshot (--backend memory) or a live cluster
(--backend kube).`,
	RunE: runSchedule,
}

// demandSpec is the human-authored, whole-unit JSON shape for one bundle
// entry. CustomIDs and their meaning are defined by kubernetes.custom_resources
// in config, so a demand's custom map keys match those IDs directly.
type demandSpec struct {
	CPU               int64                       `json:"cpu"`
	Memory            int64                       `json:"memory"`
	ObjectStoreMemory int64                       `json:"object_store_memory"`
	GPU               int64                       `json:"gpu"`
	Custom            map[resource.CustomID]int64 `json:"custom"`
}

func (d demandSpec) toVector() resource.Vector {
	v := resource.NewVector()
	v.Predefined[resource.CPU] = fixedpoint.FromInt64(d.CPU)
	v.Predefined[resource.Memory] = fixedpoint.FromInt64(d.Memory)
	v.Predefined[resource.ObjectStoreMemory] = fixedpoint.FromInt64(d.ObjectStoreMemory)
	v.Predefined[resource.GPU] = fixedpoint.FromInt64(d.GPU)
	if len(d.Custom) > 0 {
		v.Custom = make(map[resource.CustomID]fixedpoint.Value, len(d.Custom))
		for id, whole := range d.Custom {
			v.Custom[id] = fixedpoint.FromInt64(whole)
		}
	}
	return v
}

func init() {
	f := scheduleCmd.Flags()
	f.String("bundle", "", "path to a JSON file containing an array of demands (required)")
	f.String("policy", "", "placement policy: PACK, STRICT_PACK, SPREAD, or STRICT_SPREAD")
	f.String("snapshot-file", "", "path to a JSON cluster snapshot (memory backend only)")
	f.String("output", "", "output format: table or json")

	_ = scheduleCmd.MarkFlagRequired("bundle")
	rootCmd.AddCommand(scheduleCmd)
}

func runSchedule(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Scheduling.Timeout)
	defer cancel()

	if snap, _ := cmd.Flags().GetString("snapshot-file"); cmd.Flags().Changed("snapshot-file") {
		cfg.Manager.SnapshotFile = snap
	}
	if p, _ := cmd.Flags().GetString("policy"); cmd.Flags().Changed("policy") {
		cfg.Scheduling.DefaultPolicy = p
	}
	if o, _ := cmd.Flags().GetString("output"); cmd.Flags().Changed("output") {
		cfg.Output.Format = o
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	bundlePath, _ := cmd.Flags().GetString("bundle")
	bundle, err := loadBundle(bundlePath)
	if err != nil {
		return err
	}

	policy, err := scheduling.ParsePolicy(cfg.Scheduling.DefaultPolicy)
	if err != nil {
		return err
	}

	mgr, err := buildManager(ctx)
	if err != nil {
		return err
	}

	sched := scheduling.NewScheduler(mgr)
	result, err := sched.Schedule(ctx, bundle, policy, nil)
	if err != nil {
		return err
	}

	reporter := report.NewReporter(cfg.Output.Format, os.Stdout)
	meta := report.ReportMeta{
		Policy:      policy.String(),
		Backend:     cfg.Manager.Backend,
		ScheduledAt: time.Now(),
		BundleSize:  len(bundle),
	}
	if err := reporter.Report(ctx, result, meta); err != nil {
		return err
	}
	if result.Status != placement.Success {
		return fmt.Errorf("placement did not succeed: %s", result.Status)
	}
	return nil
}

func loadBundle(path string) (placement.Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading bundle file: %w", err)
	}

	var specs []demandSpec
	if err := json.Unmarshal(data, &specs); err != nil {
		return nil, fmt.Errorf("parsing bundle file: %w", err)
	}

	bundle := make(placement.Bundle, len(specs))
	for i, s := range specs {
		bundle[i] = s.toVector()
	}
	return bundle, nil
}

func buildManager(ctx context.Context) (manager.ResourceManager, error) {
	switch cfg.Manager.Backend {
	case "kube":
		client, err := placerkube.NewClient(cfg.Kubernetes)
		if err != nil {
			return nil, fmt.Errorf("connecting to kubernetes: %w", err)
		}

		var resolver *awscapacity.Resolver
		if cfg.AWS.Region != "" {
			resolver, err = awscapacity.New(ctx, cfg.AWS.Region, cfg.AWS.CacheDir)
			if err != nil {
				if verbose {
					fmt.Fprintf(os.Stderr, "warning: AWS capacity resolver disabled: %v\n", err)
				}
				resolver = nil
			}
		}

		customIDs := make(map[kube.CustomResourceName]resource.CustomID, len(cfg.Kubernetes.CustomResources))
		for name, id := range cfg.Kubernetes.CustomResources {
			customIDs[name] = resource.CustomID(id)
		}

		return kube.New(client, resolver, customIDs), nil
	default:
		return memory.NewFromFile(cfg.Manager.SnapshotFile)
	}
}
