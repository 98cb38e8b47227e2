package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	placerkube "github.com/guimove/placer/internal/kube"
	"github.com/guimove/placer/internal/manager/kube"
	"github.com/guimove/placer/internal/manager/kube/awscapacity"
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "List Kubernetes nodes and how each resolves custom resource capacity",
	Long: `Connects to a live cluster and, for every node and every configured
custom resource (kubernetes.custom_resources in config), reports whether
capacity came from status.allocatable directly or had to fall back to the
EC2 capacity resolver — or was not found at all.`,
	RunE: runDiscover,
}

func init() {
	rootCmd.AddCommand(discoverCmd)
}

func runDiscover(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	client, err := placerkube.NewClient(cfg.Kubernetes)
	if err != nil {
		return fmt.Errorf("connecting to kubernetes: %w", err)
	}

	var resolver *awscapacity.Resolver
	if cfg.AWS.Region != "" {
		resolver, err = awscapacity.New(ctx, cfg.AWS.Region, cfg.AWS.CacheDir)
		if err != nil && verbose {
			fmt.Printf("warning: AWS capacity resolver disabled: %v\n", err)
		}
	}

	nodeList, err := client.CoreV1().Nodes().List(ctx, metav1.ListOptions{})
	if err != nil {
		return fmt.Errorf("listing nodes: %w", err)
	}

	fmt.Printf("Nodes: %d\n\n", len(nodeList.Items))
	for _, n := range nodeList.Items {
		fmt.Printf("%s (instance-type=%s)\n", n.Name, n.Labels[kube.InstanceTypeLabel])
		for name := range cfg.Kubernetes.CustomResources {
			fmt.Printf("  %-25s %s\n", name, resourceSource(n, name, resolver))
		}
	}

	return nil
}

func resourceSource(n corev1.Node, name string, resolver *awscapacity.Resolver) string {
	if _, ok := n.Status.Allocatable[corev1.ResourceName(name)]; ok {
		return "allocatable"
	}
	if resolver != nil {
		if _, ok := resolver.CustomCapacity(context.Background(), n.Labels[kube.InstanceTypeLabel], name); ok {
			return "ec2-resolver"
		}
	}
	return "unresolved"
}
