// Package config defines placer's top-level configuration: which manager
// backend to schedule against, how to reach it, and how results are
// rendered.
package config

import (
	"fmt"
	"os"
	"time"
)

// Config is the top-level configuration for placer.
type Config struct {
	Manager    ManagerConfig    `yaml:"manager"`
	Kubernetes KubernetesConfig `yaml:"kubernetes"`
	AWS        AWSConfig        `yaml:"aws"`
	Scheduling SchedulingConfig `yaml:"scheduling"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Output     OutputConfig     `yaml:"output"`
}

// ManagerConfig selects the resource manager backend.
type ManagerConfig struct {
	// Backend is one of "memory" or "kube".
	Backend string `yaml:"backend"`
	// SnapshotFile is the JSON cluster.View snapshot loaded by the memory
	// backend. Ignored by kube.
	SnapshotFile string `yaml:"snapshot_file" mapstructure:"snapshot_file"`
}

type KubernetesConfig struct {
	Kubeconfig string `yaml:"kubeconfig"`
	Context    string `yaml:"context"`
	// CustomResources maps a Kubernetes extended resource name (e.g.
	// nvidia.com/gpu) to the custom resource ID the scheduler core uses
	// internally to key resource.Vector.Custom.
	CustomResources map[string]int64 `yaml:"custom_resources" mapstructure:"custom_resources"`
}

type AWSConfig struct {
	Region   string `yaml:"region"`
	CacheDir string `yaml:"cache_dir" mapstructure:"cache_dir"`
}

// SchedulingConfig holds the defaults used when a command doesn't
// explicitly override them.
type SchedulingConfig struct {
	DefaultPolicy string        `yaml:"default_policy" mapstructure:"default_policy"`
	Timeout       time.Duration `yaml:"timeout"`
}

type TelemetryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"`
}

type OutputConfig struct {
	Format string `yaml:"format"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Manager: ManagerConfig{
			Backend: "memory",
		},
		AWS: AWSConfig{
			Region:   detectRegion(),
			CacheDir: defaultCacheDir(),
		},
		Scheduling: SchedulingConfig{
			DefaultPolicy: "PACK",
			Timeout:       30 * time.Second,
		},
		Telemetry: TelemetryConfig{
			Enabled: false,
			Listen:  ":9090",
		},
		Output: OutputConfig{
			Format: "table",
		},
	}
}

// Validate checks the config for consistency.
func (c *Config) Validate() error {
	validBackends := map[string]bool{"memory": true, "kube": true}
	if !validBackends[c.Manager.Backend] {
		return fmt.Errorf("manager backend must be memory or kube, got %q", c.Manager.Backend)
	}
	if c.Manager.Backend == "memory" && c.Manager.SnapshotFile == "" {
		return fmt.Errorf("memory backend requires a snapshot_file")
	}
	validPolicies := map[string]bool{"PACK": true, "STRICT_PACK": true, "SPREAD": true, "STRICT_SPREAD": true}
	if !validPolicies[c.Scheduling.DefaultPolicy] {
		return fmt.Errorf("default_policy must be PACK, STRICT_PACK, SPREAD, or STRICT_SPREAD, got %q", c.Scheduling.DefaultPolicy)
	}
	if c.Scheduling.Timeout <= 0 {
		return fmt.Errorf("scheduling timeout must be positive, got %v", c.Scheduling.Timeout)
	}
	validFormats := map[string]bool{"table": true, "json": true}
	if !validFormats[c.Output.Format] {
		return fmt.Errorf("output format must be table or json, got %q", c.Output.Format)
	}
	return nil
}

// detectRegion checks environment variables for the AWS region.
func detectRegion() string {
	if r := os.Getenv("AWS_REGION"); r != "" {
		return r
	}
	if r := os.Getenv("AWS_DEFAULT_REGION"); r != "" {
		return r
	}
	return "us-east-1"
}

func defaultCacheDir() string {
	if d, err := os.UserCacheDir(); err == nil {
		return d + "/placer"
	}
	return ".placer-cache"
}
