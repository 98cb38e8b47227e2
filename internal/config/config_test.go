package config

import (
	"testing"
)

func TestDefault_RequiresSnapshotFile(t *testing.T) {
	cfg := Default()
	// memory is the default backend but has no snapshot_file until the
	// caller sets one (typically via flag), so the bare default is invalid.
	if err := cfg.Validate(); err == nil {
		t.Error("expected error: memory backend default has no snapshot_file")
	}
	cfg.Manager.SnapshotFile = "nodes.json"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("config should be valid once snapshot_file is set: %v", err)
	}
}

func TestValidate_InvalidBackend(t *testing.T) {
	cfg := Default()
	cfg.Manager.Backend = "docker"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for invalid backend")
	}
}

func TestValidate_KubeBackendNeedsNoSnapshot(t *testing.T) {
	cfg := Default()
	cfg.Manager.Backend = "kube"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("kube backend should not require snapshot_file: %v", err)
	}
}

func TestValidate_InvalidPolicy(t *testing.T) {
	cfg := Default()
	cfg.Manager.SnapshotFile = "nodes.json"
	cfg.Scheduling.DefaultPolicy = "RANDOM"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for invalid default_policy")
	}
}

func TestValidate_InvalidTimeout(t *testing.T) {
	cfg := Default()
	cfg.Manager.SnapshotFile = "nodes.json"
	cfg.Scheduling.Timeout = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero timeout")
	}
}

func TestValidate_InvalidOutputFormat(t *testing.T) {
	cfg := Default()
	cfg.Manager.SnapshotFile = "nodes.json"
	cfg.Output.Format = "xml"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for invalid output format")
	}
}
