// Package manager defines the external resource manager contract the
// scheduler core consumes. The core never mutates cluster state directly;
// it always goes through a ResourceManager so the authoritative view
// stays owned by whatever backs it — an in-memory snapshot for tests, or
// a live Kubernetes cluster.
package manager

import (
	"context"
	"errors"

	"github.com/guimove/placer/internal/cluster"
	"github.com/guimove/placer/internal/resource"
)

// ErrUnknownNode is returned by TryAcquire/Release when the given node ID
// is not present in the manager's authoritative view.
var ErrUnknownNode = errors.New("manager: unknown node id")

// ResourceManager is the external collaborator the scheduler core
// consumes: it holds the authoritative per-node resource view and
// provides acquire/release operations for tentative allocation.
type ResourceManager interface {
	// ClusterResources returns a snapshot of NodeID -> resource.Node that
	// must stay internally consistent for the duration of one Schedule
	// call — either because the manager guarantees read stability or
	// because the scheduler holds the manager's lock.
	ClusterResources(ctx context.Context) (cluster.View, error)

	// TryAcquire decrements the node's available resources by demand and
	// reports whether the decrement succeeded.
	TryAcquire(ctx context.Context, node cluster.NodeID, demand resource.Vector) (bool, error)

	// Release increments the node's available resources by demand and
	// reports whether the increment was valid (true in normal operation).
	Release(ctx context.Context, node cluster.NodeID, demand resource.Vector) (bool, error)
}
