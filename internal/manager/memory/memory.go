// Package memory implements a ResourceManager backed by an in-process
// snapshot, either supplied directly or loaded from a JSON file. It is the
// manager used by the scheduling core's tests and by the CLI's
// "--backend memory" mode for offline/static cluster views.
package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/guimove/placer/internal/cluster"
	"github.com/guimove/placer/internal/manager"
	"github.com/guimove/placer/internal/resource"
)

// ErrNoNodes is returned when a snapshot file describes an empty cluster.
var ErrNoNodes = errors.New("memory: snapshot contains no nodes")

// Manager is an in-memory ResourceManager. All methods are safe for
// concurrent use; a single mutex serializes access, giving this manager
// its own locking discipline so concurrent Schedule calls against it
// stay consistent.
type Manager struct {
	mu    sync.Mutex
	nodes cluster.View
}

// New creates a Manager from a pre-built cluster view. The view is copied
// so the caller's map can be freely mutated afterward.
func New(view cluster.View) *Manager {
	nodes := make(cluster.View, len(view))
	for id, n := range view {
		nodes[id] = n
	}
	return &Manager{nodes: nodes}
}

// NewFromFile loads a cluster view from a JSON file shaped as
// {"nodeID": {"total": {...}, "available": {...}}, ...}.
func NewFromFile(path string) (*Manager, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot file: %w", err)
	}

	var view cluster.View
	if err := json.Unmarshal(data, &view); err != nil {
		return nil, fmt.Errorf("parsing snapshot file: %w", err)
	}
	if len(view) == 0 {
		return nil, ErrNoNodes
	}

	return New(view), nil
}

// ClusterResources returns a copy of the current view.
func (m *Manager) ClusterResources(ctx context.Context) (cluster.View, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(cluster.View, len(m.nodes))
	for id, n := range m.nodes {
		out[id] = n
	}
	return out, nil
}

// TryAcquire decrements node's available resources by demand. It returns
// false with manager.ErrUnknownNode if the node is unknown, and (false, nil)
// if demand exceeds what is currently available; it never partially applies
// a failed acquisition.
func (m *Manager) TryAcquire(ctx context.Context, node cluster.NodeID, demand resource.Vector) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, ok := m.nodes[node]
	if !ok {
		return false, fmt.Errorf("%w: %s", manager.ErrUnknownNode, node)
	}
	if !n.Covers(demand) {
		return false, nil
	}

	n.Available = n.Available.Sub(demand)
	m.nodes[node] = n
	return true, nil
}

// Release increments node's available resources by demand. It reports
// false only if the node is unknown; releasing is otherwise unconditional.
func (m *Manager) Release(ctx context.Context, node cluster.NodeID, demand resource.Vector) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, ok := m.nodes[node]
	if !ok {
		return false, fmt.Errorf("%w: %s", manager.ErrUnknownNode, node)
	}

	n.Available = n.Available.Add(demand)
	m.nodes[node] = n
	return true, nil
}
