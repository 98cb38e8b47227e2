// Package cluster defines the node identity and the cluster-wide resource
// snapshot the scheduler core consumes. Ownership of the authoritative
// view belongs to the external resource manager (internal/manager); this
// package only defines the shape the core reads.
package cluster

import "github.com/guimove/placer/internal/resource"

// NodeID identifies a node. The zero value is the distinguished nil ID.
type NodeID string

// NilNodeID is the distinguished nil NodeID value.
const NilNodeID NodeID = ""

// View is a snapshot of NodeID -> resource.Node, stable for the duration
// of a single Schedule call.
type View map[NodeID]resource.Node

// Filter returns the subset of node IDs in v for which pred is true (or
// every node ID if pred is nil).
func (v View) Filter(pred func(NodeID) bool) []NodeID {
	ids := make([]NodeID, 0, len(v))
	for id := range v {
		if pred == nil || pred(id) {
			ids = append(ids, id)
		}
	}
	return ids
}
