package resource

// Node is a node's {total, available} resource pair. Invariant: Available
// must be <= Total component-wise; the scheduler core never checks this
// itself (it trusts the manager snapshot). The kube manager clamps pod usage
// to Total when building its view; the memory manager takes the view it is
// given as-is and does not check it.
type Node struct {
	Total     Vector
	Available Vector
}

// Covers reports whether the node's available capacity satisfies demand:
// for every predefined index and every custom key present in demand, the
// available value must be >= the demanded value.
func (n Node) Covers(demand Vector) bool {
	return demand.LessOrEqual(n.Available)
}
