// Package resource implements the predefined+custom resource vector that
// the scheduler core uses for both demands and node capacity: a
// fixed-length predefined sequence (CPU, memory, object store memory, GPU)
// plus an open-ended map of custom resource dimensions.
package resource

import (
	"fmt"
	"sort"

	"github.com/guimove/placer/internal/fixedpoint"
)

// PredefinedIndex names a slot in the canonical predefined-resource order.
type PredefinedIndex int

const (
	CPU PredefinedIndex = iota
	Memory
	ObjectStoreMemory
	GPU

	// PredefinedMax is the compile-time length of the predefined sequence.
	PredefinedMax
)

func (i PredefinedIndex) String() string {
	switch i {
	case CPU:
		return "CPU"
	case Memory:
		return "MEM"
	case ObjectStoreMemory:
		return "OBJECT_STORE_MEM"
	case GPU:
		return "GPU"
	default:
		return fmt.Sprintf("PREDEFINED_%d", int(i))
	}
}

// CustomID is an opaque identifier for a custom (non-predefined) resource.
type CustomID int64

// Vector is a resource demand or capacity: a fixed-length predefined
// sequence plus a sparse custom map. A missing custom key is equivalent
// to zero.
type Vector struct {
	Predefined [PredefinedMax]fixedpoint.Value
	Custom     map[CustomID]fixedpoint.Value
}

// NewVector creates an empty (all-zero) vector.
func NewVector() Vector {
	return Vector{}
}

// CustomValue returns the value for id, or zero if absent.
func (v Vector) CustomValue(id CustomID) fixedpoint.Value {
	if v.Custom == nil {
		return 0
	}
	return v.Custom[id]
}

// SortedCustomKeys returns the custom resource keys in deterministic
// ascending numeric order. Iterating a Go map directly is non-deterministic
// and must never drive a comparator or a scoring sum.
func (v Vector) SortedCustomKeys() []CustomID {
	keys := make([]CustomID, 0, len(v.Custom))
	for k := range v.Custom {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Add returns the component-wise sum of v and other: predefined slots add
// positionally, custom keys add as a union.
func (v Vector) Add(other Vector) Vector {
	out := Vector{Custom: make(map[CustomID]fixedpoint.Value, len(v.Custom)+len(other.Custom))}
	for i := 0; i < int(PredefinedMax); i++ {
		out.Predefined[i] = v.Predefined[i].Add(other.Predefined[i])
	}
	for k, val := range v.Custom {
		out.Custom[k] = out.Custom[k].Add(val)
	}
	for k, val := range other.Custom {
		out.Custom[k] = out.Custom[k].Add(val)
	}
	return out
}

// Sub returns v minus other component-wise. It aborts the process (via
// fixedpoint's own underflow guard, klog.Fatalf) if any dimension of other
// exceeds v; callers must only subtract a demand already known to fit.
func (v Vector) Sub(other Vector) Vector {
	out := Vector{Custom: make(map[CustomID]fixedpoint.Value, len(v.Custom))}
	for i := 0; i < int(PredefinedMax); i++ {
		out.Predefined[i] = v.Predefined[i].Sub(other.Predefined[i])
	}
	for k, val := range v.Custom {
		out.Custom[k] = val
	}
	for k, val := range other.Custom {
		out.Custom[k] = out.Custom[k].Sub(val)
	}
	return out
}

// LessOrEqual reports whether v <= other component-wise across every
// predefined slot and every custom key present in v. A custom key absent
// from other is treated as zero available capacity.
func (v Vector) LessOrEqual(other Vector) bool {
	for i := 0; i < int(PredefinedMax); i++ {
		if !v.Predefined[i].LessOrEqual(other.Predefined[i]) {
			return false
		}
	}
	for k, need := range v.Custom {
		if !need.LessOrEqual(other.CustomValue(k)) {
			return false
		}
	}
	return true
}
