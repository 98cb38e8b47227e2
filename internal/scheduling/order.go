package scheduling

import (
	"sort"

	"github.com/guimove/placer/internal/fixedpoint"
	"github.com/guimove/placer/internal/placement"
	"github.com/guimove/placer/internal/resource"
)

// orderDemands returns a permutation of bundle indices, most scarcity-
// sensitive first: GPU demand breaks ties before any custom resource, then
// custom resources in ascending numeric key order, then OBJECT_STORE_MEM,
// then MEM, then CPU. At each level the operand demanding more of that
// resource sorts first; ties fall through to the next level, and indices
// tie-broken identically at every level keep their relative input order
// (sort.SliceStable).
//
// Each operand's own demand is looked up for every level — comparing i's
// own GPU against j's own GPU, never reading one operand's value for both
// sides — since reading a single operand twice would make every level
// compare equal and silently fall through to the next one.
func orderDemands(bundle placement.Bundle) []int {
	perm := make([]int, len(bundle))
	for i := range perm {
		perm[i] = i
	}

	customKeys := allCustomKeys(bundle)

	sort.SliceStable(perm, func(a, b int) bool {
		i, j := perm[a], perm[b]
		return less(bundle[i], bundle[j], customKeys)
	})

	return perm
}

// invertPermutation returns inv such that inv[perm[i]] == i: applying inv
// to a slice ordered by perm restores the original ordering.
func invertPermutation(perm []int) []int {
	inv := make([]int, len(perm))
	for i, p := range perm {
		inv[p] = i
	}
	return inv
}

// allCustomKeys collects every custom resource key demanded anywhere in the
// bundle, in ascending order, so every demand is compared against the same
// priority ladder regardless of which keys it individually uses.
func allCustomKeys(bundle placement.Bundle) []resource.CustomID {
	seen := map[resource.CustomID]struct{}{}
	for _, demand := range bundle {
		for k := range demand.Custom {
			seen[k] = struct{}{}
		}
	}
	keys := make([]resource.CustomID, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// less reports whether a should be ordered before b: a is "more demanding"
// than b at the highest-priority level where they differ.
func less(a, b resource.Vector, customKeys []resource.CustomID) bool {
	if c := compareValue(a.Predefined[resource.GPU], b.Predefined[resource.GPU]); c != 0 {
		return c > 0
	}
	for _, key := range customKeys {
		if c := compareValue(a.CustomValue(key), b.CustomValue(key)); c != 0 {
			return c > 0
		}
	}
	if c := compareValue(a.Predefined[resource.ObjectStoreMemory], b.Predefined[resource.ObjectStoreMemory]); c != 0 {
		return c > 0
	}
	if c := compareValue(a.Predefined[resource.Memory], b.Predefined[resource.Memory]); c != 0 {
		return c > 0
	}
	if c := compareValue(a.Predefined[resource.CPU], b.Predefined[resource.CPU]); c != 0 {
		return c > 0
	}
	return false
}

func compareValue(a, b fixedpoint.Value) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
