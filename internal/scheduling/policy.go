package scheduling

import (
	"fmt"

	"github.com/guimove/placer/internal/cluster"
)

// Policy selects which placement algorithm Schedule runs.
type Policy int

const (
	// Pack places demands onto as few nodes as possible, greedily filling
	// each chosen node with every other demand that still fits it.
	Pack Policy = iota
	// StrictPack places the entire bundle's aggregate demand onto a
	// single node, or fails.
	StrictPack
	// Spread places demands across distinct nodes when possible, reusing
	// a previously chosen node only once every unused candidate has been
	// tried.
	Spread
	// StrictSpread requires every demand to land on a distinct node.
	StrictSpread
)

func (p Policy) String() string {
	switch p {
	case Pack:
		return "PACK"
	case StrictPack:
		return "STRICT_PACK"
	case Spread:
		return "SPREAD"
	case StrictSpread:
		return "STRICT_SPREAD"
	default:
		return "UNKNOWN"
	}
}

// ParsePolicy maps a policy's string name (as used in config and CLI flags)
// to its Policy value.
func ParsePolicy(name string) (Policy, error) {
	switch name {
	case "PACK":
		return Pack, nil
	case "STRICT_PACK":
		return StrictPack, nil
	case "SPREAD":
		return Spread, nil
	case "STRICT_SPREAD":
		return StrictSpread, nil
	default:
		return 0, fmt.Errorf("unknown policy %q", name)
	}
}

// removeNode returns ids with target removed (first occurrence only).
func removeNode(ids []cluster.NodeID, target cluster.NodeID) []cluster.NodeID {
	out := make([]cluster.NodeID, 0, len(ids))
	removed := false
	for _, id := range ids {
		if !removed && id == target {
			removed = true
			continue
		}
		out = append(out, id)
	}
	return out
}

func identityPerm(n int) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	return perm
}
