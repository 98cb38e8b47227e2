// Package placement defines the bundle (ordered list of demands) and the
// tagged result the scheduler core produces for it.
package placement

import (
	"encoding/json"
	"fmt"

	"github.com/guimove/placer/internal/cluster"
	"github.com/guimove/placer/internal/resource"
)

// Bundle is an ordered sequence of resource demands to place atomically.
// Ordering is caller-significant: the scheduler's output is aligned
// positionally with this input order regardless of internal traversal
// reordering.
type Bundle []resource.Vector

// Aggregate returns the component-wise sum of every demand in the bundle.
func (b Bundle) Aggregate() resource.Vector {
	agg := resource.NewVector()
	for _, demand := range b {
		agg = agg.Add(demand)
	}
	return agg
}

// Status is the terminal outcome of a Schedule call.
type Status int

const (
	// Failed indicates feasibility was plausible but current availability
	// did not permit placement; the caller may retry.
	Failed Status = iota
	// Infeasible indicates the request is structurally impossible
	// regardless of current load.
	Infeasible
	// Success indicates a full assignment was produced.
	Success
)

func (s Status) String() string {
	switch s {
	case Success:
		return "SUCCESS"
	case Infeasible:
		return "INFEASIBLE"
	default:
		return "FAILED"
	}
}

// MarshalJSON renders the status by name rather than its ordinal.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON parses a status from the name MarshalJSON renders.
func (s *Status) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for _, st := range []Status{Failed, Infeasible, Success} {
		if st.String() == name {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("placement: unknown status %q", name)
}

// Result is the tagged outcome of a Schedule call. Assignments has length
// equal to the bundle on Success and is empty otherwise; on Success,
// Assignments[i] is the node assigned to the i-th input demand.
type Result struct {
	Status      Status
	Assignments []cluster.NodeID
}
