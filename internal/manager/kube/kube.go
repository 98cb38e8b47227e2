// Package kube implements a manager.ResourceManager backed by a live
// Kubernetes cluster: node capacity comes from each Node's
// status.allocatable, and availability is allocatable minus the sum of
// every non-terminal pod's container requests scheduled onto that node.
// TryAcquire/Release mutate an in-memory cache optimistically; they do not
// create or delete Kubernetes objects, since the core only needs a
// consistent ledger for the duration of one Schedule call.
package kube

import (
	"context"
	"fmt"
	"sync"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/klog/v2"

	"github.com/guimove/placer/internal/cluster"
	"github.com/guimove/placer/internal/fixedpoint"
	"github.com/guimove/placer/internal/manager"
	"github.com/guimove/placer/internal/manager/kube/awscapacity"
	"github.com/guimove/placer/internal/resource"
)

// InstanceTypeLabel is the well-known node label client-go's scheduler
// ecosystem uses to record cloud instance shape; it is the join key between
// a Node object and the EC2 capacity resolver's fallback lookup.
const InstanceTypeLabel = "node.kubernetes.io/instance-type"

// CustomResourceName maps a Kubernetes extended resource name (e.g.
// "nvidia.com/gpu") to the scheduler core's integer CustomID space.
type CustomResourceName = string

// Manager is a manager.ResourceManager backed by the Kubernetes API.
type Manager struct {
	client    kubernetes.Interface
	resolver  *awscapacity.Resolver // optional fallback, may be nil
	customIDs map[CustomResourceName]resource.CustomID

	mu    sync.Mutex
	nodes cluster.View
	ready bool
}

// New creates a Manager. resolver may be nil to disable the EC2 capacity
// fallback. customIDs maps Kubernetes extended resource names the caller
// cares about onto the stable CustomID values used by bundle demands.
func New(client kubernetes.Interface, resolver *awscapacity.Resolver, customIDs map[CustomResourceName]resource.CustomID) *Manager {
	return &Manager{
		client:    client,
		resolver:  resolver,
		customIDs: customIDs,
	}
}

// ClusterResources rebuilds the view from a fresh Node+Pod listing every
// call: the core treats whatever it gets back as the authoritative
// snapshot for the call, so staleness is bounded by how often Schedule is
// invoked, not by anything this manager caches across calls.
func (m *Manager) ClusterResources(ctx context.Context) (cluster.View, error) {
	nodeList, err := m.client.CoreV1().Nodes().List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("listing nodes: %w", err)
	}
	podList, err := m.client.CoreV1().Pods("").List(ctx, metav1.ListOptions{
		FieldSelector: "status.phase!=Succeeded,status.phase!=Failed",
	})
	if err != nil {
		return nil, fmt.Errorf("listing pods: %w", err)
	}

	used := make(map[string]resource.Vector, len(nodeList.Items))
	for _, pod := range podList.Items {
		if pod.Spec.NodeName == "" {
			continue
		}
		used[pod.Spec.NodeName] = used[pod.Spec.NodeName].Add(m.podRequests(pod))
	}

	view := make(cluster.View, len(nodeList.Items))
	for _, n := range nodeList.Items {
		total := m.nodeCapacity(ctx, n)
		avail := total.Sub(clampToTotal(used[n.Name], total))
		view[cluster.NodeID(n.Name)] = resource.Node{Total: total, Available: avail}
	}

	m.mu.Lock()
	m.nodes = view
	m.ready = true
	m.mu.Unlock()

	out := make(cluster.View, len(view))
	for id, n := range view {
		out[id] = n
	}
	return out, nil
}

// clampToTotal prevents a pod-accounting overshoot (e.g. stale pods still
// listed against a shrunk node) from driving Sub into its fatal underflow abort;
// it is defensive accounting, not a scheduling decision.
func clampToTotal(used, total resource.Vector) resource.Vector {
	if used.LessOrEqual(total) {
		return used
	}
	return total
}

func (m *Manager) nodeCapacity(ctx context.Context, n corev1.Node) resource.Vector {
	v := resource.NewVector()
	v.Predefined[resource.CPU] = quantityToFixedPoint(n.Status.Allocatable.Cpu().MilliValue())
	v.Predefined[resource.Memory] = fixedpoint.FromInt64(n.Status.Allocatable.Memory().Value())

	v.Custom = make(map[resource.CustomID]fixedpoint.Value)
	for name, id := range m.customIDs {
		q, ok := n.Status.Allocatable[corev1.ResourceName(name)]
		if !ok {
			if m.resolver != nil {
				if resolved, ok := m.resolver.CustomCapacity(ctx, n.Labels[InstanceTypeLabel], name); ok {
					v.Custom[id] = resolved
				}
			}
			continue
		}
		v.Custom[id] = fixedpoint.FromMilli(q.MilliValue())
	}

	return v
}

func quantityToFixedPoint(milliCPU int64) fixedpoint.Value {
	// Kubernetes CPU quantities are already in millicores, which matches
	// fixedpoint's milli-unit scale exactly.
	return fixedpoint.FromMilli(milliCPU)
}

func (m *Manager) podRequests(pod corev1.Pod) resource.Vector {
	v := resource.NewVector()
	v.Custom = make(map[resource.CustomID]fixedpoint.Value)
	for _, c := range pod.Spec.Containers {
		cpu := c.Resources.Requests.Cpu().MilliValue()
		mem := c.Resources.Requests.Memory().Value()
		v.Predefined[resource.CPU] = v.Predefined[resource.CPU].Add(fixedpoint.FromMilli(cpu))
		v.Predefined[resource.Memory] = v.Predefined[resource.Memory].Add(fixedpoint.FromInt64(mem))

		for name, id := range m.customIDs {
			if q, ok := c.Resources.Requests[corev1.ResourceName(name)]; ok {
				v.Custom[id] = v.Custom[id].Add(fixedpoint.FromMilli(q.MilliValue()))
			}
		}
	}
	return v
}

// TryAcquire decrements the in-memory cache's available resources for
// node. It requires a prior ClusterResources call in this process; callers
// that invoke TryAcquire without ever having read the view get an error.
func (m *Manager) TryAcquire(ctx context.Context, node cluster.NodeID, demand resource.Vector) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.ready {
		return false, fmt.Errorf("kube manager: TryAcquire called before ClusterResources populated the cache")
	}
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

// Release increments the in-memory cache's available resources for node.
func (m *Manager) Release(ctx context.Context, node cluster.NodeID, demand resource.Vector) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, ok := m.nodes[node]
	if !ok {
		klog.Errorf("kube manager: release for unknown node %s", node)
		return false, fmt.Errorf("%w: %s", manager.ErrUnknownNode, node)
	}
	n.Available = n.Available.Add(demand)
	m.nodes[node] = n
	return true, nil
}
