package graph

import "sort"

// Edge is one direction of a road segment as seen from an intersection.
type Edge struct {
	To       string
	Signal   Signal
	Distance float64
}

// Network holds intersections and their incident edges.
// It is immutable once built; hot-reload creates a new Network and swaps it atomically.
type Network struct {
	adj      map[string][]Edge // node id → edges in segment order
	segments int
}

// NewNetwork allocates an empty Network.
func NewNetwork() *Network {
	return &Network{adj: make(map[string][]Edge)}
}

// AddNode registers an intersection with no edges. Adding a known node is a no-op.
func (n *Network) AddNode(id string) {
	if _, ok := n.adj[id]; !ok {
		n.adj[id] = []Edge{}
	}
}

// AddSegment records an undirected segment between a and b.
// Both endpoints receive an edge carrying the same signal and distance.
func (n *Network) AddSegment(a, b string, sig Signal, distance float64) {
	n.AddNode(a)
	n.AddNode(b)
	n.adj[a] = append(n.adj[a], Edge{To: b, Signal: sig, Distance: distance})
	n.adj[b] = append(n.adj[b], Edge{To: a, Signal: sig, Distance: distance})
	n.segments++
}

// Edges returns the edges incident to id (nil if unknown).
// The slice is shared; callers must not modify it.
func (n *Network) Edges(id string) []Edge {
	return n.adj[id]
}

// HasNode reports whether id appears in any segment.
func (n *Network) HasNode(id string) bool {
	_, ok := n.adj[id]
	return ok
}

// Nodes returns all node ids in sorted order.
func (n *Network) Nodes() []string {
	ids := make([]string, 0, len(n.adj))
	for id := range n.adj {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// NodeCount returns the number of intersections.
func (n *Network) NodeCount() int {
	return len(n.adj)
}

// SegmentCount returns the number of undirected segments.
func (n *Network) SegmentCount() int {
	return n.segments
}
