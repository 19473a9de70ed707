// Package core: Graph method implementations.
//
// Every method takes the Graph lock, so a Graph can be read concurrently
// by several engines (e.g. the strongly-connected check and the suture
// count of one edge orientation) while it is being built by none.

package core

import (
	"sort"
)

// AddVertex inserts a vertex with the given ID.
// Returns ErrNegativeVertexID if id < 0.
// Adding an existing vertex is a no-op.
// Complexity: O(1).
func (g *Graph) AddVertex(id int) error {
	if id < 0 {
		return ErrNegativeVertexID
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	g.vertices[id] = struct{}{}

	return nil
}

// HasVertex reports whether a vertex with the given ID exists.
// Complexity: O(1).
func (g *Graph) HasVertex(id int) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.vertices[id]

	return ok
}

// AddEdge creates an edge from -> to, adding missing endpoints, and returns
// its ID. For undirected graphs the edge is reachable from both ends.
//
// Returns ErrNegativeVertexID, ErrLoopNotAllowed, ErrMultiEdgeNotAllowed.
// Complexity: O(1) amortized, O(deg) when multi-edges are disabled.
func (g *Graph) AddEdge(from, to int) (int, error) {
	// 1) Input validation
	if from < 0 || to < 0 {
		return -1, ErrNegativeVertexID
	}
	// 2) Loop constraint
	if from == to && !g.allowLoops {
		return -1, ErrLoopNotAllowed
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	// 3) Parallel-edge constraint
	if !g.allowMulti && g.hasEdgeLocked(from, to) {
		return -1, ErrMultiEdgeNotAllowed
	}

	// 4) Ensure endpoints, then record the edge
	g.vertices[from] = struct{}{}
	g.vertices[to] = struct{}{}
	id := len(g.edges)
	g.edges = append(g.edges, Edge{ID: id, From: from, To: to})
	g.out[from] = append(g.out[from], id)
	if g.directed {
		g.in[to] = append(g.in[to], id)
	} else if from != to {
		g.out[to] = append(g.out[to], id)
	}

	return id, nil
}

// HasEdge reports whether an edge from -> to exists (either orientation if
// the graph is undirected).
func (g *Graph) HasEdge(from, to int) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.hasEdgeLocked(from, to)
}

func (g *Graph) hasEdgeLocked(from, to int) bool {
	for _, eid := range g.out[from] {
		if g.edges[eid].Other(from) == to {
			return true
		}
	}

	return false
}

// HasLoop reports whether vertex id carries at least one self-loop.
// Complexity: O(deg).
func (g *Graph) HasLoop(id int) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, eid := range g.out[id] {
		e := g.edges[eid]
		if e.From == id && e.To == id {
			return true
		}
	}

	return false
}

// NeighborIDs returns the sorted, de-duplicated vertices reachable from id
// by a single edge (out-neighbors in a directed graph).
// Returns ErrVertexNotFound if id is absent.
func (g *Graph) NeighborIDs(id int) ([]int, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if _, ok := g.vertices[id]; !ok {
		return nil, ErrVertexNotFound
	}

	seen := make(map[int]struct{}, len(g.out[id]))
	for _, eid := range g.out[id] {
		seen[g.edges[eid].Other(id)] = struct{}{}
	}

	return sortedKeys(seen), nil
}

// IncidentEdges returns the edges leaving id (every incident edge if the
// graph is undirected) in insertion order. A loop is listed once.
// Returns ErrVertexNotFound if id is absent.
func (g *Graph) IncidentEdges(id int) ([]Edge, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if _, ok := g.vertices[id]; !ok {
		return nil, ErrVertexNotFound
	}

	out := make([]Edge, 0, len(g.out[id]))
	for _, eid := range g.out[id] {
		out = append(out, g.edges[eid])
	}

	return out, nil
}

// AdjacentIDs returns the sorted union of in- and out-neighbors of id.
// For undirected graphs this equals NeighborIDs.
func (g *Graph) AdjacentIDs(id int) ([]int, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if _, ok := g.vertices[id]; !ok {
		return nil, ErrVertexNotFound
	}

	seen := make(map[int]struct{})
	for _, eid := range g.out[id] {
		seen[g.edges[eid].Other(id)] = struct{}{}
	}
	for _, eid := range g.in[id] {
		seen[g.edges[eid].From] = struct{}{}
	}

	return sortedKeys(seen), nil
}

// Vertices returns all vertex IDs in ascending order.
func (g *Graph) Vertices() []int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return sortedKeys(g.vertices)
}

// Edges returns a copy of all edges in insertion order.
func (g *Graph) Edges() []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)

	return out
}

// VertexCount returns |V|.
func (g *Graph) VertexCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.vertices)
}

// EdgeCount returns |E|.
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.edges)
}

func sortedKeys(m map[int]struct{}) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	return keys
}
