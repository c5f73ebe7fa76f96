// SPDX-License-Identifier: MIT
//
// File: methods_clone.go
// Role: CloneEmpty / Clone / Clear.
// Determinism:
//   - Clones carry vertex and edge sequence counters, so new insertions on a
//     clone order after everything inherited.

package core

import "sync/atomic"

// CloneEmpty returns a new graph with the same vertices (and vertex sequence)
// but no edges.
//
// Complexity: O(V).
func (g *Graph) CloneEmpty() *Graph {
	g.muVert.RLock()
	defer g.muVert.RUnlock()

	clone := NewGraph(WithCapacity(len(g.vertices), 0))
	for id, v := range g.vertices {
		clone.vertices[id] = &Vertex{ID: v.ID, Seq: v.Seq}
	}
	clone.nextVertexSeq = g.nextVertexSeq
	atomic.StoreUint64(&clone.nextEdgeID, atomic.LoadUint64(&g.nextEdgeID))

	return clone
}

// Clone returns a deep copy: vertices, edges (same IDs, weights and Seq) and adjacency.
//
// Complexity: O(V + E).
func (g *Graph) Clone() *Graph {
	clone := g.CloneEmpty()

	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	for _, e := range g.edges {
		ne := *e
		clone.linkLocked(&ne)
	}

	return clone
}

// Clear removes all vertices and edges and resets the sequence counters.
func (g *Graph) Clear() {
	g.muVert.Lock()
	g.muEdgeAdj.Lock()
	g.vertices = make(map[string]*Vertex)
	g.edges = make(map[string]*Edge)
	g.adjacency = make(map[string]map[string]string)
	g.nextVertexSeq = 0
	atomic.StoreUint64(&g.nextEdgeID, 0)
	g.muEdgeAdj.Unlock()
	g.muVert.Unlock()
}
