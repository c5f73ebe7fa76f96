// SPDX-License-Identifier: MIT
//
// File: view.go
// Role: Non-mutating graph views.

package core

import "sync/atomic"

// InducedSubgraph returns a new graph containing only the vertices with keep[id] == true
// and the edges whose endpoints are both kept. IDs, weights and sequences are preserved,
// so the subgraph enumerates edges in the same relative order as g.
//
// Complexity: O(V + E).
func InducedSubgraph(g *Graph, keep map[string]bool) *Graph {
	g.muVert.RLock()
	sub := NewGraph(WithCapacity(len(keep), 0))
	for id, v := range g.vertices {
		if keep[id] {
			sub.vertices[id] = &Vertex{ID: v.ID, Seq: v.Seq}
		}
	}
	sub.nextVertexSeq = g.nextVertexSeq
	g.muVert.RUnlock()

	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	atomic.StoreUint64(&sub.nextEdgeID, atomic.LoadUint64(&g.nextEdgeID))
	for _, e := range g.edges {
		if keep[e.From] && keep[e.To] {
			ne := *e
			sub.linkLocked(&ne)
		}
	}

	return sub
}

// Without returns a copy of g with the given vertices (and their edges) removed.
func Without(g *Graph, drop ...string) *Graph {
	dropSet := make(map[string]bool, len(drop))
	for _, id := range drop {
		dropSet[id] = true
	}
	keep := make(map[string]bool, g.VertexCount())
	for _, id := range g.Vertices() {
		if !dropSet[id] {
			keep[id] = true
		}
	}

	return InducedSubgraph(g, keep)
}
