// SPDX-License-Identifier: MIT
//
// File: api.go
// Role: Read-only graph summaries.

package core

import "math"

// GraphStats is a point-in-time summary of a graph.
type GraphStats struct {
	VertexCount      int
	EdgeCount        int
	IsolatedVertices int
	TotalWeight      float64
	MinWeight        float64 // 0 when the graph has no edges
	MaxWeight        float64
}

// Stats returns a snapshot summary of g.
//
// Complexity: O(V + E).
func (g *Graph) Stats() *GraphStats {
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	s := &GraphStats{VertexCount: len(g.vertices), EdgeCount: len(g.edges)}
	for id := range g.vertices {
		if len(g.adjacency[id]) == 0 {
			s.IsolatedVertices++
		}
	}
	if len(g.edges) == 0 {
		return s
	}

	s.MinWeight = math.Inf(1)
	for _, e := range g.edges {
		s.TotalWeight += e.Weight
		s.MinWeight = math.Min(s.MinWeight, e.Weight)
		s.MaxWeight = math.Max(s.MaxWeight, e.Weight)
	}

	return s
}

// Density returns 2|E| / (|V|(|V|-1)), or 0 for graphs with fewer than two vertices.
func (s *GraphStats) Density() float64 {
	if s.VertexCount < 2 {
		return 0
	}
	n := float64(s.VertexCount)

	return 2 * float64(s.EdgeCount) / (n * (n - 1))
}
