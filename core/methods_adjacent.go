// SPDX-License-Identifier: MIT
//
// File: methods_adjacent.go
// Role: Neighbourhood queries: Neighbors/NeighborIDs/AdjacencyList.
// Determinism:
//   - Neighbors() is ordered by edge insertion sequence.
//   - NeighborIDs() is sorted by ID.

package core

import "sort"

// Neighbors returns the edges incident to id, ordered by insertion sequence.
//
// Errors:
//   - ErrEmptyVertexID, ErrVertexNotFound.
//
// Complexity: O(d log d).
func (g *Graph) Neighbors(id string) ([]*Edge, error) {
	if id == "" {
		return nil, ErrEmptyVertexID
	}

	g.muVert.RLock()
	defer g.muVert.RUnlock()
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	if _, ok := g.vertices[id]; !ok {
		return nil, ErrVertexNotFound
	}

	out := make([]*Edge, 0, len(g.adjacency[id]))
	for _, eid := range g.adjacency[id] {
		out = append(out, g.edges[eid])
	}
	sortBySeq(out)

	return out, nil
}

// NeighborIDs returns the distinct neighbour IDs of id, sorted ascending.
func (g *Graph) NeighborIDs(id string) ([]string, error) {
	if id == "" {
		return nil, ErrEmptyVertexID
	}

	g.muVert.RLock()
	defer g.muVert.RUnlock()
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	if _, ok := g.vertices[id]; !ok {
		return nil, ErrVertexNotFound
	}

	ids := make([]string, 0, len(g.adjacency[id]))
	for nbr := range g.adjacency[id] {
		ids = append(ids, nbr)
	}
	sort.Strings(ids)

	return ids, nil
}

// AdjacencyList returns a snapshot vertex -> sorted neighbour IDs. Every vertex,
// including isolated ones, has an entry. Slices are freshly allocated.
func (g *Graph) AdjacencyList() map[string][]string {
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	out := make(map[string][]string, len(g.vertices))
	for id := range g.vertices {
		nbrs := make([]string, 0, len(g.adjacency[id]))
		for nbr := range g.adjacency[id] {
			nbrs = append(nbrs, nbr)
		}
		sort.Strings(nbrs)
		out[id] = nbrs
	}

	return out
}
