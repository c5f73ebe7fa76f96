// SPDX-License-Identifier: MIT
//
// File: methods_vertices.go
// Role: Vertex lifecycle and queries.
// Determinism:
//   - Vertices() is sorted by ID; VerticesInOrder() follows insertion order.
// Concurrency:
//   - Mutations take muVert (and muEdgeAdj when edges are affected), in that order.

package core

import "sort"

// AddVertex inserts a vertex with the given ID. Re-adding an existing vertex is a no-op.
//
// Errors:
//   - ErrEmptyVertexID if id is "".
//
// Complexity: O(1) amortized.
func (g *Graph) AddVertex(id string) error {
	if id == "" {
		return ErrEmptyVertexID
	}

	g.muVert.Lock()
	defer g.muVert.Unlock()
	g.addVertexLocked(id)

	return nil
}

// addVertexLocked inserts id if absent. Caller holds muVert write lock.
func (g *Graph) addVertexLocked(id string) {
	if _, ok := g.vertices[id]; ok {
		return
	}
	g.nextVertexSeq++
	g.vertices[id] = &Vertex{ID: id, Seq: g.nextVertexSeq}
}

// HasVertex reports whether id is present. The empty ID is never present.
func (g *Graph) HasVertex(id string) bool {
	if id == "" {
		return false
	}
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	_, ok := g.vertices[id]

	return ok
}

// RemoveVertex deletes a vertex together with all incident edges.
//
// Implementation:
//   - Stage 1: Acquire muVert then muEdgeAdj write locks.
//   - Stage 2: Drop every incident edge and its mirrored adjacency entry.
//   - Stage 3: Drop the vertex record and its adjacency bucket.
//
// Errors:
//   - ErrEmptyVertexID, ErrVertexNotFound.
//
// Complexity: O(deg(id)).
func (g *Graph) RemoveVertex(id string) error {
	if id == "" {
		return ErrEmptyVertexID
	}

	g.muVert.Lock()
	defer g.muVert.Unlock()
	g.muEdgeAdj.Lock()
	defer g.muEdgeAdj.Unlock()

	if _, ok := g.vertices[id]; !ok {
		return ErrVertexNotFound
	}
	for nbr, eid := range g.adjacency[id] {
		delete(g.edges, eid)
		delete(g.adjacency[nbr], id)
		if len(g.adjacency[nbr]) == 0 {
			delete(g.adjacency, nbr)
		}
	}
	delete(g.adjacency, id)
	delete(g.vertices, id)

	return nil
}

// Vertices returns all vertex IDs sorted ascending.
//
// Complexity: O(V log V).
func (g *Graph) Vertices() []string {
	g.muVert.RLock()
	defer g.muVert.RUnlock()

	ids := make([]string, 0, len(g.vertices))
	for id := range g.vertices {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}

// VerticesInOrder returns all vertex IDs in the order they entered the graph.
func (g *Graph) VerticesInOrder() []string {
	g.muVert.RLock()
	defer g.muVert.RUnlock()

	vs := make([]*Vertex, 0, len(g.vertices))
	for _, v := range g.vertices {
		vs = append(vs, v)
	}
	sort.Slice(vs, func(i, j int) bool { return vs[i].Seq < vs[j].Seq })

	ids := make([]string, len(vs))
	for i, v := range vs {
		ids[i] = v.ID
	}

	return ids
}

// VertexCount returns |V|.
func (g *Graph) VertexCount() int {
	g.muVert.RLock()
	defer g.muVert.RUnlock()

	return len(g.vertices)
}

// Degree returns the number of distinct neighbours of id.
//
// Errors:
//   - ErrEmptyVertexID, ErrVertexNotFound.
func (g *Graph) Degree(id string) (int, error) {
	if id == "" {
		return 0, ErrEmptyVertexID
	}

	g.muVert.RLock()
	defer g.muVert.RUnlock()
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	if _, ok := g.vertices[id]; !ok {
		return 0, ErrVertexNotFound
	}

	return len(g.adjacency[id]), nil
}
