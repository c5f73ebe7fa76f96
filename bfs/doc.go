// SPDX-License-Identifier: MIT

// Package bfs provides breadth-first connectivity queries over a core.Graph,
// used by the clustering, reduction and assignment stages.
//
// What
//
//   - Components sweeps every vertex (sorted by ID) and returns the connected
//     components, each sorted ascending, in order of their smallest member.
//     A keep filter restricts the sweep to a vertex subset.
//   - ComponentsFrom walks only the components that contain a seed vertex.
//   - Connected reports whether a vertex subset is one component.
//   - Reach answers "are these targets still connected to start" over an
//     adjacency snapshot, stopping as soon as every target is found.
//   - Edge weights are ignored: traversal is by hops only.
//
// Determinism
//
//	Neighbours are expanded in sorted ID order, so the visit sequence is
//	reproducible for a fixed graph.
//
// Complexity
//
//   - Components, ComponentsFrom: O(V log V) for the index, then O(V' + E' log d)
//     over the walked part of the graph. One index and one visited bitset are
//     shared by every walk of a call.
//   - Reach: proportional to the neighbourhood explored before the last target.
//
// Errors
//
//   - ErrGraphNil             if the graph pointer is nil.
//   - ErrStartVertexNotFound  if a seed vertex does not exist.
//   - ErrNeighbors            if neighbour iteration fails.
package bfs
