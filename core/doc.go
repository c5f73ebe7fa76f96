// SPDX-License-Identifier: MIT

// Package core provides the thread-safe, undirected, weighted relatedness graph
// used throughout strainnet.
//
// Vertices are isolate identifiers (non-empty strings). Edges are unordered pairs
// of distinct vertices carrying a non-negative float64 distance:
//
//   - No self-loops: AddEdge(v, v, w) returns ErrLoopNotAllowed.
//   - At most one edge per unordered pair. Adding a pair that already exists
//     merges the observation into the existing edge and keeps the minimum weight.
//     The merged edge keeps its original ID and insertion sequence.
//   - Every edge carries a monotonic insertion sequence (Edge.Seq) and a textual
//     ID derived from it ("e1", "e2", ...). Edges() and Neighbors() enumerate in
//     insertion order, which is the deterministic tie-break used by the spanning
//     tree, reducer and assigner packages.
//   - Vertices() is sorted by ID; VerticesInOrder() follows insertion order.
//
// Concurrency:
//
// Two sync.RWMutex locks guard the graph: muVert for the vertex catalog and
// muEdgeAdj for edges and adjacency. Methods needing both always acquire muVert
// first. Edge sequence numbers are allocated with sync/atomic.
//
// Cloning:
//
// CloneEmpty copies vertices only; Clone deep-copies edges and adjacency and
// carries the sequence counters, so edges added to a clone sort after every edge
// inherited from the original.
package core
