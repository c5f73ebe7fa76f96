// SPDX-License-Identifier: MIT

// Package mst computes minimum spanning trees over relatedness graphs.
//
// Algorithms
//
//   - Kruskal(g): global stable sort by weight + union-find. Equal weights keep
//     insertion order, which makes the tree reproducible for identical inputs.
//     O(E log E + α(V)·E).
//   - Prim(g, root): min-heap expansion from root, ties by insertion sequence.
//     Accepts the same edge set as Kruskal. O(E log E).
//   - RankSparsify(g, k): keeps each vertex's k cheapest incident edges.
//
// Build(g, WithRank(k), WithBackend(b)) combines the two. With k > 0 the tree
// is computed over the sparsified graph and is flagged Approximate: its total
// is an upper bound on the exact MST of g. Approximate trees are logged as such.
//
// Backends
//
// Backend is the spanning tree capability shared by:
//
//   - CPU: Kruskal, the reference.
//   - Parallel: Borůvka rounds with a pargo data-parallel cheapest-edge scan.
//     Ranks edges by (weight, insertion sequence) and so returns the reference
//     edge set.
//   - Gonum: gonum's Kruskal. Edge-equivalent, tie-breaking may differ.
//
// NewBackend resolves a backend by name; "gpu" and other names fail with
// errkind.ErrResourceUnavailable. Equivalent checks two trees for the same
// vertex set, edge count and total weight.
//
// Error Conditions
//
//   - ErrGraphNil, ErrEmptyGraph, ErrEmptyRoot (Prim), ErrBadRank.
//   - core.ErrVertexNotFound: Prim root absent.
//   - *DisconnectedError: no spanning tree exists. Matches errkind.ErrDisconnected
//     and lists the components; a partial tree is never returned.
package mst
