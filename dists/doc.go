// SPDX-License-Identifier: MIT

// Package dists models the pairwise distance record exchanged between the
// sketching stage, the classifier and the graph builder.
//
// A Record holds an ordered reference list, an ordered query list, the
// comparison kind and one of two storage forms:
//
//   - Dense: one row per isolate pair, columns (core, accessory).
//     SelfComparison stores the upper triangle row-major over the reference
//     list: pair k enumerates (i, j) with i < j. ReferenceQueryComparison stores
//     len(QueryList)×len(RefList) pairs, query-major: k = q·|R| + r.
//   - Sparse: COO triplets (row, col, weight) over the reference list. Self only.
//
// Sketch carries the k-mer lengths and sketch size the distances were computed
// with; it is validated but otherwise passed through.
package dists
