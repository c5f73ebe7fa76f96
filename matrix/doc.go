// SPDX-License-Identifier: MIT

// Package matrix holds the numeric storage behind distance records.
//
//   - Dense is a row-major r×c float64 matrix. Distance records use one row per
//     isolate pair and two columns (core, accessory).
//   - Sparse is a COO triplet list over an n×n pair space (row < col), used for
//     rank-sparsified self distances.
//
// Both types validate finiteness and non-negativity on demand (Validate) rather
// than on every Set, so bulk loads stay cheap.
package matrix
