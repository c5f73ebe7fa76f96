// SPDX-License-Identifier: MIT

// Package strainnet partitions genome collections into strain-level clusters
// from pairwise distances, and keeps those clusters stable as new genomes arrive.
//
// 🧬 What does it do?
//
//	• Build a same-strain network from classified pair distances
//	• Name its connected components as clusters ("1", "2", ...)
//	• Extract a compact reference subset that keeps every cluster intact
//	• Fold new queries into a stored network without renaming clusters,
//	  except where two clusters are forced to merge
//	• Compute a minimum spanning tree over all distances, exact or
//	  rank-sparsified, and export it as a Newick tree
//
// Packages, leaves first:
//
//	errkind/   typed failures: malformed input, inconsistent graph, unavailable resource
//	core/      thread-safe undirected weighted Graph over isolate IDs
//	matrix/    dense pair matrix and COO sparse triplets
//	dists/     distance records, self vs reference-query comparisons
//	labels/    within/between strain labels from a fit or a fixed boundary
//	bfs/       breadth-first traversal and connected components
//	builder/   graph construction from labelled records or edge lists
//	cluster/   cluster naming, aliases and merges
//	reduce/    reference subset extraction
//	assign/    incremental query assignment
//	mst/       Kruskal, Prim, rank sparsification and spanning tree backends
//	tree/      spanning tree to rooted tree, Newick output
//	persist/   snapshots, GraphML, CSV, Newick and the SQLite cluster store
//	engine/    request-driven runs with run IDs and metrics
//	config/, logger/  environment settings and zap loggers for cmd/strainnet
//
// Quick example, five isolates with within-strain pairs A-B, B-C and D-E:
//
//	A───B───C      D───E
//
// form clusters {A,B,C} = "1" and {D,E} = "2". A query F linked only to D
// joins "2"; a query G with no link opens "3".
//
//	go install github.com/katalvlaran/strainnet/cmd/strainnet@latest
package strainnet
