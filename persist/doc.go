// SPDX-License-Identifier: MIT

// Package persist reads and writes the artefacts of a strain network run.
//
// Files:
//
//	distances  gob snapshot of a dists.Record, floats bit-exact
//	graph      GraphML, one node per isolate, weighted undirected edges
//	tree       Newick text of a spanning tree
//	clusters   CSV "Taxon,Cluster[,Lineage]"
//	names      CSV "Kind,Name,Survivor" beside the clusters file: name counter and aliases
//	references one isolate ID per line
//	queries    CSV "Query,Reference,Core,Accessory"
//
// Every file is written atomically through a sibling temporary file, so a failed
// write never leaves a partial artefact behind.
//
// ClusterStore keeps clusterings across runs in SQLite: each run stores its
// assignment, alias table, name counter and merge events in one transaction.
package persist
