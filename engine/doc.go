// SPDX-License-Identifier: MIT

// Package engine runs the strain network operations end to end.
//
// A run takes one Request:
//
//	BuildReference  labelled self record -> graph, clusters, reference subset
//	FitAndCluster   self record + mixture fit or boundary -> same as above
//	AssignQuery     prior graph/clusters + query records -> updated network
//	BuildTree       self record -> minimum spanning tree and its tree form
//
// BuildReference, FitAndCluster and BuildTree need an all-vs-all record and
// fail with errkind.ErrInconsistentGraph otherwise. Every run gets a UUID,
// is logged under it and, when Config.Metrics is set, is counted and timed.
//
// The Engine reads no environment and keeps no state between runs; callers
// running in parallel use one Engine per goroutine or share one read-only.
package engine
