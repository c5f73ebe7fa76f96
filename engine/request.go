// SPDX-License-Identifier: MIT

package engine

import (
	"fmt"

	"github.com/katalvlaran/strainnet/cluster"
	"github.com/katalvlaran/strainnet/core"
	"github.com/katalvlaran/strainnet/dists"
	"github.com/katalvlaran/strainnet/errkind"
	"github.com/katalvlaran/strainnet/labels"
)

// Request kinds, as reported in logs, metrics and Result.Request.
const (
	KindBuildReference = "build_reference"
	KindFitAndCluster  = "fit_and_cluster"
	KindAssignQuery    = "assign_query"
	KindBuildTree      = "build_tree"
)

// Request is one engine operation: BuildReference, FitAndCluster, AssignQuery
// or BuildTree. The set is closed.
type Request interface {
	// Validate checks the request's own required fields.
	Validate() error
	kind() string
}

// BuildReference builds the network of a self record from precomputed labels,
// names its clusters and extracts the reference subset.
type BuildReference struct {
	Record *dists.Record
	Labels []labels.Label
}

// FitAndCluster is BuildReference fed by classifier output instead of labels:
// either a per-pair mixture assignment vector with its component means, or a
// fixed decision boundary applied to the distances.
type FitAndCluster struct {
	Record *dists.Record

	Assignments []int
	Means       [][2]float64

	Boundary *labels.Boundary
}

// AssignQuery folds a batch of queries into a prior network.
type AssignQuery struct {
	PriorGraph    *core.Graph
	PriorClusters *cluster.Clustering

	// Record holds every query against the prior references; its query list is
	// the batch. Labels has one entry per Record pair.
	Record *dists.Record
	Labels []labels.Label

	// QueryRecord optionally holds the batch against itself, with QueryLabels.
	QueryRecord *dists.Record
	QueryLabels []labels.Label

	// UpdateReferences re-extracts the reference subset over the updated network.
	UpdateReferences bool
}

// BuildTree computes the minimum spanning tree over every pair of a self
// record and converts it to a tree. Root names the root isolate and is
// required when Rooted is set; without it the tree hangs from the best
// connected isolate and is reported unrooted.
type BuildTree struct {
	Record *dists.Record
	Root   string
	Rooted bool
}

func (BuildReference) kind() string { return KindBuildReference }
func (FitAndCluster) kind() string  { return KindFitAndCluster }
func (AssignQuery) kind() string    { return KindAssignQuery }
func (BuildTree) kind() string      { return KindBuildTree }

// selfRecord checks a record a full-network operation can run on.
func selfRecord(op string, rec *dists.Record) error {
	if rec == nil {
		return errkind.Malformed(op, "missing distance record")
	}
	if err := rec.Validate(); err != nil {
		return err
	}
	if !rec.IsSelf() {
		return errkind.Inconsistent(op, "a full network needs an all-vs-all distance record")
	}

	return nil
}

func denseRecord(op string, rec *dists.Record) error {
	if rec.Dense == nil {
		return errkind.Malformed(op, "labelled pairs need a dense distance record")
	}

	return nil
}

// Validate implements Request.
func (r BuildReference) Validate() error {
	const op = "engine.BuildReference"
	if err := selfRecord(op, r.Record); err != nil {
		return err
	}
	if err := denseRecord(op, r.Record); err != nil {
		return err
	}

	return labels.CheckLength(op, r.Labels, r.Record.PairCount())
}

// Validate implements Request.
func (r FitAndCluster) Validate() error {
	const op = "engine.FitAndCluster"
	if err := selfRecord(op, r.Record); err != nil {
		return err
	}
	if err := denseRecord(op, r.Record); err != nil {
		return err
	}
	fitted := r.Assignments != nil || r.Means != nil
	switch {
	case fitted && r.Boundary != nil:
		return errkind.Malformed(op, "give either a mixture fit or a boundary, not both")
	case r.Boundary != nil:
		if err := r.Boundary.Validate(); err != nil {
			return errkind.Wrap(errkind.ErrMalformedInput, op, err)
		}
		return nil
	case len(r.Means) == 0:
		return errkind.Malformed(op, "missing mixture component means or boundary")
	}
	if len(r.Assignments) != r.Record.PairCount() {
		return errkind.Malformed(op, fmt.Sprintf("%d assignments for %d pairs", len(r.Assignments), r.Record.PairCount()))
	}
	for k, a := range r.Assignments {
		if a < 0 || a >= len(r.Means) {
			return errkind.Malformed(op, fmt.Sprintf("assignment %d names unknown mixture component %d", k, a), r.pairIDs(k)...)
		}
	}

	return nil
}

func (r FitAndCluster) pairIDs(k int) []string {
	p, err := r.Record.Pair(k)
	if err != nil {
		return nil
	}

	return []string{p.First, p.Second}
}

// Validate implements Request.
func (r AssignQuery) Validate() error {
	const op = "engine.AssignQuery"
	if r.PriorGraph == nil || r.PriorClusters == nil {
		return errkind.Inconsistent(op, "missing prior graph or clustering")
	}
	if r.Record == nil {
		return errkind.Malformed(op, "missing query distance record")
	}
	if err := r.Record.Validate(); err != nil {
		return err
	}
	if r.Record.IsSelf() {
		return errkind.Inconsistent(op, "query assignment needs a reference-vs-query record")
	}
	if err := denseRecord(op, r.Record); err != nil {
		return err
	}
	if err := labels.CheckLength(op, r.Labels, r.Record.PairCount()); err != nil {
		return err
	}
	if r.QueryRecord == nil {
		if r.QueryLabels != nil {
			return errkind.Malformed(op, "query labels without a query record")
		}
		return nil
	}

	if err := r.QueryRecord.Validate(); err != nil {
		return err
	}
	if !r.QueryRecord.IsSelf() {
		return errkind.Inconsistent(op, "the query record must compare the batch with itself")
	}
	if err := denseRecord(op, r.QueryRecord); err != nil {
		return err
	}
	batch := make(map[string]bool, len(r.Record.QueryList))
	for _, q := range r.Record.QueryList {
		batch[q] = true
	}
	var stray []string
	for _, q := range r.QueryRecord.RefList {
		if !batch[q] {
			stray = append(stray, q)
		}
	}
	if len(stray) > 0 {
		return errkind.Malformed(op, "query record names isolates outside the batch", stray...)
	}

	return labels.CheckLength(op, r.QueryLabels, r.QueryRecord.PairCount())
}

// Validate implements Request.
func (r BuildTree) Validate() error {
	const op = "engine.BuildTree"
	if err := selfRecord(op, r.Record); err != nil {
		return err
	}
	if r.Rooted && r.Root == "" {
		return errkind.Malformed(op, "a rooted tree needs a root isolate")
	}

	return nil
}
