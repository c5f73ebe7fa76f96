// SPDX-License-Identifier: MIT

// Package assign folds a batch of query isolates into an existing relatedness
// graph and clustering.
//
// Queries are added as vertices, their within-strain links as edges, and every
// connected component touching a query is (re)named:
//
//   - no prior member: a new cluster name is issued; its queries are reported in
//     Result.NewClusterMembers;
//   - one prior cluster: that name is kept; its queries are reported in
//     Result.ExistingClusterMatches;
//   - two or more prior clusters: the clusters merge under the lowest name, the
//     absorbed names become aliases and the event is recorded in Result.Merges.
//
// Components untouched by the batch keep their names. The prior graph and
// clustering are never modified.
package assign

import (
	"errors"
	"sort"

	"go.uber.org/zap"

	"github.com/katalvlaran/strainnet/bfs"
	"github.com/katalvlaran/strainnet/cluster"
	"github.com/katalvlaran/strainnet/core"
	"github.com/katalvlaran/strainnet/errkind"
)

const op = "assign.Assign"

// ErrNotAssigned is returned by Result.ClusterOf for an isolate without a cluster.
var ErrNotAssigned = errors.New("assign: isolate not assigned")

// Link is one within-strain observation between a query and either a prior
// vertex or another query of the same batch.
type Link struct {
	Query  string
	Target string
	Weight float64
}

// Result is the updated network and the partition of the batch.
type Result struct {
	Graph      *core.Graph
	Clustering *cluster.Clustering

	// NewClusterMembers lists queries whose component had no prior member, sorted.
	NewClusterMembers []string
	// ExistingClusterMatches lists queries joined to a prior cluster, sorted.
	ExistingClusterMatches []string
	// Merges lists merge events in the order they happened.
	Merges []cluster.Merge
}

// Options configures Assign.
type Options struct {
	Logger *zap.Logger
}

// Option customizes Assign.
type Option func(*Options)

// WithLogger routes progress messages to l. nil is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// Assign adds queries and links to copies of prior and priorClusters.
//
// Queries already present in the prior graph or clustering count as existing
// members, so re-running the same batch against the updated network issues no
// names and records no merges.
//
// Errors:
//   - errkind.ErrMalformedInput for empty or duplicate query IDs, a link whose
//     Query is not in the batch, a self link, or a bad weight.
//   - errkind.ErrInconsistentGraph for a link Target that is neither a prior
//     vertex nor a query, or a prior vertex without a cluster.
func Assign(prior *core.Graph, priorClusters *cluster.Clustering, queries []string, links []Link, opts ...Option) (*Result, error) {
	o := Options{Logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if prior == nil || priorClusters == nil {
		return nil, errkind.Inconsistent(op, "nil prior graph or clustering")
	}
	if err := priorClusters.Covers(prior); err != nil {
		return nil, err
	}

	batch, err := checkQueries(queries)
	if err != nil {
		return nil, err
	}
	if err = checkLinks(prior, batch, links); err != nil {
		return nil, err
	}

	g := prior.Clone()
	c := priorClusters.Clone()
	for _, q := range queries {
		if err = g.AddVertex(q); err != nil {
			return nil, errkind.Wrap(errkind.ErrMalformedInput, op, err, q)
		}
	}
	for _, l := range links {
		if _, err = g.AddEdge(l.Query, l.Target, l.Weight); err != nil {
			return nil, errkind.Wrap(errkind.ErrMalformedInput, op, err, l.Query, l.Target)
		}
	}

	res := &Result{
		Graph:                  g,
		Clustering:             c,
		NewClusterMembers:      []string{},
		ExistingClusterMatches: []string{},
	}

	// One sweep, seeded from the queries in ID order, walks only the
	// components the batch touches.
	sorted := append([]string(nil), queries...)
	sort.Strings(sorted)
	comps, err := bfs.ComponentsFrom(g, sorted)
	if err != nil {
		return nil, errkind.Wrap(errkind.ErrInconsistentGraph, op, err)
	}
	for _, comp := range comps {
		if err = res.settle(comp, batch); err != nil {
			return nil, err
		}
	}
	sort.Strings(res.NewClusterMembers)
	sort.Strings(res.ExistingClusterMatches)

	o.Logger.Info("queries assigned",
		zap.Int("queries", len(queries)),
		zap.Int("links", len(links)),
		zap.Int("novel", len(res.NewClusterMembers)),
		zap.Int("matched", len(res.ExistingClusterMatches)),
		zap.Int("merges", len(res.Merges)))

	return res, nil
}

// settle names one component and partitions its queries.
func (r *Result) settle(comp []string, batch map[string]bool) error {
	var names []string
	for _, id := range comp {
		if name, ok := r.Clustering.Name(id); ok {
			names = append(names, name)
		}
	}

	var name string
	novel := len(names) == 0
	if novel {
		name = r.Clustering.NewName()
	} else {
		m, err := r.Clustering.Merge(names...)
		if err != nil {
			return err
		}
		if len(m.Absorbed) > 0 {
			r.Merges = append(r.Merges, m)
		}
		name = m.Survivor
	}

	for _, id := range comp {
		if _, ok := r.Clustering.Name(id); !ok {
			if err := r.Clustering.Set(id, name); err != nil {
				return err
			}
		}
		if !batch[id] {
			continue
		}
		if novel {
			r.NewClusterMembers = append(r.NewClusterMembers, id)
		} else {
			r.ExistingClusterMatches = append(r.ExistingClusterMatches, id)
		}
	}

	return nil
}

func checkQueries(queries []string) (map[string]bool, error) {
	if len(queries) == 0 {
		return nil, errkind.Malformed(op, "empty query batch")
	}
	batch := make(map[string]bool, len(queries))
	var dups []string
	for _, q := range queries {
		if q == "" {
			return nil, errkind.Malformed(op, "empty query ID")
		}
		if batch[q] {
			dups = append(dups, q)
		}
		batch[q] = true
	}
	if len(dups) > 0 {
		return nil, errkind.Malformed(op, "duplicate query IDs", dups...)
	}

	return batch, nil
}

func checkLinks(prior *core.Graph, batch map[string]bool, links []Link) error {
	var strangers, unknown []string
	for _, l := range links {
		switch {
		case !batch[l.Query]:
			strangers = append(strangers, l.Query)
		case l.Query == l.Target:
			return errkind.Wrap(errkind.ErrMalformedInput, op, core.ErrLoopNotAllowed, l.Query)
		case !batch[l.Target] && !prior.HasVertex(l.Target):
			unknown = append(unknown, l.Target)
		}
	}
	if len(strangers) > 0 {
		return errkind.Malformed(op, "link from an isolate outside the query batch", dedupe(strangers)...)
	}
	if len(unknown) > 0 {
		return errkind.Inconsistent(op, "link to an isolate absent from the prior network", dedupe(unknown)...)
	}

	return nil
}

func dedupe(ids []string) []string {
	sort.Strings(ids)
	out := ids[:0]
	for i, id := range ids {
		if i == 0 || id != ids[i-1] {
			out = append(out, id)
		}
	}

	return out
}

// IsNovel reports whether q was placed in a new cluster.
func (r *Result) IsNovel(q string) bool {
	i := sort.SearchStrings(r.NewClusterMembers, q)

	return i < len(r.NewClusterMembers) && r.NewClusterMembers[i] == q
}

// ClusterOf returns the final cluster name of q.
func (r *Result) ClusterOf(q string) (string, error) {
	name, ok := r.Clustering.Name(q)
	if !ok {
		return "", ErrNotAssigned
	}

	return name, nil
}
