// SPDX-License-Identifier: MIT

package builder

import (
	"errors"
	"sort"

	"go.uber.org/zap"

	"github.com/katalvlaran/strainnet/bfs"
	"github.com/katalvlaran/strainnet/core"
	"github.com/katalvlaran/strainnet/dists"
	"github.com/katalvlaran/strainnet/errkind"
	"github.com/katalvlaran/strainnet/labels"
	"github.com/katalvlaran/strainnet/matrix"
)

// Edge is one pre-classified link for sparse-mode construction.
type Edge struct {
	From   string
	To     string
	Weight float64
}

// Summary describes a built graph.
type Summary struct {
	Vertices   int
	Edges      int
	Components int
	Density    float64
}

// FromLabels builds the relatedness graph in dense mode: every isolate of rec
// becomes a vertex (reference list first, then any query not already present),
// and every pair labelled WithinStrain becomes an edge weighted by the configured
// distance component. Self pairs are inserted in sorted ID order, query pairs in
// record order, so the tie-break sequence of equal weights does not depend on
// the order of the reference list.
//
// Errors (errkind.ErrMalformedInput):
//   - rec is nil, invalid, or not dense;
//   - len(lbls) differs from the record's pair count;
//   - a within pair would join an isolate to itself.
func FromLabels(rec *dists.Record, lbls []labels.Label, opts ...BuilderOption) (*core.Graph, error) {
	cfg := newBuilderConfig(opts...)
	if rec == nil {
		return nil, builderErrorf(MethodFromLabels, nil, "nil distance record")
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	if rec.Dense == nil {
		return nil, builderErrorf(MethodFromLabels, nil, "dense mode needs a dense distance record")
	}
	if err := labels.CheckLength(MethodFromLabels, lbls, rec.PairCount()); err != nil {
		return nil, err
	}

	g := core.NewGraph(core.WithCapacity(len(rec.RefList)+len(rec.QueryList), labels.Count(lbls)))
	if err := addVertices(g, MethodFromLabels, rec.RefList, rec.QueryList); err != nil {
		return nil, err
	}

	pairs, err := rec.SortedPairs()
	if err != nil {
		return nil, err
	}
	data := rec.Dense.Data()
	col := int(cfg.component)
	for _, p := range pairs {
		if lbls[p.Index] != labels.WithinStrain {
			continue
		}
		if _, err = g.AddEdge(p.First, p.Second, data[2*p.Index+col]); err != nil {
			return nil, edgeError(MethodFromLabels, p.First, p.Second, err)
		}
	}
	logSummary(cfg.logger, MethodFromLabels, g)

	return g, nil
}

// FromEdgeList builds the graph in sparse mode from an explicit vertex list and
// pre-classified edges (no labels involved). Vertices keep the order of ids.
//
// Errors (errkind.ErrMalformedInput):
//   - empty or duplicate IDs in ids;
//   - an edge naming an isolate absent from ids (all offenders attached);
//   - a self-loop or a negative / non-finite weight.
func FromEdgeList(ids []string, edges []Edge, opts ...BuilderOption) (*core.Graph, error) {
	cfg := newBuilderConfig(opts...)

	g := core.NewGraph(core.WithCapacity(len(ids), len(edges)))
	if err := addVertices(g, MethodFromEdgeList, ids); err != nil {
		return nil, err
	}

	var unknown []string
	seenUnknown := make(map[string]bool)
	for _, e := range edges {
		for _, id := range [2]string{e.From, e.To} {
			if !g.HasVertex(id) && !seenUnknown[id] {
				seenUnknown[id] = true
				unknown = append(unknown, id)
			}
		}
	}
	if len(unknown) > 0 {
		return nil, builderErrorf(MethodFromEdgeList, unknown, "edge endpoints not in vertex list")
	}

	for _, e := range edges {
		if _, err := g.AddEdge(e.From, e.To, e.Weight); err != nil {
			return nil, edgeError(MethodFromEdgeList, e.From, e.To, err)
		}
	}
	logSummary(cfg.logger, MethodFromEdgeList, g)

	return g, nil
}

// FromSparse builds the graph from a self record's COO triplets. A dense self
// record is converted first using the configured component, keeping every pair.
// Edges are inserted in sorted (lower ID, higher ID) order.
func FromSparse(rec *dists.Record, opts ...BuilderOption) (*core.Graph, error) {
	cfg := newBuilderConfig(opts...)
	if rec == nil {
		return nil, builderErrorf(MethodFromSparse, nil, "nil distance record")
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	sp, err := rec.ToSparse(cfg.component)
	if err != nil {
		return nil, err
	}

	g := core.NewGraph(core.WithCapacity(len(rec.RefList), sp.Len()))
	if err = addVertices(g, MethodFromSparse, rec.RefList); err != nil {
		return nil, err
	}
	for _, t := range sortedTriplets(rec.RefList, sp) {
		if _, err = g.AddEdge(t.From, t.To, t.Weight); err != nil {
			return nil, edgeError(MethodFromSparse, t.From, t.To, err)
		}
	}
	logSummary(cfg.logger, MethodFromSparse, g)

	return g, nil
}

// sortedTriplets names the triplets of sp over ids, lower ID first, sorted.
func sortedTriplets(ids []string, sp *matrix.Sparse) []Edge {
	out := make([]Edge, len(sp.Val))
	for k := range sp.Val {
		from, to := ids[sp.Row[k]], ids[sp.Col[k]]
		if to < from {
			from, to = to, from
		}
		out[k] = Edge{From: from, To: to, Weight: sp.Val[k]}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].To < out[j].To
	})

	return out
}

// Summarize computes the vertex/edge/component summary of g.
func Summarize(g *core.Graph) Summary {
	stats := g.Stats()
	comps, _ := bfs.Components(g, nil)

	return Summary{
		Vertices:   stats.VertexCount,
		Edges:      stats.EdgeCount,
		Components: len(comps),
		Density:    stats.Density(),
	}
}

// addVertices inserts every list in order. IDs must be non-empty and unique within
// the first list; later lists may repeat earlier IDs.
func addVertices(g *core.Graph, method string, lists ...[]string) error {
	for li, list := range lists {
		seen := make(map[string]bool, len(list))
		var dups []string
		for _, id := range list {
			if id == "" {
				return builderErrorf(method, nil, "empty isolate ID")
			}
			if seen[id] {
				dups = append(dups, id)
				continue
			}
			seen[id] = true
			if li > 0 && g.HasVertex(id) {
				continue
			}
			if err := g.AddVertex(id); err != nil {
				return errkind.Wrap(errkind.ErrMalformedInput, method, err, id)
			}
		}
		if len(dups) > 0 {
			return builderErrorf(method, dups, "duplicate isolate IDs")
		}
	}

	return nil
}

func edgeError(method, from, to string, err error) error {
	switch {
	case errors.Is(err, core.ErrLoopNotAllowed):
		return builderErrorf(method, []string{from}, "isolate paired with itself")
	default:
		return errkind.Wrap(errkind.ErrMalformedInput, method, err, from, to)
	}
}

func logSummary(l *zap.Logger, method string, g *core.Graph) {
	if l.Core().Enabled(zap.InfoLevel) {
		s := Summarize(g)
		l.Info("network summary",
			zap.String("op", method),
			zap.Int("vertices", s.Vertices),
			zap.Int("edges", s.Edges),
			zap.Int("components", s.Components),
			zap.Float64("density", s.Density),
		)
	}
}
