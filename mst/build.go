// SPDX-License-Identifier: MIT

package mst

import (
	"errors"

	"go.uber.org/zap"

	"github.com/katalvlaran/strainnet/bfs"
	"github.com/katalvlaran/strainnet/core"
)

// Build computes a spanning tree of g with the configured backend.
//
// With WithRank(k), k > 0, the input is first rank-sparsified and the result is
// marked Approximate.
//
// Errors:
//   - ErrGraphNil, ErrEmptyGraph, and backend errors.
//   - *DisconnectedError if g, or g after sparsification, is disconnected. In
//     the second case Rank is set: the rank is too low for this input.
func Build(g *core.Graph, opts ...Option) (*SpanningTree, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if g == nil {
		return nil, ErrGraphNil
	}

	in := g
	if o.Rank > 0 {
		sparse, err := RankSparsify(g, o.Rank)
		if err != nil {
			return nil, err
		}
		in = sparse
	}

	t, err := o.Backend.SpanningTree(in)
	if err != nil {
		var de *DisconnectedError
		if errors.As(err, &de) {
			if whole, cerr := bfs.Connected(g, nil); cerr == nil && whole {
				de.Rank = o.Rank
			}
			o.Logger.Warn("no spanning tree",
				zap.Int("components", len(de.Components)),
				zap.Int("rank", o.Rank))
		}
		return nil, err
	}
	t.Rank = o.Rank
	t.Approximate = o.Rank > 0

	fields := []zap.Field{
		zap.String("backend", t.Backend),
		zap.Int("vertices", len(t.Vertices)),
		zap.Int("edges", len(t.Edges)),
		zap.Float64("total", t.Total),
	}
	if t.Approximate {
		o.Logger.Info("approximate spanning tree over rank-sparsified graph",
			append(fields, zap.Int("rank", t.Rank), zap.Int("input_edges", g.EdgeCount()), zap.Int("kept_edges", in.EdgeCount()))...)
	} else {
		o.Logger.Info("exact spanning tree", fields...)
	}

	return t, nil
}
