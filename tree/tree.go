// SPDX-License-Identifier: MIT

// Package tree converts spanning trees into phylogeny-style trees and renders
// them in Newick notation.
//
// Every spanning tree edge becomes a branch whose length is the edge weight.
// By default each isolate is a leaf: an isolate with children in the spanning
// tree becomes an unlabelled internal node holding the isolate as a zero-length
// leaf next to its subtrees. WithInternalLabels keeps such isolates as labelled
// internal nodes instead.
package tree

import (
	"errors"
	"sort"

	"github.com/katalvlaran/strainnet/core"
	"github.com/katalvlaran/strainnet/errkind"
	"github.com/katalvlaran/strainnet/mst"
)

const op = "tree.FromSpanningTree"

// ErrNilTree indicates a nil spanning tree was passed.
var ErrNilTree = errors.New("tree: spanning tree is nil")

// Node is one tree node.
type Node struct {
	// Label is the isolate ID; empty for unlabelled internal nodes.
	Label string
	// Length is the branch length to the parent; 0 at the root.
	Length float64
	// Children are ordered by (branch length, label).
	Children []*Node
}

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Tree is a phylogeny-style view of a spanning tree.
type Tree struct {
	Root *Node
	// Rooted is true when the caller chose the root. Otherwise the root is the
	// highest-degree isolate and only fixes the rendering.
	Rooted bool
	// Approximate is copied from the spanning tree.
	Approximate bool
}

// Options configures FromSpanningTree.
type Options struct {
	// Root is the isolate to root at; empty picks the highest-degree isolate
	// (smallest ID on ties) and yields an unrooted tree.
	Root string
	// InternalLabels keeps isolates with children as labelled internal nodes.
	InternalLabels bool
}

// Option customizes Options.
type Option func(*Options)

// WithRoot roots the tree at id.
func WithRoot(id string) Option { return func(o *Options) { o.Root = id } }

// WithInternalLabels keeps isolates with children as labelled internal nodes.
func WithInternalLabels() Option { return func(o *Options) { o.InternalLabels = true } }

type arc struct {
	to string
	w  float64
}

// FromSpanningTree builds the tree for st.
//
// Errors:
//   - ErrNilTree.
//   - errkind.ErrMalformedInput if an edge names an isolate outside st.Vertices
//     or st has no vertices.
//   - errkind.ErrInconsistentGraph if the edges do not form a single tree.
//   - errkind.ErrMalformedInput wrapping core.ErrVertexNotFound for an unknown root.
func FromSpanningTree(st *mst.SpanningTree, opts ...Option) (*Tree, error) {
	if st == nil {
		return nil, ErrNilTree
	}
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	if len(st.Vertices) == 0 {
		return nil, errkind.Malformed(op, "spanning tree has no vertices")
	}

	adj := make(map[string][]arc, len(st.Vertices))
	for _, v := range st.Vertices {
		adj[v] = nil
	}
	var unknown []string
	for _, e := range st.Edges {
		for _, id := range []string{e.From, e.To} {
			if _, ok := adj[id]; !ok {
				unknown = append(unknown, id)
			}
		}
		adj[e.From] = append(adj[e.From], arc{to: e.To, w: e.Weight})
		adj[e.To] = append(adj[e.To], arc{to: e.From, w: e.Weight})
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, errkind.Malformed(op, "edge names an isolate outside the tree", unknown...)
	}
	if len(st.Edges) != len(st.Vertices)-1 {
		return nil, errkind.Inconsistent(op, "edge count is not vertex count - 1")
	}

	t := &Tree{Rooted: o.Root != "", Approximate: st.Approximate}
	root := o.Root
	if root == "" {
		root = hub(st.Vertices, adj)
	} else if _, ok := adj[root]; !ok {
		return nil, errkind.Wrap(errkind.ErrMalformedInput, op, core.ErrVertexNotFound, root)
	}

	b := &builder{adj: adj, seen: make(map[string]bool, len(adj)), labels: o.InternalLabels}
	t.Root = b.node(root, "", 0)
	if len(b.seen) != len(adj) {
		var missing []string
		for v := range adj {
			if !b.seen[v] {
				missing = append(missing, v)
			}
		}
		sort.Strings(missing)
		return nil, errkind.Inconsistent(op, "edges do not connect every isolate", missing...)
	}

	return t, nil
}

// hub returns the highest-degree vertex, smallest ID on ties.
func hub(vertices []string, adj map[string][]arc) string {
	sorted := append([]string(nil), vertices...)
	sort.Strings(sorted)
	best := sorted[0]
	for _, v := range sorted[1:] {
		if len(adj[v]) > len(adj[best]) {
			best = v
		}
	}

	return best
}

type builder struct {
	adj    map[string][]arc
	seen   map[string]bool
	labels bool
}

// node builds the subtree of v reached from parent over a branch of length w.
func (b *builder) node(v, parent string, w float64) *Node {
	b.seen[v] = true
	var kids []arc
	for _, a := range b.adj[v] {
		if a.to != parent && !b.seen[a.to] {
			kids = append(kids, a)
		}
	}
	sort.Slice(kids, func(i, j int) bool {
		if kids[i].w != kids[j].w {
			return kids[i].w < kids[j].w
		}
		return kids[i].to < kids[j].to
	})

	n := &Node{Label: v, Length: w}
	if len(kids) == 0 {
		return n
	}
	if !b.labels {
		n.Label = ""
		n.Children = append(n.Children, &Node{Label: v})
	}
	for _, a := range kids {
		// A cycle would revisit a vertex; skip it and let the seen count report it.
		if b.seen[a.to] {
			continue
		}
		n.Children = append(n.Children, b.node(a.to, v, a.w))
	}

	return n
}

// Labels returns every isolate label in pre-order.
func (t *Tree) Labels() []string {
	var out []string
	t.Walk(func(n *Node) {
		if n.Label != "" {
			out = append(out, n.Label)
		}
	})

	return out
}

// TotalLength sums every branch length.
func (t *Tree) TotalLength() float64 {
	total := 0.0
	t.Walk(func(n *Node) { total += n.Length })

	return total
}

// Walk visits every node in pre-order.
func (t *Tree) Walk(fn func(*Node)) {
	var rec func(*Node)
	rec = func(n *Node) {
		fn(n)
		for _, c := range n.Children {
			rec(c)
		}
	}
	if t.Root != nil {
		rec(t.Root)
	}
}
