// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: Vertex, Edge and Graph declarations, sentinel errors, graph options.
// Concurrency:
//   - muVert guards vertices and the vertex sequence.
//   - muEdgeAdj guards edges and adjacency.
//   - Lock order is always muVert -> muEdgeAdj.

package core

import (
	"errors"
	"sync"
)

// Sentinel errors for core graph operations.
var (
	// ErrEmptyVertexID indicates that a vertex ID is the empty string.
	ErrEmptyVertexID = errors.New("core: vertex ID is empty")

	// ErrVertexNotFound indicates an operation referenced a non-existent vertex.
	ErrVertexNotFound = errors.New("core: vertex not found")

	// ErrEdgeNotFound indicates an operation referenced a non-existent edge.
	ErrEdgeNotFound = errors.New("core: edge not found")

	// ErrBadWeight indicates a negative, NaN or infinite edge weight.
	ErrBadWeight = errors.New("core: edge weight must be finite and non-negative")

	// ErrLoopNotAllowed indicates an attempt to connect a vertex to itself.
	ErrLoopNotAllowed = errors.New("core: self-loops not allowed")
)

// Vertex is a single isolate in the graph.
type Vertex struct {
	// ID is the isolate identifier; never empty.
	ID string

	// Seq is the 1-based position at which the vertex entered the graph.
	Seq uint64
}

// Edge is an undirected, weighted connection between two distinct vertices.
// From/To keep the orientation of the first observation; the edge is symmetric.
type Edge struct {
	ID     string
	From   string
	To     string
	Weight float64

	// Seq is the monotonic insertion sequence of the pair. It is assigned on the
	// first observation and never changes when later observations are merged.
	Seq uint64
}

// Other returns the endpoint of e opposite to id, or "" if id is not an endpoint.
func (e *Edge) Other(id string) string {
	switch id {
	case e.From:
		return e.To
	case e.To:
		return e.From
	default:
		return ""
	}
}

// Graph is an undirected weighted graph over string vertex IDs.
type Graph struct {
	muVert    sync.RWMutex
	muEdgeAdj sync.RWMutex

	// nextEdgeID is advanced atomically; Edge.Seq and Edge.ID derive from it.
	nextEdgeID uint64

	// nextVertexSeq is guarded by muVert.
	nextVertexSeq uint64

	vertices map[string]*Vertex
	edges    map[string]*Edge

	// adjacency[u][v] = edge ID, mirrored for both endpoints.
	adjacency map[string]map[string]string
}

// GraphOption configures a Graph at construction time.
type GraphOption func(g *Graph)

// WithCapacity pre-sizes the vertex and edge catalogs.
func WithCapacity(vertices, edges int) GraphOption {
	return func(g *Graph) {
		if vertices > 0 {
			g.vertices = make(map[string]*Vertex, vertices)
			g.adjacency = make(map[string]map[string]string, vertices)
		}
		if edges > 0 {
			g.edges = make(map[string]*Edge, edges)
		}
	}
}

// NewGraph returns an empty graph configured by opts.
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{
		vertices:  make(map[string]*Vertex),
		edges:     make(map[string]*Edge),
		adjacency: make(map[string]map[string]string),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}
