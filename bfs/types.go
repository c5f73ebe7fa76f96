// SPDX-License-Identifier: MIT

package bfs

import "errors"

var (
	// ErrStartVertexNotFound indicates a seed vertex is not in the graph.
	ErrStartVertexNotFound = errors.New("bfs: start vertex not found")

	// ErrGraphNil indicates a nil graph was passed.
	ErrGraphNil = errors.New("bfs: graph is nil")

	// ErrNeighbors wraps failures while listing neighbours.
	ErrNeighbors = errors.New("bfs: neighbor iteration error")
)
