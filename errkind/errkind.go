// SPDX-License-Identifier: MIT
// Package: strainnet/errkind
//
// errkind.go: failure classes shared by every strainnet package.
//
// Error policy:
//   - Four sentinel kinds are exposed; callers branch with errors.Is.
//   - Concrete failures are *Error values carrying the operation name and the
//     offending isolate IDs; errors.As exposes them.
//   - Lower-level causes are kept in Err and reachable through errors.Unwrap.

package errkind

import (
	"errors"
	"strings"
)

// ErrMalformedInput indicates input that violates a documented shape: an edge or
// link naming an unknown isolate, a label vector whose length does not match the
// pair count, duplicate or empty IDs.
var ErrMalformedInput = errors.New("malformed input")

// ErrInconsistentGraph indicates a prior graph and clustering that disagree, or a
// request combining artifacts that cannot be combined (e.g. a tree from a
// non-self distance record).
var ErrInconsistentGraph = errors.New("inconsistent graph")

// ErrResourceUnavailable indicates a requested backend or resource that cannot be
// provided in this process.
var ErrResourceUnavailable = errors.New("resource unavailable")

// ErrDisconnected indicates a spanning tree was requested over a disconnected graph.
var ErrDisconnected = errors.New("graph is disconnected")

// Error is a classified failure.
type Error struct {
	// Kind is one of the sentinel errors above.
	Kind error
	// Op names the failing operation, e.g. "builder.FromLabels".
	Op string
	// IDs lists offending isolate IDs, if any.
	IDs []string
	// Err is an optional underlying cause or detail.
	Err error
}

// Error renders "<op>: <kind>: <detail> [ids]".
func (e *Error) Error() string {
	var sb strings.Builder
	if e.Op != "" {
		sb.WriteString(e.Op)
		sb.WriteString(": ")
	}
	if e.Kind != nil {
		sb.WriteString(e.Kind.Error())
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	if len(e.IDs) > 0 {
		sb.WriteString(" [")
		sb.WriteString(strings.Join(e.IDs, ", "))
		sb.WriteString("]")
	}

	return sb.String()
}

// Is matches the sentinel kind so errors.Is(err, ErrMalformedInput) works.
func (e *Error) Is(target error) bool {
	return e.Kind != nil && target == e.Kind
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

func newError(kind error, op, msg string, ids []string) *Error {
	var cause error
	if msg != "" {
		cause = errors.New(msg)
	}

	return &Error{Kind: kind, Op: op, IDs: ids, Err: cause}
}

// Malformed returns an ErrMalformedInput failure.
func Malformed(op, msg string, ids ...string) error {
	return newError(ErrMalformedInput, op, msg, ids)
}

// Inconsistent returns an ErrInconsistentGraph failure.
func Inconsistent(op, msg string, ids ...string) error {
	return newError(ErrInconsistentGraph, op, msg, ids)
}

// Unavailable returns an ErrResourceUnavailable failure.
func Unavailable(op, msg string, ids ...string) error {
	return newError(ErrResourceUnavailable, op, msg, ids)
}

// Wrap classifies an existing error under kind.
func Wrap(kind error, op string, err error, ids ...string) error {
	return &Error{Kind: kind, Op: op, IDs: ids, Err: err}
}

// IDs returns the offending IDs attached to err, or nil.
func IDs(err error) []string {
	var e *Error
	if errors.As(err, &e) {
		return e.IDs
	}

	return nil
}
