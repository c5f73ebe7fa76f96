// SPDX-License-Identifier: MIT
// Package: strainnet/builder
//
// errors.go: method names and error helpers for the builder package.
//
// Error policy:
//   - Every failure is classified through errkind (ErrMalformedInput for shape
//     and reference violations); callers branch with errors.Is.
//   - Offending isolate IDs are attached so errors.As(err, *errkind.Error) can
//     report them.
//   - Option constructors (WithX) panic on meaningless values; constructors
//     themselves never panic.

package builder

import (
	"fmt"

	"github.com/katalvlaran/strainnet/errkind"
)

// Canonical operation names used as error context.
const (
	MethodFromLabels   = "builder.FromLabels"
	MethodFromEdgeList = "builder.FromEdgeList"
	MethodFromSparse   = "builder.FromSparse"
)

// builderErrorf returns an ErrMalformedInput failure for method with a formatted detail.
func builderErrorf(method string, ids []string, format string, args ...interface{}) error {
	return errkind.Malformed(method, fmt.Sprintf(format, args...), ids...)
}
