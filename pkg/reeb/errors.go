package reeb

import "errors"

// Sentinel errors returned by the streaming and build surfaces. State
// misuse leaves the instance in its prior valid state; internal invariant
// violations panic instead, since they are programming errors.
var (
	// ErrIncorrectField is returned by Build when the scalar field does
	// not have one tuple per mesh vertex.
	ErrIncorrectField = errors.New("scalar field does not match mesh vertex count")

	// ErrNoSuchField is returned by BuildByName and BuildByIndex when the
	// requested field is not present on the mesh.
	ErrNoSuchField = errors.New("no such scalar field")

	// ErrNotSimplicial is returned when an input cell is not a triangle
	// (2D) or tetrahedron (3D), including degenerate cells with repeated
	// vertices.
	ErrNotSimplicial = errors.New("input is not a simplicial mesh")

	// ErrStreamClosed is returned by Stream* and CloseStream after the
	// stream has been closed.
	ErrStreamClosed = errors.New("stream already closed")

	// ErrStreamOpen is returned by Simplify and the publishers while the
	// stream is still open.
	ErrStreamOpen = errors.New("stream still open, call CloseStream first")

	// ErrScalarMismatch is returned when a vertex id is streamed again
	// with a different scalar value.
	ErrScalarMismatch = errors.New("vertex streamed with inconsistent scalar value")

	// ErrInvalidThreshold is returned by Simplify for thresholds outside
	// [0, 1].
	ErrInvalidThreshold = errors.New("simplification threshold outside [0,1]")

	// ErrInvalidImport is returned by Set when the imported graph violates
	// the monotonicity or endpoint invariants.
	ErrInvalidImport = errors.New("imported graph violates invariants")
)

// Wire codes for the Build surface, stable across releases.
const (
	WireOK             = 0
	WireIncorrectField = -1
	WireNoSuchField    = -2
	WireNotSimplicial  = -3
	WireInternal       = -4
)

// WireCode maps a Build error to its stable integer code. A nil error
// maps to WireOK; errors outside the Build taxonomy map to WireInternal.
func WireCode(err error) int {
	switch {
	case err == nil:
		return WireOK
	case errors.Is(err, ErrIncorrectField):
		return WireIncorrectField
	case errors.Is(err, ErrNoSuchField):
		return WireNoSuchField
	case errors.Is(err, ErrNotSimplicial):
		return WireNotSimplicial
	default:
		return WireInternal
	}
}
