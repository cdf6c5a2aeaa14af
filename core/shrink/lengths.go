// core/shrink/lengths.go
package shrink

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// TargetLengths returns n connector lengths evenly spaced over the closed
// interval [0, origLen], endpoints included. For n == 1 the policy is a
// single zero-length connector (the arbor halves joined directly); this
// matches an inclusive linear grid collapsed to its lower endpoint.
func TargetLengths(origLen float64, n int) ([]float64, error) {
	if n < 1 {
		return nil, fmt.Errorf("nsamples must be >= 1, got %d", n)
	}
	if origLen < 0 {
		return nil, fmt.Errorf("%w: original length %g is negative", ErrInvalidLength, origLen)
	}
	if n == 1 {
		return []float64{0}, nil
	}
	return floats.Span(make([]float64, n), 0, origLen), nil
}
