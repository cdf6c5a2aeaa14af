// core/shrink/synth.go
package shrink

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Axis selects the direction of the synthesized replacement connector.
type Axis int

const (
	// AxisVertical directs the connector along the global Y axis, signed by
	// the morphology's orientation.
	AxisVertical Axis = iota
	// AxisLocal directs the connector along the removed segment's own
	// cut-to-graft direction.
	AxisLocal
)

func (a Axis) String() string {
	if a == AxisLocal {
		return "local"
	}
	return "vertical"
}

// ParseAxis maps the CLI spelling to an Axis.
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "vertical":
		return AxisVertical, nil
	case "local":
		return AxisLocal, nil
	}
	return AxisVertical, fmt.Errorf("invalid axis %q (want vertical|local)", s)
}

// lengthTol absorbs floating-point drift when validating target lengths.
const lengthTol = 1e-9

// Segment is a synthesized replacement connector. A zero target length
// degenerates to the single cut-boundary point, which joins the two arbor
// halves directly.
type Segment struct {
	Points []r3.Vec
	Radii  []float64
}

// Degenerate reports whether the segment carries no material of its own.
func (s Segment) Degenerate() bool { return len(s.Points) < 2 }

// End returns the attachment tip for the grafted subtree.
func (s Segment) End() r3.Vec { return s.Points[len(s.Points)-1] }

// Synthesize builds the replacement segment for sp with the exact Euclidean
// length target, anchored at the cut boundary and directed along axis. The
// endpoint radius is linearly interpolated between the boundary radii in
// proportion target/sp.Length, so radii vary continuously as the length is
// swept across a sample family. Pure function.
func Synthesize(sp Splice, target float64, axis Axis) (Segment, error) {
	if target < -lengthTol || target > sp.Length+lengthTol {
		return Segment{}, fmt.Errorf("%w: %g not in [0, %g]", ErrInvalidLength, target, sp.Length)
	}
	if target <= lengthTol {
		return Segment{
			Points: []r3.Vec{sp.Cut.Point},
			Radii:  []float64{sp.Cut.Radius},
		}, nil
	}

	dir := direction(sp, axis)
	endRadius := sp.Cut.Radius
	if sp.Length > 0 {
		endRadius += (sp.Graft.Radius - sp.Cut.Radius) * target / sp.Length
	}
	return Segment{
		Points: []r3.Vec{sp.Cut.Point, r3.Add(sp.Cut.Point, r3.Scale(target, dir))},
		Radii:  []float64{sp.Cut.Radius, endRadius},
	}, nil
}

func direction(sp Splice, axis Axis) r3.Vec {
	if axis == AxisLocal {
		d := r3.Sub(sp.Graft.Point, sp.Cut.Point)
		if n := r3.Norm(d); n > lengthTol && !math.IsNaN(n) {
			return r3.Scale(1/n, d)
		}
		// Coincident boundaries: fall through to the vertical default.
	}
	if sp.Upward {
		return r3.Vec{Y: 1}
	}
	return r3.Vec{Y: -1}
}
