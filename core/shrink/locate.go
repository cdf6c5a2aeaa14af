// core/shrink/locate.go
// Package shrink implements the axon-shrinking surgery: locating the spliced
// sub-segment between the dendritic and axonal annotation planes, synthesizing
// a replacement connector of controlled length, and grafting the axonal
// subtree back onto it.
package shrink

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
	"morphclone-core/morph"
)

// Boundary pins one side of the splice: the section it lies on, the index of
// the first sample strictly beyond the plane, and the plane-interpolated
// coordinate and radius at the exact crossing.
type Boundary struct {
	SectionID int
	Index     int
	Point     r3.Vec
	Radius    float64
}

// PointRef addresses one sample inside a section.
type PointRef struct {
	SectionID int
	Index     int
}

// Splice is the located splice region: the material strictly between the cut
// and graft boundaries, destined for removal. Ephemeral; recomputed per
// morphology and never persisted.
type Splice struct {
	Cut     Boundary
	Graft   Boundary
	Between []PointRef
	Upward  bool
	// Length is the Euclidean path length of the removed material, boundary
	// to boundary.
	Length float64
}

// Locate finds the splice on m delimited by the cut plane yCut and the graft
// plane yGraft along the axon's main branch (the soma-to-deepest-section
// path). Read-only.
func Locate(m *morph.Morphology, upward bool, yCut, yGraft float64) (Splice, error) {
	axon, err := axonRoot(m)
	if err != nil {
		return Splice{}, err
	}

	// Deepest axonal section by accumulated path length from the soma.
	lengths := m.SectionPathLengths(axon.ID)
	deepest, best := axon.ID, -1.0
	for id, l := range lengths {
		if l > best || (l == best && id < deepest) {
			deepest, best = id, l
		}
	}

	// Soma-to-deepest chain.
	up := m.Upstream(deepest)
	branch := make([]*morph.Section, len(up))
	for i, s := range up {
		branch[len(up)-1-i] = s
	}

	// Point-granular walk along the main branch: the cut boundary is the
	// first crossing of the cut plane, the graft boundary the first crossing
	// of the graft plane at or after it. Both may land on the same section
	// when no junction separates the planes.
	cutSec, graftSec := -1, -1
	var cut, graft Boundary
	for si, sec := range branch {
		for i, p := range sec.Points {
			if cutSec == -1 {
				if !crosses(p.Y, yCut, upward) {
					continue
				}
				cutSec = si
				cut = boundaryAt(sec, i, yCut)
			}
			if crosses(p.Y, yGraft, upward) {
				graftSec = si
				graft = boundaryAt(sec, i, yGraft)
				break
			}
		}
		if graftSec != -1 {
			break
		}
	}
	if cutSec == -1 {
		return Splice{}, fmt.Errorf("%w: no crossing of cut plane y=%g", ErrNoSectionToCut, yCut)
	}
	if graftSec == -1 {
		return Splice{}, fmt.Errorf("%w: no crossing of graft plane y=%g", ErrNoSectionToCut, yGraft)
	}

	// The splice must be a single unbranched path: every main-branch section
	// holding splice material before the graft section may have only its
	// main-branch child.
	for i := cutSec; i < graftSec; i++ {
		if n := len(branch[i].Children); n != 1 {
			return Splice{}, fmt.Errorf("%w: section %d has %d children",
				ErrSpliceForked, branch[i].ID, n)
		}
	}

	sp := Splice{Cut: cut, Graft: graft, Upward: upward}
	sp.Between, sp.Length = collect(branch[cutSec:graftSec+1], cut, graft)
	return sp, nil
}

func axonRoot(m *morph.Morphology) (*morph.Section, error) {
	var axon *morph.Section
	for _, r := range m.Roots() {
		if r.Type != morph.Axon {
			continue
		}
		if axon != nil {
			return nil, ErrTooManyAxons
		}
		axon = r
	}
	if axon == nil {
		return nil, ErrNoAxon
	}
	return axon, nil
}

// crosses reports whether y lies at or beyond the plane in the travel
// direction: strictly above for upward morphologies, at-or-below otherwise.
func crosses(y, plane float64, upward bool) bool {
	return (y > plane) == upward
}

// boundaryAt pins the boundary at sample idx of sec, the first sample beyond
// the plane, interpolating the exact crossing against the preceding sample.
// When the very first sample is already beyond, the boundary degenerates to
// that sample.
func boundaryAt(sec *morph.Section, idx int, plane float64) Boundary {
	b := Boundary{SectionID: sec.ID, Index: idx}
	if idx == 0 {
		b.Point = sec.Points[0]
		b.Radius = sec.Radii[0]
		return b
	}
	b.Point, b.Radius = yInterpolate(
		sec.Points[idx-1], sec.Points[idx], sec.Radii[idx-1], sec.Radii[idx], plane)
	return b
}

// yInterpolate returns the point and radius at the given y between p1 and p2.
func yInterpolate(p1, p2 r3.Vec, r1, r2, y float64) (r3.Vec, float64) {
	frac := 0.0
	if dy := p2.Y - p1.Y; dy != 0 {
		frac = (y - p1.Y) / dy
	}
	return r3.Add(p1, r3.Scale(frac, r3.Sub(p2, p1))), r1 + frac*(r2-r1)
}

// collect gathers the refs strictly between the boundaries and sums the
// path length boundary-to-boundary across section junctions.
func collect(chain []*morph.Section, cut, graft Boundary) ([]PointRef, float64) {
	var (
		refs   []PointRef
		length float64
		prev   = cut.Point
	)
	step := func(p r3.Vec) {
		length += r3.Norm(r3.Sub(p, prev))
		prev = p
	}
	for ci, sec := range chain {
		lo, hi := 0, len(sec.Points)
		if ci == 0 {
			lo = cut.Index
		}
		if ci == len(chain)-1 {
			hi = graft.Index
		}
		for i := lo; i < hi; i++ {
			refs = append(refs, PointRef{SectionID: sec.ID, Index: i})
			step(sec.Points[i])
		}
	}
	step(graft.Point)
	return refs, length
}
