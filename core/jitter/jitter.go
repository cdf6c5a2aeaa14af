// core/jitter/jitter.go
// Package jitter produces morphology clones by randomly rotating and scaling
// sections, and provides the deterministic constant-factor scaling used by
// the scale tool. Diameters are never scaled.
package jitter

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
	"morphclone-core/morph"
)

// ScaleParameters is the normal law for a scaling factor: the sampled factor
// is 1 + Mean + Std*N(0,1), clipped to the minimum below.
type ScaleParameters struct {
	Mean float64
	Std  float64
}

// RotationParameters drives the rotational jitter: angles in degrees, and the
// number of trailing parent points used to estimate a leaf's rotation axis.
type RotationParameters struct {
	MeanAngle   float64
	StdAngle    float64
	NumberPoint int
}

// minScale limits a sampled scaling factor to 1% of the original length.
const minScale = 0.01

func clip(f float64) float64 { return math.Max(f, minScale) }

// RotationalJitter rotates every section subtree, leaf-first: leaves rotate
// about the direction of their parent's trailing points, internal sections
// about the principal direction of their own subtree. src may be nil for the
// global source.
func RotationalJitter(m *morph.Morphology, p RotationParameters, src rand.Source) {
	angle := distuv.Normal{Mu: p.MeanAngle, Sigma: p.StdAngle, Src: src}
	for _, root := range m.Roots() {
		rotateSubtree(m, root, p, angle)
	}
}

func rotateSubtree(m *morph.Morphology, sec *morph.Section, p RotationParameters, angle distuv.Normal) {
	for _, cid := range sec.Children {
		rotateSubtree(m, m.Section(cid), p, angle)
	}
	if sec.Parent == morph.NoParent {
		return
	}

	var dir r3.Vec
	if len(sec.Children) == 0 {
		parent := m.Section(sec.Parent)
		n := p.NumberPoint
		if n > len(parent.Points) {
			n = len(parent.Points)
		}
		if n < 1 {
			n = 1
		}
		dir = r3.Sub(parent.Last(), parent.Points[len(parent.Points)-n])
	} else {
		dir = principalDirection(m, sec)
	}
	norm := r3.Norm(dir)
	if norm == 0 {
		return
	}
	dir = r3.Scale(1/norm, dir)

	theta := angle.Rand() * math.Pi / 180
	rot := r3.NewRotation(theta, dir)
	origin := sec.Points[0]
	for _, s := range m.Descendants(sec.ID) {
		for i, pt := range s.Points {
			s.Points[i] = r3.Add(origin, rot.Rotate(r3.Sub(pt, origin)))
		}
	}
}

// principalDirection is the first principal component of the normalized
// directions from the section start to every downstream point.
func principalDirection(m *morph.Morphology, sec *morph.Section) r3.Vec {
	p0 := sec.Points[0]
	var rows []float64
	for _, s := range m.Descendants(sec.ID) {
		// Skip each section's first point: it duplicates the parent's last.
		for _, pt := range s.Points[1:] {
			d := r3.Sub(pt, p0)
			n := r3.Norm(d)
			if n == 0 {
				continue
			}
			rows = append(rows, d.X/n, d.Y/n, d.Z/n)
		}
	}
	if len(rows) < 6 {
		// Too few points for a stable component; use the raw end direction.
		return r3.Sub(sec.Last(), p0)
	}
	var pc stat.PC
	data := mat.NewDense(len(rows)/3, 3, rows)
	if !pc.PrincipalComponents(data, nil) {
		return r3.Sub(sec.Last(), p0)
	}
	var vecs mat.Dense
	pc.VectorsTo(&vecs)
	return r3.Vec{X: vecs.At(0, 0), Y: vecs.At(1, 0), Z: vecs.At(2, 0)}
}

// ScalingJitter rescales sections leaf-first: each segment vector by its own
// sampled factor, then the whole section by a section-level factor. Child
// subtrees are translated to stay attached. src may be nil.
func ScalingJitter(m *morph.Morphology, segment, section ScaleParameters, src rand.Source) {
	segDist := distuv.Normal{Mu: 1 + segment.Mean, Sigma: segment.Std, Src: src}
	secDist := distuv.Normal{Mu: 1 + section.Mean, Sigma: section.Std, Src: src}
	for _, root := range m.Roots() {
		scaleSubtree(m, root, segDist, secDist)
	}
}

// ScaleMorphology applies a constant scaling factor to every section's shape.
// Note: it does not scale the radii.
func ScaleMorphology(m *morph.Morphology, factor float64) {
	fixed := distuv.Normal{Mu: factor, Sigma: 0}
	one := distuv.Normal{Mu: 1, Sigma: 0}
	for _, root := range m.Roots() {
		scaleSubtree(m, root, one, fixed)
	}
}

func scaleSubtree(m *morph.Morphology, sec *morph.Section, segDist, secDist distuv.Normal) {
	for _, cid := range sec.Children {
		scaleSubtree(m, m.Section(cid), segDist, secDist)
	}

	// Per-segment jitter over the cumulative segment vectors.
	cum := make([]r3.Vec, len(sec.Points))
	for i := 1; i < len(sec.Points); i++ {
		v := r3.Sub(sec.Points[i], sec.Points[i-1])
		v = r3.Scale(clip(segDist.Rand()), v)
		cum[i] = r3.Add(cum[i-1], v)
	}

	sectionFactor := clip(secDist.Rand())
	oldLast := sec.Last()
	for i := range sec.Points {
		sec.Points[i] = r3.Add(sec.Points[0], r3.Scale(sectionFactor, cum[i]))
	}

	// Keep already-rescaled children attached to the moved section end.
	delta := r3.Sub(sec.Last(), oldLast)
	for _, cid := range sec.Children {
		m.TranslateSubtree(cid, delta)
	}
}
