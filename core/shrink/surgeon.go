// core/shrink/surgeon.go
package shrink

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
	"morphclone-core/morph"
)

// Apply performs the splice surgery on m, which must be a caller-owned clone:
// it trims the cut section at the cut boundary, removes everything below it,
// inserts the replacement segment, and grafts the trimmed axonal subtree onto
// the segment's tip (onto the cut section directly when the segment is
// degenerate). It returns the vertical displacement applied to the grafted
// subtree, used to shift the annotation of the written variant.
//
// Postconditions are re-validated; violations surface as morph.ErrTopology.
func Apply(m *morph.Morphology, sp Splice, seg Segment) (float64, error) {
	cutSec := m.Section(sp.Cut.SectionID)
	graftSec := m.Section(sp.Graft.SectionID)
	if cutSec == nil || graftSec == nil {
		return 0, fmt.Errorf("%w: splice sections %d/%d not in tree",
			morph.ErrTopology, sp.Cut.SectionID, sp.Graft.SectionID)
	}

	graft := extractSubtree(m, graftSec)

	// Trim the cut section so it ends exactly at the cut boundary, then drop
	// its remaining descendants (the splice material).
	trimAfter(cutSec, sp.Cut)
	for _, cid := range append([]int(nil), cutSec.Children...) {
		if err := m.DeleteSubtree(cid); err != nil {
			return 0, err
		}
	}

	// Attachment tip: the synthesized connector, or the cut tip directly for
	// a zero-length connector.
	attachID := cutSec.ID
	tip := sp.Cut.Point
	if !seg.Degenerate() {
		vertical, err := m.AppendSection(cutSec.ID, cutSec.Type, seg.Points, seg.Radii)
		if err != nil {
			return 0, err
		}
		attachID = vertical.ID
		tip = seg.End()
	}

	// Trim the graft root before the graft boundary and translate the whole
	// subtree so its first point lands on the tip. The grafted material keeps
	// its own shape and radii.
	trimBefore(graft.root, sp.Graft)
	delta := r3.Sub(tip, graft.root.Points[0])
	for i := range graft.root.Points {
		graft.root.Points[i] = r3.Add(graft.root.Points[i], delta)
	}

	newRoot, err := m.AppendSection(attachID, graft.root.Type, graft.root.Points, graft.root.Radii)
	if err != nil {
		return 0, err
	}
	if err := replant(m, graft, newRoot.ID, delta); err != nil {
		return 0, err
	}

	if err := m.Validate(); err != nil {
		return 0, err
	}
	return delta.Y, nil
}

// subtree is a detached value copy of a section subtree, preserving the
// original child ordering.
type subtree struct {
	root     *morph.Section
	children map[int][]*morph.Section // keyed by original section ID
}

func extractSubtree(m *morph.Morphology, root *morph.Section) subtree {
	st := subtree{children: make(map[int][]*morph.Section)}
	secs := m.Descendants(root.ID)
	copies := make(map[int]*morph.Section, len(secs))
	for _, s := range secs {
		c := *s
		c.Points = append([]r3.Vec(nil), s.Points...)
		c.Radii = append([]float64(nil), s.Radii...)
		copies[s.ID] = &c
	}
	for _, s := range secs {
		if s.ID == root.ID {
			st.root = copies[s.ID]
			continue
		}
		st.children[s.Parent] = append(st.children[s.Parent], copies[s.ID])
	}
	return st
}

// replant re-inserts the copied descendants under their freshly assigned
// parents, translating each by delta.
func replant(m *morph.Morphology, st subtree, newRootID int, delta r3.Vec) error {
	type frame struct {
		oldID, newID int
	}
	stack := []frame{{oldID: st.root.ID, newID: newRootID}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, child := range st.children[f.oldID] {
			for i := range child.Points {
				child.Points[i] = r3.Add(child.Points[i], delta)
			}
			added, err := m.AppendSection(f.newID, child.Type, child.Points, child.Radii)
			if err != nil {
				return err
			}
			stack = append(stack, frame{oldID: child.ID, newID: added.ID})
		}
	}
	return nil
}

// trimAfter truncates sec at the boundary: samples from the boundary index on
// are replaced by the interpolated boundary point.
func trimAfter(sec *morph.Section, b Boundary) {
	if b.Index == 0 {
		sec.Points = []r3.Vec{b.Point}
		sec.Radii = []float64{b.Radius}
		return
	}
	sec.Points = append(sec.Points[:b.Index:b.Index], b.Point)
	sec.Radii = append(sec.Radii[:b.Index:b.Index], b.Radius)
}

// trimBefore drops the samples preceding the boundary, prepending the
// interpolated boundary point unless it coincides with the first kept sample.
func trimBefore(sec *morph.Section, b Boundary) {
	if b.Index == 0 {
		// First sample already sits at or beyond the plane.
		return
	}
	if b.Point == sec.Points[b.Index] {
		sec.Points = sec.Points[b.Index:]
		sec.Radii = sec.Radii[b.Index:]
		return
	}
	sec.Points = append([]r3.Vec{b.Point}, sec.Points[b.Index:]...)
	sec.Radii = append([]float64{b.Radius}, sec.Radii[b.Index:]...)
}
