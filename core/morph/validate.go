// core/morph/validate.go
package morph

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// ErrTopology marks structural invariant violations (orphans, cycles, broken
// attachment continuity, negative radii). Wrap with %w and test with
// errors.Is.
var ErrTopology = errors.New("morphology topology violation")

// ContinuityTol is the tolerance used when checking that a child section's
// first point coincides with its parent's last point.
const ContinuityTol = 1e-6

// Validate checks the structural invariants: every section reachable from
// exactly one root, parent/child links consistent, non-empty point sequences
// with matching radii, non-negative radii, and attachment continuity.
func (m *Morphology) Validate() error {
	seen := make(map[int]bool, len(m.sections))
	for _, rid := range m.roots {
		r, ok := m.sections[rid]
		if !ok {
			return fmt.Errorf("%w: root %d missing from arena", ErrTopology, rid)
		}
		if r.Parent != NoParent {
			return fmt.Errorf("%w: root %d has parent %d", ErrTopology, rid, r.Parent)
		}
		for _, s := range m.Descendants(rid) {
			if seen[s.ID] {
				return fmt.Errorf("%w: section %d reachable twice", ErrTopology, s.ID)
			}
			seen[s.ID] = true
			if err := m.validateSection(s); err != nil {
				return err
			}
		}
	}
	if len(seen) != len(m.sections) {
		for id := range m.sections {
			if !seen[id] {
				return fmt.Errorf("%w: section %d unreachable from any root", ErrTopology, id)
			}
		}
	}
	return nil
}

func (m *Morphology) validateSection(s *Section) error {
	if len(s.Points) == 0 {
		return fmt.Errorf("%w: section %d has no points", ErrTopology, s.ID)
	}
	if len(s.Points) != len(s.Radii) {
		return fmt.Errorf("%w: section %d has %d points but %d radii",
			ErrTopology, s.ID, len(s.Points), len(s.Radii))
	}
	for i, r := range s.Radii {
		if r < 0 {
			return fmt.Errorf("%w: section %d point %d has negative radius %g",
				ErrTopology, s.ID, i, r)
		}
	}
	for _, cid := range s.Children {
		c, ok := m.sections[cid]
		if !ok {
			return fmt.Errorf("%w: section %d lists missing child %d", ErrTopology, s.ID, cid)
		}
		if c.Parent != s.ID {
			return fmt.Errorf("%w: section %d claims child %d whose parent is %d",
				ErrTopology, s.ID, cid, c.Parent)
		}
		if len(c.Points) > 0 && r3.Norm(r3.Sub(c.Points[0], s.Last())) > ContinuityTol {
			return fmt.Errorf("%w: child %d first point %v detached from parent %d last point %v",
				ErrTopology, cid, c.Points[0], s.ID, s.Last())
		}
	}
	return nil
}
