// core/morph/morph.go
// Package morph models a neuron morphology as an arena of sections keyed by
// integer ID. Parent/child relations are ID references, so re-parenting is an
// O(1) update and a variant copy is a plain value copy of the arena.
package morph

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

// Type is the SWC structure identifier of a section. Values above Custom are
// preserved verbatim so non-standard reconstructions round-trip.
type Type int

const (
	Undefined Type = 0
	Soma      Type = 1
	Axon      Type = 2
	BasalDendrite  Type = 3
	ApicalDendrite Type = 4
	Custom    Type = 5
)

func (t Type) String() string {
	switch t {
	case Soma:
		return "soma"
	case Axon:
		return "axon"
	case BasalDendrite:
		return "basal_dendrite"
	case ApicalDendrite:
		return "apical_dendrite"
	case Undefined:
		return "undefined"
	}
	return fmt.Sprintf("custom(%d)", int(t))
}

// NoParent marks a root section.
const NoParent = -1

// Section is a contiguous, unbranched run of points. For a non-root section
// the first point duplicates the parent's last point (attachment continuity).
type Section struct {
	ID       int
	Type     Type
	Parent   int // NoParent for roots
	Children []int
	Points   []r3.Vec
	Radii    []float64
}

// Last returns the child-attachment end of the section.
func (s *Section) Last() r3.Vec { return s.Points[len(s.Points)-1] }

// LastRadius returns the radius at the child-attachment end.
func (s *Section) LastRadius() float64 { return s.Radii[len(s.Radii)-1] }

// PathLength is the sum of Euclidean segment lengths within the section.
func (s *Section) PathLength() float64 {
	total := 0.0
	for i := 1; i < len(s.Points); i++ {
		total += r3.Norm(r3.Sub(s.Points[i], s.Points[i-1]))
	}
	return total
}

func (s *Section) clone() *Section {
	c := *s
	c.Children = append([]int(nil), s.Children...)
	c.Points = append([]r3.Vec(nil), s.Points...)
	c.Radii = append([]float64(nil), s.Radii...)
	return &c
}

// SomaPoints holds the soma samples. The soma is not part of the section
// arena; neurites are roots in their own right, as in common exchange tools.
type SomaPoints struct {
	Points []r3.Vec
	Radii  []float64
}

func (sp *SomaPoints) clone() *SomaPoints {
	if sp == nil {
		return nil
	}
	return &SomaPoints{
		Points: append([]r3.Vec(nil), sp.Points...),
		Radii:  append([]float64(nil), sp.Radii...),
	}
}

// Morphology is a root-anchored acyclic forest of sections plus an optional
// soma.
type Morphology struct {
	Soma *SomaPoints

	sections map[int]*Section
	roots    []int
	nextID   int
}

// New returns an empty morphology.
func New() *Morphology {
	return &Morphology{sections: make(map[int]*Section)}
}

// Section looks up a section by ID; nil if absent.
func (m *Morphology) Section(id int) *Section { return m.sections[id] }

// Roots returns the root sections in insertion order.
func (m *Morphology) Roots() []*Section {
	out := make([]*Section, 0, len(m.roots))
	for _, id := range m.roots {
		out = append(out, m.sections[id])
	}
	return out
}

// IDs returns all section IDs in ascending order.
func (m *Morphology) IDs() []int {
	ids := make([]int, 0, len(m.sections))
	for id := range m.sections {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Len reports the number of sections.
func (m *Morphology) Len() int { return len(m.sections) }

// AddRoot inserts a new root section and returns it.
func (m *Morphology) AddRoot(t Type, points []r3.Vec, radii []float64) *Section {
	s := &Section{
		ID:     m.nextID,
		Type:   t,
		Parent: NoParent,
		Points: append([]r3.Vec(nil), points...),
		Radii:  append([]float64(nil), radii...),
	}
	m.nextID++
	m.sections[s.ID] = s
	m.roots = append(m.roots, s.ID)
	return s
}

// AppendSection inserts a new section as the last child of parent.
func (m *Morphology) AppendSection(parent int, t Type, points []r3.Vec, radii []float64) (*Section, error) {
	p, ok := m.sections[parent]
	if !ok {
		return nil, fmt.Errorf("append section: unknown parent %d", parent)
	}
	s := &Section{
		ID:     m.nextID,
		Type:   t,
		Parent: parent,
		Points: append([]r3.Vec(nil), points...),
		Radii:  append([]float64(nil), radii...),
	}
	m.nextID++
	m.sections[s.ID] = s
	p.Children = append(p.Children, s.ID)
	return s, nil
}

// DeleteSubtree removes the section and every descendant from the arena,
// unlinking it from its parent (or the root list).
func (m *Morphology) DeleteSubtree(id int) error {
	s, ok := m.sections[id]
	if !ok {
		return fmt.Errorf("delete subtree: unknown section %d", id)
	}
	if s.Parent == NoParent {
		m.roots = removeID(m.roots, id)
	} else if p := m.sections[s.Parent]; p != nil {
		p.Children = removeID(p.Children, id)
	}
	for _, sec := range m.Descendants(id) {
		delete(m.sections, sec.ID)
	}
	return nil
}

// Clone deep-copies the morphology. Mutating the clone never affects the
// receiver; the batch driver relies on this to produce independent variants.
func (m *Morphology) Clone() *Morphology {
	c := &Morphology{
		Soma:     m.Soma.clone(),
		sections: make(map[int]*Section, len(m.sections)),
		roots:    append([]int(nil), m.roots...),
		nextID:   m.nextID,
	}
	for id, s := range m.sections {
		c.sections[id] = s.clone()
	}
	return c
}

func removeID(ids []int, id int) []int {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
