package morph

import "gonum.org/v1/gonum/spatial/r3"

// Descendants returns the section and all its descendants, depth-first,
// children in insertion order. Unknown IDs yield nil.
func (m *Morphology) Descendants(id int) []*Section {
	root, ok := m.sections[id]
	if !ok {
		return nil
	}
	out := []*Section{root}
	for i := 0; i < len(out); i++ {
		for _, cid := range out[i].Children {
			if c := m.sections[cid]; c != nil {
				out = append(out, c)
			}
		}
	}
	return out
}

// Upstream returns the chain from the section up to its root, inclusive.
func (m *Morphology) Upstream(id int) []*Section {
	var out []*Section
	for s := m.sections[id]; s != nil; {
		out = append(out, s)
		if s.Parent == NoParent {
			break
		}
		s = m.sections[s.Parent]
	}
	return out
}

// SectionPathLengths maps every section under root to the summed section
// path lengths from the root down to and including that section.
func (m *Morphology) SectionPathLengths(root int) map[int]float64 {
	own := make(map[int]float64)
	for _, s := range m.Descendants(root) {
		own[s.ID] = s.PathLength()
	}
	total := make(map[int]float64, len(own))
	for id := range own {
		sum := 0.0
		for _, up := range m.Upstream(id) {
			sum += own[up.ID]
		}
		total[id] = sum
	}
	return total
}

// TranslateSubtree shifts every point of the section and its descendants.
func (m *Morphology) TranslateSubtree(id int, delta r3.Vec) {
	for _, s := range m.Descendants(id) {
		for i := range s.Points {
			s.Points[i] = r3.Add(s.Points[i], delta)
		}
	}
}
