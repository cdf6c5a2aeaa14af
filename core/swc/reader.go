// core/swc/reader.go
// Package swc reads and writes the SWC neuron-morphology exchange format:
// one sample per line, "id type x y z radius parent", '#' comments, parents
// declared before children. Sections are maximal unbranched sample chains;
// a non-root section's first point duplicates its parent's last point so the
// in-memory tree satisfies the attachment-continuity invariant.
package swc

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
	"morphclone-core/morph"
)

type sample struct {
	id     int
	typ    morph.Type
	point  r3.Vec
	radius float64
	parent int
}

// Read parses the morphology file at path (gzip transparent).
func Read(path string) (*morph.Morphology, error) {
	rc, err := openReader(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	m, err := Parse(rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Parse reads SWC samples from r and assembles the section tree.
func Parse(r io.Reader) (*morph.Morphology, error) {
	samples, order, err := scan(r)
	if err != nil {
		return nil, err
	}
	return assemble(samples, order)
}

func scan(r io.Reader) (map[int]*sample, []int, error) {
	samples := make(map[int]*sample)
	var order []int

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), 1<<20)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		f := strings.Fields(line)
		if len(f) != 7 {
			return nil, nil, fmt.Errorf("line %d: expected 7 fields, got %d", lineNo, len(f))
		}
		var (
			s    sample
			errs [7]error
		)
		s.id, errs[0] = strconv.Atoi(f[0])
		var typ int
		typ, errs[1] = strconv.Atoi(f[1])
		s.typ = morph.Type(typ)
		s.point.X, errs[2] = strconv.ParseFloat(f[2], 64)
		s.point.Y, errs[3] = strconv.ParseFloat(f[3], 64)
		s.point.Z, errs[4] = strconv.ParseFloat(f[4], 64)
		s.radius, errs[5] = strconv.ParseFloat(f[5], 64)
		s.parent, errs[6] = strconv.Atoi(f[6])
		for _, e := range errs {
			if e != nil {
				return nil, nil, fmt.Errorf("line %d: %w", lineNo, e)
			}
		}
		if s.radius < 0 {
			return nil, nil, fmt.Errorf("line %d: negative radius %g", lineNo, s.radius)
		}
		if _, dup := samples[s.id]; dup {
			return nil, nil, fmt.Errorf("line %d: duplicate sample id %d", lineNo, s.id)
		}
		if s.parent != -1 {
			if _, ok := samples[s.parent]; !ok {
				return nil, nil, fmt.Errorf("line %d: sample %d references undeclared parent %d",
					lineNo, s.id, s.parent)
			}
		}
		cp := s
		samples[s.id] = &cp
		order = append(order, s.id)
	}
	if err := sc.Err(); err != nil {
		return nil, nil, err
	}
	if len(order) == 0 {
		return nil, nil, fmt.Errorf("no samples found")
	}
	return samples, order, nil
}

func assemble(samples map[int]*sample, order []int) (*morph.Morphology, error) {
	children := make(map[int][]int, len(samples))
	for _, id := range order {
		s := samples[id]
		if s.parent != -1 {
			children[s.parent] = append(children[s.parent], id)
		}
	}

	m := morph.New()
	for _, id := range order {
		s := samples[id]
		if s.typ != morph.Soma {
			continue
		}
		if m.Soma == nil {
			m.Soma = &morph.SomaPoints{}
		}
		m.Soma.Points = append(m.Soma.Points, s.point)
		m.Soma.Radii = append(m.Soma.Radii, s.radius)
	}

	isSoma := func(id int) bool { return id != -1 && samples[id].typ == morph.Soma }

	// Root sections hang off the soma (or off nothing); descendant sections
	// are discovered recursively at branch points.
	for _, id := range order {
		s := samples[id]
		if s.typ == morph.Soma {
			continue
		}
		if s.parent != -1 && !isSoma(s.parent) {
			continue
		}
		if err := buildSection(m, samples, children, s, morph.NoParent, nil); err != nil {
			return nil, err
		}
	}

	// Unreachable neurite samples mean a cycle or a detached cluster.
	counted := 0
	for _, sec := range allSections(m) {
		counted += len(sec.Points)
		if sec.Parent != morph.NoParent {
			counted-- // junction duplicate is not an SWC sample
		}
	}
	somaN := 0
	if m.Soma != nil {
		somaN = len(m.Soma.Points)
	}
	if counted+somaN != len(samples) {
		return nil, fmt.Errorf("%d samples unreachable from any root", len(samples)-counted-somaN)
	}
	return m, nil
}

// buildSection walks an unbranched chain starting at head, appends it to m,
// and recurses into branch children. parentSec is the morph section to attach
// to; junction holds the parent's last point/radius for the duplicate-first
// convention.
func buildSection(m *morph.Morphology, samples map[int]*sample, children map[int][]int,
	head *sample, parentSec int, junction *sample) error {

	var (
		points []r3.Vec
		radii  []float64
	)
	if junction != nil {
		points = append(points, junction.point)
		radii = append(radii, junction.radius)
	}

	cur := head
	for {
		points = append(points, cur.point)
		radii = append(radii, cur.radius)
		kids := children[cur.id]
		if len(kids) != 1 {
			break
		}
		next := samples[kids[0]]
		if next.typ == morph.Soma {
			return fmt.Errorf("sample %d: soma sample attached below neurite %d", next.id, cur.id)
		}
		cur = next
	}

	var sec *morph.Section
	if parentSec == morph.NoParent {
		sec = m.AddRoot(head.typ, points, radii)
	} else {
		var err error
		sec, err = m.AppendSection(parentSec, head.typ, points, radii)
		if err != nil {
			return err
		}
	}

	for _, kid := range children[cur.id] {
		if err := buildSection(m, samples, children, samples[kid], sec.ID, cur); err != nil {
			return err
		}
	}
	return nil
}

func allSections(m *morph.Morphology) []*morph.Section {
	var out []*morph.Section
	for _, r := range m.Roots() {
		out = append(out, m.Descendants(r.ID)...)
	}
	return out
}
