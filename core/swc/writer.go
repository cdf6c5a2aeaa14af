// core/swc/writer.go
package swc

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"gonum.org/v1/gonum/spatial/r3"
	"morphclone-core/morph"
)

// WriteFile writes the morphology to path in SWC format.
func WriteFile(path string, m *morph.Morphology) error {
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(fh, m); err != nil {
		_ = fh.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return fh.Close()
}

// Write emits the soma chain first, then every neurite section depth-first.
// The junction duplicate at the head of non-root sections is skipped; its
// sample is the parent section's last emitted sample.
func Write(w io.Writer, m *morph.Morphology) error {
	bw := bufio.NewWriter(w)
	next := 1

	somaRoot := -1
	if m.Soma != nil && len(m.Soma.Points) > 0 {
		parent := -1
		for i, p := range m.Soma.Points {
			if err := emit(bw, next, morph.Soma, p, m.Soma.Radii[i], parent); err != nil {
				return err
			}
			parent = next
			next++
		}
		somaRoot = 1
	}

	// lastSample maps a section ID to the SWC id of its final point.
	lastSample := make(map[int]int, m.Len())
	for _, root := range m.Roots() {
		for _, sec := range m.Descendants(root.ID) {
			start := 0
			parent := somaRoot
			if sec.Parent != morph.NoParent {
				start = 1 // junction duplicate
				parent = lastSample[sec.Parent]
			}
			if start >= len(sec.Points) {
				return fmt.Errorf("section %d has no points beyond its junction", sec.ID)
			}
			for i := start; i < len(sec.Points); i++ {
				if err := emit(bw, next, sec.Type, sec.Points[i], sec.Radii[i], parent); err != nil {
					return err
				}
				parent = next
				next++
			}
			lastSample[sec.ID] = next - 1
		}
	}
	return bw.Flush()
}

func emit(w io.Writer, id int, t morph.Type, p r3.Vec, radius float64, parent int) error {
	_, err := fmt.Fprintf(w, "%d %d %s %s %s %s %d\n",
		id, int(t), g(p.X), g(p.Y), g(p.Z), g(radius), parent)
	return err
}

func g(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
