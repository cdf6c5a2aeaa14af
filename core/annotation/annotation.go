// core/annotation/annotation.go
// Package annotation reads and writes the XML placement rules that mark
// where a morphology's dendritic arbor ends and its axonal arbor begins:
//
//	<annotations>
//	  <placement type="dendrite" y_min="..." y_max="..."/>
//	  <placement type="axon"     y_min="..." y_max="..."/>
//	</annotations>
package annotation

import (
	"encoding/xml"
	"errors"
	"fmt"
	"os"
)

var (
	// ErrNoAxonRule is returned when the annotation lacks an axon rule.
	ErrNoAxonRule = errors.New("annotation has no axon rule")
	// ErrNoDendriteRule is returned when the annotation lacks a dendrite rule.
	ErrNoDendriteRule = errors.New("annotation has no dendrite rule")
)

// Rule is one placement rule: the vertical window of an arbor type.
type Rule struct {
	Type string  `xml:"type,attr"`
	YMin float64 `xml:"y_min,attr"`
	YMax float64 `xml:"y_max,attr"`
}

// Document is one morphology's annotation file.
type Document struct {
	XMLName xml.Name `xml:"annotations"`
	Rules   []Rule   `xml:"placement"`
}

// Read parses the annotation file at path.
func Read(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var d Document
	if err := xml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &d, nil
}

// Rule returns the first rule of the given type.
func (d *Document) Rule(typ string) (Rule, bool) {
	for _, r := range d.Rules {
		if r.Type == typ {
			return r, true
		}
	}
	return Rule{}, false
}

// CutGraft derives the splice orientation and plane coordinates from the
// dendrite and axon rules: the morphology is upward when the dendritic
// window sits below the axonal one; the cut plane is the dendritic window's
// far edge and the graft plane the axonal window's near edge.
func (d *Document) CutGraft() (upward bool, yCut, yGraft float64, err error) {
	axon, ok := d.Rule("axon")
	if !ok {
		return false, 0, 0, ErrNoAxonRule
	}
	dend, ok := d.Rule("dendrite")
	if !ok {
		return false, 0, 0, ErrNoDendriteRule
	}
	upward = dend.YMin < axon.YMin
	if upward {
		return true, dend.YMax, axon.YMin, nil
	}
	return false, dend.YMin, axon.YMax, nil
}

// ShiftedAxon returns a copy of the document with the axon rule's window
// translated by dy. Written next to each output variant so the annotation
// keeps tracking the grafted arbor.
func (d *Document) ShiftedAxon(dy float64) *Document {
	c := &Document{XMLName: d.XMLName, Rules: append([]Rule(nil), d.Rules...)}
	for i := range c.Rules {
		if c.Rules[i].Type == "axon" {
			c.Rules[i].YMin += dy
			c.Rules[i].YMax += dy
		}
	}
	return c
}

// WriteFile writes the document as indented XML.
func (d *Document) WriteFile(path string) error {
	data, err := xml.MarshalIndent(d, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
