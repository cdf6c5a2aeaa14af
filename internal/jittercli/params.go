// internal/jittercli/params.go
package jittercli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
	"morphclone-core/jitter"
)

// Params mirrors the YAML parameters file passed via --params. Every field
// is optional; omitted distributions stay at their identity defaults.
type Params struct {
	Rotation struct {
		MeanAngle   float64 `yaml:"mean_angle"`
		StdAngle    float64 `yaml:"std_angle"`
		NumberPoint int     `yaml:"numberpoint"`
	} `yaml:"rotation"`
	SegmentScaling ScaleParams `yaml:"segment_scaling"`
	SectionScaling ScaleParams `yaml:"section_scaling"`
}

// ScaleParams is the mean/std of one normal law.
type ScaleParams struct {
	Mean float64 `yaml:"mean"`
	Std  float64 `yaml:"std"`
}

// DefaultParams returns identity jitter: no rotation, no scaling.
func DefaultParams() Params {
	var p Params
	p.Rotation.NumberPoint = 5
	return p
}

// LoadParams reads a YAML parameters file on top of the defaults. An empty
// path returns the defaults unchanged.
func LoadParams(path string) (Params, error) {
	p := DefaultParams()
	if path == "" {
		return p, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return p, err
	}
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return p, fmt.Errorf("parse %s: %w", path, err)
	}
	if p.Rotation.NumberPoint < 1 {
		return p, fmt.Errorf("%s: rotation.numberpoint must be >= 1", path)
	}
	return p, nil
}

// RotationParameters converts to the core rotation parameters.
func (p Params) RotationParameters() jitter.RotationParameters {
	return jitter.RotationParameters{
		MeanAngle:   p.Rotation.MeanAngle,
		StdAngle:    p.Rotation.StdAngle,
		NumberPoint: p.Rotation.NumberPoint,
	}
}

// SegmentParameters converts to the core per-segment scaling parameters.
func (p Params) SegmentParameters() jitter.ScaleParameters {
	return jitter.ScaleParameters{Mean: p.SegmentScaling.Mean, Std: p.SegmentScaling.Std}
}

// SectionParameters converts to the core per-section scaling parameters.
func (p Params) SectionParameters() jitter.ScaleParameters {
	return jitter.ScaleParameters{Mean: p.SectionScaling.Mean, Std: p.SectionScaling.Std}
}
