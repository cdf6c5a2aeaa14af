package jitter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/spatial/r3"
	"morphclone-core/morph"
)

func forked(t *testing.T) *morph.Morphology {
	t.Helper()
	m := morph.New()
	root := m.AddRoot(morph.Axon,
		[]r3.Vec{{}, {Y: -2}, {Y: -5}}, []float64{1, 1, 1})
	mid, err := m.AppendSection(root.ID, morph.Axon,
		[]r3.Vec{{Y: -5}, {Y: -8}}, []float64{1, 0.5})
	require.NoError(t, err)
	_, err = m.AppendSection(mid.ID, morph.Axon,
		[]r3.Vec{{Y: -8}, {X: 2, Y: -9}}, []float64{0.5, 0.25})
	require.NoError(t, err)
	_, err = m.AppendSection(mid.ID, morph.Axon,
		[]r3.Vec{{Y: -8}, {X: -2, Y: -9}}, []float64{0.5, 0.25})
	require.NoError(t, err)
	return m
}

func TestScaleMorphologyDoublesLengths(t *testing.T) {
	m := forked(t)
	want := map[int]float64{}
	for _, id := range m.IDs() {
		want[id] = m.Section(id).PathLength() * 2
	}

	ScaleMorphology(m, 2)
	require.NoError(t, m.Validate())

	for _, id := range m.IDs() {
		assert.InDelta(t, want[id], m.Section(id).PathLength(), 1e-9, "section %d", id)
	}
	// Radii are never scaled.
	assert.Equal(t, []float64{0.5, 0.25}, m.Section(2).Radii)
	// Root attachment stays put.
	assert.Equal(t, r3.Vec{}, m.Section(0).Points[0])
}

func TestRotationalJitterZeroAngleIsIdentity(t *testing.T) {
	m := forked(t)
	before := m.Clone()

	RotationalJitter(m, RotationParameters{MeanAngle: 0, StdAngle: 0, NumberPoint: 5}, nil)

	for _, id := range before.IDs() {
		for i, p := range before.Section(id).Points {
			got := m.Section(id).Points[i]
			assert.InDelta(t, p.X, got.X, 1e-9)
			assert.InDelta(t, p.Y, got.Y, 1e-9)
			assert.InDelta(t, p.Z, got.Z, 1e-9)
		}
	}
}

func TestRotationalJitterPreservesTopologyAndLengths(t *testing.T) {
	m := forked(t)
	want := map[int]float64{}
	for _, id := range m.IDs() {
		want[id] = m.Section(id).PathLength()
	}

	RotationalJitter(m, RotationParameters{MeanAngle: 20, StdAngle: 10, NumberPoint: 3},
		rand.NewSource(42))
	require.NoError(t, m.Validate())

	// Rotations are rigid within each subtree: section lengths survive.
	for _, id := range m.IDs() {
		assert.InDelta(t, want[id], m.Section(id).PathLength(), 1e-9, "section %d", id)
	}
}

func TestScalingJitterKeepsAttachment(t *testing.T) {
	m := forked(t)
	ScalingJitter(m,
		ScaleParameters{Mean: 0, Std: 0.2},
		ScaleParameters{Mean: 0.1, Std: 0.05},
		rand.NewSource(7))

	require.NoError(t, m.Validate())
}

func TestScalingJitterClipsCollapse(t *testing.T) {
	m := forked(t)
	// A huge negative mean would invert segments without the 1% clip.
	ScalingJitter(m, ScaleParameters{}, ScaleParameters{Mean: -50}, nil)
	require.NoError(t, m.Validate())

	for _, id := range m.IDs() {
		assert.Greater(t, m.Section(id).PathLength(), 0.0, "section %d collapsed", id)
	}
}

func TestJitterIsDeterministicPerSeed(t *testing.T) {
	run := func() *morph.Morphology {
		m := forked(t)
		RotationalJitter(m, RotationParameters{MeanAngle: 5, StdAngle: 5, NumberPoint: 3},
			rand.NewSource(99))
		ScalingJitter(m, ScaleParameters{Std: 0.1}, ScaleParameters{Std: 0.1},
			rand.NewSource(100))
		return m
	}
	a, b := run(), run()
	require.Equal(t, a.IDs(), b.IDs())
	for _, id := range a.IDs() {
		assert.Equal(t, a.Section(id).Points, b.Section(id).Points)
	}
}
