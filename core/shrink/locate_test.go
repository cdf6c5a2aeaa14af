package shrink

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
	"morphclone-core/morph"
)

// downwardNeuron builds the reference fixture: a basal dendrite reaching up
// to y=14 and a single axon running straight down from y=9, forking at y=-6.
// With the cut plane at y=5 and the graft plane at y=-4 the spliced material
// is the straight run (0,5,0) → (0,-4,0), path length 9.
func downwardNeuron(t *testing.T) *morph.Morphology {
	t.Helper()
	m := morph.New()
	m.Soma = &morph.SomaPoints{Points: []r3.Vec{{Y: 10}}, Radii: []float64{2}}
	m.AddRoot(morph.BasalDendrite,
		[]r3.Vec{{Y: 11}, {Y: 14}}, []float64{1, 1})
	axon := m.AddRoot(morph.Axon,
		[]r3.Vec{{Y: 9}, {Y: 7}, {Y: 5}}, []float64{1, 1, 1})
	trunk, err := m.AppendSection(axon.ID, morph.Axon,
		[]r3.Vec{{Y: 5}, {Y: 0}, {Y: -4}, {Y: -6}}, []float64{1, 1, 0.5, 0.5})
	require.NoError(t, err)
	_, err = m.AppendSection(trunk.ID, morph.Axon,
		[]r3.Vec{{Y: -6}, {X: 1, Y: -8}}, []float64{0.5, 0.25})
	require.NoError(t, err)
	_, err = m.AppendSection(trunk.ID, morph.Axon,
		[]r3.Vec{{Y: -6}, {X: -1, Y: -8}}, []float64{0.5, 0.25})
	require.NoError(t, err)
	require.NoError(t, m.Validate())
	return m
}

// Fixture planes, from the matching annotation (dendrite 5..14, axon -20..-4).
const (
	fixtureUpward = false
	fixtureYCut   = 5.0
	fixtureYGraft = -4.0
)

func locateFixture(t *testing.T, m *morph.Morphology) Splice {
	t.Helper()
	sp, err := Locate(m, fixtureUpward, fixtureYCut, fixtureYGraft)
	require.NoError(t, err)
	return sp
}

func TestLocateBoundaries(t *testing.T) {
	m := downwardNeuron(t)
	sp := locateFixture(t, m)

	assert.False(t, sp.Upward)
	assert.Equal(t, r3.Vec{Y: 5}, sp.Cut.Point)
	assert.Equal(t, r3.Vec{Y: -4}, sp.Graft.Point)
	assert.InDelta(t, 9, sp.Length, 1e-12)
	assert.InDelta(t, 1, sp.Cut.Radius, 1e-12)
	assert.InDelta(t, 0.5, sp.Graft.Radius, 1e-12)

	// Cut and graft land on distinct sections of the main branch.
	assert.NotEqual(t, sp.Cut.SectionID, sp.Graft.SectionID)
}

func TestLocateBetweenRefsAreOrderedAncestors(t *testing.T) {
	m := downwardNeuron(t)
	sp := locateFixture(t, m)

	require.NotEmpty(t, sp.Between)
	// Every collected ref lies on the upstream chain of the graft boundary.
	onPath := map[int]bool{}
	for _, s := range m.Upstream(sp.Graft.SectionID) {
		onPath[s.ID] = true
	}
	for _, ref := range sp.Between {
		assert.True(t, onPath[ref.SectionID], "ref on section %d off the splice path", ref.SectionID)
	}
}

func TestLocateInterpolatesMidSegment(t *testing.T) {
	m := downwardNeuron(t)
	// A graft plane between samples: trunk runs y=0 → y=-4 with radii 1 → 0.5.
	sp, err := Locate(m, fixtureUpward, fixtureYCut, -2)
	require.NoError(t, err)

	assert.Equal(t, r3.Vec{Y: -2}, sp.Graft.Point)
	assert.InDelta(t, 0.75, sp.Graft.Radius, 1e-12)
	assert.InDelta(t, 7, sp.Length, 1e-12)
}

func TestLocateNoAxon(t *testing.T) {
	m := morph.New()
	m.AddRoot(morph.BasalDendrite, []r3.Vec{{}, {Y: 3}}, []float64{1, 1})

	_, err := Locate(m, true, 1, 2)
	require.ErrorIs(t, err, ErrNoAxon)
	assert.ErrorIs(t, err, ErrInvalidAnnotation)
}

func TestLocateTooManyAxons(t *testing.T) {
	m := downwardNeuron(t)
	m.AddRoot(morph.Axon, []r3.Vec{{X: 5}, {X: 6}}, []float64{1, 1})

	_, err := Locate(m, fixtureUpward, fixtureYCut, fixtureYGraft)
	require.ErrorIs(t, err, ErrTooManyAxons)
	assert.ErrorIs(t, err, ErrInvalidAnnotation)
}

func TestLocateNoSectionToCut(t *testing.T) {
	m := downwardNeuron(t)

	// Cut plane below the whole axon: nothing crosses it.
	_, err := Locate(m, fixtureUpward, -100, -200)
	require.ErrorIs(t, err, ErrNoSectionToCut)

	// Graft plane below the deepest section: cut found, graft not.
	_, err = Locate(m, fixtureUpward, 5, -200)
	require.ErrorIs(t, err, ErrNoSectionToCut)
}

func TestLocateSpliceForked(t *testing.T) {
	m := downwardNeuron(t)
	// A side branch off the cut section puts a fork inside the splice.
	axonRoot := m.Roots()[1]
	_, err := m.AppendSection(axonRoot.ID, morph.Axon,
		[]r3.Vec{{Y: 5}, {X: 3, Y: 4}}, []float64{1, 1})
	require.NoError(t, err)

	_, err = Locate(m, fixtureUpward, fixtureYCut, fixtureYGraft)
	require.ErrorIs(t, err, ErrSpliceForked)
	assert.ErrorIs(t, err, ErrInvalidAnnotation)
}

func TestLocateUpward(t *testing.T) {
	m := morph.New()
	axon := m.AddRoot(morph.Axon, []r3.Vec{{}, {Y: 2}}, []float64{1, 1})
	trunk, err := m.AppendSection(axon.ID, morph.Axon,
		[]r3.Vec{{Y: 2}, {Y: 6}, {Y: 9}}, []float64{1, 1, 1})
	require.NoError(t, err)
	_, err = m.AppendSection(trunk.ID, morph.Axon,
		[]r3.Vec{{Y: 9}, {Y: 12}}, []float64{1, 1})
	require.NoError(t, err)

	sp, err := Locate(m, true, 2, 9)
	require.NoError(t, err)
	assert.True(t, sp.Upward)
	assert.Equal(t, r3.Vec{Y: 2}, sp.Cut.Point)
	assert.Equal(t, r3.Vec{Y: 9}, sp.Graft.Point)
	assert.InDelta(t, 7, sp.Length, 1e-12)
}

func TestLocateIsReadOnly(t *testing.T) {
	m := downwardNeuron(t)
	before := m.Clone()

	locateFixture(t, m)

	require.Equal(t, before.Len(), m.Len())
	for _, id := range before.IDs() {
		assert.Equal(t, before.Section(id).Points, m.Section(id).Points)
		assert.Equal(t, before.Section(id).Radii, m.Section(id).Radii)
	}
}
