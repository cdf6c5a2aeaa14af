package morph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func twoLevel(t *testing.T) *Morphology {
	t.Helper()
	m := New()
	root := m.AddRoot(Axon, []r3.Vec{{}, {Y: 5}}, []float64{1, 1})
	mid, err := m.AppendSection(root.ID, Axon, []r3.Vec{{Y: 5}, {Y: 8}}, []float64{1, 1})
	require.NoError(t, err)
	_, err = m.AppendSection(mid.ID, Axon, []r3.Vec{{Y: 8}, {X: 1, Y: 9}}, []float64{1, 0.5})
	require.NoError(t, err)
	_, err = m.AppendSection(mid.ID, Axon, []r3.Vec{{Y: 8}, {X: -1, Y: 9}}, []float64{1, 0.5})
	require.NoError(t, err)
	return m
}

func TestCloneIsIndependent(t *testing.T) {
	m := twoLevel(t)
	c := m.Clone()

	c.Section(0).Points[0] = r3.Vec{X: 99}
	require.NoError(t, c.DeleteSubtree(1))

	assert.Equal(t, r3.Vec{}, m.Section(0).Points[0])
	assert.Equal(t, 4, m.Len())
	assert.Equal(t, 1, c.Len())
	assert.NoError(t, m.Validate())
	assert.NoError(t, c.Validate())
}

func TestDescendantsAndUpstream(t *testing.T) {
	m := twoLevel(t)

	ids := func(secs []*Section) []int {
		out := make([]int, len(secs))
		for i, s := range secs {
			out[i] = s.ID
		}
		return out
	}
	assert.Equal(t, []int{0, 1, 2, 3}, ids(m.Descendants(0)))
	assert.Equal(t, []int{2, 1, 0}, ids(m.Upstream(2)))
}

func TestSectionPathLengths(t *testing.T) {
	m := twoLevel(t)
	got := m.SectionPathLengths(0)

	assert.InDelta(t, 5, got[0], 1e-12)
	assert.InDelta(t, 8, got[1], 1e-12)
	assert.InDelta(t, 8+1.4142135623730951, got[2], 1e-12)
	assert.InDelta(t, 8+1.4142135623730951, got[3], 1e-12)
}

func TestDeleteSubtreeUnlinksParent(t *testing.T) {
	m := twoLevel(t)
	require.NoError(t, m.DeleteSubtree(2))

	assert.Nil(t, m.Section(2))
	assert.Equal(t, []int{3}, m.Section(1).Children)
	assert.NoError(t, m.Validate())
}

func TestTranslateSubtree(t *testing.T) {
	m := twoLevel(t)
	m.TranslateSubtree(1, r3.Vec{X: 2})

	assert.Equal(t, r3.Vec{X: 2, Y: 5}, m.Section(1).Points[0])
	assert.Equal(t, r3.Vec{X: 3, Y: 9}, m.Section(2).Points[1])
	// Root untouched.
	assert.Equal(t, r3.Vec{Y: 5}, m.Section(0).Points[1])
}

func TestValidateDetachedChild(t *testing.T) {
	m := twoLevel(t)
	m.Section(2).Points[0] = r3.Vec{Y: 7.5}

	err := m.Validate()
	require.ErrorIs(t, err, ErrTopology)
	assert.Contains(t, err.Error(), "detached")
}

func TestValidateNegativeRadius(t *testing.T) {
	m := twoLevel(t)
	m.Section(1).Radii[1] = -0.1
	assert.ErrorIs(t, m.Validate(), ErrTopology)
}

func TestValidateMismatchedRadii(t *testing.T) {
	m := twoLevel(t)
	m.Section(3).Radii = m.Section(3).Radii[:1]
	assert.ErrorIs(t, m.Validate(), ErrTopology)
}
