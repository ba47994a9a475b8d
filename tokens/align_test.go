package tokens

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcast(t *testing.T) {
	sub := hiThere(t)

	got := slices.Collect(Broadcast(sub.Metadata(), []int{1, 2}))
	assert.Equal(t, []int{1, 2, 2}, got)
}

func TestBroadcastUndersupplyStopsEarly(t *testing.T) {
	sub := hiThere(t)

	got := slices.Collect(Broadcast(sub.Metadata(), []int{1}))
	assert.Equal(t, []int{1}, got)

	got = slices.Collect(Broadcast(sub.Metadata(), []int{}))
	assert.Empty(t, got)
}

func TestGroupBy(t *testing.T) {
	full := hiThere(t).FullView()

	got := slices.Collect(GroupBy(full.Metadata(), []int{1, 2, 3}))
	assert.Equal(t, [][]int{{1}, {2, 3}}, got)
}

func TestRegroupFold(t *testing.T) {
	full := hiThere(t).FullView()

	sum := func(group []float64) float64 {
		total := 0.0
		for _, v := range group {
			total += v
		}
		return total
	}
	got := slices.Collect(Regroup(full.Metadata(), []float64{0.5, 1.0, 2.0}, sum))
	assert.Equal(t, []float64{0.5, 3.0}, got)
}

func TestRegroupUndersupplyStopsEarly(t *testing.T) {
	full := hiThere(t).FullView()

	// Two elements cannot fill the second group of size two.
	got := slices.Collect(GroupBy(full.Metadata(), []int{7, 8}))
	assert.Equal(t, [][]int{{7}}, got)
}

func TestAlignAgainstOwnTokens(t *testing.T) {
	sub := hiThere(t)

	// Regrouping the view's own sub-tokens mirrors the full view's grouping.
	groups := slices.Collect(GroupBy(sub.Metadata(), sub.Tokens()))
	assert.Equal(t, [][]string{{"hi</t>"}, {"the", "re</t>"}}, groups)
}

func TestMarkersIsTerminal(t *testing.T) {
	m := DefaultMarkers()

	terminal, err := m.IsTerminal("re</t>")
	require.NoError(t, err)
	assert.True(t, terminal)

	terminal, err = m.IsTerminal("the")
	require.NoError(t, err)
	assert.False(t, terminal)
}

func TestBracketSchemeNotImplemented(t *testing.T) {
	m := Markers{WordEnd: "</w>", Scheme: SchemeBrackets}
	_, err := m.IsTerminal("x")
	require.ErrorIs(t, err, ErrNotImplemented)
}

func TestFromFullToken(t *testing.T) {
	v, err := FromFullToken([]string{"the", "re</t>"}, typeWord)
	require.NoError(t, err)
	assert.Equal(t, 2, v.Len())
	assert.Equal(t, []int{2}, v.Metadata().SubtokenCounts)
	assert.Equal(t, 1, v.FullView().Len())
}

func TestSetAllTypes(t *testing.T) {
	v := hiThere(t)
	v.SetAllTypes(typeNumber)
	assert.Equal(t, []TokenType{typeNumber, typeNumber}, v.Metadata().TokenTypes)
}
