package tokens

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubSliceAligned(t *testing.T) {
	sub := hiThere(t)

	got, err := sub.Slice(From(1))
	require.NoError(t, err)

	view, ok := got.(*SubTokenView)
	require.True(t, ok, "boundary-aligned slice must stay synchronized, got %T", got)
	assert.Equal(t, []string{"the", "re</t>"}, view.Tokens())
	assert.Equal(t, []int{2}, view.Metadata().SubtokenCounts)
	assert.True(t, view.MarkerApplied())
}

func TestSubSliceDegrades(t *testing.T) {
	sub := hiThere(t)

	// [1:2) cuts a single sub-token out of the two-piece token "there".
	got, err := sub.Slice(Between(1, 2))
	require.NoError(t, err)

	carrier, ok := got.(*Unaligned)
	require.True(t, ok, "mid-token slice must degrade, got %T", got)
	assert.Equal(t, []string{"the"}, carrier.Tokens())
}

func TestSubAt(t *testing.T) {
	sub := hiThere(t)

	head, err := sub.At(0)
	require.NoError(t, err)
	view, ok := head.(*SubTokenView)
	require.True(t, ok)
	assert.Equal(t, []string{"hi</t>"}, view.Tokens())

	mid, err := sub.At(1)
	require.NoError(t, err)
	_, ok = mid.(*Unaligned)
	require.True(t, ok, "sub-token inside a full token must come back unaligned")
}

func TestSubToFullLookupMisalignment(t *testing.T) {
	sub := hiThere(t)
	_, err := sub.subToFullIndex(1)
	var misaligned *MisalignmentError
	require.ErrorAs(t, err, &misaligned)
	assert.Equal(t, 1, misaligned.Index)
}

func TestFullSliceNegativeAndOutOfRange(t *testing.T) {
	full := hiThere(t).FullView()

	cases := []struct {
		name string
		r    Range
		want []string
	}{
		{"whole", Whole(), []string{"hi</t>", "there</t>"}},
		{"explicit whole", Between(0, 2), []string{"hi</t>", "there</t>"}},
		{"last via negative", From(-1), []string{"there</t>"}},
		{"penultimate to end", From(-2), []string{"hi</t>", "there</t>"}},
		{"tail", From(1), []string{"there</t>"}},
		{"empty same bound", Between(1, 1), nil},
		{"empty negative to zero", Between(-2, 0), nil},
		{"clamped both ends", Between(-10, 10), []string{"hi</t>", "there</t>"}},
		{"head", Until(-1), []string{"hi</t>"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := full.Slice(tc.r)
			require.NoError(t, err)
			var want []string
			if tc.want != nil {
				want = tc.want
			}
			assert.Equal(t, want, func() []string {
				s := got.Strings()
				if len(s) == 0 {
					return nil
				}
				return s
			}())
		})
	}
}

// Indices more negative than -(n+1) clamp to "before the start" through the
// translated value of n, negated, minus one. The result is unusual but
// defined; this pins the boundary case down.
func TestBeforeStartClampBoundaryCase(t *testing.T) {
	sub := hiThere(t)

	got, err := sub.Slice(Between(-10, 3))
	require.NoError(t, err)
	view, ok := got.(*SubTokenView)
	require.True(t, ok)
	assert.Equal(t, []string{"hi</t>", "the", "re</t>"}, view.Tokens())

	raw, err := sub.subToFullIndex(-10)
	require.NoError(t, err)
	assert.Equal(t, -3, raw, "clamp resolves to -(full count)-1")
}

func TestUnsupportedStep(t *testing.T) {
	sub := hiThere(t)
	full := sub.FullView()

	_, err := sub.Slice(Range{Step: 2})
	require.ErrorIs(t, err, ErrUnsupportedStep)

	_, err = full.Slice(Range{Step: -1})
	require.ErrorIs(t, err, ErrUnsupportedStep)
}

func TestLengthConsistencyAcrossSlices(t *testing.T) {
	sub := newMarked(t,
		[]string{"a</t>", "b", "c</t>", "d", "e", "f</t>"},
		[]int{1, 2, 3},
		[]TokenType{typeWord, typeWord, typeWord})
	full := sub.FullView()

	for lo := 0; lo <= full.Len(); lo++ {
		for hi := lo; hi <= full.Len(); hi++ {
			part, err := full.Slice(Between(lo, hi))
			require.NoError(t, err)
			assert.Equal(t, part.Metadata().Total(), len(part.Tokens()),
				"slice [%d:%d) counts must cover its tokens", lo, hi)
		}
	}
}
