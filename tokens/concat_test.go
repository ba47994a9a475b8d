package tokens

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConcatViewsMergesInPlace(t *testing.T) {
	sub := hiThere(t)

	head, err := sub.At(0)
	require.NoError(t, err)
	tail, err := sub.Slice(From(1))
	require.NoError(t, err)

	headView := head.(*SubTokenView)
	got, err := headView.Concat(tail)
	require.NoError(t, err)

	// The receiver is consumed and returned.
	assert.Same(t, headView, got)

	joined := got.(*SubTokenView)
	assert.Equal(t, []string{"hi</t>", "the", "re</t>"}, joined.Tokens())
	assert.Equal(t, []int{1, 2}, joined.Metadata().SubtokenCounts)

	// Derived tables were rebuilt along with the merge.
	assert.Equal(t, 2, joined.FullView().Len())
}

func TestConcatWithCarrierDegrades(t *testing.T) {
	sub := hiThere(t)

	head, err := sub.At(0)
	require.NoError(t, err)
	mid, err := sub.At(1)
	require.NoError(t, err)
	rest, err := sub.Slice(From(2))
	require.NoError(t, err)

	// view + carrier degrades...
	step, err := head.(*SubTokenView).Concat(mid)
	require.NoError(t, err)
	carrier, ok := step.(*Unaligned)
	require.True(t, ok)

	// ...and the carrier absorbs further views as raw tokens.
	final, err := carrier.Concat(rest)
	require.NoError(t, err)
	assert.Equal(t, []string{"hi</t>", "the", "re</t>"}, final.Tokens())
}

func TestConcatRawContentAssociativity(t *testing.T) {
	mk := func() (*SubTokenView, *SubTokenView, *SubTokenView) {
		a := newMarked(t, []string{"a</t>"}, []int{1}, []TokenType{typeWord})
		b := newMarked(t, []string{"b", "c</t>"}, []int{2}, []TokenType{typeWord})
		c := newMarked(t, []string{"d</t>"}, []int{1}, []TokenType{typeWord})
		return a, b, c
	}

	a1, b1, c1 := mk()
	ab, err := a1.Concat(b1)
	require.NoError(t, err)
	left, err := ab.(*SubTokenView).Concat(c1)
	require.NoError(t, err)

	a2, b2, c2 := mk()
	bc, err := b2.Concat(c2)
	require.NoError(t, err)
	right, err := a2.Concat(bc)
	require.NoError(t, err)

	assert.Equal(t, left.Tokens(), right.Tokens())
}

func TestConcatInvalidOperand(t *testing.T) {
	sub := hiThere(t)
	full := hiThere(t).FullView()
	carrier := NewUnaligned([]string{"x"})

	_, err := sub.Concat(full)
	require.ErrorIs(t, err, ErrInvalidOperand)

	_, err = full.Concat(sub)
	require.ErrorIs(t, err, ErrInvalidOperand)

	_, err = carrier.Concat(full)
	require.ErrorIs(t, err, ErrInvalidOperand)
}

func TestCarrierConcat(t *testing.T) {
	a := NewUnaligned([]string{"x", "y"})
	b := NewUnaligned([]string{"z"})

	got, err := a.Concat(b)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y", "z"}, got.Tokens())

	// The operands are untouched.
	assert.Equal(t, []string{"x", "y"}, a.Tokens())
}

func TestAssign(t *testing.T) {
	full := newMarked(t, []string{"hi</t>", "there</t>"}, []int{1, 1}, []TokenType{typeWord, typeWord}).FullView()

	first, err := full.At(0)
	require.NoError(t, err)
	require.NoError(t, full.Set(1, first))

	assert.Equal(t, []string{"hi</t>", "hi</t>"}, full.Strings())
	assert.Equal(t, 2, full.Len())
}

func TestAssignRejectsWrongOperand(t *testing.T) {
	full := hiThere(t).FullView()

	err := full.Set(1, nil)
	require.ErrorIs(t, err, ErrInvalidOperand)

	// A two-token view is not a single full token.
	err = full.Set(1, full)
	require.ErrorIs(t, err, ErrInvalidOperand)

	// No partial mutation happened.
	assert.Equal(t, []string{"hi</t>", "there</t>"}, full.Strings())
}

func TestEndToEndScenario(t *testing.T) {
	sub := newMarked(t, []string{"hi</t>", "the", "re</t>"}, []int{1, 2}, []TokenType{typeWord, typeWord})

	full := sub.FullView()
	assert.Equal(t, []string{"hi</t>", "there</t>"}, full.Strings())

	back := full.SubView()
	assert.Equal(t, []string{"hi</t>", "the", "re</t>"}, back.Tokens())
}
