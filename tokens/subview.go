package tokens

import (
	"iter"

	"github.com/pkg/errors"
)

// SubTokenView addresses a token sequence at sub-token granularity. Indexing
// and slicing count individual sub-tokens; a slice whose bounds land on
// full-token boundaries yields a new synchronized SubTokenView, while a
// slice that cuts through a full token degrades to an *Unaligned carrier.
type SubTokenView struct {
	base
}

var _ Chunk = &SubTokenView{}

func (v *SubTokenView) sealedChunk() {}

// NewSubTokens builds a sub-token view over tokens grouped by meta. The
// sequence is not declared marker-complete; terminal markers are neither
// required nor checked.
func NewSubTokens(toks []string, meta Metadata) (*SubTokenView, error) {
	return newSubTokens(toks, meta, false, DefaultMarkers())
}

// NewSubTokensMarked builds a sub-token view whose full tokens are declared
// to end with the word-end marker. Construction fails with
// MissingTerminalMarkerError if any full token violates that.
func NewSubTokensMarked(toks []string, meta Metadata, markers Markers) (*SubTokenView, error) {
	return newSubTokens(toks, meta, true, markers)
}

func newSubTokens(toks []string, meta Metadata, markerApplied bool, markers Markers) (*SubTokenView, error) {
	b, err := makeBase(toks, meta, markerApplied, markers)
	if err != nil {
		return nil, err
	}
	return &SubTokenView{base: b}, nil
}

// FromFullToken builds a single-full-token view from the sub-token pieces of
// one split word.
func FromFullToken(pieces []string, tt TokenType) (*SubTokenView, error) {
	meta := Metadata{SubtokenCounts: []int{len(pieces)}, TokenTypes: []TokenType{tt}}
	return NewSubTokens(pieces, meta)
}

// Len returns the number of sub-tokens.
func (v *SubTokenView) Len() int {
	return len(v.tokens)
}

// At returns the single-sub-token range [i, i+1), degrading to *Unaligned
// when i is not a full-token boundary.
func (v *SubTokenView) At(i int) (Chunk, error) {
	return v.Slice(Between(i, i+1))
}

// Slice returns the sub-token range selected by r. When both bounds land on
// full-token boundaries the result is a new SubTokenView owning fresh copies
// of the token and metadata sub-ranges; otherwise the result is an
// *Unaligned carrier over just the raw tokens, since a cut through a full
// token cannot carry consistent per-token counts.
func (v *SubTokenView) Slice(r Range) (Chunk, error) {
	if err := r.checkStep(); err != nil {
		return nil, err
	}
	n := len(v.tokens)
	lo := resolveBound(r.Start, 0, n)
	hi := resolveBound(r.Stop, n, n)
	if hi < lo {
		hi = lo
	}

	fullLo, fullHi, err := v.fullBounds(r)
	if err != nil {
		var misaligned *MisalignmentError
		if errors.As(err, &misaligned) {
			return &Unaligned{tokens: cloneStrings(v.tokens[lo:hi])}, nil
		}
		return nil, err
	}

	return newSubTokens(cloneStrings(v.tokens[lo:hi]), v.meta.slice(fullLo, fullHi), v.markerApplied, v.markers)
}

// fullBounds translates r's sub-token bounds to full-token indices, failing
// with MisalignmentError when a bound is inside a full token.
func (v *SubTokenView) fullBounds(r Range) (lo, hi int, err error) {
	nFull := v.meta.Len()
	lo, hi = 0, nFull
	if r.Start != nil {
		if lo, err = v.subToFullIndex(*r.Start); err != nil {
			return 0, 0, err
		}
	}
	if r.Stop != nil {
		if hi, err = v.subToFullIndex(*r.Stop); err != nil {
			return 0, 0, err
		}
	}
	lo = clampOffset(lo, nFull)
	hi = clampOffset(hi, nFull)
	if hi < lo {
		hi = lo
	}
	return lo, hi, nil
}

// Concat appends other to this view. A view operand is merged in place and
// the receiver returned, so the receiver should be treated as consumed; an
// *Unaligned operand degrades the result to a fresh carrier because the
// merged metadata can no longer be asserted to align. Any other operand is
// rejected with ErrInvalidOperand before any mutation.
func (v *SubTokenView) Concat(other Chunk) (Chunk, error) {
	switch o := other.(type) {
	case *SubTokenView:
		v.tokens = append(v.tokens, o.tokens...)
		v.meta.Concat(o.meta)
		v.buildIndex()
		return v, nil
	case *Unaligned:
		return &Unaligned{tokens: concatStrings(v.tokens, o.tokens)}, nil
	default:
		return nil, errors.Wrapf(ErrInvalidOperand, "cannot concatenate %T to a sub-token view", other)
	}
}

// All iterates the sub-tokens in order. The sequence is finite and
// restartable; iteration never mutates the view.
func (v *SubTokenView) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, t := range v.tokens {
			if !yield(t) {
				return
			}
		}
	}
}

// FullView returns the same sequence addressed at full-token granularity,
// owning its own copies of the tokens and metadata. The formatter defaults
// to concatenating each token's sub-tokens.
func (v *SubTokenView) FullView(opts ...FullViewOption) *FullTokenView {
	f := &FullTokenView{base: v.copyBase(), formatter: concatFormatter}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// SetAllTypes overwrites every full token's type tag.
func (v *SubTokenView) SetAllTypes(tt TokenType) {
	for i := range v.meta.TokenTypes {
		v.meta.TokenTypes[i] = tt
	}
}
