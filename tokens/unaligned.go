package tokens

import "github.com/pkg/errors"

// Unaligned carries raw sub-tokens whose full-token boundaries are no longer
// known. It is produced when slicing a sub-token view at a position inside a
// full token, and exists so that degraded slices can still take part in
// later concatenation without losing the raw data. It deliberately supports
// nothing else: with no metadata there is no index translation to offer.
type Unaligned struct {
	tokens []string
}

var _ Chunk = &Unaligned{}

func (u *Unaligned) sealedChunk() {}

// NewUnaligned wraps a copy of toks in a carrier.
func NewUnaligned(toks []string) *Unaligned {
	return &Unaligned{tokens: cloneStrings(toks)}
}

// Tokens returns a copy of the raw sub-token list.
func (u *Unaligned) Tokens() []string {
	return cloneStrings(u.tokens)
}

// Concat produces a new carrier over the concatenated raw tokens. A
// SubTokenView operand is reduced to its raw tokens; its metadata is dropped
// because the carrier side has none to merge with. The unaligned status
// always propagates to the result. Any other operand is rejected with
// ErrInvalidOperand.
func (u *Unaligned) Concat(other Chunk) (*Unaligned, error) {
	switch o := other.(type) {
	case *Unaligned:
		return &Unaligned{tokens: concatStrings(u.tokens, o.tokens)}, nil
	case *SubTokenView:
		return &Unaligned{tokens: concatStrings(u.tokens, o.tokens)}, nil
	default:
		return nil, errors.Wrapf(ErrInvalidOperand, "cannot concatenate %T to an unaligned carrier", other)
	}
}
