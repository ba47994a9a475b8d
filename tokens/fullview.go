package tokens

import (
	"iter"
	"strings"

	"github.com/pkg/errors"
)

// Formatter turns one full token's contiguous sub-tokens into the value the
// full-token view emits for it.
type Formatter func([]string) string

// concatFormatter is the default: glue the pieces back together.
func concatFormatter(pieces []string) string {
	return strings.Join(pieces, "")
}

// FullViewOption configures a FullTokenView derived from a sub-token view.
type FullViewOption func(*FullTokenView)

// WithFormatter injects the formatter applied to each full token's
// sub-tokens during iteration.
func WithFormatter(f Formatter) FullViewOption {
	return func(v *FullTokenView) {
		v.formatter = f
	}
}

// FullTokenView addresses a token sequence at full-token granularity.
// Indexing and slicing count whole tokens, so translation to the backing
// sub-token array is total and slicing never degrades. Iteration groups each
// token's sub-tokens and applies the injected formatter.
type FullTokenView struct {
	base
	formatter Formatter
}

var _ Chunk = &FullTokenView{}

func (v *FullTokenView) sealedChunk() {}

// Len returns the number of full tokens.
func (v *FullTokenView) Len() int {
	return v.subToFull[len(v.tokens)]
}

// At returns a new single-token view of full token i.
func (v *FullTokenView) At(i int) (*FullTokenView, error) {
	return v.Slice(Between(i, i+1))
}

// Slice returns a new FullTokenView over the full-token range selected by r,
// owning fresh copies of the corresponding sub-token and metadata ranges and
// preserving the formatter and marker state.
func (v *FullTokenView) Slice(r Range) (*FullTokenView, error) {
	if err := r.checkStep(); err != nil {
		return nil, err
	}
	nFull := v.Len()
	fullLo := resolveBound(r.Start, 0, nFull)
	fullHi := resolveBound(r.Stop, nFull, nFull)
	if fullHi < fullLo {
		fullHi = fullLo
	}

	nSub := len(v.tokens)
	subLo, subHi := 0, nSub
	if r.Start != nil {
		subLo = clampOffset(v.fullToSubIndex(*r.Start), nSub)
	}
	if r.Stop != nil {
		subHi = clampOffset(v.fullToSubIndex(*r.Stop), nSub)
	}
	if subHi < subLo {
		subHi = subLo
	}

	b, err := makeBase(cloneStrings(v.tokens[subLo:subHi]), v.meta.slice(fullLo, fullHi), v.markerApplied, v.markers)
	if err != nil {
		return nil, err
	}
	return &FullTokenView{base: b, formatter: v.formatter}, nil
}

// Set replaces full token i with the contents of value, which must be a
// full-token view of length exactly one; anything else is rejected with
// ErrInvalidOperand. The replacement splices prefix, value and suffix
// together and adopts the combined state.
func (v *FullTokenView) Set(i int, value *FullTokenView) error {
	if value == nil || value.Len() != 1 {
		return errors.Wrap(ErrInvalidOperand, "only a single full-token view may be assigned")
	}
	prefix, err := v.Slice(Until(i))
	if err != nil {
		return err
	}
	suffix, err := v.Slice(From(i + 1))
	if err != nil {
		return err
	}
	if err := prefix.concatFull(value); err != nil {
		return err
	}
	if err := prefix.concatFull(suffix); err != nil {
		return err
	}
	v.base = prefix.base
	return nil
}

// Concat appends other to this view. A full-token view operand is merged in
// place and the receiver returned; an *Unaligned operand degrades the result
// to a fresh carrier. Any other operand is rejected with ErrInvalidOperand
// before any mutation.
func (v *FullTokenView) Concat(other Chunk) (Chunk, error) {
	switch o := other.(type) {
	case *FullTokenView:
		if err := v.concatFull(o); err != nil {
			return nil, err
		}
		return v, nil
	case *Unaligned:
		return &Unaligned{tokens: concatStrings(v.tokens, o.tokens)}, nil
	default:
		return nil, errors.Wrapf(ErrInvalidOperand, "cannot concatenate %T to a full-token view", other)
	}
}

func (v *FullTokenView) concatFull(o *FullTokenView) error {
	v.tokens = append(v.tokens, o.tokens...)
	v.meta.Concat(o.meta)
	v.buildIndex()
	return nil
}

// All iterates the full tokens in order, applying the formatter to each
// token's sub-tokens. A fresh, finite, restartable iterator is produced per
// call; iteration never mutates the view.
func (v *FullTokenView) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		off := 0
		for _, c := range v.meta.SubtokenCounts {
			if !yield(v.formatter(v.tokens[off : off+c])) {
				return
			}
			off += c
		}
	}
}

// Typed iterates formatted full tokens paired with their type tags.
func (v *FullTokenView) Typed() iter.Seq2[string, TokenType] {
	return func(yield func(string, TokenType) bool) {
		off := 0
		for i, c := range v.meta.SubtokenCounts {
			if !yield(v.formatter(v.tokens[off:off+c]), v.meta.TokenTypes[i]) {
				return
			}
			off += c
		}
	}
}

// Groups iterates each full token's raw sub-tokens without formatting. The
// yielded slices are copies.
func (v *FullTokenView) Groups() iter.Seq[[]string] {
	return func(yield func([]string) bool) {
		off := 0
		for _, c := range v.meta.SubtokenCounts {
			if !yield(cloneStrings(v.tokens[off : off+c])) {
				return
			}
			off += c
		}
	}
}

// Strings collects the formatted full tokens into a slice.
func (v *FullTokenView) Strings() []string {
	out := make([]string, 0, v.Len())
	for s := range v.All() {
		out = append(out, s)
	}
	return out
}

// SubView returns the same sequence addressed at sub-token granularity,
// owning its own copies of the tokens and metadata.
func (v *FullTokenView) SubView() *SubTokenView {
	return &SubTokenView{base: v.copyBase()}
}
