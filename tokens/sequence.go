package tokens

import "strings"

// Chunk is the closed set of token holders produced by sequence operations:
// *SubTokenView, *FullTokenView and *Unaligned. Degradation from a
// synchronized view to the unaligned carrier is always visible in the
// concrete type, never silent.
type Chunk interface {
	// Tokens returns a copy of the raw sub-token list.
	Tokens() []string

	sealedChunk()
}

// base is the shared backing representation of both views: the flat
// sub-token list, its grouping metadata, and the derived index-translation
// tables. The tables are rebuilt whenever tokens or metadata change and are
// immutable between mutations.
type base struct {
	tokens        []string
	meta          Metadata
	markerApplied bool
	markers       Markers

	// fullToSub[i] is the sub-token offset where full token i starts;
	// its final entry equals len(tokens). subToFull inverts it and is
	// defined only at those boundary offsets.
	fullToSub []int
	subToFull map[int]int
}

// makeBase validates (tokens, metadata) and builds the index tables.
// Validation runs once, synchronously: a length mismatch or a declared but
// missing terminal marker rejects the sequence outright.
func makeBase(toks []string, meta Metadata, markerApplied bool, markers Markers) (base, error) {
	if declared := meta.Total(); len(toks) != declared {
		return base{}, &LengthMismatchError{Tokens: len(toks), Declared: declared}
	}
	b := base{
		tokens:        toks,
		meta:          meta,
		markerApplied: markerApplied,
		markers:       markers,
	}
	b.buildIndex()
	if markerApplied {
		if err := b.checkTerminalMarkers(); err != nil {
			return base{}, err
		}
	}
	return b, nil
}

// buildIndex recomputes the prefix-sum table and its boundary inverse.
func (b *base) buildIndex() {
	full := make([]int, b.meta.Len()+1)
	for i, c := range b.meta.SubtokenCounts {
		full[i+1] = full[i] + c
	}
	sub := make(map[int]int, len(full))
	for i, off := range full {
		sub[off] = i
	}
	b.fullToSub = full
	b.subToFull = sub
}

// checkTerminalMarkers verifies that every full token's concatenated
// sub-tokens end with the word-end marker.
func (b *base) checkTerminalMarkers() error {
	off := 0
	for _, c := range b.meta.SubtokenCounts {
		word := strings.Join(b.tokens[off:off+c], "")
		terminal, err := b.markers.IsTerminal(word)
		if err != nil {
			return err
		}
		if !terminal {
			return &MissingTerminalMarkerError{Token: word, Marker: b.markers.WordEnd}
		}
		off += c
	}
	return nil
}

// normalizeIndex applies the shared index normalization before translation:
// indices more negative than -n clamp to one before the start (the
// translated value of n, negated, minus one), in-range negatives are
// rewritten from the end, and indices beyond n clamp to n. conv translates
// an already-normalized index in [0, n]. Each branch recurses at most once
// more before terminating.
func normalizeIndex(idx, n int, conv func(int) (int, error)) (int, error) {
	switch {
	case idx < -n:
		v, err := normalizeIndex(n+1, n, conv)
		if err != nil {
			return 0, err
		}
		return -v - 1, nil
	case idx < 0:
		return normalizeIndex(n+idx, n, conv)
	case idx > n:
		return normalizeIndex(n, n, conv)
	default:
		return conv(idx)
	}
}

func identityIndex(i int) (int, error) {
	return i, nil
}

// fullToSubIndex translates a full-token index to the sub-token offset where
// that full token starts. Total: defined for any index after normalization.
func (b *base) fullToSubIndex(idx int) int {
	nFull := b.meta.Len()
	v, _ := normalizeIndex(idx, nFull, func(i int) (int, error) {
		return b.fullToSub[i], nil
	})
	return v
}

// subToFullIndex translates a sub-token offset to a full-token index.
// Partial: offsets strictly inside a full token fail with MisalignmentError.
// The normalization uses the sub-token count as the view length.
func (b *base) subToFullIndex(idx int) (int, error) {
	return normalizeIndex(idx, len(b.tokens), func(i int) (int, error) {
		full, ok := b.subToFull[i]
		if !ok {
			return 0, &MisalignmentError{Index: i}
		}
		return full, nil
	})
}

// clampOffset resolves a translated index (possibly the negative
// before-start sentinel) to a physical slice offset in [0, n].
func clampOffset(i, n int) int {
	if i < 0 {
		i += n
		if i < 0 {
			i = 0
		}
	}
	if i > n {
		i = n
	}
	return i
}

// resolveBound normalizes one slice bound in the view's own granularity and
// clamps it to a physical offset. A nil bound resolves to the given default.
func resolveBound(bound *int, def, n int) int {
	if bound == nil {
		return def
	}
	v, _ := normalizeIndex(*bound, n, identityIndex)
	return clampOffset(v, n)
}

// copyBase returns a base owning fresh copies of the tokens and metadata,
// with the index tables rebuilt. View-kind transitions use it so that no two
// live views share mutable backing storage.
func (b *base) copyBase() base {
	out := base{
		tokens:        cloneStrings(b.tokens),
		meta:          b.meta.clone(),
		markerApplied: b.markerApplied,
		markers:       b.markers,
	}
	out.buildIndex()
	return out
}

// Metadata returns a copy of the grouping metadata.
func (b *base) Metadata() Metadata {
	return b.meta.clone()
}

// Tokens returns a copy of the raw sub-token list.
func (b *base) Tokens() []string {
	out := make([]string, len(b.tokens))
	copy(out, b.tokens)
	return out
}

// MarkerApplied reports whether every full token was declared to carry the
// end-of-word marker at construction.
func (b *base) MarkerApplied() bool {
	return b.markerApplied
}

// Markers returns the marker configuration the sequence was built with.
func (b *base) Markers() Markers {
	return b.markers
}

func cloneStrings(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func concatStrings(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return out
}
