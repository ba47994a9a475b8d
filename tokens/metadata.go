// Package tokens implements a token sequence that can be addressed at two
// granularities at once: full tokens (words, identifiers) and the sub-tokens
// they were split into (e.g. BPE pieces). Both views share one backing
// representation and stay synchronized through per-token sub-token counts;
// operations that cannot keep the two views aligned degrade to an Unaligned
// carrier instead of corrupting the bookkeeping.
package tokens

import (
	"github.com/pkg/errors"
)

// TokenType tags a full token with a caller-defined category. The core
// treats it as opaque; splitters define their own enumerations.
type TokenType int32

// Metadata describes how a flat sub-token list groups into full tokens:
// SubtokenCounts[i] is the number of sub-tokens composing full token i, and
// TokenTypes[i] is its tag. Both slices always have the same length.
// Counts are expected to be positive.
type Metadata struct {
	SubtokenCounts []int
	TokenTypes     []TokenType
}

// NewMetadata builds a Metadata from parallel counts and types.
func NewMetadata(counts []int, types []TokenType) (Metadata, error) {
	if len(counts) != len(types) {
		return Metadata{}, errors.Errorf("metadata arrays out of sync: %d counts vs %d types", len(counts), len(types))
	}
	return Metadata{SubtokenCounts: counts, TokenTypes: types}, nil
}

// Len returns the number of full tokens described.
func (m Metadata) Len() int {
	return len(m.SubtokenCounts)
}

// Total returns the total number of sub-tokens described.
func (m Metadata) Total() int {
	total := 0
	for _, c := range m.SubtokenCounts {
		total += c
	}
	return total
}

// Concat appends other's counts and types in place.
func (m *Metadata) Concat(other Metadata) {
	m.SubtokenCounts = append(m.SubtokenCounts, other.SubtokenCounts...)
	m.TokenTypes = append(m.TokenTypes, other.TokenTypes...)
}

// slice returns a fresh Metadata covering full tokens [start:stop).
// Bounds must already be normalized to [0, Len()].
func (m Metadata) slice(start, stop int) Metadata {
	if stop < start {
		stop = start
	}
	out := Metadata{
		SubtokenCounts: make([]int, stop-start),
		TokenTypes:     make([]TokenType, stop-start),
	}
	copy(out.SubtokenCounts, m.SubtokenCounts[start:stop])
	copy(out.TokenTypes, m.TokenTypes[start:stop])
	return out
}

// clone returns a deep copy.
func (m Metadata) clone() Metadata {
	return m.slice(0, m.Len())
}
