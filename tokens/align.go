package tokens

import "iter"

// Alignment iterators project external per-token data between the two
// granularities. They work against any slice that parallels a sequence, not
// just the sequence's own tokens, so per-token labels, features or model
// outputs can follow a view without being rebuilt into one. When data is
// shorter than the metadata requires, iteration stops early rather than
// erroring; callers needing strict alignment must check lengths themselves.

// Broadcast replicates each element of full-token-granularity data across
// that token's sub-tokens, producing a sub-token-granularity sequence. For
// counts [1, 2], data [a, b] yields a, b, b.
func Broadcast[E any](meta Metadata, data []E) iter.Seq[E] {
	return func(yield func(E) bool) {
		for i, c := range meta.SubtokenCounts {
			if i >= len(data) {
				return
			}
			for range c {
				if !yield(data[i]) {
					return
				}
			}
		}
	}
}

// Regroup groups sub-token-granularity data by full-token boundaries and
// applies fold to each group, producing a full-token-granularity sequence.
// For counts [1, 2], data [a, b, c] yields fold([a]), fold([b, c]).
func Regroup[E, R any](meta Metadata, data []E, fold func([]E) R) iter.Seq[R] {
	return func(yield func(R) bool) {
		off := 0
		for _, c := range meta.SubtokenCounts {
			if off+c > len(data) {
				return
			}
			if !yield(fold(data[off : off+c])) {
				return
			}
			off += c
		}
	}
}

// GroupBy is Regroup with an identity fold: it yields a copy of each
// full-token group of data.
func GroupBy[E any](meta Metadata, data []E) iter.Seq[[]E] {
	return Regroup(meta, data, func(group []E) []E {
		out := make([]E, len(group))
		copy(out, group)
		return out
	})
}
