package tokens

import (
	"strings"

	"github.com/pkg/errors"
)

// MarkerScheme selects how full-token boundaries are marked inside the
// sub-token text itself.
type MarkerScheme int

const (
	// SchemeWordEnd marks the final sub-token of a full token with a suffix.
	SchemeWordEnd MarkerScheme = iota
	// SchemeBrackets would wrap a split token in distinct start/end marker
	// tokens. Recognized but unsupported.
	SchemeBrackets
)

// DefaultWordEnd is the default end-of-word marker suffix.
const DefaultWordEnd = "</t>"

// Markers configures the end-of-word marker recognized by the
// terminal-subtoken predicate.
type Markers struct {
	WordEnd string
	Scheme  MarkerScheme
}

// DefaultMarkers returns the suffix scheme with the default marker.
func DefaultMarkers() Markers {
	return Markers{WordEnd: DefaultWordEnd, Scheme: SchemeWordEnd}
}

// IsTerminal reports whether sub is the final sub-token of a full token,
// i.e. whether it ends with the word-end marker. It allows boundary
// detection without full metadata. Requesting the bracketing scheme fails
// with ErrNotImplemented rather than guessing.
func (m Markers) IsTerminal(sub string) (bool, error) {
	if m.Scheme != SchemeWordEnd {
		return false, errors.Wrap(ErrNotImplemented, "terminal detection for bracket-marked tokens")
	}
	return strings.HasSuffix(sub, m.WordEnd), nil
}
