package tokens

import (
	"fmt"

	"github.com/pkg/errors"
)

// Sentinel errors for misuse of the sequence API. They are reported
// synchronously at the offending call and never retried.
var (
	// ErrInvalidOperand reports a concatenation or assignment operand of the
	// wrong kind. No partial mutation happens when it is returned.
	ErrInvalidOperand = errors.New("invalid operand")

	// ErrUnsupportedStep reports a slice request with a step other than one.
	ErrUnsupportedStep = errors.New("slicing with a step is not supported")

	// ErrNotImplemented reports a request for the bracketing word-marker
	// scheme, which is recognized but deliberately unsupported.
	ErrNotImplemented = errors.New("not implemented")
)

// LengthMismatchError reports that the sub-token list disagrees with the
// total sub-token count declared by metadata. Fatal at construction.
type LengthMismatchError struct {
	Tokens   int // elements in the sub-token list
	Declared int // sum of metadata sub-token counts
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("tokens and metadata are out of sync: the sub-token list has %d elements but metadata declares %d sub-tokens",
		e.Tokens, e.Declared)
}

// MissingTerminalMarkerError reports a full token whose concatenated
// sub-tokens do not end with the word-end marker even though the sequence
// was declared marker-complete. Fatal at construction.
type MissingTerminalMarkerError struct {
	Token  string // offending full token, sub-tokens concatenated
	Marker string
}

func (e *MissingTerminalMarkerError) Error() string {
	return fmt.Sprintf("token %q is declared complete but does not end with %q", e.Token, e.Marker)
}

// MisalignmentError reports a sub-token index that falls strictly inside a
// full token rather than on a boundary. Slicing catches it internally and
// degrades to an Unaligned carrier; direct lookups surface it to the caller.
type MisalignmentError struct {
	Index int // sub-token offset that is not a full-token boundary
}

func (e *MisalignmentError) Error() string {
	return fmt.Sprintf("sub-token index %d is in the middle of a full token", e.Index)
}
