// Package api defines the tokenizer boundary: how raw source text becomes a
// (sub-tokens, metadata) pair consumable by the tokens package. The core
// makes no assumption about how tokens were produced, only that counts and
// terminal-marker invariants hold; implementations live in sibling packages.
package api

import "github.com/subwordml/prepseq/tokens"

// Token type tags assigned by the bundled tokenizers. The tokens package
// treats them as opaque.
const (
	TypeWord tokens.TokenType = iota + 1
	TypeNumber
	TypePunctuation
	TypeOther
)

// Config carries settings shared by tokenizer implementations.
type Config struct {
	// Markers is the end-of-word marker configuration applied to the final
	// sub-token of every split word.
	Markers tokens.Markers
}

// DefaultConfig returns a Config with the default word-end marker.
func DefaultConfig() *Config {
	return &Config{Markers: tokens.DefaultMarkers()}
}

// Tokenizer turns one unit of source text into a marker-complete sub-token
// view.
type Tokenizer interface {
	Tokenize(text string) (*tokens.SubTokenView, error)
}
