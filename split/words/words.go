// Package words implements the reference tokenizer: it splits text into
// words, numbers and punctuation, then splits each word on underscores and
// camel-case humps into sub-tokens.
package words

import (
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/subwordml/prepseq/split/api"
	"github.com/subwordml/prepseq/tokens"
)

// Tokenizer splits source text at word granularity and identifiers into
// their naming-convention segments.
type Tokenizer struct {
	cfg *api.Config
}

// Compile time assert that Tokenizer implements api.Tokenizer.
var _ api.Tokenizer = &Tokenizer{}

// New creates a word tokenizer. A nil config uses the defaults.
func New(cfg *api.Config) *Tokenizer {
	if cfg == nil {
		cfg = api.DefaultConfig()
	}
	return &Tokenizer{cfg: cfg}
}

// Tokenize NFC-normalizes text, splits it into full tokens and each word
// into sub-tokens, and returns a marker-complete sub-token view.
func (t *Tokenizer) Tokenize(text string) (*tokens.SubTokenView, error) {
	var subs []string
	var counts []int
	var types []tokens.TokenType

	for _, w := range scan(norm.NFC.String(text)) {
		pieces := w.split()
		pieces[len(pieces)-1] += t.cfg.Markers.WordEnd
		subs = append(subs, pieces...)
		counts = append(counts, len(pieces))
		types = append(types, w.kind)
	}

	meta, err := tokens.NewMetadata(counts, types)
	if err != nil {
		return nil, err
	}
	return tokens.NewSubTokensMarked(subs, meta, t.cfg.Markers)
}

// word is one full token before subword splitting.
type word struct {
	text string
	kind tokens.TokenType
}

// split breaks an identifier on underscores and camel-case humps. Separators
// are kept as their own sub-tokens so the pieces concatenate back to the
// original text. Non-word tokens stay whole.
func (w word) split() []string {
	if w.kind != api.TypeWord {
		return []string{w.text}
	}

	var pieces []string
	runes := []rune(w.text)
	start := 0
	for i := 1; i < len(runes); i++ {
		switch {
		case runes[i] == '_':
			if i > start {
				pieces = append(pieces, string(runes[start:i]))
			}
			pieces = append(pieces, "_")
			start = i + 1
		case unicode.IsUpper(runes[i]) && unicode.IsLower(runes[i-1]):
			pieces = append(pieces, string(runes[start:i]))
			start = i
		}
	}
	if start < len(runes) {
		pieces = append(pieces, string(runes[start:]))
	}
	if len(pieces) == 0 {
		pieces = []string{w.text}
	}
	return pieces
}

// scan splits text into words, numbers and punctuation, dropping whitespace.
func scan(text string) []word {
	var out []word
	var current []rune
	currentKind := api.TypeOther

	flush := func() {
		if len(current) > 0 {
			out = append(out, word{text: string(current), kind: currentKind})
			current = current[:0]
		}
	}

	for _, r := range text {
		switch {
		case unicode.IsSpace(r):
			flush()
		case unicode.IsLetter(r) || r == '_':
			if currentKind != api.TypeWord {
				flush()
				currentKind = api.TypeWord
			}
			current = append(current, r)
		case unicode.IsDigit(r):
			if currentKind == api.TypeWord {
				// Digits inside an identifier belong to it.
				current = append(current, r)
				continue
			}
			if currentKind != api.TypeNumber {
				flush()
				currentKind = api.TypeNumber
			}
			current = append(current, r)
		default:
			flush()
			currentKind = api.TypePunctuation
			current = append(current, r)
			flush()
		}
	}
	flush()
	return out
}
