// Package sentencepiece adapts a SentencePiece model into an api.Tokenizer
// producing aligned sub-token views: each whitespace word becomes one full
// token whose sub-tokens are the model's pieces.
package sentencepiece

import (
	"strings"

	esentencepiece "github.com/eliben/go-sentencepiece"
	"github.com/pkg/errors"

	"github.com/subwordml/prepseq/split/api"
	"github.com/subwordml/prepseq/tokens"
)

// metaspace is the U+2581 space replacement SentencePiece prefixes pieces
// with; it is stripped so pieces concatenate back to the original word.
const metaspace = "▁"

// Tokenizer implements api.Tokenizer on top of a SentencePiece processor.
type Tokenizer struct {
	proc *esentencepiece.Processor
	cfg  *api.Config
}

// Compile time assert that Tokenizer implements api.Tokenizer.
var _ api.Tokenizer = &Tokenizer{}

// NewFromPath creates a tokenizer from a SentencePiece model file.
// A nil config uses the defaults.
func NewFromPath(cfg *api.Config, modelPath string) (*Tokenizer, error) {
	proc, err := esentencepiece.NewProcessorFromPath(modelPath)
	if err != nil {
		return nil, errors.Wrapf(err, "can't create sentencepiece processor from %q", modelPath)
	}
	if cfg == nil {
		cfg = api.DefaultConfig()
	}
	return &Tokenizer{proc: proc, cfg: cfg}, nil
}

// Tokenize encodes each whitespace-separated word into its pieces and
// returns a marker-complete sub-token view, one full token per word.
func (t *Tokenizer) Tokenize(text string) (*tokens.SubTokenView, error) {
	var subs []string
	var counts []int
	var types []tokens.TokenType

	for _, w := range strings.Fields(text) {
		pieces := t.splitWord(w)
		if len(pieces) == 0 {
			continue
		}
		pieces[len(pieces)-1] += t.cfg.Markers.WordEnd
		subs = append(subs, pieces...)
		counts = append(counts, len(pieces))
		types = append(types, api.TypeWord)
	}

	meta, err := tokens.NewMetadata(counts, types)
	if err != nil {
		return nil, err
	}
	return tokens.NewSubTokensMarked(subs, meta, t.cfg.Markers)
}

// splitWord encodes one word and returns the non-empty piece texts with the
// metaspace prefix removed.
func (t *Tokenizer) splitWord(w string) []string {
	encoded := t.proc.Encode(w)
	pieces := make([]string, 0, len(encoded))
	for _, tok := range encoded {
		piece := strings.TrimPrefix(tok.Text, metaspace)
		if piece == "" {
			continue
		}
		pieces = append(pieces, piece)
	}
	return pieces
}
