package sentencepiece

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tests need a real SentencePiece model; point PREPSEQ_SPM_MODEL at one
// (e.g. the flan-t5 tokenizer.model) to run them.

func TestTokenizeProducesAlignedView(t *testing.T) {
	modelPath := os.Getenv("PREPSEQ_SPM_MODEL")
	if modelPath == "" {
		t.Skip("PREPSEQ_SPM_MODEL not set")
	}

	tok, err := NewFromPath(nil, modelPath)
	require.NoError(t, err)

	v, err := tok.Tokenize("the quick brown fox")
	require.NoError(t, err)

	assert.True(t, v.MarkerApplied())
	assert.Equal(t, 4, v.FullView().Len())
	assert.Equal(t, v.Metadata().Total(), v.Len())

	// Pieces of each word concatenate back to the word plus the marker.
	assert.Equal(t,
		[]string{"the</t>", "quick</t>", "brown</t>", "fox</t>"},
		v.FullView().Strings())
}

func TestTokenizeEmpty(t *testing.T) {
	modelPath := os.Getenv("PREPSEQ_SPM_MODEL")
	if modelPath == "" {
		t.Skip("PREPSEQ_SPM_MODEL not set")
	}

	tok, err := NewFromPath(nil, modelPath)
	require.NoError(t, err)

	v, err := tok.Tokenize("")
	require.NoError(t, err)
	assert.Equal(t, 0, v.Len())
}
