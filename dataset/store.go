package dataset

import (
	"os"

	"github.com/google/uuid"
	"github.com/parquet-go/parquet-go"
	"github.com/pkg/errors"

	"github.com/subwordml/prepseq/tokens"
)

// Sequence pairs a preprocessed token sequence with the source file it came
// from, relative to the dataset root.
type Sequence struct {
	Path string
	View *tokens.SubTokenView
}

// sequenceRow is the parquet row format of the preprocess stage: one row
// per source unit, carrying the flat sub-token list, the per-token counts
// and type tags, and whether the word-end marker was applied.
type sequenceRow struct {
	Path          string   `parquet:"path"`
	Subtokens     []string `parquet:"subtokens,list"`
	Counts        []int32  `parquet:"counts,list"`
	Types         []int32  `parquet:"types,list"`
	MarkerApplied bool     `parquet:"marker_applied"`
}

// WriteSequences persists sequences as a parquet file at path. The file is
// written to a uniquely named temporary sibling first and renamed into
// place, so readers never observe a half-written file.
func WriteSequences(path string, seqs []Sequence) error {
	rows := make([]sequenceRow, len(seqs))
	for i, s := range seqs {
		meta := s.View.Metadata()
		row := sequenceRow{
			Path:          s.Path,
			Subtokens:     s.View.Tokens(),
			Counts:        make([]int32, meta.Len()),
			Types:         make([]int32, meta.Len()),
			MarkerApplied: s.View.MarkerApplied(),
		}
		for j, c := range meta.SubtokenCounts {
			row.Counts[j] = int32(c)
			row.Types[j] = int32(meta.TokenTypes[j])
		}
		rows[i] = row
	}

	tmpPath := path + "." + uuid.NewString() + ".part"
	f, err := os.Create(tmpPath)
	if err != nil {
		return errors.Wrapf(err, "failed to create temporary sequence file %q", tmpPath)
	}

	w := parquet.NewGenericWriter[sequenceRow](f)
	if _, err := w.Write(rows); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return errors.Wrapf(err, "failed to write sequences to %q", tmpPath)
	}
	if err := w.Close(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return errors.Wrapf(err, "failed to finalize sequence file %q", tmpPath)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return errors.Wrapf(err, "failed to close sequence file %q", tmpPath)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return errors.Wrapf(err, "failed to move sequence file into place at %q", path)
	}
	return nil
}

// ReadSequences loads sequences written by WriteSequences, rebuilding
// validated sub-token views. markers configures the terminal-subtoken
// predicate for rows whose marker flag is set.
func ReadSequences(path string, markers tokens.Markers) ([]Sequence, error) {
	rows, err := parquet.ReadFile[sequenceRow](path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read sequence file %q", path)
	}

	out := make([]Sequence, 0, len(rows))
	for _, row := range rows {
		counts := make([]int, len(row.Counts))
		types := make([]tokens.TokenType, len(row.Types))
		for i, c := range row.Counts {
			counts[i] = int(c)
			types[i] = tokens.TokenType(row.Types[i])
		}
		meta, err := tokens.NewMetadata(counts, types)
		if err != nil {
			return nil, errors.Wrapf(err, "corrupt metadata for %q in %q", row.Path, path)
		}

		var view *tokens.SubTokenView
		if row.MarkerApplied {
			view, err = tokens.NewSubTokensMarked(row.Subtokens, meta, markers)
		} else {
			view, err = tokens.NewSubTokens(row.Subtokens, meta)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "corrupt sequence for %q in %q", row.Path, path)
		}
		out = append(out, Sequence{Path: row.Path, View: view})
	}
	return out, nil
}
