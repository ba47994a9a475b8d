package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/subwordml/prepseq/dataset"
	"github.com/subwordml/prepseq/split/api"
	"github.com/subwordml/prepseq/split/sentencepiece"
	"github.com/subwordml/prepseq/split/words"
	"github.com/subwordml/prepseq/vocab"
)

const sequencesFileName = "sequences.parquet"

// newRunner wires the three stage workers to a dataset.
func newRunner(cfg *config) (*dataset.Runner, error) {
	ds, err := dataset.Create(dataset.Config{
		Path:        cfg.Dataset,
		PrepID:      cfg.PrepID,
		Extension:   cfg.Extension,
		ParsedRoot:  cfg.ParsedRoot,
		PrepRoot:    cfg.PrepRoot,
		ArchiveRoot: cfg.ArchiveRoot,
	})
	if err != nil {
		return nil, err
	}

	splitter, err := newSplitter(cfg)
	if err != nil {
		return nil, err
	}

	return &dataset.Runner{
		Dataset:    ds,
		Parse:      parseStage(cfg, splitter),
		Preprocess: preprocessStage(cfg, splitter),
		Vocab:      vocabStage(cfg),
	}, nil
}

func newSplitter(cfg *config) (api.Tokenizer, error) {
	splitCfg := &api.Config{Markers: cfg.markers()}
	if cfg.SPMModel != "" {
		return sentencepiece.NewFromPath(splitCfg, cfg.SPMModel)
	}
	return words.New(splitCfg), nil
}

// parseStage writes each source file's full tokens, one per line, into the
// parse stage directory.
func parseStage(cfg *config, splitter api.Tokenizer) dataset.StageFunc {
	return func(ds *dataset.Dataset) error {
		files, err := ds.Files()
		if err != nil {
			return err
		}
		marker := cfg.WordEnd
		for _, rel := range files {
			data, err := os.ReadFile(filepath.Join(ds.Original().Path(), rel))
			if err != nil {
				return errors.Wrapf(err, "failed to read source file %q", rel)
			}
			view, err := splitter.Tokenize(string(data))
			if err != nil {
				return errors.Wrapf(err, "failed to tokenize %q", rel)
			}

			var out strings.Builder
			for word := range view.FullView().All() {
				out.WriteString(strings.TrimSuffix(word, marker))
				out.WriteByte('\n')
			}

			target := ds.Parsed().FilePath(rel)
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return errors.Wrapf(err, "failed to create parse output dir for %q", rel)
			}
			if err := os.WriteFile(target, []byte(out.String()), 0o644); err != nil {
				return errors.Wrapf(err, "failed to write parsed file for %q", rel)
			}
		}
		klog.Infof("Parsed %d files.", len(files))
		return nil
	}
}

// preprocessStage splits every source file into sub-tokens and persists the
// resulting sequences as one parquet file in the preprocess stage directory.
func preprocessStage(cfg *config, splitter api.Tokenizer) dataset.StageFunc {
	return func(ds *dataset.Dataset) error {
		files, err := ds.Files()
		if err != nil {
			return err
		}
		seqs := make([]dataset.Sequence, 0, len(files))
		for _, rel := range files {
			data, err := os.ReadFile(filepath.Join(ds.Original().Path(), rel))
			if err != nil {
				return errors.Wrapf(err, "failed to read source file %q", rel)
			}
			view, err := splitter.Tokenize(string(data))
			if err != nil {
				return errors.Wrapf(err, "failed to tokenize %q", rel)
			}
			seqs = append(seqs, dataset.Sequence{Path: rel, View: view})
		}

		if err := os.MkdirAll(ds.Preprocessed().Path(), 0o755); err != nil {
			return errors.Wrap(err, "failed to create preprocess stage dir")
		}
		target := filepath.Join(ds.Preprocessed().Path(), sequencesFileName)
		if err := dataset.WriteSequences(target, seqs); err != nil {
			return err
		}
		klog.Infof("Preprocessed %d files into %q.", len(files), target)
		return nil
	}
}

// vocabStage counts sub-token frequencies over the preprocessed sequences
// and writes the vocabulary file.
func vocabStage(cfg *config) dataset.StageFunc {
	return func(ds *dataset.Dataset) error {
		seqs, err := dataset.ReadSequences(filepath.Join(ds.Preprocessed().Path(), sequencesFileName), cfg.markers())
		if err != nil {
			return err
		}
		counter := vocab.NewCounter()
		for _, s := range seqs {
			counter.AddSubTokens(s.View)
		}
		if err := counter.WriteFile(ds.VocabPath()); err != nil {
			return err
		}
		klog.Infof("Vocabulary of %d entries written to %q.", len(counter.Entries()), ds.VocabPath())
		return nil
	}
}
