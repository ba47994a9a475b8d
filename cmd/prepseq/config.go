package main

import (
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/subwordml/prepseq/tokens"
)

// config is the TOML pipeline configuration.
type config struct {
	// Dataset is the root of the source files to preprocess.
	Dataset string `toml:"dataset"`
	// PrepID names this preprocessing configuration.
	PrepID string `toml:"prep_id"`
	// Extension filters source files; empty means all files.
	Extension string `toml:"extension"`
	// ParsedRoot, PrepRoot and ArchiveRoot hold derived stage output.
	// They default to siblings of the dataset root.
	ParsedRoot  string `toml:"parsed_root"`
	PrepRoot    string `toml:"prep_root"`
	ArchiveRoot string `toml:"archive_root"`
	// WordEnd is the end-of-word marker suffix.
	WordEnd string `toml:"word_end"`
	// SPMModel optionally points at a SentencePiece model; when set, words
	// are split with it instead of the naming-convention splitter.
	SPMModel string `toml:"spm_model"`
}

// loadConfig reads the config file (if any) and applies flag overrides and
// defaults.
func loadConfig(cmd *cobra.Command) (*config, error) {
	cfg := &config{PrepID: "sub", WordEnd: tokens.DefaultWordEnd}

	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, err
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, errors.Wrapf(err, "failed to load config %q", path)
		}
	}

	if ds, err := cmd.Root().PersistentFlags().GetString("dataset"); err == nil && ds != "" {
		cfg.Dataset = ds
	}
	if cfg.Dataset == "" {
		return nil, errors.New("no dataset configured: pass --dataset or set it in the config file")
	}

	parent := filepath.Dir(cfg.Dataset)
	if cfg.ParsedRoot == "" {
		cfg.ParsedRoot = filepath.Join(parent, "parsed")
	}
	if cfg.PrepRoot == "" {
		cfg.PrepRoot = filepath.Join(parent, "prep")
	}
	if cfg.ArchiveRoot == "" {
		cfg.ArchiveRoot = filepath.Join(parent, "archive")
	}
	return cfg, nil
}

// markers returns the marker configuration the pipeline runs with.
func (c *config) markers() tokens.Markers {
	return tokens.Markers{WordEnd: c.WordEnd, Scheme: tokens.SchemeWordEnd}
}
