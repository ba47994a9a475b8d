// Package dataset stages the preprocessing pipeline on the filesystem: it
// tracks, per stage (parse, preprocess, compute-vocabulary), whether cached
// output exists and is newer than its input, archives stale results before
// re-running a stage, and stores the preprocess stage's token sequences.
package dataset

import (
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
)

const (
	// timestampLayout renders directory modification times into stage
	// directory names and stamp files.
	timestampLayout = "06-01-02T15-04-05"

	// modificationCheckLimit bounds how many entries a staleness walk
	// inspects, so huge trees don't make every staleness check a full scan.
	modificationCheckLimit = 1000

	parsedSuffix       = ".parsed"
	preprocessedSuffix = ".prep"
	archivedExt        = "archived"
	vocabFileName      = "vocab"
)

// stampPath returns the hidden file recording path's last-seen modification
// timestamp, kept next to the path itself.
func stampPath(path string) string {
	dir, name := filepath.Split(path)
	return filepath.Join(dir, "."+name+".lastmodif")
}

// lastModified returns the newest modification time found in path, walking
// at most modificationCheckLimit entries.
func lastModified(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "failed to stat %q", path)
	}
	newest := info.ModTime()
	if !info.IsDir() {
		return newest, nil
	}

	seen := 0
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == path {
			return nil
		}
		if seen >= modificationCheckLimit {
			return fs.SkipAll
		}
		seen++
		fi, err := d.Info()
		if err != nil {
			return err
		}
		if fi.ModTime().After(newest) {
			newest = fi.ModTime()
		}
		return nil
	})
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "failed to walk %q", path)
	}
	return newest, nil
}

// Timestamp renders path's last modification time for use in derived names.
func Timestamp(path string) (string, error) {
	t, err := lastModified(path)
	if err != nil {
		return "", err
	}
	return t.Format(timestampLayout), nil
}

// PathReady reports whether path exists and carries a completion stamp.
func PathReady(path string) bool {
	if _, err := os.Stat(path); err != nil {
		return false
	}
	_, err := os.Stat(stampPath(path))
	return err == nil
}

// SetPathReady stamps path with its current modification timestamp.
func SetPathReady(path string) error {
	ts, err := Timestamp(path)
	if err != nil {
		return err
	}
	return errors.Wrapf(os.WriteFile(stampPath(path), []byte(ts), 0o644), "failed to stamp %q", path)
}

// PathOutdated reports whether path changed since it was stamped. A missing
// stamp is an error: callers must check PathReady first.
func PathOutdated(path string) (bool, error) {
	recorded, err := os.ReadFile(stampPath(path))
	if err != nil {
		return false, errors.Wrapf(err, "no completion stamp for %q", path)
	}
	current, err := Timestamp(path)
	if err != nil {
		return false, err
	}
	return string(recorded) != current, nil
}

// ArchivePath moves path and its stamp into archiveRoot under
// "<base>.archived.<timestamp>" names, clearing the way for a rerun.
func ArchivePath(path, archiveRoot string) error {
	ts, err := Timestamp(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(archiveRoot, 0o755); err != nil {
		return errors.Wrapf(err, "failed to create archive root %q", archiveRoot)
	}
	base := filepath.Base(path)
	if err := os.Rename(path, filepath.Join(archiveRoot, base+"."+archivedExt+"."+ts)); err != nil {
		return errors.Wrapf(err, "failed to archive %q", path)
	}
	stamp := stampPath(path)
	if _, statErr := os.Stat(stamp); statErr == nil {
		stampBase := filepath.Base(stamp)
		if err := os.Rename(stamp, filepath.Join(archiveRoot, stampBase+"."+archivedExt+"."+ts)); err != nil {
			return errors.Wrapf(err, "failed to archive stamp of %q", path)
		}
	}
	return nil
}

// SubDataset is one stage's directory of a Dataset: the original source
// tree, its parsed form, or its preprocessed form.
type SubDataset struct {
	ds     *Dataset
	path   string
	suffix string
}

// Path returns the stage directory.
func (s *SubDataset) Path() string {
	return s.path
}

// Ready reports whether the stage output exists and was stamped complete.
func (s *SubDataset) Ready() bool {
	return PathReady(s.path)
}

// Outdated reports whether the stage output changed since it was stamped.
func (s *SubDataset) Outdated() (bool, error) {
	return PathOutdated(s.path)
}

// SetReady stamps the stage output as complete.
func (s *SubDataset) SetReady() error {
	return SetPathReady(s.path)
}

// Archive moves the stale stage output out of the way.
func (s *SubDataset) Archive() error {
	return ArchivePath(s.path, s.ds.archiveRoot)
}

// FilePath maps a file path relative to the dataset root into this stage's
// directory, applying the stage suffix.
func (s *SubDataset) FilePath(rel string) string {
	return filepath.Join(s.path, rel+s.suffix)
}

// Config locates a dataset and the roots its derived stages live under.
type Config struct {
	// Path is the dataset root holding the original source files.
	Path string
	// PrepID names the preprocessing configuration; it takes part in
	// derived directory names so different configurations don't collide.
	PrepID string
	// Extension filters which files the pipeline considers; empty means all.
	Extension string
	// ParsedRoot and PrepRoot hold the derived stage directories.
	// ArchiveRoot receives stale stage output.
	ParsedRoot  string
	PrepRoot    string
	ArchiveRoot string
}

// Dataset encapsulates the location of one dataset and the derived
// directories of its intermediate representations.
type Dataset struct {
	path        string
	prepID      string
	extension   string
	archiveRoot string
	modified    string

	original     *SubDataset
	parsed       *SubDataset
	preprocessed *SubDataset
	vocabDir     string
}

// Create validates the dataset location and prepares the stage directories.
func Create(cfg Config) (*Dataset, error) {
	if _, err := os.Stat(cfg.Path); err != nil {
		return nil, errors.Wrapf(err, "dataset path %q does not exist", cfg.Path)
	}
	ts, err := Timestamp(cfg.Path)
	if err != nil {
		return nil, err
	}

	d := &Dataset{
		path:        cfg.Path,
		prepID:      cfg.PrepID,
		extension:   cfg.Extension,
		archiveRoot: cfg.ArchiveRoot,
		modified:    ts,
	}
	dirName := d.Name() + "_" + ts
	d.original = &SubDataset{ds: d, path: cfg.Path}
	d.parsed = &SubDataset{ds: d, path: filepath.Join(cfg.ParsedRoot, dirName), suffix: parsedSuffix}
	d.preprocessed = &SubDataset{ds: d, path: filepath.Join(cfg.PrepRoot, dirName+"_"+cfg.PrepID), suffix: preprocessedSuffix}
	d.vocabDir = filepath.Join(cfg.PrepRoot, d.Name()+"_vocab")

	for _, dir := range []string{d.parsed.path, d.preprocessed.path, d.vocabDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrapf(err, "failed to create stage directory %q", dir)
		}
	}
	return d, nil
}

// Name returns the dataset's base name.
func (d *Dataset) Name() string {
	return filepath.Base(d.path)
}

// Modified returns the source tree's modification timestamp recorded at
// creation.
func (d *Dataset) Modified() string {
	return d.modified
}

// Original returns the stage holding the raw source files.
func (d *Dataset) Original() *SubDataset {
	return d.original
}

// Parsed returns the parse stage.
func (d *Dataset) Parsed() *SubDataset {
	return d.parsed
}

// Preprocessed returns the preprocess stage.
func (d *Dataset) Preprocessed() *SubDataset {
	return d.preprocessed
}

// VocabPath returns where the computed vocabulary file lives.
func (d *Dataset) VocabPath() string {
	return filepath.Join(d.vocabDir, vocabFileName)
}

// Files iterates the dataset's source files as paths relative to the
// dataset root, filtered by the configured extension.
func (d *Dataset) Files() ([]string, error) {
	var out []string
	err := filepath.WalkDir(d.path, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		if d.extension != "" && filepath.Ext(p) != "."+d.extension {
			return nil
		}
		rel, err := filepath.Rel(d.path, p)
		if err != nil {
			return err
		}
		out = append(out, rel)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list dataset files under %q", d.path)
	}
	return out, nil
}
