package dataset

import (
	"math/rand"
	"time"

	"github.com/gofrs/flock"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// StageFunc produces one stage's output for a dataset.
type StageFunc func(*Dataset) error

// Runner executes the preprocessing stages in order, making sure not to
// rerun a stage whose cached output is already available and up to date.
// Stale output is archived before the stage reruns.
type Runner struct {
	Dataset *Dataset

	// Parse, Preprocess and Vocab produce the respective stage outputs.
	Parse      StageFunc
	Preprocess StageFunc
	Vocab      StageFunc
}

// RunParsing brings the parse stage up to date.
func (r *Runner) RunParsing() error {
	klog.Info("--- Parsing...")
	return r.runStage(r.Dataset.Parsed().Path(), func() error {
		return r.Parse(r.Dataset)
	})
}

// RunUntilPreprocessing brings the parse and preprocess stages up to date.
func (r *Runner) RunUntilPreprocessing() error {
	if err := r.RunParsing(); err != nil {
		return err
	}
	klog.Info("--- Preprocessing...")
	return r.runStage(r.Dataset.Preprocessed().Path(), func() error {
		return r.Preprocess(r.Dataset)
	})
}

// RunUntilVocab brings all three stages up to date.
func (r *Runner) RunUntilVocab() error {
	if err := r.RunUntilPreprocessing(); err != nil {
		return err
	}
	klog.Info("--- Computing vocab...")
	return r.runStage(r.Dataset.VocabPath(), func() error {
		return r.Vocab(r.Dataset)
	})
}

// runStage decides whether the stage output at path needs (re)producing and
// runs fn if so, holding an exclusive file lock so concurrent pipeline
// invocations don't produce the same stage twice.
func (r *Runner) runStage(path string, fn func() error) error {
	return withFileLock(path+".lock", func() error {
		switch {
		case !PathReady(path):
			return r.produce(path, fn)
		default:
			stale, err := PathOutdated(path)
			if err != nil {
				return err
			}
			if !stale {
				klog.Infof("Stage output %q is up to date.", path)
				return nil
			}
			klog.Infof("Stage output %q is stale, archiving.", path)
			if err := ArchivePath(path, r.Dataset.archiveRoot); err != nil {
				return err
			}
			return r.produce(path, fn)
		}
	})
}

func (r *Runner) produce(path string, fn func() error) error {
	if err := fn(); err != nil {
		return err
	}
	return SetPathReady(path)
}

// withFileLock runs fn under an exclusive lock on lockPath, polling with a
// 1 to 2 second period until the lock is acquired.
func withFileLock(lockPath string, fn func() error) (err error) {
	fileLock := flock.New(lockPath)
	for {
		locked, lockErr := fileLock.TryLock()
		if lockErr != nil {
			return errors.Wrapf(lockErr, "while trying to lock %q", lockPath)
		}
		if locked {
			break
		}
		time.Sleep(time.Millisecond * time.Duration(1000+rand.Intn(1000)))
	}
	defer func() {
		if unlockErr := fileLock.Unlock(); unlockErr != nil && err == nil {
			err = errors.Wrapf(unlockErr, "unlocking %q", lockPath)
		}
	}()
	return fn()
}
