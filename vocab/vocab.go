// Package vocab gathers token frequency statistics from token sequences and
// raw corpus files. It only ever reads sequences; building the statistics
// never mutates a view.
package vocab

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/edsrzf/mmap-go"
	"github.com/pkg/errors"

	"github.com/subwordml/prepseq/tokens"
)

// Entry is one vocabulary item with its corpus frequency.
type Entry struct {
	Token string
	Count int64
}

// Counter accumulates token frequencies.
type Counter struct {
	counts map[string]int64
}

// NewCounter returns an empty counter.
func NewCounter() *Counter {
	return &Counter{counts: make(map[string]int64)}
}

// AddSubTokens counts every sub-token of v.
func (c *Counter) AddSubTokens(v *tokens.SubTokenView) {
	for tok := range v.All() {
		c.counts[tok]++
	}
}

// AddFullTokens counts every formatted full token of v.
func (c *Counter) AddFullTokens(v *tokens.FullTokenView) {
	for tok := range v.All() {
		c.counts[tok]++
	}
}

// AddCorpusFile counts whitespace-separated tokens of a raw corpus file.
// The file is scanned through a read-only memory map so large corpora are
// not copied into the heap.
func (c *Counter) AddCorpusFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "failed to open corpus file %q", path)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return errors.Wrapf(err, "failed to stat corpus file %q", path)
	}
	if info.Size() == 0 {
		return nil
	}

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return errors.Wrapf(err, "failed to mmap corpus file %q", path)
	}
	defer data.Unmap()

	for _, tok := range bytes.Fields(data) {
		c.counts[string(tok)]++
	}
	return nil
}

// Merge adds other's counts into c.
func (c *Counter) Merge(other *Counter) {
	for tok, n := range other.counts {
		c.counts[tok] += n
	}
}

// Entries returns the vocabulary ordered by descending count, ties broken
// by token, so output is deterministic.
func (c *Counter) Entries() []Entry {
	out := make([]Entry, 0, len(c.counts))
	for tok, n := range c.counts {
		out = append(out, Entry{Token: tok, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Token < out[j].Token
	})
	return out
}

// Write emits the vocabulary as "token count" lines.
func (c *Counter) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, e := range c.Entries() {
		if _, err := fmt.Fprintf(bw, "%s %d\n", e.Token, e.Count); err != nil {
			return errors.Wrap(err, "failed to write vocab entry")
		}
	}
	return bw.Flush()
}

// WriteFile writes the vocabulary to path.
func (c *Counter) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create vocab file %q", path)
	}
	if err := c.Write(f); err != nil {
		f.Close()
		return err
	}
	return errors.Wrapf(f.Close(), "failed to close vocab file %q", path)
}

// ReadFile parses a vocabulary written by WriteFile.
func ReadFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open vocab file %q", path)
	}
	defer f.Close()

	var out []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		idx := strings.LastIndexByte(line, ' ')
		if idx < 0 {
			return nil, errors.Errorf("malformed vocab line %q in %q", line, path)
		}
		n, err := strconv.ParseInt(line[idx+1:], 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "malformed count in vocab line %q", line)
		}
		out = append(out, Entry{Token: line[:idx], Count: n})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to read vocab file %q", path)
	}
	return out, nil
}
