// Package idf counts lemma frequencies over a corpus and turns them into
// inverse frequencies used as substitution weights.
package idf

import (
	"errors"
	"fmt"
	"sort"

	sent "github.com/revelaction/entail/sentence"
)

var ErrMissingFrequency = errors.New("missing frequency entry")

// Counter aggregates lemma counts. It has a single writer; call Table once
// every pair of the corpus has been aggregated.
type Counter struct {
	counts map[string]int
	pairs  int
}

func NewCounter() *Counter {
	return &Counter{counts: map[string]int{}}
}

// Aggregate counts every word lemma of the text and hypothesis of the pair.
func (c *Counter) Aggregate(p sent.Pair) {
	c.pairs++
	p.Lemmas(func(lemma string) {
		c.counts[lemma]++
	})
}

// NumPairs returns the number of aggregated pairs.
func (c *Counter) NumPairs() int {
	return c.pairs
}

// Counts returns a copy of the raw lemma counts.
func (c *Counter) Counts() map[string]int {
	counts := make(map[string]int, len(c.counts))
	for k, v := range c.counts {
		counts[k] = v
	}
	return counts
}

// Table freezes the current counts into an immutable Table.
func (c *Counter) Table() *Table {
	t, _ := FromCounts(c.counts)
	return t
}

// Table maps a lemma to its inverse frequency (1/count). It is read only
// and safe for concurrent use.
type Table struct {
	inverse map[string]float64
	counts  map[string]int
}

// FromCounts builds a Table from lemma counts, e.g. read back from
// storage. Non positive counts are rejected.
func FromCounts(counts map[string]int) (*Table, error) {
	t := &Table{
		inverse: make(map[string]float64, len(counts)),
		counts:  make(map[string]int, len(counts)),
	}

	for lemma, n := range counts {
		if n <= 0 {
			return nil, fmt.Errorf("invalid count %d for lemma %q", n, lemma)
		}
		t.counts[lemma] = n
		t.inverse[lemma] = 1 / float64(n)
	}

	return t, nil
}

// Inverse returns 1/count for the lemma.
func (t *Table) Inverse(lemma string) (float64, error) {
	v, ok := t.inverse[lemma]
	if !ok {
		return 0, fmt.Errorf("%w: lemma %q", ErrMissingFrequency, lemma)
	}
	return v, nil
}

// Count returns the raw count of the lemma, 0 when absent.
func (t *Table) Count(lemma string) int {
	return t.counts[lemma]
}

// Len returns the number of distinct lemmas.
func (t *Table) Len() int {
	return len(t.counts)
}

// Entry is a lemma with its count.
type Entry struct {
	Lemma string
	Count int
}

// Top returns the n most frequent lemmas, most frequent first. Ties are
// sorted by lemma.
func (t *Table) Top(n int) []Entry {
	entries := make([]Entry, 0, len(t.counts))
	for lemma, c := range t.counts {
		entries = append(entries, Entry{lemma, c})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Lemma < entries[j].Lemma
	})

	if n >= 0 && n < len(entries) {
		entries = entries[:n]
	}
	return entries
}
