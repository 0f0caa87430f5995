package storage

import (
	"errors"

	"github.com/revelaction/entail/score"
	sent "github.com/revelaction/entail/sentence"
)

var ErrNotFound = errors.New("not found")

// PairReader defines read operations for pair storage
type PairReader interface {
	// List returns all pairs in corpus order
	List() (sent.Corpus, error)

	// Read returns a single pair by id
	Read(id string) (sent.Pair, error)
}

// PairWriter defines write operations for pair storage
type PairWriter interface {
	// Write persists a pair to storage
	Write(p sent.Pair) error
}

// PairRepository combines read and write operations
type PairRepository interface {
	PairReader
	PairWriter
}

// FrequencyReader reads back the lemma counts of a corpus
type FrequencyReader interface {
	Counts() (map[string]int, error)
}

// FrequencyWriter persists the lemma counts of a corpus, replacing any
// previous ones
type FrequencyWriter interface {
	WriteCounts(counts map[string]int) error
}

// ResultWriter persists the score of a pair. An existing result of the
// same pair is replaced.
type ResultWriter interface {
	WriteResult(r score.Result) error
}

// ResultReader reads back stored scores in pair order
type ResultReader interface {
	Results() ([]score.Result, error)
}

// LemmaFinder finds the pairs whose text or hypothesis contain all lemmas
type LemmaFinder interface {
	FindByLemmas(lemmas []string) ([]string, error)
}
