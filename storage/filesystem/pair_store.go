package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/revelaction/entail/file"
	sent "github.com/revelaction/entail/sentence"
	"github.com/revelaction/entail/storage"
)

// PairStore reads pairs from a corpus file, or from every .xml and .json
// corpus file of a directory in name order.
type PairStore struct {
	path  string
	files []string

	// In-memory cache
	pairs sent.Corpus
	byId  map[string]int
}

var _ storage.PairRepository = (*PairStore)(nil)
var _ storage.LemmaFinder = (*PairStore)(nil)

// NewPairStore creates a filesystem pair store. Contents are read by Load.
func NewPairStore(path string) (*PairStore, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		return &PairStore{path: path, files: []string{path}}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".xml", ".json":
			files = append(files, filepath.Join(path, e.Name()))
		}
	}
	sort.Strings(files)

	return &PairStore{path: path, files: files}, nil
}

// Files returns the corpus files of the store.
func (h *PairStore) Files() []string {
	return h.files
}

// Load reads all corpus files into memory. The callback is called before
// each file is read (total, current name). Loading twice is a no op.
func (h *PairStore) Load(cb func(total int, name string)) error {
	if h.pairs != nil {
		return nil
	}

	pairs := sent.Corpus{}
	byId := map[string]int{}

	total := len(h.files)
	for _, path := range h.files {
		if cb != nil {
			cb(total, filepath.Base(path))
		}

		corpus, err := file.ReadCorpus(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		for _, p := range corpus {
			if _, ok := byId[p.Id]; ok {
				return fmt.Errorf("%s: duplicated pair id %q", path, p.Id)
			}
			byId[p.Id] = len(pairs)
			pairs = append(pairs, p)
		}
	}

	h.pairs = pairs
	h.byId = byId
	return nil
}

func (h *PairStore) List() (sent.Corpus, error) {
	if err := h.Load(nil); err != nil {
		return nil, err
	}
	return h.pairs, nil
}

func (h *PairStore) Read(id string) (sent.Pair, error) {
	if err := h.Load(nil); err != nil {
		return sent.Pair{}, err
	}

	i, ok := h.byId[id]
	if !ok {
		return sent.Pair{}, fmt.Errorf("pair %q: %w", id, storage.ErrNotFound)
	}
	return h.pairs[i], nil
}

// FindByLemmas scans the loaded pairs.
func (h *PairStore) FindByLemmas(lemmas []string) ([]string, error) {
	if len(lemmas) == 0 {
		return nil, nil
	}

	if err := h.Load(nil); err != nil {
		return nil, err
	}

	var ids []string
	for _, p := range h.pairs {
		seen := map[string]bool{}
		p.Lemmas(func(lemma string) {
			seen[lemma] = true
		})

		all := true
		for _, l := range lemmas {
			if !seen[l] {
				all = false
				break
			}
		}
		if all {
			ids = append(ids, p.Id)
		}
	}

	return ids, nil
}

func (h *PairStore) Write(p sent.Pair) error {
	return fmt.Errorf("read-only storage")
}
