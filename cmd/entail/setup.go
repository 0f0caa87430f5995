package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gosuri/uiprogress"

	"github.com/revelaction/entail/cost"
	"github.com/revelaction/entail/idf"
	sent "github.com/revelaction/entail/sentence"
	"github.com/revelaction/entail/storage"
	"github.com/revelaction/entail/storage/filesystem"
	"github.com/revelaction/entail/storage/sqlite/zombiezen"
)

// PairSource is a pair repository that can also search lemmas. Both
// backends implement it.
type PairSource interface {
	storage.PairReader
	storage.LemmaFinder
}

// NewPairSource opens a corpus. Directories and .xml or .json files are
// read by the filesystem store, any other file is an SQLite database.
func NewPairSource(p *Pool, path string, progress bool) (PairSource, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("repository not found: %s", path)
	}

	if info.IsDir() || isCorpusFile(path) {
		h, err := filesystem.NewPairStore(path)
		if err != nil {
			return nil, err
		}
		if err := loadFiles(h, progress); err != nil {
			return nil, err
		}
		return h, nil
	}

	pool, err := p.Open(path)
	if err != nil {
		return nil, err
	}
	return zombiezen.NewPairStore(pool), nil
}

func isCorpusFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xml", ".json":
		return true
	}
	return false
}

func loadFiles(h *filesystem.PairStore, progress bool) error {
	if !progress {
		return h.Load(nil)
	}

	prog, bar := newProgress(len(h.Files()))

	var currentName string
	bar.AppendFunc(func(b *uiprogress.Bar) string {
		return currentName
	})

	err := h.Load(func(total int, name string) {
		currentName = name
		bar.Incr()
	})
	prog.Stop()

	return err
}

// newProgress starts a progress with a single bar. Each run gets its own
// progress, as a stopped one can not be restarted.
func newProgress(total int) (*uiprogress.Progress, *uiprogress.Bar) {
	prog := uiprogress.New()
	prog.Start()
	bar := prog.AddBar(total)
	bar.AppendCompleted()
	bar.PrependElapsed()
	return prog, bar
}

// frequencyTable returns the table of the weighted distance: the counts
// stored in the SQLite file at path, or, with no path and the idf cost
// configured, the counts of the corpus itself. It returns nil when the
// weighted distance is not computed.
func frequencyTable(p *Pool, path, costName string, pairs sent.Corpus) (*idf.Table, error) {
	if path != "" {
		pool, err := p.Open(path)
		if err != nil {
			return nil, err
		}
		counts, err := zombiezen.NewFrequencyStore(pool).Counts()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		slog.Debug("frequencies loaded", "path", path, "lemmas", len(counts))
		return idf.FromCounts(counts)
	}

	if costName != cost.IDFName {
		return nil, nil
	}

	c := idf.NewCounter()
	for _, pair := range pairs {
		c.Aggregate(pair)
	}
	slog.Debug("frequencies aggregated", "pairs", c.NumPairs())
	return c.Table(), nil
}
