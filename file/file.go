package file

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	sent "github.com/revelaction/entail/sentence"
)

// ReadCorpus reads the pairs of the corpus at path. The format is chosen
// by extension: .xml for the RTE preprocessed format, .json otherwise.
func ReadCorpus(path string) (sent.Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("IO error: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xml":
		return ReadXML(f)
	case ".json":
		return ReadJSON(f)
	}

	return nil, fmt.Errorf("unsupported corpus format: %s", path)
}

// WriteCorpus writes the corpus to path, in the format of its extension.
func WriteCorpus(path string, corpus sent.Corpus) (err error) {
	var write func(io.Writer, sent.Corpus) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xml":
		write = WriteXML
	case ".json":
		write = WriteJSON
	default:
		return fmt.Errorf("unsupported corpus format: %s", path)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("IO error: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return write(f, corpus)
}

// ReadJSON decodes a JSON array of pairs.
func ReadJSON(r io.Reader) (sent.Corpus, error) {
	var corpus sent.Corpus
	if err := json.NewDecoder(r).Decode(&corpus); err != nil {
		return nil, fmt.Errorf("JSON decoding error: %w", err)
	}

	for i := range corpus {
		corpus[i].Entailment = sent.ParseJudgment(string(corpus[i].Entailment))
	}

	return corpus, nil
}

// WriteJSON encodes the corpus as a JSON array.
func WriteJSON(w io.Writer, corpus sent.Corpus) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", " ")
	return enc.Encode(corpus)
}
