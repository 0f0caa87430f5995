package main

import (
	"fmt"

	"github.com/revelaction/entail/file"
	"github.com/revelaction/entail/storage/sqlite/zombiezen"
)

type ExportOptions struct {
	From string
	To   string
}

func exportCommand(p *Pool, opts ExportOptions, ui UI) error {
	pool, err := p.Open(opts.From)
	if err != nil {
		return err
	}

	pairs, err := zombiezen.NewPairStore(pool).List()
	if err != nil {
		return err
	}

	if err := file.WriteCorpus(opts.To, pairs); err != nil {
		return err
	}

	fmt.Fprintf(ui.Out, "Successfully exported %d pairs from %s to %s\n", len(pairs), opts.From, opts.To)
	return nil
}
