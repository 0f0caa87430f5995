package main

import (
	"fmt"

	"github.com/revelaction/entail/storage/filesystem"
	"github.com/revelaction/entail/storage/sqlite/zombiezen"
)

func importCommand(p *Pool, opts ImportOptions, ui UI) error {
	src, err := filesystem.NewPairStore(opts.From)
	if err != nil {
		return err
	}
	if err := src.Load(nil); err != nil {
		return err
	}

	pool, err := p.Open(opts.To)
	if err != nil {
		return err
	}

	dst := zombiezen.NewPairStore(pool)

	fmt.Fprintf(ui.Out, "Reading pairs from %s...\n", opts.From)
	pairs, err := src.List()
	if err != nil {
		return err
	}

	prog, bar := newProgress(len(pairs))

	count := 0
	for _, pair := range pairs {
		if err := dst.Write(pair); err != nil {
			prog.Stop()
			return fmt.Errorf("failed to write pair %s: %w", pair.Id, err)
		}
		count++
		bar.Incr()
	}
	prog.Stop()

	fmt.Fprintf(ui.Out, "Successfully imported %d pairs from %s to %s\n", count, opts.From, opts.To)
	return nil
}
