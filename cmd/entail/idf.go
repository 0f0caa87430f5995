package main

import (
	"fmt"

	"github.com/gosuri/uiprogress"

	"github.com/revelaction/entail/idf"
	"github.com/revelaction/entail/render"
	"github.com/revelaction/entail/storage/sqlite/zombiezen"
)

func idfCommand(p *Pool, opts IdfOptions, ui UI) error {
	src, err := NewPairSource(p, opts.CorpusPath, opts.Progress)
	if err != nil {
		return err
	}

	pairs, err := src.List()
	if err != nil {
		return err
	}

	var prog *uiprogress.Progress
	var bar *uiprogress.Bar
	if opts.Progress {
		prog, bar = newProgress(len(pairs))
	}

	c := idf.NewCounter()
	for _, pair := range pairs {
		c.Aggregate(pair)
		if bar != nil {
			bar.Incr()
		}
	}

	if prog != nil {
		prog.Stop()
	}

	if opts.DbPath != "" {
		pool, err := p.Open(opts.DbPath)
		if err != nil {
			return err
		}
		if err := zombiezen.NewFrequencyStore(pool).WriteCounts(c.Counts()); err != nil {
			return err
		}
	}

	t := c.Table()

	r := render.NewRenderer()
	r.W = ui.Out
	r.Frequencies(t.Top(opts.Top))

	fmt.Fprintf(ui.Out, "✍  %d pairs, %d lemmas\n", c.NumPairs(), t.Len())
	if opts.DbPath != "" {
		fmt.Fprintf(ui.Out, "Stored counts in %s\n", opts.DbPath)
	}

	return nil
}
