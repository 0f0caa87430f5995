package main

import (
	"github.com/revelaction/entail/render"
	"github.com/revelaction/entail/storage/sqlite/zombiezen"
)

type ResultsOptions struct {
	DbPath  string
	Format  string
	NoColor bool
}

// resultsCommand shows the results stored by a previous score run.
func resultsCommand(p *Pool, opts ResultsOptions, ui UI) error {
	pool, err := p.Open(opts.DbPath)
	if err != nil {
		return err
	}

	results, err := zombiezen.NewResultStore(pool).Results()
	if err != nil {
		return err
	}

	if opts.Format == formatJSON {
		return render.NewJSONRenderer(ui.Out).Render(results)
	}

	r := render.NewRenderer()
	r.W = ui.Out
	r.HasColor = !opts.NoColor
	for _, res := range results {
		r.Result(res)
	}
	r.Summary(results)

	return nil
}
