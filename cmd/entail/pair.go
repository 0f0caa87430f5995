package main

import (
	"github.com/revelaction/entail/cost"
	"github.com/revelaction/entail/query"
	"github.com/revelaction/entail/render"
	"github.com/revelaction/entail/score"
	sent "github.com/revelaction/entail/sentence"
)

func pairCommand(p *Pool, opts PairOptions, ui UI) error {
	h, err := newQueryHandler(p, opts, ui)
	if err != nil {
		return err
	}

	return h.Eval(opts.PairId)
}

func newQueryHandler(p *Pool, opts PairOptions, ui UI) (*query.Handler, error) {
	src, err := NewPairSource(p, opts.CorpusPath, false)
	if err != nil {
		return nil, err
	}

	// the whole corpus is only needed to count frequencies on the fly
	var pairs sent.Corpus
	if opts.IdfPath == "" && opts.Config.Cost == cost.IDFName {
		if pairs, err = src.List(); err != nil {
			return nil, err
		}
	}

	t, err := frequencyTable(p, opts.IdfPath, opts.Config.Cost, pairs)
	if err != nil {
		return nil, err
	}

	r := render.NewRenderer()
	r.W = ui.Out
	r.HasColor = !opts.NoColor

	return query.NewHandler(src, src, score.New(opts.Config.Threshold, t), r), nil
}
