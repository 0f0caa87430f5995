package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gosuri/uiprogress"

	"github.com/revelaction/entail/render"
	"github.com/revelaction/entail/score"
	"github.com/revelaction/entail/storage"
	"github.com/revelaction/entail/storage/sqlite/zombiezen"
)

func scoreCommand(p *Pool, opts ScoreOptions, ui UI) error {
	src, err := NewPairSource(p, opts.CorpusPath, opts.Progress)
	if err != nil {
		return err
	}

	pairs, err := src.List()
	if err != nil {
		return err
	}

	table, err := frequencyTable(p, opts.IdfPath, opts.Config.Cost, pairs)
	if err != nil {
		return err
	}

	var rw storage.ResultWriter
	if opts.ResultPath != "" {
		pool, err := p.Open(opts.ResultPath)
		if err != nil {
			return err
		}
		rw = zombiezen.NewResultStore(pool)
	}

	r := render.NewRenderer()
	r.W = ui.Out
	r.HasColor = !opts.NoColor

	var prog *uiprogress.Progress
	var bar *uiprogress.Bar
	if opts.Progress {
		prog, bar = newProgress(len(pairs))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	slog.Info("scoring", "pairs", len(pairs), "workers", opts.Config.Workers, "threshold", opts.Config.Threshold, "weighted", table != nil)

	scorer := score.New(opts.Config.Threshold, table)
	results := make([]score.Result, 0, len(pairs))
	failed := 0

	err = scorer.Run(ctx, pairs, opts.Config.Workers, func(o score.Outcome) error {
		if bar != nil {
			bar.Incr()
		}

		if o.Err != nil && !errors.Is(o.Err, score.ErrUndefinedScore) {
			failed++
			slog.Warn("pair not scored", "pair", pairs[o.Index].Id, "err", o.Err)
			if opts.Format == formatText && !opts.Progress {
				r.Error(pairs[o.Index].Id, o.Err)
			}
			return nil
		}

		if o.Err != nil {
			slog.Debug("undefined score", "pair", o.Result.PairId)
		}

		if rw != nil {
			if err := rw.WriteResult(o.Result); err != nil {
				return err
			}
		}

		results = append(results, o.Result)
		if opts.Format == formatText && !opts.Progress {
			r.Result(o.Result)
		}
		return nil
	})
	if prog != nil {
		prog.Stop()
	}
	if err != nil {
		return err
	}

	if failed > 0 {
		slog.Warn("pairs not scored", "count", failed)
	}

	if opts.Format == formatJSON {
		return render.NewJSONRenderer(ui.Out).Render(results)
	}

	r.Summary(results)
	return nil
}
