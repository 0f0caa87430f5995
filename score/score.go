// Package score decides entailment for a Text/Hypothesis pair from the
// edit distance between their dependency trees.
package score

import (
	"errors"
	"fmt"

	"github.com/revelaction/entail/cost"
	"github.com/revelaction/entail/idf"
	sent "github.com/revelaction/entail/sentence"
	"github.com/revelaction/entail/ted"
	"github.com/revelaction/entail/tree"
)

// DefaultThreshold is the normalized distance above which a pair is
// judged entailed.
const DefaultThreshold = 0.50

var ErrUndefinedScore = errors.New("undefined score")

// Verdict is the decision of the scorer.
type Verdict string

const (
	Entailed    Verdict = "ENTAILED"
	NotEntailed Verdict = "NOT_ENTAILED"
	Undefined   Verdict = "UNDEFINED"
)

// Judgment maps the verdict to the corpus label.
func (v Verdict) Judgment() sent.Judgment {
	switch v {
	case Entailed:
		return sent.Yes
	case NotEntailed:
		return sent.No
	}
	return ""
}

// Result holds the distances computed for one pair.
type Result struct {
	PairId string        `json:"id"`
	Task   string        `json:"task"`
	Gold   sent.Judgment `json:"gold"`

	// General is the unit cost distance between T and H.
	General float64 `json:"general"`

	// Weighted is the idf weighted distance between T and H. Only set
	// when the scorer has a frequency table.
	Weighted *float64 `json:"weighted,omitempty"`

	// Directional is the cost of covering H from T, deletions being free.
	Directional float64 `json:"directional"`

	// Baseline is the directional cost of building H from nothing.
	Baseline float64 `json:"baseline"`

	// Normalized is Directional / Baseline.
	Normalized float64 `json:"normalized"`

	Verdict Verdict `json:"verdict"`
}

// Correct reports whether the verdict agrees with the gold judgment.
func (r Result) Correct() bool {
	return r.Verdict.Judgment() != "" && r.Verdict.Judgment() == r.Gold
}

// Scorer computes Results. It keeps no state between pairs and is safe
// for concurrent use.
type Scorer struct {
	// Threshold of the decision rule.
	Threshold float64

	// Frequencies, when not nil, enables the idf weighted distance.
	Frequencies *idf.Table
}

// New returns a Scorer with the given threshold and optional frequency
// table.
func New(threshold float64, t *idf.Table) *Scorer {
	return &Scorer{Threshold: threshold, Frequencies: t}
}

// Score builds the anchored Text and Hypothesis trees of the pair and
// computes its distances and verdict.
//
// The verdict is Entailed when the normalized directional distance is
// above the threshold. A pair with an empty hypothesis has no baseline:
// the returned Result carries the distances already computed, the
// Undefined verdict and an ErrUndefinedScore error.
func (s *Scorer) Score(p sent.Pair) (Result, error) {
	res := Result{PairId: p.Id, Task: p.Task, Gold: p.Entailment, Verdict: Undefined}

	t, err := tree.Anchor(tree.TextLabel, p.Text)
	if err != nil {
		return res, fmt.Errorf("pair %s: text: %w", p.Id, err)
	}

	h, err := tree.Anchor(tree.HypothesisLabel, p.Hypothesis)
	if err != nil {
		return res, fmt.Errorf("pair %s: hypothesis: %w", p.Id, err)
	}

	res, err = s.Trees(res, t, h)
	if err != nil {
		return res, fmt.Errorf("pair %s: %w", p.Id, err)
	}

	return res, nil
}

// Trees computes the distances between already anchored trees and fills
// them into res.
func (s *Scorer) Trees(res Result, t, h *tree.Node) (Result, error) {
	res.Verdict = Undefined

	tf, hf := tree.Forest{t}, tree.Forest{h}

	var err error
	res.General, err = ted.Distance(tf, hf, cost.Unit{})
	if err != nil {
		return res, err
	}

	if s.Frequencies != nil {
		w, err := ted.Distance(tf, hf, cost.NewIDF(s.Frequencies))
		if err != nil {
			return res, err
		}
		res.Weighted = &w
	}

	res.Directional, err = ted.Distance(tf, hf, cost.Directional{})
	if err != nil {
		return res, err
	}

	res.Baseline, err = ted.Distance(nil, hf, cost.Directional{})
	if err != nil {
		return res, err
	}

	if len(h.Children) == 0 || res.Baseline == 0 {
		return res, fmt.Errorf("%w: empty hypothesis", ErrUndefinedScore)
	}

	res.Normalized = res.Directional / res.Baseline
	res.Verdict = s.Decide(res.Normalized)

	return res, nil
}

// Decide applies the decision rule to a normalized distance.
//
// NOTE: the polarity looks inverted, a larger uncovered part of the
// hypothesis yields Entailed. It is kept as observed on RTE2 dev until
// evaluation data settles it.
func (s *Scorer) Decide(normalized float64) Verdict {
	if normalized > s.Threshold {
		return Entailed
	}
	return NotEntailed
}
