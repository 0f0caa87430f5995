package score

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/revelaction/entail/idf"
	sent "github.com/revelaction/entail/sentence"
	"github.com/revelaction/entail/tree"
)

// chain returns a one sentence slice where each lemma heads the next one.
func chain(lemmas ...string) []sent.Sentence {
	s := sent.Sentence{Serial: "1"}
	for i, l := range lemmas {
		n := sent.Node{Id: fmt.Sprint(i + 1), Lemma: l, Word: l}
		if i > 0 {
			n.Parent = fmt.Sprint(i)
		}
		s.Nodes = append(s.Nodes, n)
	}
	return []sent.Sentence{s}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name        string
		text, hypo  []sent.Sentence
		general     float64
		directional float64
		baseline    float64
		verdict     Verdict
	}{
		{
			// T(a(b)) H(a(b)): only the anchor differs
			name: "covered", text: chain("a", "b"), hypo: chain("a", "b"),
			general: 1, directional: 1, baseline: 3, verdict: NotEntailed,
		},
		{
			// T(x) H(a(b)): relabel T, x and insert b
			name: "uncovered", text: chain("x"), hypo: chain("a", "b"),
			general: 3, directional: 3, baseline: 3, verdict: Entailed,
		},
		{
			// T(a(b(c))) vs H(a(b)): deletions are free in the directional cost
			name: "text longer", text: chain("a", "b", "c"), hypo: chain("a", "b"),
			general: 2, directional: 1, baseline: 3, verdict: NotEntailed,
		},
	}

	s := New(DefaultThreshold, nil)
	for _, tt := range tests {
		p := sent.Pair{Id: "1", Task: "IE", Text: tt.text, Hypothesis: tt.hypo, Entailment: sent.Yes}
		res, err := s.Score(p)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.name, err)
		}

		if res.General != tt.general {
			t.Errorf("%s: general = %v, want %v", tt.name, res.General, tt.general)
		}
		if res.Directional != tt.directional {
			t.Errorf("%s: directional = %v, want %v", tt.name, res.Directional, tt.directional)
		}
		if res.Baseline != tt.baseline {
			t.Errorf("%s: baseline = %v, want %v", tt.name, res.Baseline, tt.baseline)
		}
		if res.Normalized != tt.directional/tt.baseline {
			t.Errorf("%s: normalized = %v, want %v", tt.name, res.Normalized, tt.directional/tt.baseline)
		}
		if res.Verdict != tt.verdict {
			t.Errorf("%s: verdict = %v, want %v", tt.name, res.Verdict, tt.verdict)
		}
		if res.Weighted != nil {
			t.Errorf("%s: expected no weighted distance without table", tt.name)
		}
		if res.PairId != "1" || res.Task != "IE" || res.Gold != sent.Yes {
			t.Errorf("%s: pair metadata not copied: %+v", tt.name, res)
		}
	}
}

func TestScoreBaselineIsHypothesisSize(t *testing.T) {
	p := sent.Pair{Text: chain("a"), Hypothesis: append(chain("b", "c", "d"), chain("e")...)}

	res, err := New(DefaultThreshold, nil).Score(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// H + b c d + e
	if res.Baseline != 5 {
		t.Errorf("expected baseline 5, got %v", res.Baseline)
	}
}

func TestScoreWeighted(t *testing.T) {
	c := idf.NewCounter()
	p := sent.Pair{Id: "2", Text: chain("dog", "bark"), Hypothesis: chain("cat", "bark")}
	c.Aggregate(p)
	c.Aggregate(sent.Pair{Text: chain("dog")})

	res, err := New(DefaultThreshold, c.Table()).Score(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Weighted == nil {
		t.Fatalf("expected weighted distance")
	}

	// T->H costs 1 (non lexical), dog->cat costs 1/2
	if *res.Weighted != 1.5 {
		t.Errorf("expected weighted 1.5, got %v", *res.Weighted)
	}
}

func TestScoreWeightedMissingFrequency(t *testing.T) {
	tbl, _ := idf.FromCounts(map[string]int{"cat": 1})
	p := sent.Pair{Id: "3", Text: chain("dog"), Hypothesis: chain("cat")}

	_, err := New(DefaultThreshold, tbl).Score(p)
	if !errors.Is(err, idf.ErrMissingFrequency) {
		t.Errorf("expected ErrMissingFrequency, got %v", err)
	}
}

func TestScoreEmptyHypothesis(t *testing.T) {
	p := sent.Pair{Id: "4", Text: chain("a"), Hypothesis: []sent.Sentence{{Serial: "1"}}}

	res, err := New(DefaultThreshold, nil).Score(p)
	if !errors.Is(err, ErrUndefinedScore) {
		t.Fatalf("expected ErrUndefinedScore, got %v", err)
	}

	if res.Verdict != Undefined {
		t.Errorf("expected undefined verdict, got %v", res.Verdict)
	}

	if res.Normalized != 0 {
		t.Errorf("expected no normalized score, got %v", res.Normalized)
	}
}

func TestScoreMalformed(t *testing.T) {
	bad := []sent.Sentence{{Serial: "1", Nodes: []sent.Node{{Id: "1", Parent: "Z99", Lemma: "a"}}}}

	tests := []sent.Pair{
		{Id: "5", Text: bad, Hypothesis: chain("a")},
		{Id: "6", Text: chain("a"), Hypothesis: bad},
	}

	for _, p := range tests {
		res, err := New(DefaultThreshold, nil).Score(p)
		if !errors.Is(err, tree.ErrMalformedInput) {
			t.Errorf("pair %s: expected ErrMalformedInput, got %v", p.Id, err)
		}
		if res.Verdict != Undefined {
			t.Errorf("pair %s: expected undefined verdict, got %v", p.Id, res.Verdict)
		}
	}
}

func TestDecide(t *testing.T) {
	s := New(0.5, nil)

	tests := []struct {
		normalized float64
		want       Verdict
	}{
		{0, NotEntailed},
		{0.5, NotEntailed},
		{0.51, Entailed},
		{1, Entailed},
	}

	for _, tt := range tests {
		if got := s.Decide(tt.normalized); got != tt.want {
			t.Errorf("Decide(%v) = %v, want %v", tt.normalized, got, tt.want)
		}
	}
}

func TestResultCorrect(t *testing.T) {
	tests := []struct {
		verdict Verdict
		gold    sent.Judgment
		want    bool
	}{
		{Entailed, sent.Yes, true},
		{NotEntailed, sent.No, true},
		{Entailed, sent.No, false},
		{Undefined, "", false},
	}

	for _, tt := range tests {
		r := Result{Verdict: tt.verdict, Gold: tt.gold}
		if r.Correct() != tt.want {
			t.Errorf("Correct(%v, %v) = %v, want %v", tt.verdict, tt.gold, r.Correct(), tt.want)
		}
	}
}

func TestRunKeepsOrder(t *testing.T) {
	var pairs []sent.Pair
	for i := 0; i < 40; i++ {
		p := sent.Pair{Id: fmt.Sprint(i), Text: chain("a", "b"), Hypothesis: chain("a", "c")}
		if i%7 == 0 {
			p.Hypothesis = nil
		}
		pairs = append(pairs, p)
	}

	var got []Outcome
	err := New(DefaultThreshold, nil).Run(context.Background(), pairs, 4, func(o Outcome) error {
		got = append(got, o)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got) != len(pairs) {
		t.Fatalf("expected %d outcomes, got %d", len(pairs), len(got))
	}

	for i, o := range got {
		if o.Index != i || o.Result.PairId != pairs[i].Id {
			t.Fatalf("outcome %d out of order: index %d id %s", i, o.Index, o.Result.PairId)
		}
		if i%7 == 0 && !errors.Is(o.Err, ErrUndefinedScore) {
			t.Errorf("outcome %d: expected ErrUndefinedScore, got %v", i, o.Err)
		}
		if i%7 != 0 && o.Err != nil {
			t.Errorf("outcome %d: unexpected error %v", i, o.Err)
		}
	}
}

func TestRunStopsOnCallbackError(t *testing.T) {
	pairs := make([]sent.Pair, 10)
	for i := range pairs {
		pairs[i] = sent.Pair{Text: chain("a"), Hypothesis: chain("b")}
	}

	stop := errors.New("stop")
	calls := 0
	err := New(DefaultThreshold, nil).Run(context.Background(), pairs, 2, func(o Outcome) error {
		calls++
		if calls == 3 {
			return stop
		}
		return nil
	})

	if !errors.Is(err, stop) {
		t.Errorf("expected stop error, got %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pairs := []sent.Pair{{Text: chain("a"), Hypothesis: chain("b")}}
	err := New(DefaultThreshold, nil).Run(ctx, pairs, 1, func(Outcome) error { return nil })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
