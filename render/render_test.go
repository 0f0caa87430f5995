package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/revelaction/entail/idf"
	"github.com/revelaction/entail/score"
	sent "github.com/revelaction/entail/sentence"
	"github.com/revelaction/entail/tree"
)

func newTestRenderer(buf *bytes.Buffer) *Renderer {
	r := NewRenderer()
	r.W = buf
	return r
}

func TestResultLine(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf)

	w := 2.5
	r.Result(score.Result{
		PairId: "12", Task: "QA", Gold: sent.No,
		General: 3, Weighted: &w, Directional: 3, Baseline: 4, Normalized: 0.75,
		Verdict: score.Entailed,
	})

	line := buf.String()
	for _, want := range []string{"12", "QA", "NO", "general 3.00", "weighted 2.50", "baseline 4.00", "0.750", "ENTAILED", "✘"} {
		if !strings.Contains(line, want) {
			t.Errorf("expected %q in %q", want, line)
		}
	}
	if strings.Contains(line, "\033[") {
		t.Errorf("unexpected color codes in %q", line)
	}
}

func TestResultUndefined(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf)
	r.HasColor = true

	r.Result(score.Result{PairId: "3", Gold: sent.Yes, Verdict: score.Undefined})

	line := buf.String()
	if !strings.Contains(line, "UNDEFINED") {
		t.Errorf("expected UNDEFINED in %q", line)
	}
	if strings.Contains(line, "✔") || strings.Contains(line, "✘") {
		t.Errorf("undefined scores must not be marked, got %q", line)
	}
}

func TestSummary(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf)

	r.Summary([]score.Result{
		{Gold: sent.Yes, Verdict: score.Entailed},
		{Gold: sent.Yes, Verdict: score.NotEntailed},
		{Gold: sent.No, Verdict: score.Undefined},
		{Verdict: score.Entailed},
	})

	line := buf.String()
	if !strings.Contains(line, "pairs 4 judged 2 correct 1 undefined 1 accuracy 0.500") {
		t.Errorf("unexpected summary %q", line)
	}
}

func TestTree(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf)

	r.Tree("T", tree.NewNode("T", tree.MustParse("#see(#dog,#cat)")...))

	want := "T 4 nodes\n  T\n    see\n      dog\n      cat\n"
	if buf.String() != want {
		t.Errorf("expected\n%s\ngot\n%s", want, buf.String())
	}
}

func TestFrequencies(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf)

	r.Frequencies([]idf.Entry{{Lemma: "dog", Count: 3}, {Lemma: "cat", Count: 1}})

	want := "[    3] dog\n[    1] cat\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}
