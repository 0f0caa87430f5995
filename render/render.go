package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/revelaction/entail/idf"
	"github.com/revelaction/entail/score"
	"github.com/revelaction/entail/tree"
)

var (
	Black   = "\033[1;30m"
	Red     = "\033[1;31m"
	Green   = "\033[1;32m"
	Yellow  = "\033[0;33m"
	Purple  = "\033[1;34m"
	Magenta = "\033[1;35m"
	Teal    = "\033[1;36m"
	Gray    = "\033[0;37m"
	White   = "\033[1;37m"
	Off     = "\033[0m"
	//Yellow256  = "\033[1;38;5;202m"
	Yellow256 = "\033[1;38;5;130m"
	Grey256   = "\033[1;38;5;145m"
	Green256  = "\033[1;38;5;70m"
	ClearLine = "\033[K"
)

type Renderer struct {
	HasColor bool

	// HasPrefix prints the pair id and task before each result
	HasPrefix bool

	W io.Writer
}

func NewRenderer() *Renderer {
	return &Renderer{W: os.Stdout, HasPrefix: true}
}

// Result prints one line with the distances and the verdict of a pair:
//
//	[   42 IE  YES] general 3.00 directional 1.00 baseline 4.00 ✍  0.250 NOT_ENTAILED ✔
func (r *Renderer) Result(res score.Result) {
	var b strings.Builder

	if r.HasPrefix {
		b.WriteString(r.prefix(res))
	}

	fmt.Fprintf(&b, "general %.2f ", res.General)
	if res.Weighted != nil {
		fmt.Fprintf(&b, "weighted %.2f ", *res.Weighted)
	}
	fmt.Fprintf(&b, "directional %.2f baseline %.2f ✍  ", res.Directional, res.Baseline)

	if res.Verdict == score.Undefined {
		b.WriteString(r.color(Yellow, "  -   "+string(score.Undefined)))
	} else {
		fmt.Fprintf(&b, "%.3f %s", res.Normalized, r.verdict(res.Verdict))
	}

	if res.Gold != "" && res.Verdict != score.Undefined {
		if res.Correct() {
			b.WriteString(" " + r.color(Green256, "✔"))
		} else {
			b.WriteString(" " + r.color(Red, "✘"))
		}
	}

	fmt.Fprintln(r.W, b.String())
}

// Error prints a pair that could not be scored.
func (r *Renderer) Error(pairId string, err error) {
	fmt.Fprintf(r.W, "[%5s] %s\n", pairId, r.color(Red, err.Error()))
}

// Summary prints the accuracy over the results with a gold judgment.
func (r *Renderer) Summary(results []score.Result) {
	var judged, correct, undefined int
	for _, res := range results {
		if res.Verdict == score.Undefined {
			undefined++
			continue
		}
		if res.Gold == "" {
			continue
		}
		judged++
		if res.Correct() {
			correct++
		}
	}

	accuracy := 0.0
	if judged > 0 {
		accuracy = float64(correct) / float64(judged)
	}

	fmt.Fprintf(r.W, "%s pairs %d judged %d correct %d undefined %d accuracy %.3f\n",
		r.color(Grey256, "✍ "), len(results), judged, correct, undefined, accuracy)
}

// Tree prints an indented dump of the tree, one node per line. Non
// lexical nodes (anchors, artificial nodes) are shown in gray.
func (r *Renderer) Tree(label string, n *tree.Node) {
	fmt.Fprintf(r.W, "%s %d nodes\n", r.color(Yellow256, label), n.Size())

	tree.Forest{n}.Walk(func(node *tree.Node, depth int) {
		text := node.Label
		if !node.Lexical {
			text = r.color(Grey256, text)
		}
		fmt.Fprintf(r.W, "%s%s\n", strings.Repeat("  ", depth+1), text)
	})
}

// Frequencies prints the lemma counts, most frequent first.
func (r *Renderer) Frequencies(entries []idf.Entry) {
	for _, e := range entries {
		fmt.Fprintf(r.W, "[%5d] %s\n", e.Count, e.Lemma)
	}
}

func (r *Renderer) prefix(res score.Result) string {
	gold := string(res.Gold)
	if gold == "" {
		gold = "-"
	}
	return fmt.Sprintf("[%5s %-3s %3s] ", res.PairId, res.Task, r.color(Grey256, gold))
}

func (r *Renderer) verdict(v score.Verdict) string {
	switch v {
	case score.Entailed:
		return r.color(Green256, string(v))
	case score.NotEntailed:
		return r.color(Teal, string(v))
	}
	return string(v)
}

func (r *Renderer) color(c, text string) string {
	if !r.HasColor {
		return text
	}
	return c + text + Off
}
