package query

import (
	"errors"
	"fmt"
	"strings"

	"github.com/c-bata/go-prompt"

	"github.com/revelaction/entail/render"
	"github.com/revelaction/entail/score"
	sent "github.com/revelaction/entail/sentence"
	"github.com/revelaction/entail/storage"
	"github.com/revelaction/entail/tree"
)

const (
	// lemmaPrefix is the character in the prompt that starts a lemma search
	lemmaPrefix = "/"

	maxSuggestions = 12
)

var errQuit = errors.New("quit")

type Handler struct {
	Pairs    storage.PairReader
	Finder   storage.LemmaFinder
	Scorer   *score.Scorer
	Renderer *render.Renderer

	ids []string
}

func NewHandler(pr storage.PairReader, lf storage.LemmaFinder, s *score.Scorer, r *render.Renderer) *Handler {
	return &Handler{
		Pairs:    pr,
		Finder:   lf,
		Scorer:   s,
		Renderer: r,
	}
}

func (h *Handler) Run() error {
	corpus, err := h.Pairs.List()
	if err != nil {
		return err
	}
	h.ids = corpus.Ids()

	fmt.Fprintln(h.Renderer.W, "🔑 <pair id>: score a pair, /lemma ...: find pairs, Ctrl+X: toggle prefix, 🔧 quit")

	// initialize prompt history
	history := []string{}

	for {
		in := prompt.Input("      🔖 ", h.completer,
			prompt.OptionTitle("entail query"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionMaxSuggestion(maxSuggestions),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionHistory(history),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlX,
				Fn: func(buf *prompt.Buffer) {
					h.Renderer.HasPrefix = !h.Renderer.HasPrefix
					fmt.Fprintf(h.Renderer.W, "Prefix set to %t\n", h.Renderer.HasPrefix)
				}}),
		)

		history = append(history, in)

		err := h.Eval(in)
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(h.Renderer.W, "Error: %v\n", err)
		}
	}
}

// Eval runs one prompt line: a pair id is scored and shown, a line
// starting with "/" lists the pairs containing all the given lemmas.
func (h *Handler) Eval(in string) error {
	in = strings.TrimSpace(in)

	switch {
	case in == "":
		return nil
	case in == "quit":
		return errQuit
	case strings.HasPrefix(in, lemmaPrefix):
		return h.find(strings.Fields(strings.TrimPrefix(in, lemmaPrefix)))
	}

	p, err := h.Pairs.Read(in)
	if err != nil {
		return err
	}

	return h.show(p)
}

func (h *Handler) show(p sent.Pair) error {
	t, err := tree.Anchor(tree.TextLabel, p.Text)
	if err != nil {
		return fmt.Errorf("pair %s: text: %w", p.Id, err)
	}
	hy, err := tree.Anchor(tree.HypothesisLabel, p.Hypothesis)
	if err != nil {
		return fmt.Errorf("pair %s: hypothesis: %w", p.Id, err)
	}

	h.Renderer.Tree(tree.TextLabel, t)
	h.Renderer.Tree(tree.HypothesisLabel, hy)

	res := score.Result{PairId: p.Id, Task: p.Task, Gold: p.Entailment}
	res, err = h.Scorer.Trees(res, t, hy)
	if err != nil && !errors.Is(err, score.ErrUndefinedScore) {
		return err
	}

	h.Renderer.Result(res)
	return nil
}

func (h *Handler) find(lemmas []string) error {
	if len(lemmas) == 0 {
		return errors.New("no lemmas given")
	}
	if h.Finder == nil {
		return errors.New("lemma search not supported by the repository")
	}

	ids, err := h.Finder.FindByLemmas(lemmas)
	if err != nil {
		return err
	}

	if len(ids) == 0 {
		fmt.Fprintln(h.Renderer.W, "no pairs")
		return nil
	}

	fmt.Fprintf(h.Renderer.W, "[%d] %s\n", len(ids), strings.Join(ids, " "))
	return nil
}

// completer suggests pair ids. Lemma searches are not completed.
func (h *Handler) completer(in prompt.Document) []prompt.Suggest {
	return h.suggest(in.TextBeforeCursor())
}

func (h *Handler) suggest(befCursor string) []prompt.Suggest {
	s := []prompt.Suggest{}

	// Only one character in line
	if befCursor == "" || strings.HasPrefix(befCursor, lemmaPrefix) {
		return s
	}

	for _, id := range h.ids {
		if strings.HasPrefix(id, befCursor) {
			s = append(s, prompt.Suggest{Text: id, Description: "pair"})
		}
		if len(s) == maxSuggestions {
			break
		}
	}

	return s
}
