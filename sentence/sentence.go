package sentence

import "strings"

// Judgment is the gold entailment label of a Pair.
type Judgment string

const (
	Yes Judgment = "YES"
	No  Judgment = "NO"
)

// ParseJudgment normalizes a corpus label. Anything other than YES/NO
// (case insensitive) is returned unchanged so that callers can report it.
func ParseJudgment(s string) Judgment {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "YES":
		return Yes
	case "NO":
		return No
	}
	return Judgment(strings.TrimSpace(s))
}

// Pair is a Text/Hypothesis couple of the corpus.
type Pair struct {
	Id   string `json:"id"`
	Task string `json:"task"`

	Text       []Sentence `json:"text"`
	Hypothesis []Sentence `json:"hypothesis"`

	// The gold judgment
	Entailment Judgment `json:"entailment"`
}

// Sentence is an ordered list of dependency nodes.
type Sentence struct {
	Serial string `json:"serial"`
	Nodes  []Node `json:"nodes"`
}

// Node is either a word of the sentence, with lemma and POS, or an
// artificial (collapsed) node without lexical content.
type Node struct {
	Id string `json:"id"`

	// Parent is the id of the head node. Empty for roots.
	Parent string `json:"parent,omitempty"`

	// Artificial nodes have no word nor POS tag. Their lemma is optional.
	Artificial bool `json:"artificial,omitempty"`

	// The unmodified word
	Word string `json:"word,omitempty"`

	// The lemma of the word
	Lemma string `json:"lemma,omitempty"`

	PosTag   string `json:"pos,omitempty"`
	Relation string `json:"relation,omitempty"`
}

// IsRoot reports whether the node has no head.
func (n Node) IsRoot() bool {
	return n.Parent == ""
}

// Label returns the lexical label of a word node: its lemma, or the
// surface word when the lemma is missing. Artificial nodes have none.
func (n Node) Label() string {
	if n.Artificial {
		return ""
	}
	if n.Lemma != "" {
		return n.Lemma
	}
	return n.Word
}

// Words returns the number of word (non artificial) nodes of the sentence.
func (s Sentence) Words() int {
	num := 0
	for _, n := range s.Nodes {
		if !n.Artificial {
			num++
		}
	}
	return num
}

// Lemmas calls fn for the label of every word node of the pair, text
// first. Word nodes without lemma nor word are skipped.
func (p Pair) Lemmas(fn func(lemma string)) {
	for _, sentences := range [][]Sentence{p.Text, p.Hypothesis} {
		for _, s := range sentences {
			for _, n := range s.Nodes {
				if l := n.Label(); l != "" {
					fn(l)
				}
			}
		}
	}
}

// Corpus is an ordered collection of Pairs
type Corpus []Pair

// Ids returns the pair ids in corpus order.
func (c Corpus) Ids() []string {
	ids := make([]string, 0, len(c))
	for _, p := range c {
		ids = append(ids, p.Id)
	}
	return ids
}
