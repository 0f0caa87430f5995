package file

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	sent "github.com/revelaction/entail/sentence"
)

// artificialPrefix starts the id of collapsed nodes
const artificialPrefix = "E"

type xmlPair struct {
	Id         string        `xml:"id,attr"`
	Task       string        `xml:"task,attr"`
	Entailment string        `xml:"entailment,attr"`
	Text       []xmlSentence `xml:"text>sentence"`
	Hypothesis []xmlSentence `xml:"hypothesis>sentence"`
}

type xmlSentence struct {
	Serial string    `xml:"serial,attr"`
	Nodes  []xmlNode `xml:"node"`
}

type xmlNode struct {
	Id       string       `xml:"id,attr"`
	Word     string       `xml:"word,omitempty"`
	Lemma    string       `xml:"lemma,omitempty"`
	PosTag   string       `xml:"pos-tag,omitempty"`
	Relation *xmlRelation `xml:"relation,omitempty"`
}

type xmlRelation struct {
	Parent string `xml:"parent,attr,omitempty"`
	Name   string `xml:",chardata"`
}

// ReadXML decodes the RTE preprocessed format: every <pair> element of
// the document, whatever its root element.
//
//	<pair id="1" entailment="YES" task="IE">
//	  <text><sentence serial="1">
//	    <node id="1"><word>Dogs</word><lemma>dog</lemma><pos-tag>N</pos-tag>
//	      <relation parent="2">subj</relation></node>
//	    <node id="E1"><lemma>be</lemma></node>
//	  </sentence></text>
//	  <hypothesis>...</hypothesis>
//	</pair>
func ReadXML(r io.Reader) (sent.Corpus, error) {
	dec := xml.NewDecoder(r)

	var corpus sent.Corpus
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return corpus, nil
		}
		if err != nil {
			return nil, fmt.Errorf("XML decoding error: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "pair" {
			continue
		}

		var xp xmlPair
		if err := dec.DecodeElement(&xp, &start); err != nil {
			return nil, fmt.Errorf("XML decoding error: %w", err)
		}

		corpus = append(corpus, xp.pair())
	}
}

func (xp xmlPair) pair() sent.Pair {
	return sent.Pair{
		Id:         strings.TrimSpace(xp.Id),
		Task:       strings.TrimSpace(xp.Task),
		Entailment: sent.ParseJudgment(xp.Entailment),
		Text:       sentences(xp.Text),
		Hypothesis: sentences(xp.Hypothesis),
	}
}

func sentences(xs []xmlSentence) []sent.Sentence {
	out := make([]sent.Sentence, 0, len(xs))
	for _, x := range xs {
		s := sent.Sentence{Serial: strings.TrimSpace(x.Serial)}
		for _, xn := range x.Nodes {
			s.Nodes = append(s.Nodes, xn.node())
		}
		out = append(out, s)
	}
	return out
}

func (xn xmlNode) node() sent.Node {
	n := sent.Node{
		Id:    strings.TrimSpace(xn.Id),
		Lemma: strings.TrimSpace(xn.Lemma),
	}

	if xn.Relation != nil {
		n.Parent = strings.TrimSpace(xn.Relation.Parent)
		n.Relation = strings.TrimSpace(xn.Relation.Name)
	}

	if strings.HasPrefix(n.Id, artificialPrefix) {
		n.Artificial = true
		return n
	}

	n.Word = strings.TrimSpace(xn.Word)
	n.PosTag = strings.TrimSpace(xn.PosTag)
	return n
}

// WriteXML encodes the corpus in the RTE preprocessed format.
func WriteXML(w io.Writer, corpus sent.Corpus) error {
	type doc struct {
		XMLName xml.Name  `xml:"entailment-corpus"`
		Pairs   []xmlPair `xml:"pair"`
	}

	d := doc{}
	for _, p := range corpus {
		d.Pairs = append(d.Pairs, toXML(p))
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", " ")
	return enc.Encode(d)
}

func toXML(p sent.Pair) xmlPair {
	conv := func(ss []sent.Sentence) []xmlSentence {
		out := make([]xmlSentence, 0, len(ss))
		for _, s := range ss {
			xs := xmlSentence{Serial: s.Serial}
			for _, n := range s.Nodes {
				xn := xmlNode{Id: n.Id, Lemma: n.Lemma, Word: n.Word, PosTag: n.PosTag}
				if n.Parent != "" || n.Relation != "" {
					xn.Relation = &xmlRelation{Parent: n.Parent, Name: n.Relation}
				}
				xs.Nodes = append(xs.Nodes, xn)
			}
			out = append(out, xs)
		}
		return out
	}

	return xmlPair{
		Id:         p.Id,
		Task:       p.Task,
		Entailment: string(p.Entailment),
		Text:       conv(p.Text),
		Hypothesis: conv(p.Hypothesis),
	}
}
