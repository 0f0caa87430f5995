package tree

import (
	"errors"
	"fmt"

	sent "github.com/revelaction/entail/sentence"
)

const (
	// TextLabel and HypothesisLabel are the anchor roots of a pair.
	TextLabel       = "T"
	HypothesisLabel = "H"
)

var ErrMalformedInput = errors.New("malformed input")

// Build converts a sentence into a forest.
//
// Nodes are first allocated by id, then each node is appended to its
// parent children in sentence order. Parentless nodes are the roots. An
// unresolved parent, a duplicated id or a cycle fails the whole sentence.
func Build(s sent.Sentence) (Forest, error) {
	byId := make(map[string]*Node, len(s.Nodes))

	for _, sn := range s.Nodes {
		if sn.Id == "" {
			return nil, fmt.Errorf("%w: sentence %q: node without id", ErrMalformedInput, s.Serial)
		}
		if _, ok := byId[sn.Id]; ok {
			return nil, fmt.Errorf("%w: sentence %q: duplicated node id %q", ErrMalformedInput, s.Serial, sn.Id)
		}
		byId[sn.Id] = newNode(sn)
	}

	var roots Forest
	for _, sn := range s.Nodes {
		n := byId[sn.Id]
		if sn.IsRoot() {
			roots = append(roots, n)
			continue
		}

		parent, ok := byId[sn.Parent]
		if !ok {
			return nil, fmt.Errorf("%w: sentence %q: node %q has unknown parent %q", ErrMalformedInput, s.Serial, sn.Id, sn.Parent)
		}
		parent.Append(n)
	}

	// a cycle leaves its nodes unreachable from the roots
	if size := roots.Size(); size != len(s.Nodes) {
		return nil, fmt.Errorf("%w: sentence %q: %d nodes not reachable from a root", ErrMalformedInput, s.Serial, len(s.Nodes)-size)
	}

	return roots, nil
}

func newNode(sn sent.Node) *Node {
	label := sn.Label()
	if label == "" {
		return &Node{Label: sn.Id}
	}
	return &Node{Label: label, Lexical: true}
}

// Anchor builds the forests of all sentences and hangs their roots, in
// order, under a single non lexical root with the given label.
func Anchor(label string, sentences []sent.Sentence) (*Node, error) {
	root := NewNode(label)
	for _, s := range sentences {
		f, err := Build(s)
		if err != nil {
			return nil, err
		}
		root.Children = append(root.Children, f...)
	}
	return root, nil
}
