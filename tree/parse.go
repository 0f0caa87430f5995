package tree

import (
	"fmt"
	"strings"
	"unicode"
)

// Parse reads a forest in bracket notation, the format of Forest.String:
//
//	A(B,C) X(Y(Z))
//
// Top level trees are separated by spaces or commas. Parsed nodes are non
// lexical unless their label is prefixed with '#'.
func Parse(s string) (Forest, error) {
	p := &parser{in: []rune(s)}

	var f Forest
	for {
		p.skipSeparators()
		if p.eof() {
			return f, nil
		}
		n, err := p.node()
		if err != nil {
			return nil, err
		}
		f = append(f, n)
	}
}

// MustParse is like Parse but panics on error. Intended for fixtures.
func MustParse(s string) Forest {
	f, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return f
}

type parser struct {
	in  []rune
	pos int
}

func (p *parser) eof() bool {
	return p.pos >= len(p.in)
}

func (p *parser) skipSeparators() {
	for !p.eof() && (p.in[p.pos] == ',' || unicode.IsSpace(p.in[p.pos])) {
		p.pos++
	}
}

func (p *parser) skipSpace() {
	for !p.eof() && unicode.IsSpace(p.in[p.pos]) {
		p.pos++
	}
}

func (p *parser) label() string {
	start := p.pos
	for !p.eof() {
		r := p.in[p.pos]
		if r == '(' || r == ')' || r == ',' || unicode.IsSpace(r) {
			break
		}
		p.pos++
	}
	return string(p.in[start:p.pos])
}

func (p *parser) node() (*Node, error) {
	label := p.label()
	if label == "" {
		return nil, fmt.Errorf("tree: empty label at offset %d", p.pos)
	}

	n := &Node{Label: label}
	if strings.HasPrefix(label, "#") && len(label) > 1 {
		n.Label = label[1:]
		n.Lexical = true
	}

	p.skipSpace()
	if p.eof() || p.in[p.pos] != '(' {
		return n, nil
	}
	p.pos++

	for {
		p.skipSpace()
		if p.eof() {
			return nil, fmt.Errorf("tree: unclosed children of %q", n.Label)
		}
		if p.in[p.pos] == ')' {
			p.pos++
			return n, nil
		}
		child, err := p.node()
		if err != nil {
			return nil, err
		}
		n.Append(child)

		p.skipSpace()
		if !p.eof() && p.in[p.pos] == ',' {
			p.pos++
		}
	}
}
