// Package tree builds ordered labeled trees from dependency parsed
// sentences.
package tree

import "strings"

// Node is a labeled node of an ordered tree. The children order is the
// sentence order and is significant.
type Node struct {
	Label string

	// Lexical is true for nodes built from a word. Artificial nodes and
	// anchors have no lemma.
	Lexical bool

	Children []*Node
}

// NewNode returns a non lexical node with the given children.
func NewNode(label string, children ...*Node) *Node {
	return &Node{Label: label, Children: children}
}

// Append adds child as the last child of n.
func (n *Node) Append(child *Node) {
	n.Children = append(n.Children, child)
}

// Size returns the number of nodes of the subtree rooted at n.
func (n *Node) Size() int {
	if n == nil {
		return 0
	}
	return Forest{n}.Size()
}

// String returns the bracket notation of the subtree, e.g. A(B,C).
func (n *Node) String() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func (n *Node) write(b *strings.Builder) {
	b.WriteString(n.Label)
	if len(n.Children) == 0 {
		return
	}
	b.WriteByte('(')
	for i, c := range n.Children {
		if i > 0 {
			b.WriteByte(',')
		}
		c.write(b)
	}
	b.WriteByte(')')
}

// Forest is an ordered sequence of trees. It may be empty.
type Forest []*Node

// Size returns the number of nodes of the forest.
func (f Forest) Size() int {
	num := 0
	stack := append([]*Node(nil), f...)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		num++
		stack = append(stack, n.Children...)
	}
	return num
}

// String returns the bracket notation of every tree, space separated.
func (f Forest) String() string {
	trees := make([]string, len(f))
	for i, n := range f {
		trees[i] = n.String()
	}
	return strings.Join(trees, " ")
}

// Walk visits every node of the forest in preorder with its depth.
func (f Forest) Walk(fn func(n *Node, depth int)) {
	type item struct {
		node  *Node
		depth int
	}

	stack := make([]item, 0, len(f))
	for i := len(f) - 1; i >= 0; i-- {
		stack = append(stack, item{f[i], 0})
	}

	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		fn(it.node, it.depth)
		for i := len(it.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, item{it.node.Children[i], it.depth + 1})
		}
	}
}
