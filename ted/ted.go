// Package ted computes the edit distance between ordered labeled forests.
//
// The algorithm is Zhang and Shasha's keyroot decomposition. Nodes are
// numbered in postorder; treedist holds the distance between every pair of
// subtrees and is filled keyroot pair by keyroot pair, each pair reusing a
// single forestdist table. A last pass over the whole forests behaves as a
// pair of virtual roots that are never relabeled, which turns the tree
// distance into a forest distance.
//
// Allowed edit operations are node insertion, node deletion and node
// relabeling. Deleting a node promotes its children in place; inserting a
// node may adopt a contiguous run of siblings. Ancestry and sibling order
// are preserved by every mapping.
package ted

import (
	"github.com/revelaction/entail/cost"
	"github.com/revelaction/entail/tree"
)

// Distance returns the minimum total cost of an edit script transforming
// f1 into f2 under c. The only errors are the ones returned by
// c.Substitution.
func Distance(f1, f2 tree.Forest, c cost.Function) (float64, error) {
	e := newEngine(index(f1), index(f2), c)
	return e.run()
}

// TreeDistance is Distance between two single trees. A nil tree is the
// empty forest.
func TreeDistance(t1, t2 *tree.Node, c cost.Function) (float64, error) {
	return Distance(single(t1), single(t2), c)
}

func single(n *tree.Node) tree.Forest {
	if n == nil {
		return nil
	}
	return tree.Forest{n}
}

// postorder is a forest numbered in postorder, starting at 1.
type postorder struct {
	nodes []*tree.Node

	// lml is the postorder number of the leftmost leaf descendant.
	lml []int

	// keyroots are the nodes without a later node sharing their leftmost
	// leaf, ascending.
	keyroots []int
}

func (p *postorder) size() int {
	return len(p.nodes) - 1
}

func index(f tree.Forest) *postorder {
	p := &postorder{
		nodes: []*tree.Node{nil},
		lml:   []int{0},
	}

	type frame struct {
		node     *tree.Node
		next     int
		leftmost int
	}

	for _, root := range f {
		stack := []frame{{node: root}}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next < len(top.node.Children) {
				child := top.node.Children[top.next]
				top.next++
				stack = append(stack, frame{node: child})
				continue
			}

			p.nodes = append(p.nodes, top.node)
			pos := len(p.nodes) - 1
			l := top.leftmost
			if l == 0 {
				l = pos
			}
			p.lml = append(p.lml, l)

			stack = stack[:len(stack)-1]
			if len(stack) > 0 && stack[len(stack)-1].leftmost == 0 {
				stack[len(stack)-1].leftmost = l
			}
		}
	}

	seen := make(map[int]bool, len(p.nodes))
	for i := p.size(); i >= 1; i-- {
		if seen[p.lml[i]] {
			continue
		}
		seen[p.lml[i]] = true
		p.keyroots = append(p.keyroots, i)
	}
	for i, j := 0, len(p.keyroots)-1; i < j; i, j = i+1, j-1 {
		p.keyroots[i], p.keyroots[j] = p.keyroots[j], p.keyroots[i]
	}

	return p
}

type engine struct {
	a, b *postorder
	c    cost.Function

	// del and ins are the per node costs, indexed by postorder number
	del []float64
	ins []float64

	treedist   [][]float64
	forestdist [][]float64
}

func newEngine(a, b *postorder, c cost.Function) *engine {
	e := &engine{a: a, b: b, c: c}

	e.del = make([]float64, a.size()+1)
	for i := 1; i <= a.size(); i++ {
		e.del[i] = c.Deletion(a.nodes[i])
	}

	e.ins = make([]float64, b.size()+1)
	for j := 1; j <= b.size(); j++ {
		e.ins[j] = c.Insertion(b.nodes[j])
	}

	return e
}

func (e *engine) run() (float64, error) {
	n, m := e.a.size(), e.b.size()

	if n == 0 || m == 0 {
		total := 0.0
		for i := 1; i <= n; i++ {
			total += e.del[i]
		}
		for j := 1; j <= m; j++ {
			total += e.ins[j]
		}
		return total, nil
	}

	e.treedist = table(n+1, m+1)
	e.forestdist = table(n+1, m+1)

	for _, i := range e.a.keyroots {
		for _, j := range e.b.keyroots {
			if err := e.forests(i, j, true); err != nil {
				return 0, err
			}
		}
	}

	// virtual roots: every subtree distance is known
	if err := e.forests(n, m, false); err != nil {
		return 0, err
	}

	return e.forestdist[n][m], nil
}

// forests fills forestdist for the forests spanning the postorder ranges
// lml(i)..i and lml(j)..j. For a keyroot pair the distances of subtrees
// on the leftmost paths are stored in treedist. The virtual root pass
// spans 1..i and 1..j and only reads treedist.
func (e *engine) forests(i, j int, keyroot bool) error {
	li, lj := e.a.lml[i], e.b.lml[j]
	if !keyroot {
		li, lj = 1, 1
	}

	fd := e.forestdist
	fd[0][0] = 0
	for x := li; x <= i; x++ {
		fd[x-li+1][0] = fd[x-li][0] + e.del[x]
	}
	for y := lj; y <= j; y++ {
		fd[0][y-lj+1] = fd[0][y-lj] + e.ins[y]
	}

	for x := li; x <= i; x++ {
		dx := x - li + 1
		for y := lj; y <= j; y++ {
			dy := y - lj + 1

			del := fd[dx-1][dy] + e.del[x]
			ins := fd[dx][dy-1] + e.ins[y]

			if keyroot && e.a.lml[x] == li && e.b.lml[y] == lj {
				sub, err := e.c.Substitution(e.a.nodes[x], e.b.nodes[y])
				if err != nil {
					return err
				}
				fd[dx][dy] = min(del, ins, fd[dx-1][dy-1]+sub)
				e.treedist[x][y] = fd[dx][dy]
				continue
			}

			match := fd[e.a.lml[x]-li][e.b.lml[y]-lj] + e.treedist[x][y]
			fd[dx][dy] = min(del, ins, match)
		}
	}

	return nil
}

func table(rows, cols int) [][]float64 {
	cells := make([]float64, rows*cols)
	t := make([][]float64, rows)
	for r := range t {
		t[r] = cells[r*cols : (r+1)*cols]
	}
	return t
}
