package ted

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/revelaction/entail/cost"
	"github.com/revelaction/entail/idf"
	"github.com/revelaction/entail/tree"
)

const epsilon = 1e-9

func distance(t *testing.T, f1, f2 string, c cost.Function) float64 {
	t.Helper()
	d, err := Distance(tree.MustParse(f1), tree.MustParse(f2), c)
	if err != nil {
		t.Fatalf("Distance(%q, %q): unexpected error: %v", f1, f2, err)
	}
	return d
}

func TestDistanceExamples(t *testing.T) {
	tests := []struct {
		name   string
		f1, f2 string
		c      cost.Function
		want   float64
	}{
		{"identical", "A(B,C)", "A(B,C)", cost.Unit{}, 0},
		{"added leaf", "A(B)", "A(B,C)", cost.Unit{}, 1},
		{"relabeled root", "A(B)", "X(B)", cost.Unit{}, 1},
		{"relabeled root directional", "A(B)", "X(B)", cost.Directional{}, 1},
		{"from empty directional", "", "A(B,C)", cost.Directional{}, 3},
		{"to empty directional", "A(B,C)", "", cost.Directional{}, 0},
		{"to empty unit", "A(B,C)", "", cost.Unit{}, 3},
		{"both empty", "", "", cost.Unit{}, 0},
		// Zhang and Shasha's example: delete c, insert c above d
		{"zhang shasha", "f(d(a,c(b)),e)", "f(c(d(a,b)),e)", cost.Unit{}, 2},
		{"delete inner node", "A(B(C,D))", "A(C,D)", cost.Unit{}, 1},
		{"insert adopting siblings", "A(B,C,D)", "A(B,X(C,D))", cost.Unit{}, 1},
		{"swap siblings", "A(B,C)", "A(C,B)", cost.Unit{}, 2},
		{"forest roots", "A B", "A C B", cost.Unit{}, 1},
		{"merge roots under new root", "A B", "X(A,B)", cost.Unit{}, 1},
		{"directional covers text", "T(a(b),c,d)", "H(a(b))", cost.Directional{}, 1},
		{"directional uncovered", "T(a)", "H(a(b),c)", cost.Directional{}, 3},
	}

	for _, tt := range tests {
		if got := distance(t, tt.f1, tt.f2, tt.c); math.Abs(got-tt.want) > epsilon {
			t.Errorf("%s: Distance(%q, %q, %s) = %v, want %v", tt.name, tt.f1, tt.f2, tt.c.Name(), got, tt.want)
		}
	}
}

func TestTreeDistance(t *testing.T) {
	a := tree.MustParse("A(B)")[0]
	b := tree.MustParse("X(B)")[0]

	d, err := TreeDistance(a, b, cost.Unit{})
	if err != nil || d != 1 {
		t.Errorf("expected 1, got %v, %v", d, err)
	}

	d, err = TreeDistance(nil, b, cost.Directional{})
	if err != nil || d != 2 {
		t.Errorf("expected 2, got %v, %v", d, err)
	}
}

func TestIdentity(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for k := 0; k < 50; k++ {
		f := randomForest(r, 12)
		d, err := Distance(f, f, cost.Unit{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if d != 0 {
			t.Fatalf("Distance(%s, %s) = %v, want 0", f, f, d)
		}
	}
}

func TestUnitSymmetry(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	for k := 0; k < 100; k++ {
		f1, f2 := randomForest(r, 10), randomForest(r, 10)
		d12, _ := Distance(f1, f2, cost.Unit{})
		d21, _ := Distance(f2, f1, cost.Unit{})
		if d12 != d21 {
			t.Fatalf("asymmetric unit distance for %s and %s: %v != %v", f1, f2, d12, d21)
		}
	}
}

func TestDirectionalAsymmetry(t *testing.T) {
	r := rand.New(rand.NewSource(13))
	for k := 0; k < 50; k++ {
		f := randomForest(r, 10)

		d, _ := Distance(nil, f, cost.Directional{})
		if d != float64(f.Size()) {
			t.Fatalf("Distance(empty, %s) = %v, want %d", f, d, f.Size())
		}

		d, _ = Distance(f, nil, cost.Directional{})
		if d != 0 {
			t.Fatalf("Distance(%s, empty) = %v, want 0", f, d)
		}
	}

	d12 := distance(t, "A(B,C)", "A", cost.Directional{})
	d21 := distance(t, "A", "A(B,C)", cost.Directional{})
	if d12 == d21 {
		t.Errorf("expected asymmetric directional distance, got %v both ways", d12)
	}
}

func TestAddedLeafIncreasesAtMostOne(t *testing.T) {
	r := rand.New(rand.NewSource(17))
	for k := 0; k < 100; k++ {
		f1, f2 := randomForest(r, 8), randomForest(r, 8)
		if len(f2) == 0 {
			continue
		}

		before, _ := Distance(f1, f2, cost.Unit{})

		f3 := clone(f2)
		parent := pick(r, f3)
		parent.Append(&tree.Node{Label: labels[r.Intn(len(labels))]})

		after, _ := Distance(f1, f3, cost.Unit{})
		if after-before > 1+epsilon {
			t.Fatalf("adding a leaf to %s raised the distance from %v to %v", f2, before, after)
		}
	}
}

func TestDeterminism(t *testing.T) {
	r := rand.New(rand.NewSource(19))
	f1, f2 := randomForest(r, 15), randomForest(r, 15)

	first, _ := Distance(f1, f2, cost.Directional{})
	for k := 0; k < 10; k++ {
		again, _ := Distance(f1, f2, cost.Directional{})
		if again != first {
			t.Fatalf("non deterministic distance: %v then %v", first, again)
		}
	}
}

func TestMatchesRecursiveDefinition(t *testing.T) {
	tbl, err := idf.FromCounts(map[string]int{"a": 1, "b": 2, "c": 4, "d": 8})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	costs := []cost.Function{cost.Unit{}, cost.Directional{}, cost.NewIDF(tbl)}

	r := rand.New(rand.NewSource(23))
	for k := 0; k < 300; k++ {
		f1, f2 := randomForest(r, 7), randomForest(r, 7)
		for _, c := range costs {
			got, err := Distance(f1, f2, c)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			want := newNaive(c).distance(f1, f2)
			if math.Abs(got-want) > epsilon {
				t.Fatalf("Distance(%s, %s, %s) = %v, recursive definition gives %v", f1, f2, c.Name(), got, want)
			}
		}
	}
}

type failingCost struct{ cost.Unit }

var errCost = errors.New("no cost")

func (failingCost) Substitution(from, to *tree.Node) (float64, error) {
	return 0, errCost
}

func TestSubstitutionErrorPropagates(t *testing.T) {
	_, err := Distance(tree.MustParse("A(B)"), tree.MustParse("A(C)"), failingCost{})
	if !errors.Is(err, errCost) {
		t.Errorf("expected errCost, got %v", err)
	}
}

func TestIDFMissingLemmaPropagates(t *testing.T) {
	tbl, _ := idf.FromCounts(map[string]int{"dog": 1})
	_, err := Distance(tree.MustParse("T(#dog)"), tree.MustParse("H(#cat)"), cost.NewIDF(tbl))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = Distance(tree.MustParse("T(#horse)"), tree.MustParse("H(#cat)"), cost.NewIDF(tbl))
	if !errors.Is(err, idf.ErrMissingFrequency) {
		t.Errorf("expected ErrMissingFrequency, got %v", err)
	}
}

func TestDeepTreeDoesNotRecurse(t *testing.T) {
	// a 5000 node chain
	root := &tree.Node{Label: "n"}
	n := root
	for k := 0; k < 4999; k++ {
		c := &tree.Node{Label: "n"}
		n.Append(c)
		n = c
	}

	d, err := Distance(nil, tree.Forest{root}, cost.Directional{})
	if err != nil || d != 5000 {
		t.Errorf("expected 5000, got %v, %v", d, err)
	}
}

// naive is the textbook recursive forest distance, removing the rightmost
// root, memoized by bracket notation.
type naive struct {
	c    cost.Function
	memo map[string]float64
}

func newNaive(c cost.Function) *naive {
	return &naive{c: c, memo: map[string]float64{}}
}

func (n *naive) distance(f1, f2 tree.Forest) float64 {
	key := f1.String() + "|" + f2.String()
	if d, ok := n.memo[key]; ok {
		return d
	}

	var d float64
	switch {
	case len(f1) == 0 && len(f2) == 0:
		d = 0
	case len(f2) == 0:
		v := f1[len(f1)-1]
		d = n.distance(withoutRoot(f1), f2) + n.c.Deletion(v)
	case len(f1) == 0:
		w := f2[len(f2)-1]
		d = n.distance(f1, withoutRoot(f2)) + n.c.Insertion(w)
	default:
		v, w := f1[len(f1)-1], f2[len(f2)-1]
		sub, err := n.c.Substitution(v, w)
		if err != nil {
			panic(err)
		}
		d = min(
			n.distance(withoutRoot(f1), f2)+n.c.Deletion(v),
			n.distance(f1, withoutRoot(f2))+n.c.Insertion(w),
			n.distance(v.Children, w.Children)+n.distance(f1[:len(f1)-1], f2[:len(f2)-1])+sub,
		)
	}

	n.memo[key] = d
	return d
}

func withoutRoot(f tree.Forest) tree.Forest {
	last := f[len(f)-1]
	out := append(tree.Forest{}, f[:len(f)-1]...)
	return append(out, last.Children...)
}

var labels = []string{"a", "b", "c", "d"}

// randomForest returns a forest of at most limit lexical nodes.
func randomForest(r *rand.Rand, limit int) tree.Forest {
	size := r.Intn(limit + 1)
	var f tree.Forest
	var all []*tree.Node
	for k := 0; k < size; k++ {
		n := &tree.Node{Label: labels[r.Intn(len(labels))], Lexical: true}
		if len(all) == 0 || r.Intn(4) == 0 {
			f = append(f, n)
		} else {
			all[r.Intn(len(all))].Append(n)
		}
		all = append(all, n)
	}
	return f
}

func clone(f tree.Forest) tree.Forest {
	out := make(tree.Forest, len(f))
	for i, n := range f {
		c := &tree.Node{Label: n.Label, Lexical: n.Lexical}
		c.Children = clone(n.Children)
		out[i] = c
	}
	return out
}

func pick(r *rand.Rand, f tree.Forest) *tree.Node {
	var all []*tree.Node
	f.Walk(func(n *tree.Node, _ int) {
		all = append(all, n)
	})
	return all[r.Intn(len(all))]
}
