// Package cost defines the node edit costs used by the tree edit distance.
package cost

import (
	"fmt"
	"strings"

	"github.com/revelaction/entail/idf"
	"github.com/revelaction/entail/tree"
)

const (
	UnitName        = "unit"
	DirectionalName = "directional"
	IDFName         = "idf"
)

// Function gives the cost of each edit operation. Implementations must be
// pure and return 0 for the substitution of equal labels.
type Function interface {
	// Insertion is the cost of introducing n with no counterpart.
	Insertion(n *tree.Node) float64

	// Deletion is the cost of removing n with no counterpart.
	Deletion(n *tree.Node) float64

	// Substitution is the cost of relabeling from into to.
	Substitution(from, to *tree.Node) (float64, error)

	Name() string
}

// Unit is the symmetric 0/1 cost.
type Unit struct{}

func (Unit) Insertion(*tree.Node) float64 { return 1 }
func (Unit) Deletion(*tree.Node) float64  { return 1 }
func (Unit) Name() string                 { return UnitName }

func (Unit) Substitution(from, to *tree.Node) (float64, error) {
	return mismatch(from, to), nil
}

// Directional measures how much of the second tree is not covered by the
// first: deleting from the first tree is free.
type Directional struct{}

func (Directional) Insertion(*tree.Node) float64 { return 1 }
func (Directional) Deletion(*tree.Node) float64  { return 0 }
func (Directional) Name() string                 { return DirectionalName }

func (Directional) Substitution(from, to *tree.Node) (float64, error) {
	return mismatch(from, to), nil
}

// IDF is the unit cost with lexical mismatches weighted by the inverse
// frequency of the replaced lemma.
type IDF struct {
	table *idf.Table
}

func NewIDF(t *idf.Table) *IDF {
	return &IDF{table: t}
}

func (*IDF) Insertion(*tree.Node) float64 { return 1 }
func (*IDF) Deletion(*tree.Node) float64  { return 1 }
func (*IDF) Name() string                 { return IDFName }

// Substitution returns the inverse frequency of from. Non lexical nodes
// (artificial nodes, anchors) have no frequency and cost 1.
func (c *IDF) Substitution(from, to *tree.Node) (float64, error) {
	if from.Label == to.Label {
		return 0, nil
	}

	if !from.Lexical {
		return 1, nil
	}

	return c.table.Inverse(from.Label)
}

func mismatch(from, to *tree.Node) float64 {
	if from.Label == to.Label {
		return 0
	}
	return 1
}

// Names returns the names accepted by ByName.
func Names() []string {
	return []string{UnitName, DirectionalName, IDFName}
}

// ByName returns the named cost function. The idf variant needs a table.
func ByName(name string, t *idf.Table) (Function, error) {
	switch strings.ToLower(name) {
	case UnitName:
		return Unit{}, nil
	case DirectionalName:
		return Directional{}, nil
	case IDFName:
		if t == nil {
			return nil, fmt.Errorf("cost %q needs a frequency table", IDFName)
		}
		return NewIDF(t), nil
	}

	return nil, fmt.Errorf("unknown cost %q, allowed values are %s", name, strings.Join(Names(), ", "))
}
