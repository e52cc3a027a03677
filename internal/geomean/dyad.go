package geomean

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/roach88/powcanon/internal/rational"
)

// Weights is a weight vector over the inputs of a geometric mean.
type Weights []rational.Rat

func (w Weights) String() string {
	parts := make([]string, len(w))
	for i, v := range w {
		parts[i] = v.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// key identifies a weight vector for memoization.
func (w Weights) key() string {
	parts := make([]string, len(w))
	for i, v := range w {
		parts[i] = v.String()
	}
	return strings.Join(parts, ",")
}

// Sum returns the exact sum of the weights.
func (w Weights) Sum() rational.Rat {
	total := rational.Zero
	for _, v := range w {
		total = total.Add(v)
	}
	return total
}

// IsBasis reports whether w has a single weight equal to one.
func (w Weights) IsBasis() bool {
	for _, v := range w {
		if v.IsOne() {
			return true
		}
	}
	return false
}

// Validate checks that w is a nonempty nonnegative vector summing to one.
func (w Weights) Validate() error {
	if len(w) == 0 {
		return fmt.Errorf("geomean: empty weight vector")
	}
	for i, v := range w {
		if v.Sign() < 0 {
			return fmt.Errorf("geomean: weight %d is negative: %s", i, v)
		}
	}
	if sum := w.Sum(); !sum.IsOne() {
		return fmt.Errorf("geomean: weights %s sum to %s, not 1", w, sum)
	}
	return nil
}

// IsDyadic reports whether every weight has a power-of-two denominator.
func (w Weights) IsDyadic() bool {
	for _, v := range w {
		if !isPow2(v.Den()) {
			return false
		}
	}
	return true
}

func isPow2(n *big.Int) bool {
	return n.Sign() > 0 && uint(n.BitLen()-1) == n.TrailingZeroBits()
}

// nextPow2 returns the smallest power of two >= n.
func nextPow2(n *big.Int) *big.Int {
	if isPow2(n) {
		return new(big.Int).Set(n)
	}
	return new(big.Int).Lsh(big.NewInt(1), uint(n.BitLen()))
}

// commonDenominator returns the least common multiple of the denominators.
func (w Weights) commonDenominator() *big.Int {
	lcm := big.NewInt(1)
	for _, v := range w {
		den := v.Den()
		gcd := new(big.Int).GCD(nil, nil, lcm, den)
		lcm.Mul(lcm, new(big.Int).Quo(den, gcd))
	}
	return lcm
}

// DyadCompletion returns a dyadic weight vector equivalent to w.
//
// With d the common denominator of w and D the next power of two, each
// weight is scaled by d/D and a residual weight (D-d)/D is appended. The
// residual is applied to the hypograph variable itself, which is what makes
// the two problems equivalent. An already dyadic w is returned unchanged.
func DyadCompletion(w Weights) Weights {
	d := w.commonDenominator()
	p := nextPow2(d)
	if p.Cmp(d) == 0 {
		return w
	}

	scale := rational.FromBig(new(big.Rat).SetFrac(d, p))
	out := make(Weights, 0, len(w)+1)
	for _, v := range w {
		out = append(out, v.Mul(scale))
	}
	residual := new(big.Rat).SetFrac(new(big.Int).Sub(p, d), p)
	return append(out, rational.FromBig(residual))
}

// Split divides a dyadic, non-basis weight vector into two children whose
// average is w. Bits are peeled from 2w, largest first, into the first
// child until it sums to one; the remainder is the second child.
func Split(w Weights) (Weights, Weights, error) {
	if w.IsBasis() {
		return nil, nil, fmt.Errorf("geomean: basis vector %s has no children", w)
	}
	if !w.IsDyadic() {
		return nil, nil, fmt.Errorf("geomean: weights %s are not dyadic", w)
	}

	two := rational.FromInt(2)
	first := make(Weights, len(w))
	second := make(Weights, len(w))
	for i, v := range w {
		first[i] = rational.Zero
		second[i] = v.Mul(two)
	}

	smallest := w.commonDenominator()
	for bit := rational.One; bit.Den().Cmp(smallest) <= 0; bit = bit.Quo(two) {
		for i := range second {
			if second[i].Cmp(bit) >= 0 {
				second[i] = second[i].Sub(bit)
				first[i] = first[i].Add(bit)
			}
			if first.Sum().IsOne() {
				return first, second, nil
			}
		}
	}
	return nil, nil, fmt.Errorf("geomean: cannot split %s", w)
}

// Node is one weight vector in a decomposition tree. Leaves are basis
// vectors and have no children.
type Node struct {
	Weights  Weights
	Children [2]Weights
	Leaf     bool
}

// Tree is a memoized dyadic decomposition. Nodes are kept in
// breadth-first discovery order.
type Tree struct {
	Root  Weights
	nodes []*Node
	index map[string]*Node
}

// Decompose builds the decomposition tree of a dyadic weight vector.
func Decompose(w Weights) (*Tree, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	if !w.IsDyadic() {
		return nil, fmt.Errorf("geomean: weights %s are not dyadic", w)
	}

	tree := &Tree{Root: w, index: make(map[string]*Node)}
	todo := []Weights{w}
	for len(todo) > 0 {
		cur := todo[0]
		todo = todo[1:]
		if _, seen := tree.index[cur.key()]; seen {
			continue
		}

		node := &Node{Weights: cur}
		if cur.IsBasis() {
			node.Leaf = true
		} else {
			a, b, err := Split(cur)
			if err != nil {
				return nil, err
			}
			node.Children = [2]Weights{a, b}
			todo = append(todo, a, b)
		}
		tree.index[cur.key()] = node
		tree.nodes = append(tree.nodes, node)
	}
	return tree, nil
}

// Nodes returns every node in discovery order.
func (t *Tree) Nodes() []*Node {
	return t.nodes
}

// Internal returns the non-leaf nodes in discovery order. Each one becomes
// a two-term constraint.
func (t *Tree) Internal() []*Node {
	var out []*Node
	for _, n := range t.nodes {
		if !n.Leaf {
			out = append(out, n)
		}
	}
	return out
}

// Lookup returns the node for w, if present.
func (t *Tree) Lookup(w Weights) (*Node, bool) {
	n, ok := t.index[w.key()]
	return n, ok
}
