package rational

import (
	"fmt"
	"math/big"
)

// LimitDenominator returns the rational closest to x whose denominator does
// not exceed maxDen.
//
// The search walks the continued-fraction convergents of x until the next one
// would exceed maxDen, then chooses between the last convergent and the best
// semiconvergent below the bound. When both are equally close the convergent
// wins; it always has the smaller denominator. The result is deterministic.
//
// Panics if maxDen < 1.
func (x Rat) LimitDenominator(maxDen int64) Rat {
	if maxDen < 1 {
		panic(fmt.Sprintf("rational: max denominator must be >= 1, got %d", maxDen))
	}
	bound := big.NewInt(maxDen)
	v := x.val()
	if v.Denom().Cmp(bound) <= 0 {
		return x
	}

	// p0/q0 and p1/q1 are the two most recent convergents.
	p0, q0 := big.NewInt(0), big.NewInt(1)
	p1, q1 := big.NewInt(1), big.NewInt(0)
	n := new(big.Int).Set(v.Num())
	d := new(big.Int).Set(v.Denom())

	a, rem := new(big.Int), new(big.Int)
	for {
		// Euclidean division floors because d > 0.
		a.DivMod(n, d, rem)
		q2 := new(big.Int).Mul(a, q1)
		q2.Add(q2, q0)
		if q2.Cmp(bound) > 0 {
			break
		}
		p2 := new(big.Int).Mul(a, p1)
		p2.Add(p2, p0)
		p0, q0, p1, q1 = p1, q1, p2, q2
		n, d = d, new(big.Int).Set(rem)
	}

	// k is the largest multiplier keeping the semiconvergent under the bound.
	k := new(big.Int).Sub(bound, q0)
	k.Quo(k, q1)

	semiNum := new(big.Int).Mul(k, p1)
	semiNum.Add(semiNum, p0)
	semiDen := new(big.Int).Mul(k, q1)
	semiDen.Add(semiDen, q0)

	semi := new(big.Rat).SetFrac(semiNum, semiDen)
	conv := new(big.Rat).SetFrac(p1, q1)

	errSemi := new(big.Rat).Sub(semi, v)
	errSemi.Abs(errSemi)
	errConv := new(big.Rat).Sub(conv, v)
	errConv.Abs(errConv)

	if errConv.Cmp(errSemi) <= 0 {
		return Rat{r: conv}
	}
	return Rat{r: semi}
}
