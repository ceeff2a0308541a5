package mathguard

import (
	"fmt"
	"math/big"
	"sort"
	"strings"
)

// poly is a single-variable polynomial keyed by exponent. Coefficients are
// exact rationals so that verification never suffers from float rounding.
type poly map[int]*big.Rat

func newPoly() poly { return poly{} }

func constPoly(r *big.Rat) poly {
	p := newPoly()
	if r.Sign() != 0 {
		p[0] = new(big.Rat).Set(r)
	}
	return p
}

func varPoly() poly {
	return poly{1: big.NewRat(1, 1)}
}

func (p poly) clone() poly {
	out := newPoly()
	for e, c := range p {
		out[e] = new(big.Rat).Set(c)
	}
	return out
}

func (p poly) set(exp int, c *big.Rat) {
	if c.Sign() == 0 {
		delete(p, exp)
		return
	}
	p[exp] = c
}

func (p poly) add(q poly) poly {
	out := p.clone()
	for e, c := range q {
		sum := new(big.Rat).Set(c)
		if cur, ok := out[e]; ok {
			sum.Add(sum, cur)
		}
		out.set(e, sum)
	}
	return out
}

func (p poly) neg() poly {
	out := newPoly()
	for e, c := range p {
		out[e] = new(big.Rat).Neg(c)
	}
	return out
}

func (p poly) sub(q poly) poly { return p.add(q.neg()) }

func (p poly) mul(q poly) poly {
	out := newPoly()
	for pe, pc := range p {
		for qe, qc := range q {
			prod := new(big.Rat).Mul(pc, qc)
			if cur, ok := out[pe+qe]; ok {
				prod.Add(prod, cur)
			}
			out.set(pe+qe, prod)
		}
	}
	return out
}

// pow raises p to a non-negative integer exponent by repeated multiplication;
// exponents stay small in practice (claimed results are human-written).
func (p poly) pow(n int) (poly, error) {
	if n < 0 {
		return nil, fmt.Errorf("negative exponent %d is not supported", n)
	}
	out := constPoly(big.NewRat(1, 1))
	for i := 0; i < n; i++ {
		out = out.mul(p)
	}
	return out, nil
}

// div divides by a constant polynomial; polynomial long division is out of
// scope for the verification domain.
func (p poly) div(q poly) (poly, error) {
	c, ok := q.constant()
	if !ok {
		return nil, fmt.Errorf("division by a non-constant expression is not supported")
	}
	if c.Sign() == 0 {
		return nil, fmt.Errorf("division by zero")
	}
	inv := new(big.Rat).Inv(c)
	return p.mul(constPoly(inv)), nil
}

// constant reports the value when the polynomial has degree zero.
func (p poly) constant() (*big.Rat, bool) {
	for e := range p {
		if e != 0 {
			return nil, false
		}
	}
	if c, ok := p[0]; ok {
		return new(big.Rat).Set(c), true
	}
	return big.NewRat(0, 1), true
}

func (p poly) isZero() bool { return len(p) == 0 }

func (p poly) equal(q poly) bool {
	if len(p) != len(q) {
		return false
	}
	for e, c := range p {
		qc, ok := q[e]
		if !ok || c.Cmp(qc) != 0 {
			return false
		}
	}
	return true
}

func (p poly) degree() int {
	d := 0
	for e := range p {
		if e > d {
			d = e
		}
	}
	return d
}

func (p poly) coeff(exp int) *big.Rat {
	if c, ok := p[exp]; ok {
		return new(big.Rat).Set(c)
	}
	return big.NewRat(0, 1)
}

func (p poly) derivative() poly {
	out := newPoly()
	for e, c := range p {
		if e == 0 {
			continue
		}
		out.set(e-1, new(big.Rat).Mul(c, big.NewRat(int64(e), 1)))
	}
	return out
}

// antiderivative integrates with constant of integration zero.
func (p poly) antiderivative() poly {
	out := newPoly()
	for e, c := range p {
		out.set(e+1, new(big.Rat).Mul(c, big.NewRat(1, int64(e+1))))
	}
	return out
}

// String renders the canonical human-readable form, terms in descending
// exponent order, e.g. "3*x**2 + 2*x - 1".
func (p poly) String() string {
	return p.render("x")
}

func (p poly) render(variable string) string {
	if p.isZero() {
		return "0"
	}
	exps := make([]int, 0, len(p))
	for e := range p {
		exps = append(exps, e)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(exps)))

	var b strings.Builder
	for i, e := range exps {
		c := p[e]
		neg := c.Sign() < 0
		abs := new(big.Rat).Abs(c)
		if i == 0 {
			if neg {
				b.WriteString("-")
			}
		} else {
			if neg {
				b.WriteString(" - ")
			} else {
				b.WriteString(" + ")
			}
		}
		b.WriteString(termString(abs, e, variable))
	}
	return b.String()
}

func termString(abs *big.Rat, exp int, variable string) string {
	one := abs.Cmp(big.NewRat(1, 1)) == 0
	switch {
	case exp == 0:
		return ratString(abs)
	case exp == 1 && one:
		return variable
	case exp == 1:
		return ratString(abs) + "*" + variable
	case one:
		return fmt.Sprintf("%s**%d", variable, exp)
	default:
		return fmt.Sprintf("%s*%s**%d", ratString(abs), variable, exp)
	}
}

func ratString(r *big.Rat) string {
	if r.IsInt() {
		return r.Num().String()
	}
	return r.RatString()
}
