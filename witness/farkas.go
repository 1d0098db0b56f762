package witness

import (
	"strconv"

	"github.com/ChatterjeeGroup-ISTA/PolyHorn/coeff"
	"github.com/ChatterjeeGroup-ISTA/PolyHorn/constraint"
	"github.com/ChatterjeeGroup-ISTA/PolyHorn/poly"
	"github.com/ChatterjeeGroup-ISTA/PolyHorn/variable"
)

// Farkas implements the linear-hypotheses/linear-goal certificate:
// for each hypothesis gᵢ a fresh nonnegative
// multiplier yᵢ, a slack y₀, and S = y₀ + Σ yᵢ·gᵢ equated against the
// goal (SAT), the constant −1 (nonstrict refutation), or 0 with a
// forced positive strict-sum (strict refutation).
type FarkasGenerator struct {
	Table *variable.Table
	LHS   []constraint.Poly
	RHS   constraint.Poly
}

func (f *FarkasGenerator) scaffold() (y0 coeff.Expr, ys []coeff.Expr, signs []constraint.Coeff, strictSum coeff.Expr) {
	y0v := f.Table.Fresh(variable.AuxFarkas, "y0")
	y0 = coeff.FromVariable(y0v)
	signs = append(signs, constraint.GECoeff(y0))

	strictSum = y0
	ys = make([]coeff.Expr, len(f.LHS))
	for i, g := range f.LHS {
		yv := f.Table.Fresh(variable.AuxFarkas, "y"+strconv.Itoa(i+1))
		ye := coeff.FromVariable(yv)
		ys[i] = ye
		signs = append(signs, constraint.GECoeff(ye))
		if g.IsStrict() {
			strictSum = strictSum.Add(ye)
		}
	}
	return y0, ys, signs, strictSum
}

func buildS(y0 coeff.Expr, ys []coeff.Expr, lhs []constraint.Poly) poly.Polynomial {
	s := poly.FromCoeff(y0)
	for i, g := range lhs {
		s = s.Add(g.Polynomial.ScaleCoeff(ys[i]))
	}
	return s
}

// SAT returns a clause sufficient for LHS ⇒ RHS.
func (f *FarkasGenerator) SAT() Clause {
	y0, ys, signs, strictSum := f.scaffold()
	s := buildS(y0, ys, f.LHS)
	var out Clause
	out = append(out, signs...)
	if f.RHS.IsStrict() {
		out = append(out, constraint.GTCoeff(strictSum))
	}
	out = append(out, FindEqualityConstraints(s, f.RHS.Polynomial)...)
	return out
}

// UnsatNonStrict returns a clause sufficient for LHS ⇒ ⊥ (nonstrict).
func (f *FarkasGenerator) UnsatNonStrict() Clause {
	y0, ys, signs, _ := f.scaffold()
	s := buildS(y0, ys, f.LHS)
	var out Clause
	out = append(out, signs...)
	out = append(out, FindEqualityConstraints(s, poly.FromCoeff(coeff.FromInt(-1)))...)
	return out
}

// UnsatStrict returns the (singleton) list of clauses sufficient for
// LHS ⇒ ⊥ in the strict sense.
func (f *FarkasGenerator) UnsatStrict() []Clause {
	y0, ys, signs, strictSum := f.scaffold()
	s := buildS(y0, ys, f.LHS)
	var out Clause
	out = append(out, signs...)
	out = append(out, constraint.GTCoeff(strictSum))
	out = append(out, FindEqualityConstraints(s, poly.FromCoeff(coeff.FromInt(0)))...)
	return []Clause{out}
}
