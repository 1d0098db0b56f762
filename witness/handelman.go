package witness

import (
	"strconv"

	"github.com/ChatterjeeGroup-ISTA/PolyHorn/coeff"
	"github.com/ChatterjeeGroup-ISTA/PolyHorn/constraint"
	"github.com/ChatterjeeGroup-ISTA/PolyHorn/poly"
	"github.com/ChatterjeeGroup-ISTA/PolyHorn/variable"
)

// HandelmanGenerator implements the polynomial-goal/linear-hypotheses
// certificate: enumerate every monoid product of the
// hypotheses up to a caller-supplied degree bound, introduce a fresh
// nonnegative multiplier per product, and match coefficients of the
// resulting sum against the target.
type HandelmanGenerator struct {
	Table          *variable.Table
	LHS            []constraint.Poly
	RHS            constraint.Poly
	MaxDegForSat   int
	MaxDegForUnsat int
}

type handelmanMonoid struct {
	exps   []int
	strict bool
	poly   poly.Polynomial
}

func (h *HandelmanGenerator) monoids(D int) []handelmanMonoid {
	exps := listsOfFixedLen(len(h.LHS), D)
	out := make([]handelmanMonoid, len(exps))
	for i, e := range exps {
		out[i] = handelmanMonoid{
			exps:   e,
			strict: monoidIsStrict(h.LHS, e),
			poly:   polyFromMonoidProduct(h.LHS, e),
		}
	}
	return out
}

// build constructs the shared scaffold: one fresh y_k ≥ 0 per monoid
// product up to degree D, an optional slack y0 when needsY0, and
// S = (y0 if needsY0) + Σ yₖ·Mₖ.
func (h *HandelmanGenerator) build(D int, needsY0 bool) (s poly.Polynomial, signs []constraint.Coeff, strictSum coeff.Expr) {
	if needsY0 {
		y0v := h.Table.Fresh(variable.AuxHandelman, "y0")
		y0 := coeff.FromVariable(y0v)
		s = poly.FromCoeff(y0)
		strictSum = y0
		signs = append(signs, constraint.GECoeff(y0))
	} else {
		s = poly.Zero()
		strictSum = coeff.Zero()
	}
	for k, m := range h.monoids(D) {
		yv := h.Table.Fresh(variable.AuxHandelman, "y"+fmtExps(m.exps)+"_"+strconv.Itoa(k))
		ye := coeff.FromVariable(yv)
		signs = append(signs, constraint.GECoeff(ye))
		s = s.Add(m.poly.ScaleCoeff(ye))
		if m.strict {
			strictSum = strictSum.Add(ye)
		}
	}
	return s, signs, strictSum
}

// SAT returns a clause sufficient for LHS ⇒ RHS.
func (h *HandelmanGenerator) SAT() Clause {
	s, signs, strictSum := h.build(h.MaxDegForSat, h.RHS.IsStrict())
	var out Clause
	out = append(out, signs...)
	if h.RHS.IsStrict() {
		out = append(out, constraint.GTCoeff(strictSum))
	}
	out = append(out, FindEqualityConstraints(s, h.RHS.Polynomial)...)
	return out
}

// UnsatNonStrict returns a clause sufficient for LHS ⇒ ⊥ (nonstrict).
func (h *HandelmanGenerator) UnsatNonStrict() Clause {
	s, signs, _ := h.build(h.MaxDegForUnsat, false)
	var out Clause
	out = append(out, signs...)
	out = append(out, FindEqualityConstraints(s, poly.FromCoeff(coeff.FromInt(-1)))...)
	return out
}

// UnsatStrict returns the (singleton) list of clauses sufficient for
// LHS ⇒ ⊥ in the strict sense, at degree MaxDegForUnsat.
func (h *HandelmanGenerator) UnsatStrict() []Clause {
	s, signs, strictSum := h.build(h.MaxDegForUnsat, true)
	var out Clause
	out = append(out, signs...)
	out = append(out, constraint.GTCoeff(strictSum))
	out = append(out, FindEqualityConstraints(s, poly.FromCoeff(coeff.FromInt(0)))...)
	return []Clause{out}
}
