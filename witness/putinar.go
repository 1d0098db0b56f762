package witness

import (
	"strconv"

	"github.com/ChatterjeeGroup-ISTA/PolyHorn/coeff"
	"github.com/ChatterjeeGroup-ISTA/PolyHorn/constraint"
	"github.com/ChatterjeeGroup-ISTA/PolyHorn/poly"
	"github.com/ChatterjeeGroup-ISTA/PolyHorn/variable"
)

// PutinarGenerator implements the general polynomial-hypotheses /
// polynomial-goal certificate: sum-of-squares
// templates multiplying each hypothesis, matched against the goal by
// coefficient, plus a separate strict-infeasibility construction built
// from extended program variables and general (not-necessarily-SOS)
// templates.
type PutinarGenerator struct {
	Table                *variable.Table
	Vars                 []variable.Variable
	LHS                  []constraint.Poly
	RHS                  constraint.Poly
	MaxDegForSat         int
	MaxDegForUnsat       int
	MaxDegForUnsatStrict int
	DegreeForNewVar      int
}

func addExps(a, b []int) []int {
	out := make([]int, len(a))
	for i := range a {
		out[i] = a[i] + b[i]
	}
	return out
}

// sosTemplate builds a fresh sum-of-squares template of degree ≤ D
// over vars: a lower-triangular matrix L of fresh auxiliaries with
// nonnegative diagonal, Q = L·Lᵀ, h = bᵀ·Q·b where b ranges over
// monomials of degree ≤ D/2. Every resulting monomial's coefficient is
// then replaced by a fresh auxiliary tⱼ, with an equality constraint
// tying tⱼ to the actual SOS coefficient expression.
func (p *PutinarGenerator) sosTemplate(vars []variable.Variable, D int) (poly.Polynomial, []constraint.Coeff) {
	basis := monomialsUpToDegree(vars, D/2)
	n := len(basis)
	var signs []constraint.Coeff
	L := make([][]coeff.Expr, n)
	for i := 0; i < n; i++ {
		L[i] = make([]coeff.Expr, i+1)
		for j := 0; j <= i; j++ {
			v := p.Table.Fresh(variable.AuxPutinarSOS, "l"+strconv.Itoa(i+1)+strconv.Itoa(j+1))
			L[i][j] = coeff.FromVariable(v)
			if i == j {
				signs = append(signs, constraint.GECoeff(L[i][j]))
			}
		}
	}

	raw := poly.Zero()
	for i := 0; i < n; i++ {
		for k := 0; k < n; k++ {
			bound := i
			if k < bound {
				bound = k
			}
			qik := coeff.Zero()
			for j := 0; j <= bound; j++ {
				qik = qik.Add(L[i][j].Mul(L[k][j]))
			}
			mono := poly.NewMonomial(vars, addExps(basis[i], basis[k]), qik)
			raw = raw.Add(poly.Polynomial{Monomials: []poly.Monomial{mono}})
		}
	}

	h := poly.Zero()
	var eqs []constraint.Coeff
	for idx, m := range raw.Canon().Monomials {
		tv := p.Table.Fresh(variable.AuxPutinarSOS, "t"+strconv.Itoa(idx+1))
		t := coeff.FromVariable(tv)
		eqs = append(eqs, constraint.EQCoeff(t.Sub(m.Coeff)))
		h = h.Add(poly.Polynomial{Monomials: []poly.Monomial{poly.NewMonomial(m.Vars, m.Degrees, t)}})
	}
	return h, append(signs, eqs...)
}

// generalTemplate builds a dense polynomial template over vars up to
// degree D where every monomial's coefficient is directly a fresh,
// unconstrained auxiliary — the ηᵢ of the strict-refutation system,
// which unlike an SOS template need not be nonnegative.
func (p *PutinarGenerator) generalTemplate(vars []variable.Variable, D int, hint string) poly.Polynomial {
	result := poly.Zero()
	for idx, e := range monomialsUpToDegree(vars, D) {
		v := p.Table.Fresh(variable.AuxPutinarEta, hint+strconv.Itoa(idx+1))
		result = result.Add(poly.Polynomial{Monomials: []poly.Monomial{poly.NewMonomial(vars, e, coeff.FromVariable(v))}})
	}
	return result
}

func (p *PutinarGenerator) satScaffold(D int, strict bool) (s poly.Polynomial, signs []constraint.Coeff, strictSum coeff.Expr) {
	h0, c0 := p.sosTemplate(p.Vars, D)
	s = h0
	signs = append(signs, c0...)
	strictSum = coeff.Zero()
	if strict {
		y0v := p.Table.Fresh(variable.AuxPutinarEta, "y0")
		y0 := coeff.FromVariable(y0v)
		s = s.Add(poly.FromCoeff(y0))
		signs = append(signs, constraint.GECoeff(y0))
		strictSum = strictSum.Add(y0)
	}
	for i, g := range p.LHS {
		hi, ci := p.sosTemplate(p.Vars, D)
		if strict && g.IsStrict() {
			y0iv := p.Table.Fresh(variable.AuxPutinarEta, "y0_"+strconv.Itoa(i+1))
			y0i := coeff.FromVariable(y0iv)
			hi = hi.Add(poly.FromCoeff(y0i))
			ci = append(ci, constraint.GECoeff(y0i))
			strictSum = strictSum.Add(y0i)
		}
		signs = append(signs, ci...)
		s = s.Add(hi.Mul(g.Polynomial))
	}
	return s, signs, strictSum
}

// SAT returns a clause sufficient for LHS ⇒ RHS.
func (p *PutinarGenerator) SAT() Clause {
	s, signs, strictSum := p.satScaffold(p.MaxDegForSat, p.RHS.IsStrict())
	var out Clause
	out = append(out, signs...)
	if p.RHS.IsStrict() {
		out = append(out, constraint.GTCoeff(strictSum))
	}
	out = append(out, FindEqualityConstraints(s, p.RHS.Polynomial)...)
	return out
}

// UnsatNonStrict returns a clause sufficient for LHS ⇒ ⊥ (nonstrict).
func (p *PutinarGenerator) UnsatNonStrict() Clause {
	s, signs, _ := p.satScaffold(p.MaxDegForUnsat, false)
	var out Clause
	out = append(out, signs...)
	out = append(out, FindEqualityConstraints(s, poly.FromCoeff(coeff.FromInt(-1)))...)
	return out
}

// UnsatStrict returns one clause per strict hypothesis gⱼ: extended
// program variables w = (w₁,…,wₘ), general templates ηᵢ(V,w) up to
// degree MaxDegForUnsatStrict, and the equality system matching
// Σᵢ ηᵢ·(gᵢ − wᵢ²) against wⱼ^{2k} where k = DegreeForNewVar.
func (p *PutinarGenerator) UnsatStrict() []Clause {
	m := len(p.LHS)
	var out []Clause
	for j, gj := range p.LHS {
		if !gj.IsStrict() {
			continue
		}
		w := make([]variable.Variable, m)
		for i := 0; i < m; i++ {
			w[i] = p.Table.Fresh(variable.AuxStrictWitness, "w"+strconv.Itoa(i+1))
		}
		extended := append(append([]variable.Variable(nil), p.Vars...), w...)

		sum := poly.Zero()
		for i, gi := range p.LHS {
			eta := p.generalTemplate(extended, p.MaxDegForUnsatStrict, "eta"+strconv.Itoa(i+1)+"_")
			wi := poly.FromVariable(w[i])
			term := gi.Polynomial.AddProgramVariables(w).Sub(wi.Mul(wi))
			sum = sum.Add(eta.Mul(term))
		}

		target := poly.FromVariable(w[j])
		for pow := 1; pow < 2*p.DegreeForNewVar; pow++ {
			target = target.Mul(poly.FromVariable(w[j]))
		}

		out = append(out, Clause(FindEqualityConstraints(sum, target)))
	}
	return out
}
