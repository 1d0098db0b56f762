// Package witness implements the three Positivstellensatz-based
// witness generators (Farkas, Handelman, Putinar) and the automatic
// theorem selector that chooses among them.
package witness

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ChatterjeeGroup-ISTA/PolyHorn/coeff"
	"github.com/ChatterjeeGroup-ISTA/PolyHorn/constraint"
	"github.com/ChatterjeeGroup-ISTA/PolyHorn/dnf"
	"github.com/ChatterjeeGroup-ISTA/PolyHorn/poly"
	"github.com/ChatterjeeGroup-ISTA/PolyHorn/variable"
)

// Clause is one conjunction of CoeffExpr-constraints, as produced by a
// single call to a witness generator — the shape DNF.Clause[Coeff] needs.
type Clause = dnf.Clause[constraint.Coeff]

func shapeKey(m poly.Monomial) string {
	var sb strings.Builder
	for i, v := range m.Vars {
		sb.WriteString(v.String())
		sb.WriteString(":")
		sb.WriteString(strconv.Itoa(m.Degrees[i]))
		sb.WriteString(",")
	}
	return sb.String()
}

// FindEqualityConstraints matches coefficients of L and R degree by
// degree: for every monomial support e appearing in either polynomial,
// emit "coeffL[e] - coeffR[e] = 0". This is the scaffolding every
// witness generator funnels its final system through.
func FindEqualityConstraints(L, R poly.Polynomial) []constraint.Coeff {
	L, R = poly.AlignVars(L, R)
	seen := map[string]poly.Monomial{}
	var order []string
	collect := func(m poly.Monomial) {
		k := shapeKey(m)
		if _, ok := seen[k]; !ok {
			seen[k] = m
			order = append(order, k)
		}
	}
	for _, m := range L.Shapes() {
		collect(m)
	}
	for _, m := range R.Shapes() {
		collect(m)
	}
	sort.Strings(order)

	out := make([]constraint.Coeff, 0, len(order))
	for _, k := range order {
		shape := seen[k]
		cl := L.MonomialByDegree(shape.Vars, shape.Degrees).Coeff
		cr := R.MonomialByDegree(shape.Vars, shape.Degrees).Coeff
		out = append(out, constraint.EQCoeff(cl.Sub(cr)))
	}
	return out
}

// Mode selects which system a generator builds: the direct SAT
// witness, or one of the two refutation (UNSAT) witnesses.
type Mode int

const (
	SAT Mode = iota
	UnsatNonStrict
	UnsatStrict
)

// listsOfFixedLen enumerates every length-n vector of nonnegative
// integers summing to at most D, in nested-lexicographic order —
// Handelman's monoid-exponent enumeration, also used by Putinar to
// enumerate SOS template monomials.
func listsOfFixedLen(n, D int) [][]int {
	if n == 0 {
		return [][]int{{}}
	}
	var out [][]int
	var rec func(prefix []int, remaining int)
	rec = func(prefix []int, remaining int) {
		if len(prefix) == n {
			out = append(out, append([]int(nil), prefix...))
			return
		}
		for d := 0; d <= remaining; d++ {
			rec(append(prefix, d), remaining-d)
		}
	}
	rec(make([]int, 0, n), D)
	return out
}

// monomialsUpToDegree returns every monomial over vars with total
// degree ≤ D, used by Putinar to pick the SOS basis b.
func monomialsUpToDegree(vars []variable.Variable, D int) [][]int {
	return listsOfFixedLen(len(vars), D)
}

func polyFromMonoidProduct(gs []constraint.Poly, exps []int) poly.Polynomial {
	result := poly.FromCoeff(coeff.FromInt(1))
	for i, e := range exps {
		for k := 0; k < e; k++ {
			result = result.Mul(gs[i].Polynomial)
		}
	}
	return result
}

func monoidIsStrict(gs []constraint.Poly, exps []int) bool {
	for i, e := range exps {
		if e > 0 && !gs[i].IsStrict() {
			return false
		}
	}
	return true
}

// fmtExps renders an exponent vector for fresh-auxiliary naming hints.
func fmtExps(exps []int) string {
	var sb strings.Builder
	for _, e := range exps {
		fmt.Fprintf(&sb, "%d", e)
	}
	return sb.String()
}
