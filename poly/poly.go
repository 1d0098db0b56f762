// Package poly implements Polynomial, a sum of Monomials over program
// variables with CoeffExpr coefficients.
package poly

import (
	"sort"
	"strconv"
	"strings"

	"github.com/ChatterjeeGroup-ISTA/PolyHorn/coeff"
	"github.com/ChatterjeeGroup-ISTA/PolyHorn/variable"
)

// Monomial is a product of program variables raised to fixed degrees,
// scaled by a CoeffExpr. Vars and Degrees together form a dense
// exponent vector e over the variable universe Vars: Degrees[i] is the
// exponent of Vars[i], and may be 0. Within a canonical Polynomial
// every Monomial shares the same Vars slice (see Polynomial.Canon), so
// exponent vectors compare directly position by position.
type Monomial struct {
	Vars    []variable.Variable
	Degrees []int
	Coeff   coeff.Expr
}

func cloneVars(vs []variable.Variable) []variable.Variable {
	return append([]variable.Variable(nil), vs...)
}

func cloneDegrees(ds []int) []int {
	return append([]int(nil), ds...)
}

// NewMonomial builds a Monomial from a dense (vars, degrees) exponent
// vector, sorting entries into canonical variable order. Zero-degree
// entries are kept: a caller that already enumerates a fixed variable
// universe (the SOS/monoid enumeration in witness) depends on that
// universe surviving intact, not silently shrinking.
func NewMonomial(vars []variable.Variable, degrees []int, c coeff.Expr) Monomial {
	type vd struct {
		v variable.Variable
		d int
	}
	pairs := make([]vd, len(vars))
	for i, v := range vars {
		pairs[i] = vd{v, degrees[i]}
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].v.Less(pairs[j].v) })
	vs := make([]variable.Variable, len(pairs))
	ds := make([]int, len(pairs))
	for i, p := range pairs {
		vs[i] = p.v
		ds[i] = p.d
	}
	return Monomial{Vars: vs, Degrees: ds, Coeff: c.Canon()}
}

// monomialKey renders m's dense exponent vector as a comparable string,
// the key Polynomial.index maps to a Monomials slot.
func monomialKey(m Monomial) string {
	var sb strings.Builder
	for _, d := range m.Degrees {
		sb.WriteString(strconv.Itoa(d))
		sb.WriteByte(',')
	}
	return sb.String()
}

// sameShape reports whether two monomials carry the same exponent
// vector, ignoring Coeff. Both must already be expressed over the same
// dense variable universe (equal-length Degrees in the same variable
// order) — callers align via Canon/AlignVars first.
func sameShape(a, b Monomial) bool {
	for i := range a.Degrees {
		if a.Degrees[i] != b.Degrees[i] {
			return false
		}
	}
	return true
}

// lessShape orders two same-universe monomials by total degree |e|
// first, then lexicographically on the dense exponent vector e — the
// canonical monomial order every Polynomial sorts by.
func lessShape(a, b Monomial) bool {
	if da, db := a.Deg(), b.Deg(); da != db {
		return da < db
	}
	for i := range a.Degrees {
		if a.Degrees[i] != b.Degrees[i] {
			return a.Degrees[i] < b.Degrees[i]
		}
	}
	return false
}

func (m Monomial) mul(o Monomial) Monomial {
	merged := map[variable.Variable]int{}
	for i, v := range m.Vars {
		merged[v] += m.Degrees[i]
	}
	for i, v := range o.Vars {
		merged[v] += o.Degrees[i]
	}
	vars := make([]variable.Variable, 0, len(merged))
	degs := make([]int, 0, len(merged))
	for v, d := range merged {
		vars = append(vars, v)
		degs = append(degs, d)
	}
	return NewMonomial(vars, degs, m.Coeff.Mul(o.Coeff))
}

func (m Monomial) neg() Monomial {
	return Monomial{Vars: cloneVars(m.Vars), Degrees: cloneDegrees(m.Degrees), Coeff: m.Coeff.Neg()}
}

// tryReexpress reexpresses m's exponent vector over universe, failing
// if m carries a nonzero-degree variable absent from universe.
func (m Monomial) tryReexpress(universe []variable.Variable) (Monomial, bool) {
	pos := make(map[variable.Variable]int, len(universe))
	for i, v := range universe {
		pos[v] = i
	}
	degs := make([]int, len(universe))
	for i, v := range m.Vars {
		d := m.Degrees[i]
		if d == 0 {
			continue
		}
		idx, ok := pos[v]
		if !ok {
			return Monomial{}, false
		}
		degs[idx] = d
	}
	return Monomial{Vars: universe, Degrees: degs, Coeff: m.Coeff}, true
}

// reexpress is tryReexpress for the common case where universe is
// already known to be a superset of m.Vars (e.g. a union computed by
// the caller); it panics on the invariant violation that would mean
// the union was computed wrong.
func (m Monomial) reexpress(universe []variable.Variable) Monomial {
	out, ok := m.tryReexpress(universe)
	if !ok {
		panic("poly: reexpress onto a universe missing one of the monomial's variables")
	}
	return out
}

// Deg returns the total degree of m: the sum of its exponents.
func (m Monomial) Deg() int {
	d := 0
	for _, e := range m.Degrees {
		d += e
	}
	return d
}

// IsMono reports whether m is linear in the program variables: every
// exponent is 0 or 1 and at most one variable has exponent 1 — the
// same shape the Python original calls "is_mono" (a single variable
// to the first power, or a bare constant).
func (m Monomial) IsMono() bool {
	nonzero := 0
	for _, d := range m.Degrees {
		if d != 0 && d != 1 {
			return false
		}
		nonzero += d
	}
	return nonzero <= 1
}

// Preorder emits m in SMT-LIB2 prefix form: "(* 1 <coeff> <var>...)"
// with each variable repeated per its degree (zero-degree variables
// contribute nothing), matching Monomial.convert_to_preorder in the
// Python original.
func (m Monomial) Preorder() string {
	var sb strings.Builder
	sb.WriteString("(* 1 ")
	sb.WriteString(m.Coeff.Preorder())
	for i, v := range m.Vars {
		for k := 0; k < m.Degrees[i]; k++ {
			sb.WriteString(" ")
			sb.WriteString(v.Name)
		}
	}
	sb.WriteString(")")
	return sb.String()
}

// unionVars merges two canonical (sorted, duplicate-free) variable
// lists into one, preserving canonical order.
func unionVars(a, b []variable.Variable) []variable.Variable {
	out := make([]variable.Variable, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].Equal(b[j]):
			out = append(out, a[i])
			i++
			j++
		case a[i].Less(b[j]):
			out = append(out, a[i])
			i++
		default:
			out = append(out, b[j])
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}

// Polynomial is a canonical sum of Monomials sharing a common, sorted
// variable universe Vars: like shapes merged by summing their
// coefficients, zero-coefficient monomials dropped, ordered by total
// degree then lexicographically on the exponent vector. index maps a
// monomial's exponent-vector key to its slot in Monomials for O(1)
// lookup by MonomialByDegree. Both Vars and index are maintained by
// Canon; a Polynomial built directly as a struct literal (as witness
// does when wrapping a single fresh Monomial) is a transient,
// pre-canonical value — the first Add/Mul/Canon call establishes them.
type Polynomial struct {
	Vars      []variable.Variable
	Monomials []Monomial
	index     map[string]int
}

// Zero is the empty Polynomial.
func Zero() Polynomial { return Polynomial{} }

// FromCoeff lifts a bare CoeffExpr to a degree-0 Polynomial.
func FromCoeff(c coeff.Expr) Polynomial {
	if c.IsZero() {
		return Polynomial{}
	}
	return Polynomial{Monomials: []Monomial{NewMonomial(nil, nil, c)}}
}

// FromVariable builds the Polynomial "1*x" for a single program variable.
func FromVariable(x variable.Variable) Polynomial {
	return Polynomial{Monomials: []Monomial{
		NewMonomial([]variable.Variable{x}, []int{1}, coeff.FromInt(1)),
	}}
}

// Canon returns the canonical form of p: every monomial reexpressed
// over the union of all variables appearing anywhere in p (so exponent
// vectors are directly comparable), sorted, like shapes merged, and
// zero-coefficient monomials dropped.
func (p Polynomial) Canon() Polynomial {
	if len(p.Monomials) == 0 {
		return Polynomial{}
	}
	universe := p.Monomials[0].Vars
	for _, m := range p.Monomials[1:] {
		universe = unionVars(universe, m.Vars)
	}
	ms := make([]Monomial, len(p.Monomials))
	for i, m := range p.Monomials {
		ms[i] = m.reexpress(universe)
	}
	sort.SliceStable(ms, func(i, j int) bool { return lessShape(ms[i], ms[j]) })

	out := make([]Monomial, 0, len(ms))
	index := make(map[string]int, len(ms))
	i := 0
	for i < len(ms) {
		j := i + 1
		sum := ms[i].Coeff
		for j < len(ms) && sameShape(ms[i], ms[j]) {
			sum = sum.Add(ms[j].Coeff)
			j++
		}
		if !sum.IsZero() {
			mono := Monomial{Vars: universe, Degrees: ms[i].Degrees, Coeff: sum}
			index[monomialKey(mono)] = len(out)
			out = append(out, mono)
		}
		i = j
	}
	if len(out) == 0 {
		return Polynomial{}
	}
	return Polynomial{Vars: universe, Monomials: out, index: index}
}

// AlignVars returns a and b canonicalized over the union of their
// variable universes, so monomial supports from each compare equal
// positionally whenever they denote the same shape — needed before
// matching coefficients of two polynomials that may not mention the
// same variables.
func AlignVars(a, b Polynomial) (Polynomial, Polynomial) {
	ac, bc := a.Canon(), b.Canon()
	universe := unionVars(ac.Vars, bc.Vars)
	return ac.reexpressAll(universe), bc.reexpressAll(universe)
}

func (p Polynomial) reexpressAll(universe []variable.Variable) Polynomial {
	out := make([]Monomial, len(p.Monomials))
	for i, m := range p.Monomials {
		out[i] = m.reexpress(universe)
	}
	return Polynomial{Monomials: out}.Canon()
}

// Add returns p + o, canonicalized.
func (p Polynomial) Add(o Polynomial) Polynomial {
	ms := make([]Monomial, 0, len(p.Monomials)+len(o.Monomials))
	ms = append(ms, p.Monomials...)
	ms = append(ms, o.Monomials...)
	return Polynomial{Monomials: ms}.Canon()
}

// Sub returns p - o, canonicalized.
func (p Polynomial) Sub(o Polynomial) Polynomial {
	return p.Add(o.Neg())
}

// Neg returns -p.
func (p Polynomial) Neg() Polynomial {
	out := make([]Monomial, len(p.Monomials))
	for i, m := range p.Monomials {
		out[i] = m.neg()
	}
	return Polynomial{Monomials: out}
}

// Mul returns p * o, canonicalized.
func (p Polynomial) Mul(o Polynomial) Polynomial {
	pc, oc := p.Canon(), o.Canon()
	if len(pc.Monomials) == 0 || len(oc.Monomials) == 0 {
		return Polynomial{}
	}
	out := make([]Monomial, 0, len(pc.Monomials)*len(oc.Monomials))
	for _, a := range pc.Monomials {
		for _, b := range oc.Monomials {
			out = append(out, a.mul(b))
		}
	}
	return Polynomial{Monomials: out}.Canon()
}

// ScaleCoeff multiplies every monomial's coefficient by c.
func (p Polynomial) ScaleCoeff(c coeff.Expr) Polynomial {
	out := make([]Monomial, len(p.Monomials))
	for i, m := range p.Monomials {
		out[i] = Monomial{Vars: m.Vars, Degrees: m.Degrees, Coeff: m.Coeff.Mul(c)}
	}
	return Polynomial{Monomials: out}.Canon()
}

// Equal reports whether p and o denote the same Polynomial, regardless
// of which one happens to carry an incidental zero-degree variable the
// other lacks.
func (p Polynomial) Equal(o Polynomial) bool {
	pa, oa := AlignVars(p, o)
	if len(pa.Monomials) != len(oa.Monomials) {
		return false
	}
	for i := range pa.Monomials {
		if !sameShape(pa.Monomials[i], oa.Monomials[i]) {
			return false
		}
		if !pa.Monomials[i].Coeff.Equal(oa.Monomials[i].Coeff) {
			return false
		}
	}
	return true
}

// IsZero reports whether p is the canonical zero polynomial.
func (p Polynomial) IsZero() bool {
	return len(p.Canon().Monomials) == 0
}

// IsLinear reports whether every monomial of p is linear (degree ≤ 1
// in a single variable, or a bare constant).
func (p Polynomial) IsLinear() bool {
	for _, m := range p.Monomials {
		if !m.IsMono() {
			return false
		}
	}
	return true
}

// Deg returns the maximum total degree among p's monomials.
func (p Polynomial) Deg() int {
	d := 0
	for _, m := range p.Monomials {
		if md := m.Deg(); md > d {
			d = md
		}
	}
	return d
}

// AddProgramVariables extends p's variable universe with vs at degree
// 0 — used when lifting a lower-arity polynomial into a larger
// variable space before combining it with others, mirroring
// Polynomial.add_variables.
func (p Polynomial) AddProgramVariables(vs []variable.Variable) Polynomial {
	c := p.Canon()
	universe := c.Vars
	for _, v := range vs {
		universe = unionVars(universe, []variable.Variable{v})
	}
	out := make([]Monomial, len(c.Monomials))
	for i, m := range c.Monomials {
		out[i] = m.reexpress(universe)
	}
	return Polynomial{Monomials: out}.Canon()
}

// Variables returns p's variable universe V, the fixed list every
// monomial's dense exponent vector is indexed against.
func (p Polynomial) Variables() []variable.Variable {
	return cloneVars(p.Canon().Vars)
}

// Shapes returns the distinct monomial supports (vars, degrees) of p,
// each with Coeff pinned to 1, sorted canonically — the set a witness
// generator's coefficient-matching scaffolding iterates over.
func (p Polynomial) Shapes() []Monomial {
	c := p.Canon()
	out := make([]Monomial, len(c.Monomials))
	for i, m := range c.Monomials {
		out[i] = Monomial{Vars: m.Vars, Degrees: m.Degrees, Coeff: coeff.FromInt(1)}
	}
	return out
}

// MonomialByDegree returns the monomial matching the given (vars, degrees)
// support within p, or the zero monomial over that support if absent.
func (p Polynomial) MonomialByDegree(vars []variable.Variable, degrees []int) Monomial {
	c := p.Canon()
	target := NewMonomial(vars, degrees, coeff.Zero())
	if aligned, ok := target.tryReexpress(c.Vars); ok {
		if idx, found := c.index[monomialKey(aligned)]; found {
			return c.Monomials[idx]
		}
	}
	return target
}

// Preorder emits p in SMT-LIB2 prefix form: "0" for the zero
// polynomial, the bare monomial for a singleton, "(+ 0 ...)" otherwise.
func (p Polynomial) Preorder() string {
	c := p.Canon()
	if len(c.Monomials) == 0 {
		return "0"
	}
	if len(c.Monomials) == 1 {
		return c.Monomials[0].Preorder()
	}
	var sb strings.Builder
	sb.WriteString("(+ 0 ")
	for _, m := range c.Monomials {
		sb.WriteString(m.Preorder())
		sb.WriteString(" ")
	}
	sb.WriteString(")")
	return sb.String()
}
