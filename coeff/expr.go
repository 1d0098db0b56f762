// Package coeff implements CoeffExpr, the ring of coefficient
// expressions: sums of products of template/auxiliary variables with a
// rational constant.
package coeff

import (
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/ChatterjeeGroup-ISTA/PolyHorn/variable"
)

// Term is a single summand of an Expr: a rational constant multiplied
// by a multiset of variables (a sorted slice, duplicates meaning a
// higher power — same shape as original_source's Element.variables).
type Term struct {
	Q    *big.Rat
	Vars []variable.Variable
}

// NewTerm builds a Term, sorting Vars into canonical (multiset) order.
// It stores a copy of q, so the caller may reuse q afterwards.
func NewTerm(q *big.Rat, vars []variable.Variable) Term {
	vs := append([]variable.Variable(nil), vars...)
	sort.Slice(vs, func(i, j int) bool { return vs[i].Less(vs[j]) })
	return Term{Q: new(big.Rat).Set(q), Vars: vs}
}

// sameMultiset reports whether two terms carry the same variable
// multiset, ignoring Q — the comparison used to merge like terms
// during canonicalization.
func sameMultiset(a, b Term) bool {
	if len(a.Vars) != len(b.Vars) {
		return false
	}
	for i := range a.Vars {
		if !a.Vars[i].Equal(b.Vars[i]) {
			return false
		}
	}
	return true
}

// lessMultiset orders two terms by (size of multiset, lex on the
// sorted multiset, then Q), giving Expr's canonical form a stable sort.
func lessMultiset(a, b Term) bool {
	if len(a.Vars) != len(b.Vars) {
		return len(a.Vars) < len(b.Vars)
	}
	for i := range a.Vars {
		if !a.Vars[i].Equal(b.Vars[i]) {
			return a.Vars[i].Less(b.Vars[i])
		}
	}
	return a.Q.Cmp(b.Q) < 0
}

func (t Term) mul(o Term) Term {
	q := new(big.Rat).Mul(t.Q, o.Q)
	vars := make([]variable.Variable, 0, len(t.Vars)+len(o.Vars))
	vars = append(vars, t.Vars...)
	vars = append(vars, o.Vars...)
	return NewTerm(q, vars)
}

func (t Term) neg() Term {
	return Term{Q: new(big.Rat).Neg(t.Q), Vars: t.Vars}
}

// Expr is a CoeffExpr: the sum of its Terms. Every Expr returned by a
// public operation in this package is canonical: terms sorted per
// lessMultiset, no two terms sharing a multiset, zero terms dropped.
type Expr []Term

// Zero is the canonical empty sum.
func Zero() Expr { return Expr{} }

// FromRat builds the constant CoeffExpr q.
func FromRat(q *big.Rat) Expr {
	if q.Sign() == 0 {
		return Expr{}
	}
	return Expr{NewTerm(q, nil)}
}

// FromInt builds the constant CoeffExpr n.
func FromInt(n int64) Expr {
	return FromRat(big.NewRat(n, 1))
}

// FromVariable builds the CoeffExpr "1*v" — a single variable with
// unit coefficient, used by the witness generators to mint a fresh
// auxiliary and immediately wrap it as a coefficient.
func FromVariable(v variable.Variable) Expr {
	return Expr{NewTerm(big.NewRat(1, 1), []variable.Variable{v})}
}

// Canon returns the canonical form of e: terms sorted, like multisets
// merged by summing Q, zero terms dropped. Canon is idempotent.
func (e Expr) Canon() Expr {
	terms := append([]Term(nil), e...)
	sort.SliceStable(terms, func(i, j int) bool { return lessMultiset(terms[i], terms[j]) })

	out := make([]Term, 0, len(terms))
	i := 0
	for i < len(terms) {
		j := i + 1
		sum := new(big.Rat).Set(terms[i].Q)
		for j < len(terms) && sameMultiset(terms[i], terms[j]) {
			sum.Add(sum, terms[j].Q)
			j++
		}
		if sum.Sign() != 0 {
			out = append(out, Term{Q: sum, Vars: terms[i].Vars})
		}
		i = j
	}
	return Expr(out)
}

// Add returns e + o, canonicalized.
func (e Expr) Add(o Expr) Expr {
	sum := make(Expr, 0, len(e)+len(o))
	sum = append(sum, e...)
	sum = append(sum, o...)
	return sum.Canon()
}

// Sub returns e - o, canonicalized.
func (e Expr) Sub(o Expr) Expr {
	return e.Add(o.Neg())
}

// Neg returns -e.
func (e Expr) Neg() Expr {
	out := make(Expr, len(e))
	for i, t := range e {
		out[i] = t.neg()
	}
	return out
}

// Mul returns e * o (outer product of terms), canonicalized.
func (e Expr) Mul(o Expr) Expr {
	if len(e) == 0 || len(o) == 0 {
		return Expr{}
	}
	out := make(Expr, 0, len(e)*len(o))
	for _, a := range e {
		for _, b := range o {
			out = append(out, a.mul(b))
		}
	}
	return out.Canon()
}

// IsZero reports whether e is the canonical zero value.
func (e Expr) IsZero() bool {
	return len(e.Canon()) == 0
}

// NumTerms reports the number of terms after canonicalization.
func (e Expr) NumTerms() int {
	return len(e.Canon())
}

// Equal reports whether e and o denote the same CoeffExpr (compares
// canonical forms term-for-term, including coefficients).
func (e Expr) Equal(o Expr) bool {
	ec, oc := e.Canon(), o.Canon()
	if len(ec) != len(oc) {
		return false
	}
	for i := range ec {
		if !sameMultiset(ec[i], oc[i]) || ec[i].Q.Cmp(oc[i].Q) != 0 {
			return false
		}
	}
	return true
}

func ratPreorder(q *big.Rat) string {
	if q.Sign() == 0 {
		return "0"
	}
	num := new(big.Int).Abs(q.Num())
	den := q.Denom()
	var body string
	if den.Cmp(big.NewInt(1)) == 0 {
		body = num.String()
	} else {
		body = fmt.Sprintf("(/ %s %s)", num.String(), den.String())
	}
	if q.Sign() < 0 {
		return fmt.Sprintf("(- %s)", body)
	}
	return body
}

func termPreorder(t Term) string {
	if t.Q.Sign() == 0 {
		return "0"
	}
	if len(t.Vars) == 0 {
		return ratPreorder(t.Q)
	}
	var sb strings.Builder
	sb.WriteString("(* 1 ")
	sb.WriteString(ratPreorder(t.Q))
	for _, v := range t.Vars {
		sb.WriteString(" ")
		sb.WriteString(v.Name)
	}
	sb.WriteString(")")
	return sb.String()
}

// Preorder emits e in SMT-LIB2 prefix form: "0" for the empty sum, the
// bare term printed inline for a singleton, and "(+ 0 ...)" otherwise
// to keep associativity explicit.
func (e Expr) Preorder() string {
	c := e.Canon()
	if len(c) == 0 {
		return "0"
	}
	if len(c) == 1 {
		return termPreorder(c[0])
	}
	var sb strings.Builder
	sb.WriteString("(+ 0")
	for _, t := range c {
		sb.WriteString(" ")
		sb.WriteString(termPreorder(t))
	}
	sb.WriteString(")")
	return sb.String()
}

// Variables returns the set of variables appearing anywhere in e,
// deduplicated, in canonical order.
func (e Expr) Variables() []variable.Variable {
	seen := map[variable.Variable]struct{}{}
	var out []variable.Variable
	for _, t := range e {
		for _, v := range t.Vars {
			if _, ok := seen[v]; !ok {
				seen[v] = struct{}{}
				out = append(out, v)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// SingleLinearVariable returns the variable if e is, after
// canonicalization, exactly "q*x" for a single variable x with
// exponent 1 (i.e. one term whose multiset is exactly [x]), and ok.
func (e Expr) SingleLinearVariable() (variable.Variable, *big.Rat, bool) {
	c := e.Canon()
	if len(c) != 1 || len(c[0].Vars) != 1 {
		return variable.Variable{}, nil, false
	}
	return c[0].Vars[0], c[0].Q, true
}
