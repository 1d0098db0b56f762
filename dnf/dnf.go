// Package dnf implements disjunctive normal form over an arbitrary
// negatable literal type, closed under ∧, ∨, and ¬.
package dnf

import "strings"

// Literal is anything a DNF can hold as an atom: it must know how to
// negate itself and print itself in SMT-LIB2 prefix form. Both
// constraint.Poly and constraint.Coeff satisfy this.
type Literal[T any] interface {
	Neg() T
	Preorder() string
}

// Clause is a conjunction of literals.
type Clause[T Literal[T]] []T

// DNF is a disjunction of Clauses — the sole boolean combinator used
// by every downstream consumer of this package.
type DNF[T Literal[T]] struct {
	Clauses []Clause[T]
}

// False is the DNF with no disjuncts: unsatisfiable by construction,
// the identity element for Or.
func False[T Literal[T]]() DNF[T] {
	return DNF[T]{}
}

// True is the DNF with a single empty clause: trivially satisfied,
// the identity element for And.
func True[T Literal[T]]() DNF[T] {
	return DNF[T]{Clauses: []Clause[T]{{}}}
}

// Atom lifts a single literal to a one-clause, one-literal DNF.
func Atom[T Literal[T]](lit T) DNF[T] {
	return DNF[T]{Clauses: []Clause[T]{{lit}}}
}

// Or returns the union of d and o's clauses.
func (d DNF[T]) Or(o DNF[T]) DNF[T] {
	out := make([]Clause[T], 0, len(d.Clauses)+len(o.Clauses))
	out = append(out, d.Clauses...)
	out = append(out, o.Clauses...)
	return DNF[T]{Clauses: out}
}

// And distributes: every clause of d is concatenated with every
// clause of o. And with False (no clauses) is therefore False, and
// And with True (one empty clause) leaves the other operand unchanged.
func (d DNF[T]) And(o DNF[T]) DNF[T] {
	out := make([]Clause[T], 0, len(d.Clauses)*len(o.Clauses))
	for _, a := range d.Clauses {
		for _, b := range o.Clauses {
			merged := make(Clause[T], 0, len(a)+len(b))
			merged = append(merged, a...)
			merged = append(merged, b...)
			out = append(out, merged)
		}
	}
	return DNF[T]{Clauses: out}
}

// Not applies De Morgan's laws: ¬(c1 ∨ c2 ∨ ...) = ¬c1 ∧ ¬c2 ∧ ...,
// and within each clause ¬(l1 ∧ l2 ∧ ...) = ¬l1 ∨ ¬l2 ∨ ..., so every
// negated clause becomes a one-literal-per-clause DNF that is then
// And'd across the whole disjunction.
func (d DNF[T]) Not() DNF[T] {
	result := True[T]()
	for _, clause := range d.Clauses {
		negClause := False[T]()
		for _, lit := range clause {
			negClause = negClause.Or(Atom[T](lit.Neg()))
		}
		result = result.And(negClause)
	}
	return result
}

// IsFalse reports whether d has no clauses.
func (d DNF[T]) IsFalse() bool { return len(d.Clauses) == 0 }

// IsTrue reports whether d is exactly the single-empty-clause identity.
func (d DNF[T]) IsTrue() bool { return len(d.Clauses) == 1 && len(d.Clauses[0]) == 0 }

// Preorder emits d in SMT-LIB2 prefix form: "(or (and l1 l2 ...) ...)".
func (d DNF[T]) Preorder() string {
	var sb strings.Builder
	sb.WriteString("(or ")
	for _, clause := range d.Clauses {
		sb.WriteString("(and ")
		for _, lit := range clause {
			sb.WriteString(lit.Preorder())
			sb.WriteString(" ")
		}
		sb.WriteString(") ")
	}
	sb.WriteString(")")
	return sb.String()
}
