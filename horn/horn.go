// Package horn folds parsed Horn clauses (LHS DNF ⇒ RHS DNF, over a
// fixed set of program variables) into single-goal obligations ready
// for a witness generator.
package horn

import (
	"github.com/ChatterjeeGroup-ISTA/PolyHorn/constraint"
	"github.com/ChatterjeeGroup-ISTA/PolyHorn/dnf"
	"github.com/ChatterjeeGroup-ISTA/PolyHorn/variable"
)

// Obligation is one (conjunction-of-hypotheses ⇒ single-goal) pair a
// witness generator consumes directly.
type Obligation struct {
	LHS  []constraint.Poly
	RHS  constraint.Poly
	Vars []variable.Variable
}

// Registry accumulates Obligations in registration order — the order
// that later determines the order of DNFs in the emitted script.
type Registry struct {
	Obligations []Obligation
}

// AddPairedConstraint folds lhs ⇒ rhs into one Obligation per
// (lhs-clause, rhs-atom) combination.
//
// When rhs has more than one clause, only its first clause is kept as
// the actual goal; every other clause is negated and conjoined onto
// lhs, mirroring the Python original's add_paired_constraint: "lhs =
// lhs & -(DNF(rhs.literals[1:])); rhs = DNF([rhs.literals[0]])".
func (r *Registry) AddPairedConstraint(lhs, rhs dnf.DNF[constraint.Poly], programVars []variable.Variable) {
	if len(rhs.Clauses) > 1 {
		rest := dnf.DNF[constraint.Poly]{Clauses: rhs.Clauses[1:]}
		lhs = lhs.And(rest.Not())
		rhs = dnf.DNF[constraint.Poly]{Clauses: []dnf.Clause[constraint.Poly]{rhs.Clauses[0]}}
	}
	if len(rhs.Clauses) == 0 {
		return
	}
	goalClause := rhs.Clauses[0]
	for _, lhsClause := range lhs.Clauses {
		for _, goal := range goalClause {
			r.Obligations = append(r.Obligations, Obligation{
				LHS:  append([]constraint.Poly(nil), lhsClause...),
				RHS:  goal,
				Vars: append([]variable.Variable(nil), programVars...),
			})
		}
	}
}
