package model

import (
	"context"
	"math/big"
	"strings"

	"github.com/bits-and-blooms/bitset"

	"github.com/ChatterjeeGroup-ISTA/PolyHorn/coeff"
	"github.com/ChatterjeeGroup-ISTA/PolyHorn/config"
	"github.com/ChatterjeeGroup-ISTA/PolyHorn/constraint"
	"github.com/ChatterjeeGroup-ISTA/PolyHorn/dnf"
	"github.com/ChatterjeeGroup-ISTA/PolyHorn/internal/log"
	"github.com/ChatterjeeGroup-ISTA/PolyHorn/smt"
	"github.com/ChatterjeeGroup-ISTA/PolyHorn/solverdriver"
	"github.com/ChatterjeeGroup-ISTA/PolyHorn/variable"
)

// findEqualityConstraint returns the first variable-equals-constant
// Coeff constraint found anywhere in cs, mirroring
// PositiveModel.get_equality_constraint's nested scan.
func findEqualityConstraint(cs []dnf.DNF[constraint.Coeff]) (constraint.Coeff, bool) {
	for _, d := range cs {
		for _, clause := range d.Clauses {
			for _, c := range clause {
				if c.IsVariableEquality() {
					return c, true
				}
			}
		}
	}
	return constraint.Coeff{}, false
}

// substituteVariable removes v from every term's multiset across cs,
// scaling the term by amount once per occurrence of v —
// remove_equality_constraints's "element.variables.remove(variable);
// element.constant = element.constant * amount" applied to every
// element of every constraint's coefficient expression.
func substituteVariable(cs []dnf.DNF[constraint.Coeff], v variable.Variable, amount coeff.Expr) []dnf.DNF[constraint.Coeff] {
	out := make([]dnf.DNF[constraint.Coeff], len(cs))
	for i, d := range cs {
		newClauses := make([]dnf.Clause[constraint.Coeff], len(d.Clauses))
		for j, clause := range d.Clauses {
			newClause := make(dnf.Clause[constraint.Coeff], len(clause))
			for k, c := range clause {
				newClause[k] = constraint.Coeff{Expr: substituteExpr(c.Expr, v, amount), Sign: c.Sign}
			}
			newClauses[j] = newClause
		}
		out[i] = dnf.DNF[constraint.Coeff]{Clauses: newClauses}
	}
	return out
}

// substituteExpr rewrites every term containing v: every occurrence of
// v is dropped from the term's variable multiset and the term is
// multiplied by amount once per dropped occurrence (amount is a
// coeff.Expr, since the substituted value can itself carry
// template-variable symbols).
func substituteExpr(e coeff.Expr, v variable.Variable, amount coeff.Expr) coeff.Expr {
	result := coeff.Zero()
	for _, term := range e {
		remaining := term.Vars[:0:0]
		count := 0
		for _, tv := range term.Vars {
			if tv.Equal(v) {
				count++
				continue
			}
			remaining = append(remaining, tv)
		}
		termExpr := coeff.Expr{coeff.NewTerm(term.Q, remaining)}
		for k := 0; k < count; k++ {
			termExpr = termExpr.Mul(amount)
		}
		result = result.Add(termExpr)
	}
	return result.Canon()
}

// solveForVariable mirrors remove_equality_constraints's extraction of
// (variable, amount) from an equality's coefficient expression: a
// single-term equality fixes the variable to zero; a two-term equality
// "c1*x + c2 = 0" (in either element order) solves x = -c2/c1.
func solveForVariable(eq constraint.Coeff) (variable.Variable, coeff.Expr) {
	canon := eq.Expr.Canon()
	if len(canon) == 1 {
		v, _, _ := canon.SingleLinearVariable()
		return v, coeff.Zero()
	}
	e1, e2 := canon[0], canon[1]
	if len(e1.Vars) == 1 {
		v := e1.Vars[0]
		if e2.Q.Sign() == 0 {
			return v, coeff.Zero()
		}
		amount := new(big.Rat).Quo(e2.Q, e1.Q)
		amount.Neg(amount)
		return v, coeff.FromRat(amount)
	}
	v := e2.Vars[0]
	if e1.Q.Sign() == 0 {
		return v, coeff.Zero()
	}
	amount := new(big.Rat).Quo(e1.Q, e2.Q)
	amount.Neg(amount)
	return v, coeff.FromRat(amount)
}

// EliminateEqualities repeatedly finds a variable-equals-constant
// constraint, solves for the variable, substitutes it out everywhere,
// and repeats until none remain. Only sound to call when exactly one
// of {SAT, UNSAT, strict-UNSAT} is active; the caller (PositiveModel)
// enforces that guard.
func EliminateEqualities(cs []dnf.DNF[constraint.Coeff]) []dnf.DNF[constraint.Coeff] {
	for {
		eq, ok := findEqualityConstraint(cs)
		if !ok {
			return cs
		}
		v, amount := solveForVariable(eq)
		cs = substituteVariable(cs, v, amount)
	}
}

// NarrowUnsatCore implements PositiveModel.core_iteration: for the
// live template-variable set (starting as all of templates), assert
// "x = 0" for every live x under a ":named cons-<x>" label, query the
// solver for satisfiability and an unsat core, and either accept the
// zeroing (sat) or drop every named variable the core mentions and
// retry, stopping when the set is empty or a query returns an empty
// core with a non-sat verdict.
func NarrowUnsatCore(ctx context.Context, drv *solverdriver.Driver, cs []dnf.DNF[constraint.Coeff], pre []Precondition, templates []variable.Variable, cfg config.Config) ([]dnf.DNF[constraint.Coeff], error) {
	live := bitset.New(uint(len(templates)))
	for i := range templates {
		live.Set(uint(i))
	}

	for live.Count() > 0 {
		var zeroing []dnf.DNF[constraint.Coeff]
		var named []smt.NamedClause
		for i := range templates {
			if !live.Test(uint(i)) {
				continue
			}
			lit := constraint.EQCoeff(coeff.FromVariable(templates[i]))
			d := dnf.Atom[constraint.Coeff](lit)
			zeroing = append(zeroing, d)
			named = append(named, smt.NamedClause{DNF: d, Name: "cons-" + templates[i].Name})
		}
		for _, c := range cs {
			named = append(named, smt.NamedClause{DNF: c})
		}

		script := smt.Script{
			Constraints:   named,
			Preconditions: pre,
			IntegerArith:  cfg.IntegerArithmetic,
		}
		output, err := drv.RunUnsatCoreQuery(ctx, script)
		if err != nil {
			return cs, err
		}

		status, core := parseUnsatCoreOutput(output)
		if status == "sat" {
			return append(zeroing, cs...), nil
		}
		if len(core) == 0 {
			log.Logger().Info().Msg("unsat-core narrowing exhausted with an empty core, keeping original constraints")
			return cs, nil
		}
		for _, name := range core {
			name = strings.TrimPrefix(name, "cons-")
			for i := range templates {
				if templates[i].Name == name {
					live.Clear(uint(i))
				}
			}
		}
	}
	return cs, nil
}

// parseUnsatCoreOutput splits a "(check-sat)(get-unsat-core)" response
// into its status word and the flattened list of named-assertion
// labels in the core, mirroring core_iteration's
// "output.replace('(', ' ').replace(')', ' ').split()[1:]".
func parseUnsatCoreOutput(output string) (status string, core []string) {
	flattened := strings.NewReplacer("(", " ", ")", " ").Replace(output)
	fields := strings.Fields(flattened)
	if len(fields) == 0 {
		return "", nil
	}
	return fields[0], fields[1:]
}
