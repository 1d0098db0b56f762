// Package smt lowers the final system of CoeffExpr constraints to an
// SMT-LIB2 script and parses a solver's response.
package smt

import (
	"sort"
	"strings"

	"github.com/ChatterjeeGroup-ISTA/PolyHorn/constraint"
	"github.com/ChatterjeeGroup-ISTA/PolyHorn/dnf"
	"github.com/ChatterjeeGroup-ISTA/PolyHorn/variable"
)

// NamedClause pairs a DNF with an optional SMT-LIB2 ":named" label,
// used by the unsat-core heuristic to tag individual assumptions.
type NamedClause struct {
	DNF  dnf.DNF[constraint.Coeff]
	Name string
}

// Precondition is a free-standing clause (one element: an unconditional
// assertion) or implication pair (two elements: "=>").
type Precondition []dnf.DNF[constraint.Coeff]

// Script is everything Encode needs to emit a complete SMT-LIB2 file.
type Script struct {
	OptionPreamble string
	Constraints    []NamedClause
	Preconditions  []Precondition
	PreVariables   []variable.Variable
	IntegerArith   bool
	EmitCheckSat   bool
	ModelVariables []variable.Variable
}

func collectVariables(s Script) []variable.Variable {
	seen := map[variable.Variable]struct{}{}
	var out []variable.Variable
	add := func(v variable.Variable) {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	for _, v := range s.PreVariables {
		add(v)
	}
	for _, nc := range s.Constraints {
		for _, clause := range nc.DNF.Clauses {
			for _, c := range clause {
				for _, v := range c.Expr.Variables() {
					add(v)
				}
			}
		}
	}
	for _, pre := range s.Preconditions {
		for _, d := range pre {
			for _, clause := range d.Clauses {
				for _, c := range clause {
					for _, v := range c.Expr.Variables() {
						add(v)
					}
				}
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// Encode renders s as a complete SMT-LIB2 script: option lines,
// declare-const per variable, one assert per DNF or named assertion,
// precondition asserts/implications, and an optional trailing
// check-sat/get-value tail.
func Encode(s Script) string {
	var sb strings.Builder
	sb.WriteString(s.OptionPreamble)

	kind := "Real"
	if s.IntegerArith {
		kind = "Int"
	}
	for _, v := range collectVariables(s) {
		sb.WriteString("(declare-const ")
		sb.WriteString(v.Name)
		sb.WriteString(" ")
		sb.WriteString(kind)
		sb.WriteString(")\n")
	}

	for _, nc := range s.Constraints {
		if nc.Name == "" {
			sb.WriteString("(assert ")
			sb.WriteString(nc.DNF.Preorder())
			sb.WriteString(")\n")
		} else {
			sb.WriteString("(assert (! ")
			sb.WriteString(nc.DNF.Preorder())
			sb.WriteString(" :named ")
			sb.WriteString(nc.Name)
			sb.WriteString("))\n")
		}
	}

	for _, pre := range s.Preconditions {
		switch len(pre) {
		case 1:
			sb.WriteString("(assert ")
			sb.WriteString(pre[0].Preorder())
			sb.WriteString(")\n")
		case 2:
			sb.WriteString("(assert (=> ")
			sb.WriteString(pre[0].Preorder())
			sb.WriteString(" ")
			sb.WriteString(pre[1].Preorder())
			sb.WriteString("))\n")
		}
	}

	if s.EmitCheckSat {
		sb.WriteString("\n(check-sat)\n")
	}
	if len(s.ModelVariables) > 0 {
		names := make([]string, len(s.ModelVariables))
		for i, v := range s.ModelVariables {
			names[i] = v.Name
		}
		sb.WriteString("\n(get-value (")
		sb.WriteString(strings.Join(names, " "))
		sb.WriteString("))\n")
	}

	return sb.String()
}

// EncodeUnsatCoreQuery wraps a plain Encode output with the option and
// trailer the unsat-core narrowing heuristic needs: unsat-core
// production enabled up front, "(check-sat)(get-unsat-core)" appended.
func EncodeUnsatCoreQuery(s Script) string {
	s.OptionPreamble = "(set-option :produce-unsat-cores true)\n" + s.OptionPreamble
	s.EmitCheckSat = false
	body := Encode(s)
	return body + "\n(check-sat)\n(get-unsat-core)\n"
}
