package smt

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ChatterjeeGroup-ISTA/PolyHorn/coeff"
	"github.com/ChatterjeeGroup-ISTA/PolyHorn/constraint"
	"github.com/ChatterjeeGroup-ISTA/PolyHorn/dnf"
	"github.com/ChatterjeeGroup-ISTA/PolyHorn/variable"
)

func tv(name string) variable.Variable { return variable.Variable{Name: name, Kind: variable.Template} }

func TestEncodeDeclaresRealByDefault(t *testing.T) {
	a := tv("a")
	clause := dnf.Atom[constraint.Coeff](constraint.GECoeff(coeff.FromVariable(a)))
	s := Script{Constraints: []NamedClause{{DNF: clause}}}
	out := Encode(s)
	require.Contains(t, out, "(declare-const a Real)")
	require.Contains(t, out, "(assert (or (and (>= (* 1 1 a) 0)")
}

func TestEncodeIntegerArithmetic(t *testing.T) {
	a := tv("a")
	clause := dnf.Atom[constraint.Coeff](constraint.GECoeff(coeff.FromVariable(a)))
	s := Script{Constraints: []NamedClause{{DNF: clause}}, IntegerArith: true}
	out := Encode(s)
	require.Contains(t, out, "(declare-const a Int)")
}

func TestEncodeNamedAssertion(t *testing.T) {
	a := tv("a")
	clause := dnf.Atom[constraint.Coeff](constraint.EQCoeff(coeff.FromVariable(a)))
	s := Script{Constraints: []NamedClause{{DNF: clause, Name: "cons-a"}}}
	out := Encode(s)
	require.Contains(t, out, ":named cons-a")
}

func TestEncodeCheckSatAndGetValue(t *testing.T) {
	a := tv("a")
	s := Script{ModelVariables: []variable.Variable{a}, EmitCheckSat: true}
	out := Encode(s)
	require.Contains(t, out, "(check-sat)")
	require.Contains(t, out, "(get-value (a))")
}

func TestEncodeUnsatCoreQueryWrapsOptionsAndTrailer(t *testing.T) {
	s := Script{}
	out := EncodeUnsatCoreQuery(s)
	require.Contains(t, out, "(set-option :produce-unsat-cores true)")
	require.Contains(t, out, "(get-unsat-core)")
}

func TestEncodePreconditionImplication(t *testing.T) {
	a := tv("a")
	d1 := dnf.Atom[constraint.Coeff](constraint.GECoeff(coeff.FromVariable(a)))
	d2 := dnf.Atom[constraint.Coeff](constraint.GTCoeff(coeff.FromVariable(a)))
	s := Script{Preconditions: []Precondition{{d1, d2}}}
	out := Encode(s)
	require.Contains(t, out, "(assert (=>")
}
