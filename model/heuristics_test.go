package model

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ChatterjeeGroup-ISTA/PolyHorn/coeff"
	"github.com/ChatterjeeGroup-ISTA/PolyHorn/constraint"
	"github.com/ChatterjeeGroup-ISTA/PolyHorn/dnf"
	"github.com/ChatterjeeGroup-ISTA/PolyHorn/variable"
)

func tv(name string) variable.Variable { return variable.Variable{Name: name, Kind: variable.Template} }

func TestEliminateEqualitiesSubstitutesSimpleVariable(t *testing.T) {
	x := tv("x")
	y := tv("y")

	eq := constraint.EQCoeff(coeff.FromVariable(x))
	other := constraint.GECoeff(coeff.FromVariable(x).Add(coeff.FromVariable(y)))

	cs := []dnf.DNF[constraint.Coeff]{
		dnf.Atom[constraint.Coeff](eq),
		dnf.Atom[constraint.Coeff](other),
	}

	out := EliminateEqualities(cs)
	require.Len(t, out, 2)
	remainingVars := out[1].Clauses[0][0].Expr.Variables()
	for _, v := range remainingVars {
		require.NotEqual(t, x, v)
	}
}

func TestEliminateEqualitiesIsIdempotentWithNoEquality(t *testing.T) {
	x := tv("x")
	cs := []dnf.DNF[constraint.Coeff]{
		dnf.Atom[constraint.Coeff](constraint.GECoeff(coeff.FromVariable(x))),
	}
	out := EliminateEqualities(cs)
	require.Equal(t, cs, out)
}

func TestParseUnsatCoreOutputSplitsStatusAndNames(t *testing.T) {
	status, core := parseUnsatCoreOutput("unsat\n(cons-x cons-y)\n")
	require.Equal(t, "unsat", status)
	require.Equal(t, []string{"cons-x", "cons-y"}, core)
}

func TestParseUnsatCoreOutputHandlesSat(t *testing.T) {
	status, core := parseUnsatCoreOutput("sat\n")
	require.Equal(t, "sat", status)
	require.Empty(t, core)
}
