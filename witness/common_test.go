package witness

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ChatterjeeGroup-ISTA/PolyHorn/coeff"
	"github.com/ChatterjeeGroup-ISTA/PolyHorn/poly"
	"github.com/ChatterjeeGroup-ISTA/PolyHorn/variable"
)

func pv(name string) variable.Variable { return variable.Variable{Name: name, Kind: variable.Program} }

func TestFindEqualityConstraintsMatchesSupport(t *testing.T) {
	x := pv("x")
	L := poly.FromVariable(x).ScaleCoeff(coeff.FromInt(2))
	R := poly.FromVariable(x).ScaleCoeff(coeff.FromInt(2)).Add(poly.FromCoeff(coeff.FromInt(3)))

	eqs := FindEqualityConstraints(L, R)
	// supports: {x}, {} (constant) -> two equalities.
	require.Len(t, eqs, 2)
	for _, e := range eqs {
		require.True(t, e.IsVariableEquality() || e.Expr.Equal(coeff.FromInt(-3)) || e.Expr.IsZero())
	}
}

func TestListsOfFixedLen(t *testing.T) {
	got := listsOfFixedLen(2, 2)
	require.Contains(t, got, []int{0, 0})
	require.Contains(t, got, []int{2, 0})
	require.Contains(t, got, []int{0, 2})
	require.Contains(t, got, []int{1, 1})
	for _, v := range got {
		require.LessOrEqual(t, v[0]+v[1], 2)
	}
}

func TestListsOfFixedLenZeroArity(t *testing.T) {
	got := listsOfFixedLen(0, 5)
	require.Equal(t, [][]int{{}}, got)
}
