package horn

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ChatterjeeGroup-ISTA/PolyHorn/constraint"
	"github.com/ChatterjeeGroup-ISTA/PolyHorn/dnf"
	"github.com/ChatterjeeGroup-ISTA/PolyHorn/poly"
	"github.com/ChatterjeeGroup-ISTA/PolyHorn/variable"
)

func pv(name string) variable.Variable { return variable.Variable{Name: name, Kind: variable.Program} }

func atom(name string) constraint.Poly {
	return constraint.GEPoly(poly.FromVariable(pv(name)))
}

func TestAddPairedConstraintSingleClauseEachSide(t *testing.T) {
	var reg Registry
	lhs := dnf.Atom[constraint.Poly](atom("x"))
	rhs := dnf.Atom[constraint.Poly](atom("y"))
	reg.AddPairedConstraint(lhs, rhs, []variable.Variable{pv("x"), pv("y")})

	require.Len(t, reg.Obligations, 1)
	require.Equal(t, atom("y"), reg.Obligations[0].RHS)
	require.Equal(t, []constraint.Poly{atom("x")}, reg.Obligations[0].LHS)
}

func TestAddPairedConstraintCrossProduct(t *testing.T) {
	var reg Registry
	lhs := dnf.Atom[constraint.Poly](atom("x")).Or(dnf.Atom[constraint.Poly](atom("y")))
	rhs := dnf.Atom[constraint.Poly](atom("z"))
	reg.AddPairedConstraint(lhs, rhs, nil)

	require.Len(t, reg.Obligations, 2)
}

func TestAddPairedConstraintFoldsExtraRHSClauses(t *testing.T) {
	var reg Registry
	lhs := dnf.Atom[constraint.Poly](atom("x"))
	rhs := dnf.Atom[constraint.Poly](atom("y")).Or(dnf.Atom[constraint.Poly](atom("z")))
	reg.AddPairedConstraint(lhs, rhs, nil)

	// rhs keeps only its first clause ("y"); "z"'s negation folds into lhs.
	require.Len(t, reg.Obligations, 1)
	require.Equal(t, atom("y"), reg.Obligations[0].RHS)
	require.Contains(t, reg.Obligations[0].LHS, atom("x"))
	require.Contains(t, reg.Obligations[0].LHS, atom("z").Neg())
}

func TestAddPairedConstraintPreservesRegistrationOrder(t *testing.T) {
	var reg Registry
	reg.AddPairedConstraint(dnf.Atom[constraint.Poly](atom("a")), dnf.Atom[constraint.Poly](atom("b")), nil)
	reg.AddPairedConstraint(dnf.Atom[constraint.Poly](atom("c")), dnf.Atom[constraint.Poly](atom("d")), nil)

	require.Equal(t, atom("b"), reg.Obligations[0].RHS)
	require.Equal(t, atom("d"), reg.Obligations[1].RHS)
}
