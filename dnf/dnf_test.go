package dnf

import (
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/ChatterjeeGroup-ISTA/PolyHorn/constraint"
	"github.com/ChatterjeeGroup-ISTA/PolyHorn/poly"
	"github.com/ChatterjeeGroup-ISTA/PolyHorn/variable"
)

func pv(name string) variable.Variable { return variable.Variable{Name: name, Kind: variable.Program} }

func lit(name string) constraint.Poly {
	return constraint.GTPoly(poly.FromVariable(pv(name)))
}

// canon turns a DNF into a sorted, comparable shape so structurally
// different but semantically equal DNFs (clauses/literals reordered
// by Or/And) compare equal under go-cmp.
func canon(d DNF[constraint.Poly]) []string {
	clauses := make([]string, 0, len(d.Clauses))
	for _, c := range d.Clauses {
		lits := make([]string, 0, len(c))
		for _, l := range c {
			lits = append(lits, l.Preorder())
		}
		sort.Strings(lits)
		clauses = append(clauses, strings.Join(lits, "&"))
	}
	sort.Strings(clauses)
	return clauses
}

func TestOrIsUnionOfClauses(t *testing.T) {
	a := Atom[constraint.Poly](lit("x"))
	b := Atom[constraint.Poly](lit("y"))
	got := a.Or(b)
	require.Len(t, got.Clauses, 2)
}

func TestAndDistributesOverClauses(t *testing.T) {
	a := Atom[constraint.Poly](lit("x")).Or(Atom[constraint.Poly](lit("y")))
	b := Atom[constraint.Poly](lit("z"))
	got := a.And(b)
	require.Len(t, got.Clauses, 2)
	for _, c := range got.Clauses {
		require.Len(t, c, 2)
	}
}

func TestAndWithFalseIsAnnihilating(t *testing.T) {
	a := Atom[constraint.Poly](lit("x"))
	got := a.And(False[constraint.Poly]())
	require.True(t, got.IsFalse())
}

func TestAndWithTrueIsIdentity(t *testing.T) {
	a := Atom[constraint.Poly](lit("x")).Or(Atom[constraint.Poly](lit("y")))
	got := a.And(True[constraint.Poly]())
	if diff := cmp.Diff(canon(a), canon(got)); diff != "" {
		t.Fatalf("And with True changed the DNF (-want +got):\n%s", diff)
	}
}

func TestDeMorganOnDisjunction(t *testing.T) {
	// not (x>0 or y>0) == (not x>0) and (not y>0)
	a := Atom[constraint.Poly](lit("x")).Or(Atom[constraint.Poly](lit("y")))
	got := a.Not()
	want := Atom[constraint.Poly](lit("x").Neg()).And(Atom[constraint.Poly](lit("y").Neg()))
	if diff := cmp.Diff(canon(want), canon(got)); diff != "" {
		t.Fatalf("De Morgan on OR failed (-want +got):\n%s", diff)
	}
}

func TestDeMorganOnConjunction(t *testing.T) {
	// not (x>0 and y>0) == (not x>0) or (not y>0)
	clause := Clause[constraint.Poly]{lit("x"), lit("y")}
	a := DNF[constraint.Poly]{Clauses: []Clause[constraint.Poly]{clause}}
	got := a.Not()
	want := Atom[constraint.Poly](lit("x").Neg()).Or(Atom[constraint.Poly](lit("y").Neg()))
	if diff := cmp.Diff(canon(want), canon(got)); diff != "" {
		t.Fatalf("De Morgan on AND failed (-want +got):\n%s", diff)
	}
}

// holds evaluates d under a truth assignment to the atoms lit(name);
// the negation of an atom takes the opposite truth value.
func holds(d DNF[constraint.Poly], val map[string]bool) bool {
	truth := map[string]bool{}
	for name, b := range val {
		truth[lit(name).Preorder()] = b
		truth[lit(name).Neg().Preorder()] = !b
	}
	for _, c := range d.Clauses {
		sat := true
		for _, l := range c {
			sat = sat && truth[l.Preorder()]
		}
		if sat {
			return true
		}
	}
	return false
}

// Not does not simplify, so not-not d is logically equivalent to d but
// not clause-for-clause identical; compare truth values on every
// assignment of x, y, z.
func TestDoubleNegationIsIdentity(t *testing.T) {
	a := Atom[constraint.Poly](lit("x")).Or(Atom[constraint.Poly](lit("y")).And(Atom[constraint.Poly](lit("z"))))
	got := a.Not().Not()
	for mask := 0; mask < 8; mask++ {
		val := map[string]bool{"x": mask&1 != 0, "y": mask&2 != 0, "z": mask&4 != 0}
		require.Equal(t, holds(a, val), holds(got, val), "double negation changed the truth value under %v", val)
	}
}

func TestAndDistributesOverOr(t *testing.T) {
	a := Atom[constraint.Poly](lit("x"))
	b := Atom[constraint.Poly](lit("y")).Or(Atom[constraint.Poly](lit("z")))
	lhs := a.And(b)
	rhs := a.And(Atom[constraint.Poly](lit("y"))).Or(a.And(Atom[constraint.Poly](lit("z"))))
	if diff := cmp.Diff(canon(rhs), canon(lhs)); diff != "" {
		t.Fatalf("distributivity failed (-want +got):\n%s", diff)
	}
}
