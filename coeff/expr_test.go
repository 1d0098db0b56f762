package coeff

import (
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/ChatterjeeGroup-ISTA/PolyHorn/variable"
)

func v(name string) variable.Variable {
	return variable.Variable{Name: name, Kind: variable.Template}
}

func TestCanonMergesSameMultiset(t *testing.T) {
	// (1,[a]) + (2,[a,b]) + (1,[a])  ==>  (2,[a]) + (2,[a,b])
	a, b := v("a"), v("b")
	e := Expr{
		NewTerm(big.NewRat(1, 1), []variable.Variable{a}),
		NewTerm(big.NewRat(2, 1), []variable.Variable{a, b}),
		NewTerm(big.NewRat(1, 1), []variable.Variable{a}),
	}
	got := e.Canon()
	require.Len(t, got, 2)
	require.Equal(t, []variable.Variable{a}, got[0].Vars)
	require.Equal(t, big.NewRat(2, 1), got[0].Q)
	require.Equal(t, []variable.Variable{a, b}, got[1].Vars)
	require.Equal(t, big.NewRat(2, 1), got[1].Q)
}

func TestCanonDropsZeroTerms(t *testing.T) {
	a := v("a")
	e := Expr{
		NewTerm(big.NewRat(3, 1), []variable.Variable{a}),
		NewTerm(big.NewRat(-3, 1), []variable.Variable{a}),
	}
	require.Empty(t, e.Canon())
	require.True(t, e.IsZero())
}

func TestPreorderEmptySum(t *testing.T) {
	require.Equal(t, "0", Zero().Preorder())
}

func TestPreorderSingleConstant(t *testing.T) {
	require.Equal(t, "3", FromInt(3).Preorder())
	require.Equal(t, "(- 3)", FromInt(-3).Preorder())
	require.Equal(t, "(/ 1 2)", FromRat(big.NewRat(1, 2)).Preorder())
}

func TestPreorderSingleTermWithVariable(t *testing.T) {
	a := v("a")
	e := Expr{NewTerm(big.NewRat(1, 1), []variable.Variable{a})}
	require.Equal(t, "(* 1 1 a)", e.Preorder())
}

func TestPreorderMultiTermWrapsInSum(t *testing.T) {
	a, b := v("a"), v("b")
	e := Expr{
		NewTerm(big.NewRat(2, 1), []variable.Variable{a}),
		NewTerm(big.NewRat(2, 1), []variable.Variable{a, b}),
	}
	require.Equal(t, "(+ 0 (* 1 2 a) (* 1 2 a b))", e.Preorder())
}

func TestSingleLinearVariable(t *testing.T) {
	a := v("a")
	e := FromVariable(a)
	got, q, ok := e.SingleLinearVariable()
	require.True(t, ok)
	require.Equal(t, a, got)
	require.Equal(t, big.NewRat(1, 1), q)

	_, _, ok = Zero().SingleLinearVariable()
	require.False(t, ok)

	squared := e.Mul(e)
	_, _, ok = squared.SingleLinearVariable()
	require.False(t, ok)
}

// ---- property-based tests over small random CoeffExprs ----

func genVar(names ...string) gopter.Gen {
	return gen.OneConstOf(toInterfaces(names)...)
}

func toInterfaces(names []string) []interface{} {
	out := make([]interface{}, len(names))
	for i, n := range names {
		out[i] = n
	}
	return out
}

func genTerm() gopter.Gen {
	return gopter.CombineGens(
		gen.Int64Range(-5, 5),
		gen.Int64Range(1, 4),
		genVar("a", "b", "c"),
	).Map(func(vs []interface{}) Term {
		num := vs[0].(int64)
		den := vs[1].(int64)
		name := vs[2].(string)
		return NewTerm(big.NewRat(num, den), []variable.Variable{v(name)})
	})
}

func genExpr() gopter.Gen {
	return gen.SliceOfN(4, genTerm()).Map(func(ts []Term) Expr {
		return Expr(ts)
	})
}

func TestExprAlgebraicLaws(t *testing.T) {
	params := gopter.DefaultTestParameters()
	props := gopter.NewProperties(params)

	props.Property("addition is commutative", prop.ForAll(
		func(a, b Expr) bool {
			return a.Add(b).Equal(b.Add(a))
		},
		genExpr(), genExpr(),
	))

	props.Property("addition is associative", prop.ForAll(
		func(a, b, c Expr) bool {
			return a.Add(b).Add(c).Equal(a.Add(b.Add(c)))
		},
		genExpr(), genExpr(), genExpr(),
	))

	props.Property("multiplication distributes over addition", prop.ForAll(
		func(a, b, c Expr) bool {
			lhs := a.Mul(b.Add(c))
			rhs := a.Mul(b).Add(a.Mul(c))
			return lhs.Equal(rhs)
		},
		genExpr(), genExpr(), genExpr(),
	))

	props.Property("zero is the additive identity", prop.ForAll(
		func(a Expr) bool {
			return a.Add(Zero()).Equal(a)
		},
		genExpr(),
	))

	props.Property("x + (-x) is zero", prop.ForAll(
		func(a Expr) bool {
			return a.Add(a.Neg()).IsZero()
		},
		genExpr(),
	))

	props.Property("canon is idempotent", prop.ForAll(
		func(a Expr) bool {
			return a.Canon().Canon().Equal(a.Canon())
		},
		genExpr(),
	))

	props.TestingRun(t)
}
