package variable

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindRankOrder(t *testing.T) {
	require.True(t, Program < Template)
	require.True(t, Template < AuxFarkas)
	require.True(t, AuxFarkas < AuxHandelman)
	require.True(t, AuxHandelman < AuxPutinarSOS)
	require.True(t, AuxPutinarSOS < AuxPutinarEta)
	require.True(t, AuxPutinarEta < AuxStrictWitness)
}

func TestLessKindFirst(t *testing.T) {
	a := Variable{Name: "z", Kind: Program}
	b := Variable{Name: "a", Kind: Template}
	require.True(t, a.Less(b), "program-kind z must sort before template-kind a")
	require.False(t, b.Less(a))
}

func TestLessLexOnName(t *testing.T) {
	a := Variable{Name: "x1", Kind: Program}
	b := Variable{Name: "x2", Kind: Program}
	require.True(t, a.Less(b))
}

func TestSortStable(t *testing.T) {
	vs := []Variable{
		{Name: "c", Kind: Template},
		{Name: "x", Kind: Program},
		{Name: "a", Kind: Template},
		{Name: "y", Kind: Program},
	}
	sort.Slice(vs, func(i, j int) bool { return vs[i].Less(vs[j]) })
	want := []Variable{
		{Name: "x", Kind: Program},
		{Name: "y", Kind: Program},
		{Name: "a", Kind: Template},
		{Name: "c", Kind: Template},
	}
	require.Equal(t, want, vs)
}

func TestTableFreshUniqueOnCollision(t *testing.T) {
	tb := NewTable()
	v1 := tb.Fresh(AuxHandelman, "y1")
	v2 := tb.Fresh(AuxHandelman, "y1")
	require.NotEqual(t, v1, v2)
	require.Equal(t, "y1", v1.Name)
	require.Equal(t, "y1#2", v2.Name)
}

func TestTableInternIdempotent(t *testing.T) {
	tb := NewTable()
	a := tb.Intern("x", Program)
	b := tb.Intern("x", Program)
	require.Equal(t, a, b)
}

func TestCompare(t *testing.T) {
	a := Variable{Name: "a", Kind: Program}
	b := Variable{Name: "b", Kind: Program}
	require.Equal(t, -1, Compare(a, b))
	require.Equal(t, 1, Compare(b, a))
	require.Equal(t, 0, Compare(a, a))
}
