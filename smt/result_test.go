package smt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseResultUnsat(t *testing.T) {
	r := ParseResult("unsat\n")
	require.Equal(t, Unsat, r.Status)
	require.Empty(t, r.Model)
}

func TestParseResultUnknown(t *testing.T) {
	r := ParseResult("unknown\n")
	require.Equal(t, Unknown, r.Status)
}

func TestParseResultSatSimpleBindings(t *testing.T) {
	out := "sat\n((a 1.0)\n (b 2.0))\n"
	r := ParseResult(out)
	require.Equal(t, Sat, r.Status)
	require.Equal(t, "1.0", r.Model["a"])
	require.Equal(t, "2.0", r.Model["b"])
}

func TestParseResultSatNestedValue(t *testing.T) {
	out := "sat\n((a (/ 3.0 2.0))\n (b (- 7.0)))\n"
	r := ParseResult(out)
	require.Equal(t, Sat, r.Status)
	require.Equal(t, "(/ 3.0 2.0)", r.Model["a"])
	require.Equal(t, "(- 7.0)", r.Model["b"])
}

func TestParseResultSkipsUnsupportedLine(t *testing.T) {
	out := "unsupported\nsat\n((a 1.0))\n"
	r := ParseResult(out)
	require.Equal(t, Sat, r.Status)
	require.Equal(t, "1.0", r.Model["a"])
}
