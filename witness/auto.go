package witness

import "github.com/ChatterjeeGroup-ISTA/PolyHorn/constraint"

// Theorem names the algorithm chosen to discharge a single Obligation.
type Theorem int

const (
	TheoremFarkas Theorem = iota
	TheoremHandelman
	TheoremPutinar
)

func (t Theorem) String() string {
	switch t {
	case TheoremFarkas:
		return "farkas"
	case TheoremHandelman:
		return "handelman"
	case TheoremPutinar:
		return "putinar"
	default:
		return "unknown"
	}
}

// ParseTheorem recognizes the three fixed theorem names "farkas",
// "handelman" and "putinar". It reports false for "auto", which is
// resolved per obligation by Select instead.
func ParseTheorem(name string) (Theorem, bool) {
	switch name {
	case "farkas":
		return TheoremFarkas, true
	case "handelman":
		return TheoremHandelman, true
	case "putinar":
		return TheoremPutinar, true
	default:
		return 0, false
	}
}

// Select inspects a Horn pair and picks the cheapest sound theorem:
// Farkas when every hypothesis and the goal are linear, Handelman when
// only the hypotheses are linear, Putinar otherwise. It also reports
// the maximum polynomial degree observed in the pair, which auto mode
// uses as the default for all four degree knobs.
func Select(lhs []constraint.Poly, rhs constraint.Poly) (theorem Theorem, maxDegree int) {
	lhsLinear := true
	maxDegree = rhs.Polynomial.Deg()
	for _, g := range lhs {
		if d := g.Polynomial.Deg(); d > maxDegree {
			maxDegree = d
		}
		if !g.Polynomial.IsLinear() {
			lhsLinear = false
		}
	}
	rhsLinear := rhs.Polynomial.IsLinear()

	switch {
	case lhsLinear && rhsLinear:
		return TheoremFarkas, maxDegree
	case lhsLinear:
		return TheoremHandelman, maxDegree
	default:
		return TheoremPutinar, maxDegree
	}
}
