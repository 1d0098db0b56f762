// Package constraint implements the atomic relations — a Polynomial or
// CoeffExpr compared against zero — that DNF clauses are built from.
package constraint

import (
	"fmt"

	"github.com/ChatterjeeGroup-ISTA/PolyHorn/coeff"
	"github.com/ChatterjeeGroup-ISTA/PolyHorn/poly"
)

// Sign is the relational operator of an atomic constraint.
type Sign int

const (
	GT Sign = iota
	GE
	EQ
	NE
)

func (s Sign) String() string {
	switch s {
	case GT:
		return ">"
	case GE:
		return ">="
	case EQ:
		return "="
	case NE:
		return "!="
	default:
		return fmt.Sprintf("sign(%d)", int(s))
	}
}

func (s Sign) negated() Sign {
	switch s {
	case GT:
		return GE
	case GE:
		return GT
	case EQ:
		return NE
	case NE:
		return EQ
	default:
		panic("constraint: unreachable sign")
	}
}

// Poly is an atomic constraint "polynomial <sign> 0". Constructing one
// with '<' or '<=' flips the sign to '>'/'>=' and negates the
// polynomial, so every stored constraint carries only GT, GE, EQ or NE
// — matching PolynomialConstraint's constructor normalization.
type Poly struct {
	Polynomial poly.Polynomial
	Sign       Sign
}

// NewPoly builds the Poly constraint "p <sign> 0". flipped marks a
// user-facing '<' or '<=' that the caller has already mapped to GT or
// GE: sign is stored as given and p is negated.
func NewPoly(p poly.Polynomial, sign Sign, flipped bool) Poly {
	if flipped {
		return Poly{Polynomial: p.Neg(), Sign: sign}
	}
	return Poly{Polynomial: p, Sign: sign}
}

// GT etc. are the direct constructors a frontend uses once it has
// already oriented the polynomial as p > 0, p >= 0, p = 0, or p != 0;
// LT/LE are provided for convenience and negate p.
func GTPoly(p poly.Polynomial) Poly { return Poly{Polynomial: p, Sign: GT} }
func GEPoly(p poly.Polynomial) Poly { return Poly{Polynomial: p, Sign: GE} }
func EQPoly(p poly.Polynomial) Poly { return Poly{Polynomial: p, Sign: EQ} }
func NEPoly(p poly.Polynomial) Poly { return Poly{Polynomial: p, Sign: NE} }
func LTPoly(p poly.Polynomial) Poly { return Poly{Polynomial: p.Neg(), Sign: GT} }
func LEPoly(p poly.Polynomial) Poly { return Poly{Polynomial: p.Neg(), Sign: GE} }

// IsStrict reports whether c forbids equality (sign is '>').
func (c Poly) IsStrict() bool { return c.Sign == GT }

// Neg returns the logical negation of c: ¬(p > 0) is p >= 0 negated,
// i.e. -p >= 0; ¬(p >= 0) is -p > 0; ¬(p = 0) is p != 0, and vice versa.
func (c Poly) Neg() Poly {
	switch c.Sign {
	case GT:
		return Poly{Polynomial: c.Polynomial.Neg(), Sign: GE}
	case GE:
		return Poly{Polynomial: c.Polynomial.Neg(), Sign: GT}
	case EQ:
		return Poly{Polynomial: c.Polynomial, Sign: NE}
	case NE:
		return Poly{Polynomial: c.Polynomial, Sign: EQ}
	default:
		panic("constraint: unreachable sign")
	}
}

// Preorder emits c in SMT-LIB2 prefix form: "(<sign> <poly> 0)".
func (c Poly) Preorder() string {
	return fmt.Sprintf("(%s %s 0)", c.Sign, c.Polynomial.Preorder())
}

func (c Poly) String() string {
	return fmt.Sprintf("%s%s0", c.Polynomial.Preorder(), c.Sign)
}

// Coeff is an atomic constraint "coeffExpr <sign> 0" over template and
// auxiliary variables — the kind of constraint a witness generator
// emits once program variables have been eliminated.
type Coeff struct {
	Expr coeff.Expr
	Sign Sign
}

func GTCoeff(e coeff.Expr) Coeff { return Coeff{Expr: e, Sign: GT} }
func GECoeff(e coeff.Expr) Coeff { return Coeff{Expr: e, Sign: GE} }
func EQCoeff(e coeff.Expr) Coeff { return Coeff{Expr: e, Sign: EQ} }
func NECoeff(e coeff.Expr) Coeff { return Coeff{Expr: e, Sign: NE} }

// IsStrict reports whether c forbids equality (sign is '>').
func (c Coeff) IsStrict() bool { return c.Sign == GT }

// Neg returns the logical negation of c, by the same rules as Poly.Neg.
func (c Coeff) Neg() Coeff {
	switch c.Sign {
	case GT:
		return Coeff{Expr: c.Expr.Neg(), Sign: GE}
	case GE:
		return Coeff{Expr: c.Expr.Neg(), Sign: GT}
	case EQ:
		return Coeff{Expr: c.Expr, Sign: NE}
	case NE:
		return Coeff{Expr: c.Expr, Sign: EQ}
	default:
		panic("constraint: unreachable sign")
	}
}

// IsVariableEquality reports whether c has the form "x = q" (or "q = x")
// for a single template/auxiliary variable x and rational constant q —
// the shape the equality-elimination heuristic in model/heuristics.go
// looks for, matching CoefficientConstraint.is_equality.
func (c Coeff) IsVariableEquality() bool {
	if c.Sign != EQ {
		return false
	}
	canon := c.Expr.Canon()
	switch len(canon) {
	case 1:
		return len(canon[0].Vars) == 1
	case 2:
		return len(canon[0].Vars)+len(canon[1].Vars) == 1
	default:
		return false
	}
}

// Preorder emits c in SMT-LIB2 prefix form: "(<sign> <coeffExpr> 0)".
func (c Coeff) Preorder() string {
	return fmt.Sprintf("(%s %s 0)", c.Sign, c.Expr.Preorder())
}

func (c Coeff) String() string {
	return fmt.Sprintf("%s%s0", c.Expr.Preorder(), c.Sign)
}
