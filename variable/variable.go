// Package variable implements the identity and total order of symbolic
// names shared by every downstream normal form: program variables,
// template variables, and the auxiliary variables minted by the
// witness generators.
package variable

import "fmt"

// Kind classifies a Variable. The numeric order is the rank used by
// Less: program first, then template, then each generator's
// auxiliaries in the order they are minted.
type Kind int

const (
	Program Kind = iota
	Template
	AuxFarkas
	AuxHandelman
	AuxPutinarSOS
	AuxPutinarEta
	AuxStrictWitness
)

func (k Kind) String() string {
	switch k {
	case Program:
		return "program"
	case Template:
		return "template"
	case AuxFarkas:
		return "aux-farkas"
	case AuxHandelman:
		return "aux-handelman"
	case AuxPutinarSOS:
		return "aux-putinar-sos"
	case AuxPutinarEta:
		return "aux-putinar-eta"
	case AuxStrictWitness:
		return "aux-strict-witness"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Variable is an immutable (name, kind) pair. Two variables are equal
// iff both fields match; a total order is induced by Less (kind rank
// first, then lexicographic on name) and assumed by every canonical
// form in coeff, poly, constraint, and dnf.
type Variable struct {
	Name string
	Kind Kind
}

// Less implements the canonical ordering assumed by every downstream
// normal form (coeff, poly, constraint, dnf).
func (v Variable) Less(other Variable) bool {
	if v.Kind != other.Kind {
		return v.Kind < other.Kind
	}
	return v.Name < other.Name
}

// Equal reports whether v and other denote the same variable.
func (v Variable) Equal(other Variable) bool {
	return v.Name == other.Name && v.Kind == other.Kind
}

func (v Variable) String() string {
	return v.Name
}

// Compare returns -1, 0, or 1 following the Less order, for use with
// sort.Slice and the canonical-form comparators in coeff/poly.
func Compare(a, b Variable) int {
	if a.Equal(b) {
		return 0
	}
	if a.Less(b) {
		return -1
	}
	return 1
}

// Table interns variables for the lifetime of a single run. New
// auxiliary variables are minted uniquely by name+kind: a collision
// on hint appends "#2", "#3", ... until the pair is free.
type Table struct {
	seen map[Variable]struct{}
}

// NewTable returns an empty interner.
func NewTable() *Table {
	return &Table{seen: make(map[Variable]struct{})}
}

// Intern registers name/kind as seen and returns the Variable. Calling
// Intern twice with the same arguments returns equal Variables; it is
// the caller's responsibility to use Fresh when uniqueness is required.
func (t *Table) Intern(name string, kind Kind) Variable {
	v := Variable{Name: name, Kind: kind}
	t.seen[v] = struct{}{}
	return v
}

// Fresh mints a Variable of the given kind unique in this table,
// starting from hint and appending "#2", "#3", ... on collision.
func (t *Table) Fresh(kind Kind, hint string) Variable {
	name := hint
	for i := 2; ; i++ {
		v := Variable{Name: name, Kind: kind}
		if _, taken := t.seen[v]; !taken {
			t.seen[v] = struct{}{}
			return v
		}
		name = fmt.Sprintf("%s#%d", hint, i)
	}
}
