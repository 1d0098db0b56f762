// Package model assembles registered Horn obligations and
// preconditions into the final system of CoeffExpr constraints,
// dispatching each obligation to the witness generator its
// configuration selects.
package model

import (
	"context"
	"fmt"

	"github.com/ChatterjeeGroup-ISTA/PolyHorn/config"
	"github.com/ChatterjeeGroup-ISTA/PolyHorn/constraint"
	"github.com/ChatterjeeGroup-ISTA/PolyHorn/dnf"
	"github.com/ChatterjeeGroup-ISTA/PolyHorn/horn"
	"github.com/ChatterjeeGroup-ISTA/PolyHorn/internal/log"
	"github.com/ChatterjeeGroup-ISTA/PolyHorn/smt"
	"github.com/ChatterjeeGroup-ISTA/PolyHorn/solverdriver"
	"github.com/ChatterjeeGroup-ISTA/PolyHorn/variable"
	"github.com/ChatterjeeGroup-ISTA/PolyHorn/witness"
)

// Precondition mirrors smt.Precondition: a free-standing assertion (one
// element) or an implication pair (two elements).
type Precondition = smt.Precondition

// PositiveModel owns the template-variable table, the registered Horn
// obligations, free-standing preconditions, and the output-directive
// strings — the §6 "Input from the parser" contract in full.
type PositiveModel struct {
	cfg       config.Config
	table     *variable.Table
	registry  horn.Registry
	templates []variable.Variable

	preconditions []Precondition
	directives    []string
}

// New returns a PositiveModel configured per cfg. cfg is copied and
// never mutated, matching the §9 design note that auto-mode degree
// resolution happens per obligation, not on the shared config.
func New(cfg config.Config) *PositiveModel {
	return &PositiveModel{
		cfg:   cfg,
		table: variable.NewTable(),
	}
}

// DeclareTemplate interns names as template variables and returns
// them, mirroring PositiveModel.__init__'s template_variables_name
// list.
func (m *PositiveModel) DeclareTemplate(names ...string) []variable.Variable {
	out := make([]variable.Variable, len(names))
	for i, n := range names {
		v := m.table.Intern(n, variable.Template)
		m.templates = append(m.templates, v)
		out[i] = v
	}
	return out
}

// AddPairedConstraint registers lhs ⇒ rhs over programVars, expanding
// into one horn.Obligation per (lhs-clause, rhs-atom) pair.
func (m *PositiveModel) AddPairedConstraint(lhs, rhs dnf.DNF[constraint.Poly], programVars []variable.Variable) error {
	m.registry.AddPairedConstraint(lhs, rhs, programVars)
	return nil
}

// AddPrecondition registers a free-standing clause (one DNF) or
// implication (two DNFs: antecedent, consequent), matching §6.
func (m *PositiveModel) AddPrecondition(pair ...dnf.DNF[constraint.Coeff]) {
	m.preconditions = append(m.preconditions, Precondition(pair))
}

// AddDirective records an output directive such as "(check-sat)" or
// "(get-model)", appended verbatim to the emitted script's tail.
func (m *PositiveModel) AddDirective(s string) {
	m.directives = append(m.directives, s)
}

func (m *PositiveModel) hasDirective(s string) bool {
	for _, d := range m.directives {
		if d == s {
			return true
		}
	}
	return false
}

// generatorFor builds the witness generator an obligation's resolved
// theorem names, mirroring get_generated_constraints's if/elif chain.
func generatorFor(ob horn.Obligation, theorem witness.Theorem, table *variable.Table, cfg config.Config, degSat, degUnsat, degStrict, degNewVar int) interface {
	SAT() witness.Clause
	UnsatNonStrict() witness.Clause
	UnsatStrict() []witness.Clause
} {
	switch theorem {
	case witness.TheoremFarkas:
		return &witness.FarkasGenerator{Table: table, LHS: ob.LHS, RHS: ob.RHS}
	case witness.TheoremHandelman:
		return &witness.HandelmanGenerator{
			Table: table, LHS: ob.LHS, RHS: ob.RHS,
			MaxDegForSat: degSat, MaxDegForUnsat: degUnsat,
		}
	default:
		return &witness.PutinarGenerator{
			Table: table, Vars: ob.Vars, LHS: ob.LHS, RHS: ob.RHS,
			MaxDegForSat: degSat, MaxDegForUnsat: degUnsat,
			MaxDegForUnsatStrict: degStrict, DegreeForNewVar: degNewVar,
		}
	}
}

// GeneratedConstraints discharges every registered obligation through
// its theorem's generator and returns one DNF per obligation, each
// containing the requested combination of SAT/UNSAT/strict-UNSAT
// clauses, mirroring get_generated_constraints exactly.
func (m *PositiveModel) GeneratedConstraints() ([]dnf.DNF[constraint.Coeff], error) {
	if err := m.cfg.Validate(); err != nil {
		return nil, err
	}

	out := make([]dnf.DNF[constraint.Coeff], 0, len(m.registry.Obligations))
	for _, ob := range m.registry.Obligations {
		theorem, autoDeg, err := m.resolveTheorem(ob)
		if err != nil {
			return nil, err
		}

		degSat, degUnsat, degStrict, degNewVar := m.cfg.DegreeOfSat, m.cfg.DegreeOfNonstrictUnsat, m.cfg.DegreeOfStrictUnsat, m.cfg.MaxDOfStrict
		if m.cfg.TheoremName == "auto" {
			degSat, degUnsat, degStrict, degNewVar = autoDeg, autoDeg, autoDeg, autoDeg
		}

		gen := generatorFor(ob, theorem, m.table, m.cfg, degSat, degUnsat, degStrict, degNewVar)

		var clauses []witness.Clause
		if m.cfg.EmitSAT() {
			clauses = append(clauses, gen.SAT())
		}
		if m.cfg.EmitUnsatNonStrict() {
			clauses = append(clauses, gen.UnsatNonStrict())
		}
		if m.cfg.EmitUnsatStrict() {
			clauses = append(clauses, gen.UnsatStrict()...)
		}

		out = append(out, dnf.DNF[constraint.Coeff]{Clauses: clauses})
	}
	return out, nil
}

func (m *PositiveModel) resolveTheorem(ob horn.Obligation) (witness.Theorem, int, error) {
	if m.cfg.TheoremName == "auto" {
		t, deg := witness.Select(ob.LHS, ob.RHS)
		return t, deg, nil
	}
	t, ok := witness.ParseTheorem(m.cfg.TheoremName)
	if !ok {
		return 0, 0, fmt.Errorf("%w: unrecognized theorem name %q", config.ErrMalformed, m.cfg.TheoremName)
	}
	return t, 0, nil
}

// buildScript assembles the post-heuristic constraint list into the
// smt.Script this run emits, applying the two §4.4 heuristics per
// their configured toggles.
func (m *PositiveModel) buildScript(ctx context.Context, drv *solverdriver.Driver) (smt.Script, error) {
	cacheKey := ""
	if m.cfg.CertificatePath != "" {
		cacheKey = contentHash(m.registry.Obligations)
		if cached, ok, err := LoadCertificate(m.cfg.CertificatePath, cacheKey); err == nil && ok {
			log.Logger().Debug().Str("certificatePath", m.cfg.CertificatePath).Msg("reusing cached constraint certificate")
			return m.scriptFromConstraints(ctx, drv, cached)
		}
	}

	cs, err := m.GeneratedConstraints()
	if err != nil {
		return smt.Script{}, err
	}

	if m.cfg.ActiveModeCount() == 1 {
		cs = EliminateEqualities(cs)
	}

	if cacheKey != "" {
		if err := SaveCertificate(m.cfg.CertificatePath, cacheKey, cs); err != nil {
			log.Logger().Warn().Err(err).Msg("failed to save constraint certificate")
		}
	}

	return m.scriptFromConstraints(ctx, drv, cs)
}

func (m *PositiveModel) scriptFromConstraints(ctx context.Context, drv *solverdriver.Driver, cs []dnf.DNF[constraint.Coeff]) (smt.Script, error) {
	var named []smt.NamedClause
	for _, c := range cs {
		named = append(named, smt.NamedClause{DNF: c})
	}

	if m.cfg.UnsatCoreHeuristic && drv != nil {
		narrowed, err := NarrowUnsatCore(ctx, drv, cs, m.preconditions, m.templates, m.cfg)
		if err != nil {
			return smt.Script{}, err
		}
		named = nil
		for _, c := range narrowed {
			named = append(named, smt.NamedClause{DNF: c})
		}
	}

	s := smt.Script{
		OptionPreamble: m.cfg.SolverName.OptionPreamble(),
		Constraints:    named,
		Preconditions:  m.preconditions,
		IntegerArith:   m.cfg.IntegerArithmetic,
		EmitCheckSat:   m.hasDirective("(check-sat)"),
	}
	if m.hasDirective("(get-model)") {
		s.ModelVariables = m.templates
	}
	return s, nil
}

// RunOnSolver emits the script, invokes drv, and parses the result.
// Matching §7(a)/(b), a missing/unavailable solver or a timeout never
// escalates to a Go error: both collapse to smt.Unknown with an empty
// model and a nil error, with a logged diagnostic. Script I/O errors
// are the one class that does propagate as an error (§7e).
func (m *PositiveModel) RunOnSolver(ctx context.Context, drv *solverdriver.Driver) (smt.Status, map[string]string, error) {
	script, err := m.buildScript(ctx, drv)
	if err != nil {
		return smt.Unknown, nil, err
	}

	res, err := drv.Run(ctx, script)
	if err != nil {
		log.Logger().Warn().Err(err).Str("solver", string(m.cfg.SolverName)).Msg("writing solver script failed")
		return smt.Unknown, nil, err
	}
	return res.Status, res.Model, nil
}
