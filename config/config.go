// Package config defines the PolyHorn run configuration record and
// its validation and per-solver option preambles. Loading a config
// from a JSON file on disk is external to this package — see
// cmd/polyhorn — configuration loading is a front-end collaborator's
// responsibility, not this package's.
package config

import (
	"errors"
	"fmt"
)

// ErrMalformed wraps a configuration that fails Validate: an empty or
// unrecognized theorem name, or a negative degree knob.
var ErrMalformed = errors.New("config: malformed configuration")

// SolverName is one of the solver backends PolyHorn knows how to
// drive, grounded on original_source/src/polyhorn/Constant.py's
// options/default_path/command dictionaries.
type SolverName string

const (
	SolverZ3      SolverName = "z3"
	SolverMathSAT SolverName = "mathsat"
	SolverDefault SolverName = "default"
)

// OptionPreamble returns the SMT-LIB2 option lines Constant.options
// emits ahead of declarations for this solver. z3 and mathsat both
// disable print-success chatter and enable model production; default
// emits nothing.
func (s SolverName) OptionPreamble() string {
	switch s {
	case SolverZ3, SolverMathSAT:
		return "(set-option :print-success false)\n(set-option :produce-models true)\n"
	default:
		return ""
	}
}

// Config is the plain record driving one PolyHorn run: which theorem
// to use, the four degree knobs, the two heuristic toggles, the
// arithmetic domain, and the solver selection. Default returns the
// load_config defaults: the zero value for every field except
// SolverName ("z3") and OutputPath ("checking.txt"); TheoremName stays
// empty, and Validate rejects it until a caller sets it.
//
// Which of {SAT, nonstrict-UNSAT, strict-UNSAT} a run emits is not a
// set of independent fields: SATHeuristic is the single knob, exactly
// as original_source/src/main.py:96 derives PositiveModel's three
// constructor flags as `True, not SAT_heuristic, not SAT_heuristic`.
// EmitSAT/EmitUnsatNonStrict/EmitUnsatStrict below compute the three
// modes from it.
type Config struct {
	TheoremName string `json:"theorem_name"` // "farkas", "handelman", "putinar", or "auto"

	DegreeOfSat            int `json:"degree_of_sat"`
	DegreeOfNonstrictUnsat int `json:"degree_of_nonstrict_unsat"`
	DegreeOfStrictUnsat    int `json:"degree_of_strict_unsat"`
	MaxDOfStrict           int `json:"max_d_of_strict"`

	SATHeuristic       bool `json:"SAT_heuristic"`
	UnsatCoreHeuristic bool `json:"unsat_core_heuristic"`
	IntegerArithmetic  bool `json:"integer_arithmetic"`

	SolverName SolverName `json:"solver_name"`
	// SolverPath, if set, names a specific binary to invoke instead of
	// searching PATH/the packaged fallback for SolverName: it is the
	// first tier solverdriver.Locate tries.
	SolverPath string `json:"solver_path,omitempty"`
	OutputPath string `json:"output_path"`

	// CertificatePath, if set, enables model.PositiveModel's certificate
	// cache: the post-heuristic constraint system is saved here keyed
	// by a hash of the registered obligations, and reused on a later
	// run over an unchanged registry instead of regenerating witnesses.
	CertificatePath string `json:"certificate_path,omitempty"`
}

// Default returns the same defaults original_source/src/main.py's
// load_config applies on top of a (possibly empty) parsed JSON
// document: every boolean false, every degree zero, SolverName "z3",
// and OutputPath "checking.txt". TheoremName is left empty; callers
// must set it before Validate succeeds.
func Default() Config {
	return Config{
		SolverName: SolverZ3,
		OutputPath: "checking.txt",
	}
}

// EmitSAT reports whether a run emits the SAT witness. Unconditionally
// true: main.py's execute always passes get_SAT=True regardless of
// SAT_heuristic.
func (c Config) EmitSAT() bool { return true }

// EmitUnsatNonStrict reports whether a run emits the nonstrict-UNSAT
// witness: true exactly when SATHeuristic is false.
func (c Config) EmitUnsatNonStrict() bool { return !c.SATHeuristic }

// EmitUnsatStrict reports whether a run emits the strict-UNSAT
// witnesses: true exactly when SATHeuristic is false.
func (c Config) EmitUnsatStrict() bool { return !c.SATHeuristic }

// ActiveModeCount reports how many of {SAT, UNSAT, strict-UNSAT} are
// emitted: 1 when SATHeuristic selects SAT-only, 3 otherwise.
// EliminateEqualities (model/heuristics.go) only applies when this is
// exactly 1, mirroring create_smt_file's
// "get_SAT ^ get_UNSAT ^ get_strict" guard.
func (c Config) ActiveModeCount() int {
	if c.SATHeuristic {
		return 1
	}
	return 3
}

// Validate rejects a malformed configuration before any constraint
// generation begins: an empty/unrecognized theorem name or a negative
// degree knob.
func (c Config) Validate() error {
	switch c.TheoremName {
	case "farkas", "handelman", "putinar", "auto":
	default:
		return fmt.Errorf("%w: unrecognized theorem name %q", ErrMalformed, c.TheoremName)
	}
	for name, d := range map[string]int{
		"degree_of_sat":             c.DegreeOfSat,
		"degree_of_nonstrict_unsat": c.DegreeOfNonstrictUnsat,
		"degree_of_strict_unsat":    c.DegreeOfStrictUnsat,
		"max_d_of_strict":           c.MaxDOfStrict,
	} {
		if d < 0 {
			return fmt.Errorf("%w: %s must be non-negative, got %d", ErrMalformed, name, d)
		}
	}
	return nil
}
