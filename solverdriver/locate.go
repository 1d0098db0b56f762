// Package solverdriver locates an SMT solver binary and runs it
// against an encoded script, enforcing a wall-clock bound and cleaning
// up the scoped script file on every exit path.
package solverdriver

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/ChatterjeeGroup-ISTA/PolyHorn/config"
)

// ErrSolverUnavailable is returned by Locate when none of a solver's
// candidate paths resolve to an executable, mirroring
// Constant.AvailabilityDict returning None.
var ErrSolverUnavailable = fmt.Errorf("solverdriver: no available solver binary")

// packagedSolverDir is where a bundled solver binary would live
// relative to this package, mirroring Constant.ABS_PATH's
// os.path.join(ABS_PATH, '..', '..', 'solver', name) fallback.
const packagedSolverDir = "solver"

func candidatePaths(name config.SolverName) []string {
	switch name {
	case config.SolverZ3:
		return []string{"z3", filepath.Join(packagedSolverDir, "z3")}
	case config.SolverMathSAT:
		return []string{"mathsat", filepath.Join(packagedSolverDir, "mathsat")}
	default:
		return nil
	}
}

// Locate implements the three-tier lookup: a configured SolverPath
// override, then the name on PATH, then the packaged ./solver/<name>
// fallback from original_source/src/polyhorn/Constant.py's
// AvailabilityDict, returning the first hit. The PATH tier uses
// exec.LookPath; the configured and packaged tiers accept any existing
// file that is not a directory, without checking that it is
// executable. The "default" solver name has no binary of its own and
// always fails to locate via the PATH/packaged tiers — it is only
// meaningful as an option-preamble selector, unless SolverPath names
// an executable directly.
func Locate(cfg config.Config) (string, error) {
	if cfg.SolverPath != "" {
		if info, err := os.Stat(cfg.SolverPath); err == nil && !info.IsDir() {
			return cfg.SolverPath, nil
		}
		return "", fmt.Errorf("%w: configured solver_path %q is not executable", ErrSolverUnavailable, cfg.SolverPath)
	}

	for _, candidate := range candidatePaths(cfg.SolverName) {
		if path, err := exec.LookPath(candidate); err == nil {
			return path, nil
		}
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrSolverUnavailable, cfg.SolverName)
}
