// Command polyhorn drives config → model → smt → solverdriver for a
// system registered by a front-end parser. The parser itself is an
// external collaborator: this binary only wires together a Frontend
// function, the PositiveModel, and the solver.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ChatterjeeGroup-ISTA/PolyHorn/config"
	"github.com/ChatterjeeGroup-ISTA/PolyHorn/internal/log"
	"github.com/ChatterjeeGroup-ISTA/PolyHorn/model"
	"github.com/ChatterjeeGroup-ISTA/PolyHorn/solverdriver"
)

// Frontend populates m from the contents of an input file, matching
// original_source/src/main.py's execute_smt2/execute_readable
// parser_method parameter. The real SMT2/readable-syntax parsers live
// outside this module; this type lets a caller plug one in.
type Frontend func(m *model.PositiveModel, input string) error

func loadConfig(path string) (config.Config, error) {
	cfg := config.Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("cmd/polyhorn: read config %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return config.Config{}, fmt.Errorf("cmd/polyhorn: parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Run loads configPath, parses inputPath through frontend, and runs
// the resulting model on the configured solver, returning the
// solver's verdict and model assignment — the Go shape of
// original_source/src/main.py's execute.
func Run(configPath, inputPath string, frontend Frontend) (string, map[string]string, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return "", nil, err
	}
	if err := cfg.Validate(); err != nil {
		return "", nil, err
	}

	m := model.New(cfg)
	input, err := os.ReadFile(inputPath)
	if err != nil {
		return "", nil, fmt.Errorf("cmd/polyhorn: read input %s: %w", inputPath, err)
	}
	if err := frontend(m, string(input)); err != nil {
		return "", nil, fmt.Errorf("cmd/polyhorn: parse input %s: %w", inputPath, err)
	}

	binPath, err := solverdriver.Locate(cfg)
	if err != nil {
		log.Logger().Warn().Err(err).Msg("solver not installed, reporting unknown")
		return "unknown", map[string]string{}, nil
	}
	drv := solverdriver.New(binPath, cfg.OutputPath)
	drv.Timeout = 30 * time.Second

	status, values, err := m.RunOnSolver(context.Background(), drv)
	if err != nil {
		return "", nil, err
	}
	return status.String(), values, nil
}

func main() {
	configPath := flag.String("config", "polyhorn.json", "path to the PolyHorn JSON configuration file")
	inputPath := flag.String("input", "", "path to the input system (SMT2 or readable syntax)")
	flag.Parse()

	if *inputPath == "" {
		fmt.Fprintln(os.Stderr, "polyhorn: -input is required; the SMT2/readable-syntax parser is supplied by a Frontend, not this binary")
		os.Exit(2)
	}

	fmt.Fprintln(os.Stderr, "polyhorn: no Frontend wired into this binary; link a package that calls cmd/polyhorn.Run with a parser")
	_ = configPath
	os.Exit(1)
}
