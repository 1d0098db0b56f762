package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ChatterjeeGroup-ISTA/PolyHorn/model"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunRejectsMalformedConfig(t *testing.T) {
	dir := t.TempDir()
	cfgJSON, err := json.Marshal(map[string]any{"theorem_name": "bogus"})
	require.NoError(t, err)
	configPath := writeFile(t, dir, "config.json", string(cfgJSON))
	inputPath := writeFile(t, dir, "input.txt", "")

	_, _, err = Run(configPath, inputPath, func(*model.PositiveModel, string) error { return nil })
	require.Error(t, err)
}

func TestRunReportsUnknownWhenSolverMissing(t *testing.T) {
	dir := t.TempDir()
	cfgJSON, err := json.Marshal(map[string]any{
		"theorem_name": "auto",
		"solver_name":  "nonexistent-solver-binary-xyz",
	})
	require.NoError(t, err)
	configPath := writeFile(t, dir, "config.json", string(cfgJSON))
	inputPath := writeFile(t, dir, "input.txt", "")

	status, model, err := Run(configPath, inputPath, func(*model.PositiveModel, string) error { return nil })
	require.NoError(t, err)
	require.Equal(t, "unknown", status)
	require.Empty(t, model)
}
