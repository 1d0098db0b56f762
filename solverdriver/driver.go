package solverdriver

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ChatterjeeGroup-ISTA/PolyHorn/internal/log"
	"github.com/ChatterjeeGroup-ISTA/PolyHorn/smt"
)

// Driver invokes a located solver binary against an encoded SMT-LIB2
// script file, enforcing Timeout as a wall-clock bound and always
// removing the scoped script file on exit.
type Driver struct {
	BinaryPath string
	ScriptPath string
	Timeout    time.Duration
}

// New returns a Driver for the binary Locate resolved, writing its
// scoped scripts to scriptPath (the configured output_path).
func New(binaryPath, scriptPath string) *Driver {
	return &Driver{BinaryPath: binaryPath, ScriptPath: scriptPath}
}

func (d *Driver) writeScript(body string) error {
	if err := os.WriteFile(d.ScriptPath, []byte(body), 0o644); err != nil {
		return fmt.Errorf("solverdriver: write script %s: %w", d.ScriptPath, err)
	}
	return nil
}

// runProcess launches the binary against d.ScriptPath and waits for it
// to exit or ctx to be cancelled, whichever comes first — one goroutine
// waits on the subprocess, one watches ctx.Done() and kills the
// process group, the same errgroup.WithContext shape
// backend/fflonk/bn254/prove.go uses to race a pipeline stage against
// cancellation.
func (d *Driver) runProcess(ctx context.Context, extraArgs ...string) (string, error) {
	args := append(append([]string(nil), extraArgs...), d.ScriptPath)
	cmd := exec.Command(d.BinaryPath, args...)
	cmd.SysProcAttr = newProcessGroupAttr()

	var output []byte
	var runErr error

	g, gctx := errgroup.WithContext(ctx)
	done := make(chan struct{})

	g.Go(func() error {
		output, runErr = cmd.CombinedOutput()
		close(done)
		return runErr
	})
	g.Go(func() error {
		select {
		case <-gctx.Done():
			if cmd.Process != nil {
				killProcessGroup(cmd.Process.Pid)
			}
			return gctx.Err()
		case <-done:
			return nil
		}
	})

	_ = g.Wait()
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	return string(output), runErr
}

// Run writes the encoded script, invokes the solver, and parses its
// response with smt.ParseResult, which keeps every (name value)
// binding it reads; names are not checked against the template
// variables. A failure to write the script is returned as an error. A
// killed or crashed subprocess is
// reported through smt.Unknown rather than a Go error; the script
// file is removed on every exit path.
func (d *Driver) Run(ctx context.Context, script smt.Script) (smt.Result, error) {
	body := smt.Encode(script)
	if err := d.writeScript(body); err != nil {
		return smt.Result{}, err
	}
	defer os.Remove(d.ScriptPath)

	if d.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.Timeout)
		defer cancel()
	}

	out, err := d.runProcess(ctx)
	if err != nil {
		log.Logger().Warn().Err(err).Str("scriptPath", d.ScriptPath).Msg("solver process did not complete")
		return smt.Result{Status: smt.Unknown, Model: map[string]string{}}, nil
	}
	return smt.ParseResult(out), nil
}

// RunUnsatCoreQuery writes an unsat-core variant of script (options +
// trailer per smt.EncodeUnsatCoreQuery) and returns the raw solver
// output for the caller to split into status/core, matching
// core_iteration's "(set-option :produce-unsat-cores true)" +
// "(check-sat)(get-unsat-core)" wrapping.
func (d *Driver) RunUnsatCoreQuery(ctx context.Context, script smt.Script) (string, error) {
	body := smt.EncodeUnsatCoreQuery(script)
	if err := d.writeScript(body); err != nil {
		return "", err
	}
	defer os.Remove(d.ScriptPath)

	if d.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.Timeout)
		defer cancel()
	}
	out, err := d.runProcess(ctx)
	if err != nil {
		log.Logger().Warn().Err(err).Str("scriptPath", d.ScriptPath).Msg("solver process did not complete during unsat-core query")
		return "", nil
	}
	return out, nil
}
