//go:build !windows

package solverdriver

import "syscall"

// newProcessGroupAttr puts the solver subprocess in its own process
// group so killProcessGroup can terminate it and any children it
// spawns in one signal.
func newProcessGroupAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setpgid: true}
}

func killProcessGroup(pid int) {
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
