//go:build windows

package solverdriver

import (
	"os"
	"syscall"
)

func newProcessGroupAttr() *syscall.SysProcAttr {
	return nil
}

func killProcessGroup(pid int) {
	if p, err := os.FindProcess(pid); err == nil {
		_ = p.Kill()
	}
}
