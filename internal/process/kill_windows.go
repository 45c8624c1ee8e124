//go:build windows

package process

import (
	"os/exec"
	"strconv"
	"syscall"
)

// Isolate makes cmd the root of a new process group.
func Isolate(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.CreationFlags |= syscall.CREATE_NEW_PROCESS_GROUP
}

// KillProcessGroup terminates pid and its descendants with taskkill /T.
// Errors are ignored: the tree may already be gone.
func KillProcessGroup(pid int) {
	if pid <= 0 {
		return
	}
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run() // #nosec G204 -- fixed binary, numeric pid
}
