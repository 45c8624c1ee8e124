package process

import (
	"context"
	"os/exec"
	"time"
)

// WaitDelay bounds how long Wait blocks on pipes after the group is killed.
const WaitDelay = 5 * time.Second

// CommandContext is exec.CommandContext for a command that runs in its own
// process group. When ctx is done the whole group is killed, then the
// leader.
func CommandContext(ctx context.Context, name string, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, name, args...) // #nosec G204 -- callers pass resolved binaries
	Isolate(cmd)
	cmd.Cancel = func() error {
		KillProcessGroup(cmd.Process.Pid)
		return cmd.Process.Kill()
	}
	cmd.WaitDelay = WaitDelay
	return cmd
}
