//go:build !linux

package childproc

import "os/exec"

// setPdeathsig is a no-op on platforms without a parent-death signal.
func setPdeathsig(cmd *exec.Cmd) {}
