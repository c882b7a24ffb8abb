//go:build windows

package filelock

import (
	"os/exec"
	"strconv"
	"strings"
)

// isProcessAlive shells out to tasklist, since Windows has no signal-0
// equivalent accessible without extra syscall plumbing.
func isProcessAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	out, err := exec.Command("tasklist", "/FI", "PID eq "+strconv.Itoa(pid)).Output()
	if err != nil {
		return false
	}
	return strings.Contains(string(out), strconv.Itoa(pid))
}
