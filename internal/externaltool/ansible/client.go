// Package ansible wraps the ansible-playbook CLI as a child process.
package ansible

import (
	"bytes"
	"os/exec"

	"github.com/torrust/tracker-deployer/internal/externaltool"
)

// Client runs ansible-playbook against a fixed working directory, the
// rendered tree under {build_dir}/ansible.
type Client struct {
	WorkDir string
}

// New returns a Client rooted at workDir.
func New(workDir string) *Client {
	return &Client{WorkDir: workDir}
}

// RunPlaybook runs "ansible-playbook <playbook> -i <inventory>".
func (c *Client) RunPlaybook(playbook, inventory string) error {
	cmd := exec.Command("ansible-playbook", playbook, "-i", inventory)
	cmd.Dir = c.WorkDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		return &externaltool.ExecutionError{
			Tool:     "ansible-playbook",
			Args:     []string{playbook, "-i", inventory},
			Stdout:   stdout.String(),
			Stderr:   stderr.String(),
			ExitCode: exitCode,
			Cause:    err,
		}
	}

	return nil
}
