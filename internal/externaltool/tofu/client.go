// Package tofu wraps the tofu CLI as a child process: init, validate,
// plan, apply, destroy and the output -json instance info it produces
// after apply.
package tofu

import (
	"bytes"
	"encoding/json"
	"os/exec"

	"github.com/pkg/errors"

	"github.com/torrust/tracker-deployer/internal/externaltool"
)

var errNoInstanceIPOutput = errors.New("tofu output is missing the instance_ip variable")

// Client runs tofu against a fixed working directory, the rendered
// module under {build_dir}/tofu.
type Client struct {
	WorkDir string
}

// New returns a Client rooted at workDir.
func New(workDir string) *Client {
	return &Client{WorkDir: workDir}
}

func (c *Client) run(args ...string) (string, error) {
	cmd := exec.Command("tofu", args...)
	cmd.Dir = c.WorkDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		return stdout.String(), &externaltool.ExecutionError{
			Tool:     "tofu",
			Args:     args,
			Stdout:   stdout.String(),
			Stderr:   stderr.String(),
			ExitCode: exitCode,
			Cause:    err,
		}
	}

	return stdout.String(), nil
}

// Init runs "tofu init".
func (c *Client) Init() error {
	_, err := c.run("init")
	return err
}

// Validate runs "tofu validate".
func (c *Client) Validate() error {
	_, err := c.run("validate")
	return err
}

// Plan runs "tofu plan" with the given extra arguments.
func (c *Client) Plan(args []string) error {
	_, err := c.run(append([]string{"plan"}, args...)...)
	return err
}

// Apply runs "tofu apply", optionally with -auto-approve.
func (c *Client) Apply(autoApprove bool, args []string) error {
	full := []string{"apply"}
	if autoApprove {
		full = append(full, "-auto-approve")
	}
	full = append(full, args...)
	_, err := c.run(full...)
	return err
}

// Destroy runs "tofu destroy", optionally with -auto-approve.
func (c *Client) Destroy(autoApprove bool, args []string) error {
	full := []string{"destroy"}
	if autoApprove {
		full = append(full, "-auto-approve")
	}
	full = append(full, args...)
	_, err := c.run(full...)
	return err
}

// InstanceInfo is the subset of "tofu output -json" the deployer
// needs once the instance exists: the VM's image, IP address, name
// and lifecycle status.
type InstanceInfo struct {
	Image     string
	IPAddress string
	Name      string
	Status    string
}

type outputValue struct {
	Value string `json:"value"`
}

// Output runs "tofu output -json" and parses the instance_image,
// instance_ip, instance_name and instance_status output variables
// into an InstanceInfo. Only instance_ip is required; the rest
// default to the empty string when the module doesn't declare them.
func (c *Client) Output() (InstanceInfo, error) {
	raw, err := c.run("output", "-json")
	if err != nil {
		return InstanceInfo{}, err
	}

	var outputs map[string]outputValue
	if err := json.Unmarshal([]byte(raw), &outputs); err != nil {
		return InstanceInfo{}, &externaltool.ExecutionError{
			Tool:   "tofu",
			Args:   []string{"output", "-json"},
			Stdout: raw,
			Cause:  err,
		}
	}

	ip, ok := outputs["instance_ip"]
	if !ok {
		return InstanceInfo{}, &externaltool.ExecutionError{
			Tool:   "tofu",
			Args:   []string{"output", "-json"},
			Stdout: raw,
			Cause:  errNoInstanceIPOutput,
		}
	}

	return InstanceInfo{
		Image:     outputs["instance_image"].Value,
		IPAddress: ip.Value,
		Name:      outputs["instance_name"].Value,
		Status:    outputs["instance_status"].Value,
	}, nil
}
