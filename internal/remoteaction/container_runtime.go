package remoteaction

import (
	"context"
	"strings"

	"github.com/torrust/tracker-deployer/internal/sshtransport"
)

// ContainerRuntimeValidator confirms docker is installed. It also
// probes the daemon status, but a stopped daemon is neither treated as
// fatal nor logged or reported: the docker binary being present is
// the only hard requirement here.
type ContainerRuntimeValidator struct {
	SSH sshtransport.Client
}

func (v *ContainerRuntimeValidator) Name() string { return "docker-validation" }

func (v *ContainerRuntimeValidator) Execute(ctx context.Context, ip string) error {
	version, err := v.SSH.Execute("docker --version")
	if err != nil {
		return &RemoteActionError{Action: v.Name(), Kind: KindSSHCommandFailed, Detail: "docker --version", Cause: err}
	}
	if !strings.Contains(strings.ToLower(version), "docker") {
		return &RemoteActionError{Action: v.Name(), Kind: KindValidationFailed, Detail: "unexpected docker --version output: " + strings.TrimSpace(version)}
	}

	// The daemon check's result is discarded: a dormant daemon does not
	// fail validation and is not surfaced to the caller.
	_ = v.SSH.CheckCommand("sudo systemctl is-active docker")

	return nil
}
