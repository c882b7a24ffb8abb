package remoteaction

import (
	"context"
	"strings"

	"github.com/torrust/tracker-deployer/internal/sshtransport"
)

// CloudInitValidator confirms cloud-init finished successfully: the
// "done" status line plus the boot-finished marker file, both checked
// so a crashed or still-running cloud-init is never mistaken for
// success.
type CloudInitValidator struct {
	SSH sshtransport.Client
}

func (v *CloudInitValidator) Name() string { return "cloud-init-validation" }

func (v *CloudInitValidator) Execute(ctx context.Context, ip string) error {
	status, err := v.SSH.Execute("cloud-init status")
	if err != nil {
		return &RemoteActionError{Action: v.Name(), Kind: KindSSHCommandFailed, Detail: "cloud-init status", Cause: err}
	}
	if !strings.Contains(status, "status: done") {
		return &RemoteActionError{Action: v.Name(), Kind: KindValidationFailed, Detail: "cloud-init status is not 'done': " + strings.TrimSpace(status)}
	}

	if !v.SSH.CheckCommand("test -f /var/lib/cloud/instance/boot-finished") {
		return &RemoteActionError{Action: v.Name(), Kind: KindValidationFailed, Detail: "boot-finished marker file not found"}
	}

	return nil
}
