package command

import (
	"context"

	"github.com/go-logr/logr"
	"github.com/pkg/errors"

	"github.com/torrust/tracker-deployer/internal/environment/repository"
	"github.com/torrust/tracker-deployer/internal/remoteaction"
	"github.com/torrust/tracker-deployer/internal/sshtransport"
	"github.com/torrust/tracker-deployer/internal/step"
	"github.com/torrust/tracker-deployer/internal/valueobject"
)

// TestHandler runs every remote-action validator against a Running
// environment's instance, without touching its persisted state: it is
// a read-only health report, not a lifecycle transition.
type TestHandler struct {
	Repo   *repository.Repository
	Logger logr.Logger

	DeployDir        string
	TrackerAPIPort   int
	HTTPTrackerPorts []int
	LocalIP          string
	Domain           *valueobject.DomainName

	NewSSHClient func(host string, port int, user, privateKeyPath string) sshtransport.Client
}

func (h *TestHandler) deployDir() string {
	if h.DeployDir != "" {
		return h.DeployDir
	}
	return defaultReleaseDeployDir
}

func (h *TestHandler) newSSHClient(host string, port int, user, privateKeyPath string) sshtransport.Client {
	if h.NewSSHClient != nil {
		return h.NewSSHClient(host, port, user, privateKeyPath)
	}
	return sshtransport.NewTransport(host, port, user, privateKeyPath)
}

// Run validates cloud-init, the container runtime, the container
// orchestrator, and the running services (both internal and external)
// for the named environment.
func (h *TestHandler) Run(ctx context.Context, name valueobject.EnvironmentName) error {
	loaded, err := h.Repo.Load(name)
	if err != nil {
		return err
	}
	if loaded.Fields.InstanceIP == nil {
		return errors.Errorf("environment %s has no instance_ip recorded", name.String())
	}
	ip := *loaded.Fields.InstanceIP

	sshClient := h.newSSHClient(ip, loaded.Fields.SSHPort, loaded.Fields.SSHCredentials.Username, loaded.Fields.SSHCredentials.PrivateKeyPath)

	if err := (step.ValidateCloudInit{Action: &remoteaction.CloudInitValidator{SSH: sshClient}}).Run(ctx, h.Logger, ip); err != nil {
		return err
	}
	if err := (step.ValidateContainerRuntime{Action: &remoteaction.ContainerRuntimeValidator{SSH: sshClient}}).Run(ctx, h.Logger, ip); err != nil {
		return err
	}
	if err := (step.ValidateContainerOrchestrator{Action: &remoteaction.ContainerOrchestratorValidator{SSH: sshClient}}).Run(ctx, h.Logger, ip); err != nil {
		return err
	}

	validators := []remoteaction.RemoteAction{
		&remoteaction.InternalRunningServicesValidator{SSH: sshClient, DeployDir: h.deployDir()},
		&remoteaction.ExternalRunningServicesValidator{
			TrackerAPIPort:   h.TrackerAPIPort,
			HTTPTrackerPorts: h.HTTPTrackerPorts,
			LocalIP:          h.LocalIP,
			Domain:           h.Domain,
		},
	}
	return (step.ValidateRunningServices{Actions: validators}).Run(ctx, h.Logger, ip)
}
