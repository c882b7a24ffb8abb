package command

import (
	"context"
	"time"

	"github.com/go-logr/logr"
	"github.com/pkg/errors"

	"github.com/torrust/tracker-deployer/internal/clock"
	"github.com/torrust/tracker-deployer/internal/environment"
	"github.com/torrust/tracker-deployer/internal/environment/repository"
	"github.com/torrust/tracker-deployer/internal/remoteaction"
	"github.com/torrust/tracker-deployer/internal/sshtransport"
	"github.com/torrust/tracker-deployer/internal/step"
	"github.com/torrust/tracker-deployer/internal/trace"
	"github.com/torrust/tracker-deployer/internal/valueobject"
)

// RunHandler runs the run command: Released -> Running -> (compose
// stack started, tracker endpoints verified reachable) -> Running.
type RunHandler struct {
	Repo      *repository.Repository
	Clock     clock.Clock
	Logger    logr.Logger
	DeployDir string
	Trace     *trace.RunTraceWriter

	TrackerAPIPort   int
	HTTPTrackerPorts []int
	LocalIP          string
	Domain           *valueobject.DomainName

	NewSSHClient func(host string, port int, user, privateKeyPath string) sshtransport.Client
}

func (h *RunHandler) deployDir() string {
	if h.DeployDir != "" {
		return h.DeployDir
	}
	return defaultReleaseDeployDir
}

func (h *RunHandler) newSSHClient(host string, port int, user, privateKeyPath string) sshtransport.Client {
	if h.NewSSHClient != nil {
		return h.NewSSHClient(host, port, user, privateKeyPath)
	}
	return sshtransport.NewTransport(host, port, user, privateKeyPath)
}

// Run executes the run command for the named environment.
func (h *RunHandler) Run(ctx context.Context, name valueobject.EnvironmentName) error {
	startedAt := h.Clock.Now()

	loaded, err := h.Repo.Load(name)
	if err != nil {
		return err
	}
	released, err := environment.TryIntoReleased(loaded)
	if err != nil {
		return err
	}

	running := released.StartRunning(h.Logger)
	if err := h.Repo.Save(name, running.ToAny()); err != nil {
		return err
	}

	fail := func(failedStep string, cause error) error {
		return h.fail(name, running, startedAt, failedStep, cause)
	}

	fields := running.EnvironmentFields
	if fields.InstanceIP == nil {
		return fail("start_services", errors.New("environment has no instance_ip recorded"))
	}

	sshClient := h.newSSHClient(*fields.InstanceIP, fields.SSHPort, fields.SSHCredentials.Username, fields.SSHCredentials.PrivateKeyPath)

	if err := (step.StartServices{SSH: sshClient, DeployDir: h.deployDir()}).Run(h.Logger); err != nil {
		return fail("start_services", err)
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
	validateRunning := step.ValidateRunningServices{Actions: validators}
	if err := validateRunning.Run(ctx, h.Logger, *fields.InstanceIP); err != nil {
		return fail("validate_running_services", err)
	}

	return h.Repo.Save(name, running.ToAny())
}

func (h *RunHandler) fail(name valueobject.EnvironmentName, running environment.Running, startedAt time.Time, failedStep string, cause error) error {
	traceableCause := asTraceable(cause)
	base := buildBaseFailureContext(h.Clock, startedAt, traceableCause)

	tracePath, traceErr := h.Trace.Write(base, traceableCause)
	if traceErr == nil {
		base = withTracePath(base, tracePath)
	}

	failed := running.Fail(h.Logger, failedStep, base)
	_ = h.Repo.Save(name, failed.ToAny())

	return &HandlerError{Command: "run", FailedStep: failedStep, TracePath: tracePath, Cause: traceableCause}
}
