package command

import (
	"path/filepath"
	"time"

	"github.com/go-logr/logr"

	"github.com/torrust/tracker-deployer/internal/clock"
	"github.com/torrust/tracker-deployer/internal/environment"
	"github.com/torrust/tracker-deployer/internal/environment/repository"
	"github.com/torrust/tracker-deployer/internal/externaltool/ansible"
	"github.com/torrust/tracker-deployer/internal/trace"
	"github.com/torrust/tracker-deployer/internal/valueobject"
)

// ConfigureHandler runs the configure command: Provisioned ->
// Configuring -> (container runtime installed, orchestrator
// installed, firewall configured) -> Configured.
type ConfigureHandler struct {
	Repo   *repository.Repository
	Clock  clock.Clock
	Logger logr.Logger
	Trace  *trace.ConfigureTraceWriter

	// SkipDockerInstall and SkipFirewall let the configure command run
	// inside a container test harness where a nested container runtime
	// cannot be installed and iptables rules cannot be changed. Set from
	// TORRUST_TD_SKIP_DOCKER_INSTALL_IN_CONTAINER /
	// TORRUST_TD_SKIP_FIREWALL_IN_CONTAINER by the CLI.
	SkipDockerInstall bool
	SkipFirewall      bool
}

const (
	installContainerRuntimePlaybook = "install-docker.yml"
	installOrchestratorPlaybook     = "install-docker-compose.yml"
	firewallPlaybook                = "configure-firewall.yml"
	ansibleInventoryFile            = "inventory.yml"
)

// Run executes the configure command for the named environment.
func (h *ConfigureHandler) Run(name valueobject.EnvironmentName) error {
	startedAt := h.Clock.Now()

	loaded, err := h.Repo.Load(name)
	if err != nil {
		return err
	}
	provisioned, err := environment.TryIntoProvisioned(loaded)
	if err != nil {
		return err
	}

	configuring := provisioned.StartConfiguring(h.Logger)
	if err := h.Repo.Save(name, configuring.ToAny()); err != nil {
		return err
	}

	fail := func(failedStep string, cause error) error {
		return h.fail(name, configuring, startedAt, failedStep, cause)
	}

	ansibleBuildDir := filepath.Join(configuring.BuildDir, "ansible")
	client := ansible.New(ansibleBuildDir)

	if h.SkipDockerInstall {
		h.Logger.Info("skipping container runtime and orchestrator install", "reason", "TORRUST_TD_SKIP_DOCKER_INSTALL_IN_CONTAINER")
	} else {
		if err := client.RunPlaybook(installContainerRuntimePlaybook, ansibleInventoryFile); err != nil {
			return fail("install_docker", err)
		}
		if err := client.RunPlaybook(installOrchestratorPlaybook, ansibleInventoryFile); err != nil {
			return fail("install_docker_compose", err)
		}
	}

	if h.SkipFirewall {
		h.Logger.Info("skipping firewall configuration", "reason", "TORRUST_TD_SKIP_FIREWALL_IN_CONTAINER")
	} else {
		if err := client.RunPlaybook(firewallPlaybook, ansibleInventoryFile); err != nil {
			return fail("configure_firewall", err)
		}
	}

	configured := configuring.Configured(h.Logger)
	return h.Repo.Save(name, configured.ToAny())
}

func (h *ConfigureHandler) fail(name valueobject.EnvironmentName, configuring environment.Configuring, startedAt time.Time, failedStep string, cause error) error {
	traceableCause := asTraceable(cause)
	base := buildBaseFailureContext(h.Clock, startedAt, traceableCause)

	tracePath, traceErr := h.Trace.Write(base, traceableCause)
	if traceErr == nil {
		base = withTracePath(base, tracePath)
	}

	failed := configuring.Fail(h.Logger, failedStep, base)
	_ = h.Repo.Save(name, failed.ToAny())

	return &HandlerError{Command: "configure", FailedStep: failedStep, TracePath: tracePath, Cause: traceableCause}
}
