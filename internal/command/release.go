package command

import (
	"os"
	"path/filepath"
	"time"

	"github.com/go-logr/logr"
	"github.com/pkg/errors"

	"github.com/torrust/tracker-deployer/internal/clock"
	"github.com/torrust/tracker-deployer/internal/environment"
	"github.com/torrust/tracker-deployer/internal/environment/repository"
	"github.com/torrust/tracker-deployer/internal/sshtransport"
	"github.com/torrust/tracker-deployer/internal/step"
	"github.com/torrust/tracker-deployer/internal/trace"
	"github.com/torrust/tracker-deployer/internal/valueobject"
)

const defaultReleaseDeployDir = "/opt/torrust"

// ReleaseHandler runs the release command: Configured -> Releasing ->
// (compose artifacts copied to the instance) -> Released.
type ReleaseHandler struct {
	Repo         *repository.Repository
	Clock        clock.Clock
	Logger       logr.Logger
	TemplatesDir string
	DeployDir    string
	Trace        *trace.ReleaseTraceWriter

	NewSSHClient func(host string, port int, user, privateKeyPath string) sshtransport.Client
}

func (h *ReleaseHandler) deployDir() string {
	if h.DeployDir != "" {
		return h.DeployDir
	}
	return defaultReleaseDeployDir
}

func (h *ReleaseHandler) newSSHClient(host string, port int, user, privateKeyPath string) sshtransport.Client {
	if h.NewSSHClient != nil {
		return h.NewSSHClient(host, port, user, privateKeyPath)
	}
	return sshtransport.NewTransport(host, port, user, privateKeyPath)
}

// Run executes the release command for the named environment.
func (h *ReleaseHandler) Run(name valueobject.EnvironmentName) error {
	startedAt := h.Clock.Now()

	loaded, err := h.Repo.Load(name)
	if err != nil {
		return err
	}
	configured, err := environment.TryIntoConfigured(loaded)
	if err != nil {
		return err
	}

	releasing := configured.StartReleasing(h.Logger)
	if err := h.Repo.Save(name, releasing.ToAny()); err != nil {
		return err
	}

	fail := func(failedStep string, cause error) error {
		return h.fail(name, releasing, startedAt, failedStep, cause)
	}

	fields := releasing.EnvironmentFields
	if fields.InstanceIP == nil {
		return fail("release_compose_artifacts", errors.New("environment has no instance_ip recorded"))
	}

	artifacts, err := h.loadReleaseArtifacts()
	if err != nil {
		return fail("release_compose_artifacts", err)
	}

	sshClient := h.newSSHClient(*fields.InstanceIP, fields.SSHPort, fields.SSHCredentials.Username, fields.SSHCredentials.PrivateKeyPath)
	releaseStep := step.ReleaseComposeArtifacts{SSH: sshClient, DeployDir: h.deployDir(), Artifacts: artifacts}
	if err := releaseStep.Run(h.Logger); err != nil {
		return fail("release_compose_artifacts", err)
	}

	released := releasing.Released(h.Logger)
	return h.Repo.Save(name, released.ToAny())
}

// loadReleaseArtifacts reads each file directly in {TemplatesDir}/release
// verbatim into a name-to-content map; subdirectories are skipped. This
// release family has no dynamic tokens, only files identical across
// environments.
func (h *ReleaseHandler) loadReleaseArtifacts() (map[string]string, error) {
	releaseDir := filepath.Join(h.TemplatesDir, "release")
	entries, err := os.ReadDir(releaseDir)
	if err != nil {
		return nil, errors.Wrapf(err, "reading release templates directory %s", releaseDir)
	}

	artifacts := make(map[string]string, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		content, err := os.ReadFile(filepath.Join(releaseDir, entry.Name()))
		if err != nil {
			return nil, errors.Wrapf(err, "reading release artifact %s", entry.Name())
		}
		artifacts[entry.Name()] = string(content)
	}
	return artifacts, nil
}

func (h *ReleaseHandler) fail(name valueobject.EnvironmentName, releasing environment.Releasing, startedAt time.Time, failedStep string, cause error) error {
	traceableCause := asTraceable(cause)
	base := buildBaseFailureContext(h.Clock, startedAt, traceableCause)

	tracePath, traceErr := h.Trace.Write(base, traceableCause)
	if traceErr == nil {
		base = withTracePath(base, tracePath)
	}

	failed := releasing.Fail(h.Logger, failedStep, base)
	_ = h.Repo.Save(name, failed.ToAny())

	return &HandlerError{Command: "release", FailedStep: failedStep, TracePath: tracePath, Cause: traceableCause}
}
