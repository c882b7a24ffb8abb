package remoteaction

import (
	"context"
	"strings"

	"github.com/torrust/tracker-deployer/internal/sshtransport"
)

// ContainerOrchestratorValidator confirms the docker compose plugin is
// installed and can parse a minimal compose file. The functional
// check is best-effort: if the test file cannot be created or
// validated the validator does not fail, matching the original's
// "don't fail, just skip" stance for a non-essential probe.
type ContainerOrchestratorValidator struct {
	SSH sshtransport.Client
}

const composeTestFile = "/tmp/test-docker-compose.yml"

func (v *ContainerOrchestratorValidator) Name() string { return "docker-compose-validation" }

func (v *ContainerOrchestratorValidator) Execute(ctx context.Context, ip string) error {
	version, err := v.SSH.Execute("docker compose version")
	if err != nil {
		return &RemoteActionError{Action: v.Name(), Kind: KindSSHCommandFailed, Detail: "docker compose version", Cause: err}
	}
	if !strings.Contains(strings.ToLower(version), "compose") {
		return &RemoteActionError{Action: v.Name(), Kind: KindValidationFailed, Detail: "unexpected docker compose version output: " + strings.TrimSpace(version)}
	}

	created := v.SSH.CheckCommand("printf 'services:\\n  test:\\n    image: hello-world\\n' > " + composeTestFile)
	if created {
		_ = v.SSH.CheckCommand("cd /tmp && docker compose -f test-docker-compose.yml config")
		_ = v.SSH.CheckCommand("rm -f " + composeTestFile)
	}

	return nil
}
