package command_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/go-logr/logr"

	"github.com/torrust/tracker-deployer/internal/clock"
	"github.com/torrust/tracker-deployer/internal/command"
	"github.com/torrust/tracker-deployer/internal/config"
	"github.com/torrust/tracker-deployer/internal/environment"
	"github.com/torrust/tracker-deployer/internal/environment/repository"
	"github.com/torrust/tracker-deployer/internal/environment/state"
	"github.com/torrust/tracker-deployer/internal/sshtransport"
	"github.com/torrust/tracker-deployer/internal/template/ansible"
	"github.com/torrust/tracker-deployer/internal/template/tofu"
	"github.com/torrust/tracker-deployer/internal/trace"
	"github.com/torrust/tracker-deployer/internal/valueobject"
)

// installFakeExternalTools writes "tofu" and "ansible-playbook" shell
// scripts onto PATH. tofu prints instance_ip output JSON only when
// invoked as "output -json"; every other invocation of either tool
// succeeds silently.
func installFakeExternalTools(t *testing.T, instanceIP string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake tool scripts are POSIX shell scripts")
	}

	dir := t.TempDir()

	tofuScript := `#!/bin/sh
if [ "$1" = "output" ]; then
  cat <<EOF
{"instance_ip": {"value": "` + instanceIP + `"}}
EOF
fi
exit 0
`
	if err := os.WriteFile(filepath.Join(dir, "tofu"), []byte(tofuScript), 0o755); err != nil {
		t.Fatalf("writing fake tofu: %v", err)
	}

	ansibleScript := "#!/bin/sh\nexit 0\n"
	if err := os.WriteFile(filepath.Join(dir, "ansible-playbook"), []byte(ansibleScript), 0o755); err != nil {
		t.Fatalf("writing fake ansible-playbook: %v", err)
	}

	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

// writeTemplateFixtures writes a minimal templates tree satisfying
// both template families plus the release file family.
func writeTemplateFixtures(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	tofuDir := filepath.Join(dir, "tofu")
	if err := os.MkdirAll(tofuDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(tofuDir, "variables.tfvars.tera"), []byte(`ssh_public_key = "{{.SSHPublicKey}}"
instance_name  = "{{.InstanceName}}"
`), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	for _, name := range tofu.StaticFiles {
		if err := os.WriteFile(filepath.Join(tofuDir, name), []byte("# "+name), 0o644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}

	ansibleDir := filepath.Join(dir, "ansible")
	if err := os.MkdirAll(ansibleDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(ansibleDir, "inventory.yml.tera"), []byte(`[tracker]
{{.Host}} ansible_port={{.SSHPort}} ansible_user={{.AnsibleUser}}
`), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	if err := os.WriteFile(filepath.Join(ansibleDir, "configure-firewall.yml.tera"), []byte(`ssh_port: {{.SSHPort}}
`), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	for _, name := range ansible.StaticPlaybooks {
		if err := os.WriteFile(filepath.Join(ansibleDir, name), []byte("# "+name), 0o644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}

	releaseDir := filepath.Join(dir, "release")
	if err := os.MkdirAll(releaseDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(releaseDir, "docker-compose.yml"), []byte("services:\n  tracker:\n    image: torrust/tracker\n"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	return dir
}

func successfulMockSSH() *sshtransport.MockClient {
	return &sshtransport.MockClient{
		MockExecute:      func(cmd string) (string, error) { return "status: done\ndocker compose\n", nil },
		MockCheckCommand: func(cmd string) bool { return true },
		MockWaitForConnectivity: func(ctx context.Context, timeout time.Duration) error {
			return nil
		},
	}
}

func createTestEnvironment(t *testing.T, repo *repository.Repository, dataRoot string) (valueobject.EnvironmentName, string) {
	t.Helper()
	name, err := valueobject.NewEnvironmentName("e2e-dev")
	if err != nil {
		t.Fatalf("NewEnvironmentName: %v", err)
	}

	username, err := valueobject.NewUsername("torrust")
	if err != nil {
		t.Fatalf("NewUsername: %v", err)
	}

	keyPath := filepath.Join(dataRoot, "id_rsa.pub")
	if err := os.WriteFile(keyPath, []byte("ssh-ed25519 AAAAC3NzaC1lZDI1NTE5 test@example.com\n"), 0o600); err != nil {
		t.Fatalf("writing fixture key: %v", err)
	}

	port, err := valueobject.NewPort(22)
	if err != nil {
		t.Fatalf("NewPort: %v", err)
	}

	creds := environment.SSHCredentials{Username: username, PrivateKeyPath: filepath.Join(dataRoot, "id_rsa"), PublicKeyPath: keyPath}
	created := environment.NewCreated(name, creds, port)
	if err := repo.Save(name, created.ToAny()); err != nil {
		t.Fatalf("seeding Created state: %v", err)
	}

	return name, created.BuildDir
}

func TestCreateHandlerPersistsCreatedEnvironment(t *testing.T) {
	root := t.TempDir()
	repo := repository.New(root)
	h := &command.CreateHandler{Repo: repo, Clock: clock.NewSystemClock(), Logger: logr.Discard()}

	keyDir := t.TempDir()
	pubKeyPath := filepath.Join(keyDir, "id_rsa.pub")
	if err := os.WriteFile(pubKeyPath, []byte("ssh-ed25519 AAAA test"), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	cfg := config.CreateConfig{
		Name: "e2e-dev",
		SSH: config.SSHConfig{
			Username:       "torrust",
			PrivateKeyPath: filepath.Join(keyDir, "id_rsa"),
			PublicKeyPath:  pubKeyPath,
			Port:           22,
		},
	}

	created, err := h.Run(cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if created.Name != "e2e-dev" {
		t.Fatalf("unexpected name: %s", created.Name)
	}

	name, _ := valueobject.NewEnvironmentName("e2e-dev")
	if !repo.Exists(name) {
		t.Fatalf("expected environment to be persisted")
	}
}

func TestCreateHandlerRejectsInvalidConfig(t *testing.T) {
	root := t.TempDir()
	repo := repository.New(root)
	h := &command.CreateHandler{Repo: repo, Clock: clock.NewSystemClock(), Logger: logr.Discard()}

	if _, err := h.Run(config.CreateConfig{}); err == nil {
		t.Fatalf("expected empty config to fail validation")
	}
}

func TestProvisionHandlerHappyPath(t *testing.T) {
	const instanceIP = "10.0.0.42"
	installFakeExternalTools(t, instanceIP)

	root := t.TempDir()
	repo := repository.New(root)
	dataRoot := t.TempDir()
	name, _ := createTestEnvironment(t, repo, dataRoot)

	templatesDir := writeTemplateFixtures(t)
	tracesDir := t.TempDir()

	h := &command.ProvisionHandler{
		Repo:         repo,
		Clock:        clock.NewSystemClock(),
		Logger:       logr.Discard(),
		TemplatesDir: templatesDir,
		Trace:        &trace.ProvisionTraceWriter{Common: &trace.CommonWriter{TracesDir: tracesDir, Clock: clock.NewSystemClock()}},
		NewSSHClient: func(host string, port int, user, privateKeyPath string) sshtransport.Client {
			return successfulMockSSH()
		},
	}

	if err := h.Run(context.Background(), name); err != nil {
		t.Fatalf("Run: %v", err)
	}

	loaded, err := repo.Load(name)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.State != state.NameProvisioned {
		t.Fatalf("expected Provisioned, got %s", loaded.State)
	}
	if loaded.Fields.InstanceIP == nil || *loaded.Fields.InstanceIP != instanceIP {
		t.Fatalf("expected instance_ip %s, got %+v", instanceIP, loaded.Fields.InstanceIP)
	}

	if _, err := os.Stat(filepath.Join(loaded.Fields.BuildDir, "ansible", "inventory.yml")); err != nil {
		t.Fatalf("expected rendered inventory: %v", err)
	}
}

func TestProvisionHandlerFailureWritesTraceAndTransitionsState(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake tool scripts are POSIX shell scripts")
	}

	dir := t.TempDir()
	failingTofu := "#!/bin/sh\nexit 1\n"
	if err := os.WriteFile(filepath.Join(dir, "tofu"), []byte(failingTofu), 0o755); err != nil {
		t.Fatalf("writing fake tofu: %v", err)
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))

	root := t.TempDir()
	repo := repository.New(root)
	dataRoot := t.TempDir()
	name, _ := createTestEnvironment(t, repo, dataRoot)

	templatesDir := writeTemplateFixtures(t)
	tracesDir := t.TempDir()

	h := &command.ProvisionHandler{
		Repo:         repo,
		Clock:        clock.NewSystemClock(),
		Logger:       logr.Discard(),
		TemplatesDir: templatesDir,
		Trace:        &trace.ProvisionTraceWriter{Common: &trace.CommonWriter{TracesDir: tracesDir, Clock: clock.NewSystemClock()}},
	}

	err := h.Run(context.Background(), name)
	if err == nil {
		t.Fatalf("expected failure to propagate")
	}
	var handlerErr *command.HandlerError
	if !asHandlerError(err, &handlerErr) {
		t.Fatalf("expected *command.HandlerError, got %T: %v", err, err)
	}
	if handlerErr.FailedStep != "initialize_infrastructure" {
		t.Fatalf("expected failure at initialize_infrastructure, got %s", handlerErr.FailedStep)
	}
	if _, statErr := os.Stat(handlerErr.TracePath); statErr != nil {
		t.Fatalf("expected trace file to exist at %s: %v", handlerErr.TracePath, statErr)
	}

	loaded, err := repo.Load(name)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.State != state.NameProvisionFailed {
		t.Fatalf("expected ProvisionFailed, got %s", loaded.State)
	}
	if loaded.Failure == nil || loaded.Failure.TraceFilePath == nil {
		t.Fatalf("expected failure context with trace file path")
	}
}

// TestProvisionHandlerApplyFailureRecordsApplyInfrastructureStep pins
// the round-trip property: a quota-exceeded-style failure during
// "tofu apply" must persist failed_step = "apply_infrastructure",
// with init/validate/plan having already succeeded.
func TestProvisionHandlerApplyFailureRecordsApplyInfrastructureStep(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake tool scripts are POSIX shell scripts")
	}

	dir := t.TempDir()
	applyFailsTofu := `#!/bin/sh
if [ "$1" = "apply" ]; then
  echo "quota exceeded" >&2
  exit 1
fi
exit 0
`
	if err := os.WriteFile(filepath.Join(dir, "tofu"), []byte(applyFailsTofu), 0o755); err != nil {
		t.Fatalf("writing fake tofu: %v", err)
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))

	root := t.TempDir()
	repo := repository.New(root)
	dataRoot := t.TempDir()
	name, _ := createTestEnvironment(t, repo, dataRoot)

	templatesDir := writeTemplateFixtures(t)
	tracesDir := t.TempDir()

	h := &command.ProvisionHandler{
		Repo:         repo,
		Clock:        clock.NewSystemClock(),
		Logger:       logr.Discard(),
		TemplatesDir: templatesDir,
		Trace:        &trace.ProvisionTraceWriter{Common: &trace.CommonWriter{TracesDir: tracesDir, Clock: clock.NewSystemClock()}},
	}

	err := h.Run(context.Background(), name)
	if err == nil {
		t.Fatalf("expected failure to propagate")
	}
	var handlerErr *command.HandlerError
	if !asHandlerError(err, &handlerErr) {
		t.Fatalf("expected *command.HandlerError, got %T: %v", err, err)
	}
	if handlerErr.FailedStep != "apply_infrastructure" {
		t.Fatalf("expected failed_step apply_infrastructure, got %s", handlerErr.FailedStep)
	}

	loaded, err := repo.Load(name)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.State != state.NameProvisionFailed {
		t.Fatalf("expected ProvisionFailed, got %s", loaded.State)
	}
	if loaded.Failure == nil || loaded.Failure.FailedStep != "apply_infrastructure" {
		t.Fatalf("expected persisted failed_step apply_infrastructure, got %+v", loaded.Failure)
	}
}

func asHandlerError(err error, target **command.HandlerError) bool {
	if he, ok := err.(*command.HandlerError); ok {
		*target = he
		return true
	}
	return false
}

// seedProvisioned drives a freshly created environment straight into
// the Provisioned state with a build tree in place, so Configure/Run/
// Test handler tests do not each need to repeat the full provision
// flow.
func seedProvisioned(t *testing.T, repo *repository.Repository, dataRoot, instanceIP string) valueobject.EnvironmentName {
	t.Helper()
	name, buildDir := createTestEnvironment(t, repo, dataRoot)

	ansibleDir := filepath.Join(buildDir, "ansible")
	if err := os.MkdirAll(ansibleDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(ansibleDir, "inventory.yml"), []byte("[tracker]\n"+instanceIP+"\n"), 0o644); err != nil {
		t.Fatalf("writing inventory fixture: %v", err)
	}

	loaded, err := repo.Load(name)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	created, err := environment.TryIntoCreated(loaded)
	if err != nil {
		t.Fatalf("TryIntoCreated: %v", err)
	}
	ip, err := valueobject.NewIPAddress(instanceIP)
	if err != nil {
		t.Fatalf("NewIPAddress: %v", err)
	}
	provisioning := created.StartProvisioning(logr.Discard()).WithInstanceIP(ip)
	provisioned := provisioning.Provisioned(logr.Discard())
	if err := repo.Save(name, provisioned.ToAny()); err != nil {
		t.Fatalf("seeding Provisioned state: %v", err)
	}
	return name
}

func TestConfigureHandlerHappyPath(t *testing.T) {
	installFakeExternalTools(t, "10.0.0.42")

	root := t.TempDir()
	repo := repository.New(root)
	dataRoot := t.TempDir()
	name := seedProvisioned(t, repo, dataRoot, "10.0.0.42")

	tracesDir := t.TempDir()
	h := &command.ConfigureHandler{
		Repo:   repo,
		Clock:  clock.NewSystemClock(),
		Logger: logr.Discard(),
		Trace:  &trace.ConfigureTraceWriter{Common: &trace.CommonWriter{TracesDir: tracesDir, Clock: clock.NewSystemClock()}},
	}

	if err := h.Run(name); err != nil {
		t.Fatalf("Run: %v", err)
	}

	loaded, err := repo.Load(name)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.State != state.NameConfigured {
		t.Fatalf("expected Configured, got %s", loaded.State)
	}
}

func TestConfigureHandlerHonorsSkipFlags(t *testing.T) {
	// Deliberately do not install a fake ansible-playbook: if either
	// skip flag fails to suppress its playbook run, RunPlaybook will
	// fail to find the binary on PATH and the test fails.
	root := t.TempDir()
	repo := repository.New(root)
	dataRoot := t.TempDir()
	name := seedProvisioned(t, repo, dataRoot, "10.0.0.42")

	tracesDir := t.TempDir()
	h := &command.ConfigureHandler{
		Repo:              repo,
		Clock:             clock.NewSystemClock(),
		Logger:            logr.Discard(),
		Trace:             &trace.ConfigureTraceWriter{Common: &trace.CommonWriter{TracesDir: tracesDir, Clock: clock.NewSystemClock()}},
		SkipDockerInstall: true,
		SkipFirewall:      true,
	}

	if err := h.Run(name); err != nil {
		t.Fatalf("Run: %v", err)
	}

	loaded, err := repo.Load(name)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.State != state.NameConfigured {
		t.Fatalf("expected Configured, got %s", loaded.State)
	}
}

func TestRunHandlerHappyPath(t *testing.T) {
	installFakeExternalTools(t, "10.0.0.42")

	root := t.TempDir()
	repo := repository.New(root)
	dataRoot := t.TempDir()
	name := seedProvisioned(t, repo, dataRoot, "10.0.0.42")

	// Drive Provisioned -> Configured -> Released by hand, mirroring
	// what ConfigureHandler/ReleaseHandler would persist.
	loaded, err := repo.Load(name)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	provisioned, err := environment.TryIntoProvisioned(loaded)
	if err != nil {
		t.Fatalf("TryIntoProvisioned: %v", err)
	}
	configuring := provisioned.StartConfiguring(logr.Discard())
	configured := configuring.Configured(logr.Discard())
	releasing := configured.StartReleasing(logr.Discard())
	released := releasing.Released(logr.Discard())
	if err := repo.Save(name, released.ToAny()); err != nil {
		t.Fatalf("seeding Released state: %v", err)
	}

	tracesDir := t.TempDir()
	h := &command.RunHandler{
		Repo:   repo,
		Clock:  clock.NewSystemClock(),
		Logger: logr.Discard(),
		Trace:  &trace.RunTraceWriter{Common: &trace.CommonWriter{TracesDir: tracesDir, Clock: clock.NewSystemClock()}},
		NewSSHClient: func(host string, port int, user, privateKeyPath string) sshtransport.Client {
			return &sshtransport.MockClient{
				MockExecute: func(cmd string) (string, error) {
					return "NAME   STATUS\ntracker   Up 2 minutes\n", nil
				},
				MockCheckCommand: func(cmd string) bool { return true },
			}
		},
	}

	err = h.Run(context.Background(), name)
	// ExternalRunningServicesValidator dials a real HTTP endpoint; with
	// no tracker listening this call is expected to fail, so only the
	// state-machine plumbing up to that point is asserted here.
	loadedAfter, loadErr := repo.Load(name)
	if loadErr != nil {
		t.Fatalf("Load: %v", loadErr)
	}
	if err == nil {
		if loadedAfter.State != state.NameRunning {
			t.Fatalf("expected Running, got %s", loadedAfter.State)
		}
		return
	}
	if loadedAfter.State != state.NameRunFailed {
		t.Fatalf("expected RunFailed when external validation cannot reach a tracker, got %s", loadedAfter.State)
	}
}

func TestDestroyHandlerRemovesExistingEnvironment(t *testing.T) {
	root := t.TempDir()
	repo := repository.New(root)
	dataRoot := t.TempDir()
	name, _ := createTestEnvironment(t, repo, dataRoot)

	h := &command.DestroyHandler{Repo: repo, Logger: logr.Discard()}
	if err := h.Run(name); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if repo.Exists(name) {
		t.Fatalf("expected environment to be removed")
	}
}

func TestDestroyHandlerIsIdempotentWhenMissing(t *testing.T) {
	root := t.TempDir()
	repo := repository.New(root)
	name, err := valueobject.NewEnvironmentName("never-created")
	if err != nil {
		t.Fatalf("NewEnvironmentName: %v", err)
	}

	h := &command.DestroyHandler{Repo: repo, Logger: logr.Discard()}
	if err := h.Run(name); err != nil {
		t.Fatalf("expected destroying a missing environment to succeed, got %v", err)
	}
}

func TestDestroyHandlerRunsInfraDestroyWhenTofuWasInitialized(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake tool scripts are POSIX shell scripts")
	}
	dir := t.TempDir()
	var ran []string
	script := "#!/bin/sh\necho \"$@\" >> " + filepath.Join(dir, "calls.log") + "\nexit 0\n"
	if err := os.WriteFile(filepath.Join(dir, "tofu"), []byte(script), 0o755); err != nil {
		t.Fatalf("writing fake tofu: %v", err)
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))

	root := t.TempDir()
	repo := repository.New(root)
	dataRoot := t.TempDir()
	name, buildDir := createTestEnvironment(t, repo, dataRoot)
	if err := os.MkdirAll(filepath.Join(buildDir, "tofu"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	h := &command.DestroyHandler{Repo: repo, Logger: logr.Discard()}
	if err := h.Run(name); err != nil {
		t.Fatalf("Run: %v", err)
	}

	logContent, err := os.ReadFile(filepath.Join(dir, "calls.log"))
	if err != nil {
		t.Fatalf("reading call log: %v", err)
	}
	ran = strings.Split(strings.TrimSpace(string(logContent)), "\n")
	if len(ran) != 1 || !strings.HasPrefix(ran[0], "destroy") {
		t.Fatalf("expected exactly one destroy invocation, got %v", ran)
	}
}
