// Package test holds ginkgo/gomega integration specs that drive an
// environment through its full lifecycle via the real command
// handlers, faking only the external tools (tofu, ansible-playbook)
// and the SSH transport at the leaves.
package test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/torrust/tracker-deployer/internal/clock"
	"github.com/torrust/tracker-deployer/internal/command"
	"github.com/torrust/tracker-deployer/internal/config"
	"github.com/torrust/tracker-deployer/internal/environment/repository"
	"github.com/torrust/tracker-deployer/internal/environment/state"
	"github.com/torrust/tracker-deployer/internal/sshtransport"
	"github.com/torrust/tracker-deployer/internal/template/ansible"
	"github.com/torrust/tracker-deployer/internal/template/tofu"
	"github.com/torrust/tracker-deployer/internal/trace"
	"github.com/torrust/tracker-deployer/internal/valueobject"

	"github.com/go-logr/logr"
)

const lifecycleInstanceIP = "10.20.30.40"

func installFakeExternalTools(instanceIP string) {
	if runtime.GOOS == "windows" {
		Skip("fake tool scripts are POSIX shell scripts")
	}

	dir := GinkgoT().TempDir()

	tofuScript := `#!/bin/sh
if [ "$1" = "output" ]; then
  cat <<EOF
{"instance_ip": {"value": "` + instanceIP + `"}}
EOF
fi
exit 0
`
	Expect(os.WriteFile(filepath.Join(dir, "tofu"), []byte(tofuScript), 0o755)).To(Succeed())
	Expect(os.WriteFile(filepath.Join(dir, "ansible-playbook"), []byte("#!/bin/sh\nexit 0\n"), 0o755)).To(Succeed())

	GinkgoT().Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

func writeTemplateFixtures() string {
	dir := GinkgoT().TempDir()

	tofuDir := filepath.Join(dir, "tofu")
	Expect(os.MkdirAll(tofuDir, 0o755)).To(Succeed())
	Expect(os.WriteFile(filepath.Join(tofuDir, "variables.tfvars.tera"), []byte(`ssh_public_key = "{{.SSHPublicKey}}"
instance_name  = "{{.InstanceName}}"
`), 0o644)).To(Succeed())
	for _, name := range tofu.StaticFiles {
		Expect(os.WriteFile(filepath.Join(tofuDir, name), []byte("# "+name), 0o644)).To(Succeed())
	}

	ansibleDir := filepath.Join(dir, "ansible")
	Expect(os.MkdirAll(ansibleDir, 0o755)).To(Succeed())
	Expect(os.WriteFile(filepath.Join(ansibleDir, "inventory.yml.tera"), []byte(`[tracker]
{{.Host}} ansible_port={{.SSHPort}} ansible_user={{.AnsibleUser}}
`), 0o644)).To(Succeed())
	Expect(os.WriteFile(filepath.Join(ansibleDir, "configure-firewall.yml.tera"), []byte(`ssh_port: {{.SSHPort}}
`), 0o644)).To(Succeed())
	for _, name := range ansible.StaticPlaybooks {
		Expect(os.WriteFile(filepath.Join(ansibleDir, name), []byte("# "+name), 0o644)).To(Succeed())
	}

	releaseDir := filepath.Join(dir, "release")
	Expect(os.MkdirAll(releaseDir, 0o755)).To(Succeed())
	Expect(os.WriteFile(filepath.Join(releaseDir, "docker-compose.yml"), []byte("services:\n  tracker:\n    image: torrust/tracker\n"), 0o644)).To(Succeed())

	return dir
}

func alwaysSucceedingSSH() func(host string, port int, user, privateKeyPath string) sshtransport.Client {
	return func(host string, port int, user, privateKeyPath string) sshtransport.Client {
		return &sshtransport.MockClient{
			MockExecute: func(cmd string) (string, error) {
				return "status: done\nNAME   STATUS\ntracker   Up 2 minutes\n", nil
			},
			MockCheckCommand:        func(cmd string) bool { return true },
			MockWaitForConnectivity: func(ctx context.Context, timeout time.Duration) error { return nil },
		}
	}
}

var _ = Describe("Environment lifecycle", func() {
	var (
		repo         *repository.Repository
		templatesDir string
		tracesDir    string
		name         valueobject.EnvironmentName
	)

	BeforeEach(func() {
		installFakeExternalTools(lifecycleInstanceIP)
		templatesDir = writeTemplateFixtures()
		tracesDir = GinkgoT().TempDir()
		repo = repository.New(GinkgoT().TempDir())
	})

	It("moves an environment from Created through Running and back to destroyed", func() {
		keyDir := GinkgoT().TempDir()
		pubKeyPath := filepath.Join(keyDir, "id_ed25519.pub")
		Expect(os.WriteFile(pubKeyPath, []byte("ssh-ed25519 AAAAC3NzaC1lZDI1NTE5 lifecycle@test"), 0o600)).To(Succeed())

		By("creating the environment")
		createHandler := &command.CreateHandler{Repo: repo, Clock: clock.NewSystemClock(), Logger: logr.Discard()}
		created, err := createHandler.Run(config.CreateConfig{
			Name: "lifecycle-env",
			SSH: config.SSHConfig{
				Username:       "torrust",
				PrivateKeyPath: filepath.Join(keyDir, "id_ed25519"),
				PublicKeyPath:  pubKeyPath,
				Port:           22,
			},
		})
		Expect(err).NotTo(HaveOccurred())
		name, err = valueobject.NewEnvironmentName(created.Name)
		Expect(err).NotTo(HaveOccurred())

		By("provisioning the infrastructure")
		provisionHandler := &command.ProvisionHandler{
			Repo:         repo,
			Clock:        clock.NewSystemClock(),
			Logger:       logr.Discard(),
			TemplatesDir: templatesDir,
			Trace:        &trace.ProvisionTraceWriter{Common: &trace.CommonWriter{TracesDir: tracesDir, Clock: clock.NewSystemClock()}},
			NewSSHClient: alwaysSucceedingSSH(),
		}
		Expect(provisionHandler.Run(context.Background(), name)).To(Succeed())

		loaded, err := repo.Load(name)
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded.State).To(Equal(state.NameProvisioned))
		Expect(loaded.Fields.InstanceIP).NotTo(BeNil())
		Expect(*loaded.Fields.InstanceIP).To(Equal(lifecycleInstanceIP))

		By("configuring the instance")
		configureHandler := &command.ConfigureHandler{
			Repo:   repo,
			Clock:  clock.NewSystemClock(),
			Logger: logr.Discard(),
			Trace:  &trace.ConfigureTraceWriter{Common: &trace.CommonWriter{TracesDir: tracesDir, Clock: clock.NewSystemClock()}},
		}
		Expect(configureHandler.Run(name)).To(Succeed())

		loaded, err = repo.Load(name)
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded.State).To(Equal(state.NameConfigured))

		By("releasing the compose artifacts")
		releaseHandler := &command.ReleaseHandler{
			Repo:         repo,
			Clock:        clock.NewSystemClock(),
			Logger:       logr.Discard(),
			TemplatesDir: templatesDir,
			Trace:        &trace.ReleaseTraceWriter{Common: &trace.CommonWriter{TracesDir: tracesDir, Clock: clock.NewSystemClock()}},
			NewSSHClient: alwaysSucceedingSSH(),
		}
		Expect(releaseHandler.Run(name)).To(Succeed())

		loaded, err = repo.Load(name)
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded.State).To(Equal(state.NameReleased))

		By("starting services and verifying internal health")
		runHandler := &command.RunHandler{
			Repo:         repo,
			Clock:        clock.NewSystemClock(),
			Logger:       logr.Discard(),
			Trace:        &trace.RunTraceWriter{Common: &trace.CommonWriter{TracesDir: tracesDir, Clock: clock.NewSystemClock()}},
			NewSSHClient: alwaysSucceedingSSH(),
			// No tracker listens on TrackerAPIPort in this suite, so the
			// external validator is expected to fail; RunFailed is the
			// correct terminal state for that case.
			TrackerAPIPort: 1212,
		}
		runErr := runHandler.Run(context.Background(), name)

		loaded, err = repo.Load(name)
		Expect(err).NotTo(HaveOccurred())
		if runErr == nil {
			Expect(loaded.State).To(Equal(state.NameRunning))
		} else {
			Expect(loaded.State).To(Equal(state.NameRunFailed))
			Expect(loaded.Failure).NotTo(BeNil())
			Expect(loaded.Failure.TraceFilePath).NotTo(BeNil())
		}

		By("destroying the environment")
		destroyHandler := &command.DestroyHandler{Repo: repo, Logger: logr.Discard()}
		Expect(destroyHandler.Run(name)).To(Succeed())
		Expect(repo.Exists(name)).To(BeFalse())
	})

	It("transitions a provisioning failure into ProvisionFailed with a trace file", func() {
		dir := GinkgoT().TempDir()
		Expect(os.WriteFile(filepath.Join(dir, "tofu"), []byte("#!/bin/sh\nexit 1\n"), 0o755)).To(Succeed())
		GinkgoT().Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))

		keyDir := GinkgoT().TempDir()
		pubKeyPath := filepath.Join(keyDir, "id_ed25519.pub")
		Expect(os.WriteFile(pubKeyPath, []byte("ssh-ed25519 AAAAC3NzaC1lZDI1NTE5 lifecycle@test"), 0o600)).To(Succeed())

		createHandler := &command.CreateHandler{Repo: repo, Clock: clock.NewSystemClock(), Logger: logr.Discard()}
		created, err := createHandler.Run(config.CreateConfig{
			Name: "lifecycle-env-failing",
			SSH: config.SSHConfig{
				Username:       "torrust",
				PrivateKeyPath: filepath.Join(keyDir, "id_ed25519"),
				PublicKeyPath:  pubKeyPath,
				Port:           22,
			},
		})
		Expect(err).NotTo(HaveOccurred())
		failingName, err := valueobject.NewEnvironmentName(created.Name)
		Expect(err).NotTo(HaveOccurred())

		provisionHandler := &command.ProvisionHandler{
			Repo:         repo,
			Clock:        clock.NewSystemClock(),
			Logger:       logr.Discard(),
			TemplatesDir: templatesDir,
			Trace:        &trace.ProvisionTraceWriter{Common: &trace.CommonWriter{TracesDir: tracesDir, Clock: clock.NewSystemClock()}},
		}
		err = provisionHandler.Run(context.Background(), failingName)
		Expect(err).To(HaveOccurred())

		var handlerErr *command.HandlerError
		Expect(err).To(BeAssignableToTypeOf(handlerErr))

		loaded, loadErr := repo.Load(failingName)
		Expect(loadErr).NotTo(HaveOccurred())
		Expect(loaded.State).To(Equal(state.NameProvisionFailed))
	})
})
