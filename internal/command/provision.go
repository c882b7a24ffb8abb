package command

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-logr/logr"

	"github.com/torrust/tracker-deployer/internal/clock"
	"github.com/torrust/tracker-deployer/internal/environment"
	"github.com/torrust/tracker-deployer/internal/environment/repository"
	"github.com/torrust/tracker-deployer/internal/externaltool/tofu"
	"github.com/torrust/tracker-deployer/internal/remoteaction"
	"github.com/torrust/tracker-deployer/internal/sshtransport"
	"github.com/torrust/tracker-deployer/internal/step"
	"github.com/torrust/tracker-deployer/internal/template/ansible"
	tofutemplate "github.com/torrust/tracker-deployer/internal/template/tofu"
	"github.com/torrust/tracker-deployer/internal/trace"
	"github.com/torrust/tracker-deployer/internal/valueobject"
)

// ProvisionHandler runs the provision command: Created -> Provisioning
// -> (infra rendered, applied, instance discovered, SSH reachable,
// cloud-init validated) -> Provisioned.
type ProvisionHandler struct {
	Repo         *repository.Repository
	Clock        clock.Clock
	Logger       logr.Logger
	TemplatesDir string
	Trace        *trace.ProvisionTraceWriter

	SSHConnectTimeout time.Duration

	// NewSSHClient builds the transport used for wait-for-ssh and
	// cloud-init validation. Defaults to a real sshtransport.Transport;
	// tests substitute a MockClient factory.
	NewSSHClient func(host string, port int, user, privateKeyPath string) sshtransport.Client
}

func (h *ProvisionHandler) newSSHClient(host string, port int, user, privateKeyPath string) sshtransport.Client {
	if h.NewSSHClient != nil {
		return h.NewSSHClient(host, port, user, privateKeyPath)
	}
	return sshtransport.NewTransport(host, port, user, privateKeyPath)
}

func (h *ProvisionHandler) sshTimeout() time.Duration {
	if h.SSHConnectTimeout > 0 {
		return h.SSHConnectTimeout
	}
	return 2 * time.Minute
}

// Run executes the provision command for the named environment.
func (h *ProvisionHandler) Run(ctx context.Context, name valueobject.EnvironmentName) error {
	startedAt := h.Clock.Now()

	loaded, err := h.Repo.Load(name)
	if err != nil {
		return err
	}
	created, err := environment.TryIntoCreated(loaded)
	if err != nil {
		return err
	}

	provisioning := created.StartProvisioning(h.Logger)
	if err := h.Repo.Save(name, provisioning.ToAny()); err != nil {
		return err
	}

	fail := func(failedStep string, cause error) error {
		return h.fail(name, provisioning, startedAt, failedStep, cause)
	}

	fields := provisioning.EnvironmentFields
	tofuBuildDir := filepath.Join(fields.BuildDir, "tofu")
	tofuClient := tofu.New(tofuBuildDir)

	publicKey, err := os.ReadFile(fields.SSHCredentials.PublicKeyPath)
	if err != nil {
		return fail("render_opentofu_templates", err)
	}

	renderInfra := step.RenderInfraTemplates{TemplatesDir: h.TemplatesDir, BuildDir: fields.BuildDir}
	if err := renderInfra.Run(h.Logger, tofutemplate.VariablesContext{
		SSHPublicKey: strings.TrimSpace(string(publicKey)),
		InstanceName: fields.InstanceName,
		ProfileName:  fields.ProfileName,
		SSHPort:      fields.SSHPort,
	}); err != nil {
		return fail("render_opentofu_templates", err)
	}

	if err := (step.InitInfra{Client: tofuClient}).Run(h.Logger); err != nil {
		return fail("initialize_infrastructure", err)
	}
	if err := (step.ValidateInfra{Client: tofuClient}).Run(h.Logger); err != nil {
		return fail("validate_infrastructure", err)
	}
	if err := (step.PlanInfra{Client: tofuClient}).Run(h.Logger, nil); err != nil {
		return fail("plan_infrastructure", err)
	}
	if err := (step.ApplyInfra{Client: tofuClient}).Run(h.Logger, true, nil); err != nil {
		return fail("apply_infrastructure", err)
	}

	info, err := (step.GetInstanceInfo{Client: tofuClient}).Run(h.Logger)
	if err != nil {
		return fail("get_instance_info", err)
	}
	instanceIP, err := valueobject.NewIPAddress(info.IPAddress)
	if err != nil {
		return fail("get_instance_info", err)
	}
	provisioning = provisioning.WithInstanceIP(instanceIP)
	if err := h.Repo.Save(name, provisioning.ToAny()); err != nil {
		return err
	}

	renderConfig := step.RenderConfigTemplates{TemplatesDir: h.TemplatesDir, BuildDir: fields.BuildDir}
	if err := renderConfig.Run(h.Logger,
		ansible.InventoryContext{
			Host:              instanceIP.String(),
			SSHPort:           fields.SSHPort,
			SSHPrivateKeyPath: fields.SSHCredentials.PrivateKeyPath,
			AnsibleUser:       fields.SSHCredentials.Username,
		},
		ansible.FirewallPlaybookContext{SSHPort: fields.SSHPort},
	); err != nil {
		return fail("render_ansible_templates", err)
	}

	sshClient := h.newSSHClient(instanceIP.String(), fields.SSHPort, fields.SSHCredentials.Username, fields.SSHCredentials.PrivateKeyPath)
	if err := (step.WaitForSSH{Client: sshClient}).Run(ctx, h.Logger, h.sshTimeout()); err != nil {
		return fail("wait_ssh_connectivity", err)
	}

	cloudInit := step.ValidateCloudInit{Action: &remoteaction.CloudInitValidator{SSH: sshClient}}
	if err := cloudInit.Run(ctx, h.Logger, instanceIP.String()); err != nil {
		return fail("validate_cloud_init", err)
	}

	provisioned := provisioning.Provisioned(h.Logger)
	return h.Repo.Save(name, provisioned.ToAny())
}

func (h *ProvisionHandler) fail(name valueobject.EnvironmentName, provisioning environment.Provisioning, startedAt time.Time, failedStep string, cause error) error {
	traceableCause := asTraceable(cause)
	base := buildBaseFailureContext(h.Clock, startedAt, traceableCause)

	tracePath, traceErr := h.Trace.Write(base, traceableCause)
	if traceErr == nil {
		base = withTracePath(base, tracePath)
	}

	failed := provisioning.Fail(h.Logger, failedStep, base)
	_ = h.Repo.Save(name, failed.ToAny())

	return &HandlerError{Command: "provision", FailedStep: failedStep, TracePath: tracePath, Cause: traceableCause}
}
