package app

import (
	"time"

	"github.com/spf13/pflag"

	"github.com/torrust/tracker-deployer/internal/logging"
)

const (
	defaultTrackerAPIPort  = 1212
	defaultHTTPTrackerPort = 7070
)

// RunOptions holds every flag shared across subcommands: where an
// environment's state and build tree live, where templates and traces
// are read from and written to, and the ports the run/test commands
// probe once the tracker is up.
type RunOptions struct {
	DataDir      string
	TemplatesDir string
	TracesDir    string
	DeployDir    string

	LogLevel  logging.LogLevel
	LogFormat logging.Format

	SSHConnectTimeout time.Duration

	TrackerAPIPort   int
	HTTPTrackerPorts []int
	LocalIP          string
	TrackerDomain    string

	SkipDockerInstallInContainer bool
	SkipFirewallInContainer      bool
}

func newDefaultRunOptions() *RunOptions {
	return &RunOptions{
		DataDir:           "data",
		TemplatesDir:      "templates",
		TracesDir:         "traces",
		DeployDir:         "/opt/torrust",
		LogLevel:          logging.InfoLevel,
		LogFormat:         logging.FormatConsole,
		SSHConnectTimeout: 2 * time.Minute,
		TrackerAPIPort:    defaultTrackerAPIPort,
		HTTPTrackerPorts:  []int{defaultHTTPTrackerPort},
	}
}

// AddFlags registers every shared flag onto fs, following the
// teacher's fs.Var-for-custom-types convention in
// ControllerManagerRunOptions.AddFlags.
func (o *RunOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.DataDir, "data-dir", o.DataDir, "Directory where environment state is persisted")
	fs.StringVar(&o.TemplatesDir, "templates-dir", o.TemplatesDir, "Directory containing the infrastructure and configuration templates")
	fs.StringVar(&o.TracesDir, "traces-dir", o.TracesDir, "Directory where failure trace files are written")
	fs.StringVar(&o.DeployDir, "deploy-dir", o.DeployDir, "Directory on the remote instance where compose artifacts are deployed")
	fs.Var(&o.LogLevel, "log-level", "Log level, one of [debug, info, error]")
	fs.Var(&o.LogFormat, "log-format", "Log format, one of [Console, JSON]")
	fs.DurationVar(&o.SSHConnectTimeout, "ssh-connect-timeout", o.SSHConnectTimeout, "How long to wait for the instance to become reachable over SSH")
	fs.IntVar(&o.TrackerAPIPort, "tracker-api-port", o.TrackerAPIPort, "Port the tracker's HTTP API listens on")
	fs.IntSliceVar(&o.HTTPTrackerPorts, "http-tracker-port", o.HTTPTrackerPorts, "Port an HTTP tracker listens on (repeatable)")
	fs.StringVar(&o.LocalIP, "local-ip", o.LocalIP, "Override DNS resolution for .local hosts when probing the instance from this machine")
	fs.StringVar(&o.TrackerDomain, "tracker-domain", o.TrackerDomain, "A .local hostname to probe over HTTPS instead of the raw instance IP over HTTP")
	fs.BoolVar(&o.SkipDockerInstallInContainer, "skip-docker-install-in-container", o.SkipDockerInstallInContainer, "Skip installing the container runtime and orchestrator, for running configure inside a container test harness")
	fs.BoolVar(&o.SkipFirewallInContainer, "skip-firewall-in-container", o.SkipFirewallInContainer, "Skip firewall configuration, for running configure inside a container test harness")
}
