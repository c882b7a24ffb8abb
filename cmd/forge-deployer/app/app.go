// Package app builds the forge-deployer command tree: one cobra
// subcommand per lifecycle command, sharing a RunOptions configured
// through persistent flags.
package app

import (
	"os"
	"strconv"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/torrust/tracker-deployer/internal/environment/repository"
	"github.com/torrust/tracker-deployer/internal/logging"
	"github.com/torrust/tracker-deployer/internal/valueobject"
)

const (
	envSkipDockerInstall = "TORRUST_TD_SKIP_DOCKER_INSTALL_IN_CONTAINER"
	envSkipFirewall      = "TORRUST_TD_SKIP_FIREWALL_IN_CONTAINER"
)

// NewRootCommand builds the forge-deployer command tree.
func NewRootCommand() *cobra.Command {
	opts := newDefaultRunOptions()

	root := &cobra.Command{
		Use:           "forge-deployer",
		Short:         "Provisions, configures, releases, and runs a tracker service instance",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if envTrue(envSkipDockerInstall) {
				opts.SkipDockerInstallInContainer = true
			}
			if envTrue(envSkipFirewall) {
				opts.SkipFirewallInContainer = true
			}
		},
	}
	opts.AddFlags(root.PersistentFlags())

	root.AddCommand(
		newCreateCommand(opts),
		newProvisionCommand(opts),
		newConfigureCommand(opts),
		newReleaseCommand(opts),
		newRunCommand(opts),
		newTestCommand(opts),
		newDestroyCommand(opts),
		newDocsCommand(root),
	)

	return root
}

func envTrue(name string) bool {
	v, ok := os.LookupEnv(name)
	if !ok {
		return false
	}
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

func newLogger(opts *RunOptions) logr.Logger {
	return logging.MustNewZapLogger(opts.LogLevel, opts.LogFormat)
}

func newRepository(opts *RunOptions) *repository.Repository {
	return repository.New(opts.DataDir)
}

func parseEnvironmentName(args []string) (valueobject.EnvironmentName, error) {
	return valueobject.NewEnvironmentName(args[0])
}

// trackerDomain returns opts.TrackerDomain as a *valueobject.DomainName,
// or nil when the flag was left unset.
func trackerDomain(opts *RunOptions) (*valueobject.DomainName, error) {
	if opts.TrackerDomain == "" {
		return nil, nil
	}
	domain, err := valueobject.NewDomainName(opts.TrackerDomain)
	if err != nil {
		return nil, err
	}
	return &domain, nil
}
