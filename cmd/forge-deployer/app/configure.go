package app

import (
	"github.com/spf13/cobra"

	"github.com/torrust/tracker-deployer/internal/clock"
	"github.com/torrust/tracker-deployer/internal/command"
	"github.com/torrust/tracker-deployer/internal/trace"
)

func newConfigureCommand(opts *RunOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "configure <name>",
		Short: "Install the container runtime, orchestrator, and firewall rules on a provisioned instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := parseEnvironmentName(args)
			if err != nil {
				return err
			}

			h := &command.ConfigureHandler{
				Repo:   newRepository(opts),
				Clock:  clock.NewSystemClock(),
				Logger: newLogger(opts),
				Trace:  &trace.ConfigureTraceWriter{Common: &trace.CommonWriter{TracesDir: opts.TracesDir, Clock: clock.NewSystemClock()}},

				SkipDockerInstall: opts.SkipDockerInstallInContainer,
				SkipFirewall:      opts.SkipFirewallInContainer,
			}
			return h.Run(name)
		},
	}
}
