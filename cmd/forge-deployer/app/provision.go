package app

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/torrust/tracker-deployer/internal/clock"
	"github.com/torrust/tracker-deployer/internal/command"
	"github.com/torrust/tracker-deployer/internal/trace"
)

func newProvisionCommand(opts *RunOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "provision <name>",
		Short: "Provision the infrastructure for an environment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := parseEnvironmentName(args)
			if err != nil {
				return err
			}

			h := &command.ProvisionHandler{
				Repo:         newRepository(opts),
				Clock:        clock.NewSystemClock(),
				Logger:       newLogger(opts),
				TemplatesDir: opts.TemplatesDir,
				Trace:        &trace.ProvisionTraceWriter{Common: &trace.CommonWriter{TracesDir: opts.TracesDir, Clock: clock.NewSystemClock()}},

				SSHConnectTimeout: opts.SSHConnectTimeout,
			}
			return h.Run(context.Background(), name)
		},
	}
}
