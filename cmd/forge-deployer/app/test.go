package app

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/torrust/tracker-deployer/internal/command"
)

func newTestCommand(opts *RunOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "test <name>",
		Short: "Run a read-only health report against a running instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := parseEnvironmentName(args)
			if err != nil {
				return err
			}
			domain, err := trackerDomain(opts)
			if err != nil {
				return err
			}

			h := &command.TestHandler{
				Repo:   newRepository(opts),
				Logger: newLogger(opts),

				DeployDir:        opts.DeployDir,
				TrackerAPIPort:   opts.TrackerAPIPort,
				HTTPTrackerPorts: opts.HTTPTrackerPorts,
				LocalIP:          opts.LocalIP,
				Domain:           domain,
			}
			return h.Run(context.Background(), name)
		},
	}
}
