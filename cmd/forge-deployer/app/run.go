package app

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/torrust/tracker-deployer/internal/clock"
	"github.com/torrust/tracker-deployer/internal/command"
	"github.com/torrust/tracker-deployer/internal/trace"
)

func newRunCommand(opts *RunOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run <name>",
		Short: "Start the compose stack on a released instance and verify it answers",
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

			h := &command.RunHandler{
				Repo:      newRepository(opts),
				Clock:     clock.NewSystemClock(),
				Logger:    newLogger(opts),
				DeployDir: opts.DeployDir,
				Trace:     &trace.RunTraceWriter{Common: &trace.CommonWriter{TracesDir: opts.TracesDir, Clock: clock.NewSystemClock()}},

				TrackerAPIPort:   opts.TrackerAPIPort,
				HTTPTrackerPorts: opts.HTTPTrackerPorts,
				LocalIP:          opts.LocalIP,
				Domain:           domain,
			}
			return h.Run(context.Background(), name)
		},
	}
}
