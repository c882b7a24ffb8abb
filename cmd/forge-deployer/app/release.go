package app

import (
	"github.com/spf13/cobra"

	"github.com/torrust/tracker-deployer/internal/clock"
	"github.com/torrust/tracker-deployer/internal/command"
	"github.com/torrust/tracker-deployer/internal/trace"
)

func newReleaseCommand(opts *RunOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "release <name>",
		Short: "Copy the compose artifacts to a configured instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := parseEnvironmentName(args)
			if err != nil {
				return err
			}

			h := &command.ReleaseHandler{
				Repo:         newRepository(opts),
				Clock:        clock.NewSystemClock(),
				Logger:       newLogger(opts),
				TemplatesDir: opts.TemplatesDir,
				DeployDir:    opts.DeployDir,
				Trace:        &trace.ReleaseTraceWriter{Common: &trace.CommonWriter{TracesDir: opts.TracesDir, Clock: clock.NewSystemClock()}},
			}
			return h.Run(name)
		},
	}
}
