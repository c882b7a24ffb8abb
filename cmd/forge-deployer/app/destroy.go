package app

import (
	"github.com/spf13/cobra"

	"github.com/torrust/tracker-deployer/internal/command"
)

func newDestroyCommand(opts *RunOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "destroy <name>",
		Short: "Tear down an environment's infrastructure and remove its state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := parseEnvironmentName(args)
			if err != nil {
				return err
			}

			h := &command.DestroyHandler{
				Repo:   newRepository(opts),
				Logger: newLogger(opts),
			}
			return h.Run(name)
		},
	}
}
