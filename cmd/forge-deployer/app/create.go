package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/torrust/tracker-deployer/internal/clock"
	"github.com/torrust/tracker-deployer/internal/command"
	"github.com/torrust/tracker-deployer/internal/config"
	"github.com/torrust/tracker-deployer/internal/schema"
)

func newCreateCommand(opts *RunOptions) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new environment from a YAML config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			h := &command.CreateHandler{
				Repo:   newRepository(opts),
				Clock:  clock.NewSystemClock(),
				Logger: newLogger(opts),
			}
			_, err = h.Run(cfg)
			return err
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "Path to the environment's YAML config file")
	_ = cmd.MarkFlagRequired("config")

	cmd.AddCommand(newCreateSchemaCommand())
	return cmd
}

func newCreateSchemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema for the create command's config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := schema.Generate().ToJSON()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}
