package app

import (
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

func newDocsCommand(root *cobra.Command) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:    "docs",
		Short:  "Generate Markdown documentation for the command tree",
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return doc.GenMarkdownTree(root, outDir)
		},
	}
	cmd.Flags().StringVar(&outDir, "out-dir", "docs/cli", "Directory to write generated Markdown files to")
	return cmd
}
