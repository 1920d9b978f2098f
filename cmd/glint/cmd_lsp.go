package main

import (
	"github.com/spf13/cobra"

	"github.com/glintjs/glint/js/langserver"
)

func newLSPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		RunE: func(cmd *cobra.Command, args []string) error {
			server := langserver.New(version)
			return server.RunStdio()
		},
	}
}
