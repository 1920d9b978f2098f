package main

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/glintjs/glint/config"
	"github.com/glintjs/glint/format"
	"github.com/glintjs/glint/runner"
)

func newCheckCmd() *cobra.Command {
	var outputFormat string
	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Parse and lint files, reporting all diagnostics",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}

			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("get working directory: %w", err)
			}
			cfg, err := config.Load(cwd)
			if err != nil {
				return err
			}

			r := runner.New(afero.NewOsFs(), cfg)
			reports, err := r.Run(cmd.Context(), args)
			if err != nil {
				return err
			}

			var encoder format.Encoder
			switch outputFormat {
			case "json":
				encoder = format.NewJSONEncoder(os.Stdout)
			case "text":
				encoder = format.NewTextEncoder(os.Stdout)
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}
			if err := encoder.Encode(reports); err != nil {
				return fmt.Errorf("encode: %w", err)
			}

			errors := 0
			for _, report := range reports {
				errors += report.ErrorCount()
			}
			if errors > 0 {
				return fmt.Errorf("found %d errors in %d files", errors, len(reports))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format (text, json)")
	return cmd
}
