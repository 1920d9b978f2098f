package main

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/glintjs/glint/config"
	"github.com/glintjs/glint/runner"
)

func newFixCmd() *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "fix <file>...",
		Short: "Apply available quick fixes to files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("get working directory: %w", err)
			}
			cfg, err := config.Load(cwd)
			if err != nil {
				return err
			}
			r := runner.New(afero.NewOsFs(), cfg)

			for _, filename := range args {
				src, err := os.ReadFile(filename)
				if err != nil {
					return fmt.Errorf("read file: %w", err)
				}

				fixed, changed := r.Fix(src, cfg.ParserOptions(filename)...)
				if !changed {
					continue
				}
				if write {
					if err := os.WriteFile(filename, fixed, 0644); err != nil {
						return fmt.Errorf("write file: %w", err)
					}
					fmt.Printf("fixed %s\n", filename)
				} else {
					os.Stdout.Write(fixed)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "write fixes back to the files")
	return cmd
}
