package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/glintjs/glint/config"
	"github.com/glintjs/glint/js/parser"
)

func newFmtCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fmt <file>...",
		Short: "Round-trip files through the parser, verifying losslessness",
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

			for _, filename := range args {
				src, err := os.ReadFile(filename)
				if err != nil {
					return fmt.Errorf("read file: %w", err)
				}
				out, err := roundTrip(src, cfg.ParserOptions(filename)...)
				if err != nil {
					return fmt.Errorf("%s: %w", filename, err)
				}
				os.Stdout.Write(out)
			}
			return nil
		},
	}
}

// roundTrip prints the parsed tree and checks the output reproduces
// the input byte for byte. A mismatch is a parser bug, never a
// property of the input.
func roundTrip(src []byte, opts ...parser.Option) ([]byte, error) {
	result := parser.Parse(src, opts...)
	out := []byte(result.Root.Text())
	if !bytes.Equal(out, src) {
		return out, fmt.Errorf("round-trip mismatch: printed %d bytes for %d bytes of input", len(out), len(src))
	}
	return out, nil
}
