package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/glintjs/glint/format"
	"github.com/glintjs/glint/js/parser"
)

func newParseCmd() *cobra.Command {
	var outputFormat string
	var sourceType string
	var jsx bool

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a JavaScript file and dump the syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			src, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}

			var opts []parser.Option
			switch sourceType {
			case "script":
			case "module":
				opts = append(opts, parser.WithSourceType(parser.SourceModule))
			default:
				return fmt.Errorf("unknown source type: %s (want script or module)", sourceType)
			}
			if jsx {
				opts = append(opts, parser.WithJSX())
			}

			result := parser.Parse(src, opts...)

			switch outputFormat {
			case "tree":
				fmt.Print(result.Root.String())
			case "json":
				data, err := format.MarshalTree(result.Root)
				if err != nil {
					return fmt.Errorf("encode tree: %w", err)
				}
				fmt.Println(string(data))
			case "text":
				fmt.Print(result.Root.Text())
			case "plain":
				fmt.Println(result.Root.TextNoTrivia())
			default:
				return fmt.Errorf("unknown format: %s (want tree, json, text, or plain)", outputFormat)
			}

			for _, d := range result.Diagnostics {
				pos := result.Lines.Position(d.Span.Start)
				fmt.Fprintf(os.Stderr, "%s:%d:%d: %s: %s\n",
					filename, pos.Line, pos.Column, d.Severity, d.Message)
			}
			if result.HasErrors() {
				return fmt.Errorf("%s: parse finished with errors", filename)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "tree", "output format (tree, json, text, plain)")
	cmd.Flags().StringVar(&sourceType, "source-type", "script", "parse as script or module")
	cmd.Flags().BoolVar(&jsx, "jsx", false, "enable JSX syntax")

	return cmd
}
