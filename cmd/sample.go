package cmd

import (
	_ "embed"
	"fmt"

	"github.com/naka-gawa/fetgithub/internal/validate"
	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"
)

//go:embed sample.json
var sampleConfig []byte

func newSampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sample [FILE]",
		Short: "Displays a sample config file",
		Long:  `Displays the built-in sample config, or the content of FILE when given.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return noArgs(cmd, args[1:])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := sampleConfig
			if len(args) == 1 {
				doc, err := validate.Load(args[0])
				if err != nil {
					return err
				}
				raw = []byte(doc.Raw)
			}
			out := pretty.PrettyOptions(raw, &pretty.Options{Width: 80, Indent: "    "})
			fmt.Fprintln(cmd.OutOrStdout(), "Sample JSON File Content:")
			fmt.Fprint(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}
