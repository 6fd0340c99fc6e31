package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	var config string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validates a config file against the schema and GitHub naming rules",
		Long: `Validates a JSON config file: it must exist, be valid JSON, match the
required schema and satisfy GitHub's username and repository naming rules.`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, config)
		},
	}
	cmd.Flags().StringVar(&config, "config", "", "Path to the JSON config file to validate (required)")
	return cmd
}

func runValidate(cmd *cobra.Command, path string) error {
	cfg, err := loadConfig(cmd, path)
	if err != nil {
		return err
	}
	loggerFromContext(cmd.Context()).Debug("configuration accepted", "username", cfg.Username)
	fmt.Fprintln(cmd.OutOrStdout(), "configuration is valid")
	return nil
}
