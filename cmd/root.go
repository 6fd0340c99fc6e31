// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/naka-gawa/fetgithub/internal/domain"
	"github.com/naka-gawa/fetgithub/internal/exitcode"
	"github.com/naka-gawa/fetgithub/internal/validate"
	"github.com/spf13/cobra"
)

// Execute runs the CLI with the process arguments and returns the exit code.
// This is called by main.main().
func Execute() int {
	return run(os.Args[1:], os.Stdout, os.Stderr)
}

func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	res := exitcode.Resolve(root.ExecuteContext(context.Background()))
	if res.Code != exitcode.OK {
		fmt.Fprintln(stderr, res.Message)
	}
	return int(res.Code)
}

func newRootCmd() *cobra.Command {
	var (
		verbose bool
		config  string
	)

	root := &cobra.Command{
		Use:   "fetgithub",
		Short: "Validates a GitHub repository config and fetches repository metrics.",
		Long: `fetgithub validates a JSON configuration naming a GitHub user and a list of
repositories, then optionally fetches branches, commits, stars and forks for
those repositories.

Exit codes: 0 ok, 1 usage, 2 file not found, 3 invalid JSON, 4 schema error,
5 GitHub validation error, 6 GitHub request failed, 99 unexpected error.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          noArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), level)))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if config == "" {
				_ = cmd.Help()
				return exitcode.Usagef("no arguments provided. Use --config or a subcommand")
			}
			return runValidate(cmd, config)
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose/debug logging")
	root.Flags().StringVar(&config, "config", "", "Path to the JSON config file to validate")
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return exitcode.Usagef("%v", err)
	})

	root.AddCommand(newValidateCmd())
	root.AddCommand(newFetchCmd())
	root.AddCommand(newSampleCmd())
	return root
}

// noArgs rejects positional arguments with a usage error.
func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return exitcode.Usagef("unknown command or argument %q for %q", args[0], cmd.CommandPath())
	}
	return nil
}

// loadConfig runs the validation pipeline and returns the validated config.
func loadConfig(cmd *cobra.Command, path string) (*domain.Config, error) {
	if path == "" {
		return nil, exitcode.Usagef("no config file provided. Use --config <FILE>")
	}
	pipeline, err := validate.NewPipeline(loggerFromContext(cmd.Context()))
	if err != nil {
		return nil, err
	}
	outcome := pipeline.Run(path)
	if !outcome.Valid() {
		return nil, outcome.Err
	}
	return outcome.Config, nil
}
