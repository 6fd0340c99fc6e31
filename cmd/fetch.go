package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/naka-gawa/fetgithub/internal/exitcode"
	"github.com/naka-gawa/fetgithub/internal/gateway"
	"github.com/naka-gawa/fetgithub/internal/report"
	"github.com/naka-gawa/fetgithub/internal/usecase"
	"github.com/spf13/cobra"
)

type fetchOptions struct {
	config      string
	envFile     string
	restURL     string
	graphqlURL  string
	concurrency int
}

func newFetchCmd() *cobra.Command {
	opts := &fetchOptions{}

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Validates a config file, then fetches metrics for its repositories",
		Long: `Validates a JSON config file and, when it is valid, fetches the selected
metrics (branches, commits, stars, forks) for every listed repository.
The result is printed as JSON. When the config has a "path" section, rows are
appended to <output_path>/github_stats.csv and logs to <log_path>/fetgithub.log.

Requires the GITHUB_TOKEN environment variable, which may be set in a .env file.`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.config, "config", "", "Path to the JSON config file (required)")
	cmd.Flags().StringVar(&opts.envFile, "env-file", ".env", "Optional file to load GITHUB_TOKEN from")
	cmd.Flags().StringVar(&opts.restURL, "api-url", "", "GitHub Enterprise REST API base URL")
	cmd.Flags().StringVar(&opts.graphqlURL, "graphql-url", "", "GitHub Enterprise GraphQL endpoint")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", usecase.DefaultConcurrency, "Number of repositories fetched at once")
	return cmd
}

func runFetch(cmd *cobra.Command, opts *fetchOptions) error {
	cfg, err := loadConfig(cmd, opts.config)
	if err != nil {
		return err
	}
	logger := loggerFromContext(cmd.Context())

	// Variables already set in the environment take precedence.
	if err := godotenv.Load(opts.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("failed to load env file", "path", opts.envFile, "err", err)
	}
	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		return exitcode.Usagef("GITHUB_TOKEN environment variable is not set")
	}

	if cfg.Path != nil {
		logFile, err := report.OpenLog(cfg.Path.LogPath)
		if err != nil {
			return err
		}
		defer logFile.Close()
		logger = newLogger(io.MultiWriter(cmd.ErrOrStderr(), logFile), logger.GetLevel())
	}

	fetcher, err := gateway.NewGitHubGateway(token, gateway.Endpoints{REST: opts.restURL, GraphQL: opts.graphqlURL}, logger)
	if err != nil {
		return fmt.Errorf("failed to create GitHub gateway: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.TimeoutDuration())
	defer cancel()

	rep, err := usecase.NewCollector(fetcher, logger, opts.concurrency).Collect(ctx, cfg)
	if err != nil {
		return err
	}

	if cfg.Path != nil {
		path, err := report.WriteCSV(cfg.Path.OutputPath, rep)
		if err != nil {
			return err
		}
		logger.Info("wrote report", "path", path)
	}

	jsonData, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results to JSON: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
	return nil
}
