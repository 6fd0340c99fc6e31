// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/montanaflynn/stats"
	"github.com/naka-gawa/fetgithub/internal/domain"
	"github.com/naka-gawa/fetgithub/internal/gateway"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds the number of repositories fetched at once.
const DefaultConcurrency = 4

// Collector is the use case for fetching metrics of validated repositories.
// It orchestrates the fetching and combining of data.
type Collector struct {
	fetcher     gateway.Fetcher
	logger      *log.Logger
	concurrency int
}

// NewCollector creates a new Collector instance.
func NewCollector(fetcher gateway.Fetcher, logger *log.Logger, concurrency int) *Collector {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Collector{
		fetcher:     fetcher,
		logger:      logger,
		concurrency: concurrency,
	}
}

// Collect fetches the selected metrics for every repository in cfg.
// Repositories are fetched concurrently; the report keeps cfg's order.
// cfg must have passed validation.
func (c *Collector) Collect(ctx context.Context, cfg *domain.Config) (*domain.Report, error) {
	c.logger.Info("fetching repository metrics", "user", cfg.Username, "repositories", len(cfg.Repositories))

	results := make([]*domain.RepoStats, len(cfg.Repositories))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(c.concurrency)
	for i, name := range cfg.Repositories {
		i, name := i, name
		eg.Go(func() error {
			rs, err := c.collectOne(egCtx, cfg.Username, name, cfg.Metrics)
			if err != nil {
				return err
			}
			results[i] = rs
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	summary, err := summarize(results)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize metrics: %w", err)
	}

	c.logger.Info("fetch complete", "total_stars", summary.TotalStars, "total_forks", summary.TotalForks)
	return &domain.Report{
		User:         cfg.Username,
		Repositories: results,
		Summary:      summary,
	}, nil
}

func (c *Collector) collectOne(ctx context.Context, owner, name string, m domain.Metrics) (*domain.RepoStats, error) {
	rs := &domain.RepoStats{Name: name}

	if m.Stars || m.Forks {
		info, err := c.fetcher.FetchRepository(ctx, owner, name)
		if err != nil {
			return nil, err
		}
		if m.Stars {
			rs.Stars = &info.Stars
		}
		if m.Forks {
			rs.Forks = &info.Forks
		}
	}

	if m.Branches || m.Commits {
		activity, err := c.fetcher.FetchActivity(ctx, owner, name)
		if err != nil {
			return nil, err
		}
		if m.Branches {
			rs.Branches = &activity.Branches
		}
		if m.Commits {
			rs.Commits = &activity.Commits
		}
	}

	c.logger.Debug("fetched repository", "repo", owner+"/"+name)
	return rs, nil
}

// summarize totals stars and forks and computes their mean and median.
// Metrics that were not selected contribute nothing.
func summarize(repos []*domain.RepoStats) (domain.Summary, error) {
	var starData, forkData stats.Float64Data
	for _, r := range repos {
		if r.Stars != nil {
			starData = append(starData, float64(*r.Stars))
		}
		if r.Forks != nil {
			forkData = append(forkData, float64(*r.Forks))
		}
	}

	var s domain.Summary
	var err error
	if len(starData) > 0 {
		if s.TotalStars, s.MeanStars, s.MedianStars, err = describe(starData); err != nil {
			return domain.Summary{}, err
		}
	}
	if len(forkData) > 0 {
		if s.TotalForks, s.MeanForks, s.MedianForks, err = describe(forkData); err != nil {
			return domain.Summary{}, err
		}
	}
	return s, nil
}

func describe(data stats.Float64Data) (total int, mean, median float64, err error) {
	sum, err := stats.Sum(data)
	if err != nil {
		return 0, 0, 0, err
	}
	if mean, err = stats.Mean(data); err != nil {
		return 0, 0, 0, err
	}
	if median, err = stats.Median(data); err != nil {
		return 0, 0, 0, err
	}
	return int(sum), mean, median, nil
}
