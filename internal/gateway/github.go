// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
)

// RepoInfo holds the counters returned by the repository endpoint.
type RepoInfo struct {
	Stars int
	Forks int
}

// Activity holds the branch count and the commit count of the default branch.
type Activity struct {
	Branches int
	Commits  int
}

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	FetchRepository(ctx context.Context, owner, name string) (*RepoInfo, error)
	FetchActivity(ctx context.Context, owner, name string) (*Activity, error)
}

// RequestError is returned when a GitHub API call for a repository fails.
type RequestError struct {
	Repository string
	Op         string
	Err        error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("failed to %s for %s: %v", e.Op, e.Repository, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// Endpoints overrides the API locations, e.g. for GitHub Enterprise Server.
// Empty fields select github.com.
type Endpoints struct {
	REST    string
	GraphQL string
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	logger        *log.Logger
}

// repositoryActivityQuery counts branches and default-branch commits
// without paginating.
type repositoryActivityQuery struct {
	Repository struct {
		Refs struct {
			TotalCount int
		} `graphql:"refs(refPrefix: $refPrefix)"`
		DefaultBranchRef *struct {
			Target struct {
				Commit struct {
					History struct {
						TotalCount int
					}
				} `graphql:"... on Commit"`
			}
		}
	} `graphql:"repository(owner: $owner, name: $name)"`
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
func NewGitHubGateway(token string, endpoints Endpoints, logger *log.Logger) (Fetcher, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		},
	}

	restClient := github.NewClient(httpClient)
	if endpoints.REST != "" {
		restClient, err = restClient.WithEnterpriseURLs(endpoints.REST, endpoints.REST)
		if err != nil {
			return nil, fmt.Errorf("failed to set REST endpoint: %w", err)
		}
	}
	graphqlClient := githubv4.NewClient(httpClient)
	if endpoints.GraphQL != "" {
		graphqlClient = githubv4.NewEnterpriseClient(endpoints.GraphQL, httpClient)
	}

	return &GitHubGateway{
		restClient:    restClient,
		graphqlClient: graphqlClient,
		logger:        logger,
	}, nil
}

// FetchRepository fetches the star and fork counts using the REST API.
func (g *GitHubGateway) FetchRepository(ctx context.Context, owner, name string) (*RepoInfo, error) {
	fullName := owner + "/" + name
	g.logger.Debug("fetching repository", "repo", fullName)
	repo, _, err := g.restClient.Repositories.Get(ctx, owner, name)
	if err != nil {
		return nil, &RequestError{Repository: fullName, Op: "get repository", Err: err}
	}
	return &RepoInfo{
		Stars: repo.GetStargazersCount(),
		Forks: repo.GetForksCount(),
	}, nil
}

// FetchActivity fetches branch and commit counts using the GraphQL API.
func (g *GitHubGateway) FetchActivity(ctx context.Context, owner, name string) (*Activity, error) {
	fullName := owner + "/" + name
	g.logger.Debug("fetching activity", "repo", fullName)
	variables := map[string]interface{}{
		"owner":     githubv4.String(owner),
		"name":      githubv4.String(name),
		"refPrefix": githubv4.String("refs/heads/"),
	}
	var q repositoryActivityQuery
	if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
		return nil, &RequestError{Repository: fullName, Op: "execute GraphQL query", Err: err}
	}
	activity := &Activity{Branches: q.Repository.Refs.TotalCount}
	// empty repositories have no default branch
	if ref := q.Repository.DefaultBranchRef; ref != nil {
		activity.Commits = ref.Target.Commit.History.TotalCount
	}
	return activity, nil
}
