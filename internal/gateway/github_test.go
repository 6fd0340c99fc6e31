package gateway

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestGateway creates a GitHubGateway that communicates with a mock HTTP server.
func setupTestGateway(t *testing.T, handler http.Handler) (*GitHubGateway, *httptest.Server) {
	server := httptest.NewServer(handler)

	restClient := github.NewClient(server.Client())
	baseURL, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	restClient.BaseURL = baseURL

	graphqlClient := githubv4.NewEnterpriseClient(server.URL+"/graphql", server.Client())

	gateway := &GitHubGateway{
		restClient:    restClient,
		graphqlClient: graphqlClient,
		logger:        log.New(io.Discard),
	}

	return gateway, server
}

func TestGitHubGateway_FetchRepository(t *testing.T) {
	testCases := []struct {
		name           string
		handlerFunc    func(w http.ResponseWriter, r *http.Request)
		expected       *RepoInfo
		expectError    bool
		expectedErrMsg string
	}{
		{
			name: "happy path - returns stars and forks",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/repos/octocat/Hello-World", r.URL.Path)
				w.WriteHeader(http.StatusOK)
				fmt.Fprint(w, `{"full_name": "octocat/Hello-World", "stargazers_count": 100, "forks_count": 50}`)
			},
			expected:    &RepoInfo{Stars: 100, Forks: 50},
			expectError: false,
		},
		{
			name: "error case - repository not found",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				fmt.Fprint(w, `{"message": "Not Found"}`)
			},
			expectError:    true,
			expectedErrMsg: "failed to get repository for octocat/Hello-World",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gateway, server := setupTestGateway(t, http.HandlerFunc(tc.handlerFunc))
			defer server.Close()

			info, err := gateway.FetchRepository(context.Background(), "octocat", "Hello-World")
			if tc.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectedErrMsg)
				var reqErr *RequestError
				assert.True(t, errors.As(err, &reqErr))
				assert.Equal(t, "octocat/Hello-World", reqErr.Repository)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, info)
			}
		})
	}
}

func TestGitHubGateway_FetchActivity(t *testing.T) {
	testCases := []struct {
		name           string
		responseBody   string
		expected       *Activity
		expectError    bool
		expectedErrMsg string
	}{
		{
			name:         "happy path - counts branches and commits",
			responseBody: `{"data":{"repository":{"refs":{"totalCount":3},"defaultBranchRef":{"target":{"history":{"totalCount":42}}}}}}`,
			expected:     &Activity{Branches: 3, Commits: 42},
		},
		{
			name:         "empty repository - no default branch",
			responseBody: `{"data":{"repository":{"refs":{"totalCount":0},"defaultBranchRef":null}}}`,
			expected:     &Activity{Branches: 0, Commits: 0},
		},
		{
			name:           "error case - GraphQL error",
			responseBody:   `{"errors":[{"message":"Could not resolve to a Repository"}]}`,
			expectError:    true,
			expectedErrMsg: "failed to execute GraphQL query",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/graphql", r.URL.Path)
				body, err := io.ReadAll(r.Body)
				require.NoError(t, err)
				assert.Contains(t, string(body), "refs/heads/")
				assert.Contains(t, string(body), "Hello-World")

				w.WriteHeader(http.StatusOK)
				fmt.Fprint(w, tc.responseBody)
			}
			gateway, server := setupTestGateway(t, http.HandlerFunc(handler))
			defer server.Close()

			activity, err := gateway.FetchActivity(context.Background(), "octocat", "Hello-World")
			if tc.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectedErrMsg)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, activity)
			}
		})
	}
}

func TestNewGitHubGateway(t *testing.T) {
	fetcher, err := NewGitHubGateway("token", Endpoints{
		REST:    "https://ghe.example.com/api/v3/",
		GraphQL: "https://ghe.example.com/api/graphql",
	}, log.New(io.Discard))
	require.NoError(t, err)

	gw, ok := fetcher.(*GitHubGateway)
	require.True(t, ok)
	assert.Equal(t, "https://ghe.example.com/api/v3/", gw.restClient.BaseURL.String())
}
