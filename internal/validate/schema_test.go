package validate

import (
	"errors"
	"testing"

	"github.com/naka-gawa/fetgithub/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestCheckSchema(t *testing.T) {
	testCases := []struct {
		name          string
		input         string
		expectedField string
		expectError   bool
	}{
		{name: "minimal document", input: `{"username":"octocat","repositories":["Hello-World"]}`},
		{name: "empty username is left to the github stage", input: `{"username":"","repositories":["Hello-World"]}`},
		{
			name: "full document",
			input: `{"username":"octocat","repositories":["Hello-World","Spoon-Knife"],
				"path":{"output_path":"./output","log_path":"./logs"},"timeout":30,
				"metrics":{"branches":true,"forks":false,"stars":true,"commits":false}}`,
		},
		{name: "top level array", input: `[1,2]`, expectError: true, expectedField: "$"},
		{name: "top level string", input: `"octocat"`, expectError: true, expectedField: "$"},
		{name: "missing username", input: `{"repositories":["Hello-World"]}`, expectError: true, expectedField: "username"},
		{name: "null username", input: `{"username":null,"repositories":["a"]}`, expectError: true, expectedField: "username"},
		{name: "numeric username", input: `{"username":42,"repositories":["a"]}`, expectError: true, expectedField: "username"},
		{name: "missing repositories", input: `{"username":"octocat"}`, expectError: true, expectedField: "repositories"},
		{name: "repositories not an array", input: `{"username":"octocat","repositories":"a"}`, expectError: true, expectedField: "repositories"},
		{name: "empty repositories", input: `{"username":"octocat","repositories":[]}`, expectError: true, expectedField: "repositories"},
		{name: "non-string repository", input: `{"username":"octocat","repositories":["a",7]}`, expectError: true, expectedField: "repositories[1]"},
		{name: "path not an object", input: `{"username":"octocat","repositories":["a"],"path":"./out"}`, expectError: true, expectedField: "path"},
		{name: "path missing log_path", input: `{"username":"octocat","repositories":["a"],"path":{"output_path":"./out"}}`, expectError: true, expectedField: "path.log_path"},
		{name: "path output_path not a string", input: `{"username":"octocat","repositories":["a"],"path":{"output_path":1,"log_path":"./logs"}}`, expectError: true, expectedField: "path.output_path"},
		{name: "timeout as string", input: `{"username":"octocat","repositories":["a"],"timeout":"30"}`, expectError: true, expectedField: "timeout"},
		{name: "metrics not an object", input: `{"username":"octocat","repositories":["a"],"metrics":["stars"]}`, expectError: true, expectedField: "metrics"},
		{name: "unknown metric", input: `{"username":"octocat","repositories":["a"],"metrics":{"stars":true,"watchers":true}}`, expectError: true, expectedField: "metrics.watchers"},
		{name: "duplicate top level key", input: `{"username":"octocat","repositories":["Hello-World"],"username":5}`, expectError: true, expectedField: "username"},
		{name: "duplicate path key", input: `{"username":"octocat","repositories":["a"],"path":{"output_path":"./o","log_path":"./l","log_path":"./x"}}`, expectError: true, expectedField: "path.log_path"},
		{name: "duplicate metric key", input: `{"username":"octocat","repositories":["a"],"metrics":{"stars":true,"stars":false}}`, expectError: true, expectedField: "metrics.stars"},
		{name: "non-boolean metric", input: `{"username":"octocat","repositories":["a"],"metrics":{"stars":"yes"}}`, expectError: true, expectedField: "metrics.stars"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := CheckSchema(gjson.Parse(tc.input))
			if tc.expectError {
				require.Error(t, err)
				assert.Nil(t, cfg)
				var verr *Error
				require.True(t, errors.As(err, &verr))
				assert.Equal(t, SchemaError, verr.Kind)
				assert.Equal(t, StageSchema, verr.Stage())
				assert.Equal(t, tc.expectedField, verr.Field)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, cfg)
			}
		})
	}
}

func TestCheckSchema_ConvertsDocument(t *testing.T) {
	doc := gjson.Parse(`{
		"username": "octocat",
		"repositories": ["Hello-World", "Spoon-Knife"],
		"path": {"output_path": "./output", "log_path": "./logs"},
		"timeout": 12.5,
		"metrics": {"stars": true, "commits": false}
	}`)

	cfg, err := CheckSchema(doc)
	require.NoError(t, err)

	timeout := 12.5
	assert.Equal(t, &domain.Config{
		Username:     "octocat",
		Repositories: []string{"Hello-World", "Spoon-Knife"},
		Path:         &domain.PathConfig{OutputPath: "./output", LogPath: "./logs"},
		Timeout:      &timeout,
		Metrics:      domain.Metrics{Stars: true, Set: true},
	}, cfg)
}

func TestCheckSchema_Defaults(t *testing.T) {
	cfg, err := CheckSchema(gjson.Parse(`{"username":"octocat","repositories":["Hello-World"]}`))
	require.NoError(t, err)

	assert.Nil(t, cfg.Path)
	assert.Nil(t, cfg.Timeout)
	assert.Equal(t, domain.DefaultTimeout, cfg.TimeoutDuration())
	assert.Equal(t, domain.AllMetrics(), cfg.Metrics)
	assert.False(t, cfg.Metrics.Set)
}
