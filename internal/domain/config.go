// Package domain contains the core data structures and domain logic for the application.
package domain

import "time"

const (
	// DefaultTimeout applies when the configuration omits "timeout".
	DefaultTimeout = 30 * time.Second
	// MaxTimeoutSeconds is the largest accepted "timeout" value. It must match
	// the lte bound on Config.Timeout.
	MaxTimeoutSeconds = 300
)

// Config is the typed configuration document. It is built once by the schema
// stage and only read afterwards.
type Config struct {
	Username     string      `json:"username" validate:"required,github_username"`
	Repositories []string    `json:"repositories" validate:"unique,dive,github_repo"`
	Path         *PathConfig `json:"path,omitempty"`
	Timeout      *float64    `json:"timeout,omitempty" validate:"omitempty,gt=0,lte=300"`
	Metrics      Metrics     `json:"metrics"`
}

// PathConfig holds the optional output and log directories.
type PathConfig struct {
	OutputPath string `json:"output_path" validate:"required,writable_path"`
	LogPath    string `json:"log_path" validate:"required,writable_path"`
}

// Metrics is the metric selection. Set is false when the document had no
// "metrics" object, in which case every metric is enabled.
type Metrics struct {
	Branches bool `json:"branches"`
	Forks    bool `json:"forks"`
	Stars    bool `json:"stars"`
	Commits  bool `json:"commits"`
	Set      bool `json:"-"`
}

// AllMetrics returns a selection with every metric enabled.
func AllMetrics() Metrics {
	return Metrics{Branches: true, Forks: true, Stars: true, Commits: true}
}

// Any reports whether at least one metric is enabled.
func (m Metrics) Any() bool {
	return m.Branches || m.Forks || m.Stars || m.Commits
}

// TimeoutDuration returns the configured timeout or DefaultTimeout.
func (c *Config) TimeoutDuration() time.Duration {
	if c.Timeout == nil {
		return DefaultTimeout
	}
	return time.Duration(*c.Timeout * float64(time.Second))
}
