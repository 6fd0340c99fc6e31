// Package exitcode translates pipeline and fetch errors into the process
// exit codes of the fetgithub CLI.
package exitcode

import (
	"errors"
	"fmt"

	"github.com/naka-gawa/fetgithub/internal/gateway"
	"github.com/naka-gawa/fetgithub/internal/validate"
)

// Code is a process exit code.
type Code int

// Exit codes returned by the fetgithub CLI.
const (
	// OK indicates validation, and any downstream fetch, succeeded.
	OK Code = 0
	// Usage indicates no arguments or missing required arguments.
	Usage Code = 1
	// FileNotFound indicates the configuration file does not exist.
	FileNotFound Code = 2
	// MalformedJSON indicates the configuration file is not valid JSON.
	MalformedJSON Code = 3
	// Schema indicates the JSON does not match the required schema.
	Schema Code = 4
	// GitHubValidation indicates a GitHub naming or bounds rule failed.
	GitHubValidation Code = 5
	// FetchFailed indicates a GitHub API request failed.
	FetchFailed Code = 6
	// Unexpected is returned for any other failure.
	Unexpected Code = 99
)

func (c Code) String() string {
	switch c {
	case OK:
		return "ok"
	case Usage:
		return "usage"
	case FileNotFound:
		return "file not found"
	case MalformedJSON:
		return "malformed json"
	case Schema:
		return "schema error"
	case GitHubValidation:
		return "github validation error"
	case FetchFailed:
		return "fetch failed"
	case Unexpected:
		return "unexpected error"
	default:
		return fmt.Sprintf("code %d", int(c))
	}
}

// UsageError reports missing or invalid command-line arguments.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string { return e.Msg }

// Usagef returns a UsageError with a formatted message.
func Usagef(format string, args ...any) error {
	return &UsageError{Msg: fmt.Sprintf(format, args...)}
}

// Result is a resolved exit code with its one-line message.
type Result struct {
	Code    Code
	Message string
}

// Resolve maps err to an exit code and message. A nil error resolves to OK.
func Resolve(err error) Result {
	if err == nil {
		return Result{Code: OK, Message: "ok"}
	}

	var verr *validate.Error
	if errors.As(err, &verr) {
		return fromValidation(verr)
	}

	var uerr *UsageError
	if errors.As(err, &uerr) {
		return Result{Code: Usage, Message: "Error: " + uerr.Msg}
	}

	var rerr *gateway.RequestError
	if errors.As(err, &rerr) {
		return Result{Code: FetchFailed, Message: fmt.Sprintf("GitHub API request failed: %v", rerr)}
	}

	return Result{Code: Unexpected, Message: fmt.Sprintf("Unexpected error: %v", err)}
}

// ResolveOutcome maps a validation outcome to an exit code and message.
func ResolveOutcome(o validate.Outcome) Result {
	if o.Valid() {
		return Result{Code: OK, Message: "configuration is valid"}
	}
	if o.Err == nil {
		return Result{Code: Unexpected, Message: "Unexpected error: validation produced no result"}
	}
	return Resolve(o.Err)
}

func fromValidation(e *validate.Error) Result {
	switch e.Kind {
	case validate.FileNotFound:
		return Result{Code: FileNotFound, Message: "Error: " + e.Reason}
	case validate.MalformedJSON:
		return Result{Code: MalformedJSON, Message: "Error: Invalid JSON format. " + e.Reason}
	case validate.SchemaError:
		return Result{Code: Schema, Message: fmt.Sprintf("Schema Validation Error: %s: %s", e.Field, e.Reason)}
	case validate.GitHubValidationError:
		return Result{Code: GitHubValidation, Message: "Configuration validation failed: " + e.Reason}
	default:
		return Result{Code: Unexpected, Message: fmt.Sprintf("Unexpected error: %v", e)}
	}
}
