package validate

import "fmt"

// Kind classifies a pipeline failure.
type Kind int

const (
	// FileNotFound means the path does not exist or could not be read.
	FileNotFound Kind = iota + 1
	// MalformedJSON means the file exists but is not syntactically valid JSON.
	MalformedJSON
	// SchemaError means a required key is missing or has the wrong type.
	SchemaError
	// GitHubValidationError means a GitHub naming or bounds rule failed.
	GitHubValidationError
)

func (k Kind) String() string {
	switch k {
	case FileNotFound:
		return "FileNotFound"
	case MalformedJSON:
		return "MalformedJSON"
	case SchemaError:
		return "SchemaError"
	case GitHubValidationError:
		return "GitHubValidationError"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Stage identifies the pipeline component that raised an Error.
type Stage int

const (
	StageLoad Stage = iota + 1
	StageSchema
	StageSemantic
)

func (s Stage) String() string {
	switch s {
	case StageLoad:
		return "load"
	case StageSchema:
		return "schema"
	case StageSemantic:
		return "github"
	default:
		return "unknown"
	}
}

// Error is the failure value produced by every pipeline stage.
type Error struct {
	Kind   Kind
	Field  string // offending field, empty for load failures
	Reason string
	Err    error // underlying cause, if any
}

// Stage returns the stage that produced e.
func (e *Error) Stage() Stage {
	switch e.Kind {
	case FileNotFound, MalformedJSON:
		return StageLoad
	case SchemaError:
		return StageSchema
	default:
		return StageSemantic
	}
}

func (e *Error) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Field, e.Reason)
}

func (e *Error) Unwrap() error { return e.Err }

func schemaErr(field, reason string) *Error {
	return &Error{Kind: SchemaError, Field: field, Reason: reason}
}
