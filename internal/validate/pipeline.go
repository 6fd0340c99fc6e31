// Package validate implements the configuration validation pipeline:
// load, schema check, GitHub rules. Each stage runs only when the previous
// one succeeded and the first failure ends the run.
package validate

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/naka-gawa/fetgithub/internal/domain"
)

// State is a position in the pipeline's linear state machine.
type State int

const (
	StateStart State = iota
	StateLoaded
	StateSchemaChecked
	StateSemanticallyValid
	StateDone
	StateError
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "Start"
	case StateLoaded:
		return "Loaded"
	case StateSchemaChecked:
		return "SchemaChecked"
	case StateSemanticallyValid:
		return "SemanticallyValid"
	case StateDone:
		return "Done"
	case StateError:
		return "Error"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Outcome is the result of one pipeline run. Exactly one of Config and Err is
// set. State is the terminal state (StateDone or StateError) and Reached is
// the last non-terminal state the run got to.
type Outcome struct {
	Config  *domain.Config
	Err     error
	State   State
	Reached State
}

// Valid reports whether the run succeeded.
func (o Outcome) Valid() bool { return o.Err == nil && o.Config != nil }

// Pipeline runs the validation stages in order.
type Pipeline struct {
	github *GitHubValidator
	logger *log.Logger
}

// NewPipeline creates a Pipeline.
func NewPipeline(logger *log.Logger) (*Pipeline, error) {
	gv, err := NewGitHubValidator()
	if err != nil {
		return nil, err
	}
	return &Pipeline{github: gv, logger: logger}, nil
}

// Run validates the configuration file at path.
func (p *Pipeline) Run(path string) Outcome {
	state := StateStart
	fail := func(err error) Outcome {
		var verr *Error
		if errors.As(err, &verr) {
			p.logger.Debug("validation failed", "stage", verr.Stage(), "field", verr.Field, "reason", verr.Reason)
		} else {
			p.logger.Debug("validation failed", "err", err)
		}
		return Outcome{Err: err, State: StateError, Reached: state}
	}

	p.logger.Debug("loading configuration", "path", path)
	doc, err := Load(path)
	if err != nil {
		return fail(err)
	}
	state = StateLoaded

	cfg, err := CheckSchema(doc)
	if err != nil {
		return fail(err)
	}
	state = StateSchemaChecked
	p.logger.Debug("schema check passed", "username", cfg.Username, "repositories", len(cfg.Repositories))

	if err := p.github.Validate(cfg); err != nil {
		return fail(err)
	}
	state = StateSemanticallyValid
	p.logger.Debug("github validation passed")

	return Outcome{Config: cfg, State: StateDone, Reached: state}
}
