package validate

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/naka-gawa/fetgithub/internal/domain"
	"golang.org/x/sys/unix"
)

const (
	maxUsernameLength = 39
	maxRepoNameLength = 100
)

var (
	// Alphanumeric runs joined by single hyphens.
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9]+(?:-[A-Za-z0-9]+)*$`)
	repoNamePattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)
)

// GitHubValidator applies GitHub naming and bounds rules to a schema-valid
// Config. The only I/O it performs is inspecting the configured output and
// log directories; it never creates them.
type GitHubValidator struct {
	validate *validator.Validate
	trans    ut.Translator
}

// NewGitHubValidator builds the validator and its English messages.
func NewGitHubValidator() (*GitHubValidator, error) {
	enLoc := en.New()
	uni := ut.New(enLoc, enLoc)
	trans, _ := uni.GetTranslator("en")

	v := validator.New()

	// report json names, not Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		tag := fld.Tag.Get("json")
		if idx := strings.Index(tag, ","); idx >= 0 {
			tag = tag[:idx]
		}
		if tag == "" || tag == "-" {
			return fld.Name
		}
		return tag
	})

	if err := en_translations.RegisterDefaultTranslations(v, trans); err != nil {
		return nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	if err := v.RegisterValidation("github_username", isGitHubUsername); err != nil {
		return nil, fmt.Errorf("failed to register github_username: %w", err)
	}
	if err := v.RegisterValidation("github_repo", isGitHubRepoName); err != nil {
		return nil, fmt.Errorf("failed to register github_repo: %w", err)
	}
	if err := v.RegisterValidation("writable_path", isWritablePath); err != nil {
		return nil, fmt.Errorf("failed to register writable_path: %w", err)
	}
	v.RegisterStructValidation(metricsSelected, domain.Config{})

	messages := []struct {
		tag  string
		text string
		arg  func(fe validator.FieldError) string
	}{
		{
			tag:  "github_username",
			text: "{0} '{1}' is invalid: use at most 39 alphanumeric characters and single hyphens, not at the start or end",
			arg:  func(fe validator.FieldError) string { return fmt.Sprint(fe.Value()) },
		},
		{
			tag:  "github_repo",
			text: "{0} '{1}' is invalid: use 1 to 100 alphanumeric characters, hyphens, underscores and dots, not ending with a dot",
			arg:  func(fe validator.FieldError) string { return fmt.Sprint(fe.Value()) },
		},
		{
			tag:  "writable_path",
			text: "{0} '{1}' must be a writable directory or creatable inside one",
			arg:  func(fe validator.FieldError) string { return fmt.Sprint(fe.Value()) },
		},
		{
			tag:  "unique",
			text: "{0} contains duplicate entry '{1}'",
			arg:  func(fe validator.FieldError) string { return firstDuplicate(fe.Value()) },
		},
		{
			tag:  "anymetric",
			text: "{0} must enable at least one of branches, forks, stars, commits",
			arg:  func(fe validator.FieldError) string { return "" },
		},
	}
	for _, m := range messages {
		if err := registerMessage(v, trans, m.tag, m.text, m.arg); err != nil {
			return nil, err
		}
	}

	return &GitHubValidator{validate: v, trans: trans}, nil
}

// Validate returns a GitHubValidationError for the first rule cfg breaks, in
// field order: username, repositories, path, timeout, metrics.
func (g *GitHubValidator) Validate(cfg *domain.Config) error {
	err := g.validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("failed to run github validation: %w", err)
	}
	fe := verrs[0]
	return &Error{
		Kind:   GitHubValidationError,
		Field:  fieldPath(fe),
		Reason: fe.Translate(g.trans),
		Err:    fe,
	}
}

func isGitHubUsername(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return len(s) <= maxUsernameLength && usernamePattern.MatchString(s)
}

func isGitHubRepoName(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" || len(s) > maxRepoNameLength {
		return false
	}
	if strings.HasSuffix(s, ".") {
		return false
	}
	return repoNamePattern.MatchString(s)
}

// isWritablePath accepts an existing writable directory, or a missing one
// whose nearest existing ancestor is a writable directory.
func isWritablePath(fl validator.FieldLevel) bool {
	dir, err := filepath.Abs(fl.Field().String())
	if err != nil {
		return false
	}
	for {
		info, err := os.Stat(dir)
		if err == nil {
			return info.IsDir() && unix.Access(dir, unix.W_OK) == nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return false
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return false
		}
		dir = parent
	}
}

func metricsSelected(sl validator.StructLevel) {
	cfg := sl.Current().Interface().(domain.Config)
	if cfg.Metrics.Set && !cfg.Metrics.Any() {
		sl.ReportError(cfg.Metrics, "metrics", "Metrics", "anymetric", "")
	}
}

// fieldPath drops the root struct name, e.g. "Config.path.log_path" becomes
// "path.log_path".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return fe.Field()
}

func firstDuplicate(v interface{}) string {
	repos, _ := v.([]string)
	seen := make(map[string]struct{}, len(repos))
	for _, r := range repos {
		if _, ok := seen[r]; ok {
			return r
		}
		seen[r] = struct{}{}
	}
	return ""
}

func registerMessage(v *validator.Validate, trans ut.Translator, tag, text string, arg func(validator.FieldError) string) error {
	err := v.RegisterTranslation(tag, trans,
		func(t ut.Translator) error {
			return t.Add(tag, text, true)
		},
		func(t ut.Translator, fe validator.FieldError) string {
			msg, err := t.T(tag, fe.Field(), arg(fe))
			if err != nil {
				return fe.Error()
			}
			return msg
		},
	)
	if err != nil {
		return fmt.Errorf("failed to register %s message: %w", tag, err)
	}
	return nil
}
