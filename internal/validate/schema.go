package validate

import (
	"fmt"

	"github.com/naka-gawa/fetgithub/internal/domain"
	"github.com/tidwall/gjson"
)

// metricKeys lists the keys accepted inside "metrics".
var metricKeys = map[string]func(m *domain.Metrics, v bool){
	"branches": func(m *domain.Metrics, v bool) { m.Branches = v },
	"forks":    func(m *domain.Metrics, v bool) { m.Forks = v },
	"stars":    func(m *domain.Metrics, v bool) { m.Stars = v },
	"commits":  func(m *domain.Metrics, v bool) { m.Commits = v },
}

// CheckSchema verifies the shape and primitive types of doc and converts it
// into a typed Config. The first violation is returned as a SchemaError.
// No GitHub-specific rules are applied here.
func CheckSchema(doc gjson.Result) (*domain.Config, error) {
	if !doc.IsObject() {
		return nil, schemaErr("$", "top-level value must be an object")
	}

	if err := checkDuplicateKeys(doc, ""); err != nil {
		return nil, err
	}

	cfg := &domain.Config{Metrics: domain.AllMetrics()}

	username := doc.Get("username")
	if !username.Exists() {
		return nil, schemaErr("username", "required field is missing")
	}
	if username.Type != gjson.String {
		return nil, schemaErr("username", "must be a string")
	}
	cfg.Username = username.Str

	repos, err := checkRepositories(doc.Get("repositories"))
	if err != nil {
		return nil, err
	}
	cfg.Repositories = repos

	if path := doc.Get("path"); path.Exists() {
		pc, err := checkPath(path)
		if err != nil {
			return nil, err
		}
		cfg.Path = pc
	}

	if timeout := doc.Get("timeout"); timeout.Exists() {
		if timeout.Type != gjson.Number {
			return nil, schemaErr("timeout", "must be a number")
		}
		seconds := timeout.Num
		cfg.Timeout = &seconds
	}

	if metrics := doc.Get("metrics"); metrics.Exists() {
		m, err := checkMetrics(metrics)
		if err != nil {
			return nil, err
		}
		cfg.Metrics = m
	}

	return cfg, nil
}

func checkRepositories(v gjson.Result) ([]string, error) {
	if !v.Exists() {
		return nil, schemaErr("repositories", "required field is missing")
	}
	if !v.IsArray() {
		return nil, schemaErr("repositories", "must be an array of strings")
	}
	items := v.Array()
	if len(items) == 0 {
		return nil, schemaErr("repositories", "must contain at least one entry")
	}
	repos := make([]string, 0, len(items))
	for i, item := range items {
		if item.Type != gjson.String {
			return nil, schemaErr(fmt.Sprintf("repositories[%d]", i), "must be a string")
		}
		repos = append(repos, item.Str)
	}
	return repos, nil
}

func checkPath(v gjson.Result) (*domain.PathConfig, error) {
	if !v.IsObject() {
		return nil, schemaErr("path", "must be an object")
	}
	if err := checkDuplicateKeys(v, "path."); err != nil {
		return nil, err
	}
	pc := &domain.PathConfig{}
	for _, f := range []struct {
		key string
		dst *string
	}{
		{"output_path", &pc.OutputPath},
		{"log_path", &pc.LogPath},
	} {
		field := v.Get(f.key)
		if !field.Exists() {
			return nil, schemaErr("path."+f.key, "required field is missing")
		}
		if field.Type != gjson.String {
			return nil, schemaErr("path."+f.key, "must be a string")
		}
		*f.dst = field.Str
	}
	return pc, nil
}

func checkMetrics(v gjson.Result) (domain.Metrics, error) {
	if !v.IsObject() {
		return domain.Metrics{}, schemaErr("metrics", "must be an object")
	}
	if err := checkDuplicateKeys(v, "metrics."); err != nil {
		return domain.Metrics{}, err
	}
	m := domain.Metrics{Set: true}
	var err error
	v.ForEach(func(key, value gjson.Result) bool {
		set, ok := metricKeys[key.Str]
		if !ok {
			err = schemaErr("metrics."+key.Str, "unknown metric, expected one of branches, forks, stars, commits")
			return false
		}
		if value.Type != gjson.True && value.Type != gjson.False {
			err = schemaErr("metrics."+key.Str, "must be a boolean")
			return false
		}
		set(&m, value.Bool())
		return true
	})
	if err != nil {
		return domain.Metrics{}, err
	}
	return m, nil
}

// checkDuplicateKeys rejects an object that repeats a key. gjson resolves
// lookups to the first occurrence, so a repeated key would otherwise be
// silently ignored.
func checkDuplicateKeys(obj gjson.Result, prefix string) error {
	seen := make(map[string]struct{})
	var err error
	obj.ForEach(func(key, _ gjson.Result) bool {
		if _, ok := seen[key.Str]; ok {
			err = schemaErr(prefix+key.Str, "duplicate key")
			return false
		}
		seen[key.Str] = struct{}{}
		return true
	})
	return err
}
