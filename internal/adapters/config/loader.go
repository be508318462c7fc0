// Package config provides the pipeline file loader.
package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/shlex"
	"go.trai.ch/saga/internal/core/domain"
	"go.trai.ch/saga/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

var validStepNameRegex = regexp.MustCompile("^[a-zA-Z0-9_-]+$")

// Load reads the plan at path. An empty path searches for saga.yaml upward
// from the working directory.
func (l *Loader) Load(path string) (*domain.Plan, error) {
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, zerr.Wrap(err, "failed to resolve working directory")
		}
		path, err = findPlanFile(cwd)
		if err != nil {
			return nil, err
		}
	}

	// #nosec G304 -- path names a user-provided pipeline file
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, zerr.With(domain.ErrConfigNotFound, "path", path)
	}
	if err != nil {
		err = zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
		return nil, zerr.With(err, "path", path)
	}

	var file Planfile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		err = zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
		return nil, zerr.With(err, "path", path)
	}

	return l.toPlan(&file)
}

func findPlanFile(cwd string) (string, error) {
	for dir := cwd; ; {
		candidate := filepath.Join(dir, domain.PlanFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", zerr.With(domain.ErrConfigNotFound, "cwd", cwd)
		}
		dir = parent
	}
}

func (l *Loader) toPlan(file *Planfile) (*domain.Plan, error) {
	if len(file.Steps) == 0 {
		return nil, domain.ErrNoStepsDefined
	}

	plan := &domain.Plan{
		SagaCmd: file.SagaCmd,
		Flag:    file.Flag,
		Steps:   make([]domain.Step, 0, len(file.Steps)),
	}

	seen := make(map[string]bool, len(file.Steps))
	for _, dto := range file.Steps {
		step, err := toStep(dto)
		if err != nil {
			return nil, err
		}
		if seen[step.Name] {
			return nil, zerr.With(domain.ErrDuplicateStepName, "step", step.Name)
		}
		seen[step.Name] = true
		plan.Steps = append(plan.Steps, *step)
	}

	return plan, nil
}

func toStep(dto *StepDTO) (*domain.Step, error) {
	if !validStepNameRegex.MatchString(dto.Name) {
		err := zerr.Wrap(domain.ErrConfigParseFailed, "invalid step name")
		return nil, zerr.With(err, "step", dto.Name)
	}
	if dto.Library == "" || dto.Tool == "" {
		err := zerr.Wrap(domain.ErrConfigParseFailed, "step requires library and tool")
		return nil, zerr.With(err, "step", dto.Name)
	}

	params, err := decodeParams(&dto.Params)
	if err != nil {
		return nil, zerr.With(err, "step", dto.Name)
	}

	extra, err := decodeExtra(dto.Extra)
	if err != nil {
		return nil, zerr.With(err, "step", dto.Name)
	}
	params = append(params, extra...)

	return &domain.Step{
		Name:    dto.Name,
		Library: dto.Library,
		Tool:    dto.Tool,
		Params:  params,
	}, nil
}

// decodeParams walks the raw mapping node directly so the parameter order of
// the file is preserved; decoding into a Go map would shuffle it.
func decodeParams(node *yaml.Node) ([]domain.Param, error) {
	if node.Kind == 0 {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, zerr.Wrap(domain.ErrConfigParseFailed, "params must be a mapping")
	}

	params := make([]domain.Param, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if value.Kind != yaml.ScalarNode {
			err := zerr.Wrap(domain.ErrConfigParseFailed, "param values must be scalars")
			return nil, zerr.With(err, "param", key.Value)
		}
		params = append(params, domain.Param{Name: key.Value, Value: value.Value})
	}
	return params, nil
}

// decodeExtra splits a shell-syntax token string like "-METHOD=1 -UNIT=degree"
// into additional parameters.
func decodeExtra(extra string) ([]domain.Param, error) {
	if extra == "" {
		return nil, nil
	}

	tokens, err := shlex.Split(extra)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}

	params := make([]domain.Param, 0, len(tokens))
	for _, token := range tokens {
		name, value, found := strings.Cut(strings.TrimPrefix(token, "-"), "=")
		if !found || name == "" {
			err := zerr.Wrap(domain.ErrConfigParseFailed, "extra tokens must look like -NAME=value")
			return nil, zerr.With(err, "token", token)
		}
		params = append(params, domain.Param{Name: name, Value: value})
	}
	return params, nil
}
