package config

import (
	_ "embed"
	"fmt"
	"path"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

//go:embed schema.cue
var schemaCUE []byte

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString("config validation failed:\n")
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", err.Field, err.Message))
	}
	return sb.String()
}

// Validator validates configuration against the embedded CUE schema.
type Validator struct {
	ctx    *cue.Context
	schema cue.Value
}

// NewValidator creates a new configuration validator.
func NewValidator() (*Validator, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileBytes(schemaCUE, cue.Filename("schema.cue"))
	if schema.Err() != nil {
		return nil, fmt.Errorf("compiling schema: %w", schema.Err())
	}

	def := schema.LookupPath(cue.ParsePath("#Config"))
	if !def.Exists() {
		return nil, fmt.Errorf("schema has no #Config definition")
	}

	return &Validator{
		ctx:    ctx,
		schema: def,
	}, nil
}

// Validate validates the given configuration.
func (v *Validator) Validate(cfg *Config) error {
	var errs ValidationErrors

	val := v.ctx.Encode(cfg)
	if val.Err() != nil {
		return fmt.Errorf("encoding config: %w", val.Err())
	}

	if err := v.schema.Unify(val).Validate(cue.Concrete(true)); err != nil {
		seen := make(map[string]bool)
		for _, e := range cueerrors.Errors(err) {
			field := fieldPath(e.Path())
			// A failed disjunction reports once per branch; keep the summary.
			if seen[field] {
				continue
			}
			seen[field] = true
			format, args := e.Msg()
			errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
		}
	}

	for i, p := range cfg.Projects {
		field := fmt.Sprintf("projects.%d", i)
		switch {
		case p.Path == "" && !p.Executable:
			errs = append(errs, ValidationError{Field: field, Message: "one of path or executable is required"})
		case p.Path != "" && p.Executable:
			errs = append(errs, ValidationError{Field: field, Message: "path and executable are mutually exclusive"})
		case p.RootFolder != "" && !p.Executable:
			errs = append(errs, ValidationError{Field: field + ".rootFolder", Message: "only applies with executable"})
		}
	}

	for i, m := range append(append([]ModelConfig(nil), cfg.MetaModels...), cfg.Profiles...) {
		if strings.Contains("/"+m.Path+"/", "/../") || path.IsAbs(m.Path) {
			errs = append(errs, ValidationError{
				Field:   modelField(cfg, i),
				Message: "must be a path relative to the project root",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// fieldPath joins a CUE error path, dropping the leading schema definition.
func fieldPath(p []string) string {
	if len(p) > 0 && strings.HasPrefix(p[0], "#") {
		p = p[1:]
	}
	if len(p) == 0 {
		return "config"
	}
	return strings.Join(p, ".")
}

func modelField(cfg *Config, i int) string {
	if i < len(cfg.MetaModels) {
		return fmt.Sprintf("metamodels.%d.path", i)
	}
	return fmt.Sprintf("profiles.%d.path", i-len(cfg.MetaModels))
}

// ValidateFile validates a configuration file at the given path.
func (v *Validator) ValidateFile(file string) error {
	loader := NewLoader()
	cfg, err := loader.Load(file)
	if err != nil {
		return fmt.Errorf("loading config file: %w", err)
	}

	return v.Validate(cfg)
}
