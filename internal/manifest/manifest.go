// Package manifest applies a declarative YAML overlay to a built command
// tree: help text overrides and parameter schemas can live in a manifest
// file next to the deployment instead of in code. Handlers still come
// from code; the manifest only configures metadata and validation.
package manifest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"slackcmds/internal/logger"
	"slackcmds/pkg/registry"
	"slackcmds/pkg/validation"
)

// File is the top-level manifest document.
type File struct {
	Commands []CommandEntry `yaml:"commands"`
}

// CommandEntry configures one command node, addressed by its full path.
type CommandEntry struct {
	Path       string           `yaml:"path"`
	ShortHelp  string           `yaml:"short_help"`
	LongHelp   string           `yaml:"long_help"`
	Usage      string           `yaml:"usage"`
	BlockKit   bool             `yaml:"block_kit"`
	AcceptArgs *bool            `yaml:"accept_arguments"`
	Parameters []ParameterEntry `yaml:"parameters"`
}

// ParameterEntry declares one parameter schema in manifest form.
type ParameterEntry struct {
	Name       string           `yaml:"name"`
	Type       string           `yaml:"type"`
	Required   bool             `yaml:"required"`
	Default    any              `yaml:"default"`
	Choices    []string         `yaml:"choices"`
	Help       string           `yaml:"help"`
	Validators []ValidatorEntry `yaml:"validators"`
}

// ValidatorEntry references either a built-in validator with an argument
// or a custom validator registered by name.
type ValidatorEntry struct {
	MinLength *int     `yaml:"min_length"`
	MaxLength *int     `yaml:"max_length"`
	MinValue  *float64 `yaml:"min_value"`
	MaxValue  *float64 `yaml:"max_value"`
	Pattern   string   `yaml:"pattern"`
	Message   string   `yaml:"message"`
	Named     string   `yaml:"named"`
}

// LoadFile reads and applies a manifest file to the registry.
func LoadFile(path string, reg *registry.Registry) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading manifest: %w", err)
	}
	return Apply(data, reg)
}

// Apply parses manifest YAML and applies every command entry to the
// registry. Entries referencing unknown command paths, unknown types, or
// unknown named validators are configuration errors and fail the load.
func Apply(data []byte, reg *registry.Registry) error {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing manifest: %w", err)
	}

	for _, entry := range file.Commands {
		if err := applyEntry(entry, reg); err != nil {
			return err
		}
	}
	return nil
}

func applyEntry(entry CommandEntry, reg *registry.Registry) error {
	cmd, ok := reg.Lookup(entry.Path)
	if !ok {
		return fmt.Errorf("manifest references unknown command path %q", entry.Path)
	}

	cmd.SetHelp(entry.ShortHelp, entry.LongHelp, entry.Usage)
	if entry.BlockKit {
		cmd.UseBlockKit(true)
	}
	if entry.AcceptArgs != nil {
		cmd.SetAcceptsArguments(*entry.AcceptArgs)
	}

	for _, paramEntry := range entry.Parameters {
		param, err := buildParameter(paramEntry)
		if err != nil {
			return fmt.Errorf("command %q parameter %q: %w", entry.Path, paramEntry.Name, err)
		}
		cmd.AddParameter(param)
	}

	logger.Debug("Applied manifest entry", "command", entry.Path, "parameters", len(entry.Parameters))
	return nil
}

func buildParameter(entry ParameterEntry) (validation.Parameter, error) {
	param := validation.Parameter{
		Name:     entry.Name,
		Type:     entry.Type,
		Required: entry.Required,
		Default:  entry.Default,
		Choices:  entry.Choices,
		HelpText: entry.Help,
	}
	if !validation.DefaultTypes.Has(entry.Type) {
		return validation.Parameter{}, fmt.Errorf("unknown parameter type %q", entry.Type)
	}
	if entry.Type == "choice" && len(entry.Choices) == 0 {
		return validation.Parameter{}, fmt.Errorf("choice parameter requires choices")
	}

	for _, validatorEntry := range entry.Validators {
		validator, err := buildValidator(validatorEntry)
		if err != nil {
			return validation.Parameter{}, err
		}
		param.Validators = append(param.Validators, validator)
	}
	return param, nil
}

func buildValidator(entry ValidatorEntry) (validation.ValidatorFunc, error) {
	switch {
	case entry.MinLength != nil:
		return validation.MinLength(*entry.MinLength), nil
	case entry.MaxLength != nil:
		return validation.MaxLength(*entry.MaxLength), nil
	case entry.MinValue != nil:
		return validation.MinValue(*entry.MinValue), nil
	case entry.MaxValue != nil:
		return validation.MaxValue(*entry.MaxValue), nil
	case entry.Pattern != "":
		return validation.Pattern(entry.Pattern, entry.Message), nil
	case entry.Named != "":
		validator, ok := validation.DefaultValidators.Get(entry.Named)
		if !ok {
			return nil, fmt.Errorf("unknown named validator %q", entry.Named)
		}
		return validator, nil
	default:
		return nil, fmt.Errorf("validator entry declares no rule")
	}
}
