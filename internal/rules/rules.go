// Package rules holds the file selection rules compiled into treedump.
//
// The rule sets are not configurable at runtime. They are decoded once from
// the embedded defaults.yaml.
package rules

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Rules decides which files are exported and which directories are pruned.
type Rules struct {
	// Output is the file name of the generated artifact.
	Output string `yaml:"output"`
	// Extensions are suffixes matched against the end of a file name.
	Extensions []string `yaml:"extensions"`
	// Names are literal file names matched exactly.
	Names []string `yaml:"names"`
	// IgnoreDirs are directory names pruned at any depth.
	IgnoreDirs []string `yaml:"ignore_dirs"`
}

// Default returns the compiled-in rules.
// It panics if the embedded file is invalid, which tests guard against.
func Default() Rules {
	r, err := Parse(defaultsYAML)
	if err != nil {
		panic(fmt.Sprintf("invalid embedded rules: %v", err))
	}
	return r
}

// Parse decodes rules from YAML. Unknown keys are rejected.
func Parse(data []byte) (Rules, error) {
	var r Rules
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&r); err != nil {
		return Rules{}, fmt.Errorf("decoding rules: %w", err)
	}
	if err := r.Validate(); err != nil {
		return Rules{}, err
	}
	return r, nil
}

// Validate checks that the rules can select something and name an output.
func (r Rules) Validate() error {
	if r.Output == "" {
		return errors.New("rules: output file name is required")
	}
	if strings.ContainsAny(r.Output, `/\`) {
		return fmt.Errorf("rules: output %q must be a bare file name", r.Output)
	}
	if len(r.Extensions) == 0 && len(r.Names) == 0 {
		return errors.New("rules: at least one extension or name is required")
	}
	for _, ext := range r.Extensions {
		if ext == "" {
			return errors.New("rules: empty extension")
		}
	}
	return nil
}

// Includes reports whether a file name qualifies for export.
func (r Rules) Includes(name string) bool {
	if slices.Contains(r.Names, name) {
		return true
	}
	for _, ext := range r.Extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// Ignores reports whether a directory name is pruned from traversal.
func (r Rules) Ignores(dir string) bool {
	return slices.Contains(r.IgnoreDirs, dir)
}
