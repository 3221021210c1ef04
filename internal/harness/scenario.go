package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario defines a rendering conformance scenario.
// Scenarios declare a program registry and a list of terms with their
// expected canonical renderings.
type Scenario struct {
	// Name uniquely identifies this scenario; it is also the golden file name.
	Name string `yaml:"name"`

	// Description explains what this scenario covers.
	Description string `yaml:"description"`

	// Programs lists CUE definition files or directories to compile into
	// the registry. Paths are relative to the scenario file location.
	Programs []string `yaml:"programs,omitempty"`

	// Items declares registry items inline. They are appended after any
	// CUE-declared items, in order, and share the same id space.
	Items []ItemDecl `yaml:"items,omitempty"`

	// Terms are the cases to render, in order.
	Terms []TermCase `yaml:"terms"`
}

// ItemDecl declares a single registry item inline.
type ItemDecl struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind"`
}

// TermCase is one term to render.
type TermCase struct {
	// Label names the case in reports and golden files.
	Label string `yaml:"label"`

	// Term is the structured encoding of the IR term to render.
	Term TermSpec `yaml:"term"`

	// Expect is the expected rendering. If empty, the case is
	// report-only and never fails by itself.
	Expect string `yaml:"expect,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	return LoadScenarioWithBasePath(path, filepath.Dir(path))
}

// LoadScenarioWithBasePath reads and parses a scenario YAML file,
// resolving program paths relative to the provided base path.
func LoadScenarioWithBasePath(path, basePath string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "term:" vs "terms:".
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	for i, progPath := range scenario.Programs {
		if !filepath.IsAbs(progPath) && basePath != "" {
			scenario.Programs[i] = filepath.Join(basePath, progPath)
		}
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Terms) == 0 {
		return fmt.Errorf("terms list is required and must be non-empty")
	}
	seen := make(map[string]bool, len(s.Terms))
	for i, tc := range s.Terms {
		if tc.Label == "" {
			return fmt.Errorf("terms[%d]: label is required", i)
		}
		if seen[tc.Label] {
			return fmt.Errorf("terms[%d]: duplicate label %q", i, tc.Label)
		}
		seen[tc.Label] = true
	}
	return nil
}
