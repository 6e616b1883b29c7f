package director

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// WriteScenario writes a scenario to a YAML file, or TOML when path ends
// in .toml
func WriteScenario(scenario *Scenario, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	encode := EncodeScenario
	if isTOML(path) {
		encode = EncodeScenarioTOML
	}
	if err := encode(f, scenario); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// EncodeScenario writes scenario as YAML with two-space indentation
func EncodeScenario(w io.Writer, scenario *Scenario) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(scenario); err != nil {
		return fmt.Errorf("encode scenario: %w", err)
	}
	return enc.Close()
}

// EncodeScenarioTOML writes scenario as TOML. Keys match the YAML form.
func EncodeScenarioTOML(w io.Writer, scenario *Scenario) error {
	var buf bytes.Buffer
	if err := EncodeScenario(&buf, scenario); err != nil {
		return err
	}
	var doc map[string]interface{}
	if err := yaml.Unmarshal(buf.Bytes(), &doc); err != nil {
		return fmt.Errorf("encode scenario: %w", err)
	}
	enc := toml.NewEncoder(w)
	enc.SetIndentTables(true)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode scenario: %w", err)
	}
	return nil
}

// ReadScenario reads a scenario from a YAML or TOML file, fills defaults
// and validates it
func ReadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if isTOML(path) {
		if data, err = tomlToYAML(data); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return scenario, nil
}

// ParseScenario decodes, fills defaults and validates YAML scenario data.
// Unknown fields are rejected.
func ParseScenario(data []byte) (*Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var scenario Scenario
	if err := dec.Decode(&scenario); err != nil {
		return nil, err
	}
	scenario.ApplyDefaults()
	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	return &scenario, nil
}

func tomlToYAML(data []byte) ([]byte, error) {
	var doc map[string]interface{}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return yaml.Marshal(doc)
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}
