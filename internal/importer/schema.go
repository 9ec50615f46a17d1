package importer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ScheduleSchema is the top-level structure of a schedule file. Files may
// be written in YAML or JSON; JSON is read as a YAML subset.
type ScheduleSchema struct {
	Defaults *DefaultsImport `yaml:"defaults,omitempty" json:"defaults,omitempty"`
	Projects []ProjectImport `yaml:"projects" json:"projects"`
}

// DefaultsImport holds values that cascade to every project and phase.
type DefaultsImport struct {
	Status  string `yaml:"status,omitempty" json:"status,omitempty"`
	Movable *bool  `yaml:"movable,omitempty" json:"movable,omitempty"`
}

// ProjectImport defines one project and its phases.
type ProjectImport struct {
	ShortID      string        `yaml:"short_id" json:"short_id"`
	Name         string        `yaml:"name" json:"name"`
	Status       string        `yaml:"status,omitempty" json:"status,omitempty"`
	Color        string        `yaml:"color,omitempty" json:"color,omitempty"`
	Organization string        `yaml:"organization,omitempty" json:"organization,omitempty"`
	Manager      string        `yaml:"manager,omitempty" json:"manager,omitempty"`
	Phases       []PhaseImport `yaml:"phases" json:"phases"`
}

// PhaseImport defines a phase. Either End or DurationDays sets its length.
type PhaseImport struct {
	Name         string `yaml:"name" json:"name"`
	Type         string `yaml:"type" json:"type"`
	Start        string `yaml:"start" json:"start"`
	End          string `yaml:"end,omitempty" json:"end,omitempty"`
	DurationDays *int   `yaml:"duration_days,omitempty" json:"duration_days,omitempty"`
	Movable      *bool  `yaml:"movable,omitempty" json:"movable,omitempty"`
}

// LoadScheduleSchema reads and parses a schedule file.
func LoadScheduleSchema(path string) (*ScheduleSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScheduleSchema(data)
}

// ParseScheduleSchema parses schedule data, rejecting unknown fields.
func ParseScheduleSchema(data []byte) (*ScheduleSchema, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var schema ScheduleSchema
	if err := dec.Decode(&schema); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parsing schedule file: file is empty")
		}
		return nil, fmt.Errorf("parsing schedule file: %w", err)
	}
	return &schema, nil
}
