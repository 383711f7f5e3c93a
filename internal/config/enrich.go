package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jbrokmeier/tagungsplan/internal/match"
)

// Enrich holds the batch-tool configuration: where the export and the
// program file live and how strict the fuzzy matching is. Values come from
// an optional YAML file with flag overrides on top.
type Enrich struct {
	ExportHTML  string  `yaml:"export_html"`
	ProgramJSON string  `yaml:"program_json"`
	Threshold   float64 `yaml:"similarity_threshold"`
}

// DefaultEnrich returns the paths the deployment uses.
func DefaultEnrich() Enrich {
	return Enrich{
		ExportHTML:  "static/programm.html",
		ProgramJSON: "static/dhd2026_programm.json",
		Threshold:   match.DefaultThreshold,
	}
}

// LoadEnrich reads the YAML config at path over the defaults. An empty path
// returns the defaults; a named file that does not exist is an error.
func LoadEnrich(path string) (Enrich, error) {
	cfg := DefaultEnrich()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func (c Enrich) validate() error {
	if c.ExportHTML == "" {
		return fmt.Errorf("export_html must not be empty")
	}
	if c.ProgramJSON == "" {
		return fmt.Errorf("program_json must not be empty")
	}
	if c.Threshold <= 0 || c.Threshold > 1 {
		return fmt.Errorf("similarity_threshold must be in (0,1], got %v", c.Threshold)
	}
	return nil
}
