// Package program reads and writes the structured program JSON file.
package program

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jbrokmeier/tagungsplan/internal/models"
)

// Load reads and parses the program file. A missing or malformed file is a
// fatal condition for the batch tools; there is nothing to partially recover.
func Load(path string) (*models.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read program file: %w", err)
	}
	var p models.Program
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse program file %s: %w", path, err)
	}
	return &p, nil
}

// Marshal serializes the program the way the file is kept on disk: two-space
// indent, struct-declared key order, and non-ASCII text (plus <, >, &) left
// verbatim so the German content stays readable in diffs.
func Marshal(p *models.Program) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return nil, fmt.Errorf("encode program: %w", err)
	}
	return buf.Bytes(), nil
}

// Save overwrites the program file and returns the number of bytes written.
func Save(path string, p *models.Program) (int, error) {
	data, err := Marshal(p)
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return 0, fmt.Errorf("write program file: %w", err)
	}
	return len(data), nil
}
