// Package report renders validation outcomes for people and machines.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/frudas24/monitorshape/internal/monitor"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Result is the outcome of validating one input document.
type Result struct {
	Source   string            `json:"source,omitempty" yaml:"source,omitempty"`
	Valid    bool              `json:"valid" yaml:"valid"`
	Monitors []monitor.Monitor `json:"monitors,omitempty" yaml:"monitors,omitempty"`
	Errors   map[string]string `json:"errors,omitempty" yaml:"errors,omitempty"`
	Error    string            `json:"error,omitempty" yaml:"error,omitempty"`
}

// ParseFormat canonicalizes an output format name.
func ParseFormat(value string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q", value)
	}
}

// FromValidation builds a Result. Shape mismatches populate Errors; any other
// error is carried as text in Error.
func FromValidation(source string, monitors []monitor.Monitor, err error) Result {
	if err == nil {
		if monitors == nil {
			monitors = []monitor.Monitor{}
		}
		return Result{Source: source, Valid: true, Monitors: monitors}
	}
	var shapeErr *monitor.ShapeError
	if errors.As(err, &shapeErr) {
		return Result{Source: source, Errors: shapeErr.Fields}
	}
	return Result{Source: source, Error: err.Error()}
}

// AllValid reports whether every result passed.
func AllValid(results []Result) bool {
	for _, r := range results {
		if !r.Valid {
			return false
		}
	}
	return true
}

// Write renders results in the requested format.
func Write(w io.Writer, format string, results []Result) error {
	format, err := ParseFormat(format)
	if err != nil {
		return err
	}
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(results); err != nil {
			return err
		}
		return enc.Close()
	default:
		return writeText(w, results)
	}
}

// writeText prints one block per result.
func writeText(w io.Writer, results []Result) error {
	var b strings.Builder
	for _, r := range results {
		source := r.Source
		if source == "" {
			source = "-"
		}
		switch {
		case r.Valid:
			fmt.Fprintf(&b, "%s: ok (%d %s)\n", source, len(r.Monitors), plural(len(r.Monitors), "monitor", "monitors"))
			for _, m := range r.Monitors {
				b.WriteString("  " + Summary(m) + "\n")
			}
		case r.Error != "":
			fmt.Fprintf(&b, "%s: error: %s\n", source, r.Error)
		default:
			shapeErr := &monitor.ShapeError{Fields: r.Errors}
			fmt.Fprintf(&b, "%s: invalid (%d %s)\n", source, len(r.Errors), plural(len(r.Errors), "problem", "problems"))
			for _, p := range shapeErr.Paths() {
				fmt.Fprintf(&b, "  %s: %s\n", p, r.Errors[p])
			}
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Summary describes a monitor on one line.
func Summary(m monitor.Monitor) string {
	line := fmt.Sprintf("%s (id %d) %dx%d@%.2f at %d,%d scale %.2f transform %s workspace %s",
		m.Name, m.ID, m.Width, m.Height, m.RefreshRate, m.X, m.Y, m.Scale, m.Transform, m.ActiveWorkspace.Name)
	if m.Focused {
		line += " focused"
	}
	if m.Disabled {
		line += " disabled"
	}
	if m.MirrorOf != "" && m.MirrorOf != "none" {
		line += " mirror-of " + m.MirrorOf
	}
	return line
}

// plural picks the singular or plural noun for n.
func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
