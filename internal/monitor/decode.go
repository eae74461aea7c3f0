package monitor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Input formats understood by Decode.
const (
	FormatAuto = "auto"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// NormalizeFormat maps user supplied format names onto the known formats.
func NormalizeFormat(value string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", FormatAuto:
		return FormatAuto, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown input format %q", value)
	}
}

// Decode parses data in the given format into an untyped value for Validate.
func Decode(data []byte, format string) (any, error) {
	format, err := NormalizeFormat(format)
	if err != nil {
		return nil, err
	}
	if format == FormatAuto {
		format = sniffFormat(data)
	}
	if format == FormatJSON {
		return DecodeJSON(data)
	}
	return DecodeYAML(data)
}

// DecodeJSON parses a single JSON document.
func DecodeJSON(data []byte) (any, error) {
	var v any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("decode json: trailing data after document")
	}
	return v, nil
}

// DecodeYAML parses a single YAML document.
func DecodeYAML(data []byte) (any, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return v, nil
}

// sniffFormat picks JSON for documents starting with an object or array.
func sniffFormat(data []byte) string {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return FormatJSON
	}
	return FormatYAML
}
