package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// ErrMalformed wraps every decode failure.
var ErrMalformed = errors.New("schema: malformed document")

// Format names an interchange encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// EncodeJSON renders form as indented JSON.
func EncodeJSON(form model.Form) ([]byte, error) {
	out, err := json.MarshalIndent(FromForm(form), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("schema: encode json: %w", err)
	}
	return out, nil
}

// EncodeYAML renders form as YAML.
func EncodeYAML(form model.Form) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(FromForm(form)); err != nil {
		return nil, fmt.Errorf("schema: encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("schema: encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// Encode renders form in the requested format.
func Encode(form model.Form, format Format) ([]byte, error) {
	switch format {
	case FormatJSON, "":
		return EncodeJSON(form)
	case FormatYAML:
		return EncodeYAML(form)
	default:
		return nil, fmt.Errorf("schema: unsupported format %q", format)
	}
}

// Detect reports JSON when the first non-space byte opens an object and
// YAML otherwise.
func Detect(data []byte) Format {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return FormatJSON
	}
	return FormatYAML
}

// Decode parses a JSON or YAML document.
func Decode(data []byte) (Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Document{}, fmt.Errorf("%w: empty input", ErrMalformed)
	}
	if Detect(data) == FormatJSON {
		return DecodeJSON(data)
	}
	return DecodeYAML(data)
}

// DecodeJSON parses a JSON document.
func DecodeJSON(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("%w: decode json: %w", ErrMalformed, err)
	}
	return doc, nil
}

// DecodeYAML parses a YAML document.
func DecodeYAML(data []byte) (Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("%w: decode yaml: %w", ErrMalformed, err)
	}
	return doc, nil
}
