package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Attribute is a single key/value pair attached to a field or to the form tag.
// Values are scalars: string, bool, int, float64 or nil.
type Attribute struct {
	Key   string
	Value any
}

// Attr constructs an Attribute.
func Attr(key string, value any) Attribute {
	return Attribute{Key: key, Value: value}
}

// Attributes is an insertion-ordered attribute list. Keys are unique; Set
// replaces an existing entry in place.
type Attributes []Attribute

// Get returns the value stored under key.
func (a Attributes) Get(key string) (any, bool) {
	for _, attr := range a {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return nil, false
}

// Has reports whether key is present, regardless of its value.
func (a Attributes) Has(key string) bool {
	_, ok := a.Get(key)
	return ok
}

// Truthy reports whether key is present with a truthy value.
func (a Attributes) Truthy(key string) bool {
	value, ok := a.Get(key)
	if !ok {
		return false
	}
	return IsTruthy(value)
}

// String returns the string form of the value stored under key.
func (a Attributes) String(key string) string {
	value, ok := a.Get(key)
	if !ok {
		return ""
	}
	return ScalarString(value)
}

// Set returns a copy of a with key set to value.
func (a Attributes) Set(key string, value any) Attributes {
	out := a.Clone()
	for idx := range out {
		if out[idx].Key == key {
			out[idx].Value = value
			return out
		}
	}
	return append(out, Attribute{Key: key, Value: value})
}

// Without returns a copy of a minus the provided keys.
func (a Attributes) Without(keys ...string) Attributes {
	if len(a) == 0 {
		return nil
	}
	drop := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		drop[key] = struct{}{}
	}
	out := make(Attributes, 0, len(a))
	for _, attr := range a {
		if _, skip := drop[attr.Key]; skip {
			continue
		}
		out = append(out, attr)
	}
	return out
}

// Clone returns a copy of the list.
func (a Attributes) Clone() Attributes {
	if a == nil {
		return nil
	}
	out := make(Attributes, len(a))
	copy(out, a)
	return out
}

// IsTruthy applies the attribute truthiness rules: true, non-zero numbers and
// non-empty strings other than "false" and "0".
func IsTruthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		trimmed := strings.TrimSpace(v)
		return trimmed != "" && trimmed != "0" && !strings.EqualFold(trimmed, "false")
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	case json.Number:
		return v.String() != "0"
	default:
		return true
	}
}

// ScalarString formats a scalar value the way it appears in HTML.
func ScalarString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// MarshalJSON encodes the list as a JSON object preserving order.
func (a Attributes) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for idx, attr := range a {
		if idx > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(attr.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(attr.Value)
		if err != nil {
			return nil, fmt.Errorf("model: marshal attribute %q: %w", attr.Key, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object keeping key order.
func (a *Attributes) UnmarshalJSON(data []byte) error {
	var out Attributes
	err := decodeOrderedJSON(data, func(key string, raw any) error {
		value, err := normalizeScalar(raw)
		if err != nil {
			return fmt.Errorf("model: attribute %q: %w", key, err)
		}
		out = out.Set(key, value)
		return nil
	})
	if err != nil {
		return err
	}
	*a = out
	return nil
}

// MarshalYAML encodes the list as an ordered YAML mapping.
func (a Attributes) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, attr := range a {
		value := &yaml.Node{}
		if err := value.Encode(attr.Value); err != nil {
			return nil, fmt.Errorf("model: marshal attribute %q: %w", attr.Key, err)
		}
		node.Content = append(node.Content, stringNode(attr.Key), value)
	}
	return node, nil
}

// UnmarshalYAML decodes an ordered YAML mapping.
func (a *Attributes) UnmarshalYAML(node *yaml.Node) error {
	var out Attributes
	err := decodeOrderedYAML(node, func(key string, raw any) error {
		value, err := normalizeScalar(raw)
		if err != nil {
			return fmt.Errorf("model: attribute %q: %w", key, err)
		}
		out = out.Set(key, value)
		return nil
	})
	if err != nil {
		return err
	}
	*a = out
	return nil
}

func normalizeScalar(raw any) (any, error) {
	switch v := raw.(type) {
	case nil, string, bool, float64:
		return v, nil
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case uint64:
		return int(v), nil
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return int(i), nil
		}
		f, err := v.Float64()
		if err != nil {
			return nil, err
		}
		return f, nil
	default:
		return nil, fmt.Errorf("value must be a scalar, got %T", raw)
	}
}

func decodeOrderedJSON(data []byte, fn func(key string, raw any) error) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("model: expected JSON object")
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("model: expected object key, got %v", keyTok)
		}
		var raw any
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		if err := fn(key, raw); err != nil {
			return err
		}
	}
	_, err = dec.Token()
	return err
}

func decodeOrderedYAML(node *yaml.Node, fn func(key string, raw any) error) error {
	if node == nil {
		return nil
	}
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("model: expected YAML mapping at line %d", node.Line)
	}
	for idx := 0; idx+1 < len(node.Content); idx += 2 {
		key := node.Content[idx].Value
		var raw any
		if err := node.Content[idx+1].Decode(&raw); err != nil {
			return err
		}
		if err := fn(key, raw); err != nil {
			return err
		}
	}
	return nil
}

func stringNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}
