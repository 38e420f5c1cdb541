package model

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Option is a single choice of a select or radio/checkbox group.
type Option struct {
	Value string
	Label string
}

// Opt constructs an Option.
func Opt(value, label string) Option {
	return Option{Value: value, Label: label}
}

// Options is an ordered list of choices. In schemas it is encoded as an
// object mapping value to display text.
type Options []Option

// Label returns the display text for value.
func (o Options) Label(value string) (string, bool) {
	for _, opt := range o {
		if opt.Value == value {
			return opt.Label, true
		}
	}
	return "", false
}

// Values returns the option values in order.
func (o Options) Values() []string {
	out := make([]string, 0, len(o))
	for _, opt := range o {
		out = append(out, opt.Value)
	}
	return out
}

// Clone returns a copy of the list.
func (o Options) Clone() Options {
	if o == nil {
		return nil
	}
	out := make(Options, len(o))
	copy(out, o)
	return out
}

// MarshalJSON encodes the options as an ordered JSON object.
func (o Options) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for idx, opt := range o {
		if idx > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(opt.Value)
		if err != nil {
			return nil, err
		}
		label, err := json.Marshal(opt.Label)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(label)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an ordered JSON object.
func (o *Options) UnmarshalJSON(data []byte) error {
	var out Options
	err := decodeOrderedJSON(data, func(key string, raw any) error {
		label, err := optionLabel(key, raw)
		if err != nil {
			return err
		}
		out = append(out, Option{Value: key, Label: label})
		return nil
	})
	if err != nil {
		return err
	}
	*o = out
	return nil
}

// MarshalYAML encodes the options as an ordered YAML mapping.
func (o Options) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, opt := range o {
		node.Content = append(node.Content, stringNode(opt.Value), stringNode(opt.Label))
	}
	return node, nil
}

// UnmarshalYAML decodes an ordered YAML mapping.
func (o *Options) UnmarshalYAML(node *yaml.Node) error {
	var out Options
	err := decodeOrderedYAML(node, func(key string, raw any) error {
		label, err := optionLabel(key, raw)
		if err != nil {
			return err
		}
		out = append(out, Option{Value: key, Label: label})
		return nil
	})
	if err != nil {
		return err
	}
	*o = out
	return nil
}

func optionLabel(key string, raw any) (string, error) {
	value, err := normalizeScalar(raw)
	if err != nil {
		return "", fmt.Errorf("model: option %q: %w", key, err)
	}
	return ScalarString(value), nil
}
