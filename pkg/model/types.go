package model

import "strings"

// FieldType enumerates the controls the renderers know how to emit. Unknown
// values are rendered as text-like inputs carrying the type verbatim.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldEmail    FieldType = "email"
	FieldPassword FieldType = "password"
	FieldNumber   FieldType = "number"
	FieldTel      FieldType = "tel"
	FieldURL      FieldType = "url"
	FieldDate     FieldType = "date"
	FieldHidden   FieldType = "hidden"
	FieldTextarea FieldType = "textarea"
	FieldSelect   FieldType = "select"
	FieldCheckbox FieldType = "checkbox"
	FieldRadio    FieldType = "radio"
	FieldFile     FieldType = "file"
)

// FieldTypes returns every built-in field type.
func FieldTypes() []FieldType {
	return []FieldType{
		FieldText,
		FieldEmail,
		FieldPassword,
		FieldNumber,
		FieldTel,
		FieldURL,
		FieldDate,
		FieldHidden,
		FieldTextarea,
		FieldSelect,
		FieldCheckbox,
		FieldRadio,
		FieldFile,
	}
}

// IsKnown reports whether t is one of the built-in field types.
func (t FieldType) IsKnown() bool {
	for _, known := range FieldTypes() {
		if known == t {
			return true
		}
	}
	return false
}

// Attribute keys with builder-level meaning. They are stored alongside the
// pass-through HTML attributes of a field.
const (
	AttrRequired  = "required"
	AttrValue     = "value"
	AttrChecked   = "checked"
	AttrValidate  = "validate"
	AttrClass     = "class"
	AttrMultiple  = "multiple"
	AttrMinLength = "minlength"
)

// Field describes one form control.
type Field struct {
	Name       string     `json:"name" yaml:"name"`
	Type       FieldType  `json:"type" yaml:"type"`
	Label      string     `json:"label,omitempty" yaml:"label,omitempty"`
	Attributes Attributes `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Options    Options    `json:"options,omitempty" yaml:"options,omitempty"`
	Help       string     `json:"help,omitempty" yaml:"help,omitempty"`
}

// Kind implements Element.
func (Field) Kind() Kind { return KindField }

func (Field) element() {}

// InputType returns the normalised control type. An empty type is text.
func (f Field) InputType() FieldType {
	typ := FieldType(strings.ToLower(strings.TrimSpace(string(f.Type))))
	if typ == "" {
		return FieldText
	}
	return typ
}

// IsRequired reports whether the field carries a truthy required attribute.
func (f Field) IsRequired() bool {
	return f.Attributes.Truthy(AttrRequired)
}

// IsMultiple reports whether the control accepts several values, either via
// the `multiple` attribute or the `[]` name suffix.
func (f Field) IsMultiple() bool {
	return f.Attributes.Truthy(AttrMultiple) || strings.HasSuffix(strings.TrimSpace(f.Name), "[]")
}

// DisplayLabel returns the declared label or a titleised version of the name.
func (f Field) DisplayLabel() string {
	if label := strings.TrimSpace(f.Label); label != "" {
		return label
	}
	return DefaultLabeler(f.Name)
}

// Clone returns a deep copy of the field.
func (f Field) Clone() Field {
	out := f
	out.Attributes = f.Attributes.Clone()
	out.Options = f.Options.Clone()
	return out
}

// Form is the renderer-facing snapshot of a declared form.
type Form struct {
	Method      string
	Action      string
	ID          string
	Class       string
	Attributes  Attributes
	SubmitLabel string
	Multipart   bool
	Elements    []Element
}

// Fields returns the field descriptors of the form in declaration order.
func (f Form) Fields() []Field {
	out := make([]Field, 0, len(f.Elements))
	for _, element := range f.Elements {
		if field, ok := element.(Field); ok {
			out = append(out, field)
		}
	}
	return out
}

// FieldByName returns the first declared field with the given name.
func (f Form) FieldByName(name string) (Field, bool) {
	for _, element := range f.Elements {
		if field, ok := element.(Field); ok && field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}
