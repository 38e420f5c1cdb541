package form

import "github.com/goliatone/go-formbuilder/pkg/model"

// FieldOption customises a field declared through AddField.
type FieldOption func(*model.Field)

// Attr sets one HTML attribute.
func Attr(key string, value any) FieldOption {
	return func(f *model.Field) {
		f.Attributes = f.Attributes.Set(key, value)
	}
}

// Attrs sets several attributes in order.
func Attrs(attrs ...model.Attribute) FieldOption {
	return func(f *model.Field) {
		for _, attr := range attrs {
			f.Attributes = f.Attributes.Set(attr.Key, attr.Value)
		}
	}
}

// Required marks the field as required.
func Required() FieldOption {
	return Attr(model.AttrRequired, true)
}

// Rule sets the validate expression, e.g. "email" or "url,minlength:8".
func Rule(expr string) FieldOption {
	return Attr(model.AttrValidate, expr)
}

// Options sets the choices of a select or checkbox/radio group.
func Options(options ...model.Option) FieldOption {
	return func(f *model.Field) {
		f.Options = append(f.Options.Clone(), options...)
	}
}

// Help sets the help text rendered under the control.
func Help(text string) FieldOption {
	return func(f *model.Field) {
		f.Help = text
	}
}

// Value pins the rendered value. It wins over submitted data.
func Value(value any) FieldOption {
	return Attr(model.AttrValue, value)
}

// Checked pre-checks a checkbox or radio.
func Checked() FieldOption {
	return Attr(model.AttrChecked, true)
}
