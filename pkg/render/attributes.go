package render

import (
	"html"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// internalKeys are builder-level attributes that never reach the markup
// verbatim. Renderers consume them explicitly.
var internalKeys = []string{model.AttrChecked, model.AttrValue, model.AttrValidate, model.AttrClass}

// PassThrough strips the builder-level keys from attrs.
func PassThrough(attrs model.Attributes) model.Attributes {
	return attrs.Without(internalKeys...)
}

// Attributes renders attrs as space separated key="value" pairs in
// insertion order. true renders as key="key"; false and nil are omitted.
// Keys and values are escaped.
func Attributes(attrs model.Attributes) string {
	if len(attrs) == 0 {
		return ""
	}
	parts := make([]string, 0, len(attrs))
	for _, attr := range attrs {
		key := strings.TrimSpace(attr.Key)
		if key == "" {
			continue
		}
		var value string
		switch v := attr.Value.(type) {
		case nil:
			continue
		case bool:
			if !v {
				continue
			}
			value = key
		default:
			value = model.ScalarString(v)
		}
		parts = append(parts, html.EscapeString(key)+`="`+html.EscapeString(value)+`"`)
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// JoinClasses joins the non-empty class lists with single spaces.
func JoinClasses(classes ...string) string {
	keep := make([]string, 0, len(classes))
	for _, class := range classes {
		if trimmed := strings.Join(strings.Fields(class), " "); trimmed != "" {
			keep = append(keep, trimmed)
		}
	}
	return strings.Join(keep, " ")
}
