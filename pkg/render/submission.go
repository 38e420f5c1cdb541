package render

import (
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// HiddenField is a hidden input emitted next to the declared controls.
type HiddenField struct {
	Name  string
	Value string
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{
		Name:  strings.TrimSpace(name),
		Value: model.ScalarString(value),
	}
}

// CSRFToken constructs the hidden field carrying a CSRF token.
func CSRFToken(name, token string) HiddenField {
	return Hidden(name, token)
}
