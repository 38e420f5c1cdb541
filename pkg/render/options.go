package render

import (
	"github.com/goliatone/go-formbuilder/pkg/formdata"
	"github.com/goliatone/go-formbuilder/pkg/validation"
)

// RenderOptions carry the per-request state a renderer needs beyond the form
// declaration itself.
type RenderOptions struct {
	// Values re-populates controls. Keys follow the submitted structure, so
	// `user[email]` lives under Values["user"]["email"].
	Values formdata.Values
	// Errors holds the messages of the last validation, keyed by base name.
	Errors validation.Errors
	// Required marks which fields get the required marker.
	Required *validation.Registry
	// ShowRequiredMarker toggles the asterisk after required labels.
	ShowRequiredMarker bool
	// Classes overrides the CSS class set. Zero fields fall back to the
	// Bootstrap defaults.
	Classes Classes
}
