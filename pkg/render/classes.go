package render

import (
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// Theme token keys consumed by the HTML renderer.
const (
	TokenGroup          = "form.group"
	TokenLabel          = "form.label"
	TokenControl        = "form.control"
	TokenSelect         = "form.select"
	TokenCheck          = "form.check"
	TokenCheckInput     = "form.check-input"
	TokenCheckLabel     = "form.check-label"
	TokenInvalid        = "form.invalid"
	TokenFeedback       = "form.feedback"
	TokenHelp           = "form.help"
	TokenRequiredMarker = "form.required-marker"
	TokenSubmit         = "form.submit"
	TokenFieldset       = "form.fieldset"
	TokenLegend         = "form.legend"
)

// BootstrapTheme is the name of the built-in manifest.
const BootstrapTheme = "bootstrap"

// Classes is the CSS class vocabulary used by the HTML renderer.
type Classes struct {
	Group          string
	Label          string
	Control        string
	Select         string
	Check          string
	CheckInput     string
	CheckLabel     string
	Invalid        string
	Feedback       string
	Help           string
	RequiredMarker string
	Submit         string
	Fieldset       string
	Legend         string
}

// DefaultClasses returns the Bootstrap 5 class set.
func DefaultClasses() Classes {
	return Classes{
		Group:          "mb-3",
		Label:          "form-label",
		Control:        "form-control",
		Select:         "form-select",
		Check:          "form-check",
		CheckInput:     "form-check-input",
		CheckLabel:     "form-check-label",
		Invalid:        "is-invalid",
		Feedback:       "invalid-feedback",
		Help:           "form-text",
		RequiredMarker: "text-danger",
		Submit:         "btn btn-primary",
		Fieldset:       "mb-3",
		Legend:         "fs-5",
	}
}

func (c *Classes) fields() map[string]*string {
	return map[string]*string{
		TokenGroup:          &c.Group,
		TokenLabel:          &c.Label,
		TokenControl:        &c.Control,
		TokenSelect:         &c.Select,
		TokenCheck:          &c.Check,
		TokenCheckInput:     &c.CheckInput,
		TokenCheckLabel:     &c.CheckLabel,
		TokenInvalid:        &c.Invalid,
		TokenFeedback:       &c.Feedback,
		TokenHelp:           &c.Help,
		TokenRequiredMarker: &c.RequiredMarker,
		TokenSubmit:         &c.Submit,
		TokenFieldset:       &c.Fieldset,
		TokenLegend:         &c.Legend,
	}
}

// Tokens returns the class set keyed by theme token.
func (c Classes) Tokens() map[string]string {
	out := make(map[string]string)
	for key, ptr := range c.fields() {
		out[key] = *ptr
	}
	return out
}

// WithDefaults fills every empty entry from DefaultClasses.
func (c Classes) WithDefaults() Classes {
	return c.Merge(DefaultClasses().Tokens(), false)
}

// Merge applies tokens onto c. Unknown keys are ignored; when overwrite is
// false only empty entries are filled.
func (c Classes) Merge(tokens map[string]string, overwrite bool) Classes {
	out := c
	fields := out.fields()
	for key, value := range tokens {
		ptr, ok := fields[key]
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if overwrite || *ptr == "" {
			*ptr = value
		}
	}
	return out
}

// BootstrapManifest describes the built-in class set as a go-theme manifest.
// The "compact" variant tightens spacing and shrinks the submit button.
func BootstrapManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    BootstrapTheme,
		Version: "5.3.0",
		Tokens:  DefaultClasses().Tokens(),
		Variants: map[string]theme.Variant{
			"compact": {
				Tokens: map[string]string{
					TokenGroup:    "mb-2",
					TokenControl:  "form-control form-control-sm",
					TokenSelect:   "form-select form-select-sm",
					TokenSubmit:   "btn btn-primary btn-sm",
					TokenFieldset: "mb-2",
				},
			},
		},
	}
}

// ClassesFromSelection merges the manifest tokens and then the selected
// variant's tokens over the Bootstrap defaults.
func ClassesFromSelection(selection *theme.Selection) Classes {
	classes := DefaultClasses()
	if selection == nil || selection.Manifest == nil {
		return classes
	}
	classes = classes.Merge(selection.Manifest.Tokens, true)
	if selection.Variant == "" {
		return classes
	}
	if variant, ok := selection.Manifest.Variants[selection.Variant]; ok {
		classes = classes.Merge(variant.Tokens, true)
	}
	return classes
}

// ResolveClasses asks selector for the named theme and variant.
func ResolveClasses(selector theme.ThemeSelector, name, variant string) (Classes, error) {
	if selector == nil {
		return DefaultClasses(), nil
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return Classes{}, fmt.Errorf("render: select theme %q: %w", name, err)
	}
	return ClassesFromSelection(selection), nil
}

// StaticSelector always answers with one manifest. Unknown variants resolve
// to the base tokens.
type StaticSelector struct {
	Manifest *theme.Manifest
}

var _ theme.ThemeSelector = StaticSelector{}

// Select implements theme.ThemeSelector.
func (s StaticSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	manifest := s.Manifest
	if manifest == nil {
		manifest = BootstrapManifest()
	}
	if name != "" && name != manifest.Name {
		return nil, fmt.Errorf("render: theme %q not available", name)
	}
	return &theme.Selection{
		Theme:    manifest.Name,
		Variant:  variant,
		Manifest: manifest,
	}, nil
}
