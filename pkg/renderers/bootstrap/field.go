package bootstrap

import (
	"fmt"
	"slices"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/formdata"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/render/template"
)

type fieldWriter struct {
	templates template.TemplateRenderer
	options   render.RenderOptions
	classes   render.Classes
}

type selectOption struct {
	Value    string
	Label    string
	Selected bool
}

// partial renders one component template. The trailing newline of the
// template file is dropped so fragments can be joined by the caller.
func (w *fieldWriter) partial(name string, data map[string]any) (string, error) {
	data["classes"] = w.classes
	out, err := w.templates.RenderTemplate(componentDir+name, data)
	if err != nil {
		return "", fmt.Errorf("bootstrap: render %s: %w", name, err)
	}
	return strings.TrimSuffix(out, "\n"), nil
}

// field renders one control with its label, help text and feedback. Fields
// without a name render nothing.
func (w *fieldWriter) field(field model.Field) (string, error) {
	name := strings.TrimSpace(field.Name)
	if name == "" {
		return "", nil
	}
	field.Name = name
	id := formdata.ControlID(name)
	message, invalid := w.options.Errors.Get(name)

	if field.InputType() == model.FieldHidden {
		return w.input(field, map[string]any{
			"type":      "hidden",
			"id":        id,
			"value":     w.textValue(field),
			"has_value": true,
		})
	}

	marker, err := w.marker(name)
	if err != nil {
		return "", err
	}
	data := map[string]any{
		"id":           id,
		"label":        field.DisplayLabel(),
		"marker":       marker,
		"help":         strings.TrimSpace(field.Help),
		"invalid":      invalid,
		"feedback":     message,
		"feedback_css": w.classes.Feedback,
	}

	var control string
	switch field.InputType() {
	case model.FieldCheckbox, model.FieldRadio:
		data["feedback_css"] = render.JoinClasses(w.classes.Feedback, "d-block")
		if len(field.Options) > 0 {
			data["group_label"] = true
			control, err = w.choiceGroup(field, id, invalid)
		} else {
			control, err = w.choice(field, id, invalid, marker)
		}
	default:
		data["control_label"] = true
		control, err = w.control(field, id, invalid)
	}
	if err != nil {
		return "", err
	}
	data["control"] = control
	return w.partial("field", data)
}

func (w *fieldWriter) marker(name string) (string, error) {
	if !w.options.ShowRequiredMarker || !w.options.Required.Has(name) {
		return "", nil
	}
	return w.partial("marker", map[string]any{})
}

func (w *fieldWriter) controlClass(base string, field model.Field, invalid bool) string {
	class := render.JoinClasses(base, field.Attributes.String(model.AttrClass))
	if invalid {
		class = render.JoinClasses(class, w.classes.Invalid)
	}
	return class
}

func (w *fieldWriter) control(field model.Field, id string, invalid bool) (string, error) {
	css := w.controlClass(w.classes.Control, field, invalid)
	switch field.InputType() {
	case model.FieldTextarea:
		return w.partial("textarea", map[string]any{
			"name":  field.Name,
			"id":    id,
			"css":   css,
			"value": w.textValue(field),
			"attrs": passThrough(field.Attributes),
		})
	case model.FieldSelect:
		return w.selectControl(field, id, invalid)
	case model.FieldFile:
		return w.input(field, map[string]any{"type": "file", "id": id, "css": css})
	default:
		return w.input(field, map[string]any{
			"type":      string(field.InputType()),
			"id":        id,
			"css":       css,
			"value":     w.textValue(field),
			"has_value": true,
		})
	}
}

func (w *fieldWriter) input(field model.Field, data map[string]any) (string, error) {
	data["name"] = field.Name
	data["attrs"] = passThrough(field.Attributes)
	return w.partial("input", data)
}

func (w *fieldWriter) selectControl(field model.Field, id string, invalid bool) (string, error) {
	selected := w.selectedValues(field)
	options := make([]selectOption, 0, len(field.Options))
	for _, opt := range field.Options {
		options = append(options, selectOption{
			Value:    opt.Value,
			Label:    opt.Label,
			Selected: slices.Contains(selected, opt.Value),
		})
	}
	return w.partial("select", map[string]any{
		"name":    field.Name,
		"id":      id,
		"css":     w.controlClass(w.classes.Select, field, invalid),
		"attrs":   passThrough(field.Attributes),
		"options": options,
	})
}

// choice renders a lone checkbox or radio. Its value defaults to "on" and
// its own label carries the required marker.
func (w *fieldWriter) choice(field model.Field, id string, invalid bool, marker string) (string, error) {
	value := "on"
	if explicit, ok := field.Attributes.Get(model.AttrValue); ok {
		value = model.ScalarString(explicit)
	}
	checked := field.Attributes.Truthy(model.AttrChecked) || w.submittedContains(field.Name, value)
	return w.checkItem(field, id, value, field.DisplayLabel(), marker, checked, invalid)
}

func (w *fieldWriter) choiceGroup(field model.Field, id string, invalid bool) (string, error) {
	preset := field.Attributes.String(model.AttrChecked)
	_, submitted := w.options.Values.Get(field.Name)
	if field.InputType() == model.FieldCheckbox {
		// required applies to the group, never to each box
		field.Attributes = field.Attributes.Without(model.AttrRequired)
	}

	items := make([]string, 0, len(field.Options))
	for idx, opt := range field.Options {
		checked := w.submittedContains(field.Name, opt.Value)
		if !submitted && preset != "" && preset == opt.Value {
			checked = true
		}
		item, err := w.checkItem(field, fmt.Sprintf("%s_%d", id, idx), opt.Value, opt.Label, "", checked, invalid)
		if err != nil {
			return "", err
		}
		items = append(items, item)
	}
	return strings.Join(items, "\n"), nil
}

func (w *fieldWriter) checkItem(field model.Field, id, value, label, marker string, checked, invalid bool) (string, error) {
	input, err := w.input(field, map[string]any{
		"type":      string(field.InputType()),
		"id":        id,
		"css":       w.controlClass(w.classes.CheckInput, field, invalid),
		"value":     value,
		"has_value": true,
		"checked":   checked,
	})
	if err != nil {
		return "", err
	}
	return w.partial("check", map[string]any{
		"id":     id,
		"input":  input,
		"label":  label,
		"marker": marker,
	})
}

// textValue resolves the value of a text-like control: an explicit value
// attribute wins over submitted data; sequences are joined with ", ".
func (w *fieldWriter) textValue(field model.Field) string {
	if explicit, ok := field.Attributes.Get(model.AttrValue); ok {
		return model.ScalarString(explicit)
	}
	submitted, ok := w.options.Values.Get(field.Name)
	if !ok {
		return ""
	}
	if s, ok := formdata.Scalar(submitted); ok {
		return s
	}
	items, isSeq := formdata.Strings(submitted)
	if isSeq {
		return strings.Join(items, ", ")
	}
	return ""
}

func (w *fieldWriter) selectedValues(field model.Field) []string {
	if explicit, ok := field.Attributes.Get(model.AttrValue); ok {
		return []string{model.ScalarString(explicit)}
	}
	submitted, ok := w.options.Values.Get(field.Name)
	if !ok {
		return nil
	}
	items, _ := formdata.Strings(submitted)
	return items
}

func (w *fieldWriter) submittedContains(name, value string) bool {
	submitted, ok := w.options.Values.Get(name)
	if !ok {
		return false
	}
	items, _ := formdata.Strings(submitted)
	return slices.Contains(items, value)
}

// passThrough renders the author attributes that are not already emitted by
// the templates.
func passThrough(attrs model.Attributes) string {
	return render.Attributes(render.PassThrough(attrs))
}
