package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/formdata"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/validation"
)

// Name identifies the renderer in registries.
const Name = "tui"

// Renderer prompts for every declared field in the terminal and serializes
// the collected values. It fills the same role for CLI sessions that the
// HTML renderer plays for browsers.
type Renderer struct {
	driver            PromptDriver
	out               io.Writer
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	theme             Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	switch r.outputFormat {
	case OutputFormatJSON, OutputFormatFormURLEncoded, OutputFormatPrettyText:
	default:
		return nil, fmt.Errorf("tui: unsupported output format %q", r.outputFormat)
	}
	if r.driver == nil {
		r.driver = newSurveyDriver(r.out)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return Name
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// Render prompts for the form and returns the serialized values.
func (r *Renderer) Render(ctx context.Context, form model.Form, opts render.RenderOptions) ([]byte, error) {
	values, err := r.Fill(ctx, form, opts)
	if err != nil {
		return nil, err
	}
	return r.serialize(values)
}

// Fill prompts for every named field in declaration order. Values already in
// opts seed the prompt defaults. Fieldset legends are announced, CSRF tokens
// are carried over and file inputs are skipped.
func (r *Renderer) Fill(ctx context.Context, form model.Form, opts render.RenderOptions) (formdata.Values, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	values := formdata.Values{}
	for _, element := range form.Elements {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		switch el := element.(type) {
		case model.FieldsetStart:
			if legend := strings.TrimSpace(el.Legend); legend != "" {
				if err := r.driver.Notify(ctx, r.theme.SectionPrefix+legend); err != nil {
					return nil, err
				}
			}
		case model.CSRF:
			if el.Name != "" && el.Value != "" {
				values.Set(el.Name, el.Value)
			}
		case model.Field:
			if err := r.promptField(ctx, el, opts, values); err != nil {
				return nil, err
			}
		}
	}

	if r.submitTransformer != nil {
		transformed, err := r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
		values = transformed
	}
	return values, nil
}

type prompt struct {
	field    model.Field
	name     string
	label    string
	required bool
	current  any
}

func (r *Renderer) promptField(ctx context.Context, field model.Field, opts render.RenderOptions, out formdata.Values) error {
	name := strings.TrimSpace(field.Name)
	if name == "" {
		return nil
	}
	p := prompt{
		field:    field,
		name:     name,
		label:    field.DisplayLabel(),
		required: field.IsRequired() || opts.Required.Has(formdata.BaseName(name)),
	}
	if current, ok := opts.Values.Get(name); ok {
		p.current = current
	}

	switch field.InputType() {
	case model.FieldHidden:
		if value := explicitValue(field, p.current); value != "" {
			out.Set(name, value)
		}
		return nil
	case model.FieldFile:
		return r.driver.Notify(ctx, fmt.Sprintf("%s: file uploads are skipped", p.label))
	}

	q := p.question()
	for {
		answer, err := r.driver.Ask(ctx, q)
		if err != nil {
			return err
		}
		values, err := p.accept(q, answer)
		if err != nil {
			if err := r.driver.Notify(ctx, r.theme.ErrorPrefix+err.Error()); err != nil {
				return err
			}
			continue
		}
		for _, value := range values {
			out.Set(name, value)
		}
		return nil
	}
}

// question maps the field onto a prompt kind and seeds it from the declared
// attributes and the current values.
func (p prompt) question() Question {
	field := p.field
	q := Question{
		Label:       p.label,
		Help:        strings.TrimSpace(field.Help),
		Placeholder: strings.TrimSpace(field.Attributes.String("placeholder")),
	}

	typ := field.InputType()
	grouped := len(field.Options) > 0
	switch {
	case (typ == model.FieldCheckbox || typ == model.FieldRadio) && !grouped:
		q.Kind = AskToggle
		q.Toggle = field.Attributes.Truthy(model.AttrChecked)
		if items, ok := formdata.Strings(p.current); ok || len(items) > 0 {
			q.Toggle = slices.Contains(items, toggleValue(field))
		}
	case grouped:
		q.Kind = AskChoice
		if typ == model.FieldCheckbox || field.IsMultiple() {
			q.Kind = AskChoices
		}
		q.Choices = optionLabels(field.Options)
		q.Selected = selectedLabels(field, p.current)
	default:
		switch typ {
		case model.FieldPassword:
			q.Kind = AskSecret
		case model.FieldTextarea:
			q.Kind = AskMultiline
		default:
			q.Kind = AskText
		}
		if q.Kind != AskSecret {
			q.Default = explicitValue(field, p.current)
		}
		q.Check = func(response string) error {
			if msg, ok := p.check(typ, response); !ok {
				return errors.New(msg)
			}
			return nil
		}
	}
	return q
}

// accept turns an answer into the values to record, or reports why the
// answer must be asked again.
func (p prompt) accept(q Question, answer Answer) ([]string, error) {
	switch q.Kind {
	case AskToggle:
		if !answer.Toggle {
			if p.required {
				return nil, errors.New(validation.RequiredMessage(p.label))
			}
			return nil, nil
		}
		return []string{toggleValue(p.field)}, nil
	case AskChoice, AskChoices:
		values := choiceValues(p.field.Options, answer.Choices)
		if q.Kind == AskChoice && len(values) != 1 {
			return nil, fmt.Errorf("Invalid %s selection", p.label)
		}
		if len(values) == 0 && p.required {
			return nil, errors.New(validation.RequiredMessage(p.label))
		}
		return values, nil
	default:
		trimmed := strings.TrimSpace(answer.Text)
		if q.Check != nil {
			if err := q.Check(trimmed); err != nil {
				return nil, err
			}
		}
		return []string{trimmed}, nil
	}
}

func (p prompt) check(typ model.FieldType, response string) (string, bool) {
	trimmed := strings.TrimSpace(response)
	if trimmed == "" {
		if p.required {
			return validation.RequiredMessage(p.label), false
		}
		return "", true
	}
	if typ == model.FieldNumber {
		if _, err := strconv.ParseFloat(trimmed, 64); err != nil {
			return fmt.Sprintf("%s must be a number.", p.label), false
		}
	}
	return validation.CheckValue(p.field, trimmed)
}

func toggleValue(field model.Field) string {
	if value := field.Attributes.String(model.AttrValue); value != "" {
		return value
	}
	return "on"
}

// explicitValue prefers a declared value attribute over the current value,
// the same precedence the HTML renderer applies.
func explicitValue(field model.Field, current any) string {
	if field.Attributes.Has(model.AttrValue) {
		return field.Attributes.String(model.AttrValue)
	}
	if s, ok := formdata.Scalar(current); ok {
		return s
	}
	if items, ok := formdata.Strings(current); ok {
		return strings.Join(items, ", ")
	}
	return ""
}

func optionLabels(options model.Options) []string {
	out := make([]string, 0, len(options))
	for _, opt := range options {
		out = append(out, choiceLabel(opt))
	}
	return out
}

func choiceLabel(opt model.Option) string {
	if opt.Label == "" {
		return opt.Value
	}
	return opt.Label
}

// selectedLabels resolves the preselected option labels: submitted values
// first, then the checked attribute.
func selectedLabels(field model.Field, current any) []string {
	values, _ := formdata.Strings(current)
	if len(values) == 0 {
		if preset := field.Attributes.String(model.AttrChecked); preset != "" {
			values = []string{preset}
		}
	}
	var out []string
	for _, value := range values {
		label, ok := field.Options.Label(value)
		if !ok {
			continue
		}
		if label == "" {
			label = value
		}
		out = append(out, label)
	}
	return out
}

// choiceValues maps picked labels back to option values in option order.
func choiceValues(options model.Options, labels []string) []string {
	var out []string
	for _, opt := range options {
		if slices.Contains(labels, choiceLabel(opt)) {
			out = append(out, opt.Value)
		}
	}
	return out
}
