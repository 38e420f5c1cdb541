// Package bootstrap renders declared forms as HTML using Bootstrap 5 class
// conventions. Markup lives in embedded pongo2 templates; class names come
// from render.Classes so themes can swap them.
package bootstrap

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/render/template"
	"github.com/goliatone/go-formbuilder/pkg/render/template/pongo"
)

// Name is the registry name of the renderer.
const Name = "bootstrap"

const (
	formTemplate    = "templates/form.tpl"
	previewTemplate = "templates/preview.tpl"
	componentDir    = "templates/components/"
)

// Option configures the renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer template.TemplateRenderer
	classes          render.Classes
}

// WithClasses sets the renderer-wide class set. Per-call RenderOptions.Classes
// entries still win.
func WithClasses(classes render.Classes) Option {
	return func(cfg *config) {
		cfg.classes = classes
	}
}

// WithTemplatesFS swaps the template bundle. The bundle must provide the
// same paths as TemplatesFS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templateFS = files
		}
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(dir string) Option {
	return func(cfg *config) {
		if strings.TrimSpace(dir) != "" {
			cfg.templateFS = os.DirFS(dir)
		}
	}
}

// WithTemplateRenderer injects a preconfigured template engine. It takes
// precedence over WithTemplatesFS.
func WithTemplateRenderer(renderer template.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// Renderer emits HTML forms.
type Renderer struct {
	templates template.TemplateRenderer
	classes   render.Classes
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the renderer.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	templates := cfg.templateRenderer
	if templates == nil {
		engine, err := pongo.New(pongo.WithFS(cfg.templateFS))
		if err != nil {
			return nil, fmt.Errorf("bootstrap renderer: configure template renderer: %w", err)
		}
		templates = engine
	}

	return &Renderer{templates: templates, classes: cfg.classes}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render writes the opening form tag, every element in declaration order,
// the submit button and the closing tag.
func (r *Renderer) Render(ctx context.Context, form model.Form, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	w := r.writer(options)

	elements := make([]string, 0, len(form.Elements))
	for _, element := range form.Elements {
		chunk, err := w.element(element)
		if err != nil {
			return nil, err
		}
		if chunk != "" {
			elements = append(elements, chunk)
		}
	}

	method := strings.ToUpper(strings.TrimSpace(form.Method))
	if method == "" {
		method = "POST"
	}
	label := strings.TrimSpace(form.SubmitLabel)
	if label == "" {
		label = "Submit"
	}

	out, err := r.templates.RenderTemplate(formTemplate, map[string]any{
		"method":       method,
		"action":       form.Action,
		"id":           form.ID,
		"css":          form.Class,
		"attrs":        render.Attributes(form.Attributes.Without("method", "action", "id", "class", "enctype")),
		"multipart":    form.Multipart,
		"elements":     elements,
		"submit_label": label,
		"classes":      w.classes,
	})
	if err != nil {
		return nil, fmt.Errorf("bootstrap: render form: %w", err)
	}
	return []byte(out), nil
}

// RenderField renders a single field with the same rules as a full render.
func (r *Renderer) RenderField(field model.Field, options render.RenderOptions) (string, error) {
	return r.writer(options).field(field)
}

func (r *Renderer) writer(options render.RenderOptions) *fieldWriter {
	classes := options.Classes.Merge(r.classes.Tokens(), false).WithDefaults()
	return &fieldWriter{templates: r.templates, options: options, classes: classes}
}

func (w *fieldWriter) element(element model.Element) (string, error) {
	switch el := element.(type) {
	case model.Field:
		return w.field(el)
	case model.FieldsetStart:
		return w.partial("fieldset_start", map[string]any{"legend": strings.TrimSpace(el.Legend)})
	case model.FieldsetEnd:
		return w.partial("fieldset_end", map[string]any{})
	case model.DivStart:
		return w.partial("div_start", map[string]any{"css": el.Class})
	case model.DivEnd:
		return w.partial("div_end", map[string]any{})
	case model.HTML:
		return el.Content, nil
	case model.CSRF:
		token := render.CSRFToken(el.Name, el.Value)
		if token.Name == "" {
			return "", nil
		}
		return w.partial("input", map[string]any{
			"type":      "hidden",
			"name":      token.Name,
			"value":     token.Value,
			"has_value": true,
		})
	default:
		return "", nil
	}
}
