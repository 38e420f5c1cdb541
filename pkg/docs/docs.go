// Package docs renders a field-by-field Markdown summary of a form.
package docs

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/render/template"
	"github.com/goliatone/go-formbuilder/pkg/render/template/pongo"
)

// Name is the registry name of the renderer.
const Name = "markdown"

// DefaultTitle heads the generated document.
const DefaultTitle = "Form Documentation"

const formTemplate = "templates/form.md.tpl"

//go:embed templates/*.tpl
var templatesFS embed.FS

// TemplatesFS exposes the built-in templates.
func TemplatesFS() fs.FS {
	return templatesFS
}

// Option configures the renderer.
type Option func(*config)

type config struct {
	title     string
	templates template.TemplateRenderer
}

// WithTitle overrides the document heading.
func WithTitle(title string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(title); trimmed != "" {
			cfg.title = trimmed
		}
	}
}

// WithTemplateRenderer swaps the template engine. The engine must be able to
// resolve "templates/form.md.tpl".
func WithTemplateRenderer(renderer template.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templates = renderer
		}
	}
}

// Renderer produces Markdown documentation.
type Renderer struct {
	title     string
	templates template.TemplateRenderer
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the renderer over the embedded templates.
func New(options ...Option) (*Renderer, error) {
	cfg := config{title: DefaultTitle}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templates == nil {
		engine, err := pongo.New(pongo.WithFS(templatesFS))
		if err != nil {
			return nil, fmt.Errorf("docs: configure template renderer: %w", err)
		}
		cfg.templates = engine
	}
	return &Renderer{title: cfg.title, templates: cfg.templates}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/markdown; charset=utf-8"
}

// Render documents every named field; structural markers are skipped. The
// required flag comes from options.Required when set, otherwise from the
// field's own attribute.
func (r *Renderer) Render(ctx context.Context, form model.Form, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out, err := r.templates.RenderTemplate(formTemplate, map[string]any{
		"title":  r.title,
		"fields": fieldData(form, options),
	})
	if err != nil {
		return nil, fmt.Errorf("docs: render template: %w", err)
	}
	return []byte(out), nil
}

func fieldData(form model.Form, options render.RenderOptions) []map[string]any {
	fields := form.Fields()
	out := make([]map[string]any, 0, len(fields))
	for _, field := range fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			continue
		}
		required := field.IsRequired()
		if options.Required != nil {
			required = options.Required.Has(name)
		}
		var opts []string
		for _, opt := range field.Options {
			opts = append(opts, opt.Label)
		}
		out = append(out, map[string]any{
			"label":    field.DisplayLabel(),
			"name":     name,
			"type":     string(field.InputType()),
			"required": required,
			"options":  opts,
			"help":     strings.TrimSpace(field.Help),
		})
	}
	return out
}
