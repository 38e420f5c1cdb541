package form

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formbuilder/pkg/docs"
	"github.com/goliatone/go-formbuilder/pkg/formdata"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/renderers/tui"
	"github.com/goliatone/go-formbuilder/pkg/schema"
	"github.com/goliatone/go-formbuilder/pkg/validation"
)

// RenderOptions returns the options handed to renderers: bound values, the
// error set, the registry and the configured classes.
func (b *Builder) RenderOptions() render.RenderOptions {
	return render.RenderOptions{
		Values:             b.submission.Values,
		Errors:             b.errors.Clone(),
		Required:           b.required,
		ShowRequiredMarker: b.showMarker,
		Classes:            b.classes,
	}
}

// Render returns the form HTML, preceded by the debug dump when enabled.
func (b *Builder) Render(ctx context.Context) ([]byte, error) {
	if b.err != nil {
		return nil, b.err
	}
	out, err := b.html.Render(ctx, b.Form(), b.RenderOptions())
	if err != nil {
		return nil, fmt.Errorf("form: render: %w", err)
	}
	if !b.debug {
		return out, nil
	}
	return append([]byte(b.DebugOutput()), out...), nil
}

// HTML renders the form and returns it as a string. Failures are logged and
// yield an empty string.
func (b *Builder) HTML() string {
	out, err := b.Render(context.Background())
	if err != nil {
		b.logger.Error("form render failed", "action", b.action, "error", err)
		return ""
	}
	return string(out)
}

// RenderWith renders the form through a named renderer of the registry.
func (b *Builder) RenderWith(ctx context.Context, name string) ([]byte, error) {
	if b.err != nil {
		return nil, b.err
	}
	renderer, err := b.registry.Get(name)
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, b.Form(), b.RenderOptions())
}

// Renderers lists the registered renderer names.
func (b *Builder) Renderers() []string {
	return b.registry.List()
}

// RenderFieldByName renders the first field declared under name, or an HTML
// comment when there is none.
func (b *Builder) RenderFieldByName(name string) string {
	for _, element := range b.elements {
		if field, ok := element.(model.Field); ok && field.Name == name {
			return b.RenderFieldRaw(field)
		}
	}
	return fmt.Sprintf("<!-- Field '%s' not found -->", html.EscapeString(name))
}

// RenderFieldRaw renders a field descriptor that need not be declared.
func (b *Builder) RenderFieldRaw(field model.Field) string {
	if b.html == nil {
		return ""
	}
	out, err := b.html.RenderField(field, b.RenderOptions())
	if err != nil {
		b.logger.Error("field render failed", "field", field.Name, "error", err)
		return ""
	}
	return out
}

// Preview returns label-only markup for the declared fields.
func (b *Builder) Preview() string {
	if b.html == nil {
		return ""
	}
	out, err := b.html.Preview(b.Form(), b.RenderOptions())
	if err != nil {
		b.logger.Error("preview render failed", "error", err)
		return ""
	}
	return out
}

// EnableDebug prefixes rendered output with a dump of the submission.
func (b *Builder) EnableDebug() *Builder {
	b.debug = true
	return b
}

// DebugOutput dumps the bound values, uploads and errors as escaped JSON.
func (b *Builder) DebugOutput() string {
	sections := []struct {
		title string
		value any
	}{
		{"Values", b.submission.Values},
		{"Uploads", debugUploads(b.submission.Uploads)},
		{"Errors", b.errors},
	}

	var out strings.Builder
	out.WriteString("<div class=\"formbuilder-debug\">\n")
	for _, section := range sections {
		payload, err := json.MarshalIndent(section.value, "", "  ")
		if err != nil {
			payload = []byte(err.Error())
		}
		out.WriteString("<pre>")
		out.WriteString(section.title)
		out.WriteString(":\n")
		out.WriteString(html.EscapeString(string(payload)))
		out.WriteString("</pre>\n")
	}
	out.WriteString("</div>\n")
	return out.String()
}

// debugUploads drops the stored file handles from the dump.
func debugUploads(uploads formdata.Uploads) formdata.Uploads {
	out := make(formdata.Uploads, len(uploads))
	for name, attrs := range uploads {
		copied := make(map[string]any, len(attrs))
		for attr, tree := range attrs {
			if attr == formdata.UploadAttrTmpName {
				continue
			}
			copied[attr] = tree
		}
		out[name] = copied
	}
	return out
}

// ExportSchema encodes the declaration as JSON or YAML.
func (b *Builder) ExportSchema(format schema.Format) ([]byte, error) {
	return schema.Encode(b.Form(), format)
}

// ImportSchema replaces the configuration and elements with a decoded
// document and re-derives the registry and multipart flag. CSRF markers
// receive the current session token when a session store is configured. On
// error the builder is left untouched.
func (b *Builder) ImportSchema(data []byte) error {
	doc, err := schema.Decode(data)
	if err != nil {
		return err
	}
	imported := doc.Form()

	for idx, element := range imported.Elements {
		token, ok := element.(model.CSRF)
		if !ok || b.csrf == nil {
			continue
		}
		value, err := b.csrf.Token()
		if err != nil {
			return fmt.Errorf("form: import schema: %w", err)
		}
		if token.Name == "" {
			token.Name = b.csrf.FieldName()
		}
		token.Value = value
		imported.Elements[idx] = token
	}

	b.method = imported.Method
	b.action = imported.Action
	b.id = imported.ID
	b.class = imported.Class
	b.attributes = imported.Attributes
	b.submitLabel = imported.SubmitLabel
	b.elements = imported.Elements
	b.required.Reset()
	b.multipart = false
	b.errors = validation.Errors{}
	for _, element := range b.elements {
		b.derive(element)
	}
	b.logger.Debug("form schema imported",
		"elements", len(b.elements),
		"required", b.required.Len(),
		"multipart", b.multipart,
	)
	return nil
}

// ExportOpenAPI describes the submission as a single-operation OpenAPI
// document.
func (b *Builder) ExportOpenAPI(opts schema.DocumentOptions) *openapi3.T {
	return schema.OpenAPIDocument(b.Form(), opts)
}

// ExportMarkdownDoc documents every named field as Markdown.
func (b *Builder) ExportMarkdownDoc(ctx context.Context) (string, error) {
	out, err := b.RenderWith(ctx, docs.Name)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// FillTUI prompts for the form in the terminal and binds the answers as a
// submission using the form method.
func (b *Builder) FillTUI(ctx context.Context, options ...tui.Option) (formdata.Values, error) {
	renderer, err := tui.New(options...)
	if err != nil {
		return nil, err
	}
	values, err := renderer.Fill(ctx, b.Form(), b.RenderOptions())
	if err != nil {
		return nil, err
	}
	b.Bind(formdata.Submission{Method: b.method, Values: values})
	return values, nil
}
