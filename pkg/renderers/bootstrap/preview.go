package bootstrap

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
)

type previewItem struct {
	Label  string
	Marker string
}

// Preview renders a label-only outline of the declared fields inside an
// inert form. Structural markers are ignored.
func (r *Renderer) Preview(form model.Form, options render.RenderOptions) (string, error) {
	w := r.writer(options)

	items := make([]previewItem, 0, len(form.Elements))
	for _, element := range form.Elements {
		if element.Kind().IsMarker() {
			continue
		}
		field, ok := element.(model.Field)
		if !ok || strings.TrimSpace(field.Name) == "" {
			continue
		}
		marker, err := w.marker(strings.TrimSpace(field.Name))
		if err != nil {
			return "", err
		}
		items = append(items, previewItem{Label: field.DisplayLabel(), Marker: marker})
	}

	out, err := r.templates.RenderTemplate(previewTemplate, map[string]any{
		"css":     form.Class,
		"items":   items,
		"classes": w.classes,
	})
	if err != nil {
		return "", fmt.Errorf("bootstrap: render preview: %w", err)
	}
	return out, nil
}
