package schema

import (
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Defaults applied when a document omits them.
const (
	DefaultMethod      = "POST"
	DefaultSubmitLabel = "Submit"
)

// Document is the interchange representation of a form.
type Document struct {
	Method      string           `json:"method" yaml:"method"`
	Action      string           `json:"action" yaml:"action"`
	ID          string           `json:"id" yaml:"id"`
	Class       string           `json:"class" yaml:"class"`
	Attributes  model.Attributes `json:"attributes" yaml:"attributes"`
	SubmitLabel string           `json:"submit_label" yaml:"submit_label"`
	Elements    []Element        `json:"elements" yaml:"elements"`
}

// Element is the wire shape shared by fields and markers.
type Element struct {
	Type       string           `json:"type" yaml:"type"`
	Name       string           `json:"name,omitempty" yaml:"name,omitempty"`
	Label      string           `json:"label,omitempty" yaml:"label,omitempty"`
	Attributes model.Attributes `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Options    model.Options    `json:"options,omitempty" yaml:"options,omitempty"`
	Help       string           `json:"help,omitempty" yaml:"help,omitempty"`
	Legend     string           `json:"legend,omitempty" yaml:"legend,omitempty"`
	Class      string           `json:"class,omitempty" yaml:"class,omitempty"`
	HTML       string           `json:"html,omitempty" yaml:"html,omitempty"`
}

// FromForm converts a form into its document. CSRF token values are never
// exported; only the input name survives.
func FromForm(form model.Form) Document {
	doc := Document{
		Method:      form.Method,
		Action:      form.Action,
		ID:          form.ID,
		Class:       form.Class,
		Attributes:  form.Attributes.Clone(),
		SubmitLabel: form.SubmitLabel,
		Elements:    make([]Element, 0, len(form.Elements)),
	}
	if doc.Attributes == nil {
		doc.Attributes = model.Attributes{}
	}
	for _, element := range form.Elements {
		doc.Elements = append(doc.Elements, encodeElement(element))
	}
	return doc
}

func encodeElement(element model.Element) Element {
	switch el := element.(type) {
	case model.Field:
		return Element{
			Type:       string(el.Type),
			Name:       el.Name,
			Label:      el.Label,
			Attributes: el.Attributes.Clone(),
			Options:    el.Options.Clone(),
			Help:       el.Help,
		}
	case model.FieldsetStart:
		return Element{Type: string(model.KindFieldsetStart), Legend: el.Legend}
	case model.DivStart:
		return Element{Type: string(model.KindDivStart), Class: el.Class}
	case model.HTML:
		return Element{Type: string(model.KindHTML), HTML: el.Content}
	case model.CSRF:
		return Element{Type: string(model.KindCSRF), Name: el.Name}
	default:
		return Element{Type: string(element.Kind())}
	}
}

// Form converts the document back into a form, applying defaults for the
// method and submit label. Multipart is left for the caller to derive.
func (d Document) Form() model.Form {
	method := strings.ToUpper(strings.TrimSpace(d.Method))
	if method == "" {
		method = DefaultMethod
	}
	label := d.SubmitLabel
	if strings.TrimSpace(label) == "" {
		label = DefaultSubmitLabel
	}
	form := model.Form{
		Method:      method,
		Action:      d.Action,
		ID:          d.ID,
		Class:       d.Class,
		Attributes:  d.Attributes.Clone(),
		SubmitLabel: label,
		Elements:    make([]model.Element, 0, len(d.Elements)),
	}
	for _, element := range d.Elements {
		form.Elements = append(form.Elements, element.decode())
	}
	return form
}

func (e Element) decode() model.Element {
	switch model.Kind(strings.TrimSpace(e.Type)) {
	case model.KindFieldsetStart:
		return model.FieldsetStart{Legend: e.Legend}
	case model.KindFieldsetEnd:
		return model.FieldsetEnd{}
	case model.KindDivStart:
		return model.DivStart{Class: e.Class}
	case model.KindDivEnd:
		return model.DivEnd{}
	case model.KindHTML:
		return model.HTML{Content: e.HTML}
	case model.KindCSRF:
		return model.CSRF{Name: e.Name}
	default:
		return model.Field{
			Name:       e.Name,
			Type:       model.FieldType(strings.TrimSpace(e.Type)),
			Label:      e.Label,
			Attributes: e.Attributes.Clone(),
			Options:    e.Options.Clone(),
			Help:       e.Help,
		}
	}
}
