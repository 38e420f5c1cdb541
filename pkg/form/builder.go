package form

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/goliatone/go-formbuilder/pkg/csrf"
	"github.com/goliatone/go-formbuilder/pkg/docs"
	"github.com/goliatone/go-formbuilder/pkg/formdata"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/renderers/bootstrap"
	"github.com/goliatone/go-formbuilder/pkg/validation"
)

// Defaults applied by New.
const (
	DefaultMethod      = "POST"
	DefaultSubmitLabel = "Submit"
)

// ErrNoCSRF is latched by EnableCSRF when no session store was configured.
var ErrNoCSRF = errors.New("form: csrf requires a session store")

// SubmitFunc receives the sanitized values and the uploads of a valid
// submission.
type SubmitFunc func(ctx context.Context, values formdata.Values, uploads formdata.Uploads) error

// Builder accumulates a form declaration and the state of one submission.
type Builder struct {
	method      string
	action      string
	id          string
	class       string
	attributes  model.Attributes
	submitLabel string
	multipart   bool
	showMarker  bool
	elements    []model.Element

	required *validation.Registry
	errors   validation.Errors

	submission formdata.Submission
	bound      bool
	onSubmit   SubmitFunc
	debug      bool

	csrf      *csrf.Manager
	validator *validation.Validator
	html      *bootstrap.Renderer
	registry  *render.Registry
	classes   render.Classes
	maxMemory int64
	logger    *slog.Logger

	err error
}

// New constructs a Builder with method POST, submit label "Submit" and the
// required marker enabled.
func New(options ...Option) *Builder {
	b := &Builder{
		method:      DefaultMethod,
		submitLabel: DefaultSubmitLabel,
		showMarker:  true,
		required:    validation.NewRegistry(),
		errors:      validation.Errors{},
		validator:   validation.New(),
		maxMemory:   formdata.DefaultMaxMemory,
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(b)
	}
	if b.html == nil {
		renderer, err := defaultHTML()
		if err != nil {
			b.fail(err)
			return b
		}
		b.html = renderer
	}
	b.initRegistry()
	return b
}

var defaultHTML = sync.OnceValues(func() (*bootstrap.Renderer, error) {
	return bootstrap.New()
})

func (b *Builder) initRegistry() {
	if b.registry == nil {
		b.registry = render.NewRegistry()
	}
	if !b.registry.Has(b.html.Name()) {
		if err := b.registry.Register(b.html); err != nil {
			b.fail(err)
		}
	}
	if !b.registry.Has(docs.Name) {
		markdown, err := docs.New()
		if err != nil {
			b.fail(err)
			return
		}
		if err := b.registry.Register(markdown); err != nil {
			b.fail(err)
		}
	}
}

// fail latches the first declaration error.
func (b *Builder) fail(err error) {
	if err != nil && b.err == nil {
		b.err = err
	}
}

// Err reports the first error raised while declaring the form.
func (b *Builder) Err() error {
	return b.err
}

// SetMethod sets the form method. It is upper-cased.
func (b *Builder) SetMethod(method string) *Builder {
	if trimmed := strings.ToUpper(strings.TrimSpace(method)); trimmed != "" {
		b.method = trimmed
	}
	return b
}

// SetAction sets the form action.
func (b *Builder) SetAction(action string) *Builder {
	b.action = action
	return b
}

// SetID sets the form id attribute.
func (b *Builder) SetID(id string) *Builder {
	b.id = id
	return b
}

// SetFormClass sets the form class attribute.
func (b *Builder) SetFormClass(class string) *Builder {
	b.class = class
	return b
}

// SetFormAttributes merges extra attributes into the form tag.
func (b *Builder) SetFormAttributes(attrs ...model.Attribute) *Builder {
	for _, attr := range attrs {
		b.attributes = b.attributes.Set(attr.Key, attr.Value)
	}
	return b
}

// SetSubmitLabel sets the submit button text.
func (b *Builder) SetSubmitLabel(label string) *Builder {
	b.submitLabel = label
	return b
}

// ShowRequiredMarker toggles the asterisk rendered after required labels.
func (b *Builder) ShowRequiredMarker(show bool) *Builder {
	b.showMarker = show
	return b
}

// AddField declares a field. Fields with an empty name are kept but never
// rendered.
func (b *Builder) AddField(name string, typ model.FieldType, label string, options ...FieldOption) *Builder {
	field := model.Field{Name: name, Type: typ, Label: label}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&field)
	}
	return b.Add(field)
}

// Add declares a prepared field descriptor.
func (b *Builder) Add(field model.Field) *Builder {
	field = field.Clone()
	b.elements = append(b.elements, field)
	b.derive(field)
	return b
}

// derive updates the registry and multipart flag for one element. Import
// replays it over the decoded sequence.
func (b *Builder) derive(element model.Element) {
	field, ok := element.(model.Field)
	if !ok {
		return
	}
	b.required.Register(field)
	typ := field.InputType()
	if typ == model.FieldFile {
		b.multipart = true
	}
	if !typ.IsKnown() {
		b.logger.Debug("custom field type rendered as input", "field", field.Name, "type", string(typ))
	}
}

// StartDiv opens a grouping div.
func (b *Builder) StartDiv(class string) *Builder {
	b.elements = append(b.elements, model.DivStart{Class: class})
	return b
}

// EndDiv closes the innermost div.
func (b *Builder) EndDiv() *Builder {
	b.elements = append(b.elements, model.DivEnd{})
	return b
}

// StartFieldset opens a fieldset with an optional legend.
func (b *Builder) StartFieldset(legend string) *Builder {
	b.elements = append(b.elements, model.FieldsetStart{Legend: legend})
	return b
}

// EndFieldset closes the innermost fieldset.
func (b *Builder) EndFieldset() *Builder {
	b.elements = append(b.elements, model.FieldsetEnd{})
	return b
}

// AddHTML appends a trusted fragment emitted verbatim.
func (b *Builder) AddHTML(raw string) *Builder {
	b.elements = append(b.elements, model.HTML{Content: raw})
	return b
}

// AddSafeHTML sanitizes an untrusted fragment before appending it.
func (b *Builder) AddSafeHTML(untrusted string) *Builder {
	return b.AddHTML(render.SanitizeHTML(untrusted))
}

// EnableCSRF appends the hidden token input, issuing a token in the session
// when none exists yet.
func (b *Builder) EnableCSRF() *Builder {
	if b.csrf == nil {
		b.fail(ErrNoCSRF)
		return b
	}
	token, err := b.csrf.Token()
	if err != nil {
		b.fail(fmt.Errorf("form: enable csrf: %w", err))
		return b
	}
	b.elements = append(b.elements, model.CSRF{Name: b.csrf.FieldName(), Value: token})
	return b
}

// Form returns a snapshot of the declaration.
func (b *Builder) Form() model.Form {
	return model.Form{
		Method:      b.method,
		Action:      b.action,
		ID:          b.id,
		Class:       b.class,
		Attributes:  b.attributes.Clone(),
		SubmitLabel: b.submitLabel,
		Multipart:   b.multipart,
		Elements:    model.CloneElements(b.elements),
	}
}

// Required returns the required-field registry.
func (b *Builder) Required() *validation.Registry {
	return b.required
}

// Errors returns the error set of the last Validate call.
func (b *Builder) Errors() validation.Errors {
	return b.errors.Clone()
}

// Multipart reports whether a file field was declared.
func (b *Builder) Multipart() bool {
	return b.multipart
}
