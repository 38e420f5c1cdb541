package model

// Kind discriminates the element variants. The string values double as the
// `type` key of structural markers in exported schemas.
type Kind string

const (
	KindField         Kind = "field"
	KindFieldsetStart Kind = "start_fieldset"
	KindFieldsetEnd   Kind = "end_fieldset"
	KindDivStart      Kind = "start_div"
	KindDivEnd        Kind = "end_div"
	KindHTML          Kind = "html"
	KindCSRF          Kind = "csrf"
)

// IsMarker reports whether k names a structural marker rather than a field.
func (k Kind) IsMarker() bool {
	switch k {
	case KindFieldsetStart, KindFieldsetEnd, KindDivStart, KindDivEnd, KindHTML, KindCSRF:
		return true
	default:
		return false
	}
}

// Element is one entry of the declared sequence. Implementations are limited
// to the types in this package.
type Element interface {
	Kind() Kind
	element()
}

// FieldsetStart opens a fieldset with an optional legend.
type FieldsetStart struct {
	Legend string
}

// FieldsetEnd closes the innermost fieldset.
type FieldsetEnd struct{}

// DivStart opens a grouping div carrying Class.
type DivStart struct {
	Class string
}

// DivEnd closes the innermost grouping div.
type DivEnd struct{}

// HTML is a trusted fragment emitted verbatim.
type HTML struct {
	Content string
}

// CSRF emits a hidden input carrying the session token.
type CSRF struct {
	Name  string
	Value string
}

func (FieldsetStart) Kind() Kind { return KindFieldsetStart }
func (FieldsetEnd) Kind() Kind   { return KindFieldsetEnd }
func (DivStart) Kind() Kind      { return KindDivStart }
func (DivEnd) Kind() Kind        { return KindDivEnd }
func (HTML) Kind() Kind          { return KindHTML }
func (CSRF) Kind() Kind          { return KindCSRF }

func (FieldsetStart) element() {}
func (FieldsetEnd) element()   {}
func (DivStart) element()      {}
func (DivEnd) element()        {}
func (HTML) element()          {}
func (CSRF) element()          {}

// CloneElements copies a sequence, deep-copying field descriptors.
func CloneElements(elements []Element) []Element {
	if elements == nil {
		return nil
	}
	out := make([]Element, len(elements))
	for idx, element := range elements {
		if field, ok := element.(Field); ok {
			out[idx] = field.Clone()
			continue
		}
		out[idx] = element
	}
	return out
}
