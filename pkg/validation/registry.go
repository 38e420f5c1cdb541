package validation

import (
	"github.com/goliatone/go-formbuilder/pkg/formdata"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Entry describes one required field.
type Entry struct {
	// Key is the field name with any trailing `[]` removed.
	Key   string
	Name  string
	Label string
	Type  model.FieldType
}

// Registry is the insertion-ordered set of required fields.
type Registry struct {
	order   []string
	entries map[string]Entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

// Register records field when it carries a truthy required attribute and
// reports whether it did. Registering an existing key updates the entry in
// place without changing its position.
func (r *Registry) Register(field model.Field) bool {
	if !field.IsRequired() {
		return false
	}
	key := formdata.BaseName(field.Name)
	if key == "" {
		return false
	}
	if r.entries == nil {
		r.entries = make(map[string]Entry)
	}
	if _, exists := r.entries[key]; !exists {
		r.order = append(r.order, key)
	}
	r.entries[key] = Entry{
		Key:   key,
		Name:  field.Name,
		Label: field.DisplayLabel(),
		Type:  field.InputType(),
	}
	return true
}

// Has reports whether name (or its base name) is required.
func (r *Registry) Has(name string) bool {
	if r == nil {
		return false
	}
	_, ok := r.entries[formdata.BaseName(name)]
	return ok
}

// Get returns the entry for name.
func (r *Registry) Get(name string) (Entry, bool) {
	if r == nil {
		return Entry{}, false
	}
	entry, ok := r.entries[formdata.BaseName(name)]
	return entry, ok
}

// Entries returns the registered fields in insertion order.
func (r *Registry) Entries() []Entry {
	if r == nil {
		return nil
	}
	out := make([]Entry, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.entries[key])
	}
	return out
}

// Len returns the number of required fields.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.order)
}

// Reset empties the registry.
func (r *Registry) Reset() {
	r.order = nil
	r.entries = make(map[string]Entry)
}

// Errors maps a field base name to its message.
type Errors map[string]string

// Get returns the message recorded for name.
func (e Errors) Get(name string) (string, bool) {
	msg, ok := e[formdata.BaseName(name)]
	return msg, ok
}

// Has reports whether name has an error.
func (e Errors) Has(name string) bool {
	_, ok := e.Get(name)
	return ok
}

// Clone copies the error set.
func (e Errors) Clone() Errors {
	if e == nil {
		return nil
	}
	out := make(Errors, len(e))
	for key, value := range e {
		out[key] = value
	}
	return out
}
