// Package formbuilder is the entry point of the module. It re-exports the
// builder from pkg/form together with the model types most callers need, so a
// typical handler only imports this package:
//
//	builder := formbuilder.New(formbuilder.WithSession(sess)).
//		SetAction("/contact").
//		EnableCSRF().
//		AddField("email", formbuilder.FieldEmail, "Email", formbuilder.Required(), formbuilder.Rule("email"))
//
// Lower level packages (model, formdata, validation, render, schema and the
// renderers) remain importable for custom renderers or alternate transports.
package formbuilder

import (
	"io/fs"

	"github.com/goliatone/go-formbuilder/pkg/docs"
	"github.com/goliatone/go-formbuilder/pkg/form"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

type (
	Builder     = form.Builder
	Option      = form.Option
	FieldOption = form.FieldOption
	SubmitFunc  = form.SubmitFunc

	Field     = model.Field
	FieldType = model.FieldType
	Form      = model.Form
	Element   = model.Element
)

// Field types.
const (
	FieldText     = model.FieldText
	FieldEmail    = model.FieldEmail
	FieldPassword = model.FieldPassword
	FieldNumber   = model.FieldNumber
	FieldTel      = model.FieldTel
	FieldURL      = model.FieldURL
	FieldDate     = model.FieldDate
	FieldHidden   = model.FieldHidden
	FieldTextarea = model.FieldTextarea
	FieldSelect   = model.FieldSelect
	FieldCheckbox = model.FieldCheckbox
	FieldRadio    = model.FieldRadio
	FieldFile     = model.FieldFile
)

// New returns a Builder. See form.New.
func New(options ...Option) *Builder {
	return form.New(options...)
}

var (
	WithLogger        = form.WithLogger
	WithCSRF          = form.WithCSRF
	WithSession       = form.WithSession
	WithRenderer      = form.WithRenderer
	WithRegistry      = form.WithRegistry
	WithClasses       = form.WithClasses
	WithTheme         = form.WithTheme
	WithValidator     = form.WithValidator
	WithStrictUploads = form.WithStrictUploads
	WithMaxMemory     = form.WithMaxMemory

	Attr     = form.Attr
	Attrs    = form.Attrs
	Required = form.Required
	Rule     = form.Rule
	Options  = form.Options
	Help     = form.Help
	Value    = form.Value
	Checked  = form.Checked
)

// Opt builds a select, radio or checkbox option.
func Opt(value, label string) model.Option {
	return model.Opt(value, label)
}

// EmbeddedTemplates exposes the built-in Markdown documentation templates so
// callers can reuse or extend them without importing the docs package.
func EmbeddedTemplates() fs.FS {
	return docs.TemplatesFS()
}
