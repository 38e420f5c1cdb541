package form

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/formdata"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/validation"
)

// Bind attaches one submission. Nil maps are replaced with empty ones.
func (b *Builder) Bind(sub formdata.Submission) *Builder {
	if sub.Values == nil {
		sub.Values = formdata.Values{}
	}
	if sub.Uploads == nil {
		sub.Uploads = formdata.Uploads{}
	}
	sub.Method = strings.ToUpper(strings.TrimSpace(sub.Method))
	b.submission = sub
	b.bound = true
	return b
}

// BindRequest decodes r and binds it. Declared file inputs missing from the
// body are recorded as empty upload slots.
func (b *Builder) BindRequest(r *http.Request) error {
	sub, err := formdata.FromRequest(r, b.maxMemory, b.fileFieldNames()...)
	if err != nil {
		return fmt.Errorf("form: bind request: %w", err)
	}
	b.Bind(sub)
	return nil
}

func (b *Builder) fileFieldNames() []string {
	var names []string
	for _, element := range b.elements {
		field, ok := element.(model.Field)
		if !ok || field.InputType() != model.FieldFile {
			continue
		}
		if name := strings.TrimSpace(field.Name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// Submission returns the bound submission.
func (b *Builder) Submission() (formdata.Submission, bool) {
	return b.submission, b.bound
}

// ValidateCSRF compares the submitted token with the session token. A
// mismatch is logged and reported as false; it never aborts.
func (b *Builder) ValidateCSRF(values formdata.Values) bool {
	if b.csrf == nil {
		b.logger.Warn("csrf validation without session store")
		return false
	}
	name := b.csrf.FieldName()
	if b.csrf.Validate(values.String(name)) {
		return true
	}
	b.logger.Warn("csrf token mismatch", "field", name, "action", b.action)
	return false
}

// Validate runs the required checks and field rules against the bound
// submission and replaces the error set.
func (b *Builder) Validate() validation.Errors {
	b.errors = b.validator.Validate(
		b.required,
		b.Form().Fields(),
		b.submission.Values,
		b.submission.Uploads,
	)
	b.logger.Debug("form validated",
		"action", b.action,
		"required", b.required.Len(),
		"errors", len(b.errors),
	)
	return b.errors.Clone()
}

// OnSubmit registers the callback run by HandleSubmit.
func (b *Builder) OnSubmit(fn SubmitFunc) *Builder {
	b.onSubmit = fn
	return b
}

// HandleSubmit validates the bound submission when its method matches the
// form method and calls the OnSubmit callback when no errors remain. It
// reports whether the callback ran along with the callback's error.
func (b *Builder) HandleSubmit(ctx context.Context) (bool, error) {
	if !b.bound || b.submission.Method != b.method {
		return false, nil
	}
	if errs := b.Validate(); len(errs) > 0 {
		return false, nil
	}
	if b.onSubmit == nil {
		return false, nil
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	values := formdata.Sanitize(b.submission.Values)
	if values == nil {
		values = formdata.Values{}
	}
	if err := b.onSubmit(ctx, values, b.submission.Uploads); err != nil {
		b.logger.Error("form submit callback failed", "action", b.action, "error", err)
		return true, fmt.Errorf("form: submit callback: %w", err)
	}
	return true, nil
}
