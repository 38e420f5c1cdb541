package validation

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-formbuilder/pkg/formdata"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Option configures a Validator.
type Option func(*Validator)

// WithStrictUploads makes a required file input whose upload cannot be
// resolved at all fail. By default such inputs pass.
func WithStrictUploads() Option {
	return func(v *Validator) {
		v.strictUploads = true
	}
}

// Validator checks submissions against a registry and field rules. The zero
// value is ready to use.
type Validator struct {
	strictUploads bool
}

// New constructs a Validator.
func New(options ...Option) *Validator {
	v := &Validator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(v)
	}
	return v
}

// RequiredMessage formats the message for a missing required field.
func RequiredMessage(label string) string {
	return fmt.Sprintf("%s is required.", label)
}

// Validate runs the required checks in registry order, then the rules of
// every field whose value is present and has no error yet. The returned set
// is new on every call.
func (v *Validator) Validate(registry *Registry, fields []model.Field, values formdata.Values, uploads formdata.Uploads) Errors {
	errs := Errors{}
	for _, entry := range registry.Entries() {
		if v.satisfied(entry, values, uploads) {
			continue
		}
		errs[entry.Key] = RequiredMessage(entry.Label)
	}

	for _, field := range fields {
		key := formdata.BaseName(field.Name)
		if key == "" || field.InputType() == model.FieldFile {
			continue
		}
		if _, failed := errs[key]; failed {
			continue
		}
		rules := FieldRules(field)
		if len(rules) == 0 {
			continue
		}
		if msg, ok := checkRules(rules, field.DisplayLabel(), presentStrings(values, key)); !ok {
			errs[key] = msg
		}
	}
	return errs
}

func (v *Validator) satisfied(entry Entry, values formdata.Values, uploads formdata.Uploads) bool {
	if entry.Type == model.FieldFile {
		return v.uploadSatisfied(entry.Key, uploads)
	}
	value, ok := values.Get(entry.Key)
	if !ok {
		return false
	}
	return hasContent(value)
}

func (v *Validator) uploadSatisfied(key string, uploads formdata.Uploads) bool {
	info, ok := formdata.ResolveUpload(uploads, key)
	if !ok {
		return !v.strictUploads
	}
	codes, multi := info.ErrorCodes()
	if multi {
		for _, code := range codes {
			if code != formdata.UploadErrNoFile {
				return true
			}
		}
		return false
	}
	return len(codes) == 0 || codes[0] != formdata.UploadErrNoFile
}

func hasContent(value any) bool {
	switch typed := value.(type) {
	case string:
		return requiredOK(typed)
	case []string, []any:
		items, _ := formdata.Strings(typed)
		for _, item := range items {
			if requiredOK(item) {
				return true
			}
		}
		return false
	case map[string]any:
		return len(typed) > 0
	case formdata.Values:
		return len(typed) > 0
	case nil:
		return false
	default:
		return requiredOK(model.ScalarString(typed))
	}
}

func requiredOK(s string) bool {
	return validation.Validate(strings.TrimSpace(s), validation.Required) == nil
}

// presentStrings returns the trimmed non-empty string values stored under key.
func presentStrings(values formdata.Values, key string) []string {
	value, ok := values.Get(key)
	if !ok {
		return nil
	}
	items, _ := formdata.Strings(value)
	out := items[:0:0]
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func checkRules(rules []Rule, label string, items []string) (string, bool) {
	for _, item := range items {
		for _, rule := range rules {
			check := rule.ozzo()
			if check == nil {
				continue
			}
			if err := validation.Validate(item, check); err != nil {
				return rule.Message(label), false
			}
		}
	}
	return "", true
}

// CheckValue applies the rules of field to a single value and reports the
// first failure message. Blank values pass.
func CheckValue(field model.Field, value string) (string, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", true
	}
	return checkRules(FieldRules(field), field.DisplayLabel(), []string{trimmed})
}
