package validation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/asaskevich/govalidator"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Rule names accepted in the `validate` attribute.
const (
	RuleEmail     = "email"
	RuleURL       = "url"
	RuleMinLength = "minlength"
)

// ErrUnknownRule is returned by ParseRules for unsupported rule names.
var ErrUnknownRule = errors.New("validation: unknown rule")

// Rule is one parsed field rule.
type Rule struct {
	Name string
	// Arg holds the numeric argument of minlength.
	Arg int
}

func (r Rule) ozzo() validation.Rule {
	switch r.Name {
	case RuleEmail:
		return is.EmailFormat
	case RuleURL:
		return validation.NewStringRule(govalidator.IsURL, "must be a valid URL")
	case RuleMinLength:
		return validation.RuneLength(r.Arg, 0)
	default:
		return nil
	}
}

// Message renders the failure message for label.
func (r Rule) Message(label string) string {
	switch r.Name {
	case RuleEmail:
		return fmt.Sprintf("%s must be a valid email address.", label)
	case RuleURL:
		return fmt.Sprintf("%s must be a valid URL.", label)
	case RuleMinLength:
		return fmt.Sprintf("%s must be at least %d characters.", label, r.Arg)
	default:
		return fmt.Sprintf("%s is invalid.", label)
	}
}

// ParseRules parses a comma-separated rule expression such as
// "email,minlength:8". Every token is parsed; unknown or malformed tokens are
// skipped and reported through the joined error.
func ParseRules(expr string) ([]Rule, error) {
	var (
		rules []Rule
		errs  []error
	)
	for _, token := range strings.Split(expr, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		name, arg, hasArg := strings.Cut(token, ":")
		name = strings.ToLower(strings.TrimSpace(name))
		switch name {
		case RuleEmail, RuleURL:
			rules = append(rules, Rule{Name: name})
		case RuleMinLength:
			n, err := strconv.Atoi(strings.TrimSpace(arg))
			if !hasArg || err != nil || n < 0 {
				errs = append(errs, fmt.Errorf("%w: %q needs a non-negative integer", ErrUnknownRule, token))
				continue
			}
			rules = append(rules, Rule{Name: name, Arg: n})
		default:
			errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownRule, token))
		}
	}
	return rules, errors.Join(errs...)
}

// FieldRules collects the rules of field: the `validate` attribute plus an
// HTML `minlength` attribute when no explicit minlength rule is present.
func FieldRules(field model.Field) []Rule {
	rules, _ := ParseRules(field.Attributes.String(model.AttrValidate))
	if !field.Attributes.Has(model.AttrMinLength) {
		return rules
	}
	for _, rule := range rules {
		if rule.Name == RuleMinLength {
			return rules
		}
	}
	n, err := strconv.Atoi(strings.TrimSpace(field.Attributes.String(model.AttrMinLength)))
	if err != nil || n <= 0 {
		return rules
	}
	return append(rules, Rule{Name: RuleMinLength, Arg: n})
}
