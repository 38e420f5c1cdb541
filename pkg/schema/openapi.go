package schema

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formbuilder/pkg/formdata"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/validation"
)

// OpenAPI media types for submitted forms.
const (
	ContentTypeURLEncoded = "application/x-www-form-urlencoded"
	ContentTypeMultipart  = "multipart/form-data"
)

// OpenAPIVersion is the document version emitted by Document.
const OpenAPIVersion = "3.0.3"

// OpenAPI describes the submitted payload of form as an object schema.
// Bracketed names nest into child objects, `[]` names and `multiple`
// controls become arrays, and required fields are listed on the object that
// owns them. Unnamed fields and markers are skipped.
func OpenAPI(form model.Form) *openapi3.Schema {
	root := objectSchema()
	for _, field := range form.Fields() {
		segments := formdata.SplitName(field.Name)
		if len(segments) == 0 {
			continue
		}
		parent := root
		for _, segment := range segments[:len(segments)-1] {
			parent = childObject(parent, segment)
		}
		leaf := segments[len(segments)-1]
		parent.Properties[leaf] = &openapi3.SchemaRef{Value: fieldSchema(field)}
		if field.IsRequired() {
			markRequired(root, segments)
		}
	}
	return root
}

// RequestBody wraps OpenAPI in a request body using the form encoding the
// browser would pick.
func RequestBody(form model.Form) *openapi3.RequestBody {
	return &openapi3.RequestBody{
		Required: true,
		Content: openapi3.Content{
			contentType(form): &openapi3.MediaType{
				Schema: &openapi3.SchemaRef{Value: OpenAPI(form)},
			},
		},
	}
}

// DocumentOptions names the generated OpenAPI document.
type DocumentOptions struct {
	Title       string
	Version     string
	OperationID string
}

// OpenAPIDocument builds a complete document with a single operation for
// the form's method and action. GET forms describe their fields as query
// parameters; every other method gets a request body.
func OpenAPIDocument(form model.Form, opts DocumentOptions) *openapi3.T {
	title := strings.TrimSpace(opts.Title)
	if title == "" {
		title = "Form"
	}
	version := strings.TrimSpace(opts.Version)
	if version == "" {
		version = "1.0.0"
	}
	desc := "Submission accepted"

	op := &openapi3.Operation{
		OperationID: strings.TrimSpace(opts.OperationID),
		Responses: openapi3.NewResponses(
			openapi3.WithName("200", &openapi3.Response{Description: &desc}),
		),
	}

	method := strings.ToUpper(strings.TrimSpace(form.Method))
	if method == "" {
		method = DefaultMethod
	}
	if method == http.MethodGet {
		op.Parameters = queryParameters(form)
	} else {
		op.RequestBody = &openapi3.RequestBodyRef{Value: RequestBody(form)}
	}

	doc := &openapi3.T{
		OpenAPI: OpenAPIVersion,
		Info: &openapi3.Info{
			Title:   title,
			Version: version,
		},
		Paths: &openapi3.Paths{},
	}
	item := &openapi3.PathItem{}
	switch method {
	case http.MethodGet:
		item.Get = op
	case http.MethodPut:
		item.Put = op
	case http.MethodPatch:
		item.Patch = op
	case http.MethodDelete:
		item.Delete = op
	default:
		item.Post = op
	}
	doc.Paths.Set(actionPath(form.Action), item)
	return doc
}

func queryParameters(form model.Form) openapi3.Parameters {
	schema := OpenAPI(form)
	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}
	params := openapi3.Parameters{}
	for _, name := range propertyOrder(form) {
		ref, ok := schema.Properties[name]
		if !ok {
			continue
		}
		params = append(params, &openapi3.ParameterRef{Value: &openapi3.Parameter{
			Name:     name,
			In:       openapi3.ParameterInQuery,
			Required: required[name],
			Schema:   ref,
		}})
	}
	return params
}

// propertyOrder lists top-level property names in declaration order.
func propertyOrder(form model.Form) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, field := range form.Fields() {
		segments := formdata.SplitName(field.Name)
		if len(segments) == 0 {
			continue
		}
		if _, ok := seen[segments[0]]; ok {
			continue
		}
		seen[segments[0]] = struct{}{}
		out = append(out, segments[0])
	}
	return out
}

func actionPath(action string) string {
	path := strings.TrimSpace(action)
	if parsed, err := url.Parse(path); err == nil {
		path = parsed.Path
	}
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}

func contentType(form model.Form) string {
	if form.Multipart {
		return ContentTypeMultipart
	}
	for _, field := range form.Fields() {
		if field.InputType() == model.FieldFile {
			return ContentTypeMultipart
		}
	}
	return ContentTypeURLEncoded
}

func objectSchema() *openapi3.Schema {
	return &openapi3.Schema{
		Type:       &openapi3.Types{openapi3.TypeObject},
		Properties: openapi3.Schemas{},
	}
}

func childObject(parent *openapi3.Schema, name string) *openapi3.Schema {
	if ref, ok := parent.Properties[name]; ok && ref != nil && ref.Value != nil && ref.Value.Properties != nil {
		return ref.Value
	}
	child := objectSchema()
	parent.Properties[name] = &openapi3.SchemaRef{Value: child}
	return child
}

func markRequired(root *openapi3.Schema, segments []string) {
	node := root
	for idx, segment := range segments {
		if !containsString(node.Required, segment) {
			node.Required = append(node.Required, segment)
		}
		if idx == len(segments)-1 {
			return
		}
		ref := node.Properties[segment]
		if ref == nil || ref.Value == nil {
			return
		}
		node = ref.Value
	}
}

func fieldSchema(field model.Field) *openapi3.Schema {
	item := scalarSchema(field)
	if field.Label != "" {
		item.Title = field.Label
	}
	if field.Help != "" {
		item.Description = field.Help
	}
	if !field.IsMultiple() {
		return item
	}
	return &openapi3.Schema{
		Type:        &openapi3.Types{openapi3.TypeArray},
		Title:       item.Title,
		Description: item.Description,
		Items:       &openapi3.SchemaRef{Value: scalarOnly(item)},
	}
}

func scalarOnly(schema *openapi3.Schema) *openapi3.Schema {
	out := *schema
	out.Title = ""
	out.Description = ""
	return &out
}

func scalarSchema(field model.Field) *openapi3.Schema {
	typ := field.InputType()
	if len(field.Options) > 0 {
		enum := make([]any, 0, len(field.Options))
		for _, value := range field.Options.Values() {
			enum = append(enum, value)
		}
		return &openapi3.Schema{Type: &openapi3.Types{openapi3.TypeString}, Enum: enum}
	}

	schema := &openapi3.Schema{Type: &openapi3.Types{openapi3.TypeString}}
	switch typ {
	case model.FieldNumber:
		schema.Type = &openapi3.Types{openapi3.TypeNumber}
		return schema
	case model.FieldCheckbox:
		schema.Type = &openapi3.Types{openapi3.TypeBoolean}
		return schema
	case model.FieldEmail:
		schema.Format = "email"
	case model.FieldURL:
		schema.Format = "uri"
	case model.FieldDate:
		schema.Format = "date"
	case model.FieldPassword:
		schema.Format = "password"
	case model.FieldFile:
		schema.Format = "binary"
		return schema
	}
	applyRules(schema, field)
	return schema
}

// applyRules carries the validation rules of a field into its schema.
func applyRules(schema *openapi3.Schema, field model.Field) {
	for _, rule := range validation.FieldRules(field) {
		switch rule.Name {
		case validation.RuleEmail:
			schema.Format = "email"
		case validation.RuleURL:
			schema.Format = "uri"
		case validation.RuleMinLength:
			if rule.Arg > 0 {
				schema.MinLength = uint64(rule.Arg)
			}
		}
	}
}

func containsString(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
