// Package schema converts declared forms to and from a portable interchange
// document (JSON or YAML) and describes them as OpenAPI request bodies.
//
// Document layout:
//
//	method, action, id, class, attributes, submit_label, elements
//
// Each element is either a field (`type` is the control type) or a marker
// whose `type` is one of start_fieldset, end_fieldset, start_div, end_div,
// html or csrf.
package schema
