// Package model defines the declarative form model shared by the builder,
// renderers and the schema codec. A form is an ordered sequence of elements:
// field descriptors plus structural markers (fieldsets, divs, raw HTML and the
// CSRF hidden input). The element set is closed; renderers switch on the
// concrete type (or on Kind) and can rely on every case being known.
//
// Field names may use bracket notation (`user[email]`, `interests[]`) so
// submitted values nest the same way browsers and most server frameworks
// encode them. Attributes and options keep insertion order so that rendering
// and schema snapshots stay deterministic.
package model
