// Package formdata models the data a browser submits for a form: nested
// field values, file upload metadata and the request method. Field names use
// bracket notation (`user[email]`, `interests[]`) and are resolved against
// nested maps with Lookup.
//
// Uploads follow the per-attribute layout used by classic server stacks: the
// top-level field name maps to one tree per attribute (name, type, tmp_name,
// error, size) and the remaining name segments index into each tree. Multi
// file inputs hold a sequence at the leaf of every attribute tree.
package formdata
