// Package validation tracks which declared fields are required and checks a
// submission against them. Optional per-field rules (email, url, minlength)
// run on non-empty values once the required pass is done.
package validation
