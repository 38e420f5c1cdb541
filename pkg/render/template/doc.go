// Package template defines the template engine seam used by text renderers
// such as the Markdown documentation exporter.
package template
