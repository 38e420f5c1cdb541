package bootstrap

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tpl templates/components/*.tpl
var templatesFS embed.FS

// TemplatesFS exposes the built-in templates so callers can layer overrides
// on top of them.
func TemplatesFS() fs.FS {
	return templatesFS
}
