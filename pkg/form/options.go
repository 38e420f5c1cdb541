package form

import (
	"log/slog"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formbuilder/pkg/csrf"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/renderers/bootstrap"
	"github.com/goliatone/go-formbuilder/pkg/validation"
)

// Option customises a Builder at construction time.
type Option func(*Builder)

// WithLogger routes builder logs to logger. The default discards them.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithCSRF supplies the token manager used by EnableCSRF and ValidateCSRF.
func WithCSRF(manager *csrf.Manager) Option {
	return func(b *Builder) {
		b.csrf = manager
	}
}

// WithSession builds a CSRF manager over store with the default settings.
func WithSession(store csrf.Store, options ...csrf.Option) Option {
	return func(b *Builder) {
		if store != nil {
			b.csrf = csrf.New(store, options...)
		}
	}
}

// WithRenderer replaces the HTML renderer.
func WithRenderer(renderer *bootstrap.Renderer) Option {
	return func(b *Builder) {
		if renderer != nil {
			b.html = renderer
		}
	}
}

// WithRegistry supplies the registry consulted by RenderWith. The HTML and
// Markdown renderers are added to it when missing.
func WithRegistry(registry *render.Registry) Option {
	return func(b *Builder) {
		b.registry = registry
	}
}

// WithClasses overrides individual CSS classes.
func WithClasses(classes render.Classes) Option {
	return func(b *Builder) {
		b.classes = b.classes.Merge(classes.Tokens(), true)
	}
}

// WithTheme resolves CSS classes from a go-theme selector. A failed lookup
// is reported by Err.
func WithTheme(selector theme.ThemeSelector, name, variant string) Option {
	return func(b *Builder) {
		classes, err := render.ResolveClasses(selector, name, variant)
		if err != nil {
			b.fail(err)
			return
		}
		b.classes = b.classes.Merge(classes.Tokens(), true)
	}
}

// WithValidator replaces the validation engine.
func WithValidator(validator *validation.Validator) Option {
	return func(b *Builder) {
		if validator != nil {
			b.validator = validator
		}
	}
}

// WithStrictUploads makes required file inputs whose upload cannot be
// resolved fail validation.
func WithStrictUploads() Option {
	return func(b *Builder) {
		b.validator = validation.New(validation.WithStrictUploads())
	}
}

// WithMaxMemory bounds the in-memory part of multipart parsing in
// BindRequest.
func WithMaxMemory(n int64) Option {
	return func(b *Builder) {
		if n > 0 {
			b.maxMemory = n
		}
	}
}
