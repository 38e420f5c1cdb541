// Package form provides the FormBuilder: a per-request object that collects
// field declarations and structural markers, binds one submission, validates
// it and renders the result as Bootstrap-styled HTML.
//
// A typical handler declares the form, binds the request, hands it to
// HandleSubmit and renders whatever came back:
//
//	b := form.New(form.WithSession(sess)).
//		SetAction("/register").
//		EnableCSRF().
//		AddField("user[email]", model.FieldEmail, "Email", form.Required(), form.Rule("email")).
//		OnSubmit(save)
//	if err := b.BindRequest(r); err != nil { ... }
//	if called, err := b.HandleSubmit(r.Context()); ...
//	out, err := b.Render(r.Context())
//
// Builders are not safe for concurrent use.
package form
