package form

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/formdata"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/validation"
)

func contactBuilder(options ...Option) *Builder {
	return New(options...).
		AddField("name", model.FieldText, "Name", Required()).
		AddField("user[email]", model.FieldEmail, "Email", Required(), Rule("email")).
		AddField("interests[]", model.FieldCheckbox, "Interests", Required(),
			Options(model.Opt("go", "Go"), model.Opt("ai", "AI")))
}

func TestHandleSubmit_MethodMismatchSkips(t *testing.T) {
	called := false
	b := contactBuilder().OnSubmit(func(context.Context, formdata.Values, formdata.Uploads) error {
		called = true
		return nil
	})

	ran, err := b.HandleSubmit(context.Background())
	if ran || err != nil || called {
		t.Fatalf("unbound builder should not submit: ran=%v err=%v", ran, err)
	}

	b.Bind(formdata.Submission{Method: "get", Values: formdata.Values{"name": "Ada"}})
	ran, err = b.HandleSubmit(context.Background())
	if ran || err != nil || called {
		t.Fatalf("GET submission on POST form should not submit")
	}
	if len(b.Errors()) != 0 {
		t.Fatalf("validation should not run on method mismatch: %v", b.Errors())
	}
}

func TestHandleSubmit_ValidationFailureKeepsErrors(t *testing.T) {
	b := contactBuilder().OnSubmit(func(context.Context, formdata.Values, formdata.Uploads) error {
		t.Fatalf("callback must not run with errors")
		return nil
	})
	b.Bind(formdata.Submission{
		Method: "POST",
		Values: formdata.Values{
			"name":      "   ",
			"user":      map[string]any{"email": "not-an-email"},
			"interests": []string{"", " "},
		},
	})

	ran, err := b.HandleSubmit(context.Background())
	if ran || err != nil {
		t.Fatalf("unexpected result ran=%v err=%v", ran, err)
	}
	want := validation.Errors{
		"name":        "Name is required.",
		"user[email]": "Email must be a valid email address.",
		"interests":   "Interests is required.",
	}
	if diff := cmp.Diff(want, b.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}

	html := b.HTML()
	for _, fragment := range []string{
		`<div class="invalid-feedback">Name is required.</div>`,
		`<div class="invalid-feedback d-block">Interests is required.</div>`,
		`value="not-an-email"`,
	} {
		if !strings.Contains(html, fragment) {
			t.Fatalf("expected %q in:\n%s", fragment, html)
		}
	}
}

func TestHandleSubmit_PassesSanitizedValues(t *testing.T) {
	var got formdata.Values
	b := contactBuilder().OnSubmit(func(_ context.Context, values formdata.Values, _ formdata.Uploads) error {
		got = values
		return nil
	})
	b.Bind(formdata.Submission{
		Method: "POST",
		Values: formdata.Values{
			"name":      " <b>Ada</b> ",
			"user":      map[string]any{"email": "ada@example.com"},
			"interests": []string{"go"},
		},
	})

	ran, err := b.HandleSubmit(context.Background())
	if !ran || err != nil {
		t.Fatalf("expected callback to run: ran=%v err=%v", ran, err)
	}
	want := formdata.Values{
		"name":      "&lt;b&gt;Ada&lt;/b&gt;",
		"user":      map[string]any{"email": "ada@example.com"},
		"interests": []string{"go"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}

	// validating twice yields the same empty set
	if len(b.Validate()) != 0 || len(b.Validate()) != 0 {
		t.Fatalf("validation should be idempotent")
	}
}

func TestHandleSubmit_CallbackError(t *testing.T) {
	var logs bytes.Buffer
	boom := errors.New("smtp down")
	b := New(WithLogger(slog.New(slog.NewTextHandler(&logs, nil)))).
		AddField("q", model.FieldText, "Query").
		OnSubmit(func(context.Context, formdata.Values, formdata.Uploads) error { return boom })
	b.Bind(formdata.Submission{Method: "POST", Values: formdata.Values{"q": "x"}})

	ran, err := b.HandleSubmit(context.Background())
	if !ran || !errors.Is(err, boom) {
		t.Fatalf("expected wrapped callback error, got ran=%v err=%v", ran, err)
	}
	if !strings.Contains(logs.String(), "form submit callback failed") {
		t.Fatalf("callback failure should be logged: %q", logs.String())
	}
}

func TestBindRequest_MissingRequiredUpload(t *testing.T) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("title", "Report"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	b := New().
		AddField("title", model.FieldText, "Title", Required()).
		AddField("cv", model.FieldFile, "CV", Required())
	if err := b.BindRequest(req); err != nil {
		t.Fatalf("bind: %v", err)
	}

	errs := b.Validate()
	if diff := cmp.Diff(validation.Errors{"cv": "CV is required."}, errs); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	sub, bound := b.Submission()
	if !bound || sub.Values.String("title") != "Report" {
		t.Fatalf("unexpected submission: %+v", sub)
	}
}

func TestBindRequest_UploadedFileSatisfiesRequired(t *testing.T) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("docs[]", "a.txt")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte("hello")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	b := New().AddField("docs[]", model.FieldFile, "Documents", Required(), Attr("multiple", true))
	if err := b.BindRequest(req); err != nil {
		t.Fatalf("bind: %v", err)
	}
	if errs := b.Validate(); len(errs) != 0 {
		t.Fatalf("expected upload to satisfy required, got %v", errs)
	}
}

func TestStrictUploads(t *testing.T) {
	lax := New().AddField("cv", model.FieldFile, "CV", Required())
	lax.Bind(formdata.Submission{Method: "POST"})
	if errs := lax.Validate(); len(errs) != 0 {
		t.Fatalf("unresolved uploads pass by default, got %v", errs)
	}

	strict := New(WithStrictUploads()).AddField("cv", model.FieldFile, "CV", Required())
	strict.Bind(formdata.Submission{Method: "POST"})
	if errs := strict.Validate(); errs["cv"] != "CV is required." {
		t.Fatalf("strict mode should fail unresolved uploads, got %v", errs)
	}
}
