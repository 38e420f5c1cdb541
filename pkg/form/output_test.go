package form

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/docs"
	"github.com/goliatone/go-formbuilder/pkg/formdata"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/renderers/tui"
	"github.com/goliatone/go-formbuilder/pkg/schema"
)

func TestRender_FormStructure(t *testing.T) {
	b := registrationBuilder()
	out, err := b.Render(context.Background())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)

	if !strings.HasPrefix(html, `<form method="POST" action="/register" id="register" novalidate="novalidate" enctype="multipart/form-data">`) {
		t.Fatalf("unexpected form tag:\n%s", html)
	}
	order := []string{
		`<fieldset class="mb-3"><legend class="fs-5">Account</legend>`,
		`name="user[email]"`,
		`name="user[name]"`,
		`</fieldset>`,
		`<div class="row">`,
		`name="interests[]"`,
		`name="cv"`,
		`<hr>`,
		`<button type="submit" class="btn btn-primary">Create account</button>`,
		`</form>`,
	}
	last := -1
	for _, fragment := range order {
		idx := strings.Index(html, fragment)
		if idx < 0 || idx < last {
			t.Fatalf("fragment %q missing or out of order in:\n%s", fragment, html)
		}
		last = idx
	}
}

func TestRender_Debug(t *testing.T) {
	b := New().AddField("name", model.FieldText, "Name").EnableDebug()
	b.Bind(formdata.Submission{Method: "POST", Values: formdata.Values{"name": "<Ada>"}})
	b.Validate()

	html := b.HTML()
	if !strings.HasPrefix(html, `<div class="formbuilder-debug">`) {
		t.Fatalf("debug dump should precede the form:\n%s", html)
	}
	if !strings.Contains(html, "<pre>Values:\n{\n  &#34;name&#34;: &#34;\\u003cAda\\u003e&#34;\n}</pre>") {
		t.Fatalf("values dump missing:\n%s", html)
	}
	if strings.Contains(html, "<pre>Values:\n{\n  \"name\"") {
		t.Fatalf("dump must be escaped:\n%s", html)
	}
	if !strings.Contains(html, "<pre>Errors:\n{}</pre>") {
		t.Fatalf("errors dump missing:\n%s", html)
	}
}

func TestRenderFieldByName(t *testing.T) {
	b := New().AddField("q", model.FieldText, "Search")
	if got := b.RenderFieldByName("missing"); got != "<!-- Field 'missing' not found -->" {
		t.Fatalf("unexpected missing marker %q", got)
	}
	if got := b.RenderFieldByName("q"); !strings.Contains(got, `<input type="text" name="q" id="q" class="form-control" value="">`) {
		t.Fatalf("unexpected field markup:\n%s", got)
	}
	raw := b.RenderFieldRaw(model.Field{Name: "extra", Type: model.FieldHidden, Attributes: model.Attributes{model.Attr("value", "1")}})
	if !strings.Contains(raw, `type="hidden"`) {
		t.Fatalf("unexpected raw field markup:\n%s", raw)
	}
}

func TestPreview(t *testing.T) {
	b := New().
		StartFieldset("Ignored").
		AddField("email", model.FieldEmail, "Email", Required()).
		AddField("", model.FieldText, "Nameless").
		EndFieldset()
	preview := b.Preview()
	if !strings.Contains(preview, "<strong>Email</strong>") {
		t.Fatalf("preview missing label:\n%s", preview)
	}
	if strings.Contains(preview, "Ignored") || strings.Contains(preview, "Nameless") {
		t.Fatalf("preview should skip markers and unnamed fields:\n%s", preview)
	}
}

func TestExportMarkdownDoc(t *testing.T) {
	b := registrationBuilder()
	doc, err := b.ExportMarkdownDoc(context.Background())
	if err != nil {
		t.Fatalf("markdown: %v", err)
	}
	for _, fragment := range []string{
		"# Form Documentation",
		"### Email\n- Name: `user[email]`\n- Type: `email`\n- Required: Yes\n- Help: We never share it.",
		"### User Name\n- Name: `user[name]`\n- Type: `text`\n",
		"- Options: Go, AI",
	} {
		if !strings.Contains(doc, fragment) {
			t.Fatalf("expected %q in:\n%s", fragment, doc)
		}
	}
	if strings.Contains(doc, "Account") {
		t.Fatalf("structural markers should not be documented:\n%s", doc)
	}

	if got := b.Renderers(); !cmp.Equal(got, []string{"bootstrap", docs.Name}) {
		t.Fatalf("unexpected renderers %v", got)
	}
	if _, err := b.RenderWith(context.Background(), "pdf"); !errors.Is(err, render.ErrUnknownRenderer) {
		t.Fatalf("expected unknown renderer error, got %v", err)
	}
}

func TestExportOpenAPI(t *testing.T) {
	doc := registrationBuilder().ExportOpenAPI(schema.DocumentOptions{Title: "Register"})
	if err := doc.Validate(context.Background()); err != nil {
		t.Fatalf("invalid document: %v", err)
	}
	op := doc.Paths.Value("/register").Post
	if op == nil {
		t.Fatalf("expected POST operation")
	}
	if _, ok := op.RequestBody.Value.Content[schema.ContentTypeMultipart]; !ok {
		t.Fatalf("file fields should use multipart content")
	}
}

type scriptedDriver struct {
	inputs []string
}

// Ask answers text prompts from the script and picks the first choice.
func (d *scriptedDriver) Ask(_ context.Context, q tui.Question) (tui.Answer, error) {
	switch q.Kind {
	case tui.AskChoice, tui.AskChoices:
		return tui.Answer{Choices: q.Choices[:1]}, nil
	case tui.AskToggle:
		return tui.Answer{}, nil
	}
	if len(d.inputs) == 0 {
		return tui.Answer{}, errors.New("no input scripted")
	}
	next := d.inputs[0]
	d.inputs = d.inputs[1:]
	return tui.Answer{Text: next}, nil
}

func (d *scriptedDriver) Notify(context.Context, string) error {
	return nil
}

func TestFillTUI_BindsAnswers(t *testing.T) {
	var got formdata.Values
	b := New().
		AddField("name", model.FieldText, "Name", Required()).
		AddField("plan", model.FieldSelect, "Plan", Options(model.Opt("basic", "Basic"))).
		OnSubmit(func(_ context.Context, values formdata.Values, _ formdata.Uploads) error {
			got = values
			return nil
		})

	values, err := b.FillTUI(context.Background(), tui.WithPromptDriver(&scriptedDriver{inputs: []string{"Ada"}}))
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	want := formdata.Values{"name": "Ada", "plan": "basic"}
	if diff := cmp.Diff(want, values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}

	ran, err := b.HandleSubmit(context.Background())
	if !ran || err != nil {
		t.Fatalf("expected submit after fill: ran=%v err=%v", ran, err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("callback values mismatch (-want +got):\n%s", diff)
	}
}
