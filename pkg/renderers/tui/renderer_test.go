package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/formdata"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/validation"
)

type stubDriver struct {
	answers   []Answer
	questions []Question
	notices   []string
	err       error
}

func (s *stubDriver) Ask(_ context.Context, q Question) (Answer, error) {
	if s.err != nil {
		return Answer{}, s.err
	}
	s.questions = append(s.questions, q)
	if len(s.answers) == 0 {
		return Answer{}, errors.New("no answer scripted")
	}
	next := s.answers[0]
	s.answers = s.answers[1:]
	return next, nil
}

func (s *stubDriver) Notify(_ context.Context, msg string) error {
	s.notices = append(s.notices, msg)
	return nil
}

func text(v string) Answer          { return Answer{Text: v} }
func picked(labels ...string) Answer { return Answer{Choices: labels} }

func signupForm() model.Form {
	return model.Form{
		Method: "POST",
		Elements: []model.Element{
			model.CSRF{Name: "_csrf_token", Value: "t0k"},
			model.FieldsetStart{Legend: "Account"},
			model.Field{
				Name:  "user[email]",
				Type:  model.FieldEmail,
				Label: "Email",
				Attributes: model.Attributes{
					model.Attr("required", true),
					model.Attr("validate", "email"),
				},
			},
			model.FieldsetEnd{},
			model.Field{
				Name:    "plan",
				Type:    model.FieldSelect,
				Options: model.Options{model.Opt("basic", "Basic"), model.Opt("pro", "Pro")},
			},
			model.Field{
				Name:    "interests[]",
				Type:    model.FieldCheckbox,
				Options: model.Options{model.Opt("go", "Go"), model.Opt("ai", "AI"), model.Opt("db", "Databases")},
			},
			model.Field{Name: "subscribe", Type: model.FieldCheckbox, Label: "Subscribe"},
			model.Field{Name: "token", Type: model.FieldHidden, Attributes: model.Attributes{model.Attr("value", "abc")}},
			model.Field{Name: "avatar", Type: model.FieldFile, Label: "Avatar"},
			model.HTML{Content: "<hr>"},
			model.Field{Name: "", Type: model.FieldText},
		},
	}
}

func TestRender_CollectsValuesInDeclarationOrder(t *testing.T) {
	driver := &stubDriver{answers: []Answer{
		text(""), text("bad"), text(" a@b.co "),
		picked("Pro"),
		picked("Go", "Databases"),
		{Toggle: true},
	}}
	r, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	out, err := r.Render(context.Background(), signupForm(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := `{"_csrf_token":"t0k","interests":["go","db"],"plan":"pro","subscribe":"on","token":"abc","user":{"email":"a@b.co"}}`
	if string(out) != want {
		t.Fatalf("unexpected output:\nwant %s\ngot  %s", want, out)
	}

	wantInfo := []string{
		"Account",
		"Email is required.",
		"Email must be a valid email address.",
		"Avatar: file uploads are skipped",
	}
	if diff := cmp.Diff(wantInfo, driver.notices); diff != "" {
		t.Fatalf("notices mismatch (-want +got):\n%s", diff)
	}
	plan := driver.questions[3]
	if plan.Kind != AskChoice || !cmp.Equal(plan.Choices, []string{"Basic", "Pro"}) {
		t.Fatalf("select should ask with option labels, got %+v", plan)
	}
	if driver.questions[4].Kind != AskChoices || driver.questions[5].Kind != AskToggle {
		t.Fatalf("unexpected kinds: %v %v", driver.questions[4].Kind, driver.questions[5].Kind)
	}
}

func TestRender_SeedsDefaultsFromValues(t *testing.T) {
	driver := &stubDriver{answers: []Answer{text("x"), text("42"), picked("Basic"), picked("AI")}}
	r, err := New(WithPromptDriver(driver), WithOutputFormat(OutputFormatFormURLEncoded))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	form := model.Form{Elements: []model.Element{
		model.Field{Name: "age", Type: model.FieldNumber, Label: "Age"},
		model.Field{Name: "plan", Type: model.FieldRadio, Options: model.Options{model.Opt("basic", "Basic"), model.Opt("pro", "Pro")}},
		model.Field{Name: "interests[]", Type: model.FieldCheckbox, Options: model.Options{model.Opt("go", "Go"), model.Opt("ai", "AI")}},
	}}
	values := formdata.Values{
		"age":       "7",
		"plan":      "pro",
		"interests": []string{"go"},
	}

	out, err := r.Render(context.Background(), form, render.RenderOptions{Values: values})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got, want := string(out), "age=42&interests%5B%5D=ai&plan=basic"; got != want {
		t.Fatalf("unexpected output:\nwant %s\ngot  %s", want, got)
	}
	if driver.questions[0].Default != "7" {
		t.Fatalf("expected submitted default, got %q", driver.questions[0].Default)
	}
	if diff := cmp.Diff([]string{"Pro"}, driver.questions[2].Selected); diff != "" {
		t.Fatalf("radio preselection mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Go"}, driver.questions[3].Selected); diff != "" {
		t.Fatalf("multi preselection mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Age must be a number."}, driver.notices); diff != "" {
		t.Fatalf("notices mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_RequiredToggleReprompts(t *testing.T) {
	driver := &stubDriver{answers: []Answer{{Toggle: false}, {Toggle: true}}}
	r, err := New(WithPromptDriver(driver), WithOutputFormat(OutputFormatPrettyText), WithTheme(Theme{ErrorPrefix: "! "}))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	form := model.Form{Elements: []model.Element{
		model.Field{Name: "terms[accept]", Type: model.FieldCheckbox, Label: "Terms", Attributes: model.Attributes{model.Attr("value", "yes")}},
	}}
	registry := validation.NewRegistry()
	registry.Register(model.Field{Name: "terms[accept]", Type: model.FieldCheckbox, Label: "Terms", Attributes: model.Attributes{model.Attr("required", true)}})

	out, err := r.Render(context.Background(), form, render.RenderOptions{Required: registry})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := string(out); got != "terms[accept]=yes\n" {
		t.Fatalf("unexpected output %q", got)
	}
	if diff := cmp.Diff([]string{"! Terms is required."}, driver.notices); diff != "" {
		t.Fatalf("notices mismatch (-want +got):\n%s", diff)
	}
}

func TestFill_SubmitTransformer(t *testing.T) {
	driver := &stubDriver{answers: []Answer{text("hunter2"), text("hello\nworld")}}
	r, err := New(
		WithPromptDriver(driver),
		WithSubmitTransformer(func(values formdata.Values) (formdata.Values, error) {
			delete(values, "secret")
			return values, nil
		}),
	)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	form := model.Form{Elements: []model.Element{
		model.Field{Name: "secret", Type: model.FieldPassword},
		model.Field{Name: "bio", Type: model.FieldTextarea},
	}}

	values, err := r.Fill(context.Background(), form, render.RenderOptions{})
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if diff := cmp.Diff(formdata.Values{"bio": "hello\nworld"}, values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}

	failing, err := New(WithPromptDriver(&stubDriver{}), WithSubmitTransformer(func(formdata.Values) (formdata.Values, error) {
		return nil, errors.New("boom")
	}))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if _, err := failing.Fill(context.Background(), model.Form{}, render.RenderOptions{}); err == nil || !strings.Contains(err.Error(), "submit transformer") {
		t.Fatalf("expected transformer error, got %v", err)
	}
}

func TestRender_Errors(t *testing.T) {
	form := model.Form{Elements: []model.Element{model.Field{Name: "q", Type: model.FieldText}}}

	aborted, err := New(WithPromptDriver(&stubDriver{err: ErrAborted}))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if _, err := aborted.Render(context.Background(), form, render.RenderOptions{}); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := aborted.Render(ctx, form, render.RenderOptions{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	if _, err := New(WithOutputFormat("xml")); err == nil {
		t.Fatalf("expected unsupported format error")
	}
}

func TestRenderer_Metadata(t *testing.T) {
	r, err := New(WithPromptDriver(&stubDriver{}))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if r.Name() != "tui" || r.ContentType() != "application/json" {
		t.Fatalf("unexpected metadata %q %q", r.Name(), r.ContentType())
	}
}

func TestQuestion_DerivedFromFieldAttributes(t *testing.T) {
	field := model.Field{
		Name: "secret",
		Type: model.FieldPassword,
		Help: "At least 8 characters.",
		Attributes: model.Attributes{
			model.Attr("required", true),
			model.Attr("placeholder", "correct horse"),
			model.Attr("value", "leak"),
			model.Attr("validate", "minlength:8"),
		},
	}
	p := prompt{field: field, name: field.Name, label: field.DisplayLabel(), required: true}
	q := p.question()

	if q.Kind != AskSecret {
		t.Fatalf("expected secret prompt, got %v", q.Kind)
	}
	if q.Default != "" {
		t.Fatalf("secret prompts must not carry a default, got %q", q.Default)
	}
	if got, want := q.Hint(), "At least 8 characters. (e.g. correct horse)"; got != want {
		t.Fatalf("hint mismatch\nwant %q\ngot  %q", want, got)
	}
	if q.Check == nil {
		t.Fatalf("expected rule check on the question")
	}
	if err := q.Check(""); err == nil || err.Error() != "Secret is required." {
		t.Fatalf("expected required message, got %v", err)
	}
	if err := q.Check("short"); err == nil {
		t.Fatalf("expected minlength rule to reject short answer")
	}
	if err := q.Check("long enough"); err != nil {
		t.Fatalf("unexpected rejection: %v", err)
	}

	bare := Question{Placeholder: "you@example.com"}
	if got := bare.Hint(); got != "e.g. you@example.com" {
		t.Fatalf("placeholder-only hint mismatch: %q", got)
	}
}

func TestRender_UnknownChoiceReprompts(t *testing.T) {
	driver := &stubDriver{answers: []Answer{picked("Gold"), picked("Basic")}}
	r, err := New(WithPromptDriver(driver), WithOutputFormat(OutputFormatPrettyText))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	form := model.Form{Elements: []model.Element{
		model.Field{Name: "plan", Type: model.FieldSelect, Options: model.Options{model.Opt("basic", "Basic"), model.Opt("pro", "")}},
	}}

	out, err := r.Render(context.Background(), form, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := string(out); got != "plan=basic\n" {
		t.Fatalf("unexpected output %q", got)
	}
	if diff := cmp.Diff([]string{"Basic", "pro"}, driver.questions[0].Choices); diff != "" {
		t.Fatalf("choices mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Invalid Plan selection"}, driver.notices); diff != "" {
		t.Fatalf("notices mismatch (-want +got):\n%s", diff)
	}
}
