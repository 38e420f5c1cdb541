package model

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func TestAttributes_JSONKeepsDeclarationOrder(t *testing.T) {
	attrs := Attributes{
		Attr("required", true),
		Attr("placeholder", "you@example.com"),
		Attr("minlength", 3),
		Attr("aria-label", nil),
	}

	payload, err := json.Marshal(attrs)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"required":true,"placeholder":"you@example.com","minlength":3,"aria-label":null}`
	if string(payload) != want {
		t.Fatalf("unexpected payload:\nwant %s\ngot  %s", want, payload)
	}

	var decoded Attributes
	if err := json.Unmarshal([]byte(`{"z":"last","a":1.5,"m":false}`), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	wantDecoded := Attributes{Attr("z", "last"), Attr("a", 1.5), Attr("m", false)}
	if diff := cmp.Diff(wantDecoded, decoded); diff != "" {
		t.Fatalf("decoded mismatch (-want +got):\n%s", diff)
	}
}

func TestAttributes_YAMLKeepsDeclarationOrder(t *testing.T) {
	source := "zeta: 1\nalpha: \"yes\"\nrequired: true\n"
	var decoded Attributes
	if err := yaml.Unmarshal([]byte(source), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := Attributes{Attr("zeta", 1), Attr("alpha", "yes"), Attr("required", true)}
	if diff := cmp.Diff(want, decoded); diff != "" {
		t.Fatalf("decoded mismatch (-want +got):\n%s", diff)
	}

	out, err := yaml.Marshal(decoded)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var again Attributes
	if err := yaml.Unmarshal(out, &again); err != nil {
		t.Fatalf("unmarshal again: %v", err)
	}
	if diff := cmp.Diff(want, again); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestAttributes_RejectsNestedValues(t *testing.T) {
	var decoded Attributes
	if err := json.Unmarshal([]byte(`{"data":{"nested":true}}`), &decoded); err == nil {
		t.Fatalf("expected nested attribute value to fail")
	}
}

func TestAttributes_SetWithoutAndTruthy(t *testing.T) {
	base := Attributes{Attr("value", "yes"), Attr("checked", true)}
	updated := base.Set("value", "no").Set("class", "wide")

	if got := base.String("value"); got != "yes" {
		t.Fatalf("Set mutated receiver, value=%q", got)
	}
	want := Attributes{Attr("value", "no"), Attr("checked", true), Attr("class", "wide")}
	if diff := cmp.Diff(want, updated); diff != "" {
		t.Fatalf("set mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(Attributes{Attr("class", "wide")}, updated.Without("value", "checked")); diff != "" {
		t.Fatalf("without mismatch (-want +got):\n%s", diff)
	}

	cases := map[any]bool{
		true: true, false: false, "": false, "0": false, "false": false,
		"required": true, 1: true, 0: false, 2.5: true,
	}
	for value, want := range cases {
		if got := IsTruthy(value); got != want {
			t.Fatalf("IsTruthy(%#v) = %v, want %v", value, got, want)
		}
	}
}

func TestOptions_JSONObjectOrder(t *testing.T) {
	var opts Options
	if err := json.Unmarshal([]byte(`{"rust":"Rust","js":"JavaScript","ai":"AI"}`), &opts); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if diff := cmp.Diff([]string{"rust", "js", "ai"}, opts.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if label, ok := opts.Label("js"); !ok || label != "JavaScript" {
		t.Fatalf("unexpected label %q (%v)", label, ok)
	}
}

func TestDefaultLabeler(t *testing.T) {
	cases := map[string]string{
		"user[first_name]": "User First Name",
		"interests[]":      "Interests",
		"postalCode":       "Postal Code",
		"documents[cv]":    "Documents Cv",
		"":                 "",
	}
	for input, want := range cases {
		if got := DefaultLabeler(input); got != want {
			t.Fatalf("DefaultLabeler(%q) = %q, want %q", input, got, want)
		}
	}
}
