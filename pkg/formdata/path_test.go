package formdata

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplitName(t *testing.T) {
	cases := map[string][]string{
		"a[b][c]":     {"a", "b", "c"},
		"a[]":         {"a"},
		"plain":       {"plain"},
		"user[email]": {"user", "email"},
		"":            nil,
		"[]":          nil,
	}
	for input, want := range cases {
		if diff := cmp.Diff(want, SplitName(input)); diff != "" {
			t.Fatalf("SplitName(%q) mismatch (-want +got):\n%s", input, diff)
		}
	}
}

func TestLookup_PlainNamesMatchDirectAccess(t *testing.T) {
	source := map[string]any{
		"title":  "Hello",
		"empty":  "",
		"tags":   []string{"a", "b"},
		"nested": map[string]any{"k": "v"},
	}
	for _, name := range []string{"title", "empty", "tags", "nested", "missing"} {
		got, gotOK := Lookup(source, name)
		want, wantOK := source[name]
		if gotOK != wantOK {
			t.Fatalf("Lookup(%q) presence = %v, direct = %v", name, gotOK, wantOK)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("Lookup(%q) mismatch (-want +got):\n%s", name, diff)
		}
	}
}

func TestLookup_MissingIntermediateSegment(t *testing.T) {
	source := map[string]any{
		"a": map[string]any{
			"b": map[string]any{"c": "deep"},
		},
		"scalar": "x",
	}

	if got, ok := Lookup(source, "a[b][c]"); !ok || got != "deep" {
		t.Fatalf("expected deep value, got %v (%v)", got, ok)
	}
	for _, name := range []string{"a[x][c]", "a[b][x]", "missing[b]", "scalar[child]", "a[b][c][d]"} {
		got, ok := Lookup(source, name)
		if ok || got != nil {
			t.Fatalf("Lookup(%q) = %v, %v; want nil, false", name, got, ok)
		}
	}
	if got, ok := Lookup(nil, "a[b]"); ok || got != nil {
		t.Fatalf("nil source should resolve to nil")
	}
}

func TestLookup_ArrayNamesResolveToSequence(t *testing.T) {
	values := Values{}
	values.Set("interests[]", "rust")
	values.Set("interests[]", "ai")
	values.Set("user[name]", "Ada")
	values.Set("user[email]", "ada@example.com")
	values.Set("plain", "first")
	values.Set("plain", "second")

	got, ok := values.Get("interests[]")
	if !ok {
		t.Fatalf("interests not resolved")
	}
	if diff := cmp.Diff([]string{"rust", "ai"}, got); diff != "" {
		t.Fatalf("interests mismatch (-want +got):\n%s", diff)
	}
	if got := values.String("interests[1]"); got != "ai" {
		t.Fatalf("indexed lookup = %q, want ai", got)
	}
	if got := values.String("user[email]"); got != "ada@example.com" {
		t.Fatalf("nested lookup = %q", got)
	}
	if got := values.String("plain"); got != "second" {
		t.Fatalf("repeated plain name should keep last value, got %q", got)
	}
}

func TestControlIDAndBaseName(t *testing.T) {
	if got := ControlID("user[email]"); got != "user_email_" {
		t.Fatalf("ControlID = %q", got)
	}
	if got := ControlID("interests[]"); got != "interests__" {
		t.Fatalf("ControlID = %q", got)
	}
	if got := BaseName("interests[]"); got != "interests" {
		t.Fatalf("BaseName = %q", got)
	}
	if got := BaseName("user[email]"); got != "user[email]" {
		t.Fatalf("BaseName = %q", got)
	}
}

func TestSanitize_PreservesStructure(t *testing.T) {
	data := map[string]any{
		"name":  "  <b>Ada</b> ",
		"tags":  []string{" x ", "<y>"},
		"user":  map[string]any{"bio": " a & b "},
		"count": 3,
	}
	want := Values{
		"name":  "&lt;b&gt;Ada&lt;/b&gt;",
		"tags":  []string{"x", "&lt;y&gt;"},
		"user":  map[string]any{"bio": "a &amp; b"},
		"count": 3,
	}
	if diff := cmp.Diff(want, Sanitize(data)); diff != "" {
		t.Fatalf("sanitize mismatch (-want +got):\n%s", diff)
	}
	if data["name"] != "  <b>Ada</b> " {
		t.Fatalf("sanitize mutated input")
	}
}
