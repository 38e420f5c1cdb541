package formdata

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestResolveUpload_NestedSingleFile(t *testing.T) {
	uploads := Uploads{
		"documents": {
			"name":     map[string]any{"cv": "cv.pdf"},
			"type":     map[string]any{"cv": "application/pdf"},
			"tmp_name": map[string]any{"cv": "/tmp/upload123"},
			"error":    map[string]any{"cv": 0},
			"size":     map[string]any{"cv": 2048},
		},
	}

	info, ok := ResolveUpload(uploads, "documents[cv]")
	if !ok {
		t.Fatalf("expected upload to resolve")
	}
	codes, multi := info.ErrorCodes()
	if multi {
		t.Fatalf("single input reported as multi")
	}
	if diff := cmp.Diff([]UploadError{UploadErrOK}, codes); diff != "" {
		t.Fatalf("codes mismatch (-want +got):\n%s", diff)
	}
	files := info.Files()
	if len(files) != 1 || files[0].Name != "cv.pdf" || files[0].Size != 2048 {
		t.Fatalf("unexpected files: %+v", files)
	}

	if _, ok := ResolveUpload(uploads, "documents[photo]"); ok {
		t.Fatalf("missing segment should not resolve")
	}
	if _, ok := ResolveUpload(uploads, "avatar"); ok {
		t.Fatalf("missing field should not resolve")
	}
}

func TestUploadsAdd_MultiFileBuildsParallelSequences(t *testing.T) {
	uploads := Uploads{}
	uploads.Add("docs[]", File{Name: "a.txt", Type: "text/plain", Size: 1})
	uploads.Add("docs[]", File{Error: UploadErrNoFile})

	info, ok := ResolveUpload(uploads, "docs[]")
	if !ok {
		t.Fatalf("expected multi upload to resolve")
	}
	codes, multi := info.ErrorCodes()
	if !multi {
		t.Fatalf("expected multi input")
	}
	if diff := cmp.Diff([]UploadError{UploadErrOK, UploadErrNoFile}, codes); diff != "" {
		t.Fatalf("codes mismatch (-want +got):\n%s", diff)
	}
	files := info.Files()
	if len(files) != 2 || files[0].Name != "a.txt" || files[1].Error != UploadErrNoFile {
		t.Fatalf("unexpected files: %+v", files)
	}
}

func TestFromRequest_Multipart(t *testing.T) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	mustWriteField(t, writer, "user[name]", "Ada")
	mustWriteField(t, writer, "interests[]", "rust")
	mustWriteField(t, writer, "interests[]", "ai")
	part, err := writer.CreateFormFile("documents[cv]", "cv.txt")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte("hello")); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/submit", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	sub, err := FromRequest(req, 0, "documents[cv]", "documents[photo]")
	if err != nil {
		t.Fatalf("from request: %v", err)
	}

	if sub.Method != http.MethodPost {
		t.Fatalf("method = %q", sub.Method)
	}
	if got := sub.Values.String("user[name]"); got != "Ada" {
		t.Fatalf("user[name] = %q", got)
	}
	interests, _ := sub.Values.Get("interests[]")
	if diff := cmp.Diff([]string{"rust", "ai"}, interests); diff != "" {
		t.Fatalf("interests mismatch (-want +got):\n%s", diff)
	}

	cv, ok := ResolveUpload(sub.Uploads, "documents[cv]")
	if !ok {
		t.Fatalf("cv upload missing")
	}
	files := cv.Files()
	if len(files) != 1 || files[0].Name != "cv.txt" || files[0].Size != 5 || files[0].Error != UploadErrOK {
		t.Fatalf("unexpected cv files: %+v", files)
	}
	if _, ok := files[0].TmpName.(*multipart.FileHeader); !ok {
		t.Fatalf("expected file header handle, got %T", files[0].TmpName)
	}

	photo, ok := ResolveUpload(sub.Uploads, "documents[photo]")
	if !ok {
		t.Fatalf("declared file field should be recorded")
	}
	codes, _ := photo.ErrorCodes()
	if diff := cmp.Diff([]UploadError{UploadErrNoFile}, codes); diff != "" {
		t.Fatalf("photo codes mismatch (-want +got):\n%s", diff)
	}
}

func TestFromRequest_URLEncoded(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader("subscribe=yes&user%5Bemail%5D=a%40b.c"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	sub, err := FromRequest(req, 0)
	if err != nil {
		t.Fatalf("from request: %v", err)
	}
	want := Values{
		"subscribe": "yes",
		"user":      map[string]any{"email": "a@b.c"},
	}
	if diff := cmp.Diff(want, sub.Values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if len(sub.Uploads) != 0 {
		t.Fatalf("expected no uploads, got %v", sub.Uploads)
	}
}

func mustWriteField(t *testing.T, writer *multipart.Writer, name, value string) {
	t.Helper()
	if err := writer.WriteField(name, value); err != nil {
		t.Fatalf("write field %s: %v", name, err)
	}
}
