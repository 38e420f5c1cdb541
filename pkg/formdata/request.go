package formdata

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"sort"
	"strings"
)

// DefaultMaxMemory bounds the in-memory part of multipart parsing.
const DefaultMaxMemory int64 = 32 << 20

// FromRequest decodes the submitted fields and uploads of r. fileFields lists
// the declared file inputs; any of them missing from the body is recorded with
// UploadErrNoFile so required checks see an explicit empty slot.
func FromRequest(r *http.Request, maxMemory int64, fileFields ...string) (Submission, error) {
	if r == nil {
		return Submission{}, errors.New("formdata: request is nil")
	}
	if maxMemory <= 0 {
		maxMemory = DefaultMaxMemory
	}

	sub := Submission{
		Method:  strings.ToUpper(r.Method),
		Values:  Values{},
		Uploads: Uploads{},
	}

	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxMemory); err != nil {
			return Submission{}, fmt.Errorf("formdata: parse multipart form: %w", err)
		}
	} else if err := r.ParseForm(); err != nil {
		return Submission{}, fmt.Errorf("formdata: parse form: %w", err)
	}

	source := r.PostForm
	if sub.Method == http.MethodGet || sub.Method == http.MethodHead {
		source = r.Form
	}
	sub.Values = ValuesFromURL(source)

	if r.MultipartForm != nil {
		keys := make([]string, 0, len(r.MultipartForm.File))
		for key := range r.MultipartForm.File {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			for _, header := range r.MultipartForm.File[key] {
				sub.Uploads.Add(key, File{
					Name:    header.Filename,
					Type:    header.Header.Get("Content-Type"),
					TmpName: header,
					Error:   UploadErrOK,
					Size:    header.Size,
				})
			}
		}
	}

	for _, name := range fileFields {
		if strings.TrimSpace(name) == "" {
			continue
		}
		if _, ok := ResolveUpload(sub.Uploads, name); ok {
			continue
		}
		sub.Uploads.Add(name, File{Error: UploadErrNoFile})
	}

	return sub, nil
}

// ValuesFromURL nests flat url.Values using bracket names. Keys are applied
// in sorted order so repeated decodes produce identical trees.
func ValuesFromURL(form url.Values) Values {
	out := Values{}
	keys := make([]string, 0, len(form))
	for key := range form {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		for _, value := range form[key] {
			out.Set(key, value)
		}
	}
	return out
}

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mediaType == "multipart/form-data"
}
