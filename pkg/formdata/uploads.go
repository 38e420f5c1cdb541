package formdata

import (
	"strings"
)

// UploadError mirrors the per-file status codes reported for uploads.
type UploadError int

const (
	UploadErrOK        UploadError = 0
	UploadErrIniSize   UploadError = 1
	UploadErrFormSize  UploadError = 2
	UploadErrPartial   UploadError = 3
	UploadErrNoFile    UploadError = 4
	UploadErrNoTmpDir  UploadError = 6
	UploadErrCantWrite UploadError = 7
	UploadErrExtension UploadError = 8
)

// Upload attribute keys.
const (
	UploadAttrName    = "name"
	UploadAttrType    = "type"
	UploadAttrTmpName = "tmp_name"
	UploadAttrError   = "error"
	UploadAttrSize    = "size"
)

var uploadAttributes = []string{UploadAttrName, UploadAttrType, UploadAttrTmpName, UploadAttrError, UploadAttrSize}

// Uploads maps a top-level field name to one tree per upload attribute.
type Uploads map[string]map[string]any

// File describes a single uploaded slot. TmpName carries the handle to the
// stored content; for net/http requests it is the *multipart.FileHeader.
type File struct {
	Name    string
	Type    string
	TmpName any
	Error   UploadError
	Size    int64
}

// Add records file under the bracketed field name. Names ending in `[]`
// append a slot to every attribute sequence.
func (u Uploads) Add(name string, file File) {
	segments := SplitName(name)
	if len(segments) == 0 {
		return
	}
	appendMode := strings.HasSuffix(strings.TrimSpace(name), "[]")
	top, rest := segments[0], segments[1:]

	entry, ok := u[top]
	if !ok {
		entry = make(map[string]any, len(uploadAttributes))
		u[top] = entry
	}
	values := map[string]any{
		UploadAttrName:    file.Name,
		UploadAttrType:    file.Type,
		UploadAttrTmpName: file.TmpName,
		UploadAttrError:   file.Error,
		UploadAttrSize:    file.Size,
	}
	for _, attr := range uploadAttributes {
		entry[attr] = setTree(entry[attr], rest, values[attr], appendMode)
	}
}

// FileInfo is the resolved upload descriptor for one field. Each attribute is
// either a scalar (single input) or a sequence (multi-file input).
type FileInfo struct {
	Name    any
	Type    any
	TmpName any
	Error   any
	Size    any
}

// ResolveUpload applies the structured lookup to every upload attribute of
// name. The descriptor is only returned when all attributes resolve.
func ResolveUpload(uploads Uploads, name string) (FileInfo, bool) {
	segments := SplitName(name)
	if len(segments) == 0 || uploads == nil {
		return FileInfo{}, false
	}
	entry, ok := uploads[segments[0]]
	if !ok {
		return FileInfo{}, false
	}

	resolved := make(map[string]any, len(uploadAttributes))
	for _, attr := range uploadAttributes {
		tree, ok := entry[attr]
		if !ok {
			return FileInfo{}, false
		}
		value, ok := walk(tree, segments[1:])
		if !ok {
			return FileInfo{}, false
		}
		resolved[attr] = value
	}

	return FileInfo{
		Name:    resolved[UploadAttrName],
		Type:    resolved[UploadAttrType],
		TmpName: resolved[UploadAttrTmpName],
		Error:   resolved[UploadAttrError],
		Size:    resolved[UploadAttrSize],
	}, true
}

// ErrorCodes returns the status code of every slot. multi reports whether the
// input holds a sequence of files.
func (f FileInfo) ErrorCodes() (codes []UploadError, multi bool) {
	switch typed := f.Error.(type) {
	case []any:
		for _, item := range typed {
			if code, ok := toUploadError(item); ok {
				codes = append(codes, code)
			}
		}
		return codes, true
	case []UploadError:
		return append([]UploadError(nil), typed...), true
	case []int:
		for _, item := range typed {
			codes = append(codes, UploadError(item))
		}
		return codes, true
	default:
		if code, ok := toUploadError(typed); ok {
			return []UploadError{code}, false
		}
		return nil, false
	}
}

// Files expands the descriptor into per-slot files.
func (f FileInfo) Files() []File {
	codes, multi := f.ErrorCodes()
	if !multi {
		if len(codes) == 0 {
			return nil
		}
		return []File{{
			Name:    asString(f.Name),
			Type:    asString(f.Type),
			TmpName: f.TmpName,
			Error:   codes[0],
			Size:    asInt64(f.Size),
		}}
	}

	names := asSlice(f.Name)
	types := asSlice(f.Type)
	tmps := asSlice(f.TmpName)
	sizes := asSlice(f.Size)
	out := make([]File, 0, len(codes))
	for idx, code := range codes {
		out = append(out, File{
			Name:    asString(at(names, idx)),
			Type:    asString(at(types, idx)),
			TmpName: at(tmps, idx),
			Error:   code,
			Size:    asInt64(at(sizes, idx)),
		})
	}
	return out
}

func toUploadError(value any) (UploadError, bool) {
	switch typed := value.(type) {
	case UploadError:
		return typed, true
	case int:
		return UploadError(typed), true
	case int64:
		return UploadError(typed), true
	case float64:
		return UploadError(int(typed)), true
	default:
		return 0, false
	}
}

func asSlice(value any) []any {
	if list, ok := value.([]any); ok {
		return list
	}
	return nil
}

func at(list []any, idx int) any {
	if idx < 0 || idx >= len(list) {
		return nil
	}
	return list[idx]
}

func asString(value any) string {
	s, _ := value.(string)
	return s
}

func asInt64(value any) int64 {
	switch typed := value.(type) {
	case int64:
		return typed
	case int:
		return int64(typed)
	case float64:
		return int64(typed)
	default:
		return 0
	}
}
