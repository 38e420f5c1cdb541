package tui

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/formdata"
)

func (r *Renderer) serialize(values formdata.Values) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(flattenForm(values)), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(values)), nil
	default:
		out, err := json.Marshal(values)
		if err != nil {
			return nil, fmt.Errorf("tui: encode json: %w", err)
		}
		return out, nil
	}
}

// flattenForm encodes values with bracket names, the inverse of
// formdata.ValuesFromURL.
func flattenForm(values formdata.Values) string {
	flattened := url.Values{}
	flatten("", map[string]any(values), flattened)
	return flattened.Encode()
}

func flatten(prefix string, value any, out url.Values) {
	switch v := value.(type) {
	case map[string]any:
		for key, val := range v {
			flatten(childName(prefix, key), val, out)
		}
	case formdata.Values:
		flatten(prefix, map[string]any(v), out)
	case []string:
		for _, val := range v {
			out.Add(prefix+"[]", val)
		}
	case []any:
		for _, val := range v {
			out.Add(prefix+"[]", fmt.Sprint(val))
		}
	default:
		out.Set(prefix, fmt.Sprint(v))
	}
}

func prettyPrint(values formdata.Values) string {
	var b strings.Builder
	writePretty(&b, "", map[string]any(values))
	return b.String()
}

func writePretty(b *strings.Builder, prefix string, value any) {
	switch v := value.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			writePretty(b, childName(prefix, key), v[key])
		}
	case formdata.Values:
		writePretty(b, prefix, map[string]any(v))
	case []string:
		for idx, val := range v {
			fmt.Fprintf(b, "%s[%d]=%s\n", prefix, idx, val)
		}
	default:
		if prefix != "" {
			fmt.Fprintf(b, "%s=%v\n", prefix, v)
		}
	}
}

func childName(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "[" + key + "]"
}
