package extract

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"
)

// keyAliases holds the lowercased key names whose string values are
// extracted text.
var keyAliases = map[string]bool{
	"extractedtext":  true,
	"extracted_text": true,
}

// IsTextKey reports whether key names an extracted-text field.
func IsTextKey(key string) bool {
	return keyAliases[strings.ToLower(key)]
}

// Text walks v depth-first in pre-order and returns the trimmed,
// non-blank strings found under extracted-text keys.
//
// At each object the matching keys are collected first, then every value
// is visited. Object keys are visited in lexical order, array elements in
// index order. Strings are leaves and never searched. A nil or empty
// input yields an empty result.
func Text(v any) []string {
	out := []string{}
	walk(v, &out)
	return out
}

func walk(v any, out *[]string) {
	switch node := v.(type) {
	case nil, string, bool, float64, float32, int, int64, json.Number:
		return
	case map[string]any:
		keys := make([]string, 0, len(node))
		for k := range node {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			if !IsTextKey(k) {
				continue
			}
			if s, ok := node[k].(string); ok {
				if trimmed := strings.TrimSpace(s); trimmed != "" {
					*out = append(*out, trimmed)
				}
			}
		}
		for _, k := range keys {
			walk(node[k], out)
		}
	case []any:
		for _, elem := range node {
			walk(elem, out)
		}
	default:
		// Typed values (structs, typed maps and slices) are visited through
		// their JSON form.
		if generic, ok := Normalize(node); ok {
			walk(generic, out)
		}
	}
}

// Normalize converts v to its generic JSON form (map[string]any, []any,
// string, json.Number, bool, nil). It reports false if v cannot be
// represented as JSON or is already a scalar.
func Normalize(v any) (any, bool) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, false
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var generic any
	if err := dec.Decode(&generic); err != nil {
		return nil, false
	}
	switch generic.(type) {
	case map[string]any, []any:
		return generic, true
	default:
		return nil, false
	}
}
