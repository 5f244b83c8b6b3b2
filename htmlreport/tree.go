package htmlreport

import (
	"bytes"
	"encoding/json"
	"sort"
)

// maxTreeDepth bounds recursion over embedded documents. Real notes nest
// three or four levels; anything deeper is truncated with a marker rather
// than risking a runaway list.
const maxTreeDepth = 8

// renderRawTree decodes an arbitrary JSON fragment and renders it as nested
// lists. A fragment that fails to decode renders the parse placeholder.
func renderRawTree(buf *bytes.Buffer, raw json.RawMessage) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		writeParseFailure(buf, "section")
		return
	}
	renderValue(buf, v, 0)
}

// renderValue renders one decoded JSON value. Objects and arrays become
// nested <ul> blocks, scalars become escaped text. Object keys are sorted
// so the output is deterministic.
func renderValue(buf *bytes.Buffer, v any, depth int) {
	if depth > maxTreeDepth {
		buf.WriteString("<ul><li><em>…</em></li></ul>")
		return
	}

	switch value := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(value))
		for k := range value {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		buf.WriteString("<ul>")
		for _, k := range keys {
			child := value[k]
			buf.WriteString("<li><strong>")
			buf.WriteString(safe(k))
			buf.WriteString("</strong>")
			if isScalar(child) {
				text := formatScalar(child)
				if text != "" {
					buf.WriteString(": ")
					buf.WriteString(safe(child))
				}
			} else {
				renderValue(buf, child, depth+1)
			}
			buf.WriteString("</li>")
		}
		buf.WriteString("</ul>")

	case []any:
		buf.WriteString("<ul>")
		for _, item := range value {
			if isScalar(item) {
				buf.WriteString("<li>")
				buf.WriteString(safe(item))
				buf.WriteString("</li>")
			} else {
				buf.WriteString("<li>")
				renderValue(buf, item, depth+1)
				buf.WriteString("</li>")
			}
		}
		buf.WriteString("</ul>")

	default:
		buf.WriteString(safe(value))
	}
}

func isScalar(v any) bool {
	switch v.(type) {
	case map[string]any, []any:
		return false
	}
	return true
}
