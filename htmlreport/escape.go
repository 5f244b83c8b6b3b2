package htmlreport

import (
	"html"
	"strconv"
)

// formatScalar renders a decoded JSON scalar as display text. Exports quote
// numbers inconsistently, so numeric values arrive as either string or
// float64. Nil renders as the empty string, never "<nil>".
func formatScalar(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	default:
		return ""
	}
}

// safe returns HTML-escaped display text for a scalar value.
func safe(v any) string {
	return html.EscapeString(formatScalar(v))
}
