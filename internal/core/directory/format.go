package directory

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Placeholder is rendered for null or empty values.
const Placeholder = "-"

// FormatCellValue renders a raw field value for display: nil and empty
// strings become the placeholder, booleans become Ja/Nej and everything
// else is coerced to its string form.
func FormatCellValue(v any) string {
	switch val := v.(type) {
	case nil:
		return Placeholder
	case string:
		if val == "" {
			return Placeholder
		}
		return val
	case bool:
		if val {
			return "Ja"
		}
		return "Nej"
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case *bool:
		if val == nil {
			return Placeholder
		}
		return FormatCellValue(*val)
	default:
		return fmt.Sprint(val)
	}
}

// IsEmptyValue reports whether v would render as the placeholder.
func IsEmptyValue(v any) bool {
	return FormatCellValue(v) == Placeholder
}

// Truncate shortens s to max runes and appends "..." when it was longer.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}

// DisplayURL strips the scheme and trailing slash from a website for display.
func DisplayURL(raw string) string {
	s := strings.TrimPrefix(raw, "https://")
	s = strings.TrimPrefix(s, "http://")
	return strings.TrimSuffix(s, "/")
}
