package directory

import "strings"

// ParseTags splits a delimited tag string into chips. Pipe is the primary
// delimiter; comma is used only when no pipe is present. Items are trimmed
// and empty items dropped.
func ParseTags(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	sep := ","
	if strings.Contains(s, "|") {
		sep = "|"
	}

	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
