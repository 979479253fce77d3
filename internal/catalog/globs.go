package catalog

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/Spruttybangbang/aim25s-website/internal/core/directory"
)

// ExpandValues resolves filter values for a dimension against its options.
// Plain values pass through unchanged. Values containing glob syntax are
// matched case-insensitively with doublestar and replaced by every matching
// option. A pattern that matches nothing is an error.
func ExpandValues(opts directory.Options, d directory.Dimension, values []string) ([]string, error) {
	var (
		out  []string
		seen = make(map[string]bool)
	)
	add := func(v string) {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}

	for _, v := range values {
		if !IsPattern(v) {
			add(v)
			continue
		}
		if !doublestar.ValidatePattern(v) {
			return nil, fmt.Errorf("ogiltigt mönster %q för %s", v, d)
		}

		pattern := strings.ToLower(v)
		matched := false
		for _, opt := range opts.For(d) {
			ok, err := doublestar.Match(pattern, strings.ToLower(opt))
			if err != nil {
				return nil, fmt.Errorf("match %q: %w", v, err)
			}
			if ok {
				matched = true
				add(opt)
			}
		}
		if !matched {
			return nil, fmt.Errorf("mönstret %q matchar inget värde för %s", v, d)
		}
	}
	return out, nil
}

// IsPattern reports whether s contains glob syntax.
func IsPattern(s string) bool {
	return strings.ContainsAny(s, "*?[{")
}
