package discovery

import (
	"path"
	"strings"

	"xtp/internal/testcase"
)

// Filter narrows discovered cases by display name or trait
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// ByName filters cases by display-name pattern using wildcard matching.
// Supports patterns like "InvoiceTest.*" or "*Payment*". Uninitialized
// cases never match.
func (f *Filter) ByName(cases []*testcase.Case, pattern string) []*testcase.Case {
	if pattern == "" {
		return cases
	}

	var filtered []*testcase.Case
	for _, c := range cases {
		name, err := c.DisplayName()
		if err != nil {
			continue
		}
		if matchName(name, pattern) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// ByTrait filters cases to those carrying the given trait name, and when
// value is non-empty, that value under it. The name comparison is
// case-insensitive, as trait lookups always are.
func (f *Filter) ByTrait(cases []*testcase.Case, name, value string) []*testcase.Case {
	if name == "" {
		return cases
	}

	var filtered []*testcase.Case
	for _, c := range cases {
		traits, err := c.Traits()
		if err != nil {
			continue
		}
		values := traits.Get(name)
		if len(values) == 0 {
			continue
		}
		if value == "" {
			filtered = append(filtered, c)
			continue
		}
		for _, v := range values {
			if v == value {
				filtered = append(filtered, c)
				break
			}
		}
	}
	return filtered
}

// matchName tries path.Match first, then falls back to a segment-wise
// substring match for patterns like "*Payment*" that span separators, and
// finally to a plain contains check for patterns without wildcards.
func matchName(name, pattern string) bool {
	if matched, err := path.Match(pattern, name); err == nil && matched {
		return true
	}

	if strings.ContainsAny(pattern, "*?") {
		parts := strings.Split(pattern, "*")
		rest := name
		for _, part := range parts {
			if part == "" {
				continue
			}
			idx := strings.Index(rest, part)
			if idx < 0 {
				return false
			}
			rest = rest[idx+len(part):]
		}
		for _, part := range parts {
			if part != "" {
				return true
			}
		}
		return false
	}

	return strings.Contains(name, pattern)
}
