package testcase

import (
	"fmt"
	"strings"

	"xtp/internal/introspect"
)

// Deriver is the policy point for computing a case's annotation-derived
// metadata. Alternate implementations may compute any field differently but
// must keep the display name non-empty and the timeout non-negative;
// Initialize enforces both.
type Deriver interface {
	DisplayName(c *Case, fact introspect.Annotation) string
	SkipReason(c *Case, fact introspect.Annotation) string
	Timeout(c *Case, fact introspect.Annotation) int
}

// DefaultDeriver implements the framework-supplied derivation: the
// annotation-declared name when present, else the method name qualified by
// its class with formatted argument values appended for parameterized cases.
type DefaultDeriver struct{}

// DisplayName derives the case's display name.
func (DefaultDeriver) DisplayName(c *Case, fact introspect.Annotation) string {
	if name, ok := fact.NamedString("name"); ok && name != "" {
		return name
	}
	name := c.method.Name()
	if class := c.method.Class(); class != nil {
		name = class.Name() + "." + name
	}
	if len(c.args) > 0 {
		name += "(" + FormatArgs(c.args) + ")"
	}
	return name
}

// SkipReason derives the skip reason; absent means the case runs.
func (DefaultDeriver) SkipReason(c *Case, fact introspect.Annotation) string {
	skip, _ := fact.NamedString("skip")
	return skip
}

// Timeout derives the timeout in milliseconds; absent means 0 (unbounded).
func (DefaultDeriver) Timeout(c *Case, fact introspect.Annotation) int {
	timeout, _ := fact.NamedInt("timeout")
	return timeout
}

// maxArgLength bounds the rendered length of a single argument value.
const maxArgLength = 50

// FormatArgs renders a parameter row for inclusion in a display name. Each
// argument is rendered to a bounded-length representation; values whose
// rendering panics fall back to a placeholder.
func FormatArgs(args []any) string {
	rendered := make([]string, len(args))
	for i, arg := range args {
		rendered[i] = formatArg(arg)
	}
	return strings.Join(rendered, ", ")
}

func formatArg(arg any) (out string) {
	defer func() {
		if recover() != nil {
			out = "???"
		}
	}()
	if arg == nil {
		return "null"
	}
	var s string
	switch v := arg.(type) {
	case string:
		s = fmt.Sprintf("%q", v)
	default:
		s = fmt.Sprintf("%v", arg)
	}
	if len(s) > maxArgLength {
		s = s[:maxArgLength-3] + "..."
	}
	return s
}
