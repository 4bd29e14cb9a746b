package sqlgen

import (
	"fmt"
	"regexp"
	"strings"
)

// identPattern matches plain SQL identifiers, optionally dot-qualified.
var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)

// checkIdentifier rejects field names that are not plain identifiers.
// Field names come from caller-supplied configs and are embedded into the
// statement unquoted, so anything beyond [A-Za-z0-9_.] is refused.
func checkIdentifier(name string) error {
	if !identPattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrUnsafeIdentifier, name)
	}
	return nil
}

// quoteString renders s as a BigQuery single-quoted string literal,
// backslash-escaping backslashes, quotes, and line breaks. The generated
// statements embed every value as a literal; nothing is parameterized.
func quoteString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\'':
			b.WriteString(`\'`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}

// quoteValue renders any filter value as a quoted literal. Numbers are
// quoted like strings; BigQuery coerces the comparison.
func quoteValue(v any) string {
	switch t := v.(type) {
	case string:
		return quoteString(t)
	case fmt.Stringer:
		return quoteString(t.String())
	default:
		return quoteString(fmt.Sprintf("%v", t))
	}
}
