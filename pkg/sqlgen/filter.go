package sqlgen

import (
	"fmt"
	"reflect"
	"strings"
)

// Op is a filter comparison operator.
type Op string

const (
	OpEq      Op = "="
	OpNotEq   Op = "!="
	OpGt      Op = ">"
	OpGtOrEq  Op = ">="
	OpLt      Op = "<"
	OpLtOrEq  Op = "<="
	OpIn      Op = "IN"
	OpNotIn   Op = "NOT IN"
	OpLike    Op = "LIKE"
	OpBetween Op = "BETWEEN"
)

// Filter is one WHERE-clause predicate. Value shape is operator-specific:
// a scalar for comparisons, a list for IN/NOT IN, exactly two values for
// BETWEEN, a string for LIKE. Use the typed constructors to make
// mismatches unrepresentable; data-driven callers (YAML documents) are
// shape-checked at render time and fail with ErrMalformedFilter.
type Filter struct {
	Field string `yaml:"field" json:"field"`
	Op    Op     `yaml:"op" json:"op"`
	Value any    `yaml:"value" json:"value"`
}

// Eq filters on equality with a scalar value.
func Eq(field string, value any) Filter { return Filter{Field: field, Op: OpEq, Value: value} }

// NotEq filters on inequality with a scalar value.
func NotEq(field string, value any) Filter { return Filter{Field: field, Op: OpNotEq, Value: value} }

// Gt filters on field > value.
func Gt(field string, value any) Filter { return Filter{Field: field, Op: OpGt, Value: value} }

// GtOrEq filters on field >= value.
func GtOrEq(field string, value any) Filter { return Filter{Field: field, Op: OpGtOrEq, Value: value} }

// Lt filters on field < value.
func Lt(field string, value any) Filter { return Filter{Field: field, Op: OpLt, Value: value} }

// LtOrEq filters on field <= value.
func LtOrEq(field string, value any) Filter { return Filter{Field: field, Op: OpLtOrEq, Value: value} }

// In filters on membership in the given values.
func In(field string, values ...any) Filter { return Filter{Field: field, Op: OpIn, Value: values} }

// NotIn filters on absence from the given values.
func NotIn(field string, values ...any) Filter {
	return Filter{Field: field, Op: OpNotIn, Value: values}
}

// Like filters on a wildcard-wrapped substring match.
func Like(field, value string) Filter { return Filter{Field: field, Op: OpLike, Value: value} }

// Between filters on an inclusive range.
func Between(field string, lo, hi any) Filter {
	return Filter{Field: field, Op: OpBetween, Value: []any{lo, hi}}
}

// Condition renders the filter as a SQL predicate. The rendering is keyed
// by operator: BETWEEN needs exactly two values, IN/NOT IN a non-empty
// list with each element individually quoted, LIKE is always wrapped in
// wildcards, and every comparison operator quotes its scalar.
func (f Filter) Condition() (string, error) {
	if err := checkIdentifier(f.Field); err != nil {
		return "", err
	}

	switch f.Op {
	case OpBetween:
		pair, ok := valueList(f.Value)
		if !ok || len(pair) != 2 {
			return "", fmt.Errorf("%w: BETWEEN on %q requires exactly two values", ErrMalformedFilter, f.Field)
		}
		return fmt.Sprintf("%s BETWEEN %s AND %s", f.Field, quoteValue(pair[0]), quoteValue(pair[1])), nil

	case OpIn, OpNotIn:
		values, ok := valueList(f.Value)
		if !ok || len(values) == 0 {
			return "", fmt.Errorf("%w: %s on %q requires a non-empty list", ErrMalformedFilter, f.Op, f.Field)
		}
		quoted := make([]string, len(values))
		for i, v := range values {
			quoted[i] = quoteValue(v)
		}
		return fmt.Sprintf("%s %s (%s)", f.Field, f.Op, strings.Join(quoted, ", ")), nil

	case OpLike:
		s, ok := f.Value.(string)
		if !ok {
			return "", fmt.Errorf("%w: LIKE on %q requires a string value", ErrMalformedFilter, f.Field)
		}
		return fmt.Sprintf("%s LIKE '%%%s%%'", f.Field, escapeLiteral(s)), nil

	case OpEq, OpNotEq, OpGt, OpGtOrEq, OpLt, OpLtOrEq:
		if _, isList := valueList(f.Value); isList || f.Value == nil {
			return "", fmt.Errorf("%w: %s on %q requires a scalar value", ErrMalformedFilter, f.Op, f.Field)
		}
		return fmt.Sprintf("%s %s %s", f.Field, f.Op, quoteValue(f.Value)), nil

	default:
		return "", fmt.Errorf("%w: unsupported operator %q", ErrMalformedFilter, f.Op)
	}
}

// valueList normalizes slice- or array-shaped values to []any. Strings
// and byte slices are scalars, not lists.
func valueList(v any) ([]any, bool) {
	if v == nil {
		return nil, false
	}
	if vs, ok := v.([]any); ok {
		return vs, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	if rv.Type().Elem().Kind() == reflect.Uint8 {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// escapeLiteral escapes a raw value for embedding inside an already
// quoted literal body (used by LIKE, which adds its own wildcards).
func escapeLiteral(s string) string {
	quoted := quoteString(s)
	return quoted[1 : len(quoted)-1]
}
