package sqlgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter_Condition(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   string
	}{
		{"equality", Eq("country", "usa"), "country = 'usa'"},
		{"inequality", NotEq("device", "tablet"), "device != 'tablet'"},
		{"greater than", Gt("clicks", 100), "clicks > '100'"},
		{"greater or equal", GtOrEq("position", 1.5), "position >= '1.5'"},
		{"less than", Lt("impressions", 5000), "impressions < '5000'"},
		{"less or equal", LtOrEq("ctr", 0.2), "ctr <= '0.2'"},
		{"in list", In("device", "mobile", "desktop"), "device IN ('mobile', 'desktop')"},
		{"not in list", NotIn("country", "usa"), "country NOT IN ('usa')"},
		{"like wraps wildcards", Like("query", "shoes"), "query LIKE '%shoes%'"},
		{"between", Between("date", "2025-01-01", "2025-01-31"), "date BETWEEN '2025-01-01' AND '2025-01-31'"},
		{"qualified field", Eq("t.country", "usa"), "t.country = 'usa'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.filter.Condition()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilter_ConditionMalformed(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
	}{
		{"IN with scalar", Filter{Field: "device", Op: OpIn, Value: "not-an-array"}},
		{"IN with empty list", Filter{Field: "device", Op: OpIn, Value: []any{}}},
		{"NOT IN with scalar", Filter{Field: "device", Op: OpNotIn, Value: 7}},
		{"BETWEEN with one value", Filter{Field: "date", Op: OpBetween, Value: []any{"2025-01-01"}}},
		{"BETWEEN with three values", Filter{Field: "date", Op: OpBetween, Value: []any{"a", "b", "c"}}},
		{"BETWEEN with scalar", Filter{Field: "date", Op: OpBetween, Value: "2025-01-01"}},
		{"LIKE with number", Filter{Field: "query", Op: OpLike, Value: 3}},
		{"equality with list", Filter{Field: "device", Op: OpEq, Value: []any{"mobile"}}},
		{"equality with nil", Filter{Field: "device", Op: OpEq, Value: nil}},
		{"unsupported operator", Filter{Field: "device", Op: "MATCHES", Value: "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.filter.Condition()
			assert.ErrorIs(t, err, ErrMalformedFilter)
		})
	}
}

func TestFilter_ConditionRejectsUnsafeField(t *testing.T) {
	for _, field := range []string{"", "1col", "a;DROP TABLE x", "col name", "col'"} {
		_, err := Eq(field, "v").Condition()
		assert.ErrorIs(t, err, ErrUnsafeIdentifier, "field %q", field)
	}
}

func TestFilter_ConditionEscapesValues(t *testing.T) {
	got, err := Eq("query", "o'brien").Condition()
	require.NoError(t, err)
	assert.Equal(t, `query = 'o\'brien'`, got)

	got, err = Like("query", `50% off '\ deal`).Condition()
	require.NoError(t, err)
	assert.Equal(t, `query LIKE '%50% off \'\\ deal%'`, got)
}

func TestFilter_ConditionListShapes(t *testing.T) {
	// Typed slices (as produced by YAML decoding or typed callers) are
	// accepted alongside []any.
	got, err := Filter{Field: "device", Op: OpIn, Value: []string{"mobile", "desktop"}}.Condition()
	require.NoError(t, err)
	assert.Equal(t, "device IN ('mobile', 'desktop')", got)

	got, err = Filter{Field: "date", Op: OpBetween, Value: []string{"2025-01-01", "2025-01-31"}}.Condition()
	require.NoError(t, err)
	assert.Equal(t, "date BETWEEN '2025-01-01' AND '2025-01-31'", got)

	// Byte slices are scalars, not lists.
	_, err = Filter{Field: "device", Op: OpIn, Value: []byte("mobile")}.Condition()
	assert.ErrorIs(t, err, ErrMalformedFilter)
}
