// Package sqlgen compiles declarative query configurations into BigQuery
// SQL text. It generates single-platform aggregation queries, multi-
// platform blend queries, and period-over-period comparison queries; it
// never executes anything.
package sqlgen

// DateRange is an inclusive calendar date range, both ends YYYY-MM-DD.
type DateRange struct {
	Start string `yaml:"start" json:"start"`
	End   string `yaml:"end" json:"end"`
}

// OrderBy names a selected field to sort the result by.
type OrderBy struct {
	Field     string `yaml:"field" json:"field"`
	Direction string `yaml:"direction,omitempty" json:"direction,omitempty"` // ASC (default) or DESC
}

// QueryConfig describes a single-platform aggregation query. Configs are
// short-lived: a caller builds one per request and discards it once the
// SQL string is produced.
type QueryConfig struct {
	Platform   string     `yaml:"platform" json:"platform"`
	Metrics    []string   `yaml:"metrics" json:"metrics"`
	Dimensions []string   `yaml:"dimensions,omitempty" json:"dimensions,omitempty"`
	DateRange  *DateRange `yaml:"date_range,omitempty" json:"date_range,omitempty"`
	Filters    []Filter   `yaml:"filters,omitempty" json:"filters,omitempty"`
	OrderBy    *OrderBy   `yaml:"order_by,omitempty" json:"order_by,omitempty"`
	Limit      int        `yaml:"limit,omitempty" json:"limit,omitempty"`
	ClientID   string     `yaml:"client_id,omitempty" json:"client_id,omitempty"`
}

// BlendConfig describes a multi-platform blend query. The first listed
// platform anchors the join: every other platform's CTE is FULL OUTER
// JOINed to it on the blend keys.
type BlendConfig struct {
	Platforms []string            `yaml:"platforms" json:"platforms"`
	BlendOn   []string            `yaml:"blend_on" json:"blend_on"`
	Metrics   map[string][]string `yaml:"metrics" json:"metrics"`
	// Calculated metrics are appended to the final SELECT verbatim and
	// are expected to reference the aliased blend columns, e.g.
	// "gsc_clicks + google_ads_clicks AS total_clicks".
	Calculated []string   `yaml:"calculated,omitempty" json:"calculated,omitempty"`
	DateRange  *DateRange `yaml:"date_range,omitempty" json:"date_range,omitempty"`
	Filters    []Filter   `yaml:"filters,omitempty" json:"filters,omitempty"`
	ClientID   string     `yaml:"client_id,omitempty" json:"client_id,omitempty"`
	Limit      int        `yaml:"limit,omitempty" json:"limit,omitempty"`
}
