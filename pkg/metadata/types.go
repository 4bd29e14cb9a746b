// Package metadata provides the platform catalog: per-platform table
// references, metrics, dimensions, and blending rules. Definitions are
// loaded once at startup and are read-only afterwards.
package metadata

// ValueType describes the value type of a metric or dimension.
type ValueType string

const (
	ValueInteger ValueType = "integer"
	ValueFloat   ValueType = "float"
	ValueString  ValueType = "string"
)

// Aggregation is the SQL aggregation function applied to a metric.
type Aggregation string

const (
	AggSum   Aggregation = "SUM"
	AggAvg   Aggregation = "AVG"
	AggCount Aggregation = "COUNT"
	AggMin   Aggregation = "MIN"
	AggMax   Aggregation = "MAX"
)

// Cardinality is a hint about how many distinct values a dimension has.
type Cardinality string

const (
	CardinalityLow    Cardinality = "low"
	CardinalityMedium Cardinality = "medium"
	CardinalityHigh   Cardinality = "high"
)

// Format carries optional display formatting for a metric.
type Format struct {
	Style    string `yaml:"style,omitempty" json:"style,omitempty"` // "percent", "currency"
	Currency string `yaml:"currency,omitempty" json:"currency,omitempty"`
	Decimals int    `yaml:"decimals,omitempty" json:"decimals,omitempty"`
}

// Metric defines an aggregatable measure on a platform's table.
type Metric struct {
	ID          string      `yaml:"id" json:"id"`
	Name        string      `yaml:"name" json:"name"`
	SQL         string      `yaml:"sql" json:"sql"`
	Type        ValueType   `yaml:"type" json:"type"`
	Aggregation Aggregation `yaml:"aggregation" json:"aggregation"`
	Format      *Format     `yaml:"format,omitempty" json:"format,omitempty"`
}

// Dimension defines a groupable attribute on a platform's table.
// A dimension marked as a join key must carry stable, comparable
// semantics across every platform it can be blended with.
type Dimension struct {
	ID          string      `yaml:"id" json:"id"`
	Name        string      `yaml:"name" json:"name"`
	SQL         string      `yaml:"sql" json:"sql"`
	Type        ValueType   `yaml:"type" json:"type"`
	Cardinality Cardinality `yaml:"cardinality,omitempty" json:"cardinality,omitempty"`
	JoinKey     bool        `yaml:"join_key,omitempty" json:"join_key,omitempty"`
	Filterable  bool        `yaml:"filterable,omitempty" json:"filterable,omitempty"`
}

// Blending declares which platforms this platform can be combined with
// and which join-key dimensions align their rows.
type Blending struct {
	CompatibleWith []string          `yaml:"compatible_with" json:"compatible_with"`
	JoinKeys       []string          `yaml:"join_keys" json:"join_keys"`
	MetricAliases  map[string]string `yaml:"metric_aliases,omitempty" json:"metric_aliases,omitempty"`
}

// Platform describes one data source: its physical table and the metrics
// and dimensions queries may reference.
type Platform struct {
	ID              string      `yaml:"id" json:"id"`
	Name            string      `yaml:"name" json:"name"`
	Table           string      `yaml:"table" json:"table"`
	PartitionField  string      `yaml:"partition_field,omitempty" json:"partition_field,omitempty"`
	ClusterFields   []string    `yaml:"cluster_fields,omitempty" json:"cluster_fields,omitempty"`
	Metrics         []Metric    `yaml:"metrics" json:"metrics"`
	Dimensions      []Dimension `yaml:"dimensions" json:"dimensions"`
	Blending        *Blending   `yaml:"blending,omitempty" json:"blending,omitempty"`
	DefaultTemplate string      `yaml:"default_template,omitempty" json:"default_template,omitempty"`
}

// Metric returns the metric with the given id, if declared.
func (p *Platform) Metric(id string) (Metric, bool) {
	for _, m := range p.Metrics {
		if m.ID == id {
			return m, true
		}
	}
	return Metric{}, false
}

// Dimension returns the dimension with the given id, if declared.
func (p *Platform) Dimension(id string) (Dimension, bool) {
	for _, d := range p.Dimensions {
		if d.ID == id {
			return d, true
		}
	}
	return Dimension{}, false
}

// JoinKeyIDs returns the ids of all dimensions flagged as join keys,
// in declaration order.
func (p *Platform) JoinKeyIDs() []string {
	var keys []string
	for _, d := range p.Dimensions {
		if d.JoinKey {
			keys = append(keys, d.ID)
		}
	}
	return keys
}

// MetricAlias returns the blend alias for a metric id, falling back to
// the id itself when no alias is declared.
func (p *Platform) MetricAlias(id string) string {
	if p.Blending != nil {
		if alias, ok := p.Blending.MetricAliases[id]; ok {
			return alias
		}
	}
	return id
}
