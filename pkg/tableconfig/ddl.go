package tableconfig

import (
	"fmt"
	"strings"
)

// Column is one field of a BigQuery table schema. Mode mirrors the
// BigQuery field modes: REQUIRED, NULLABLE, or REPEATED.
type Column struct {
	Name string `yaml:"name" json:"name"`
	Type string `yaml:"type" json:"type"`
	Mode string `yaml:"mode,omitempty" json:"mode,omitempty"`
}

// GenerateCreateTableSQL renders the full CREATE TABLE DDL for a platform
// table: the column list (NOT NULL for every mode other than NULLABLE),
// PARTITION BY on the date column, CLUSTER BY the platform's ordered
// clustering fields, and an OPTIONS clause carrying the partition
// expiration and the partition-filter requirement.
func GenerateCreateTableSQL(tableName, platformID string, schema []Column) (string, error) {
	if tableName == "" {
		return "", fmt.Errorf("table name is required")
	}
	if len(schema) == 0 {
		return "", fmt.Errorf("schema for table %q has no columns", tableName)
	}

	cfg := ForPlatform(platformID)

	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE `%s` (\n", strings.Trim(tableName, "`"))
	for i, col := range schema {
		notNull := ""
		if !strings.EqualFold(col.Mode, "NULLABLE") {
			notNull = " NOT NULL"
		}
		sep := ","
		if i == len(schema)-1 {
			sep = ""
		}
		fmt.Fprintf(&b, "  %s %s%s%s\n", col.Name, col.Type, notNull, sep)
	}
	b.WriteString(")\n")
	fmt.Fprintf(&b, "PARTITION BY %s\n", cfg.TimePartitioning.Field)
	fmt.Fprintf(&b, "CLUSTER BY %s\n", strings.Join(cfg.Clustering.Fields, ", "))
	b.WriteString("OPTIONS (\n")
	fmt.Fprintf(&b, "  partition_expiration_days = %d,\n", cfg.TimePartitioning.ExpirationDays)
	fmt.Fprintf(&b, "  require_partition_filter = %t\n", cfg.TimePartitioning.RequirePartitionFilter)
	b.WriteString(");\n")

	return b.String(), nil
}
