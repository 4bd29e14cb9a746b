// Package tableconfig emits the physical storage configuration for
// platform tables: DAY partitioning on the date column, tenant-first
// clustering, CREATE TABLE DDL, and the schema validation gate that must
// pass before a table is created or altered.
package tableconfig

import "log/slog"

const (
	// PartitionField is the column every platform table is partitioned on.
	PartitionField = "date"

	// TenantField is the tenant-isolation column; it always leads the
	// clustering field list.
	TenantField = "workspace_id"

	// PartitionExpirationDays is the fixed partition retention.
	PartitionExpirationDays = 365

	// MaxClusteringFields is the BigQuery engine limit on clustering columns.
	MaxClusteringFields = 4
)

// TimePartitioning describes the table's time partitioning.
type TimePartitioning struct {
	Type                   string `yaml:"type" json:"type"`
	Field                  string `yaml:"field" json:"field"`
	ExpirationDays         int    `yaml:"expiration_days" json:"expiration_days"`
	RequirePartitionFilter bool   `yaml:"require_partition_filter" json:"require_partition_filter"`
}

// Clustering describes the ordered clustering field list.
type Clustering struct {
	Fields []string `yaml:"fields" json:"fields"`
}

// Config is the full physical configuration for one platform's table.
type Config struct {
	PlatformID       string            `yaml:"platform_id" json:"platform_id"`
	TimePartitioning TimePartitioning  `yaml:"time_partitioning" json:"time_partitioning"`
	Clustering       Clustering        `yaml:"clustering" json:"clustering"`
	Labels           map[string]string `yaml:"labels,omitempty" json:"labels,omitempty"`
}

// clusteringFields orders clustering columns per platform: the tenant
// column first, then the platform's primary entity identifier, then up to
// two more dimensions chosen for filter frequency, capped at 4.
var clusteringFields = map[string][]string{
	"gsc":        {TenantField, "site_url", "query", PartitionField},
	"google_ads": {TenantField, "customer_id", "campaign_id", PartitionField},
	"analytics":  {TenantField, "property_id", PartitionField},
}

// defaultClustering is returned for unrecognized platforms so new
// platforms degrade to a safe layout instead of blocking table creation.
var defaultClustering = []string{TenantField, PartitionField}

// ForPlatform returns the table configuration for a platform. It never
// fails: requirePartitionFilter is always true (queries without a
// partition predicate must be rejected by the engine — a cost control,
// not a hint), and unknown platforms get the default clustering.
func ForPlatform(platformID string) Config {
	fields, ok := clusteringFields[platformID]
	if !ok {
		slog.Debug("no clustering order for platform, using default",
			"platform", platformID,
			"fields", defaultClustering,
		)
		fields = defaultClustering
	}
	if len(fields) > MaxClusteringFields {
		fields = fields[:MaxClusteringFields]
	}

	return Config{
		PlatformID: platformID,
		TimePartitioning: TimePartitioning{
			Type:                   "DAY",
			Field:                  PartitionField,
			ExpirationDays:         PartitionExpirationDays,
			RequirePartitionFilter: true,
		},
		Clustering: Clustering{Fields: append([]string(nil), fields...)},
		Labels: map[string]string{
			"platform":   platformID,
			"managed_by": "bqgen",
		},
	}
}
