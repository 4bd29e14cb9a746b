package tableconfig

import "fmt"

// Result is the outcome of a schema validation. Errors holds every
// violation found; checks do not short-circuit.
type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// Validate gates table creation: the partition column and the tenant
// column must exist and be REQUIRED, and every clustering field for the
// platform must be present in the schema. Callers must refuse to create
// or alter a table when Valid is false.
func Validate(schema []Column, platformID string) Result {
	var errs []string

	errs = append(errs, requireColumn(schema, PartitionField)...)
	errs = append(errs, requireColumn(schema, TenantField)...)

	cfg := ForPlatform(platformID)
	for _, field := range cfg.Clustering.Fields {
		if findColumn(schema, field) == nil {
			errs = append(errs, fmt.Sprintf("clustering field %q is not present in the schema", field))
		}
	}

	return Result{Valid: len(errs) == 0, Errors: errs}
}

// requireColumn checks that the named column exists and is REQUIRED,
// contributing one error per failed check.
func requireColumn(schema []Column, name string) []string {
	col := findColumn(schema, name)
	if col == nil {
		return []string{fmt.Sprintf("schema is missing required column %q", name)}
	}
	if col.Mode != "REQUIRED" {
		return []string{fmt.Sprintf("column %q must have mode REQUIRED, got %q", name, col.Mode)}
	}
	return nil
}

func findColumn(schema []Column, name string) *Column {
	for i := range schema {
		if schema[i].Name == name {
			return &schema[i]
		}
	}
	return nil
}
