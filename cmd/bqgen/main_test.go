package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestQueryCommand(t *testing.T) {
	out, err := runCommand(t, "query", "-f", "testdata/query.yaml")
	require.NoError(t, err)

	want := "SELECT date AS date, SUM(clicks) AS clicks, SUM(impressions) AS impressions " +
		"FROM marketing_data.gsc_performance " +
		"WHERE client_id = 'acme' AND date BETWEEN '2025-10-01' AND '2025-10-07' " +
		"AND device IN ('mobile', 'desktop') " +
		"GROUP BY date\n"
	assert.Equal(t, want, out)
}

func TestQueryCommand_MissingFile(t *testing.T) {
	_, err := runCommand(t, "query", "-f", "testdata/nope.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.yaml")
}

func TestBlendCommand(t *testing.T) {
	out, err := runCommand(t, "blend", "-f", "testdata/blend.yaml")
	require.NoError(t, err)

	assert.Contains(t, out, "WITH gsc_data AS (")
	assert.Contains(t, out, "google_ads_data AS (")
	assert.Contains(t, out, "FULL OUTER JOIN google_ads_data ON gsc_data.date = google_ads_data.date")
	assert.Contains(t, out, "COALESCE(gsc_data.date, google_ads_data.date) AS date")
}

func TestCompareCommand(t *testing.T) {
	out, err := runCommand(t, "compare",
		"--platform", "gsc", "--metric", "clicks",
		"--start", "2025-10-01", "--end", "2025-10-07")
	require.NoError(t, err)

	assert.Contains(t, out, "WITH current_period AS (")
	assert.Contains(t, out, "date BETWEEN '2025-09-24' AND '2025-09-30'")
	assert.Contains(t, out, "NULLIF(previous_period.value, 0)")
}

func TestCompareCommand_UnknownPlatform(t *testing.T) {
	_, err := runCommand(t, "compare",
		"--platform", "bing", "--metric", "clicks",
		"--start", "2025-10-01", "--end", "2025-10-07")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown platform")
}

func TestPlatformsCommand(t *testing.T) {
	out, err := runCommand(t, "platforms")
	require.NoError(t, err)

	assert.Contains(t, out, "gsc")
	assert.Contains(t, out, "google_ads")
	assert.Contains(t, out, "analytics")
	assert.Contains(t, out, "marketing_data.gsc_performance")
}

func TestPlatformsCommand_Detail(t *testing.T) {
	out, err := runCommand(t, "platforms", "--platform", "gsc")
	require.NoError(t, err)

	assert.Contains(t, out, "clicks")
	assert.Contains(t, out, "SUM")
	assert.Contains(t, out, "AVG")
	assert.Contains(t, out, "date")
}

func TestDDLCommand(t *testing.T) {
	out, err := runCommand(t, "ddl",
		"--platform", "gsc",
		"--table", "marketing_data.gsc_performance",
		"--schema", "testdata/schema.yaml")
	require.NoError(t, err)

	assert.Contains(t, out, "CREATE TABLE `marketing_data.gsc_performance` (")
	assert.Contains(t, out, "PARTITION BY date")
	assert.Contains(t, out, "CLUSTER BY workspace_id, site_url, query, date")
	assert.Contains(t, out, "require_partition_filter = true")
}

func TestDDLCommand_RefusesInvalidSchema(t *testing.T) {
	dir := t.TempDir()
	schema := "- name: clicks\n  type: INT64\n"
	path := writeTempFile(t, dir, "bad.yaml", schema)

	_, err := runCommand(t, "ddl",
		"--platform", "gsc", "--table", "t", "--schema", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is invalid")
	assert.Contains(t, err.Error(), `"workspace_id"`)
}

func TestValidateCommand(t *testing.T) {
	out, err := runCommand(t, "validate",
		"--platform", "gsc", "--schema", "testdata/schema.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, `schema for platform "gsc" is valid`)
}

func TestValidateCommand_ReportsEveryViolation(t *testing.T) {
	dir := t.TempDir()
	schema := "- name: workspace_id\n  type: STRING\n  mode: NULLABLE\n"
	path := writeTempFile(t, dir, "bad.yaml", schema)

	_, err := runCommand(t, "validate", "--platform", "gsc", "--schema", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `missing required column "date"`)
	assert.Contains(t, err.Error(), `column "workspace_id" must have mode REQUIRED`)
	assert.Contains(t, err.Error(), `clustering field "site_url"`)
}

func TestRootCommand_InvalidLogLevel(t *testing.T) {
	_, err := runCommand(t, "--log-level", "shouting", "platforms")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestQueryCommand_DefinitionsOverride(t *testing.T) {
	dir := t.TempDir()
	def := `
id: custom
name: Custom
table: marketing_data.custom_events
metrics:
  - id: events
    name: Events
    sql: event_count
    type: integer
    aggregation: SUM
dimensions:
  - id: date
    name: Date
    sql: date
    type: string
    join_key: true
`
	writeTempFile(t, dir, "custom.yaml", def)
	// The query document lives outside the definitions directory so the
	// loader does not try to parse it as a platform.
	doc := writeTempFile(t, t.TempDir(), "query.yaml", "platform: custom\nmetrics: [events]\n")

	out, err := runCommand(t, "--definitions", dir, "query", "-f", doc)
	require.NoError(t, err)
	assert.Contains(t, out, "SELECT SUM(event_count) AS events FROM marketing_data.custom_events")
}
