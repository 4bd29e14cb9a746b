package metadata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalDefinition = `
id: custom
name: Custom Source
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

func TestParsePlatform(t *testing.T) {
	p, err := ParsePlatform([]byte(minimalDefinition))
	require.NoError(t, err)
	assert.Equal(t, "custom", p.ID)
	assert.Equal(t, "marketing_data.custom_events", p.Table)
	require.Len(t, p.Metrics, 1)
	assert.Equal(t, AggSum, p.Metrics[0].Aggregation)
	require.Len(t, p.Dimensions, 1)
	assert.True(t, p.Dimensions[0].JoinKey)
}

func TestParsePlatform_RejectsUnknownFields(t *testing.T) {
	_, err := ParsePlatform([]byte("id: x\ntable: t\npartition_key: oops\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "custom.yaml"), []byte(minimalDefinition), 0o600))
	// Non-definition files are skipped.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("notes"), 0o600))

	reg := NewRegistry()
	require.NoError(t, reg.LoadDir(dir))
	assert.Equal(t, []string{"custom"}, reg.IDs())
}

func TestLoadDir_MissingDirectory(t *testing.T) {
	reg := NewRegistry()
	err := reg.LoadDir(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestLoadDir_InvalidDefinition(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("id: x\n"), 0o600))

	reg := NewRegistry()
	err := reg.LoadDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "table reference is required")
}

func TestLoadDir_BlendInvariantFailure(t *testing.T) {
	broken := `
id: broken
name: Broken
table: t_broken
dimensions:
  - id: date
    name: Date
    sql: date
    type: string
    join_key: true
blending:
  compatible_with: [nonexistent]
  join_keys: [date]
`
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte(broken), 0o600))

	reg := NewRegistry()
	err := reg.LoadDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nonexistent")
}
