package metadata

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// definitionFiles holds the platform definitions shipped with the binary.
// Adding a platform means adding a YAML file here (or pointing LoadDir at
// an override directory); the query builders need no code change.
//
//go:embed definitions/*.yaml
var definitionFiles embed.FS

// LoadEmbedded registers the built-in platform definitions and validates
// cross-platform blending invariants.
func (r *Registry) LoadEmbedded() error {
	return r.loadFS(definitionFiles, "definitions")
}

// LoadDir registers every *.yaml / *.yml platform definition in dir.
func (r *Registry) LoadDir(dir string) error {
	return r.loadFS(os.DirFS(dir), ".")
}

func (r *Registry) loadFS(fsys fs.FS, root string) error {
	entries, err := fs.ReadDir(fsys, root)
	if err != nil {
		return fmt.Errorf("reading platform definitions: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}

		data, err := fs.ReadFile(fsys, filepath.Join(root, entry.Name()))
		if err != nil {
			return fmt.Errorf("reading %s: %w", entry.Name(), err)
		}
		p, err := ParsePlatform(data)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", entry.Name(), err)
		}
		if err := r.Add(p); err != nil {
			return fmt.Errorf("registering %s: %w", entry.Name(), err)
		}
		slog.Debug("registered platform",
			"platform", p.ID,
			"table", p.Table,
			"metrics", len(p.Metrics),
			"dimensions", len(p.Dimensions),
		)
	}

	if err := r.Validate(); err != nil {
		return fmt.Errorf("validating platform definitions: %w", err)
	}
	return nil
}

// ParsePlatform decodes a single platform definition document. Unknown
// fields are rejected so typos in definition files surface at load time.
func ParsePlatform(data []byte) (*Platform, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var p Platform
	if err := dec.Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}
