package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/outline-labs/opc/internal/issue"
	"github.com/outline-labs/opc/internal/layout"
	"github.com/outline-labs/opc/internal/platform"
)

// Path returns the manifest location for a project root.
func Path(root string) string {
	return filepath.Join(root, layout.ManifestFile)
}

// Load reads and parses root/plugin.json. A missing file is reported as
// NotAPluginProject, an unparseable one as MalformedManifest.
func Load(root string) (*Manifest, error) {
	if !platform.IsDir(root) {
		return nil, &issue.Error{
			Kind:   issue.NotAPluginProject,
			Path:   root,
			Reason: "not a directory",
		}
	}

	path := Path(root)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &issue.Error{
				Kind:   issue.NotAPluginProject,
				Path:   root,
				Reason: "no " + layout.ManifestFile + " found",
			}
		}
		return nil, &issue.Error{
			Kind:  issue.NotAPluginProject,
			Path:  path,
			Cause: err,
		}
	}

	m, err := Parse(data)
	if err != nil {
		return nil, &issue.Error{Kind: issue.MalformedManifest, Path: path, Cause: err}
	}
	return m, nil
}

// Parse decodes a manifest document. Unknown fields, trailing data, and
// type mismatches are rejected so that a later Save never drops content.
func Parse(data []byte) (*Manifest, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", layout.ManifestFile, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding %s: unexpected data after document", layout.ManifestFile)
	}

	m.normalize()
	return &m, nil
}

// Marshal encodes m as indented JSON with a trailing newline. Field order
// follows the struct definitions, so the output is stable.
func Marshal(m *Manifest) ([]byte, error) {
	return EncodeJSON(m)
}

// Save writes m to root/plugin.json, replacing any existing manifest.
func Save(root string, m *Manifest) error {
	m.normalize()
	data, err := Marshal(m)
	if err != nil {
		return issue.Wrap(issue.WriteFailure, err, "encoding manifest")
	}
	path := Path(root)
	if err := platform.WriteFileAtomic(path, data, platform.FilePerm); err != nil {
		return &issue.Error{Kind: issue.WriteFailure, Path: path, Cause: err}
	}
	return nil
}

// normalize replaces nil sequences with empty ones so they encode as []
// rather than null.
func (m *Manifest) normalize() {
	if m.Widgets == nil {
		m.Widgets = []WidgetDescriptor{}
	}
	if m.Nodes == nil {
		m.Nodes = []NodeDescriptor{}
	}
	for i := range m.Widgets {
		if m.Widgets[i].Prototype.SizeBounds == nil {
			m.Widgets[i].Prototype.SizeBounds = []Range{}
		}
	}
}

// EncodeJSON is the shared encoder for opc's JSON files: two-space indent,
// no HTML escaping, trailing newline.
func EncodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
