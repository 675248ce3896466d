package bundle

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/outline-labs/opc/internal/issue"
	"github.com/outline-labs/opc/internal/layout"
	"github.com/outline-labs/opc/internal/manifest"
	"github.com/outline-labs/opc/internal/platform"
	"github.com/outline-labs/opc/internal/schema"
)

//go:embed schema/bundle.schema.json
var schemaBytes []byte

var bundleSchema = schema.New("bundle.schema.json", schemaBytes)

// Encode serialises d as indented JSON with a trailing newline. Encoding
// the same document always yields the same bytes.
func Encode(d *Document) ([]byte, error) {
	d.normalize()
	return manifest.EncodeJSON(d)
}

// Decode parses a bundle document. Input that is not JSON, does not match
// the bundle schema, or carries unknown fields fails with MalformedBundle.
func Decode(data []byte) (*Document, error) {
	result, err := bundleSchema.Validate(data)
	if err != nil {
		return nil, issue.Wrap(issue.MalformedBundle, err, "")
	}
	if !result.Valid {
		return nil, issue.New(issue.MalformedBundle, strings.Join(result.Messages(), "; "))
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var d Document
	if err := dec.Decode(&d); err != nil {
		return nil, issue.Wrap(issue.MalformedBundle, err, "")
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, issue.New(issue.MalformedBundle, "unexpected data after document")
	}
	d.normalize()
	return &d, nil
}

// ReadFile reads and decodes the bundle at path.
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &issue.Error{Kind: issue.ExtractionFailed, Path: path, Reason: "cannot read bundle", Cause: err}
	}
	d, err := Decode(data)
	if err != nil {
		var e *issue.Error
		if errors.As(err, &e) && e.Path == "" {
			e.Path = path
		}
		return nil, err
	}
	return d, nil
}

// WriteFile encodes d and writes it to path, replacing any existing file.
func WriteFile(path string, d *Document) error {
	data, err := Encode(d)
	if err != nil {
		return issue.Wrap(issue.WriteFailure, err, "encoding bundle")
	}
	if err := platform.WriteFileAtomic(path, data, platform.FilePerm); err != nil {
		return &issue.Error{Kind: issue.WriteFailure, Path: path, Cause: err}
	}
	return nil
}

// DefaultOutputPath returns where a project's bundle is written when no
// output is given: <pluginID>.opb in the directory containing root.
func DefaultOutputPath(root, pluginID string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(abs), pluginID+layout.BundleExt), nil
}
