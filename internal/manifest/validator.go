package manifest

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/outline-labs/opc/internal/schema"
)

//go:embed schema/plugin.schema.json
var schemaBytes []byte

var pluginSchema = schema.New("plugin.schema.json", schemaBytes)

// Validate checks a plugin.json document against the embedded JSON Schema,
// then applies the checks a schema cannot express: semantic versioning of
// pluginVersion and identifier uniqueness. The error return is for
// unparseable input or schema compilation failures; validation issues are
// returned in the Result.
func Validate(data []byte) (*schema.Result, error) {
	result, err := pluginSchema.Validate(data)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return result, nil
	}

	m, err := Parse(data)
	if err != nil {
		result.Add("", "decode", err.Error())
		return result, nil
	}

	if _, err := ParseVersion(m.PluginVersion); err != nil {
		result.Add("/pluginVersion", "semver", err.Error())
	}
	if err := m.Check(); err != nil {
		result.Add("", "unique", err.Error())
	}
	return result, nil
}

// ValidateFile reads a file and validates it as a plugin manifest.
func ValidateFile(path string) (*schema.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return Validate(data)
}

// ParseVersion parses a plugin version, tolerating a leading "v".
func ParseVersion(version string) (*semver.Version, error) {
	v, err := semver.NewVersion(strings.TrimPrefix(version, "v"))
	if err != nil {
		return nil, fmt.Errorf("pluginVersion %q is not a semantic version: %w", version, err)
	}
	return v, nil
}
