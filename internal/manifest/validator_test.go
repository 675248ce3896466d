package manifest

import (
	"strings"
	"testing"
)

func TestValidateFile_ValidManifests(t *testing.T) {
	for _, file := range []string{"valid-plugin.json", "valid-empty.json"} {
		t.Run(file, func(t *testing.T) {
			result, err := ValidateFile(testPath(file))
			if err != nil {
				t.Fatalf("ValidateFile(%s) error: %v", file, err)
			}
			if !result.Valid {
				t.Errorf("expected valid, got invalid with %d issues:", len(result.Issues))
				for _, issue := range result.Issues {
					t.Errorf("  path=%s keyword=%s message=%s", issue.Path, issue.Keyword, issue.Message)
				}
			}
		})
	}
}

func TestValidateFile_InvalidManifests(t *testing.T) {
	invalidFiles := []struct {
		file    string
		desc    string
		keyword string
	}{
		{"invalid-missing-id.json", "missing required pluginID", "required"},
		{"invalid-unknown-field.json", "unknown top-level field", "additionalProperties"},
		{"invalid-bounds.json", "size bound with three values", "maxItems"},
		{"invalid-path-id.json", "node identifier with a path separator", "pattern"},
		{"invalid-bad-version.json", "version is not semver", "semver"},
		{"invalid-duplicate-node.json", "node identifier declared twice", "unique"},
	}

	for _, tt := range invalidFiles {
		t.Run(tt.file, func(t *testing.T) {
			result, err := ValidateFile(testPath(tt.file))
			if err != nil {
				t.Fatalf("ValidateFile(%s) unexpected error: %v", tt.file, err)
			}
			if result.Valid {
				t.Fatalf("expected invalid for %s (%s), but got valid", tt.file, tt.desc)
			}
			found := false
			for _, issue := range result.Issues {
				if issue.Keyword == tt.keyword {
					found = true
				}
			}
			if !found {
				t.Errorf("no %q issue for %s; got %v", tt.keyword, tt.desc, result.Messages())
			}
		})
	}
}

func TestValidateFile_InvalidJSON(t *testing.T) {
	_, err := ValidateFile(testPath("invalid-not-json.json"))
	if err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
}

func TestValidateFile_NotFound(t *testing.T) {
	_, err := ValidateFile(testPath("nonexistent.json"))
	if err == nil {
		t.Fatal("expected error for nonexistent file, got nil")
	}
}

func TestValidate_IssueFields(t *testing.T) {
	result, err := ValidateFile(testPath("invalid-path-id.json"))
	if err != nil {
		t.Fatalf("ValidateFile error: %v", err)
	}
	if result.Valid || len(result.Issues) == 0 {
		t.Fatal("expected invalid result with issues")
	}
	issue := result.Issues[0]
	if issue.Message == "" {
		t.Error("expected a non-empty message")
	}
	if !strings.HasPrefix(issue.Path, "/nodes/0") {
		t.Errorf("Path = %q, want prefix /nodes/0", issue.Path)
	}
}

func TestValidate_SchemaCompiles(t *testing.T) {
	compiled, err := pluginSchema.Compiled()
	if err != nil {
		t.Fatalf("Compiled() error: %v", err)
	}
	if compiled == nil {
		t.Fatal("Compiled() returned nil schema")
	}
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"1.0.0", "1.0.0", false},
		{"v2.3.4", "2.3.4", false},
		{"1.0.0-beta.1", "1.0.0-beta.1", false},
		{"first release", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			v, err := ParseVersion(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseVersion(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && v.String() != tt.want {
				t.Errorf("ParseVersion(%q) = %s, want %s", tt.in, v, tt.want)
			}
		})
	}
}
