package bundle

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/outline-labs/opc/internal/issue"
	"github.com/outline-labs/opc/internal/manifest"
)

func TestDecode_Malformed(t *testing.T) {
	valid, err := os.ReadFile(filepath.Join("testdata", "sample.opb"))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		data string
	}{
		{"not json", `{"pluginName": `},
		{"empty", ``},
		{"array", `[]`},
		{"missing icon", strings.Replace(string(valid), `"icon": {`, `"badge": {`, 1)},
		{"missing file contents", strings.Replace(string(valid), `"css": ".sample { color: red; }\n",`, ``, 1)},
		{"node contents not a string", strings.Replace(string(valid), `"js": "module.exports = {};\n"`, `"js": 7`, 1)},
		{"trailing data", string(valid) + `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data))
			if !errors.Is(err, issue.ErrMalformedBundle) {
				t.Errorf("Decode error = %v, want MalformedBundle", err)
			}
		})
	}
}

func TestEncode_Deterministic(t *testing.T) {
	valid, err := os.ReadFile(filepath.Join("testdata", "sample.opb"))
	if err != nil {
		t.Fatal(err)
	}
	doc, err := Decode(valid)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	out, err := Encode(doc)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	if !bytes.Equal(valid, out) {
		t.Errorf("Encode(Decode(x)) != x:\n%s", out)
	}
}

func TestWriteFile_ReadFile(t *testing.T) {
	doc, err := ReadFile(filepath.Join("testdata", "sample.opb"))
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "samplePlugin.opb")
	if err := WriteFile(path, doc); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	again, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	if again.Icon.SVG != doc.Icon.SVG || again.Widgets[0].FileContents.JS != doc.Widgets[0].FileContents.JS {
		t.Error("contents changed across write and read")
	}
}

func TestWriteFile_Failure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "x.opb")
	err := WriteFile(path, &Document{PluginID: "x"})
	if !errors.Is(err, issue.ErrWriteFailure) {
		t.Fatalf("error = %v, want WriteFailure", err)
	}
}

func TestReadFile_Errors(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "absent.opb"))
	if !errors.Is(err, issue.ErrExtractionFailed) {
		t.Errorf("missing file: error = %v, want ExtractionFailed", err)
	}

	bad := filepath.Join(t.TempDir(), "bad.opb")
	if err := os.WriteFile(bad, []byte("nope"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = ReadFile(bad)
	var e *issue.Error
	if !errors.As(err, &e) || e.Kind != issue.MalformedBundle || e.Path != bad {
		t.Errorf("malformed file: error = %v, want MalformedBundle at %s", err, bad)
	}
}

func TestDefaultOutputPath(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "chartKit")
	got, err := DefaultOutputPath(root, "chartKit")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "chartKit.opb"); got != want {
		t.Errorf("DefaultOutputPath = %s, want %s", got, want)
	}
}

func TestDecode_AcceptsWhatBundleProduces(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*manifest.Manifest)
	}{
		{"empty name and version", func(m *manifest.Manifest) {
			m.PluginName = ""
			m.PluginVersion = ""
		}},
		{"negative size", func(m *manifest.Manifest) {
			m.Widgets[0].Prototype.SizeX = "-1"
			m.Widgets[0].Prototype.SizeY = "-0.5"
		}},
		{"empty widget and node names", func(m *manifest.Manifest) {
			m.Widgets[1].WidgetName = ""
			m.Nodes[0].NodeName = ""
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := sampleProject()
			tt.mutate(p.m)
			root := p.write(t)

			doc, err := Bundle(context.Background(), root)
			if err != nil {
				t.Fatalf("Bundle error: %v", err)
			}
			data, err := Encode(doc)
			if err != nil {
				t.Fatalf("Encode error: %v", err)
			}
			got, err := Decode(data)
			if err != nil {
				t.Fatalf("Decode error: %v", err)
			}
			if diff := cmp.Diff(doc, got); diff != "" {
				t.Errorf("decoded document differs (-bundled +decoded):\n%s", diff)
			}
		})
	}
}
