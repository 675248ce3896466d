package bundle

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/outline-labs/opc/internal/manifest"
)

// project describes a plugin directory for tests.
type project struct {
	m     *manifest.Manifest
	files map[string]string // slash-separated relative path -> contents
}

// sampleProject returns a project with two widgets, two nodes and an icon.
func sampleProject() project {
	m := manifest.New("chartKit", manifest.Identity{Author: "Ada"})
	line := manifest.NewWidget("lineChart")
	line.Prototype.SizeBounds = []manifest.Range{{"4", "16"}, {"2", "8"}}
	line.Prototype.Params = manifest.Object(
		manifest.Member{Key: "title", Value: manifest.String("Line <chart>")},
		manifest.Member{Key: "points", Value: manifest.Number("100")},
	)
	m.Widgets = append(m.Widgets, line, manifest.NewWidget("gauge"))
	m.Nodes = append(m.Nodes, manifest.NewNode("average"), manifest.NewNode("clamp"))

	return project{
		m: m,
		files: map[string]string{
			"lineChart/lineChart.html": "<canvas></canvas>\n",
			"lineChart/lineChart.css":  "canvas { width: 100%; }\n",
			"lineChart/lineChart.js":   "class lineChart {}\nmodule.exports = lineChart;\n",
			"lineChart/lineChart.svg":  "<svg></svg>\n",
			"gauge/gauge.html":         "",
			"gauge/gauge.css":          "",
			"gauge/gauge.js":           "class gauge {}\n",
			"gauge/gauge.svg":          "",
			"average.js":               "// average\n",
			"clamp.js":                 "// clamp\n",
			"icon.svg":                 "<svg viewBox=\"0 0 1 1\"></svg>\n",
		},
	}
}

// write materialises p under a fresh temporary directory and returns it.
func (p project) write(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), p.m.PluginID)
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := manifest.Save(root, p.m); err != nil {
		t.Fatalf("saving manifest: %v", err)
	}
	for rel, body := range p.files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

// tree returns every regular file under root keyed by slash-separated
// relative path.
func tree(t *testing.T, root string) map[string]string {
	t.Helper()
	out := map[string]string{}
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		out[filepath.ToSlash(rel)] = readFile(t, path)
		return nil
	})
	if err != nil {
		t.Fatalf("walking %s: %v", root, err)
	}
	return out
}
