package element

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/outline-labs/opc/internal/bundle"
	"github.com/outline-labs/opc/internal/issue"
	"github.com/outline-labs/opc/internal/layout"
	"github.com/outline-labs/opc/internal/manifest"
)

// newProject creates an empty plugin project with an icon and returns a
// Manager for it.
func newProject(t *testing.T) *Manager {
	t.Helper()
	root := filepath.Join(t.TempDir(), "p")
	if err := os.Mkdir(root, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := manifest.Save(root, manifest.New("p", manifest.Identity{})); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, layout.IconFile), []byte("<svg/>"), 0o644); err != nil {
		t.Fatal(err)
	}
	return NewManager(root)
}

func snapshot(t *testing.T, root string) map[string]string {
	t.Helper()
	out := map[string]string{}
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(root, path)
		if d.IsDir() {
			out[filepath.ToSlash(rel)+"/"] = ""
			return nil
		}
		data, err := os.ReadFile(path)
		out[filepath.ToSlash(rel)] = string(data)
		return err
	})
	if err != nil {
		t.Fatal(err)
	}
	return out
}

func loadManifest(t *testing.T, m *Manager) *manifest.Manifest {
	t.Helper()
	man, err := manifest.Load(m.Root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return man
}

func TestAddWidget_ThenBundle(t *testing.T) {
	m := newProject(t)
	ctx := context.Background()

	res, err := m.AddWidget(ctx, "chart")
	if err != nil {
		t.Fatalf("AddWidget: %v", err)
	}
	wantFiles := []string{"chart/chart.html", "chart/chart.css", "chart/chart.js", "chart/chart.svg"}
	if diff := cmp.Diff(wantFiles, res.Files); diff != "" {
		t.Errorf("Files mismatch (-want +got):\n%s", diff)
	}

	man := loadManifest(t, m)
	if len(man.Widgets) != 1 {
		t.Fatalf("len(Widgets) = %d, want 1", len(man.Widgets))
	}
	w := man.Widgets[0]
	if w.WidgetID != "chart" || w.WidgetName != "Chart" {
		t.Errorf("descriptor = %q/%q, want chart/Chart", w.WidgetID, w.WidgetName)
	}
	if diff := cmp.Diff(manifest.DefaultPrototype(), w.Prototype); diff != "" {
		t.Errorf("prototype mismatch (-want +got):\n%s", diff)
	}

	doc, err := bundle.Bundle(ctx, m.Root)
	if err != nil {
		t.Fatalf("Bundle: %v", err)
	}
	if len(doc.Widgets) != 1 || doc.Widgets[0].WidgetID != "chart" {
		t.Fatalf("bundle widgets = %+v", doc.Widgets)
	}
	js := doc.Widgets[0].FileContents.JS
	if !strings.Contains(js, "class chart {") || !strings.Contains(js, "module.exports = chart;") {
		t.Errorf("widget script is not the stub for chart:\n%s", js)
	}
	for _, body := range []string{doc.Widgets[0].FileContents.HTML, doc.Widgets[0].FileContents.CSS, doc.Widgets[0].FileContents.SVG} {
		if body != "" {
			t.Errorf("expected empty file, got %q", body)
		}
	}
}

func TestAddNode(t *testing.T) {
	m := newProject(t)
	res, err := m.AddNode(context.Background(), "movingAverage")
	if err != nil {
		t.Fatalf("AddNode: %v", err)
	}
	if diff := cmp.Diff([]string{"movingAverage.js"}, res.Files); diff != "" {
		t.Errorf("Files mismatch (-want +got):\n%s", diff)
	}

	man := loadManifest(t, m)
	want := []manifest.NodeDescriptor{{NodeName: "Moving Average", NodeID: "movingAverage"}}
	if diff := cmp.Diff(want, man.Nodes); diff != "" {
		t.Errorf("Nodes mismatch (-want +got):\n%s", diff)
	}

	data, err := os.ReadFile(filepath.Join(m.Root, "movingAverage.js"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "class movingAverageOutput extends NodeOutputTether") {
		t.Errorf("node script is not the stub:\n%s", data)
	}
}

func TestAdd_InvalidIdentifierTouchesNothing(t *testing.T) {
	for _, id := range []string{"Foo", "foo_bar", "foo-bar"} {
		for _, kind := range []layout.Kind{layout.KindWidget, layout.KindNode} {
			t.Run(kind.String()+"/"+id, func(t *testing.T) {
				m := newProject(t)
				before := snapshot(t, m.Root)

				_, err := m.Add(context.Background(), kind, id)
				if !errors.Is(err, issue.ErrInvalidIdentifier) {
					t.Fatalf("error = %v, want InvalidIdentifier", err)
				}
				if diff := cmp.Diff(before, snapshot(t, m.Root)); diff != "" {
					t.Errorf("filesystem changed (-before +after):\n%s", diff)
				}
			})
		}
	}
}

func TestAdd_InvalidIdentifierOutsideProject(t *testing.T) {
	m := NewManager(t.TempDir())
	_, err := m.AddWidget(context.Background(), "Foo")
	if !errors.Is(err, issue.ErrInvalidIdentifier) {
		t.Fatalf("error = %v, want InvalidIdentifier before any project check", err)
	}
}

func TestAdd_NotAPluginProject(t *testing.T) {
	m := NewManager(t.TempDir())
	_, err := m.AddNode(context.Background(), "adder")
	if !errors.Is(err, issue.ErrNotAPluginProject) {
		t.Fatalf("error = %v, want NotAPluginProject", err)
	}
}

func TestAddWidget_AlreadyExists(t *testing.T) {
	t.Run("directory on disk only", func(t *testing.T) {
		m := newProject(t)
		if err := os.Mkdir(filepath.Join(m.Root, "chart"), 0o755); err != nil {
			t.Fatal(err)
		}
		_, err := m.AddWidget(context.Background(), "chart")
		if !errors.Is(err, issue.ErrElementAlreadyExists) {
			t.Fatalf("error = %v, want ElementAlreadyExists", err)
		}
		if len(loadManifest(t, m).Widgets) != 0 {
			t.Error("manifest was modified")
		}
	})

	t.Run("declared in manifest only", func(t *testing.T) {
		m := newProject(t)
		man := loadManifest(t, m)
		man.Widgets = append(man.Widgets, manifest.NewWidget("chart"))
		if err := manifest.Save(m.Root, man); err != nil {
			t.Fatal(err)
		}
		_, err := m.AddWidget(context.Background(), "chart")
		if !errors.Is(err, issue.ErrElementAlreadyExists) {
			t.Fatalf("error = %v, want ElementAlreadyExists", err)
		}
		if _, err := os.Stat(filepath.Join(m.Root, "chart")); !errors.Is(err, os.ErrNotExist) {
			t.Error("widget directory was created")
		}
	})
}

func TestAddNode_AlreadyExists(t *testing.T) {
	m := newProject(t)
	if _, err := m.AddNode(context.Background(), "adder"); err != nil {
		t.Fatal(err)
	}
	_, err := m.AddNode(context.Background(), "adder")
	if !errors.Is(err, issue.ErrElementAlreadyExists) {
		t.Fatalf("error = %v, want ElementAlreadyExists", err)
	}
	if n := len(loadManifest(t, m).Nodes); n != 1 {
		t.Errorf("len(Nodes) = %d, want 1", n)
	}
}

func TestRemoveWidget(t *testing.T) {
	m := newProject(t)
	ctx := context.Background()
	if _, err := m.AddWidget(ctx, "chart"); err != nil {
		t.Fatal(err)
	}

	res, err := m.RemoveWidget(ctx, "chart")
	if err != nil {
		t.Fatalf("RemoveWidget: %v", err)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", res.Warnings)
	}
	if len(loadManifest(t, m).Widgets) != 0 {
		t.Error("widget still declared")
	}
	if _, err := os.Stat(filepath.Join(m.Root, "chart")); !errors.Is(err, os.ErrNotExist) {
		t.Error("widget directory still exists")
	}
}

func TestRemoveWidget_FilesAlreadyGone(t *testing.T) {
	m := newProject(t)
	ctx := context.Background()
	if _, err := m.AddWidget(ctx, "chart"); err != nil {
		t.Fatal(err)
	}
	if err := os.RemoveAll(filepath.Join(m.Root, "chart")); err != nil {
		t.Fatal(err)
	}

	res, err := m.RemoveWidget(ctx, "chart")
	if err != nil {
		t.Fatalf("RemoveWidget should succeed, got %v", err)
	}
	if len(res.Warnings) != 1 || !errors.Is(res.Warnings[0], issue.ErrOrphanedFiles) {
		t.Fatalf("Warnings = %v, want one OrphanedFilesWarning", res.Warnings)
	}
	if !issue.IsWarning(res.Warnings[0]) {
		t.Error("orphaned files should be a warning")
	}
	if len(loadManifest(t, m).Widgets) != 0 {
		t.Error("widget still declared")
	}
}

func TestRemoveNode(t *testing.T) {
	m := newProject(t)
	ctx := context.Background()
	for _, id := range []string{"first", "second"} {
		if _, err := m.AddNode(ctx, id); err != nil {
			t.Fatal(err)
		}
	}

	if _, err := m.Remove(ctx, layout.KindNode, "first"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	man := loadManifest(t, m)
	if len(man.Nodes) != 1 || man.Nodes[0].NodeID != "second" {
		t.Errorf("Nodes = %+v, want [second]", man.Nodes)
	}
	if _, err := os.Stat(filepath.Join(m.Root, "first.js")); !errors.Is(err, os.ErrNotExist) {
		t.Error("first.js still exists")
	}
}

func TestRemove_NotFound(t *testing.T) {
	m := newProject(t)
	before := snapshot(t, m.Root)
	for _, kind := range []layout.Kind{layout.KindWidget, layout.KindNode} {
		_, err := m.Remove(context.Background(), kind, "ghost")
		if !errors.Is(err, issue.ErrElementNotFound) {
			t.Errorf("%s: error = %v, want ElementNotFound", kind, err)
		}
	}
	if diff := cmp.Diff(before, snapshot(t, m.Root)); diff != "" {
		t.Errorf("filesystem changed (-before +after):\n%s", diff)
	}
}

func TestRemove_UnsafeIdentifier(t *testing.T) {
	m := newProject(t)
	outside := filepath.Join(filepath.Dir(m.Root), "keep.js")
	if err := os.WriteFile(outside, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := m.Remove(context.Background(), layout.KindNode, "../keep")
	if !errors.Is(err, issue.ErrInvalidIdentifier) {
		t.Fatalf("error = %v, want InvalidIdentifier", err)
	}
	if _, err := os.Stat(outside); err != nil {
		t.Errorf("file outside the project was touched: %v", err)
	}
}

func TestUniquenessAcrossSequence(t *testing.T) {
	m := newProject(t)
	ctx := context.Background()
	steps := []struct {
		add  bool
		kind layout.Kind
		id   string
	}{
		{true, layout.KindWidget, "a"},
		{true, layout.KindWidget, "b"},
		{true, layout.KindWidget, "a"},
		{true, layout.KindNode, "a"},
		{true, layout.KindNode, "a"},
		{false, layout.KindWidget, "a"},
		{true, layout.KindWidget, "a"},
		{false, layout.KindNode, "a"},
		{true, layout.KindNode, "a"},
	}
	for _, s := range steps {
		if s.add {
			_, _ = m.Add(ctx, s.kind, s.id)
		} else {
			_, _ = m.Remove(ctx, s.kind, s.id)
		}
		man := loadManifest(t, m)
		if err := man.Check(); err != nil {
			t.Fatalf("after %+v: %v", s, err)
		}
	}

	man := loadManifest(t, m)
	if len(man.Widgets) != 2 || len(man.Nodes) != 1 {
		t.Errorf("got %d widgets, %d nodes, want 2 and 1", len(man.Widgets), len(man.Nodes))
	}
}

func TestList(t *testing.T) {
	m := newProject(t)
	ctx := context.Background()
	if _, err := m.AddWidget(ctx, "chart"); err != nil {
		t.Fatal(err)
	}
	if _, err := m.AddNode(ctx, "adder"); err != nil {
		t.Fatal(err)
	}

	l, err := m.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if !l.Complete() {
		t.Errorf("fresh project reported incomplete: %+v", l)
	}

	if err := os.Remove(filepath.Join(m.Root, "chart", "chart.svg")); err != nil {
		t.Fatal(err)
	}
	l, err = m.List()
	if err != nil {
		t.Fatal(err)
	}
	if l.Complete() {
		t.Error("project with a missing file reported complete")
	}
	if diff := cmp.Diff([]string{"chart/chart.svg"}, l.Widgets[0].Missing); diff != "" {
		t.Errorf("Missing mismatch (-want +got):\n%s", diff)
	}
	if !l.Nodes[0].Complete() || l.Nodes[0].Name != "Adder" {
		t.Errorf("node status = %+v", l.Nodes[0])
	}
}
