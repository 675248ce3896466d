package bundle

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/outline-labs/opc/internal/issue"
	"github.com/outline-labs/opc/internal/layout"
	"github.com/outline-labs/opc/internal/manifest"
	"github.com/outline-labs/opc/internal/platform"
)

// Extract recreates the project described by d in dest and returns the
// reduced manifest it saved.
//
// dest must not exist; it is created with a single Mkdir so a directory
// that appears after the initial check is still refused. Identifiers are checked before anything is written.
// Files are written in order: icon, manifest, nodes, widgets. A failure
// part way through leaves the partial tree in place and is reported as
// ExtractionFailed naming the element involved.
func Extract(ctx context.Context, d *Document, dest string, opts ...Option) (*manifest.Manifest, error) {
	o := newOptions(opts)

	exists, err := platform.Exists(dest)
	if err != nil {
		return nil, &issue.Error{Kind: issue.ExtractionFailed, Path: dest, Cause: err}
	}
	if exists {
		return nil, &issue.Error{Kind: issue.DestinationExists, Path: dest, Reason: "refusing to overwrite"}
	}

	m := Reduce(d)
	if err := m.Check(); err != nil {
		return nil, issue.Extraction("", "bundle declares invalid elements", err)
	}

	if err := os.MkdirAll(filepath.Dir(dest), platform.DirPerm); err != nil {
		return nil, issue.Extraction("", "creating destination parent", err)
	}
	if err := os.Mkdir(dest, platform.DirPerm); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, &issue.Error{Kind: issue.DestinationExists, Path: dest, Reason: "refusing to overwrite", Cause: err}
		}
		return nil, issue.Extraction("", "creating destination", err)
	}

	w := &writer{root: dest, o: o}
	if err := w.file("", layout.IconFile, d.Icon.SVG); err != nil {
		return nil, err
	}
	if err := manifest.Save(dest, m); err != nil {
		return nil, issue.Extraction("", "saving "+layout.ManifestFile, err)
	}

	for _, n := range d.Nodes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := w.file(n.NodeID, layout.NodePath(n.NodeID), n.FileContents.JS); err != nil {
			return nil, err
		}
	}

	for _, wd := range d.Widgets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := w.widget(wd); err != nil {
			return nil, err
		}
	}
	return m, nil
}

type writer struct {
	root string
	o    *options
}

func (w *writer) widget(fw FullWidget) error {
	id := fw.WidgetID
	dir := filepath.Join(w.root, filepath.FromSlash(layout.ElementRoot(layout.KindWidget, id)))
	if err := os.Mkdir(dir, platform.DirPerm); err != nil {
		return issue.Extraction(id, "creating widget directory", err)
	}

	paths := layout.WidgetPaths(id)
	files := []struct{ rel, body string }{
		{paths.HTML, fw.FileContents.HTML},
		{paths.CSS, fw.FileContents.CSS},
		{paths.JS, fw.FileContents.JS},
		{paths.SVG, fw.FileContents.SVG},
	}
	for _, f := range files {
		if err := w.file(id, f.rel, f.body); err != nil {
			return err
		}
	}
	return nil
}

func (w *writer) file(element, rel, body string) error {
	path := filepath.Join(w.root, filepath.FromSlash(rel))
	if err := os.WriteFile(path, []byte(body), platform.FilePerm); err != nil {
		return issue.Extraction(element, "writing "+rel, err)
	}
	w.o.logger.Debug("wrote file", "path", rel, "bytes", len(body))
	return nil
}
