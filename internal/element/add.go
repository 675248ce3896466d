package element

import (
	"context"
	"os"
	"path/filepath"

	"github.com/outline-labs/opc/internal/issue"
	"github.com/outline-labs/opc/internal/layout"
	"github.com/outline-labs/opc/internal/manifest"
	"github.com/outline-labs/opc/internal/platform"
	"github.com/outline-labs/opc/internal/scaffold"
)

// AddWidget creates id/ with an empty html, css and svg file and a stub
// script, then declares the widget in the manifest.
func (m *Manager) AddWidget(ctx context.Context, id string) (*Result, error) {
	man, err := m.prepareAdd(layout.KindWidget, id)
	if err != nil {
		return nil, err
	}
	if _, found := man.FindWidget(id); found {
		return nil, alreadyDeclared(layout.KindWidget, id)
	}

	js, err := scaffold.WidgetJS(id)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir := m.path(layout.ElementRoot(layout.KindWidget, id))
	if err := os.Mkdir(dir, platform.DirPerm); err != nil {
		return nil, &issue.Error{Kind: issue.WriteFailure, Element: id, Path: id, Cause: err}
	}

	paths := layout.WidgetPaths(id)
	res := &Result{Kind: layout.KindWidget, ID: id}
	files := []struct{ rel, body string }{
		{paths.HTML, ""},
		{paths.CSS, ""},
		{paths.JS, js},
		{paths.SVG, ""},
	}
	for _, f := range files {
		if err := m.write(id, f.rel, f.body); err != nil {
			return nil, err
		}
		res.Files = append(res.Files, f.rel)
	}

	if err := man.AddWidget(manifest.NewWidget(id)); err != nil {
		return nil, err
	}
	if err := manifest.Save(m.Root, man); err != nil {
		return nil, err
	}
	m.Logger.Debug("added widget", "id", id, "files", len(res.Files))
	return res, nil
}

// AddNode writes id.js from the node stub, then declares the node in the
// manifest.
func (m *Manager) AddNode(ctx context.Context, id string) (*Result, error) {
	man, err := m.prepareAdd(layout.KindNode, id)
	if err != nil {
		return nil, err
	}
	if _, found := man.FindNode(id); found {
		return nil, alreadyDeclared(layout.KindNode, id)
	}

	js, err := scaffold.NodeJS(id)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rel := layout.NodePath(id)
	if err := m.write(id, rel, js); err != nil {
		return nil, err
	}

	if err := man.AddNode(manifest.NewNode(id)); err != nil {
		return nil, err
	}
	if err := manifest.Save(m.Root, man); err != nil {
		return nil, err
	}
	m.Logger.Debug("added node", "id", id)
	return &Result{Kind: layout.KindNode, ID: id, Files: []string{rel}}, nil
}

// prepareAdd validates id before any I/O, loads the manifest, and rejects
// an element whose files already exist on disk.
func (m *Manager) prepareAdd(kind layout.Kind, id string) (*manifest.Manifest, error) {
	if err := manifest.ValidateIdentifier(id); err != nil {
		return nil, err
	}

	man, err := manifest.Load(m.Root)
	if err != nil {
		return nil, err
	}

	rel := layout.ElementRoot(kind, id)
	exists, err := platform.Exists(m.path(rel))
	if err != nil {
		return nil, &issue.Error{Kind: issue.WriteFailure, Element: id, Path: rel, Cause: err}
	}
	if exists {
		return nil, &issue.Error{
			Kind:    issue.ElementAlreadyExists,
			Element: id,
			Path:    rel,
			Reason:  kind.String() + " files already exist on disk",
		}
	}
	return man, nil
}

func (m *Manager) write(element, rel, body string) error {
	if err := os.WriteFile(m.path(rel), []byte(body), platform.FilePerm); err != nil {
		return &issue.Error{Kind: issue.WriteFailure, Element: element, Path: rel, Cause: err}
	}
	m.Logger.Debug("wrote file", "path", rel)
	return nil
}

// path converts a slash-separated project-relative path to a filesystem
// path under Root.
func (m *Manager) path(rel string) string {
	return filepath.Join(m.Root, filepath.FromSlash(rel))
}

func alreadyDeclared(kind layout.Kind, id string) error {
	return issue.New(issue.ElementAlreadyExists, kind.String()+" already declared in "+layout.ManifestFile).WithElement(id)
}
