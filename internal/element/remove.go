package element

import (
	"context"
	"os"

	"github.com/outline-labs/opc/internal/issue"
	"github.com/outline-labs/opc/internal/layout"
	"github.com/outline-labs/opc/internal/manifest"
	"github.com/outline-labs/opc/internal/platform"
)

// RemoveWidget drops the widget from the manifest, then deletes its
// directory.
func (m *Manager) RemoveWidget(ctx context.Context, id string) (*Result, error) {
	return m.remove(ctx, layout.KindWidget, id, (*manifest.Manifest).RemoveWidget)
}

// RemoveNode drops the node from the manifest, then deletes its script.
func (m *Manager) RemoveNode(ctx context.Context, id string) (*Result, error) {
	return m.remove(ctx, layout.KindNode, id, (*manifest.Manifest).RemoveNode)
}

func (m *Manager) remove(ctx context.Context, kind layout.Kind, id string, drop func(*manifest.Manifest, string) error) (*Result, error) {
	if err := manifest.CheckSegment(id); err != nil {
		return nil, err
	}
	man, err := manifest.Load(m.Root)
	if err != nil {
		return nil, err
	}
	if err := drop(man, id); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := manifest.Save(m.Root, man); err != nil {
		return nil, err
	}
	m.Logger.Debug("removed from manifest", "kind", kind, "id", id)

	res := &Result{Kind: kind, ID: id}
	rel := layout.ElementRoot(kind, id)
	if w := m.deleteFiles(id, rel); w != nil {
		m.Logger.Warn("element files left behind", "id", id, "path", rel, "err", w.Cause)
		res.Warnings = append(res.Warnings, w)
		return res, nil
	}
	res.Files = layout.ResolvePaths(kind, id)
	return res, nil
}

// deleteFiles removes the element root, reporting anything that could not
// be deleted, including files that were already gone.
func (m *Manager) deleteFiles(id, rel string) *issue.Error {
	path := m.path(rel)
	exists, err := platform.Exists(path)
	if err != nil {
		return issue.Orphaned(id, rel, err)
	}
	if !exists {
		w := issue.Orphaned(id, rel, nil)
		w.Reason = "manifest entry removed but files were already missing"
		return w
	}
	if err := os.RemoveAll(path); err != nil {
		return issue.Orphaned(id, rel, err)
	}
	return nil
}
