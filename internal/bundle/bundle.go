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
	"github.com/sourcegraph/conc/pool"
)

// read is one file the bundle needs, addressed relative to the project root.
type read struct {
	element string // empty for the icon
	rel     string
}

// Bundle reads the project at root and returns its bundle document.
//
// Every widget must resolve to its four files and every node to its script;
// the first unreadable file, in manifest order, fails the whole bundle with
// MissingElementFile. A missing icon.svg fails with MissingIcon. Reads run
// concurrently on a bounded pool, but the document and any error are
// independent of scheduling.
func Bundle(ctx context.Context, root string, opts ...Option) (*Document, error) {
	o := newOptions(opts)

	m, err := manifest.Load(root)
	if err != nil {
		return nil, err
	}
	if err := m.Check(); err != nil {
		var e *issue.Error
		if errors.As(err, &e) {
			e.Path = manifest.Path(root)
		}
		return nil, err
	}

	reads := plan(m)
	contents := make([]string, len(reads))
	errs := make([]error, len(reads))

	p := pool.New().WithMaxGoroutines(o.workers)
	for i, r := range reads {
		p.Go(func() {
			if ctx.Err() != nil {
				return
			}
			data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(r.rel)))
			if err != nil {
				errs[i] = readError(r, err)
				return
			}
			o.logger.Debug("read file", "path", r.rel, "bytes", len(data))
			contents[i] = string(data)
		})
	}
	p.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return assemble(m, contents), nil
}

// plan lists the files to read in manifest order: each widget's html, css,
// js and svg, then each node's script, then the icon.
func plan(m *manifest.Manifest) []read {
	reads := make([]read, 0, 4*len(m.Widgets)+len(m.Nodes)+1)
	for _, w := range m.Widgets {
		for _, rel := range layout.WidgetPaths(w.WidgetID).All() {
			reads = append(reads, read{element: w.WidgetID, rel: rel})
		}
	}
	for _, n := range m.Nodes {
		reads = append(reads, read{element: n.NodeID, rel: layout.NodePath(n.NodeID)})
	}
	return append(reads, read{rel: layout.IconFile})
}

// assemble builds the document from contents, which is indexed like plan.
func assemble(m *manifest.Manifest, contents []string) *Document {
	d := &Document{
		PluginName:          m.PluginName,
		PluginID:            m.PluginID,
		PluginDescription:   m.PluginDescription,
		PluginVersion:       m.PluginVersion,
		PluginAuthor:        m.PluginAuthor,
		PluginCategoryLabel: m.PluginCategoryLabel,
		Widgets:             make([]FullWidget, 0, len(m.Widgets)),
		Nodes:               make([]FullNode, 0, len(m.Nodes)),
	}

	i := 0
	for _, w := range m.Widgets {
		d.Widgets = append(d.Widgets, FullWidget{
			WidgetDescriptor: w,
			FileContents: WidgetFiles{
				HTML: contents[i],
				CSS:  contents[i+1],
				JS:   contents[i+2],
				SVG:  contents[i+3],
			},
		})
		i += 4
	}
	for _, n := range m.Nodes {
		d.Nodes = append(d.Nodes, FullNode{
			NodeDescriptor: n,
			FileContents:   NodeFiles{JS: contents[i]},
		})
		i++
	}
	d.Icon = IconFiles{SVG: contents[i]}
	return d
}

func readError(r read, err error) error {
	if r.element == "" {
		reason := "cannot read " + layout.IconFile
		if errors.Is(err, fs.ErrNotExist) {
			reason = "project has no " + layout.IconFile
		}
		return &issue.Error{Kind: issue.MissingIcon, Path: r.rel, Reason: reason, Cause: err}
	}
	return issue.MissingFile(r.element, r.rel, err)
}
