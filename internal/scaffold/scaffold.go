package scaffold

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"text/template"

	"github.com/outline-labs/opc/internal/issue"
	"github.com/outline-labs/opc/internal/layout"
	"github.com/outline-labs/opc/internal/manifest"
	"github.com/outline-labs/opc/internal/platform"
)

// Identifiers of the sample elements written by CreatePlugin.
const (
	SampleWidgetID = "sampleWidget"
	SampleNodeID   = "sampleNode"
)

// Data holds the template variables available to scaffold templates.
type Data struct {
	ID   string // element identifier, also the JavaScript class name
	Name string // derived display name
}

// NewData returns the template data for an element identifier.
func NewData(id string) Data {
	return Data{ID: id, Name: manifest.DisplayName(id)}
}

// Options controls CreatePlugin.
type Options struct {
	// Blank skips the sample widget and node.
	Blank bool

	// Identity supplies manifest metadata; empty fields get defaults.
	Identity manifest.Identity
}

// Result holds the outcome of a scaffold generation.
type Result struct {
	OutputDir string
	Files     []string
	Warnings  []string
}

// WidgetJS renders the script stub for a new widget.
func WidgetJS(id string) (string, error) {
	return render("widget.js.tmpl", NewData(id))
}

// NodeJS renders the script stub for a new node.
func NodeJS(id string) (string, error) {
	return render("node.js.tmpl", NewData(id))
}

// render executes the named template from the scaffolds directory.
func render(name string, data any) (string, error) {
	tmplPath := path.Join("scaffolds", name)
	tmplBytes, err := fs.ReadFile(scaffoldFS, tmplPath)
	if err != nil {
		return "", fmt.Errorf("reading template %s: %w", tmplPath, err)
	}

	tmpl, err := template.New(name).Parse(string(tmplBytes))
	if err != nil {
		return "", fmt.Errorf("parsing template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.String(), nil
}

// CreatePlugin creates the project directory parent/name with an icon and
// a manifest. Unless opts.Blank is set it also adds a sample widget and a
// sample node, registered in the manifest. The generated manifest is
// validated; schema issues are reported as warnings.
func CreatePlugin(parent, name string, opts Options) (*Result, error) {
	if err := manifest.ValidateIdentifier(name); err != nil {
		return nil, err
	}

	outputDir := filepath.Join(parent, name)
	exists, err := platform.Exists(outputDir)
	if err != nil {
		return nil, &issue.Error{Kind: issue.WriteFailure, Path: outputDir, Cause: err}
	}
	if exists {
		return nil, &issue.Error{Kind: issue.DestinationExists, Path: outputDir, Reason: "directory with the same name already exists"}
	}

	if err := os.MkdirAll(outputDir, platform.DirPerm); err != nil {
		return nil, &issue.Error{Kind: issue.WriteFailure, Path: outputDir, Cause: err}
	}

	g := &generator{root: outputDir, result: &Result{OutputDir: outputDir}}
	m := manifest.New(name, opts.Identity)

	g.template(layout.IconFile, "icon.svg.tmpl", nil)
	if !opts.Blank {
		g.sampleWidget(m)
		g.sampleNode(m)
	}
	if g.err != nil {
		return nil, g.err
	}

	if err := manifest.Save(outputDir, m); err != nil {
		return nil, err
	}
	g.result.Files = append(g.result.Files, layout.ManifestFile)

	valResult, valErr := manifest.ValidateFile(manifest.Path(outputDir))
	if valErr != nil {
		g.result.Warnings = append(g.result.Warnings,
			fmt.Sprintf("Could not validate manifest: %v", valErr))
	} else if !valResult.Valid {
		g.result.Warnings = append(g.result.Warnings, valResult.Messages()...)
	}

	return g.result, nil
}

// generator writes files under root, remembering the first failure.
type generator struct {
	root   string
	result *Result
	err    error
}

func (g *generator) sampleWidget(m *manifest.Manifest) {
	id := SampleWidgetID
	if g.err != nil {
		return
	}
	if err := os.Mkdir(filepath.Join(g.root, id), platform.DirPerm); err != nil {
		g.err = &issue.Error{Kind: issue.WriteFailure, Element: id, Path: id, Cause: err}
		return
	}

	paths := layout.WidgetPaths(id)
	data := NewData(id)
	g.template(paths.HTML, "sample/widget.html.tmpl", data)
	g.template(paths.CSS, "sample/widget.css.tmpl", data)
	g.template(paths.JS, "sample/widget.js.tmpl", data)
	g.template(paths.SVG, "sample/widget.svg.tmpl", data)

	w := manifest.NewWidget(id)
	w.Prototype.Params = manifest.Object(manifest.Member{Key: "count", Value: manifest.Number("0")})
	m.Widgets = append(m.Widgets, w)
}

func (g *generator) sampleNode(m *manifest.Manifest) {
	g.template(layout.NodePath(SampleNodeID), "node.js.tmpl", NewData(SampleNodeID))
	m.Nodes = append(m.Nodes, manifest.NewNode(SampleNodeID))
}

// template renders tmpl and writes it to the slash-separated path rel.
func (g *generator) template(rel, tmpl string, data any) {
	if g.err != nil {
		return
	}
	body, err := render(tmpl, data)
	if err != nil {
		g.err = err
		return
	}
	outPath := filepath.Join(g.root, filepath.FromSlash(rel))
	if err := os.WriteFile(outPath, []byte(body), platform.FilePerm); err != nil {
		g.err = &issue.Error{Kind: issue.WriteFailure, Path: rel, Cause: err}
		return
	}
	g.result.Files = append(g.result.Files, rel)
}
