package command

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/outline-labs/opc/internal/branding"
	"github.com/outline-labs/opc/internal/bundle"
	"github.com/outline-labs/opc/internal/config"
	"github.com/outline-labs/opc/internal/element"
	"github.com/outline-labs/opc/internal/issue"
	"github.com/outline-labs/opc/internal/layout"
	"github.com/outline-labs/opc/internal/manifest"
	"github.com/outline-labs/opc/internal/scaffold"
	"github.com/outline-labs/opc/internal/watch"
)

// BuildInfo identifies the running binary.
type BuildInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Executor runs commands against the project at Root. For create and
// extract, Root is the working directory the new project is placed in.
type Executor struct {
	Root   string
	Config config.Settings
	Build  BuildInfo
	Logger *log.Logger

	// Stdout receives progress lines from long-running commands such as
	// bundle --watch.
	Stdout io.Writer
}

// Outcome is the result of a successful command.
type Outcome struct {
	Message string

	// Files are paths written, deleted, or produced, for display.
	Files []string

	// Warnings are non-fatal issues.
	Warnings []string

	// Details carries command-specific lines, such as validation issues.
	Details []string

	// Listing is set by List.
	Listing *element.Listing
}

func (e *Executor) logger() *log.Logger {
	if e.Logger == nil {
		return log.New(io.Discard)
	}
	return e.Logger
}

func (e *Executor) stdout() io.Writer {
	if e.Stdout == nil {
		return io.Discard
	}
	return e.Stdout
}

func (e *Executor) root() string {
	if e.Root == "" {
		return "."
	}
	return e.Root
}

// Execute runs c. Errors are *issue.Error values where a domain failure is
// involved. Validate may return an Outcome together with an error so the
// caller can print the individual issues.
func (e *Executor) Execute(ctx context.Context, c Command) (*Outcome, error) {
	switch c := c.(type) {
	case Create:
		return e.create(c)
	case Add:
		return e.add(ctx, c)
	case Remove:
		return e.remove(ctx, c)
	case Bundle:
		if c.Watch {
			return e.watch(ctx, c)
		}
		return e.bundle(ctx, c)
	case Extract:
		return e.extract(ctx, c)
	case Validate:
		return e.validate()
	case List:
		return e.list()
	case Version:
		return &Outcome{Message: fmt.Sprintf("%s %s installed (commit: %s, built: %s)",
			branding.DisplayName(), e.Build.Version, e.Build.Commit, e.Build.Date)}, nil
	case Help:
		if c.Topic == "" {
			return &Outcome{Message: Manual()}, nil
		}
		text := Usage(c.Topic)
		if text == "" {
			return nil, usage(fmt.Sprintf("no help for %q", c.Topic))
		}
		return &Outcome{Message: text}, nil
	default:
		return nil, fmt.Errorf("unsupported command %T", c)
	}
}

func (e *Executor) create(c Create) (*Outcome, error) {
	res, err := scaffold.CreatePlugin(e.root(), c.Plugin, scaffold.Options{
		Blank:    c.Blank,
		Identity: e.Config.Identity,
	})
	if err != nil {
		return nil, err
	}
	return &Outcome{
		Message:  fmt.Sprintf("Plugin %s created at %s", c.Plugin, res.OutputDir),
		Files:    res.Files,
		Warnings: res.Warnings,
	}, nil
}

func (e *Executor) manager() *element.Manager {
	return element.NewManager(e.root(), element.WithLogger(e.logger()))
}

func (e *Executor) add(ctx context.Context, c Add) (*Outcome, error) {
	res, err := e.manager().Add(ctx, c.Element.Kind, c.Element.ID)
	if err != nil {
		return nil, err
	}
	return &Outcome{
		Message: fmt.Sprintf("Added %s %s", res.Kind, res.ID),
		Files:   res.Files,
	}, nil
}

func (e *Executor) remove(ctx context.Context, c Remove) (*Outcome, error) {
	res, err := e.manager().Remove(ctx, c.Element.Kind, c.Element.ID)
	if err != nil {
		return nil, err
	}
	out := &Outcome{
		Message: fmt.Sprintf("Removed %s %s", res.Kind, res.ID),
		Files:   res.Files,
	}
	for _, w := range res.Warnings {
		out.Warnings = append(out.Warnings, w.Error())
	}
	return out, nil
}

func (e *Executor) bundleOptions() []bundle.Option {
	opts := []bundle.Option{bundle.WithLogger(e.logger())}
	if e.Config.BundleWorkers > 0 {
		opts = append(opts, bundle.WithWorkers(e.Config.BundleWorkers))
	}
	return opts
}

// outputPath resolves where the bundle for pluginID is written.
func (e *Executor) outputPath(c Bundle, pluginID string) (string, error) {
	switch {
	case c.Output != "":
		return c.Output, nil
	case e.Config.BundleOutputDir != "":
		return filepath.Join(e.Config.BundleOutputDir, pluginID+layout.BundleExt), nil
	default:
		return bundle.DefaultOutputPath(e.root(), pluginID)
	}
}

func (e *Executor) bundle(ctx context.Context, c Bundle) (*Outcome, error) {
	doc, err := bundle.Bundle(ctx, e.root(), e.bundleOptions()...)
	if err != nil {
		return nil, err
	}
	out, err := e.outputPath(c, doc.PluginID)
	if err != nil {
		return nil, err
	}
	if err := bundle.WriteFile(out, doc); err != nil {
		return nil, err
	}
	e.logger().Debug("bundle written", "path", out, "widgets", len(doc.Widgets), "nodes", len(doc.Nodes))
	return &Outcome{
		Message: fmt.Sprintf("Bundled %s (%d widgets, %d nodes) to %s", doc.PluginID, len(doc.Widgets), len(doc.Nodes), out),
		Files:   []string{out},
	}, nil
}

// watch bundles once, then re-bundles after every change until ctx is
// cancelled. Failed rebuilds are reported and watching continues.
func (e *Executor) watch(ctx context.Context, c Bundle) (*Outcome, error) {
	c.Watch = false
	rebuild := func(ctx context.Context, changed []string) error {
		if len(changed) > 0 {
			e.logger().Info("change detected", "files", strings.Join(changed, ", "))
		}
		out, err := e.bundle(ctx, c)
		if err != nil {
			fmt.Fprintf(e.stdout(), "bundle failed: %v\n", err)
			return err
		}
		fmt.Fprintln(e.stdout(), out.Message)
		return nil
	}

	if _, err := manifest.Load(e.root()); err != nil {
		return nil, err
	}
	_ = rebuild(ctx, nil)

	w, err := watch.New(watch.Config{
		Root:     e.root(),
		Ignore:   e.watchIgnores(c),
		Debounce: e.Config.WatchDebounce,
		OnChange: rebuild,
		Logger:   e.logger(),
	})
	if err != nil {
		return nil, err
	}
	fmt.Fprintln(e.stdout(), "Watching for changes, press Ctrl+C to stop")
	if err := w.Run(ctx); err != nil {
		return nil, err
	}
	return &Outcome{Message: "Stopped watching"}, nil
}

// watchIgnores excludes an explicit output file inside the project so
// writing the bundle does not trigger another rebuild.
func (e *Executor) watchIgnores(c Bundle) []string {
	if c.Output == "" {
		return nil
	}
	root, err := filepath.Abs(e.root())
	if err != nil {
		return nil
	}
	out, err := filepath.Abs(c.Output)
	if err != nil {
		return nil
	}
	rel, err := filepath.Rel(root, out)
	if err != nil || strings.HasPrefix(rel, "..") {
		return nil
	}
	return []string{filepath.ToSlash(rel)}
}

func (e *Executor) extract(ctx context.Context, c Extract) (*Outcome, error) {
	if !layout.IsBundleFile(c.Source) {
		e.logger().Warn("source does not have a bundle extension", "path", c.Source, "want", layout.BundleExt)
	}
	doc, err := bundle.ReadFile(c.Source)
	if err != nil {
		return nil, err
	}

	dest := c.Dest
	if dest == "" {
		dest = filepath.Join(e.root(), doc.PluginID)
	}
	m, err := bundle.Extract(ctx, doc, dest, e.bundleOptions()...)
	if err != nil {
		return nil, err
	}
	return &Outcome{
		Message: fmt.Sprintf("Extracted %s (%d widgets, %d nodes) to %s", m.PluginID, len(m.Widgets), len(m.Nodes), dest),
		Files:   []string{dest},
	}, nil
}

func (e *Executor) validate() (*Outcome, error) {
	path := manifest.Path(e.root())
	result, err := manifest.ValidateFile(path)
	if err != nil {
		if _, loadErr := manifest.Load(e.root()); loadErr != nil {
			return nil, loadErr
		}
		return nil, &issue.Error{Kind: issue.MalformedManifest, Path: path, Cause: err}
	}

	out := &Outcome{Details: result.Messages()}
	if !result.Valid {
		out.Message = fmt.Sprintf("%s has %d issue(s)", layout.ManifestFile, len(result.Issues))
		return out, &issue.Error{Kind: issue.MalformedManifest, Path: path, Reason: fmt.Sprintf("%d schema issue(s)", len(result.Issues))}
	}

	l, err := e.manager().List()
	if err != nil {
		return nil, err
	}
	var first error
	for _, s := range append(append([]element.Status{}, l.Widgets...), l.Nodes...) {
		for _, rel := range s.Missing {
			out.Details = append(out.Details, fmt.Sprintf("%s: missing %s", s.ID, rel))
			if first == nil {
				first = issue.MissingFile(s.ID, rel, nil)
			}
		}
	}
	if !l.Icon {
		out.Details = append(out.Details, "missing "+layout.IconFile)
		if first == nil {
			first = &issue.Error{Kind: issue.MissingIcon, Path: layout.IconFile}
		}
	}
	if first != nil {
		out.Message = "project would not bundle"
		return out, first
	}

	out.Message = fmt.Sprintf("%s is valid (%d widgets, %d nodes)", layout.ManifestFile, len(l.Widgets), len(l.Nodes))
	return out, nil
}

func (e *Executor) list() (*Outcome, error) {
	l, err := e.manager().List()
	if err != nil {
		return nil, err
	}
	return &Outcome{
		Message: fmt.Sprintf("%s: %d widgets, %d nodes", l.PluginID, len(l.Widgets), len(l.Nodes)),
		Listing: l,
	}, nil
}
