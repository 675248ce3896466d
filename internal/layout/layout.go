// Package layout maps plugin elements to their conventional file paths.
// Every function here is pure: it never inspects the filesystem, and it
// trusts that identifiers were validated upstream.
package layout

import (
	"fmt"
	"path"
	"strings"
)

// Fixed project-level file names.
const (
	ManifestFile    = "plugin.json"
	IconFile        = "icon.svg"
	BundleExt       = ".opb"
	LegacyBundleExt = ".obp"
)

// Kind is the type of a plugin element.
type Kind int

const (
	KindWidget Kind = iota + 1
	KindNode
)

func (k Kind) String() string {
	switch k {
	case KindWidget:
		return "widget"
	case KindNode:
		return "node"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ParseKind converts "widget" or "node" (any case) to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "widget":
		return KindWidget, nil
	case "node":
		return KindNode, nil
	default:
		return 0, fmt.Errorf("invalid element type %q: must be 'widget' or 'node'", s)
	}
}

// WidgetFiles holds the four files backing a widget.
type WidgetFiles struct {
	HTML string
	CSS  string
	JS   string
	SVG  string
}

// All returns the paths in html, css, js, svg order.
func (w WidgetFiles) All() []string {
	return []string{w.HTML, w.CSS, w.JS, w.SVG}
}

// WidgetPaths returns id/id.{html,css,js,svg}.
func WidgetPaths(id string) WidgetFiles {
	base := path.Join(id, id)
	return WidgetFiles{
		HTML: base + ".html",
		CSS:  base + ".css",
		JS:   base + ".js",
		SVG:  base + ".svg",
	}
}

// NodePath returns id.js.
func NodePath(id string) string {
	return id + ".js"
}

// ResolvePaths returns the ordered, slash-separated relative paths that
// must exist for an element of the given kind.
func ResolvePaths(kind Kind, id string) []string {
	switch kind {
	case KindWidget:
		return WidgetPaths(id).All()
	case KindNode:
		return []string{NodePath(id)}
	default:
		return nil
	}
}

// ElementRoot returns the single path that owns all of an element's files:
// the widget directory, or the node script.
func ElementRoot(kind Kind, id string) string {
	if kind == KindWidget {
		return id
	}
	return NodePath(id)
}

// IsBundleFile reports whether name carries a bundle extension, including
// the legacy spelling.
func IsBundleFile(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	return ext == BundleExt || ext == LegacyBundleExt
}
